package postgres

import (
	"database/sql"

	"github.com/frahmantamala/inventory-management/internal/auth"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetPasswordForEmail(email string) (string, int64, error) {
	var passwordHash string
	var userID int64
	query := `SELECT id, password_hash FROM users WHERE email = ? AND is_active = true`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&userID, &passwordHash); err != nil {
		if err == sql.ErrNoRows {
			return "", 0, auth.ErrUserNotFound
		}
		return "", 0, err
	}
	return passwordHash, userID, nil
}

func (r *Repository) GetUserWithRoles(userID int64) (*auth.User, error) {
	var user auth.User

	query := `SELECT id, email, name FROM users WHERE id = ? AND is_active = true`

	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&user.ID, &user.Email, &user.Name); err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}

	roleQuery := `SELECT r.name
	             FROM roles r
	             JOIN user_roles ur ON r.id = ur.role_id
	             WHERE ur.user_id = ?
	             ORDER BY r.priority DESC`

	rows, err := r.db.Raw(roleQuery, userID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var roleName string
		if err := rows.Scan(&roleName); err != nil {
			return nil, err
		}
		roles = append(roles, roleName)
	}

	user.Roles = roles
	return &user, nil
}
