package postgres

import (
	"time"

	userDatamodel "github.com/frahmantamala/inventory-management/internal/core/datamodel/user"
	"github.com/frahmantamala/inventory-management/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements the user.Repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *user.User) error {
	row := user.ToDataModel(u)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	u.ID = row.ID
	return nil
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var row userDatamodel.User
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&row), nil
}

func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
	var row userDatamodel.User
	err := r.db.Where("email = ?", email).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&row), nil
}

func (r *UserRepository) GetRoles(userID int64) ([]string, error) {
	var names []string
	err := r.db.Model(&userDatamodel.Role{}).
		Joins("JOIN user_roles ur ON ur.role_id = roles.id").
		Where("ur.user_id = ?", userID).
		Order("roles.priority DESC").
		Pluck("roles.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (r *UserRepository) List(limit, offset int) ([]*user.User, error) {
	var rows []*userDatamodel.User
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*user.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, user.FromDataModel(row))
	}
	return out, nil
}

func (r *UserRepository) Update(u *user.User) error {
	u.UpdatedAt = time.Now()
	return r.db.Save(user.ToDataModel(u)).Error
}

func (r *UserRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&userDatamodel.UserRole{}).Error; err != nil {
			return err
		}
		return tx.Delete(&userDatamodel.User{}, id).Error
	})
}

func (r *UserRepository) GrantRole(userID, roleID int64, grantedBy *int64) error {
	row := &userDatamodel.UserRole{
		UserID:    userID,
		RoleID:    roleID,
		GrantedBy: grantedBy,
		CreatedAt: time.Now(),
	}
	return r.db.Create(row).Error
}

// RevokeRole deletes the grant row; zero affected rows means the user
// never held the role.
func (r *UserRepository) RevokeRole(userID, roleID int64) error {
	res := r.db.Where("user_id = ? AND role_id = ?", userID, roleID).
		Delete(&userDatamodel.UserRole{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return user.ErrRoleNotGranted
	}
	return nil
}

func (r *UserRepository) GetRoleByName(name string) (*user.Role, error) {
	var row userDatamodel.Role
	err := r.db.Where("name = ?", name).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.ErrRoleNotFound
		}
		return nil, err
	}
	return user.RoleFromDataModel(&row), nil
}
