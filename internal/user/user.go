package user

import (
	"time"

	"github.com/frahmantamala/inventory-management/internal"
	userDatamodel "github.com/frahmantamala/inventory-management/internal/core/datamodel/user"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	Roles        []string  `json:"roles,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (u *User) IsActiveUser() bool {
	return u.IsActive
}

type Role struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Priority  int       `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
}

var (
	ErrUserNotFound = internal.NewNotFoundError("user not found", internal.ErrCodeUserNotFound)
	ErrRoleNotFound = internal.NewNotFoundError("role not found", internal.ErrCodeRoleNotFound)

	ErrEmailTaken = internal.NewConflictError(
		"a user with this email already exists", internal.ErrCodeEmailTaken)

	ErrRoleAlreadyGranted = internal.NewConflictError(
		"user already has this role", internal.ErrCodeRoleAlreadyGranted)

	ErrRoleNotGranted = internal.NewNotFoundError(
		"user does not have this role", internal.ErrCodeRoleNotGranted)
)

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromDataModel(row *userDatamodel.User) *User {
	return &User{
		ID:           row.ID,
		Email:        row.Email,
		Name:         row.Name,
		PasswordHash: row.PasswordHash,
		IsActive:     row.IsActive,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
		Roles:        []string{},
	}
}

func FromDataModelWithRoles(row *userDatamodel.User, roles []string) *User {
	u := FromDataModel(row)
	u.Roles = roles
	return u
}

func RoleFromDataModel(row *userDatamodel.Role) *Role {
	return &Role{
		ID:        row.ID,
		Name:      row.Name,
		Priority:  row.Priority,
		CreatedAt: row.CreatedAt,
	}
}
