package user

import (
	"strings"

	"github.com/frahmantamala/inventory-management/internal"
	"github.com/frahmantamala/inventory-management/internal/core/common/validation"
)

type CreateUserDTO struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (dto CreateUserDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("email", dto.Email).Required().MaxLength(255)
	v.Field("name", dto.Name).Required().MaxLength(100)
	v.Field("password", dto.Password).Required().MinLength(8)
	if err := v.Validate(); err != nil {
		return err
	}
	if !strings.Contains(dto.Email, "@") {
		return internal.NewValidationFieldError("email", "email is not valid", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateUserDTO struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (dto UpdateUserDTO) Validate() error {
	if dto.Name != nil && *dto.Name == "" {
		return internal.NewValidationFieldError("name", "name cannot be empty", internal.ErrCodeInvalidName)
	}
	return nil
}

// GrantRoleDTO names the role to grant or revoke.
type GrantRoleDTO struct {
	Role string `json:"role"`
}

func (dto GrantRoleDTO) Validate() error {
	if dto.Role == "" {
		return internal.NewValidationFieldError("role", "role is required", internal.ErrCodeValidationFailed)
	}
	return nil
}
