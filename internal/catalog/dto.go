package catalog

import (
	"github.com/frahmantamala/inventory-management/internal"
	"github.com/frahmantamala/inventory-management/internal/core/common/validation"
)

// BoundaryDTO is the shared payload for categories and areas: a name plus
// a label code of at most three characters.
type BoundaryDTO struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

func (dto BoundaryDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(100)
	if err := v.Validate(); err != nil {
		return err
	}
	if err := validation.ValidateBoundaryCode(dto.Code); err != nil {
		return err
	}
	return nil
}

type UpdateBoundaryDTO struct {
	Name *string `json:"name,omitempty"`
	Code *string `json:"code,omitempty"`
}

func (dto UpdateBoundaryDTO) Validate() error {
	if dto.Name != nil && *dto.Name == "" {
		return internal.NewValidationFieldError("name", "name cannot be empty", internal.ErrCodeInvalidName)
	}
	if dto.Code != nil {
		if err := validation.ValidateBoundaryCode(*dto.Code); err != nil {
			return err
		}
	}
	return nil
}
