package request

import (
	"github.com/frahmantamala/inventory-management/internal"
	"github.com/frahmantamala/inventory-management/internal/core/common/validation"
)

type CreateRequestDTO struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	PriceRange    string  `json:"price_range"`
	ReferenceLink *string `json:"reference_link,omitempty"`
}

func (dto CreateRequestDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(255)
	v.Field("description", dto.Description).Required()
	v.Field("price_range", dto.PriceRange).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type UpdateRequestDTO struct {
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	PriceRange    *string `json:"price_range,omitempty"`
	ReferenceLink *string `json:"reference_link,omitempty"`
}

func (dto UpdateRequestDTO) Validate() error {
	if dto.Name != nil && *dto.Name == "" {
		return internal.NewValidationFieldError("name", "name cannot be empty", internal.ErrCodeInvalidName)
	}
	return nil
}

// TransitionDTO carries the target status for an approval decision.
type TransitionDTO struct {
	Status string `json:"status"`
}

func (dto TransitionDTO) Validate() error {
	if dto.Status == "" {
		return internal.NewValidationFieldError("status", "status is required", internal.ErrCodeValidationFailed)
	}
	if !ValidStatus(dto.Status) {
		return ErrUnknownStatus
	}
	return nil
}

type ListFilter struct {
	UserID *int64
	Status *string
	Limit  int
	Offset int
}
