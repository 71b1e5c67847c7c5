package item

import (
	"github.com/frahmantamala/inventory-management/internal"
	"github.com/frahmantamala/inventory-management/internal/core/common/validation"
)

// CreateItemDTO is the payload for registering a new item. The examination
// period, when present, is converted to a due date at creation time.
type CreateItemDTO struct {
	CategoryID              int64   `json:"category_id"`
	AreaID                  int64   `json:"area_id"`
	Name                    string  `json:"name"`
	Price                   int64   `json:"price"`
	ExaminationPeriodMonths *int    `json:"examination_period_months,omitempty"`
	GroupCode               *string `json:"group_code,omitempty"`
}

func (dto CreateItemDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required()
	v.Field("price", dto.Price).Required().MinInt(1, internal.ErrCodeInvalidPrice)
	v.Field("category_id", dto.CategoryID).Required()
	v.Field("area_id", dto.AreaID).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	if dto.ExaminationPeriodMonths != nil && *dto.ExaminationPeriodMonths < 1 {
		return internal.NewValidationFieldError("examination_period_months",
			"examination period must be at least one month", internal.ErrCodeInvalidDueDate)
	}
	return nil
}

type UpdateItemDTO struct {
	CategoryID              *int64  `json:"category_id,omitempty"`
	AreaID                  *int64  `json:"area_id,omitempty"`
	Name                    *string `json:"name,omitempty"`
	Price                   *int64  `json:"price,omitempty"`
	ExaminationPeriodMonths *int    `json:"examination_period_months,omitempty"`
	GroupCode               *string `json:"group_code,omitempty"`
}

func (dto UpdateItemDTO) Validate() error {
	if dto.Name != nil && *dto.Name == "" {
		return internal.NewValidationFieldError("name", "name cannot be empty", internal.ErrCodeInvalidName)
	}
	if dto.Price != nil && *dto.Price < 1 {
		return internal.NewValidationFieldError("price", "price must be positive", internal.ErrCodeInvalidPrice)
	}
	if dto.ExaminationPeriodMonths != nil && *dto.ExaminationPeriodMonths < 1 {
		return internal.NewValidationFieldError("examination_period_months",
			"examination period must be at least one month", internal.ErrCodeInvalidDueDate)
	}
	return nil
}

type AssignItemDTO struct {
	UserID int64 `json:"user_id"`
	ItemID int64 `json:"item_id"`
}

func (dto AssignItemDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("user_id", dto.UserID).Required()
	v.Field("item_id", dto.ItemID).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type ReassignItemDTO struct {
	NewItemID int64 `json:"new_item_id"`
}

func (dto ReassignItemDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("new_item_id", dto.NewItemID).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// ListFilter narrows item listings.
type ListFilter struct {
	CategoryID *int64
	AreaID     *int64
	Status     *string
	Limit      int
	Offset     int
}
