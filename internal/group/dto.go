package group

import (
	"github.com/frahmantamala/inventory-management/internal/core/common/validation"
)

type CreateGroupDTO struct {
	Name string `json:"name"`
}

func (dto CreateGroupDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(100)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type AddItemDTO struct {
	ItemID int64 `json:"item_id"`
}

func (dto AddItemDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("item_id", dto.ItemID).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
