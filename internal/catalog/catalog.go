package catalog

import (
	"time"

	"github.com/frahmantamala/inventory-management/internal"
	catalogDatamodel "github.com/frahmantamala/inventory-management/internal/core/datamodel/catalog"
)

// Category classifies what an item is (laptop, chair, cable). Area records
// where it lives (which floor or room). Both carry a short code of at most
// three characters that shows up on printed labels.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Area struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrCategoryNotFound = internal.NewNotFoundError("category not found", internal.ErrCodeCategoryNotFound)
	ErrAreaNotFound     = internal.NewNotFoundError("area not found", internal.ErrCodeAreaNotFound)
)

func CategoryToDataModel(c *Category) *catalogDatamodel.Category {
	return &catalogDatamodel.Category{
		ID:        c.ID,
		Name:      c.Name,
		Code:      c.Code,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func CategoryFromDataModel(row *catalogDatamodel.Category) *Category {
	return &Category{
		ID:        row.ID,
		Name:      row.Name,
		Code:      row.Code,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func AreaToDataModel(a *Area) *catalogDatamodel.Area {
	return &catalogDatamodel.Area{
		ID:        a.ID,
		Name:      a.Name,
		Code:      a.Code,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func AreaFromDataModel(row *catalogDatamodel.Area) *Area {
	return &Area{
		ID:        row.ID,
		Name:      row.Name,
		Code:      row.Code,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
