package item

import (
	"time"

	"github.com/frahmantamala/inventory-management/internal"
	itemDatamodel "github.com/frahmantamala/inventory-management/internal/core/datamodel/item"
)

// Item statuses. USED and UNUSED are driven exclusively by the assignment
// operations; BROKEN and REPAIRED are set from the admin endpoints.
const (
	StatusUnused   = "UNUSED"
	StatusUsed     = "USED"
	StatusBroken   = "BROKEN"
	StatusRepaired = "REPAIRED"
)

// Examination periods are expressed in months and converted with a fixed
// 30-day month. The original system used this approximation and due dates
// must stay comparable with data it produced.
const (
	examinationMonth  = 30 * 24 * time.Hour
	ExaminationWindow = 7 * 24 * time.Hour
)

type Item struct {
	ID               int64      `json:"id"`
	CategoryID       int64      `json:"category_id"`
	AreaID           int64      `json:"area_id"`
	Name             string     `json:"name"`
	Price            int64      `json:"price"`
	PhotoPath        *string    `json:"photo_path,omitempty"`
	ReceiptPath      *string    `json:"receipt_path,omitempty"`
	Code             string     `json:"code"`
	Status           string     `json:"status"`
	ExaminationDueAt *time.Time `json:"examination_due_at,omitempty"`
	GroupCode        *string    `json:"group_code,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Assignment records an item checked out to a user.
type Assignment struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ItemID    int64     `json:"item_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (i *Item) IsBroken() bool {
	return i.Status == StatusBroken
}

func (i *Item) MarkBroken() {
	i.Status = StatusBroken
	i.UpdatedAt = time.Now()
}

func (i *Item) MarkRepaired() {
	i.Status = StatusRepaired
	i.UpdatedAt = time.Now()
}

// ComputeExaminationDueDate returns from + periodMonths * 30 days.
func ComputeExaminationDueDate(periodMonths int, from time.Time) time.Time {
	return from.Add(time.Duration(periodMonths) * examinationMonth)
}

var (
	ErrItemNotFound        = internal.NewNotFoundError("item not found", internal.ErrCodeItemNotFound)
	ErrAssigneeNotFound    = internal.NewNotFoundError("user not found", internal.ErrCodeUserNotFound)
	ErrAssignmentNotFound  = internal.NewNotFoundError("assignment not found", internal.ErrCodeAssignmentNotFound)
	ErrItemAlreadyAssigned = internal.NewConflictError("item is already assigned", internal.ErrCodeItemAssigned)
	ErrDuplicateCode       = internal.NewConflictError("item code already exists", internal.ErrCodeInvalidCode)
	ErrItemNotBroken       = internal.NewInvalidTransitionError("item is not broken")
)

func ToDataModel(i *Item) *itemDatamodel.Item {
	return &itemDatamodel.Item{
		ID:               i.ID,
		CategoryID:       i.CategoryID,
		AreaID:           i.AreaID,
		Name:             i.Name,
		Price:            i.Price,
		PhotoPath:        i.PhotoPath,
		ReceiptPath:      i.ReceiptPath,
		Code:             i.Code,
		Status:           i.Status,
		ExaminationDueAt: i.ExaminationDueAt,
		GroupCode:        i.GroupCode,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
}

func FromDataModel(i *itemDatamodel.Item) *Item {
	return &Item{
		ID:               i.ID,
		CategoryID:       i.CategoryID,
		AreaID:           i.AreaID,
		Name:             i.Name,
		Price:            i.Price,
		PhotoPath:        i.PhotoPath,
		ReceiptPath:      i.ReceiptPath,
		Code:             i.Code,
		Status:           i.Status,
		ExaminationDueAt: i.ExaminationDueAt,
		GroupCode:        i.GroupCode,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
}

func FromDataModelSlice(items []*itemDatamodel.Item) []*Item {
	result := make([]*Item, len(items))
	for i, it := range items {
		result[i] = FromDataModel(it)
	}
	return result
}

func AssignmentFromDataModel(a *itemDatamodel.UserItem) *Assignment {
	return &Assignment{
		ID:        a.ID,
		UserID:    a.UserID,
		ItemID:    a.ItemID,
		CreatedAt: a.CreatedAt,
	}
}

func AssignmentFromDataModelSlice(rows []*itemDatamodel.UserItem) []*Assignment {
	result := make([]*Assignment, len(rows))
	for i, a := range rows {
		result[i] = AssignmentFromDataModel(a)
	}
	return result
}
