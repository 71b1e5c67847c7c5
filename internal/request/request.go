package request

import (
	"time"

	"github.com/frahmantamala/inventory-management/internal"
	requestDatamodel "github.com/frahmantamala/inventory-management/internal/core/datamodel/request"
)

// Request statuses. A request starts PENDING; an owner moves it to
// APPROVED or REJECTED, and an APPROVED request can be COMPLETED once
// the item has been procured. REJECTED and COMPLETED are terminal.
const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCompleted = "COMPLETED"
)

var allowedTransitions = map[string][]string{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusCompleted},
}

// CanTransition reports whether a request may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is one of the known request statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// ItemRequest is a user's ask for an item the inventory does not have yet.
type ItemRequest struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	PriceRange    string    `json:"price_range"`
	ReferenceLink *string   `json:"reference_link,omitempty"`
	Code          string    `json:"code"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

var (
	ErrRequestNotFound = internal.NewNotFoundError("request not found", internal.ErrCodeRequestNotFound)

	ErrIllegalTransition = internal.NewInvalidTransitionError(
		"request status transition not allowed")

	ErrUnknownStatus = internal.NewValidationError(
		"unknown request status", internal.ErrCodeValidationFailed)
)

func ToDataModel(r *ItemRequest) *requestDatamodel.ItemRequest {
	return &requestDatamodel.ItemRequest{
		ID:            r.ID,
		UserID:        r.UserID,
		Name:          r.Name,
		Description:   r.Description,
		PriceRange:    r.PriceRange,
		ReferenceLink: r.ReferenceLink,
		Code:          r.Code,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func FromDataModel(row *requestDatamodel.ItemRequest) *ItemRequest {
	return &ItemRequest{
		ID:            row.ID,
		UserID:        row.UserID,
		Name:          row.Name,
		Description:   row.Description,
		PriceRange:    row.PriceRange,
		ReferenceLink: row.ReferenceLink,
		Code:          row.Code,
		Status:        row.Status,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func FromDataModelSlice(rows []*requestDatamodel.ItemRequest) []*ItemRequest {
	out := make([]*ItemRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out
}
