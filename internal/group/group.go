package group

import (
	"time"

	"github.com/frahmantamala/inventory-management/internal"
	groupDatamodel "github.com/frahmantamala/inventory-management/internal/core/datamodel/group"
)

// Group is a named code that batches items together, for example all the
// items bought for one office or one event.
type Group struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Membership records that an item belongs to a group.
type Membership struct {
	ID        int64     `json:"id"`
	ItemID    int64     `json:"item_id"`
	GroupID   int64     `json:"group_id"`
	CreatedAt time.Time `json:"created_at"`
}

var (
	ErrGroupNotFound = internal.NewNotFoundError("group not found", internal.ErrCodeGroupNotFound)

	ErrDuplicateMember = internal.NewConflictError(
		"item already belongs to this group", internal.ErrCodeDuplicateMember)

	ErrMembershipNotFound = internal.NewNotFoundError(
		"item is not a member of this group", internal.ErrCodeMembershipNotFound)
)

func ToDataModel(g *Group) *groupDatamodel.GroupCode {
	return &groupDatamodel.GroupCode{
		ID:        g.ID,
		Name:      g.Name,
		CreatedAt: g.CreatedAt,
	}
}

func FromDataModel(row *groupDatamodel.GroupCode) *Group {
	return &Group{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
	}
}

func FromDataModelSlice(rows []*groupDatamodel.GroupCode) []*Group {
	out := make([]*Group, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out
}

func MembershipFromDataModel(row *groupDatamodel.ItemGroup) *Membership {
	return &Membership{
		ID:        row.ID,
		ItemID:    row.ItemID,
		GroupID:   row.GroupID,
		CreatedAt: row.CreatedAt,
	}
}

func MembershipFromDataModelSlice(rows []*groupDatamodel.ItemGroup) []*Membership {
	out := make([]*Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, MembershipFromDataModel(row))
	}
	return out
}
