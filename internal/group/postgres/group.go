package postgres

import (
	"time"

	groupDatamodel "github.com/frahmantamala/inventory-management/internal/core/datamodel/group"
	itemDatamodel "github.com/frahmantamala/inventory-management/internal/core/datamodel/item"
	"github.com/frahmantamala/inventory-management/internal/group"
	"github.com/frahmantamala/inventory-management/internal/item"
	"gorm.io/gorm"
)

// GroupRepository implements the group.Repository interface using GORM
type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) group.Repository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) Create(g *group.Group) error {
	row := group.ToDataModel(g)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	g.ID = row.ID
	return nil
}

func (r *GroupRepository) GetByID(id int64) (*group.Group, error) {
	var row groupDatamodel.GroupCode
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, group.ErrGroupNotFound
		}
		return nil, err
	}
	return group.FromDataModel(&row), nil
}

func (r *GroupRepository) List(limit, offset int) ([]*group.Group, error) {
	var rows []*groupDatamodel.GroupCode
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return group.FromDataModelSlice(rows), nil
}

// DeleteCascade removes the group and all its membership rows in one
// transaction. Items referenced by the memberships are left untouched.
func (r *GroupRepository) DeleteCascade(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&groupDatamodel.ItemGroup{}).Error; err != nil {
			return err
		}
		return tx.Delete(&groupDatamodel.GroupCode{}, id).Error
	})
}

// AddItem inserts a membership row; the duplicate check and the insert run
// in the same transaction so a racing insert still hits the unique index.
func (r *GroupRepository) AddItem(groupID, itemID int64) (*group.Membership, error) {
	row := &groupDatamodel.ItemGroup{
		ItemID:    itemID,
		GroupID:   groupID,
		CreatedAt: time.Now(),
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&groupDatamodel.ItemGroup{}).
			Where("group_id = ? AND item_id = ?", groupID, itemID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return group.ErrDuplicateMember
		}
		return tx.Create(row).Error
	})
	if err != nil {
		return nil, err
	}

	return group.MembershipFromDataModel(row), nil
}

// RemoveItem deletes a membership row; zero affected rows means the item
// was never in the group.
func (r *GroupRepository) RemoveItem(groupID, itemID int64) error {
	res := r.db.Where("group_id = ? AND item_id = ?", groupID, itemID).
		Delete(&groupDatamodel.ItemGroup{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return group.ErrMembershipNotFound
	}
	return nil
}

func (r *GroupRepository) ListItems(groupID int64) ([]*item.Item, error) {
	var rows []*itemDatamodel.Item
	err := r.db.Model(&itemDatamodel.Item{}).
		Joins("JOIN item_groups ig ON ig.item_id = items.id").
		Where("ig.group_id = ?", groupID).
		Order("items.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return item.FromDataModelSlice(rows), nil
}
