package postgres

import (
	"time"

	itemDatamodel "github.com/frahmantamala/inventory-management/internal/core/datamodel/item"
	"github.com/frahmantamala/inventory-management/internal/item"
	"gorm.io/gorm"
)

// ItemRepository implements the item.Repository interface using GORM
type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) item.Repository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Create(it *item.Item) error {
	row := item.ToDataModel(it)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	it.ID = row.ID
	return nil
}

func (r *ItemRepository) GetByID(id int64) (*item.Item, error) {
	var row itemDatamodel.Item
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, item.ErrItemNotFound
		}
		return nil, err
	}
	return item.FromDataModel(&row), nil
}

func (r *ItemRepository) CodeExists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&itemDatamodel.Item{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *ItemRepository) List(filter item.ListFilter) ([]*item.Item, error) {
	q := r.db.Model(&itemDatamodel.Item{}).Order("created_at DESC")
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.AreaID != nil {
		q = q.Where("area_id = ?", *filter.AreaID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}

	var rows []*itemDatamodel.Item
	err := q.Limit(filter.Limit).Offset(filter.Offset).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return item.FromDataModelSlice(rows), nil
}

func (r *ItemRepository) Update(it *item.Item) error {
	it.UpdatedAt = time.Now()
	return r.db.Save(item.ToDataModel(it)).Error
}

func (r *ItemRepository) UpdateStatus(id int64, status string) error {
	return r.db.Model(&itemDatamodel.Item{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

func (r *ItemRepository) Delete(id int64) error {
	return r.db.Delete(&itemDatamodel.Item{}, id).Error
}

// DueBetween selects items with an examination due strictly inside (from, to).
func (r *ItemRepository) DueBetween(from, to time.Time) ([]*item.Item, error) {
	var rows []*itemDatamodel.Item
	err := r.db.Where("examination_due_at > ? AND examination_due_at < ?", from, to).
		Order("examination_due_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return item.FromDataModelSlice(rows), nil
}

// AssignmentRepository implements item.AssignmentRepository. Assignment
// writes pair a user_items row change with the item status update inside a
// single transaction so the two can never drift apart.
type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) item.AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Assign(userID, itemID int64) (*item.Assignment, error) {
	row := &itemDatamodel.UserItem{
		UserID:    userID,
		ItemID:    itemID,
		CreatedAt: time.Now(),
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var live int64
		if err := tx.Model(&itemDatamodel.UserItem{}).Where("item_id = ?", itemID).Count(&live).Error; err != nil {
			return err
		}
		if live > 0 {
			return item.ErrItemAlreadyAssigned
		}

		if err := tx.Create(row).Error; err != nil {
			return err
		}

		return tx.Model(&itemDatamodel.Item{}).
			Where("id = ?", itemID).
			Updates(map[string]interface{}{
				"status":     item.StatusUsed,
				"updated_at": time.Now(),
			}).Error
	})
	if err != nil {
		return nil, err
	}

	return item.AssignmentFromDataModel(row), nil
}

func (r *AssignmentRepository) Unassign(assignmentID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var row itemDatamodel.UserItem
		if err := tx.Where("id = ?", assignmentID).First(&row).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return item.ErrAssignmentNotFound
			}
			return err
		}

		if err := tx.Delete(&itemDatamodel.UserItem{}, assignmentID).Error; err != nil {
			return err
		}

		return tx.Model(&itemDatamodel.Item{}).
			Where("id = ?", row.ItemID).
			Updates(map[string]interface{}{
				"status":     item.StatusUnused,
				"updated_at": time.Now(),
			}).Error
	})
}

func (r *AssignmentRepository) Reassign(assignmentID, newItemID int64) (*item.Assignment, error) {
	var row itemDatamodel.UserItem

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", assignmentID).First(&row).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return item.ErrAssignmentNotFound
			}
			return err
		}

		if row.ItemID == newItemID {
			return nil
		}

		var live int64
		if err := tx.Model(&itemDatamodel.UserItem{}).Where("item_id = ?", newItemID).Count(&live).Error; err != nil {
			return err
		}
		if live > 0 {
			return item.ErrItemAlreadyAssigned
		}

		oldItemID := row.ItemID
		row.ItemID = newItemID
		if err := tx.Save(&row).Error; err != nil {
			return err
		}

		if err := tx.Model(&itemDatamodel.Item{}).
			Where("id = ?", oldItemID).
			Updates(map[string]interface{}{
				"status":     item.StatusUnused,
				"updated_at": time.Now(),
			}).Error; err != nil {
			return err
		}

		return tx.Model(&itemDatamodel.Item{}).
			Where("id = ?", newItemID).
			Updates(map[string]interface{}{
				"status":     item.StatusUsed,
				"updated_at": time.Now(),
			}).Error
	})
	if err != nil {
		return nil, err
	}

	return item.AssignmentFromDataModel(&row), nil
}

func (r *AssignmentRepository) GetByID(assignmentID int64) (*item.Assignment, error) {
	var row itemDatamodel.UserItem
	err := r.db.Where("id = ?", assignmentID).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, item.ErrAssignmentNotFound
		}
		return nil, err
	}
	return item.AssignmentFromDataModel(&row), nil
}

func (r *AssignmentRepository) ListByUser(userID int64) ([]*item.Assignment, error) {
	var rows []*itemDatamodel.UserItem
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return item.AssignmentFromDataModelSlice(rows), nil
}

func (r *AssignmentRepository) ListAll(limit, offset int) ([]*item.Assignment, error) {
	var rows []*itemDatamodel.UserItem
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return item.AssignmentFromDataModelSlice(rows), nil
}
