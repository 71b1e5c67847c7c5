package item

import "time"

type Item struct {
	ID               int64      `gorm:"primaryKey"`
	CategoryID       int64      `gorm:"column:category_id;not null"`
	AreaID           int64      `gorm:"column:area_id;not null"`
	Name             string     `gorm:"column:name;not null"`
	Price            int64      `gorm:"column:price;not null"`
	PhotoPath        *string    `gorm:"column:photo_path"`
	ReceiptPath      *string    `gorm:"column:receipt_path"`
	Code             string     `gorm:"column:code;uniqueIndex;not null"`
	Status           string     `gorm:"column:status;default:UNUSED"`
	ExaminationDueAt *time.Time `gorm:"column:examination_due_at"`
	GroupCode        *string    `gorm:"column:group_code"`
	CreatedAt        time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;default:now()"`
}

func (Item) TableName() string {
	return "items"
}

// UserItem records an item currently checked out to a user.
type UserItem struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null"`
	ItemID    int64     `gorm:"column:item_id;not null"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (UserItem) TableName() string {
	return "user_items"
}
