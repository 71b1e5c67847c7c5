package request

import "time"

type ItemRequest struct {
	ID            int64     `gorm:"primaryKey"`
	UserID        int64     `gorm:"column:user_id;not null"`
	Name          string    `gorm:"column:name;not null"`
	Description   string    `gorm:"column:description;not null"`
	PriceRange    string    `gorm:"column:price_range;not null"`
	ReferenceLink *string   `gorm:"column:reference_link"`
	Code          string    `gorm:"column:code;uniqueIndex;not null"`
	Status        string    `gorm:"column:status;default:PENDING"`
	CreatedAt     time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt     time.Time `gorm:"column:updated_at;default:now()"`
}

func (ItemRequest) TableName() string {
	return "item_requests"
}
