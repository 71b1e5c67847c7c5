package catalog

import "time"

type Category struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Code      string    `gorm:"column:code;not null"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:now()"`
}

func (Category) TableName() string {
	return "categories"
}

type Area struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Code      string    `gorm:"column:code;not null"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:now()"`
}

func (Area) TableName() string {
	return "areas"
}
