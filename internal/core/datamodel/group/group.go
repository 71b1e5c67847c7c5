package group

import "time"

type GroupCode struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (GroupCode) TableName() string {
	return "group_codes"
}

// ItemGroup joins items to a group code; an (item_id, group_id) pair is unique.
type ItemGroup struct {
	ID        int64     `gorm:"primaryKey"`
	ItemID    int64     `gorm:"column:item_id;not null;uniqueIndex:idx_item_group"`
	GroupID   int64     `gorm:"column:group_id;not null;uniqueIndex:idx_item_group"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (ItemGroup) TableName() string {
	return "item_groups"
}
