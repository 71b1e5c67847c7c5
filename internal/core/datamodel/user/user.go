package user

import "time"

type User struct {
	ID           int64     `gorm:"primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	Name         string    `gorm:"column:name;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	IsActive     bool      `gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time `gorm:"column:updated_at;default:now()"`
}

func (User) TableName() string {
	return "users"
}

type Role struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	Priority  int       `gorm:"column:priority;not null"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (Role) TableName() string {
	return "roles"
}

type UserRole struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_user_role"`
	RoleID    int64     `gorm:"column:role_id;not null;uniqueIndex:idx_user_role"`
	GrantedBy *int64    `gorm:"column:granted_by"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
