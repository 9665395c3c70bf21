package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/museshop/backend/pkg/enums"
)

// User is a storefront account, customer or staff.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email        string         `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;not null" json:"-"`
	DisplayName  string         `gorm:"column:display_name" json:"display_name"`
	Role         enums.UserRole `gorm:"column:role;not null;default:customer" json:"role"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (User) TableName() string { return "users" }
