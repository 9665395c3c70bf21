package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog listing. Stock is decremented at settlement and is
// never allowed below zero.
type Product struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Stock       int             `gorm:"column:stock;not null;default:0" json:"stock"`
	ImageURL    string          `gorm:"column:image_url" json:"image_url"`
	Description string          `gorm:"column:description" json:"description"`
	Category    string          `gorm:"column:category" json:"category"`
	IsFavorite  bool            `gorm:"column:is_favorite;not null;default:false" json:"is_favorite"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Product) TableName() string { return "products" }
