package models

import "github.com/shopspring/decimal"

// DailySale accumulates settled revenue for one calendar day. DateKey is the
// UTC-midnight epoch in milliseconds; at most one row exists per key.
type DailySale struct {
	ID      int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	DateKey int64           `gorm:"column:date_key;not null;uniqueIndex" json:"date_key"`
	Amount  decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null" json:"amount"`
}

func (DailySale) TableName() string { return "daily_sales" }
