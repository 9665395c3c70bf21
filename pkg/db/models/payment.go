package models

import (
	"time"

	"github.com/museshop/backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Payment is an immutable settlement record. Only Status may change after
// creation (pending cash payments complete once collected).
type Payment struct {
	PaymentID    string              `gorm:"column:payment_id;primaryKey" json:"payment_id"`
	UserID       string              `gorm:"column:user_id;not null;index" json:"user_id"`
	ProductNames string              `gorm:"column:product_names;not null" json:"product_names"`
	Quantity     int                 `gorm:"column:quantity;not null" json:"quantity"`
	TotalAmount  decimal.Decimal     `gorm:"column:total_amount;type:numeric(12,2);not null" json:"total_amount"`
	Method       enums.PaymentMethod `gorm:"column:method;not null" json:"method"`
	Status       enums.PaymentStatus `gorm:"column:status;not null" json:"status"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (Payment) TableName() string { return "payments" }
