package ledger

import (
	"context"
	"errors"

	"github.com/museshop/backend/pkg/db/models"
	"github.com/museshop/backend/pkg/enums"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository manages persistence for the daily sales ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Accumulate(ctx context.Context, dateKey int64, delta decimal.Decimal) error
	AmountOn(ctx context.Context, dateKey int64) (decimal.Decimal, error)
	RangeInclusive(ctx context.Context, startKey, endKey int64, order enums.SortOrder) ([]models.DailySale, error)
	TotalAllTime(ctx context.Context) (decimal.Decimal, error)
	InsertBatch(ctx context.Context, rows []models.DailySale) error
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// Accumulate adds delta to the day's total, creating the row on first write.
// The upsert runs in a single statement so concurrent settlements on the same
// day serialize on the row instead of losing updates.
func (r *repository) Accumulate(ctx context.Context, dateKey int64, delta decimal.Decimal) error {
	row := models.DailySale{DateKey: dateKey, Amount: delta}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "date_key"}},
			DoUpdates: clause.Assignments(map[string]any{
				"amount": gorm.Expr("daily_sales.amount + excluded.amount"),
			}),
		}).
		Create(&row).
		Error
}

// AmountOn returns the day's total, or zero when no sales were recorded.
func (r *repository) AmountOn(ctx context.Context, dateKey int64) (decimal.Decimal, error) {
	var row models.DailySale
	err := r.db.WithContext(ctx).First(&row, "date_key = ?", dateKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return row.Amount, nil
}

// RangeInclusive returns the rows with startKey <= date_key <= endKey in the
// requested order.
func (r *repository) RangeInclusive(ctx context.Context, startKey, endKey int64, order enums.SortOrder) ([]models.DailySale, error) {
	direction := "date_key DESC"
	if order == enums.SortOrderOldest {
		direction = "date_key ASC"
	}

	var rows []models.DailySale
	err := r.db.WithContext(ctx).
		Where("date_key BETWEEN ? AND ?", startKey, endKey).
		Order(direction).
		Find(&rows).
		Error
	return rows, err
}

// TotalAllTime sums every ledger row.
func (r *repository) TotalAllTime(ctx context.Context) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.DailySale{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Scan(&result).
		Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

func (r *repository) InsertBatch(ctx context.Context, rows []models.DailySale) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(rows, 200).Error
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.DailySale{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
