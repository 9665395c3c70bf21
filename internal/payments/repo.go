package payments

import (
	"context"

	"github.com/museshop/backend/pkg/db/models"
	"github.com/museshop/backend/pkg/enums"
	"github.com/museshop/backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository manages persistence for settlement records.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, paymentID string) (*models.Payment, error)
	UpdateStatus(ctx context.Context, paymentID string, status enums.PaymentStatus) error
	ListForUser(ctx context.Context, userID string, params pagination.Params) (*ListResult, error)
	ListAll(ctx context.Context, params pagination.Params) (*ListResult, error)
}

// ListResult is one page of payments plus the cursor for the next page.
type ListResult struct {
	Payments   []models.Payment `json:"payments"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a payments repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *repository) FindByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).First(&payment, "payment_id = ?", paymentID).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *repository) UpdateStatus(ctx context.Context, paymentID string, status enums.PaymentStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("payment_id = ?", paymentID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListForUser returns the user's payments newest first with cursor pagination.
func (r *repository) ListForUser(ctx context.Context, userID string, params pagination.Params) (*ListResult, error) {
	qb := r.db.WithContext(ctx).Where("user_id = ?", userID)
	return r.listPage(qb, params)
}

// ListAll returns every payment newest first; staff only.
func (r *repository) ListAll(ctx context.Context, params pagination.Params) (*ListResult, error) {
	return r.listPage(r.db.WithContext(ctx), params)
}

func (r *repository) listPage(qb *gorm.DB, params pagination.Params) (*ListResult, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND payment_id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Payment
	err = qb.Order("created_at DESC").
		Order("payment_id DESC").
		Limit(limitWithBuffer).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	nextCursor := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.PaymentID})
	}

	return &ListResult{Payments: rows, NextCursor: nextCursor}, nil
}
