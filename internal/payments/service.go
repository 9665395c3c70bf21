package payments

import (
	"context"
	"fmt"

	"github.com/museshop/backend/pkg/db"
	"github.com/museshop/backend/pkg/db/models"
	"github.com/museshop/backend/pkg/enums"
	pkgerrors "github.com/museshop/backend/pkg/errors"
	"github.com/museshop/backend/pkg/pagination"
)

// Service exposes order history reads and the cash confirmation flow.
// Settlement inserts go through the repository inside the checkout
// transaction.
type Service interface {
	GetForUser(ctx context.Context, userID, paymentID string) (*models.Payment, error)
	Get(ctx context.Context, paymentID string) (*models.Payment, error)
	HistoryForUser(ctx context.Context, userID string, params pagination.Params) (*ListResult, error)
	HistoryAll(ctx context.Context, params pagination.Params) (*ListResult, error)
	ConfirmCash(ctx context.Context, paymentID string) (*models.Payment, error)
}

type service struct {
	repo Repository
}

// NewService wires a payments service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payments repository required")
	}
	return &service{repo: repo}, nil
}

// GetForUser loads a payment and hides other users' records behind a
// not-found error.
func (s *service) GetForUser(ctx context.Context, userID, paymentID string) (*models.Payment, error) {
	payment, err := s.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("payment %q not found", paymentID))
	}
	return payment, nil
}

func (s *service) Get(ctx context.Context, paymentID string) (*models.Payment, error) {
	if paymentID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment id is required")
	}
	payment, err := s.repo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, db.Translate(err, fmt.Sprintf("loading payment %q", paymentID))
	}
	return payment, nil
}

func (s *service) HistoryForUser(ctx context.Context, userID string, params pagination.Params) (*ListResult, error) {
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	result, err := s.repo.ListForUser(ctx, userID, params)
	if err != nil {
		return nil, db.Translate(err, "listing payment history")
	}
	return result, nil
}

func (s *service) HistoryAll(ctx context.Context, params pagination.Params) (*ListResult, error) {
	result, err := s.repo.ListAll(ctx, params)
	if err != nil {
		return nil, db.Translate(err, "listing payments")
	}
	return result, nil
}

// ConfirmCash completes a pending cash payment once staff collect the money.
func (s *service) ConfirmCash(ctx context.Context, paymentID string) (*models.Payment, error) {
	payment, err := s.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Method != enums.PaymentMethodCash {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("payment %q is not a cash payment", paymentID))
	}
	if payment.Status != enums.PaymentStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("payment %q is already %s", paymentID, payment.Status))
	}

	if err := s.repo.UpdateStatus(ctx, paymentID, enums.PaymentStatusCompleted); err != nil {
		return nil, db.Translate(err, fmt.Sprintf("completing payment %q", paymentID))
	}
	payment.Status = enums.PaymentStatusCompleted
	return payment, nil
}
