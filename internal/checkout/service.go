package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/museshop/backend/internal/cart"
	"github.com/museshop/backend/internal/ledger"
	"github.com/museshop/backend/internal/payments"
	"github.com/museshop/backend/internal/products"
	"github.com/museshop/backend/pkg/db"
	"github.com/museshop/backend/pkg/db/models"
	"github.com/museshop/backend/pkg/enums"
	pkgerrors "github.com/museshop/backend/pkg/errors"
	"github.com/museshop/backend/pkg/metrics"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service settles the selected cart lines into a payment record.
type Service interface {
	Settle(ctx context.Context, userID string, lines []cart.Line, method enums.PaymentMethod) (*models.Payment, error)
}

type service struct {
	tx           txRunner
	paymentsRepo payments.Repository
	productsRepo products.Repository
	ledgerRepo   ledger.Repository
	metrics      *metrics.CheckoutMetrics
	now          func() time.Time
}

// NewService builds the checkout service. Metrics may be nil.
func NewService(
	tx txRunner,
	paymentsRepo payments.Repository,
	productsRepo products.Repository,
	ledgerRepo ledger.Repository,
	checkoutMetrics *metrics.CheckoutMetrics,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if paymentsRepo == nil {
		return nil, fmt.Errorf("payments repository required")
	}
	if productsRepo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if ledgerRepo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	return &service{
		tx:           tx,
		paymentsRepo: paymentsRepo,
		productsRepo: productsRepo,
		ledgerRepo:   ledgerRepo,
		metrics:      checkoutMetrics,
		now:          time.Now,
	}, nil
}

// Settle writes the payment, decrements stock, and accumulates the daily
// ledger inside one transaction. Any failure rolls everything back; the
// caller clears the settled lines from the cart only after Settle returns
// without error.
func (s *service) Settle(ctx context.Context, userID string, lines []cart.Line, method enums.PaymentMethod) (*models.Payment, error) {
	started := s.now()
	payment, err := s.settle(ctx, userID, lines, method)
	if err != nil {
		s.metrics.IncFailure(string(method))
		return nil, err
	}
	s.metrics.IncSuccess(string(method))
	s.metrics.ObserveDuration(string(method), s.now().Sub(started))
	return payment, nil
}

func (s *service) settle(ctx context.Context, userID string, lines []cart.Line, method enums.PaymentMethod) (*models.Payment, error) {
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if !method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown payment method %q", method))
	}
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no items selected for checkout")
	}
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid quantity for %q", line.Name))
		}
	}

	now := s.now()
	total := decimal.Zero
	totalQty := 0
	names := make([]string, 0, len(lines))
	for _, line := range lines {
		total = total.Add(line.LineTotal())
		totalQty += line.Quantity
		names = append(names, line.Name)
	}

	payment := &models.Payment{
		PaymentID:    payments.NewPaymentID(method, now),
		UserID:       userID,
		ProductNames: strings.Join(names, ", "),
		Quantity:     totalQty,
		TotalAmount:  total,
		Method:       method,
		Status:       method.InitialStatus(),
		CreatedAt:    now,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		paymentsRepo := s.paymentsRepo.WithTx(tx)
		productsRepo := s.productsRepo.WithTx(tx)
		ledgerRepo := s.ledgerRepo.WithTx(tx)

		if err := paymentsRepo.Create(ctx, payment); err != nil {
			return db.Translate(err, "creating payment record")
		}

		for _, line := range lines {
			applied, err := productsRepo.DecrementStock(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return db.Translate(err, fmt.Sprintf("decrementing stock for %q", line.Name))
			}
			if !applied {
				return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("not enough stock for %q", line.Name))
			}
		}

		if err := ledgerRepo.Accumulate(ctx, ledger.DateKey(now), total); err != nil {
			return db.Translate(err, "accumulating daily sales")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}
