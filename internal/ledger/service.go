package ledger

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/museshop/backend/pkg/db"
	"github.com/museshop/backend/pkg/db/models"
	"github.com/museshop/backend/pkg/enums"
	pkgerrors "github.com/museshop/backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Seeded history starts here: a fresh install gets a daily row for every day
// from this date up to yesterday.
var seedStart = time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)

// Service exposes read and seed operations over the daily sales ledger.
// Settlement writes go through the repository directly so they can share the
// checkout transaction.
type Service interface {
	Accumulate(ctx context.Context, at time.Time, amount decimal.Decimal) error
	TodaysTotal(ctx context.Context) (decimal.Decimal, error)
	OverallTotal(ctx context.Context) (decimal.Decimal, error)
	Range(ctx context.Context, startKey, endKey int64, order enums.SortOrder) ([]models.DailySale, error)
	SeedIfEmpty(ctx context.Context) (int, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService wires a ledger service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Accumulate(ctx context.Context, at time.Time, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "ledger amount cannot be negative")
	}
	if err := s.repo.Accumulate(ctx, DateKey(at), amount); err != nil {
		return db.Translate(err, "accumulating daily sales")
	}
	return nil
}

func (s *service) TodaysTotal(ctx context.Context) (decimal.Decimal, error) {
	total, err := s.repo.AmountOn(ctx, DateKey(s.now()))
	if err != nil {
		return decimal.Zero, db.Translate(err, "loading today's sales")
	}
	return total, nil
}

func (s *service) OverallTotal(ctx context.Context) (decimal.Decimal, error) {
	total, err := s.repo.TotalAllTime(ctx)
	if err != nil {
		return decimal.Zero, db.Translate(err, "loading overall sales")
	}
	return total, nil
}

func (s *service) Range(ctx context.Context, startKey, endKey int64, order enums.SortOrder) ([]models.DailySale, error) {
	if startKey > endKey {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "start of range is after its end")
	}
	rows, err := s.repo.RangeInclusive(ctx, startKey, endKey, order)
	if err != nil {
		return nil, db.Translate(err, "loading sales range")
	}
	return rows, nil
}

// SeedIfEmpty backfills the ledger with random daily totals between 5000 and
// 10000 for every day since seedStart. Runs only against an empty table and
// returns how many rows were inserted.
func (s *service) SeedIfEmpty(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, db.Translate(err, "counting ledger rows")
	}
	if count > 0 {
		return 0, nil
	}

	today := DateKey(s.now())
	var rows []models.DailySale
	for day := seedStart; day.UnixMilli() < today; day = day.AddDate(0, 0, 1) {
		amount := decimal.NewFromFloat(5000 + rand.Float64()*5000).Round(2)
		rows = append(rows, models.DailySale{DateKey: day.UnixMilli(), Amount: amount})
	}

	if err := s.repo.InsertBatch(ctx, rows); err != nil {
		return 0, db.Translate(err, "seeding ledger rows")
	}
	return len(rows), nil
}
