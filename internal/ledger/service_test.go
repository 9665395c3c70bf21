package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/museshop/backend/pkg/db/models"
	"github.com/museshop/backend/pkg/enums"
	pkgerrors "github.com/museshop/backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type fakeRepository struct {
	amounts map[int64]decimal.Decimal
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{amounts: make(map[int64]decimal.Decimal)}
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) Accumulate(ctx context.Context, dateKey int64, delta decimal.Decimal) error {
	f.amounts[dateKey] = f.amounts[dateKey].Add(delta)
	return nil
}

func (f *fakeRepository) AmountOn(ctx context.Context, dateKey int64) (decimal.Decimal, error) {
	return f.amounts[dateKey], nil
}

func (f *fakeRepository) RangeInclusive(ctx context.Context, startKey, endKey int64, order enums.SortOrder) ([]models.DailySale, error) {
	var rows []models.DailySale
	for key, amount := range f.amounts {
		if key >= startKey && key <= endKey {
			rows = append(rows, models.DailySale{DateKey: key, Amount: amount})
		}
	}
	return rows, nil
}

func (f *fakeRepository) TotalAllTime(ctx context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, amount := range f.amounts {
		total = total.Add(amount)
	}
	return total, nil
}

func (f *fakeRepository) InsertBatch(ctx context.Context, rows []models.DailySale) error {
	for _, row := range rows {
		f.amounts[row.DateKey] = row.Amount
	}
	return nil
}

func (f *fakeRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(f.amounts)), nil
}

func TestDateKeyTruncatesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	local := time.Date(2025, time.June, 2, 3, 30, 0, 0, loc) // 2025-06-01T19:30Z

	key := DateKey(local)
	want := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	if key != want {
		t.Fatalf("expected key %d, got %d", want, key)
	}
	if got := KeyTime(key); !got.Equal(time.UnixMilli(want)) {
		t.Fatalf("round trip mismatch: %s", got)
	}
}

func TestMonthSpanCoversWholeMonth(t *testing.T) {
	start, end := MonthSpan(2024, time.February)

	if got := KeyTime(start); got.Day() != 1 || got.Month() != time.February {
		t.Fatalf("unexpected start %s", got)
	}
	// 2024 is a leap year.
	if got := KeyTime(end); got.Day() != 29 || got.Month() != time.February {
		t.Fatalf("unexpected end %s", got)
	}
}

func TestServiceAccumulateRejectsNegative(t *testing.T) {
	svc, err := NewService(newFakeRepository())
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	err = svc.Accumulate(context.Background(), time.Now(), decimal.NewFromInt(-5))
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceAccumulateAddsSameDay(t *testing.T) {
	repo := newFakeRepository()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	morning := time.Date(2025, time.April, 10, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2025, time.April, 10, 21, 0, 0, 0, time.UTC)
	if err := svc.Accumulate(context.Background(), morning, decimal.NewFromInt(30)); err != nil {
		t.Fatalf("accumulate: %v", err)
	}
	if err := svc.Accumulate(context.Background(), evening, decimal.NewFromInt(12)); err != nil {
		t.Fatalf("accumulate: %v", err)
	}

	got := repo.amounts[DateKey(morning)]
	if !got.Equal(decimal.NewFromInt(42)) {
		t.Fatalf("expected 42 on the day, got %s", got)
	}
	if len(repo.amounts) != 1 {
		t.Fatalf("expected a single row, got %d", len(repo.amounts))
	}
}

func TestServiceRangeRejectsInvertedBounds(t *testing.T) {
	svc, err := NewService(newFakeRepository())
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	_, err = svc.Range(context.Background(), 10, 5, enums.SortOrderNewest)
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceSeedIfEmpty(t *testing.T) {
	repo := newFakeRepository()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	fixed := time.Date(2022, time.January, 11, 12, 0, 0, 0, time.UTC)
	svc.(*service).now = func() time.Time { return fixed }

	inserted, err := svc.SeedIfEmpty(context.Background())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	// Jan 1 through Jan 10 inclusive; today is never seeded.
	if inserted != 10 {
		t.Fatalf("expected 10 seeded days, got %d", inserted)
	}
	for key, amount := range repo.amounts {
		if amount.LessThan(decimal.NewFromInt(5000)) || amount.GreaterThanOrEqual(decimal.NewFromInt(10000)) {
			t.Fatalf("seeded amount %s on %d outside [5000,10000)", amount, key)
		}
	}

	inserted, err = svc.SeedIfEmpty(context.Background())
	if err != nil {
		t.Fatalf("seed again: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("expected no inserts on seeded ledger, got %d", inserted)
	}
}

func TestServiceTodaysTotalDefaultsToZero(t *testing.T) {
	svc, err := NewService(newFakeRepository())
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	total, err := svc.TodaysTotal(context.Background())
	if err != nil {
		t.Fatalf("todays total: %v", err)
	}
	if !total.IsZero() {
		t.Fatalf("expected zero, got %s", total)
	}
}
