package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/museshop/backend/pkg/db/models"
	"github.com/museshop/backend/pkg/enums"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLedgerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS daily_sales (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  date_key INTEGER NOT NULL UNIQUE,
  amount NUMERIC NOT NULL DEFAULT 0
);`
	require.NoError(t, conn.Exec(schema).Error)
	require.NoError(t, conn.Exec("DELETE FROM daily_sales").Error)
	return conn
}

func day(yearDay int) time.Time {
	return time.Date(2025, time.March, yearDay, 15, 4, 5, 0, time.UTC)
}

func TestAccumulateCreatesThenAdds(t *testing.T) {
	repo := NewRepository(setupLedgerTestDB(t))
	ctx := context.Background()
	key := DateKey(day(3))

	require.NoError(t, repo.Accumulate(ctx, key, decimal.RequireFromString("120.50")))
	require.NoError(t, repo.Accumulate(ctx, key, decimal.RequireFromString("79.50")))

	amount, err := repo.AmountOn(ctx, key)
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("200.00")), "got %s", amount)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestAccumulateSeparatesDays(t *testing.T) {
	repo := NewRepository(setupLedgerTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Accumulate(ctx, DateKey(day(3)), decimal.NewFromInt(100)))
	require.NoError(t, repo.Accumulate(ctx, DateKey(day(4)), decimal.NewFromInt(40)))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	total, err := repo.TotalAllTime(ctx)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(140)), "got %s", total)
}

func TestAmountOnMissingDayIsZero(t *testing.T) {
	repo := NewRepository(setupLedgerTestDB(t))

	amount, err := repo.AmountOn(context.Background(), DateKey(day(20)))
	require.NoError(t, err)
	assert.True(t, amount.IsZero())
}

func TestRangeInclusiveBoundsAndOrder(t *testing.T) {
	repo := NewRepository(setupLedgerTestDB(t))
	ctx := context.Background()

	for d := 1; d <= 5; d++ {
		require.NoError(t, repo.Accumulate(ctx, DateKey(day(d)), decimal.NewFromInt(int64(d))))
	}

	start := DateKey(day(2))
	end := DateKey(day(4))

	newest, err := repo.RangeInclusive(ctx, start, end, enums.SortOrderNewest)
	require.NoError(t, err)
	require.Len(t, newest, 3)
	assert.Equal(t, DateKey(day(4)), newest[0].DateKey)
	assert.Equal(t, DateKey(day(2)), newest[2].DateKey)

	oldest, err := repo.RangeInclusive(ctx, start, end, enums.SortOrderOldest)
	require.NoError(t, err)
	require.Len(t, oldest, 3)
	assert.Equal(t, DateKey(day(2)), oldest[0].DateKey)
	assert.Equal(t, DateKey(day(4)), oldest[2].DateKey)
}

func TestTotalAllTimeEmptyTable(t *testing.T) {
	repo := NewRepository(setupLedgerTestDB(t))

	total, err := repo.TotalAllTime(context.Background())
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestInsertBatch(t *testing.T) {
	repo := NewRepository(setupLedgerTestDB(t))
	ctx := context.Background()

	rows := []models.DailySale{
		{DateKey: DateKey(day(1)), Amount: decimal.NewFromInt(10)},
		{DateKey: DateKey(day(2)), Amount: decimal.NewFromInt(20)},
	}
	require.NoError(t, repo.InsertBatch(ctx, rows))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
