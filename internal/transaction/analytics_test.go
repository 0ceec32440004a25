package transaction_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/moneymuse/internal/transaction"
)

func tx(typ transaction.Type, amount string, date time.Time) *transaction.Transaction {
	return &transaction.Transaction{
		Type:   typ,
		Amount: decimal.RequireFromString(amount),
		Date:   date,
	}
}

func TestSummarize(t *testing.T) {
	march := func(day int) time.Time {
		return time.Date(2025, time.March, day, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name        string
		txs         []*transaction.Transaction
		wantIncome  string
		wantExpense string
		wantCount   int
	}{
		{
			name:        "Empty",
			txs:         nil,
			wantIncome:  "0",
			wantExpense: "0",
			wantCount:   0,
		},
		{
			name: "MixedTypes",
			txs: []*transaction.Transaction{
				tx(transaction.TypeExpense, "50", march(5)),
				tx(transaction.TypeExpense, "30", march(12)),
				tx(transaction.TypeIncome, "20", march(20)),
			},
			wantIncome:  "20",
			wantExpense: "80",
			wantCount:   3,
		},
		{
			name: "CentsAddExactly",
			txs: []*transaction.Transaction{
				tx(transaction.TypeExpense, "0.10", march(1)),
				tx(transaction.TypeExpense, "0.20", march(2)),
			},
			wantIncome:  "0",
			wantExpense: "0.30",
			wantCount:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := transaction.Summarize(tt.txs)

			assert.True(t, got.TotalIncome.Equal(decimal.RequireFromString(tt.wantIncome)),
				"income = %s", got.TotalIncome)
			assert.True(t, got.TotalExpense.Equal(decimal.RequireFromString(tt.wantExpense)),
				"expense = %s", got.TotalExpense)
			assert.Equal(t, tt.wantCount, got.Count)
		})
	}
}

func TestBucketize_Monthly(t *testing.T) {
	txs := []*transaction.Transaction{
		tx(transaction.TypeExpense, "50", time.Date(2025, time.March, 5, 14, 30, 0, 0, time.UTC)),
		tx(transaction.TypeExpense, "30", time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)),
		tx(transaction.TypeIncome, "20", time.Date(2025, time.March, 20, 23, 59, 59, 0, time.UTC)),
	}

	points := transaction.Bucketize(txs, transaction.IntervalMonth)

	require.Len(t, points, 1)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), points[0].Period)
	assert.True(t, points[0].Total.Equal(decimal.NewFromInt(100)), "total = %s", points[0].Total)
}

func TestBucketize_MonthlySkipsEmptyMonths(t *testing.T) {
	txs := []*transaction.Transaction{
		tx(transaction.TypeExpense, "10", time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)),
		tx(transaction.TypeExpense, "20", time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC)),
	}

	points := transaction.Bucketize(txs, transaction.IntervalMonth)

	// February had no activity, so no zero bucket appears between the two.
	require.Len(t, points, 2)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), points[0].Period)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), points[1].Period)
}

func TestBucketize_MonthlyOrderedAscending(t *testing.T) {
	txs := []*transaction.Transaction{
		tx(transaction.TypeExpense, "3", time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)),
		tx(transaction.TypeExpense, "1", time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)),
		tx(transaction.TypeExpense, "2", time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)),
	}

	points := transaction.Bucketize(txs, transaction.IntervalMonth)

	require.Len(t, points, 3)
	for i := 1; i < len(points); i++ {
		assert.True(t, points[i-1].Period.Before(points[i].Period))
	}
}

func TestBucketize_Weekly(t *testing.T) {
	// 2025-03-03 (Monday) and 2025-03-05 share a 7-day block counted from the
	// Unix epoch; 2025-03-12 falls in the next one.
	txs := []*transaction.Transaction{
		tx(transaction.TypeExpense, "40", time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)),
		tx(transaction.TypeExpense, "60", time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)),
		tx(transaction.TypeIncome, "25", time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)),
	}

	points := transaction.Bucketize(txs, transaction.IntervalWeek)

	require.Len(t, points, 2)
	assert.True(t, points[0].Total.Equal(decimal.NewFromInt(100)), "first week = %s", points[0].Total)
	assert.True(t, points[1].Total.Equal(decimal.NewFromInt(25)), "second week = %s", points[1].Total)

	// Week starts are always whole multiples of 7 days from 1970-01-01.
	for _, p := range points {
		days := int(p.Period.Sub(time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)).Hours() / 24)
		assert.Zero(t, days%7, "period %s is not aligned", p.Period)
	}

	assert.Equal(t, 7*24*time.Hour, points[1].Period.Sub(points[0].Period))
}

func TestBucketize_WeeklyMidnightBoundary(t *testing.T) {
	// 23:59:59 and the following midnight land in different 7-day blocks when
	// the boundary is a multiple of 7 days from the epoch.
	boundary := time.Date(1970, time.January, 8, 0, 0, 0, 0, time.UTC)

	txs := []*transaction.Transaction{
		tx(transaction.TypeExpense, "1", boundary.Add(-time.Second)),
		tx(transaction.TypeExpense, "2", boundary),
	}

	points := transaction.Bucketize(txs, transaction.IntervalWeek)

	require.Len(t, points, 2)
	assert.Equal(t, time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC), points[0].Period)
	assert.Equal(t, boundary, points[1].Period)
}

func TestBucketize_Empty(t *testing.T) {
	assert.Empty(t, transaction.Bucketize(nil, transaction.IntervalMonth))
	assert.Empty(t, transaction.Bucketize(nil, transaction.IntervalWeek))
}
