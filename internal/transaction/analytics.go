package transaction

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Summary aggregates a transaction set by type. Sums over an empty set are
// zero, never an error.
type Summary struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Count        int
}

// Summarize computes income and expense totals plus the transaction count
// over an already filtered set.
func Summarize(txs []*Transaction) Summary {
	s := Summary{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		Count:        len(txs),
	}

	for _, tx := range txs {
		switch tx.Type {
		case TypeIncome:
			s.TotalIncome = s.TotalIncome.Add(tx.Amount)
		case TypeExpense:
			s.TotalExpense = s.TotalExpense.Add(tx.Amount)
		}
	}

	return s
}

// Interval selects the trend bucket width.
type Interval string

const (
	IntervalMonth Interval = "month"
	IntervalWeek  Interval = "week"
)

// TrendPoint is one bucket of a trend series: the bucket's start date and
// the sum of amounts inside it.
type TrendPoint struct {
	Period time.Time
	Total  decimal.Decimal
}

// weekEpoch anchors week bucketing. Weeks are counted as elapsed 7-day
// blocks since the Unix epoch, not ISO weeks.
var weekEpoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// Bucketize groups transactions into month or week buckets and sums the
// amounts per bucket, income and expense alike. Buckets with no transactions
// are omitted. The result is ordered by ascending period start.
func Bucketize(txs []*Transaction, interval Interval) []TrendPoint {
	totals := make(map[time.Time]decimal.Decimal)

	for _, tx := range txs {
		period := bucketStart(tx.Date, interval)
		totals[period] = totals[period].Add(tx.Amount)
	}

	points := make([]TrendPoint, 0, len(totals))
	for period, total := range totals {
		points = append(points, TrendPoint{Period: period, Total: total})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Period.Before(points[j].Period)
	})

	return points
}

func bucketStart(date time.Time, interval Interval) time.Time {
	date = date.UTC()

	if interval == IntervalWeek {
		days := floorDiv(date.Unix(), 24*60*60)
		weeks := floorDiv(days, 7)

		return weekEpoch.AddDate(0, 0, int(weeks)*7)
	}

	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// floorDiv rounds toward negative infinity, so dates before the epoch still
// land in the correct week.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}

	return q
}
