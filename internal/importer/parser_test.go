package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/moneymuse/internal/importer"
	"github.com/MrJamesThe3rd/moneymuse/internal/transaction"
)

func TestParser_Parse(t *testing.T) {
	input := strings.Join([]string{
		"Date,Description,Amount",
		"2025-03-05,Groceries,-50.25",
		"2025-03-10,Salary,1200.00",
		"",
	}, "\n")

	rows, err := importer.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, transaction.TypeExpense, rows[0].Type)
	assert.True(t, rows[0].Amount.Equal(decimal.RequireFromString("50.25")), "amount = %s", rows[0].Amount)
	assert.Equal(t, "Groceries", rows[0].Description)
	assert.Equal(t, time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC), rows[0].Date)

	assert.Equal(t, transaction.TypeIncome, rows[1].Type)
	assert.True(t, rows[1].Amount.Equal(decimal.RequireFromString("1200")), "amount = %s", rows[1].Amount)
}

func TestParser_SemicolonSeparatedEuropeanAmounts(t *testing.T) {
	input := strings.Join([]string{
		"Date;Description;Amount",
		"05-03-2025;Café;-1.234,56",
		"06-03-2025;Reembolso;12,50",
	}, "\n")

	rows, err := importer.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, transaction.TypeExpense, rows[0].Type)
	assert.True(t, rows[0].Amount.Equal(decimal.RequireFromString("1234.56")), "amount = %s", rows[0].Amount)

	assert.Equal(t, transaction.TypeIncome, rows[1].Type)
	assert.True(t, rows[1].Amount.Equal(decimal.RequireFromString("12.5")), "amount = %s", rows[1].Amount)
}

func TestParser_SkipsPreambleAndFooter(t *testing.T) {
	input := strings.Join([]string{
		"Account statement",
		"Generated 2025-04-01",
		"",
		"Date,Description,Amount",
		"2025-03-05,Groceries,-50.00",
		"Total,,-50.00",
	}, "\n")

	rows, err := importer.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)

	// The footer has no parseable date, so only the real row survives.
	require.Len(t, rows, 1)
	assert.Equal(t, "Groceries", rows[0].Description)
}

func TestParser_SkipsZeroAmounts(t *testing.T) {
	input := strings.Join([]string{
		"Date,Description,Amount",
		"2025-03-05,Pending authorization,0.00",
		"2025-03-06,Coffee,-2.50",
	}, "\n")

	rows, err := importer.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "Coffee", rows[0].Description)
}

func TestParser_NoHeader(t *testing.T) {
	input := "just,some,cells\nwith,no,header\n"

	_, err := importer.NewParser().Parse(strings.NewReader(input))
	assert.Error(t, err)
}
