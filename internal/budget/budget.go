package budget

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("budget not found")

	// ErrDuplicate means a budget already exists for the same owner,
	// category, month and year. Enforced by the store's uniqueness
	// constraint.
	ErrDuplicate = errors.New("budget already exists for this category and period")

	ErrInvalidParams = errors.New("invalid budget params")
)

// Budget caps spending for one category in one calendar month.
// RolloverEnabled is a stored preference; no computation carries unspent
// balances forward.
type Budget struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	CategoryID      uuid.UUID
	CategoryName    string // Loaded via JOIN
	Amount          decimal.Decimal
	Month           time.Month
	Year            int
	RolloverEnabled bool
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// Progress is the derived state of one budget, recomputed on every request.
// Remaining goes negative on overspend.
type Progress struct {
	BudgetID  uuid.UUID
	Amount    decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal
	Percent   float64
}

// Overview is the derived total across all of an owner's budgets for one
// period.
type Overview struct {
	Month         time.Month
	Year          int
	TotalBudgeted decimal.Decimal
	TotalSpent    decimal.Decimal
	Remaining     decimal.Decimal
}
