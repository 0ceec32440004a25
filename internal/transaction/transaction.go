package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("transaction not found")

	// ErrInvalidQuery marks malformed list filters (bad page, unknown sort
	// key). Wrapped errors carry the detail.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrInvalidParams marks malformed create/update input.
	ErrInvalidParams = errors.New("invalid transaction params")
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction represents a financial transaction. Amounts are exact decimals;
// the sign lives in Type, Amount itself is never negative. Deleted
// transactions keep their row but carry DeletedAt and are excluded from every
// read and aggregate.
type Transaction struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Type         Type
	Amount       decimal.Decimal
	Description  string
	CategoryID   uuid.UUID
	CategoryName string // Loaded via JOIN
	Date         time.Time
	ReceiptURL   string
	IsRecurring  bool
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
}
