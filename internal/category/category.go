package category

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("category not found")

// Type restricts which transaction types a category accepts.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
	TypeBoth    Type = "both"
)

func (t Type) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeBoth:
		return true
	}

	return false
}

// Category groups transactions. A nil UserID marks a system default shared
// by every user; those are readable by all but writable by none.
type Category struct {
	ID          uuid.UUID
	UserID      *uuid.UUID
	Name        string
	Type        Type
	Icon        string
	Color       string
	Description string
	IsDefault   bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// System reports whether the category is a shared system default.
func (c *Category) System() bool {
	return c.UserID == nil
}
