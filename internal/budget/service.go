package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/moneymuse/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	CreateBudget(ctx context.Context, b *Budget) error
	GetBudget(ctx context.Context, ownerID, id uuid.UUID) (*Budget, error)
	ListBudgets(ctx context.Context, ownerID uuid.UUID) ([]*Budget, error)
	ListBudgetsForPeriod(ctx context.Context, ownerID uuid.UUID, month time.Month, year int) ([]*Budget, error)
	UpdateBudget(ctx context.Context, b *Budget) error
	DeleteBudget(ctx context.Context, ownerID, id uuid.UUID) error
}

// TransactionSource supplies the transactions that count against a budget:
// the owner's non-deleted transactions in the given categories whose calendar
// month and year match exactly.
type TransactionSource interface {
	ForPeriod(ctx context.Context, ownerID uuid.UUID, categoryIDs []uuid.UUID, month time.Month, year int) ([]*transaction.Transaction, error)
}

type Service struct {
	repo Repository
	txs  TransactionSource
}

func NewService(repo Repository, txs TransactionSource) *Service {
	return &Service{repo: repo, txs: txs}
}

type CreateParams struct {
	CategoryID      uuid.UUID
	Amount          decimal.Decimal
	Month           time.Month
	Year            int
	RolloverEnabled bool
}

func validatePeriod(month time.Month, year int) error {
	if month < time.January || month > time.December {
		return fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidParams)
	}

	if year < 1 {
		return fmt.Errorf("%w: year must be positive", ErrInvalidParams)
	}

	return nil
}

func (p CreateParams) validate() error {
	if p.CategoryID == uuid.Nil {
		return fmt.Errorf("%w: category is required", ErrInvalidParams)
	}

	if p.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidParams)
	}

	return validatePeriod(p.Month, p.Year)
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, params CreateParams) (*Budget, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	b := &Budget{
		UserID:          ownerID,
		CategoryID:      params.CategoryID,
		Amount:          params.Amount,
		Month:           params.Month,
		Year:            params.Year,
		RolloverEnabled: params.RolloverEnabled,
	}
	if err := s.repo.CreateBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Budget, error) {
	return s.repo.GetBudget(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*Budget, error) {
	return s.repo.ListBudgets(ctx, ownerID)
}

type UpdateParams struct {
	Amount          *decimal.Decimal
	Month           *time.Month
	Year            *int
	RolloverEnabled *bool
}

func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, params UpdateParams) (*Budget, error) {
	b, err := s.repo.GetBudget(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if params.Amount != nil {
		if params.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: amount must not be negative", ErrInvalidParams)
		}

		b.Amount = *params.Amount
	}

	if params.Month != nil {
		b.Month = *params.Month
	}

	if params.Year != nil {
		b.Year = *params.Year
	}

	if err := validatePeriod(b.Month, b.Year); err != nil {
		return nil, err
	}

	if params.RolloverEnabled != nil {
		b.RolloverEnabled = *params.RolloverEnabled
	}

	if err := s.repo.UpdateBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteBudget(ctx, ownerID, id)
}

// Progress recomputes spent/remaining/percent for one budget from current
// transaction state. Income and expense transactions in the budget's
// category both count toward spent.
func (s *Service) Progress(ctx context.Context, ownerID, id uuid.UUID) (*Progress, error) {
	b, err := s.repo.GetBudget(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	txs, err := s.txs.ForPeriod(ctx, ownerID, []uuid.UUID{b.CategoryID}, b.Month, b.Year)
	if err != nil {
		return nil, fmt.Errorf("loading period transactions: %w", err)
	}

	spent := sumAmounts(txs)

	percent := 0.0
	if b.Amount.IsPositive() {
		percent = spent.Div(b.Amount).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}

	return &Progress{
		BudgetID:  b.ID,
		Amount:    b.Amount,
		Spent:     spent,
		Remaining: b.Amount.Sub(spent),
		Percent:   percent,
	}, nil
}

// Overview totals every budget the owner has for the period against a single
// pass over the transactions in the union of their categories.
func (s *Service) Overview(ctx context.Context, ownerID uuid.UUID, month time.Month, year int) (*Overview, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}

	budgets, err := s.repo.ListBudgetsForPeriod(ctx, ownerID, month, year)
	if err != nil {
		return nil, err
	}

	totalBudgeted := decimal.Zero
	categoryIDs := make([]uuid.UUID, 0, len(budgets))

	for _, b := range budgets {
		totalBudgeted = totalBudgeted.Add(b.Amount)
		categoryIDs = append(categoryIDs, b.CategoryID)
	}

	totalSpent := decimal.Zero

	if len(categoryIDs) > 0 {
		txs, err := s.txs.ForPeriod(ctx, ownerID, categoryIDs, month, year)
		if err != nil {
			return nil, fmt.Errorf("loading period transactions: %w", err)
		}

		totalSpent = sumAmounts(txs)
	}

	return &Overview{
		Month:         month,
		Year:          year,
		TotalBudgeted: totalBudgeted,
		TotalSpent:    totalSpent,
		Remaining:     totalBudgeted.Sub(totalSpent),
	}, nil
}

func sumAmounts(txs []*transaction.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range txs {
		sum = sum.Add(tx.Amount)
	}

	return sum
}
