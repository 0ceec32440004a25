package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	GetTransaction(ctx context.Context, ownerID, id uuid.UUID) (*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	DeleteTransaction(ctx context.Context, ownerID, id uuid.UUID) error
	UpdateReceipt(ctx context.Context, ownerID, id uuid.UUID, receiptURL string) error

	// ListTransactions returns one page of non-deleted transactions plus the
	// total count of matches before pagination.
	ListTransactions(ctx context.Context, ownerID uuid.UUID, f Filter, sort Sort, page Page) ([]*Transaction, int, error)
	// ListAllTransactions returns every non-deleted match, date ascending.
	ListAllTransactions(ctx context.Context, ownerID uuid.UUID, f Filter) ([]*Transaction, error)
	// ListForPeriod returns the owner's non-deleted transactions in the given
	// categories whose calendar month and year match exactly.
	ListForPeriod(ctx context.Context, ownerID uuid.UUID, categoryIDs []uuid.UUID, month time.Month, year int) ([]*Transaction, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Filter narrows a transaction read. All fields are optional; Search is a
// case-insensitive substring match against the description.
type Filter struct {
	CategoryID *uuid.UUID
	Type       *Type
	From       *time.Time
	To         *time.Time
	Search     string
}

func (f Filter) validate() error {
	if f.Type != nil && !f.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidQuery, *f.Type)
	}

	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return fmt.Errorf("%w: date range ends before it starts", ErrInvalidQuery)
	}

	return nil
}

// SortKey names a sortable column.
type SortKey string

const (
	SortDate   SortKey = "date"
	SortAmount SortKey = "amount"
)

type Sort struct {
	Key  SortKey
	Desc bool
}

// DefaultSort is date descending, newest first.
var DefaultSort = Sort{Key: SortDate, Desc: true}

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

type CreateParams struct {
	Type        Type
	Amount      decimal.Decimal
	Description string
	CategoryID  uuid.UUID
	Date        time.Time
	IsRecurring bool
	Notes       string
}

func (p CreateParams) validate() error {
	if !p.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidParams, p.Type)
	}

	if p.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidParams)
	}

	if p.CategoryID == uuid.Nil {
		return fmt.Errorf("%w: category is required", ErrInvalidParams)
	}

	if p.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidParams)
	}

	return nil
}

func (p CreateParams) toTransaction(ownerID uuid.UUID) *Transaction {
	return &Transaction{
		UserID:      ownerID,
		Type:        p.Type,
		Amount:      p.Amount,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		Date:        p.Date.UTC(),
		IsRecurring: p.IsRecurring,
		Notes:       p.Notes,
	}
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, params CreateParams) (*Transaction, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	tx := params.toTransaction(ownerID)
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// CreateBatch inserts several transactions in one store round trip. Every
// param must validate; one bad row rejects the whole batch.
func (s *Service) CreateBatch(ctx context.Context, ownerID uuid.UUID, params []CreateParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	txs := make([]*Transaction, len(params))

	for i, p := range params {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}

		txs[i] = p.toTransaction(ownerID)
	}

	if err := s.repo.CreateTransactions(ctx, txs); err != nil {
		return nil, err
	}

	return txs, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, ownerID, id)
}

func (s *Service) Update(ctx context.Context, tx *Transaction) error {
	if !tx.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidParams, tx.Type)
	}

	if tx.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidParams)
	}

	return s.repo.UpdateTransaction(ctx, tx)
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, ownerID, id)
}

func (s *Service) AttachReceipt(ctx context.Context, ownerID, id uuid.UUID, receiptURL string) error {
	return s.repo.UpdateReceipt(ctx, ownerID, id, receiptURL)
}

// QueryResult is one page of transactions plus the total match count before
// pagination was applied. Page and PageSize echo the normalized request.
type QueryResult struct {
	Items      []*Transaction
	TotalCount int
	Page       int
	PageSize   int
}

// Query returns a filtered, sorted page of the owner's transactions. A page
// past the last one yields an empty slice with the correct total.
func (s *Service) Query(ctx context.Context, ownerID uuid.UUID, f Filter, sort Sort, page Page) (*QueryResult, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	switch sort.Key {
	case "":
		sort = DefaultSort
	case SortDate, SortAmount:
	default:
		return nil, fmt.Errorf("%w: unknown sort key %q", ErrInvalidQuery, sort.Key)
	}

	if page.Number == 0 {
		page.Number = 1
	}

	if page.Size == 0 {
		page.Size = defaultPageSize
	}

	if page.Number < 1 {
		return nil, fmt.Errorf("%w: page must be >= 1", ErrInvalidQuery)
	}

	if page.Size < 1 || page.Size > maxPageSize {
		return nil, fmt.Errorf("%w: page size must be between 1 and %d", ErrInvalidQuery, maxPageSize)
	}

	items, total, err := s.repo.ListTransactions(ctx, ownerID, f, sort, page)
	if err != nil {
		return nil, err
	}

	return &QueryResult{
		Items:      items,
		TotalCount: total,
		Page:       page.Number,
		PageSize:   page.Size,
	}, nil
}

// Summary aggregates the owner's transactions matching the filter.
func (s *Service) Summary(ctx context.Context, ownerID uuid.UUID, f Filter) (Summary, error) {
	if err := f.validate(); err != nil {
		return Summary{}, err
	}

	txs, err := s.repo.ListAllTransactions(ctx, ownerID, f)
	if err != nil {
		return Summary{}, err
	}

	return Summarize(txs), nil
}

// Trends buckets the owner's matching transactions into a weekly or monthly
// series. An empty interval defaults to monthly.
func (s *Service) Trends(ctx context.Context, ownerID uuid.UUID, f Filter, interval Interval) ([]TrendPoint, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	switch interval {
	case "":
		interval = IntervalMonth
	case IntervalMonth, IntervalWeek:
	default:
		return nil, fmt.Errorf("%w: unknown interval %q", ErrInvalidQuery, interval)
	}

	txs, err := s.repo.ListAllTransactions(ctx, ownerID, f)
	if err != nil {
		return nil, err
	}

	return Bucketize(txs, interval), nil
}

// ForPeriod exposes period-scoped reads to the budget calculators without
// leaking the repository.
func (s *Service) ForPeriod(ctx context.Context, ownerID uuid.UUID, categoryIDs []uuid.UUID, month time.Month, year int) ([]*Transaction, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	return s.repo.ListForPeriod(ctx, ownerID, categoryIDs, month, year)
}
