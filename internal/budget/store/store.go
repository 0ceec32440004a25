package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/moneymuse/internal/budget"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const uniqueViolation = "23505"

const selectBudgetColumns = `
	b.id, b.user_id, b.category_id, c.name AS category_name, b.amount,
	b.month, b.year, b.rollover_enabled, b.created_at, b.updated_at
`

func scanBudget(s scanner) (*budget.Budget, error) {
	var b budget.Budget

	var month int

	if err := s.Scan(
		&b.ID, &b.UserID, &b.CategoryID, &b.CategoryName, &b.Amount,
		&month, &b.Year, &b.RolloverEnabled, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	b.Month = time.Month(month)

	return &b, nil
}

func (s *Store) CreateBudget(ctx context.Context, b *budget.Budget) error {
	// budgets carries UNIQUE (user_id, category_id, month, year); concurrent
	// duplicate creates lose the race here instead of in application code.
	query := `
		INSERT INTO budgets (user_id, category_id, amount, month, year, rollover_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		b.UserID,
		b.CategoryID,
		b.Amount,
		int(b.Month),
		b.Year,
		b.RolloverEnabled,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return budget.ErrDuplicate
		}

		return fmt.Errorf("creating budget: %w", err)
	}

	if b.CategoryName == "" {
		if err := s.db.QueryRowContext(ctx,
			`SELECT name FROM categories WHERE id = $1`, b.CategoryID,
		).Scan(&b.CategoryName); err != nil {
			return fmt.Errorf("resolving category name: %w", err)
		}
	}

	return nil
}

func (s *Store) GetBudget(ctx context.Context, ownerID, id uuid.UUID) (*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + `
		FROM budgets b
		JOIN categories c ON b.category_id = c.id
		WHERE b.id = $1 AND b.user_id = $2`

	b, err := scanBudget(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, budget.ErrNotFound
		}

		return nil, fmt.Errorf("getting budget: %w", err)
	}

	return b, nil
}

func (s *Store) ListBudgets(ctx context.Context, ownerID uuid.UUID) ([]*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + `
		FROM budgets b
		JOIN categories c ON b.category_id = c.id
		WHERE b.user_id = $1
		ORDER BY b.year DESC, b.month DESC, c.name ASC`

	return s.list(ctx, query, ownerID)
}

func (s *Store) ListBudgetsForPeriod(ctx context.Context, ownerID uuid.UUID, month time.Month, year int) ([]*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + `
		FROM budgets b
		JOIN categories c ON b.category_id = c.id
		WHERE b.user_id = $1 AND b.month = $2 AND b.year = $3
		ORDER BY c.name ASC`

	return s.list(ctx, query, ownerID, int(month), year)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]*budget.Budget, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*budget.Budget

	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning budget: %w", err)
		}

		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budget rows: %w", err)
	}

	return budgets, nil
}

func (s *Store) UpdateBudget(ctx context.Context, b *budget.Budget) error {
	query := `
		UPDATE budgets
		SET amount = $1, month = $2, year = $3, rollover_enabled = $4, updated_at = NOW()
		WHERE id = $5 AND user_id = $6
	`

	res, err := s.db.ExecContext(ctx, query,
		b.Amount,
		int(b.Month),
		b.Year,
		b.RolloverEnabled,
		b.ID,
		b.UserID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return budget.ErrDuplicate
		}

		return fmt.Errorf("updating budget: %w", err)
	}

	return requireRow(res)
}

// DeleteBudget removes the row entirely; budgets are not soft-deleted.
func (s *Store) DeleteBudget(ctx context.Context, ownerID, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}

	if n == 0 {
		return budget.ErrNotFound
	}

	return nil
}
