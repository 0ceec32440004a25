package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/moneymuse/internal/transaction"
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

const selectTransactionColumns = `
	t.id, t.user_id, t.type, t.amount, t.description, t.category_id, c.name AS category_name,
	t.date, t.receipt_url, t.is_recurring, t.notes, t.created_at, t.updated_at, t.deleted_at
`

// scanTransaction reads a transaction row joined with its category name.
// A NULL category name means the row survived its category, which the schema
// is supposed to rule out; that is reported as an error instead of a silent
// skip.
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var typeStr string

	var desc, catName, receiptURL, notes sql.NullString

	if err := s.Scan(
		&tx.ID, &tx.UserID, &typeStr, &tx.Amount, &desc, &tx.CategoryID, &catName,
		&tx.Date, &receiptURL, &tx.IsRecurring, &notes,
		&tx.CreatedAt, &tx.UpdatedAt, &tx.DeletedAt,
	); err != nil {
		return nil, err
	}

	if !catName.Valid {
		return nil, fmt.Errorf("transaction %s references missing category %s", tx.ID, tx.CategoryID)
	}

	tx.Type = transaction.Type(typeStr)
	tx.Description = desc.String
	tx.CategoryName = catName.String
	tx.ReceiptURL = receiptURL.String
	tx.Notes = notes.String

	return &tx, nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, type, amount, description, category_id, date, is_recurring, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.UserID,
		tx.Type,
		tx.Amount,
		nullable(tx.Description),
		tx.CategoryID,
		tx.Date,
		tx.IsRecurring,
		nullable(tx.Notes),
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

// CreateTransactions inserts a batch inside one database transaction so a
// failed row leaves nothing behind.
func (s *Store) CreateTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning batch insert: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO transactions (user_id, type, amount, description, category_id, date, is_recurring, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	for _, tx := range txs {
		err := dbTx.QueryRowContext(ctx, query,
			tx.UserID,
			tx.Type,
			tx.Amount,
			nullable(tx.Description),
			tx.CategoryID,
			tx.Date,
			tx.IsRecurring,
			nullable(tx.Notes),
		).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
		if err != nil {
			return fmt.Errorf("creating transaction: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing batch insert: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, ownerID, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.id = $1 AND t.user_id = $2 AND t.deleted_at IS NULL`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

// filterClause renders the filter as SQL conditions. Conditions always
// include the owner scope and the soft-delete exclusion.
func filterClause(ownerID uuid.UUID, f transaction.Filter) (string, []any) {
	conds := []string{"t.user_id = $1", "t.deleted_at IS NULL"}
	args := []any{ownerID}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.CategoryID != nil {
		conds = append(conds, "t.category_id = "+arg(*f.CategoryID))
	}

	if f.Type != nil {
		conds = append(conds, "t.type = "+arg(*f.Type))
	}

	if f.From != nil {
		conds = append(conds, "t.date >= "+arg(*f.From))
	}

	if f.To != nil {
		conds = append(conds, "t.date <= "+arg(*f.To))
	}

	if f.Search != "" {
		// NULL descriptions never match, by SQL semantics.
		conds = append(conds, "t.description ILIKE '%' || "+arg(f.Search)+" || '%'")
	}

	return strings.Join(conds, " AND "), args
}

func (s *Store) ListTransactions(ctx context.Context, ownerID uuid.UUID, f transaction.Filter, sort transaction.Sort, page transaction.Page) ([]*transaction.Transaction, int, error) {
	where, args := filterClause(ownerID, f)

	var total int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM transactions t WHERE "+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting transactions: %w", err)
	}

	col := "t.date"
	if sort.Key == transaction.SortAmount {
		col = "t.amount"
	}

	dir := "ASC"
	if sort.Desc {
		dir = "DESC"
	}

	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE ` + where +
		// id tiebreaker keeps pages disjoint when the sort key has duplicates
		fmt.Sprintf(" ORDER BY %s %s, t.id ASC LIMIT $%d OFFSET $%d", col, dir, len(args)+1, len(args)+2)

	args = append(args, page.Size, (page.Number-1)*page.Size)

	txs, err := s.queryTransactions(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return txs, total, nil
}

func (s *Store) ListAllTransactions(ctx context.Context, ownerID uuid.UUID, f transaction.Filter) ([]*transaction.Transaction, error) {
	where, args := filterClause(ownerID, f)

	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE ` + where + `
		ORDER BY t.date ASC, t.id ASC`

	return s.queryTransactions(ctx, query, args...)
}

func (s *Store) ListForPeriod(ctx context.Context, ownerID uuid.UUID, categoryIDs []uuid.UUID, month time.Month, year int) ([]*transaction.Transaction, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	args := []any{ownerID, int(month), year}
	placeholders := make([]string, len(categoryIDs))

	for i, id := range categoryIDs {
		args = append(args, id)
		placeholders[i] = fmt.Sprintf("$%d", len(args))
	}

	// Calendar-field comparison: a budget month is the stored date's month
	// and year, not a rolling window.
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1 AND t.deleted_at IS NULL
			AND EXTRACT(MONTH FROM t.date) = $2
			AND EXTRACT(YEAR FROM t.date) = $3
			AND t.category_id IN (` + strings.Join(placeholders, ", ") + `)
		ORDER BY t.date ASC`

	return s.queryTransactions(ctx, query, args...)
}

func (s *Store) queryTransactions(ctx context.Context, query string, args ...any) ([]*transaction.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET type = $1, amount = $2, description = $3, category_id = $4, date = $5,
			is_recurring = $6, notes = $7, updated_at = NOW()
		WHERE id = $8 AND user_id = $9 AND deleted_at IS NULL
	`

	res, err := s.db.ExecContext(ctx, query,
		tx.Type,
		tx.Amount,
		nullable(tx.Description),
		tx.CategoryID,
		tx.Date,
		tx.IsRecurring,
		nullable(tx.Notes),
		tx.ID,
		tx.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	return requireRow(res)
}

func (s *Store) DeleteTransaction(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `
		UPDATE transactions
		SET deleted_at = NOW()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`

	res, err := s.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return requireRow(res)
}

func (s *Store) UpdateReceipt(ctx context.Context, ownerID, id uuid.UUID, receiptURL string) error {
	query := `
		UPDATE transactions
		SET receipt_url = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3 AND deleted_at IS NULL
	`

	res, err := s.db.ExecContext(ctx, query, receiptURL, id, ownerID)
	if err != nil {
		return fmt.Errorf("updating receipt: %w", err)
	}

	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}

	if n == 0 {
		return transaction.ErrNotFound
	}

	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
