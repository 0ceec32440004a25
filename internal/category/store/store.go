package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/moneymuse/internal/category"
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

const selectCategoryColumns = `
	id, user_id, name, type, COALESCE(icon, ''), COALESCE(color, ''),
	COALESCE(description, ''), is_default, created_at, updated_at
`

func scanCategory(s scanner) (*category.Category, error) {
	var c category.Category

	var typeStr string

	if err := s.Scan(
		&c.ID, &c.UserID, &c.Name, &typeStr, &c.Icon, &c.Color,
		&c.Description, &c.IsDefault, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c.Type = category.Type(typeStr)

	return &c, nil
}

func (s *Store) CreateCategory(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO categories (user_id, name, type, icon, color, description, is_default, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.UserID, c.Name, c.Type, c.Icon, c.Color, c.Description,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}

func (s *Store) GetCategory(ctx context.Context, ownerID, id uuid.UUID) (*category.Category, error) {
	query := `SELECT ` + selectCategoryColumns + `
		FROM categories
		WHERE id = $1 AND (user_id IS NULL OR user_id = $2)`

	c, err := scanCategory(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, category.ErrNotFound
		}

		return nil, fmt.Errorf("getting category: %w", err)
	}

	return c, nil
}

func (s *Store) ListCategories(ctx context.Context, ownerID uuid.UUID) ([]*category.Category, error) {
	query := `SELECT ` + selectCategoryColumns + `
		FROM categories
		WHERE user_id IS NULL OR user_id = $1
		ORDER BY name ASC`

	return s.list(ctx, query, ownerID)
}

func (s *Store) ListSystemCategories(ctx context.Context) ([]*category.Category, error) {
	query := `SELECT ` + selectCategoryColumns + `
		FROM categories
		WHERE user_id IS NULL
		ORDER BY name ASC`

	return s.list(ctx, query)
}

func (s *Store) ListOwnedCategories(ctx context.Context, ownerID uuid.UUID) ([]*category.Category, error) {
	query := `SELECT ` + selectCategoryColumns + `
		FROM categories
		WHERE user_id = $1
		ORDER BY name ASC`

	return s.list(ctx, query, ownerID)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]*category.Category, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var cats []*category.Category

	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		cats = append(cats, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category rows: %w", err)
	}

	return cats, nil
}

func (s *Store) UpdateCategory(ctx context.Context, ownerID uuid.UUID, c *category.Category) error {
	query := `
		UPDATE categories
		SET name = $1, type = $2, icon = $3, color = $4, description = $5, updated_at = NOW()
		WHERE id = $6 AND user_id = $7
	`

	res, err := s.db.ExecContext(ctx, query,
		c.Name, c.Type, c.Icon, c.Color, c.Description, c.ID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}

	return requireRow(res)
}

func (s *Store) DeleteCategory(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `DELETE FROM categories WHERE id = $1 AND user_id = $2`

	res, err := s.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}

	if n == 0 {
		return category.ErrNotFound
	}

	return nil
}
