package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// FindCategory picks the category the owner used most often for
// transactions with a similar description. Ties break toward the most
// recently used category.
func (s *Store) FindCategory(ctx context.Context, ownerID uuid.UUID, description string) (uuid.UUID, error) {
	query := `
		SELECT category_id
		FROM transactions
		WHERE user_id = $1 AND deleted_at IS NULL AND description ILIKE '%' || $2 || '%'
		GROUP BY category_id
		ORDER BY COUNT(*) DESC, MAX(date) DESC
		LIMIT 1
	`

	var categoryID uuid.UUID

	err := s.db.QueryRowContext(ctx, query, ownerID, description).Scan(&categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, nil
		}

		return uuid.Nil, fmt.Errorf("finding category suggestion: %w", err)
	}

	return categoryID, nil
}
