package suggest

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=suggest
type Repository interface {
	FindCategory(ctx context.Context, ownerID uuid.UUID, description string) (uuid.UUID, error)
}

// Service suggests a category for imported transactions by looking at how
// the owner categorized similar descriptions before.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Category returns the best-guess category id for a description, or
// uuid.Nil when the owner's history offers nothing similar.
func (s *Service) Category(ctx context.Context, ownerID uuid.UUID, description string) (uuid.UUID, error) {
	if description == "" {
		return uuid.Nil, nil
	}

	return s.repo.FindCategory(ctx, ownerID, description)
}
