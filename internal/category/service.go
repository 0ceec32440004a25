package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	// GetCategory returns a category visible to the owner: either a system
	// default or one of the owner's own.
	GetCategory(ctx context.Context, ownerID, id uuid.UUID) (*Category, error)
	ListCategories(ctx context.Context, ownerID uuid.UUID) ([]*Category, error)
	ListSystemCategories(ctx context.Context) ([]*Category, error)
	ListOwnedCategories(ctx context.Context, ownerID uuid.UUID) ([]*Category, error)
	// UpdateCategory and DeleteCategory match only rows owned by ownerID, so
	// system categories surface as ErrNotFound on writes.
	UpdateCategory(ctx context.Context, ownerID uuid.UUID, c *Category) error
	DeleteCategory(ctx context.Context, ownerID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name        string
	Type        Type
	Icon        string
	Color       string
	Description string
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, params CreateParams) (*Category, error) {
	if params.Name == "" {
		return nil, fmt.Errorf("category name is required")
	}

	if !params.Type.Valid() {
		return nil, fmt.Errorf("invalid category type %q", params.Type)
	}

	c := &Category{
		UserID:      &ownerID,
		Name:        params.Name,
		Type:        params.Type,
		Icon:        params.Icon,
		Color:       params.Color,
		Description: params.Description,
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// List returns the categories visible to the owner: system defaults plus the
// owner's custom ones, ordered by name.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*Category, error) {
	return s.repo.ListCategories(ctx, ownerID)
}

func (s *Service) ListSystem(ctx context.Context) ([]*Category, error) {
	return s.repo.ListSystemCategories(ctx)
}

func (s *Service) ListOwned(ctx context.Context, ownerID uuid.UUID) ([]*Category, error) {
	return s.repo.ListOwnedCategories(ctx, ownerID)
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Category, error) {
	return s.repo.GetCategory(ctx, ownerID, id)
}

type UpdateParams struct {
	Name        *string
	Type        *Type
	Icon        *string
	Color       *string
	Description *string
}

func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, params UpdateParams) (*Category, error) {
	c, err := s.repo.GetCategory(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if c.System() {
		// System defaults are shared; nobody edits them through the API.
		return nil, ErrNotFound
	}

	if params.Name != nil {
		if *params.Name == "" {
			return nil, fmt.Errorf("category name is required")
		}

		c.Name = *params.Name
	}

	if params.Type != nil {
		if !params.Type.Valid() {
			return nil, fmt.Errorf("invalid category type %q", *params.Type)
		}

		c.Type = *params.Type
	}

	if params.Icon != nil {
		c.Icon = *params.Icon
	}

	if params.Color != nil {
		c.Color = *params.Color
	}

	if params.Description != nil {
		c.Description = *params.Description
	}

	if err := s.repo.UpdateCategory(ctx, ownerID, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteCategory(ctx, ownerID, id)
}
