package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, id uuid.UUID) (*Category, error)
	ListCategories(ctx context.Context, owner uuid.UUID) ([]*Category, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Owner uuid.UUID
	Name  string
	Type  Type
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Category, error) {
	c := &Category{
		Name:    params.Name,
		Type:    params.Type,
		OwnerID: new(params.Owner),
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}

	return c, nil
}

// Get returns the category only when owner can see it; anything else is ErrNotFound.
func (s *Service) Get(ctx context.Context, owner, id uuid.UUID) (*Category, error) {
	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if !c.AccessibleBy(owner) {
		return nil, ErrNotFound
	}

	return c, nil
}

// List returns the global categories plus the ones owner created.
func (s *Service) List(ctx context.Context, owner uuid.UUID) ([]*Category, error) {
	return s.repo.ListCategories(ctx, owner)
}
