package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finsight/internal/category"
	"github.com/MrJamesThe3rd/finsight/internal/transaction"
)

var (
	ErrEmptyPattern          = errors.New("pattern must not be blank")
	ErrCategoryNotAccessible = errors.New("category not accessible")
)

// Rule assigns CategoryID to every transaction whose description contains Pattern,
// ignoring case.
type Rule struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	Pattern    string
	CategoryID uuid.UUID
	CreatedAt  time.Time
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	// FindMatch returns the category of the longest pattern found in description among
	// the rules of owner whose category has type t, or nil when none matches.
	FindMatch(ctx context.Context, owner uuid.UUID, description string, t category.Type) (*uuid.UUID, error)
	CreateRule(ctx context.Context, r *Rule) error
	ListRules(ctx context.Context, owner uuid.UUID) ([]*Rule, error)
}

type CategoryLookup interface {
	Get(ctx context.Context, owner, id uuid.UUID) (*category.Category, error)
}

type Service struct {
	repo       Repository
	categories CategoryLookup
}

func NewService(repo Repository, categories CategoryLookup) *Service {
	return &Service{repo: repo, categories: categories}
}

// Suggest returns the category a transaction of type t with description would get.
func (s *Service) Suggest(ctx context.Context, owner uuid.UUID, description string, t transaction.Type) (*uuid.UUID, error) {
	if strings.TrimSpace(description) == "" {
		return nil, nil
	}

	return s.repo.FindMatch(ctx, owner, description, category.Type(t))
}

// Learn remembers that descriptions containing pattern belong to categoryID.
func (s *Service) Learn(ctx context.Context, owner uuid.UUID, pattern string, categoryID uuid.UUID) (*Rule, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, ErrEmptyPattern
	}

	if _, err := s.categories.Get(ctx, owner, categoryID); err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return nil, ErrCategoryNotAccessible
		}

		return nil, err
	}

	r := &Rule{
		OwnerID:    owner,
		Pattern:    pattern,
		CategoryID: categoryID,
	}
	if err := s.repo.CreateRule(ctx, r); err != nil {
		return nil, fmt.Errorf("creating rule: %w", err)
	}

	return r, nil
}

func (s *Service) List(ctx context.Context, owner uuid.UUID) ([]*Rule, error) {
	return s.repo.ListRules(ctx, owner)
}

// Categorize fills the category of every uncategorized param that matches a rule.
// Params that already carry a category are left alone.
func (s *Service) Categorize(ctx context.Context, owner uuid.UUID, params []transaction.CreateParams) error {
	for i := range params {
		if params[i].CategoryID != nil {
			continue
		}

		id, err := s.Suggest(ctx, owner, params[i].Description, params[i].Type)
		if err != nil {
			return fmt.Errorf("categorizing %q: %w", params[i].Description, err)
		}

		params[i].CategoryID = id
	}

	return nil
}
