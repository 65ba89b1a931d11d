package goal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/category"
	"github.com/MrJamesThe3rd/finsight/internal/period"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=goal
type Repository interface {
	CreateGoal(ctx context.Context, g *Goal) error
	GetGoal(ctx context.Context, owner, id uuid.UUID) (*Goal, error)
	UpdateGoal(ctx context.Context, g *Goal) error
	ListGoals(ctx context.Context, filter ListFilter) ([]*Goal, error)
	DeleteGoal(ctx context.Context, owner, id uuid.UUID) error
}

// CategoryLookup resolves a category the owner is allowed to see.
type CategoryLookup interface {
	Get(ctx context.Context, owner, id uuid.UUID) (*category.Category, error)
}

type Service struct {
	repo       Repository
	categories CategoryLookup
	now        func() time.Time
}

func NewService(repo Repository, categories CategoryLookup) *Service {
	return &Service{repo: repo, categories: categories, now: time.Now}
}

// WithClock replaces the clock used for default start dates.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type CreateParams struct {
	Owner         uuid.UUID
	Name          string
	Description   string
	TargetAmount  decimal.Decimal
	CurrentAmount *decimal.Decimal
	StartDate     *time.Time
	EndDate       *time.Time
	CategoryID    *uuid.UUID
}

type ListFilter struct {
	Owner    uuid.UUID
	Achieved *bool
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Goal, error) {
	g := &Goal{
		OwnerID:       params.Owner,
		Name:          params.Name,
		Description:   params.Description,
		TargetAmount:  params.TargetAmount.Round(2),
		CurrentAmount: decimal.Zero,
		StartDate:     period.Date(s.now()),
		EndDate:       params.EndDate,
		CategoryID:    params.CategoryID,
	}

	if params.CurrentAmount != nil {
		g.CurrentAmount = params.CurrentAmount.Round(2)
	}

	if params.StartDate != nil {
		g.StartDate = period.Date(*params.StartDate)
	}

	if err := s.prepare(ctx, g); err != nil {
		return nil, err
	}

	if err := s.repo.CreateGoal(ctx, g); err != nil {
		return nil, fmt.Errorf("creating goal: %w", err)
	}

	return g, nil
}

// Update persists every editable field of g and re-derives Achieved.
func (s *Service) Update(ctx context.Context, g *Goal) error {
	g.TargetAmount = g.TargetAmount.Round(2)
	g.CurrentAmount = g.CurrentAmount.Round(2)

	if err := s.prepare(ctx, g); err != nil {
		return err
	}

	if err := s.repo.UpdateGoal(ctx, g); err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}

	return nil
}

// UpdateProgress sets the saved amount of a goal.
func (s *Service) UpdateProgress(ctx context.Context, owner, id uuid.UUID, current decimal.Decimal) (*Goal, error) {
	g, err := s.repo.GetGoal(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	g.CurrentAmount = current

	if err := s.Update(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

func (s *Service) Get(ctx context.Context, owner, id uuid.UUID) (*Goal, error) {
	return s.repo.GetGoal(ctx, owner, id)
}

func (s *Service) List(ctx context.Context, owner uuid.UUID) ([]*Goal, error) {
	return s.repo.ListGoals(ctx, ListFilter{Owner: owner})
}

func (s *Service) ListAchieved(ctx context.Context, owner uuid.UUID) ([]*Goal, error) {
	return s.repo.ListGoals(ctx, ListFilter{Owner: owner, Achieved: new(true)})
}

func (s *Service) Delete(ctx context.Context, owner, id uuid.UUID) error {
	return s.repo.DeleteGoal(ctx, owner, id)
}

func (s *Service) prepare(ctx context.Context, g *Goal) error {
	if g.TargetAmount.IsNegative() || g.CurrentAmount.IsNegative() {
		return ErrNegativeAmount
	}

	if g.CategoryID == nil {
		g.Category = nil
	} else {
		c, err := s.categories.Get(ctx, g.OwnerID, *g.CategoryID)
		if err != nil {
			if errors.Is(err, category.ErrNotFound) {
				return ErrCategoryNotAccessible
			}

			return fmt.Errorf("looking up category: %w", err)
		}

		g.Category = c
	}

	g.RecomputeAchieved()

	return nil
}
