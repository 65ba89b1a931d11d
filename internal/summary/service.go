package summary

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finsight/internal/aggregate"
	"github.com/MrJamesThe3rd/finsight/internal/goal"
	"github.com/MrJamesThe3rd/finsight/internal/period"
	"github.com/MrJamesThe3rd/finsight/internal/transaction"
)

const defaultTrendMonths = 12

//go:generate mockgen -source=service.go -destination=lister_mock.go -package=summary
type TransactionLister interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

type GoalLister interface {
	List(ctx context.Context, owner uuid.UUID) ([]*goal.Goal, error)
	ListAchieved(ctx context.Context, owner uuid.UUID) ([]*goal.Goal, error)
}

// Service builds summaries and chart data in the domestic currency.
type Service struct {
	transactions TransactionLister
	goals        GoalLister
	domestic     string
	now          func() time.Time
}

func NewService(transactions TransactionLister, goals GoalLister, domestic string) *Service {
	return &Service{
		transactions: transactions,
		goals:        goals,
		domestic:     domestic,
		now:          time.Now,
	}
}

// WithClock replaces the clock used to anchor trends, progress and default windows.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Domestic() string {
	return s.domestic
}

func (s *Service) Today() time.Time {
	return period.Date(s.now())
}

func (s *Service) load(ctx context.Context, owner uuid.UUID, w period.Window) (*aggregate.Aggregator, error) {
	txs, err := s.transactions.List(ctx, transaction.ListFilter{
		Owner:     owner,
		StartDate: new(w.Start),
		EndDate:   new(w.End),
	})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	return aggregate.New(owner, txs), nil
}

func (s *Service) Summary(ctx context.Context, owner uuid.UUID, w period.Window) (*Summary, error) {
	agg, err := s.load(ctx, owner, w)
	if err != nil {
		return nil, err
	}

	achieved, err := s.goals.ListAchieved(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("listing achieved goals: %w", err)
	}

	income := agg.Sum(transaction.TypeIncome, w)
	expense := agg.Sum(transaction.TypeExpense, w)

	return &Summary{
		Currency:           s.domestic,
		Window:             w,
		Balance:            income.Sub(expense),
		TotalIncome:        income,
		TotalExpense:       expense,
		IncomesByCategory:  toCategoryTotals(agg.ByCategory(transaction.TypeIncome, w)),
		ExpensesByCategory: toCategoryTotals(agg.ByCategory(transaction.TypeExpense, w)),
		AchievedGoals:      toGoalTotals(achieved),
	}, nil
}

func (s *Service) ExpensesByCategory(ctx context.Context, owner uuid.UUID, w period.Window) (*CategoryChart, error) {
	agg, err := s.load(ctx, owner, w)
	if err != nil {
		return nil, err
	}

	shares, total := agg.Percentages(transaction.TypeExpense, w)
	slices.SortStableFunc(shares, func(a, b aggregate.CategoryShare) int {
		return b.Amount.Cmp(a.Amount)
	})

	return &CategoryChart{
		Currency:   s.domestic,
		Window:     w,
		Total:      total,
		Categories: shares,
	}, nil
}

// MonthlyTrend covers the months calendar months ending with the current one. A
// non-positive months means 12.
func (s *Service) MonthlyTrend(ctx context.Context, owner uuid.UUID, months int) (*TrendChart, error) {
	if months <= 0 {
		months = defaultTrendMonths
	}

	today := s.Today()
	w := period.Window{
		Start: period.FirstOfMonth(period.AddMonths(today, -(months - 1))),
		End:   today,
	}

	agg, err := s.load(ctx, owner, w)
	if err != nil {
		return nil, err
	}

	return &TrendChart{Currency: s.domestic, Trend: agg.MonthlyTrend(months, today)}, nil
}

func (s *Service) GoalsProgress(ctx context.Context, owner uuid.UUID) (*GoalsChart, error) {
	goals, err := s.goals.List(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}

	today := s.Today()

	progress := make([]goal.Progress, len(goals))
	for i, g := range goals {
		progress[i] = goal.NewProgress(g, today)
	}

	slices.SortStableFunc(progress, func(a, b goal.Progress) int {
		return b.Percentage.Cmp(a.Percentage)
	})

	return &GoalsChart{Currency: s.domestic, Goals: progress}, nil
}

func (s *Service) Dashboard(ctx context.Context, owner uuid.UUID, w period.Window, months int) (*Dashboard, error) {
	expenses, err := s.ExpensesByCategory(ctx, owner, w)
	if err != nil {
		return nil, err
	}

	trend, err := s.MonthlyTrend(ctx, owner, months)
	if err != nil {
		return nil, err
	}

	goals, err := s.GoalsProgress(ctx, owner)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Currency: s.domestic,
		Expenses: *expenses,
		Trend:    *trend,
		Goals:    *goals,
	}, nil
}
