package goal

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/aggregate"
	"github.com/MrJamesThe3rd/finsight/internal/category"
	"github.com/MrJamesThe3rd/finsight/internal/period"
)

var (
	ErrNotFound              = errors.New("goal not found")
	ErrCategoryNotAccessible = errors.New("category not accessible")
	ErrNegativeAmount        = errors.New("amounts must not be negative")
)

// Goal is a savings target. Achieved is derived from the two amounts and must be
// refreshed with RecomputeAchieved after any change to them.
type Goal struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Name          string
	Description   string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	StartDate     time.Time
	EndDate       *time.Time
	Achieved      bool
	CategoryID    *uuid.UUID
	Category      *category.Category // Loaded via JOIN
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// RecomputeAchieved sets Achieved to current >= target. It clears the flag again when
// the current amount drops below the target.
func (g *Goal) RecomputeAchieved() {
	g.Achieved = g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// ProgressPercentage is current*100/target rounded half-up to two decimals. Goals
// without a positive target report zero.
func (g *Goal) ProgressPercentage() decimal.Decimal {
	return aggregate.Percent(g.CurrentAmount, g.TargetAmount)
}

// DaysRemaining counts whole days from today to the end date. It is nil when the goal
// has no end date, is achieved, or the end date is not after today.
func (g *Goal) DaysRemaining(today time.Time) *int {
	if g.EndDate == nil || g.Achieved {
		return nil
	}

	end := period.Date(*g.EndDate)
	start := period.Date(today)

	if !end.After(start) {
		return nil
	}

	return new(int(end.Sub(start).Hours() / 24))
}

func (g *Goal) CategoryName() string {
	if g.Category == nil {
		return ""
	}

	return g.Category.Name
}

// Progress is a read-only snapshot of a goal for charts.
type Progress struct {
	GoalID        uuid.UUID
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Percentage    decimal.Decimal
	Achieved      bool
	EndDate       *time.Time
	DaysRemaining *int
	CategoryID    *uuid.UUID
	CategoryName  string
}

func NewProgress(g *Goal, today time.Time) Progress {
	return Progress{
		GoalID:        g.ID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		Percentage:    g.ProgressPercentage(),
		Achieved:      g.Achieved,
		EndDate:       g.EndDate,
		DaysRemaining: g.DaysRemaining(today),
		CategoryID:    g.CategoryID,
		CategoryName:  g.CategoryName(),
	}
}
