package summary

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/aggregate"
	"github.com/MrJamesThe3rd/finsight/internal/goal"
	"github.com/MrJamesThe3rd/finsight/internal/period"
)

// Summary is the financial picture of one owner over one window, expressed in Currency.
type Summary struct {
	Currency           string
	Window             period.Window
	Balance            decimal.Decimal
	TotalIncome        decimal.Decimal
	TotalExpense       decimal.Decimal
	IncomesByCategory  []CategoryTotal
	ExpensesByCategory []CategoryTotal
	AchievedGoals      []GoalTotal
}

type CategoryTotal struct {
	CategoryID   uuid.UUID
	CategoryName string
	CategoryType string
	Amount       decimal.Decimal
}

type GoalTotal struct {
	ID            uuid.UUID
	Name          string
	Description   string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Achieved      bool
	CategoryName  string
}

// CategoryChart is the expense breakdown of a window, largest category first.
type CategoryChart struct {
	Currency   string
	Window     period.Window
	Total      decimal.Decimal
	Categories []aggregate.CategoryShare
}

type TrendChart struct {
	Currency string
	aggregate.Trend
}

// GoalsChart lists every goal of an owner, most advanced first.
type GoalsChart struct {
	Currency string
	Goals    []goal.Progress
}

type Dashboard struct {
	Currency string
	Expenses CategoryChart
	Trend    TrendChart
	Goals    GoalsChart
}

func toCategoryTotals(in []aggregate.CategoryAmount) []CategoryTotal {
	out := make([]CategoryTotal, len(in))
	for i, c := range in {
		out[i] = CategoryTotal{
			CategoryID:   c.CategoryID,
			CategoryName: c.CategoryName,
			CategoryType: string(c.CategoryType),
			Amount:       c.Amount,
		}
	}

	return out
}

func toGoalTotals(in []*goal.Goal) []GoalTotal {
	out := make([]GoalTotal, len(in))
	for i, g := range in {
		out[i] = GoalTotal{
			ID:            g.ID,
			Name:          g.Name,
			Description:   g.Description,
			TargetAmount:  g.TargetAmount,
			CurrentAmount: g.CurrentAmount,
			Achieved:      g.Achieved,
			CategoryName:  g.CategoryName(),
		}
	}

	return out
}
