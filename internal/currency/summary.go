package currency

import (
	"context"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/aggregate"
	"github.com/MrJamesThe3rd/finsight/internal/goal"
	"github.com/MrJamesThe3rd/finsight/internal/rates"
	"github.com/MrJamesThe3rd/finsight/internal/summary"
)

// rateFor returns ok=false when target is the domestic currency, in which case the
// caller hands back its input untouched.
func (c *Converter) rateFor(ctx context.Context, domestic, target string) (decimal.Decimal, bool, error) {
	if rates.NormalizeCode(domestic) == rates.NormalizeCode(target) {
		return decimal.Decimal{}, false, nil
	}

	rate, err := c.CrossRate(ctx, domestic, target)
	if err != nil {
		return decimal.Decimal{}, false, err
	}

	return rate, true, nil
}

// ConvertSummary rescales every monetary field of s with a single cross rate. When
// target equals domestic, s itself is returned.
func (c *Converter) ConvertSummary(ctx context.Context, s *summary.Summary, domestic, target string) (*summary.Summary, error) {
	rate, convert, err := c.rateFor(ctx, domestic, target)
	if err != nil {
		return nil, err
	}

	if !convert {
		return s, nil
	}

	return summaryAt(s, rate, rates.NormalizeCode(target)), nil
}

func summaryAt(s *summary.Summary, rate decimal.Decimal, target string) *summary.Summary {
	out := &summary.Summary{
		Currency:           target,
		Window:             s.Window,
		Balance:            scale(s.Balance, rate),
		TotalIncome:        scale(s.TotalIncome, rate),
		TotalExpense:       scale(s.TotalExpense, rate),
		IncomesByCategory:  categoryTotalsAt(s.IncomesByCategory, rate),
		ExpensesByCategory: categoryTotalsAt(s.ExpensesByCategory, rate),
		AchievedGoals:      make([]summary.GoalTotal, len(s.AchievedGoals)),
	}

	for i, g := range s.AchievedGoals {
		g.TargetAmount = scale(g.TargetAmount, rate)
		g.CurrentAmount = scale(g.CurrentAmount, rate)
		out.AchievedGoals[i] = g
	}

	return out
}

func categoryTotalsAt(in []summary.CategoryTotal, rate decimal.Decimal) []summary.CategoryTotal {
	out := slices.Clone(in)
	for i := range out {
		out[i].Amount = scale(out[i].Amount, rate)
	}

	return out
}

// ConvertCategoryChart rescales amounts and the total. Percentages are kept as computed
// in the domestic currency.
func (c *Converter) ConvertCategoryChart(ctx context.Context, ch *summary.CategoryChart, domestic, target string) (*summary.CategoryChart, error) {
	rate, convert, err := c.rateFor(ctx, domestic, target)
	if err != nil {
		return nil, err
	}

	if !convert {
		return ch, nil
	}

	return categoryChartAt(ch, rate, rates.NormalizeCode(target)), nil
}

func categoryChartAt(ch *summary.CategoryChart, rate decimal.Decimal, target string) *summary.CategoryChart {
	out := &summary.CategoryChart{
		Currency:   target,
		Window:     ch.Window,
		Total:      scale(ch.Total, rate),
		Categories: slices.Clone(ch.Categories),
	}

	for i := range out.Categories {
		out.Categories[i].Amount = scale(out.Categories[i].Amount, rate)
	}

	return out
}

func (c *Converter) ConvertTrend(ctx context.Context, tr *summary.TrendChart, domestic, target string) (*summary.TrendChart, error) {
	rate, convert, err := c.rateFor(ctx, domestic, target)
	if err != nil {
		return nil, err
	}

	if !convert {
		return tr, nil
	}

	return trendAt(tr, rate, rates.NormalizeCode(target)), nil
}

func trendAt(tr *summary.TrendChart, rate decimal.Decimal, target string) *summary.TrendChart {
	out := &summary.TrendChart{
		Currency: target,
		Trend: aggregate.Trend{
			Buckets:   slices.Clone(tr.Buckets),
			MaxAmount: scale(tr.MaxAmount, rate),
		},
	}

	for i := range out.Buckets {
		b := &out.Buckets[i]
		b.Income = scale(b.Income, rate)
		b.Expense = scale(b.Expense, rate)
		b.Balance = scale(b.Balance, rate)
	}

	return out
}

// ConvertGoalsChart rescales target and current amounts. Percentages and days remaining
// do not depend on the currency.
func (c *Converter) ConvertGoalsChart(ctx context.Context, gc *summary.GoalsChart, domestic, target string) (*summary.GoalsChart, error) {
	rate, convert, err := c.rateFor(ctx, domestic, target)
	if err != nil {
		return nil, err
	}

	if !convert {
		return gc, nil
	}

	return goalsChartAt(gc, rate, rates.NormalizeCode(target)), nil
}

func goalsChartAt(gc *summary.GoalsChart, rate decimal.Decimal, target string) *summary.GoalsChart {
	out := &summary.GoalsChart{Currency: target, Goals: make([]goal.Progress, len(gc.Goals))}

	for i, p := range gc.Goals {
		p.TargetAmount = scale(p.TargetAmount, rate)
		p.CurrentAmount = scale(p.CurrentAmount, rate)
		out.Goals[i] = p
	}

	return out
}

// ConvertDashboard converts all three charts with the same rate.
func (c *Converter) ConvertDashboard(ctx context.Context, d *summary.Dashboard, domestic, target string) (*summary.Dashboard, error) {
	rate, convert, err := c.rateFor(ctx, domestic, target)
	if err != nil {
		return nil, err
	}

	if !convert {
		return d, nil
	}

	target = rates.NormalizeCode(target)

	return &summary.Dashboard{
		Currency: target,
		Expenses: *categoryChartAt(&d.Expenses, rate, target),
		Trend:    *trendAt(&d.Trend, rate, target),
		Goals:    *goalsChartAt(&d.Goals, rate, target),
	}, nil
}
