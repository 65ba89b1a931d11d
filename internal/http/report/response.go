package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finsight/internal/aggregate"
	"github.com/MrJamesThe3rd/finsight/internal/goal"
	"github.com/MrJamesThe3rd/finsight/internal/http/respond"
	"github.com/MrJamesThe3rd/finsight/internal/period"
	"github.com/MrJamesThe3rd/finsight/internal/summary"
)

type windowResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type categoryTotalResponse struct {
	CategoryID   uuid.UUID `json:"category_id"`
	CategoryName string    `json:"category_name"`
	CategoryType string    `json:"category_type"`
	Amount       string    `json:"amount"`
}

type goalTotalResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	TargetAmount  string    `json:"target_amount"`
	CurrentAmount string    `json:"current_amount"`
	Achieved      bool      `json:"achieved"`
	CategoryName  string    `json:"category_name,omitempty"`
}

type summaryResponse struct {
	Currency           string                  `json:"currency"`
	Period             windowResponse          `json:"period"`
	Balance            string                  `json:"balance"`
	TotalIncome        string                  `json:"total_income"`
	TotalExpense       string                  `json:"total_expense"`
	IncomesByCategory  []categoryTotalResponse `json:"incomes_by_category"`
	ExpensesByCategory []categoryTotalResponse `json:"expenses_by_category"`
	AchievedGoals      []goalTotalResponse     `json:"achieved_goals"`
}

type categoryShareResponse struct {
	CategoryID   uuid.UUID `json:"category_id"`
	CategoryName string    `json:"category_name"`
	Amount       string    `json:"amount"`
	Percentage   string    `json:"percentage"`
}

type categoryChartResponse struct {
	Currency   string                  `json:"currency"`
	Period     windowResponse          `json:"period"`
	Total      string                  `json:"total"`
	Categories []categoryShareResponse `json:"categories"`
}

type bucketResponse struct {
	Month   string `json:"month"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Balance string `json:"balance"`
}

type trendResponse struct {
	Currency  string           `json:"currency"`
	Months    []bucketResponse `json:"months"`
	MaxAmount string           `json:"max_amount"`
}

type goalProgressResponse struct {
	GoalID        uuid.UUID  `json:"goal_id"`
	Name          string     `json:"name"`
	TargetAmount  string     `json:"target_amount"`
	CurrentAmount string     `json:"current_amount"`
	Percentage    string     `json:"percentage"`
	Achieved      bool       `json:"achieved"`
	EndDate       *string    `json:"end_date,omitempty"`
	DaysRemaining *int       `json:"days_remaining,omitempty"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	CategoryName  string     `json:"category_name,omitempty"`
}

type goalsResponse struct {
	Currency string                 `json:"currency"`
	Goals    []goalProgressResponse `json:"goals"`
}

type dashboardResponse struct {
	Currency string                `json:"currency"`
	Expenses categoryChartResponse `json:"expenses_by_category"`
	Trend    trendResponse         `json:"income_expense_trend"`
	Goals    goalsResponse         `json:"goals_progress"`
}

func toWindow(w period.Window) windowResponse {
	return windowResponse{
		StartDate: w.Start.Format(time.DateOnly),
		EndDate:   w.End.Format(time.DateOnly),
	}
}

func toSummaryResponse(s *summary.Summary) summaryResponse {
	resp := summaryResponse{
		Currency:           s.Currency,
		Period:             toWindow(s.Window),
		Balance:            respond.Money(s.Balance),
		TotalIncome:        respond.Money(s.TotalIncome),
		TotalExpense:       respond.Money(s.TotalExpense),
		IncomesByCategory:  toCategoryTotals(s.IncomesByCategory),
		ExpensesByCategory: toCategoryTotals(s.ExpensesByCategory),
		AchievedGoals:      make([]goalTotalResponse, len(s.AchievedGoals)),
	}

	for i, g := range s.AchievedGoals {
		resp.AchievedGoals[i] = goalTotalResponse{
			ID:            g.ID,
			Name:          g.Name,
			Description:   g.Description,
			TargetAmount:  respond.Money(g.TargetAmount),
			CurrentAmount: respond.Money(g.CurrentAmount),
			Achieved:      g.Achieved,
			CategoryName:  g.CategoryName,
		}
	}

	return resp
}

func toCategoryTotals(in []summary.CategoryTotal) []categoryTotalResponse {
	out := make([]categoryTotalResponse, len(in))
	for i, c := range in {
		out[i] = categoryTotalResponse{
			CategoryID:   c.CategoryID,
			CategoryName: c.CategoryName,
			CategoryType: c.CategoryType,
			Amount:       respond.Money(c.Amount),
		}
	}

	return out
}

func toCategoryChartResponse(ch *summary.CategoryChart) categoryChartResponse {
	resp := categoryChartResponse{
		Currency:   ch.Currency,
		Period:     toWindow(ch.Window),
		Total:      respond.Money(ch.Total),
		Categories: make([]categoryShareResponse, len(ch.Categories)),
	}

	for i, c := range ch.Categories {
		resp.Categories[i] = toShare(c)
	}

	return resp
}

func toShare(c aggregate.CategoryShare) categoryShareResponse {
	return categoryShareResponse{
		CategoryID:   c.CategoryID,
		CategoryName: c.CategoryName,
		Amount:       respond.Money(c.Amount),
		Percentage:   respond.Money(c.Percentage),
	}
}

func toTrendResponse(tr *summary.TrendChart) trendResponse {
	resp := trendResponse{
		Currency:  tr.Currency,
		Months:    make([]bucketResponse, len(tr.Buckets)),
		MaxAmount: respond.Money(tr.MaxAmount),
	}

	for i, b := range tr.Buckets {
		resp.Months[i] = bucketResponse{
			Month:   b.Label,
			Income:  respond.Money(b.Income),
			Expense: respond.Money(b.Expense),
			Balance: respond.Money(b.Balance),
		}
	}

	return resp
}

func toGoalsResponse(gc *summary.GoalsChart) goalsResponse {
	resp := goalsResponse{
		Currency: gc.Currency,
		Goals:    make([]goalProgressResponse, len(gc.Goals)),
	}

	for i, p := range gc.Goals {
		resp.Goals[i] = toProgress(p)
	}

	return resp
}

func toProgress(p goal.Progress) goalProgressResponse {
	resp := goalProgressResponse{
		GoalID:        p.GoalID,
		Name:          p.Name,
		TargetAmount:  respond.Money(p.TargetAmount),
		CurrentAmount: respond.Money(p.CurrentAmount),
		Percentage:    respond.Money(p.Percentage),
		Achieved:      p.Achieved,
		DaysRemaining: p.DaysRemaining,
		CategoryID:    p.CategoryID,
		CategoryName:  p.CategoryName,
	}

	if p.EndDate != nil {
		resp.EndDate = new(p.EndDate.Format(time.DateOnly))
	}

	return resp
}
