package report

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finsight/internal/currency"
	"github.com/MrJamesThe3rd/finsight/internal/http/auth"
	"github.com/MrJamesThe3rd/finsight/internal/http/query"
	"github.com/MrJamesThe3rd/finsight/internal/http/respond"
	"github.com/MrJamesThe3rd/finsight/internal/period"
	"github.com/MrJamesThe3rd/finsight/internal/summary"
)

// Handler serves the summary and chart endpoints. Every response is computed in the
// domestic currency and converted when the currency parameter names another one.
type Handler struct {
	summaries *summary.Service
	converter *currency.Converter
}

func NewHandler(summaries *summary.Service, converter *currency.Converter) *Handler {
	return &Handler{summaries: summaries, converter: converter}
}

func (h *Handler) SummaryRoutes(r chi.Router) {
	r.Get("/", h.summary)
	r.Get("/monthly", h.fixedSummary(period.CurrentMonth))
	r.Get("/annual", h.fixedSummary(period.CurrentYear))
}

func (h *Handler) ChartRoutes(r chi.Router) {
	r.Get("/expenses-by-category", h.expensesByCategory)
	r.Get("/income-expense-trend", h.trend)
	r.Get("/goals-progress", h.goalsProgress)
	r.Get("/dashboard", h.dashboard)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	win, err := query.Window(r, h.summaries.Today())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	target, err := query.Currency(r, "currency")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	h.writeSummary(w, r, win, target)
}

// ConvertedSummary is the summary for the requested window expressed in the
// mandatory target_currency.
func (h *Handler) ConvertedSummary(w http.ResponseWriter, r *http.Request) {
	win, err := query.Window(r, h.summaries.Today())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	target, err := query.Currency(r, "target_currency")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if target == "" {
		respond.Error(w, r, fmt.Errorf("%w: target_currency is required", respond.ErrBadRequest))
		return
	}

	h.writeSummary(w, r, win, target)
}

func (h *Handler) fixedSummary(window func(today time.Time) period.Window) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target, err := query.Currency(r, "currency")
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		h.writeSummary(w, r, window(h.summaries.Today()), target)
	}
}

func (h *Handler) writeSummary(w http.ResponseWriter, r *http.Request, win period.Window, target string) {
	owner, _ := auth.OwnerFromContext(r.Context())

	s, err := h.summaries.Summary(r.Context(), owner, win)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if target != "" {
		if s, err = h.converter.ConvertSummary(r.Context(), s, h.summaries.Domestic(), target); err != nil {
			respond.Error(w, r, err)
			return
		}
	}

	respond.JSON(w, http.StatusOK, toSummaryResponse(s))
}

func (h *Handler) expensesByCategory(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.OwnerFromContext(r.Context())

	win, err := query.Window(r, h.summaries.Today())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	target, err := query.Currency(r, "currency")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	chart, err := h.summaries.ExpensesByCategory(r.Context(), owner, win)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if target != "" {
		if chart, err = h.converter.ConvertCategoryChart(r.Context(), chart, h.summaries.Domestic(), target); err != nil {
			respond.Error(w, r, err)
			return
		}
	}

	respond.JSON(w, http.StatusOK, toCategoryChartResponse(chart))
}

func (h *Handler) trend(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.OwnerFromContext(r.Context())

	months, err := query.Months(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	target, err := query.Currency(r, "currency")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	chart, err := h.summaries.MonthlyTrend(r.Context(), owner, months)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if target != "" {
		if chart, err = h.converter.ConvertTrend(r.Context(), chart, h.summaries.Domestic(), target); err != nil {
			respond.Error(w, r, err)
			return
		}
	}

	respond.JSON(w, http.StatusOK, toTrendResponse(chart))
}

func (h *Handler) goalsProgress(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.OwnerFromContext(r.Context())

	target, err := query.Currency(r, "currency")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	chart, err := h.summaries.GoalsProgress(r.Context(), owner)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if target != "" {
		if chart, err = h.converter.ConvertGoalsChart(r.Context(), chart, h.summaries.Domestic(), target); err != nil {
			respond.Error(w, r, err)
			return
		}
	}

	respond.JSON(w, http.StatusOK, toGoalsResponse(chart))
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.OwnerFromContext(r.Context())

	win, err := query.Window(r, h.summaries.Today())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	months, err := query.Months(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	target, err := query.Currency(r, "currency")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	d, err := h.summaries.Dashboard(r.Context(), owner, win, months)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if target != "" {
		if d, err = h.converter.ConvertDashboard(r.Context(), d, h.summaries.Domestic(), target); err != nil {
			respond.Error(w, r, err)
			return
		}
	}

	respond.JSON(w, http.StatusOK, dashboardResponse{
		Currency: d.Currency,
		Expenses: toCategoryChartResponse(&d.Expenses),
		Trend:    toTrendResponse(&d.Trend),
		Goals:    toGoalsResponse(&d.Goals),
	})
}
