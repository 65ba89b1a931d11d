package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/finsight/internal/http/auth"
	"github.com/MrJamesThe3rd/finsight/internal/http/category"
	"github.com/MrJamesThe3rd/finsight/internal/http/currency"
	"github.com/MrJamesThe3rd/finsight/internal/http/export"
	"github.com/MrJamesThe3rd/finsight/internal/http/goal"
	"github.com/MrJamesThe3rd/finsight/internal/http/importcsv"
	"github.com/MrJamesThe3rd/finsight/internal/http/matching"
	"github.com/MrJamesThe3rd/finsight/internal/http/report"
	"github.com/MrJamesThe3rd/finsight/internal/http/transaction"
)

type Handlers struct {
	Reports      *report.Handler
	Currency     *currency.Handler
	Goals        *goal.Handler
	Transactions *transaction.Handler
	Categories   *category.Handler
	Import       *importcsv.Handler
	Rules        *matching.Handler
	Export       *export.Handler
}

func New(h Handlers, tokens *auth.TokenService, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(tokens))

		r.Route("/summary", h.Reports.SummaryRoutes)
		r.Route("/charts", h.Reports.ChartRoutes)

		r.Route("/currency", func(r chi.Router) {
			r.Get("/convert-summary", h.Reports.ConvertedSummary)
			h.Currency.Routes(r)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Goals.Routes(r)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Transactions.Routes(r)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Categories.Routes(r)
		})

		r.Route("/import", h.Import.Routes)

		r.Route("/export", h.Export.Routes)

		r.Route("/rules", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Rules.Routes(r)
		})
	})

	return router
}
