// Package respond holds the JSON and error helpers shared by the v1 handlers.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/category"
	"github.com/MrJamesThe3rd/finsight/internal/goal"
	"github.com/MrJamesThe3rd/finsight/internal/matching"
	"github.com/MrJamesThe3rd/finsight/internal/rates"
	"github.com/MrJamesThe3rd/finsight/internal/transaction"
)

// ErrBadRequest marks malformed input detected by a handler.
var ErrBadRequest = errors.New("bad request")

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes err with the status its kind maps to. Unknown errors become 500
// and are logged without leaking details to the client.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, "internal error", status)

		return
	}

	http.Error(w, err.Error(), status)
}

func Status(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, ErrBadRequest), errors.As(err, &validationErrs):
		return http.StatusBadRequest
	case errors.Is(err, transaction.ErrNegativeAmount),
		errors.Is(err, transaction.ErrInvalidType),
		errors.Is(err, goal.ErrNegativeAmount),
		errors.Is(err, matching.ErrEmptyPattern):
		return http.StatusBadRequest
	case errors.Is(err, transaction.ErrNotFound),
		errors.Is(err, goal.ErrNotFound),
		errors.Is(err, category.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, transaction.ErrCategoryNotAccessible),
		errors.Is(err, goal.ErrCategoryNotAccessible),
		errors.Is(err, matching.ErrCategoryNotAccessible):
		return http.StatusForbidden
	case errors.Is(err, rates.ErrUnsupportedCurrency):
		return http.StatusUnprocessableEntity
	case errors.Is(err, rates.ErrProviderUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Money renders an amount with exactly two decimal places.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
