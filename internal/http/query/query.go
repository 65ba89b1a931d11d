// Package query parses the reporting parameters shared by the summary, chart and
// currency endpoints.
package query

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/finsight/internal/http/respond"
	"github.com/MrJamesThe3rd/finsight/internal/period"
	"github.com/MrJamesThe3rd/finsight/internal/rates"
)

// Window resolves start_date, end_date and period against today.
func Window(r *http.Request, today time.Time) (period.Window, error) {
	q := r.URL.Query()

	start, err := date(q.Get("start_date"))
	if err != nil {
		return period.Window{}, fmt.Errorf("%w: start_date: %w", respond.ErrBadRequest, err)
	}

	end, err := date(q.Get("end_date"))
	if err != nil {
		return period.Window{}, fmt.Errorf("%w: end_date: %w", respond.ErrBadRequest, err)
	}

	return period.Resolve(start, end, period.Parse(q.Get("period")), today), nil
}

func date(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// Months reads the trend length from months, falling back to the period keyword.
// Zero means the aggregator default.
func Months(r *http.Request) (int, error) {
	q := r.URL.Query()

	if s := q.Get("months"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 120 {
			return 0, fmt.Errorf("%w: months must be between 1 and 120", respond.ErrBadRequest)
		}

		return n, nil
	}

	return period.MonthsForPeriod(period.Parse(q.Get("period"))), nil
}

// Currency returns the upper-cased currency code in key, or "" when absent. Codes the
// rate snapshot does not know are left for the converter to reject.
func Currency(r *http.Request, key string) (string, error) {
	s := strings.TrimSpace(r.URL.Query().Get(key))
	if s == "" {
		return "", nil
	}

	if !rates.ValidCode(s) {
		return "", fmt.Errorf("%w: %s must be a three-letter currency code", respond.ErrBadRequest, key)
	}

	return rates.NormalizeCode(s), nil
}
