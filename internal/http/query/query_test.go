package query_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finsight/internal/http/query"
	"github.com/MrJamesThe3rd/finsight/internal/http/respond"
)

var today = time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWindow(t *testing.T) {
	type testCase struct {
		name      string
		rawQuery  string
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
	}

	tests := []testCase{
		{name: "Default", wantStart: day(2026, 5, 1), wantEnd: day(2026, 5, 31)},
		{name: "Explicit", rawQuery: "start_date=2026-01-10&end_date=2026-02-05", wantStart: day(2026, 1, 10), wantEnd: day(2026, 2, 5)},
		{name: "Annual", rawQuery: "period=annual", wantStart: day(2026, 1, 1), wantEnd: day(2026, 12, 31)},
		{name: "Last3Months", rawQuery: "period=last3months", wantStart: day(2026, 2, 1), wantEnd: today},
		{name: "BadDate", rawQuery: "start_date=10/01/2026", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.rawQuery, nil)

			w, err := query.Window(req, today)
			if tt.wantErr {
				assert.ErrorIs(t, err, respond.ErrBadRequest)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, w.Start)
			assert.Equal(t, tt.wantEnd, w.End)
		})
	}
}

func TestMonths(t *testing.T) {
	type testCase struct {
		name     string
		rawQuery string
		want     int
		wantErr  bool
	}

	tests := []testCase{
		{name: "Default", want: 0},
		{name: "Explicit", rawQuery: "months=6", want: 6},
		{name: "FromPeriod", rawQuery: "period=annual", want: 12},
		{name: "Zero", rawQuery: "months=0", wantErr: true},
		{name: "NotNumber", rawQuery: "months=six", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.rawQuery, nil)

			got, err := query.Months(req)
			if tt.wantErr {
				assert.ErrorIs(t, err, respond.ErrBadRequest)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCurrency(t *testing.T) {
	type testCase struct {
		name     string
		rawQuery string
		want     string
		wantErr  bool
	}

	tests := []testCase{
		{name: "LowerCase", rawQuery: "currency=usd", want: "USD"},
		{name: "Absent", rawQuery: "currency=", want: ""},
		{name: "Bolivar", rawQuery: "currency=VES", want: "VES"},
		{name: "Leone", rawQuery: "currency=sle", want: "SLE"},
		{name: "Bitcoin", rawQuery: "currency=BTC", want: "BTC"},
		{name: "Jersey", rawQuery: "currency=%20JEP%20", want: "JEP"},
		{name: "TooShort", rawQuery: "currency=US", wantErr: true},
		{name: "NotLetters", rawQuery: "currency=U5D", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.rawQuery, nil)

			got, err := query.Currency(req, "currency")
			if tt.wantErr {
				assert.ErrorIs(t, err, respond.ErrBadRequest)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
