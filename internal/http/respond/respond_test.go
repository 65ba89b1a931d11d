package respond_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finsight/internal/category"
	"github.com/MrJamesThe3rd/finsight/internal/goal"
	"github.com/MrJamesThe3rd/finsight/internal/http/respond"
	"github.com/MrJamesThe3rd/finsight/internal/rates"
	"github.com/MrJamesThe3rd/finsight/internal/transaction"
)

func TestStatus(t *testing.T) {
	type testCase struct {
		name string
		err  error
		want int
	}

	tests := []testCase{
		{name: "BadRequest", err: fmt.Errorf("%w: months", respond.ErrBadRequest), want: http.StatusBadRequest},
		{name: "NegativeAmount", err: goal.ErrNegativeAmount, want: http.StatusBadRequest},
		{name: "TransactionNotFound", err: transaction.ErrNotFound, want: http.StatusNotFound},
		{name: "CategoryNotFound", err: category.ErrNotFound, want: http.StatusNotFound},
		{name: "ForeignCategory", err: goal.ErrCategoryNotAccessible, want: http.StatusForbidden},
		{name: "Unsupported", err: fmt.Errorf("%w: XYZ", rates.ErrUnsupportedCurrency), want: http.StatusUnprocessableEntity},
		{name: "ProviderDown", err: fmt.Errorf("%w: timeout", rates.ErrProviderUnavailable), want: http.StatusBadGateway},
		{name: "Unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, respond.Status(tt.err))
		})
	}
}

func TestDate_JSON(t *testing.T) {
	var got struct {
		A respond.Date `json:"a"`
		B respond.Date `json:"b"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"a":"2026-05-17","b":"2026-05-17T22:30:00-03:00"}`), &got))
	assert.Equal(t, time.Date(2026, 5, 17, 0, 0, 0, 0, time.UTC), got.A.Time)
	assert.Equal(t, time.Date(2026, 5, 17, 0, 0, 0, 0, time.UTC), got.B.Time)

	out, err := json.Marshal(got.A)
	require.NoError(t, err)
	assert.JSONEq(t, `"2026-05-17"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"a":"17/05/2026"}`), &got))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "20.00", respond.Money(decimal.NewFromInt(20)))
	assert.Equal(t, "-0.50", respond.Money(decimal.RequireFromString("-0.5")))
}
