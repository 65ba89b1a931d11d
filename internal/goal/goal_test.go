package goal_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finsight/internal/category"
	"github.com/MrJamesThe3rd/finsight/internal/goal"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestGoal_RecomputeAchieved_FollowsAmounts(t *testing.T) {
	g := &goal.Goal{TargetAmount: amount("1000"), CurrentAmount: amount("1000")}

	g.RecomputeAchieved()
	assert.True(t, g.Achieved)
	assert.Equal(t, "100.00", g.ProgressPercentage().StringFixed(2))

	g.CurrentAmount = amount("500")
	g.RecomputeAchieved()
	assert.False(t, g.Achieved)
	assert.Equal(t, "50.00", g.ProgressPercentage().StringFixed(2))
}

func TestGoal_ProgressPercentage(t *testing.T) {
	type testCase struct {
		name    string
		target  string
		current string
		want    string
	}

	tests := []testCase{
		{name: "Partial", target: "3000", current: "1000", want: "33.33"},
		{name: "RoundsHalfUp", target: "8", current: "1", want: "12.50"},
		{name: "Exceeded", target: "100", current: "150", want: "150.00"},
		{name: "ZeroTarget", target: "0", current: "10", want: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &goal.Goal{TargetAmount: amount(tt.target), CurrentAmount: amount(tt.current)}
			assert.Equal(t, tt.want, g.ProgressPercentage().StringFixed(2))
		})
	}
}

func TestGoal_DaysRemaining(t *testing.T) {
	today := date(2026, 5, 17)

	type testCase struct {
		name     string
		goal     goal.Goal
		wantDays *int
	}

	tests := []testCase{
		{
			name:     "NoEndDate",
			goal:     goal.Goal{},
			wantDays: nil,
		},
		{
			name:     "Future",
			goal:     goal.Goal{EndDate: new(date(2026, 6, 1))},
			wantDays: new(15),
		},
		{
			name:     "Tomorrow",
			goal:     goal.Goal{EndDate: new(date(2026, 5, 18))},
			wantDays: new(1),
		},
		{
			name:     "Today",
			goal:     goal.Goal{EndDate: new(today)},
			wantDays: nil,
		},
		{
			name:     "Past",
			goal:     goal.Goal{EndDate: new(date(2026, 1, 1))},
			wantDays: nil,
		},
		{
			name:     "Achieved",
			goal:     goal.Goal{EndDate: new(date(2026, 6, 1)), Achieved: true},
			wantDays: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantDays, tt.goal.DaysRemaining(today))
		})
	}
}

func TestNewProgress(t *testing.T) {
	g := &goal.Goal{
		Name:          "Viagem",
		TargetAmount:  amount("2000"),
		CurrentAmount: amount("500"),
		EndDate:       new(date(2026, 5, 27)),
		Category:      &category.Category{Name: "Lazer"},
	}

	p := goal.NewProgress(g, date(2026, 5, 17))
	assert.Equal(t, "Viagem", p.Name)
	assert.Equal(t, "25.00", p.Percentage.StringFixed(2))
	assert.Equal(t, "Lazer", p.CategoryName)
	require.NotNil(t, p.DaysRemaining)
	assert.Equal(t, 10, *p.DaysRemaining)
}
