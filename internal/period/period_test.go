package period_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/finsight/internal/period"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestFromPeriod(t *testing.T) {
	today := date(2026, 5, 17)

	type testCase struct {
		name   string
		period period.Period
		want   period.Window
		wantOK bool
	}

	tests := []testCase{
		{
			name:   "Monthly",
			period: period.Monthly,
			want:   period.Window{Start: date(2026, 5, 1), End: date(2026, 5, 31)},
			wantOK: true,
		},
		{
			name:   "Annual",
			period: period.Annual,
			want:   period.Window{Start: date(2026, 1, 1), End: date(2026, 12, 31)},
			wantOK: true,
		},
		{
			name:   "Last3Months",
			period: period.Last3Months,
			want:   period.Window{Start: date(2026, 2, 1), End: today},
			wantOK: true,
		},
		{
			name:   "Last6Months",
			period: period.Last6Months,
			want:   period.Window{Start: date(2025, 11, 1), End: today},
			wantOK: true,
		},
		{
			name:   "Unknown",
			period: period.Period("weekly"),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := period.FromPeriod(tt.period, today)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCurrentMonth_LeapFebruary(t *testing.T) {
	w := period.CurrentMonth(date(2028, 2, 10))
	assert.Equal(t, date(2028, 2, 1), w.Start)
	assert.Equal(t, date(2028, 2, 29), w.End)
}

func TestResolve(t *testing.T) {
	today := date(2026, 5, 17)

	type args struct {
		start  *time.Time
		end    *time.Time
		period period.Period
	}

	type testCase struct {
		name string
		args args
		want period.Window
	}

	tests := []testCase{
		{
			name: "ExplicitDatesWinOverPeriod",
			args: args{start: new(date(2026, 1, 10)), end: new(date(2026, 1, 20)), period: period.Annual},
			want: period.Window{Start: date(2026, 1, 10), End: date(2026, 1, 20)},
		},
		{
			name: "StartOnlySpansOneMonth",
			args: args{start: new(date(2026, 3, 15))},
			want: period.Window{Start: date(2026, 3, 15), End: date(2026, 4, 14)},
		},
		{
			name: "StartOnlyClampsToMonthEnd",
			args: args{start: new(date(2026, 1, 31))},
			want: period.Window{Start: date(2026, 1, 31), End: date(2026, 2, 27)},
		},
		{
			name: "EndOnlyStartsAtCurrentMonth",
			args: args{end: new(date(2026, 6, 30))},
			want: period.Window{Start: date(2026, 5, 1), End: date(2026, 6, 30)},
		},
		{
			name: "PeriodKeyword",
			args: args{period: period.Last3Months},
			want: period.Window{Start: date(2026, 2, 1), End: today},
		},
		{
			name: "DefaultsToCurrentMonth",
			args: args{},
			want: period.Window{Start: date(2026, 5, 1), End: date(2026, 5, 31)},
		},
		{
			name: "InvertedRangePassesThrough",
			args: args{start: new(date(2026, 5, 10)), end: new(date(2026, 5, 1))},
			want: period.Window{Start: date(2026, 5, 10), End: date(2026, 5, 1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := period.Resolve(tt.args.start, tt.args.end, tt.args.period, today)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWindow_Contains(t *testing.T) {
	w := period.Window{Start: date(2026, 5, 1), End: date(2026, 5, 31)}

	assert.True(t, w.Contains(date(2026, 5, 1)))
	assert.True(t, w.Contains(time.Date(2026, 5, 31, 23, 59, 0, 0, time.UTC)))
	assert.False(t, w.Contains(date(2026, 6, 1)))
	assert.False(t, w.Contains(date(2026, 4, 30)))
}

func TestMonthsForPeriod(t *testing.T) {
	assert.Equal(t, 3, period.MonthsForPeriod(period.Last3Months))
	assert.Equal(t, 6, period.MonthsForPeriod(period.Last6Months))
	assert.Equal(t, 12, period.MonthsForPeriod(period.Annual))
	assert.Equal(t, 0, period.MonthsForPeriod(period.Monthly))
}

func TestParse(t *testing.T) {
	assert.Equal(t, period.Last6Months, period.Parse(" Last6Months "))
}
