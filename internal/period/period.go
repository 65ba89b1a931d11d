// Package period resolves the date windows that summaries and charts are computed over.
package period

import (
	"strings"
	"time"
)

// Period is a named window relative to today.
type Period string

const (
	Monthly     Period = "monthly"
	Annual      Period = "annual"
	Last3Months Period = "last3months"
	Last6Months Period = "last6months"
)

// Parse normalizes a keyword coming from a query string. Unknown keywords are returned
// as-is and resolve to nothing in FromPeriod.
func Parse(s string) Period {
	return Period(strings.ToLower(strings.TrimSpace(s)))
}

// Window is an inclusive range of calendar dates.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls on or between Start and End, ignoring time of day.
func (w Window) Contains(d time.Time) bool {
	day := Date(d)
	return !day.Before(w.Start) && !day.After(w.End)
}

// Date truncates t to its calendar date at midnight UTC.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FirstOfMonth returns the first day of t's month.
func FirstOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// AddMonths moves t by n calendar months, clamping the day to the end of the target
// month (Jan 31 + 1 month is Feb 28 or 29).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()

	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	if last := daysIn(first); d > last {
		d = last
	}

	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

func daysIn(first time.Time) int {
	return first.AddDate(0, 1, -1).Day()
}

// CurrentMonth spans the first through the last day of today's month.
func CurrentMonth(today time.Time) Window {
	start := FirstOfMonth(today)
	return Window{Start: start, End: start.AddDate(0, 1, -1)}
}

// CurrentYear spans January 1 through December 31 of today's year.
func CurrentYear(today time.Time) Window {
	y := today.Year()

	return Window{
		Start: time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// LastMonths ends today and starts on the first day of the month n months back.
func LastMonths(today time.Time, n int) Window {
	return Window{
		Start: FirstOfMonth(AddMonths(today, -n)),
		End:   Date(today),
	}
}

// FromPeriod maps a keyword to its window. The boolean is false for unknown keywords.
func FromPeriod(p Period, today time.Time) (Window, bool) {
	switch p {
	case Monthly:
		return CurrentMonth(today), true
	case Annual:
		return CurrentYear(today), true
	case Last3Months:
		return LastMonths(today, 3), true
	case Last6Months:
		return LastMonths(today, 6), true
	}

	return Window{}, false
}

// Resolve picks the window for a request. Explicit dates win over the keyword. A lone
// start spans one month from it, a lone end starts at the first of the current month.
// With neither date the keyword decides, falling back to the current month.
// An end before start is passed through untouched.
func Resolve(start, end *time.Time, p Period, today time.Time) Window {
	switch {
	case start != nil && end != nil:
		return Window{Start: Date(*start), End: Date(*end)}
	case start != nil:
		s := Date(*start)
		return Window{Start: s, End: AddMonths(s, 1).AddDate(0, 0, -1)}
	case end != nil:
		return Window{Start: FirstOfMonth(today), End: Date(*end)}
	}

	if w, ok := FromPeriod(p, today); ok {
		return w
	}

	return CurrentMonth(today)
}

// MonthsForPeriod is the number of trend buckets a keyword asks for, or 0 when the
// keyword carries no month count.
func MonthsForPeriod(p Period) int {
	switch p {
	case Last3Months:
		return 3
	case Last6Months:
		return 6
	case Annual:
		return 12
	}

	return 0
}
