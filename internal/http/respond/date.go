package respond

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date is a calendar date carried as "2006-01-02" in JSON. Full RFC 3339 timestamps
// are accepted on input and truncated to their date.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(time.DateOnly))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = NewDate(t)
			return nil
		}
	}

	return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
}

// DatePtr converts an optional request date.
func DatePtr(d *Date) *time.Time {
	if d == nil {
		return nil
	}

	return new(d.Time)
}
