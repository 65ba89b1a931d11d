package rates

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrProviderUnavailable = errors.New("exchange rate provider unavailable")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
)

// Snapshot is one provider response: how many units of each currency one unit of Base
// buys. It is never mutated after construction.
type Snapshot struct {
	Base      string
	Timestamp time.Time
	Rates     map[string]decimal.Decimal
}

// NormalizeCode trims and upper-cases an ISO 4217 code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidCode reports whether code looks like a currency code: three ASCII letters after
// normalization. Whether a rate exists for it is up to the snapshot.
func ValidCode(code string) bool {
	code = NormalizeCode(code)
	if len(code) != 3 {
		return false
	}

	for i := range len(code) {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}

	return true
}

// Rate returns the units of code per unit of Base. The base itself is always 1.
func (s *Snapshot) Rate(code string) (decimal.Decimal, error) {
	code = NormalizeCode(code)
	if code == s.Base {
		return decimal.NewFromInt(1), nil
	}

	r, ok := s.Rates[code]
	if !ok || !r.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, code)
	}

	return r, nil
}

// Currencies lists every code the snapshot can convert, base included, sorted.
func (s *Snapshot) Currencies() []string {
	codes := make([]string, 0, len(s.Rates)+1)
	for code := range s.Rates {
		codes = append(codes, code)
	}

	if _, ok := s.Rates[s.Base]; !ok && s.Base != "" {
		codes = append(codes, s.Base)
	}

	slices.Sort(codes)

	return codes
}
