package statement

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount reads a statement amount into a decimal rounded to cents.
// "R$ 1.234,56" -> 1234.56 with decimalComma, "-1,234.56" -> -1234.56 with decimalDot.
func parseAmount(s string, style decimalStyle) (decimal.Decimal, error) {
	clean := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	clean = strings.ReplaceAll(clean, " ", "")

	switch style {
	case decimalComma:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	case decimalDot:
		clean = strings.ReplaceAll(clean, ",", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return d.Round(2), nil
}
