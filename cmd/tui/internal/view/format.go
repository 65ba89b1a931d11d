package view

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const dbTimeout = 5 * time.Second

// Formatter renders amounts with the grouping and decimal separators of a locale.
type Formatter struct {
	printer *message.Printer
}

func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{printer: message.NewPrinter(tag)}
}

// Money formats amount in code, e.g. "R$ 1.234,56" for pt-BR and BRL. Unknown codes are
// printed verbatim in front of the number.
func (f *Formatter) Money(amount decimal.Decimal, code string) string {
	value := number.Decimal(amount.Round(2).InexactFloat64(), number.Scale(2))

	unit, err := currency.ParseISO(code)
	if err != nil {
		return f.printer.Sprintf("%s %v", code, value)
	}

	return f.printer.Sprintf("%v %v", currency.Symbol(unit), value)
}

// Percent formats p with two decimals followed by a percent sign.
func (f *Formatter) Percent(p decimal.Decimal) string {
	return f.printer.Sprintf("%v%%", number.Decimal(p.InexactFloat64(), number.Scale(2)))
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
