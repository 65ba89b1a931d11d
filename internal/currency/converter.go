// Package currency re-expresses amounts and summaries in another currency using the
// cached exchange rate snapshot.
package currency

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/rates"
)

//go:generate mockgen -source=converter.go -destination=source_mock.go -package=currency
type RateSource interface {
	Snapshot(ctx context.Context) (*rates.Snapshot, error)
}

type Converter struct {
	source RateSource
	now    func() time.Time
}

func NewConverter(source RateSource) *Converter {
	return &Converter{source: source, now: time.Now}
}

// Conversion is the outcome of converting a single amount.
type Conversion struct {
	OriginalAmount   decimal.Decimal
	OriginalCurrency string
	ConvertedAmount  decimal.Decimal
	TargetCurrency   string
	Rate             decimal.Decimal
	ConvertedAt      time.Time
}

// CrossRate is how many units of to one unit of from buys. Identical codes return 1
// without consulting the rate source.
func (c *Converter) CrossRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	from, to = rates.NormalizeCode(from), rates.NormalizeCode(to)
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	snapshot, err := c.source.Snapshot(ctx)
	if err != nil {
		return decimal.Decimal{}, err
	}

	fromRate, err := snapshot.Rate(from)
	if err != nil {
		return decimal.Decimal{}, err
	}

	toRate, err := snapshot.Rate(to)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return toRate.Div(fromRate), nil
}

func (c *Converter) ConvertAmount(ctx context.Context, amount decimal.Decimal, from, to string) (*Conversion, error) {
	rate, err := c.CrossRate(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &Conversion{
		OriginalAmount:   amount,
		OriginalCurrency: rates.NormalizeCode(from),
		ConvertedAmount:  scale(amount, rate),
		TargetCurrency:   rates.NormalizeCode(to),
		Rate:             rate,
		ConvertedAt:      c.now(),
	}, nil
}

// Available lists the currencies of the current snapshot.
func (c *Converter) Available(ctx context.Context) ([]string, error) {
	snapshot, err := c.source.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return snapshot.Currencies(), nil
}

// scale converts one monetary value and rounds it half-up to cents.
func scale(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Round(2)
}
