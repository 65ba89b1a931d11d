// Package aggregate computes totals, per-category breakdowns and monthly trends over a
// fixed set of transactions. Every method is a pure function of the transactions the
// Aggregator was built with, so one Aggregator can serve several reports.
package aggregate

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/category"
	"github.com/MrJamesThe3rd/finsight/internal/period"
	"github.com/MrJamesThe3rd/finsight/internal/transaction"
)

const defaultTrendMonths = 12

var (
	hundred       = decimal.NewFromInt(100)
	headroomRatio = decimal.RequireFromString("1.1")
)

// CategoryAmount is the total of one category's transactions.
type CategoryAmount struct {
	CategoryID   uuid.UUID
	CategoryName string
	CategoryType category.Type
	Amount       decimal.Decimal
}

// CategoryShare is a CategoryAmount with its percentage of the kind's total.
type CategoryShare struct {
	CategoryAmount
	Percentage decimal.Decimal
}

// Bucket holds the totals of one calendar month.
type Bucket struct {
	Year    int
	Month   time.Month
	Label   string
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// Trend is a run of consecutive monthly buckets, oldest first. MaxAmount is the largest
// monthly income or expense scaled by 1.1 so charts keep some headroom.
type Trend struct {
	Buckets   []Bucket
	MaxAmount decimal.Decimal
}

type Aggregator struct {
	txs []*transaction.Transaction
}

// New keeps only the transactions that belong to owner.
func New(owner uuid.UUID, txs []*transaction.Transaction) *Aggregator {
	owned := make([]*transaction.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx != nil && tx.OwnerID == owner {
			owned = append(owned, tx)
		}
	}

	return &Aggregator{txs: owned}
}

func (a *Aggregator) each(kind transaction.Type, w period.Window, fn func(tx *transaction.Transaction)) {
	for _, tx := range a.txs {
		if tx.Type == kind && w.Contains(tx.Date) {
			fn(tx)
		}
	}
}

// Sum totals the amounts of kind inside w. It is exactly zero when nothing matches.
func (a *Aggregator) Sum(kind transaction.Type, w period.Window) decimal.Decimal {
	total := decimal.Zero

	a.each(kind, w, func(tx *transaction.Transaction) {
		total = total.Add(tx.Amount)
	})

	return total
}

// ByCategory totals kind inside w per category, in the order categories are first seen.
// Entries are labelled with kind whatever the category's own type. Uncategorized
// transactions are left out here but still count towards Sum.
func (a *Aggregator) ByCategory(kind transaction.Type, w period.Window) []CategoryAmount {
	index := make(map[uuid.UUID]int)
	out := []CategoryAmount{}

	a.each(kind, w, func(tx *transaction.Transaction) {
		if tx.CategoryID == nil {
			return
		}

		i, ok := index[*tx.CategoryID]
		if !ok {
			i = len(out)
			index[*tx.CategoryID] = i

			entry := CategoryAmount{
				CategoryID:   *tx.CategoryID,
				CategoryType: category.Type(kind),
				Amount:       decimal.Zero,
			}
			if tx.Category != nil {
				entry.CategoryName = tx.Category.Name
			}

			out = append(out, entry)
		}

		out[i].Amount = out[i].Amount.Add(tx.Amount)
	})

	return out
}

// Percentages returns each category's share of Sum(kind, w), rounded half-up to two
// decimals, together with that total. A zero total yields zero percentages.
func (a *Aggregator) Percentages(kind transaction.Type, w period.Window) ([]CategoryShare, decimal.Decimal) {
	total := a.Sum(kind, w)
	amounts := a.ByCategory(kind, w)

	shares := make([]CategoryShare, len(amounts))
	for i, amt := range amounts {
		shares[i] = CategoryShare{CategoryAmount: amt, Percentage: Percent(amt.Amount, total)}
	}

	return shares, total
}

// Percent is part*100/whole rounded half-up to two decimals, or zero when whole is not
// positive.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}

	return part.Mul(hundred).DivRound(whole, 2)
}

// MonthlyTrend buckets every transaction by calendar month for the monthCount months
// ending with anchor's month. A non-positive monthCount means 12.
func (a *Aggregator) MonthlyTrend(monthCount int, anchor time.Time) Trend {
	if monthCount <= 0 {
		monthCount = defaultTrendMonths
	}

	first := period.FirstOfMonth(period.AddMonths(anchor, -(monthCount - 1)))

	buckets := make([]Bucket, monthCount)
	index := make(map[int]int, monthCount)

	for i := range buckets {
		m := period.AddMonths(first, i)
		buckets[i] = Bucket{
			Year:    m.Year(),
			Month:   m.Month(),
			Label:   m.Format("Jan/2006"),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
		index[monthKey(m)] = i
	}

	for _, tx := range a.txs {
		i, ok := index[monthKey(tx.Date)]
		if !ok {
			continue
		}

		switch tx.Type {
		case transaction.TypeIncome:
			buckets[i].Income = buckets[i].Income.Add(tx.Amount)
		case transaction.TypeExpense:
			buckets[i].Expense = buckets[i].Expense.Add(tx.Amount)
		}
	}

	peak := decimal.Zero

	for i := range buckets {
		buckets[i].Balance = buckets[i].Income.Sub(buckets[i].Expense)
		peak = decimal.Max(peak, buckets[i].Income, buckets[i].Expense)
	}

	return Trend{Buckets: buckets, MaxAmount: peak.Mul(headroomRatio)}
}

func monthKey(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}
