package aggregate_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finsight/internal/aggregate"
	"github.com/MrJamesThe3rd/finsight/internal/category"
	"github.com/MrJamesThe3rd/finsight/internal/period"
	"github.com/MrJamesThe3rd/finsight/internal/transaction"
)

var (
	owner    = uuid.New()
	stranger = uuid.New()
	food     = &category.Category{ID: uuid.New(), Name: "Alimentação", Type: category.TypeExpense}
	rent     = &category.Category{ID: uuid.New(), Name: "Moradia", Type: category.TypeExpense}
	salary   = &category.Category{ID: uuid.New(), Name: "Salário", Type: category.TypeIncome}
	may2026  = period.Window{Start: date(2026, 5, 1), End: date(2026, 5, 31)}
	emptyWin = period.Window{Start: date(2020, 1, 1), End: date(2020, 1, 31)}
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func tx(who uuid.UUID, kind transaction.Type, amt string, day time.Time, c *category.Category) *transaction.Transaction {
	t := &transaction.Transaction{
		ID:      uuid.New(),
		OwnerID: who,
		Amount:  amount(amt),
		Type:    kind,
		Date:    day,
	}
	if c != nil {
		t.CategoryID = new(c.ID)
		t.Category = c
	}

	return t
}

func fixture() []*transaction.Transaction {
	return []*transaction.Transaction{
		tx(owner, transaction.TypeExpense, "120.50", date(2026, 5, 3), food),
		tx(owner, transaction.TypeExpense, "1500.00", date(2026, 5, 5), rent),
		tx(owner, transaction.TypeExpense, "79.50", date(2026, 5, 20), food),
		tx(owner, transaction.TypeExpense, "33.33", date(2026, 5, 21), nil),
		tx(owner, transaction.TypeIncome, "5000.00", date(2026, 5, 1), salary),
		tx(owner, transaction.TypeExpense, "999.99", date(2026, 4, 30), food),
		tx(stranger, transaction.TypeExpense, "10000.00", date(2026, 5, 10), food),
	}
}

func TestAggregator_Sum(t *testing.T) {
	agg := aggregate.New(owner, fixture())

	type testCase struct {
		name   string
		kind   transaction.Type
		window period.Window
		want   string
	}

	tests := []testCase{
		{name: "Expenses", kind: transaction.TypeExpense, window: may2026, want: "1733.33"},
		{name: "Income", kind: transaction.TypeIncome, window: may2026, want: "5000"},
		{name: "EmptyWindow", kind: transaction.TypeExpense, window: emptyWin, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := agg.Sum(tt.kind, tt.window)
			assert.True(t, amount(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestAggregator_Sum_EmptyIsExactlyZero(t *testing.T) {
	got := aggregate.New(owner, nil).Sum(transaction.TypeIncome, may2026)
	assert.True(t, got.IsZero())
	assert.Equal(t, "0", got.String())
}

func TestAggregator_ByCategory(t *testing.T) {
	agg := aggregate.New(owner, fixture())

	got := agg.ByCategory(transaction.TypeExpense, may2026)
	require.Len(t, got, 2)

	assert.Equal(t, food.ID, got[0].CategoryID)
	assert.Equal(t, "Alimentação", got[0].CategoryName)
	assert.True(t, amount("200.00").Equal(got[0].Amount))

	assert.Equal(t, rent.ID, got[1].CategoryID)
	assert.True(t, amount("1500.00").Equal(got[1].Amount))

	categorized := decimal.Zero
	for _, c := range got {
		categorized = categorized.Add(c.Amount)
	}

	uncategorized := amount("33.33")
	assert.True(t, agg.Sum(transaction.TypeExpense, may2026).Sub(uncategorized).Equal(categorized))
}

func TestAggregator_ByCategory_LabelledWithQueriedKind(t *testing.T) {
	refund := &category.Category{ID: uuid.New(), Name: "Reembolso", Type: category.TypeIncome}

	unloaded := tx(owner, transaction.TypeExpense, "10", date(2026, 5, 4), food)
	unloaded.Category = nil

	agg := aggregate.New(owner, []*transaction.Transaction{
		tx(owner, transaction.TypeExpense, "25", date(2026, 5, 3), refund),
		unloaded,
	})

	got := agg.ByCategory(transaction.TypeExpense, may2026)
	require.Len(t, got, 2)

	assert.Equal(t, category.TypeExpense, got[0].CategoryType)
	assert.Equal(t, "Reembolso", got[0].CategoryName)

	assert.Equal(t, category.TypeExpense, got[1].CategoryType)
	assert.Empty(t, got[1].CategoryName)
}

func TestAggregator_ByCategory_Empty(t *testing.T) {
	got := aggregate.New(owner, fixture()).ByCategory(transaction.TypeExpense, emptyWin)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAggregator_Percentages(t *testing.T) {
	txs := []*transaction.Transaction{
		tx(owner, transaction.TypeExpense, "100", date(2026, 5, 1), food),
		tx(owner, transaction.TypeExpense, "100", date(2026, 5, 2), rent),
		tx(owner, transaction.TypeExpense, "100", date(2026, 5, 3), salary),
	}

	shares, total := aggregate.New(owner, txs).Percentages(transaction.TypeExpense, may2026)
	require.Len(t, shares, 3)
	assert.True(t, amount("300").Equal(total))

	sum := decimal.Zero
	for _, s := range shares {
		assert.Equal(t, "33.33", s.Percentage.StringFixed(2))
		sum = sum.Add(s.Percentage)
	}

	diff := sum.Sub(hundredPct).Abs()
	assert.True(t, diff.LessThanOrEqual(amount("0.03")), "percentages sum to %s", sum)
}

var hundredPct = decimal.NewFromInt(100)

func TestAggregator_Percentages_IncludeUncategorizedInTotal(t *testing.T) {
	shares, total := aggregate.New(owner, fixture()).Percentages(transaction.TypeExpense, may2026)
	require.Len(t, shares, 2)
	assert.True(t, amount("1733.33").Equal(total))
	assert.Equal(t, "11.54", shares[0].Percentage.StringFixed(2))
	assert.Equal(t, "86.54", shares[1].Percentage.StringFixed(2))
}

func TestAggregator_Percentages_ZeroTotal(t *testing.T) {
	txs := []*transaction.Transaction{
		tx(owner, transaction.TypeExpense, "0", date(2026, 5, 1), food),
	}

	shares, total := aggregate.New(owner, txs).Percentages(transaction.TypeExpense, may2026)
	require.Len(t, shares, 1)
	assert.True(t, total.IsZero())
	assert.True(t, shares[0].Percentage.IsZero())
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "66.67", aggregate.Percent(amount("2"), amount("3")).StringFixed(2))
	assert.True(t, aggregate.Percent(amount("5"), decimal.Zero).IsZero())
}

func TestAggregator_MonthlyTrend(t *testing.T) {
	agg := aggregate.New(owner, fixture())

	trend := agg.MonthlyTrend(12, date(2026, 5, 17))
	require.Len(t, trend.Buckets, 12)

	first := trend.Buckets[0]
	assert.Equal(t, 2025, first.Year)
	assert.Equal(t, time.June, first.Month)
	assert.Equal(t, "Jun/2025", first.Label)

	for i := 1; i < len(trend.Buckets); i++ {
		prev := time.Date(trend.Buckets[i-1].Year, trend.Buckets[i-1].Month, 1, 0, 0, 0, 0, time.UTC)
		cur := time.Date(trend.Buckets[i].Year, trend.Buckets[i].Month, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, prev.AddDate(0, 1, 0), cur)
	}

	for _, b := range trend.Buckets {
		assert.True(t, b.Income.Sub(b.Expense).Equal(b.Balance))
	}

	april := trend.Buckets[10]
	assert.Equal(t, time.April, april.Month)
	assert.True(t, amount("999.99").Equal(april.Expense))

	may := trend.Buckets[11]
	assert.Equal(t, time.May, may.Month)
	assert.True(t, amount("5000").Equal(may.Income))
	assert.True(t, amount("1733.33").Equal(may.Expense))
	assert.True(t, amount("3266.67").Equal(may.Balance))

	assert.True(t, amount("5500").Equal(trend.MaxAmount))
}

func TestAggregator_MonthlyTrend_Defaults(t *testing.T) {
	trend := aggregate.New(owner, nil).MonthlyTrend(0, date(2026, 1, 31))
	require.Len(t, trend.Buckets, 12)
	assert.Equal(t, "Feb/2025", trend.Buckets[0].Label)
	assert.Equal(t, "Jan/2026", trend.Buckets[11].Label)
	assert.True(t, trend.MaxAmount.IsZero())

	for _, b := range trend.Buckets {
		assert.True(t, b.Income.IsZero())
		assert.True(t, b.Expense.IsZero())
		assert.True(t, b.Balance.IsZero())
	}
}
