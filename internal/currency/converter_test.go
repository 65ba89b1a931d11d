package currency_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finsight/internal/aggregate"
	"github.com/MrJamesThe3rd/finsight/internal/currency"
	"github.com/MrJamesThe3rd/finsight/internal/goal"
	"github.com/MrJamesThe3rd/finsight/internal/period"
	"github.com/MrJamesThe3rd/finsight/internal/rates"
	"github.com/MrJamesThe3rd/finsight/internal/summary"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func snapshot() *rates.Snapshot {
	return &rates.Snapshot{
		Base:      "USD",
		Timestamp: time.Date(2026, 5, 17, 0, 0, 0, 0, time.UTC),
		Rates: map[string]decimal.Decimal{
			"USD": amount("1"),
			"BRL": amount("5"),
			"EUR": amount("0.8"),
			"JPY": amount("150"),
		},
	}
}

func TestConverter_CrossRate(t *testing.T) {
	type args struct {
		from string
		to   string
	}

	type testCase struct {
		name    string
		args    args
		want    string
		wantErr error
	}

	tests := []testCase{
		{name: "BaseToListed", args: args{from: "USD", to: "BRL"}, want: "5"},
		{name: "ListedToBase", args: args{from: "BRL", to: "USD"}, want: "0.2"},
		{name: "Cross", args: args{from: "BRL", to: "EUR"}, want: "0.16"},
		{name: "CaseInsensitive", args: args{from: "brl", to: "jpy"}, want: "30"},
		{name: "UnknownSource", args: args{from: "XYZ", to: "USD"}, wantErr: rates.ErrUnsupportedCurrency},
		{name: "UnknownTarget", args: args{from: "BRL", to: "ABC"}, wantErr: rates.ErrUnsupportedCurrency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			source := currency.NewMockRateSource(ctrl)
			source.EXPECT().Snapshot(gomock.Any()).Return(snapshot(), nil)

			got, err := currency.NewConverter(source).CrossRate(context.Background(), tt.args.from, tt.args.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.True(t, amount(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestConverter_CrossRate_SameCurrencySkipsSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := currency.NewMockRateSource(ctrl)
	source.EXPECT().Snapshot(gomock.Any()).Times(0)

	got, err := currency.NewConverter(source).CrossRate(context.Background(), "BRL", "brl")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1).Equal(got))
}

func TestConverter_CrossRate_ProviderDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := currency.NewMockRateSource(ctrl)
	source.EXPECT().Snapshot(gomock.Any()).Return(nil, rates.ErrProviderUnavailable)

	_, err := currency.NewConverter(source).CrossRate(context.Background(), "BRL", "USD")
	assert.ErrorIs(t, err, rates.ErrProviderUnavailable)
}

func TestConverter_ConvertAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := currency.NewMockRateSource(ctrl)
	source.EXPECT().Snapshot(gomock.Any()).Return(snapshot(), nil).Times(2)

	conv := currency.NewConverter(source)

	got, err := conv.ConvertAmount(context.Background(), amount("100.00"), "BRL", "usd")
	require.NoError(t, err)
	assert.Equal(t, "20.00", got.ConvertedAmount.StringFixed(2))
	assert.Equal(t, "BRL", got.OriginalCurrency)
	assert.Equal(t, "USD", got.TargetCurrency)
	assert.True(t, amount("0.2").Equal(got.Rate))
	assert.False(t, got.ConvertedAt.IsZero())

	rounded, err := conv.ConvertAmount(context.Background(), amount("10.03"), "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "8.02", rounded.ConvertedAmount.String())
}

func domesticSummary() *summary.Summary {
	return &summary.Summary{
		Currency:     "BRL",
		Window:       period.Window{Start: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)},
		Balance:      amount("3000.00"),
		TotalIncome:  amount("5000.00"),
		TotalExpense: amount("2000.00"),
		IncomesByCategory: []summary.CategoryTotal{
			{CategoryID: uuid.New(), CategoryName: "Salário", CategoryType: "income", Amount: amount("5000.00")},
		},
		ExpensesByCategory: []summary.CategoryTotal{
			{CategoryID: uuid.New(), CategoryName: "Moradia", CategoryType: "expense", Amount: amount("1500.00")},
			{CategoryID: uuid.New(), CategoryName: "Alimentação", CategoryType: "expense", Amount: amount("333.33")},
		},
		AchievedGoals: []summary.GoalTotal{
			{ID: uuid.New(), Name: "Reserva", TargetAmount: amount("1000"), CurrentAmount: amount("1200"), Achieved: true},
		},
	}
}

func TestConverter_ConvertSummary_SameCurrencyReturnsInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := currency.NewMockRateSource(ctrl)
	source.EXPECT().Snapshot(gomock.Any()).Times(0)

	in := domesticSummary()

	got, err := currency.NewConverter(source).ConvertSummary(context.Background(), in, "BRL", "BRL")
	require.NoError(t, err)
	assert.Same(t, in, got)
}

func TestConverter_ConvertSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := currency.NewMockRateSource(ctrl)
	source.EXPECT().Snapshot(gomock.Any()).Return(snapshot(), nil).Times(1)

	in := domesticSummary()

	got, err := currency.NewConverter(source).ConvertSummary(context.Background(), in, "BRL", "USD")
	require.NoError(t, err)
	require.NotSame(t, in, got)

	assert.Equal(t, "USD", got.Currency)
	assert.Equal(t, in.Window, got.Window)
	assert.Equal(t, "600.00", got.Balance.StringFixed(2))
	assert.Equal(t, "1000.00", got.TotalIncome.StringFixed(2))
	assert.Equal(t, "400.00", got.TotalExpense.StringFixed(2))
	assert.Equal(t, "300.00", got.ExpensesByCategory[0].Amount.StringFixed(2))
	assert.Equal(t, "66.67", got.ExpensesByCategory[1].Amount.StringFixed(2))
	assert.Equal(t, "Alimentação", got.ExpensesByCategory[1].CategoryName)
	assert.Equal(t, "200.00", got.AchievedGoals[0].TargetAmount.StringFixed(2))
	assert.Equal(t, "240.00", got.AchievedGoals[0].CurrentAmount.StringFixed(2))
	assert.True(t, got.AchievedGoals[0].Achieved)

	assert.Equal(t, "BRL", in.Currency)
	assert.Equal(t, "1500.00", in.ExpensesByCategory[0].Amount.StringFixed(2))
	assert.Equal(t, "1000", in.AchievedGoals[0].TargetAmount.String())
}

func TestConverter_ConvertSummary_Unsupported(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := currency.NewMockRateSource(ctrl)
	source.EXPECT().Snapshot(gomock.Any()).Return(snapshot(), nil)

	got, err := currency.NewConverter(source).ConvertSummary(context.Background(), domesticSummary(), "BRL", "XXX")
	assert.ErrorIs(t, err, rates.ErrUnsupportedCurrency)
	assert.Nil(t, got)
}

func TestConverter_ConvertDashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := currency.NewMockRateSource(ctrl)
	source.EXPECT().Snapshot(gomock.Any()).Return(snapshot(), nil).Times(1)

	in := &summary.Dashboard{
		Currency: "BRL",
		Expenses: summary.CategoryChart{
			Currency: "BRL",
			Total:    amount("500"),
			Categories: []aggregate.CategoryShare{
				{CategoryAmount: aggregate.CategoryAmount{CategoryName: "Lazer", Amount: amount("500")}, Percentage: amount("100")},
			},
		},
		Trend: summary.TrendChart{
			Currency: "BRL",
			Trend: aggregate.Trend{
				Buckets:   []aggregate.Bucket{{Year: 2026, Month: time.May, Label: "May/2026", Income: amount("50"), Expense: amount("500"), Balance: amount("-450")}},
				MaxAmount: amount("550"),
			},
		},
		Goals: summary.GoalsChart{
			Currency: "BRL",
			Goals:    []goal.Progress{{Name: "Viagem", TargetAmount: amount("1000"), CurrentAmount: amount("250"), Percentage: amount("25")}},
		},
	}

	got, err := currency.NewConverter(source).ConvertDashboard(context.Background(), in, "BRL", "EUR")
	require.NoError(t, err)

	assert.Equal(t, "EUR", got.Currency)
	assert.Equal(t, "EUR", got.Expenses.Currency)
	assert.Equal(t, "80.00", got.Expenses.Total.StringFixed(2))
	assert.Equal(t, "80.00", got.Expenses.Categories[0].Amount.StringFixed(2))
	assert.Equal(t, "100", got.Expenses.Categories[0].Percentage.String())

	assert.Equal(t, "-72.00", got.Trend.Buckets[0].Balance.StringFixed(2))
	assert.Equal(t, "88.00", got.Trend.MaxAmount.StringFixed(2))
	assert.Equal(t, "May/2026", got.Trend.Buckets[0].Label)

	assert.Equal(t, "40.00", got.Goals.Goals[0].CurrentAmount.StringFixed(2))
	assert.Equal(t, "25", got.Goals.Goals[0].Percentage.String())

	assert.Equal(t, "500", in.Expenses.Categories[0].Amount.String())
}

func TestConverter_Available(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := currency.NewMockRateSource(ctrl)
	gomock.InOrder(
		source.EXPECT().Snapshot(gomock.Any()).Return(snapshot(), nil),
		source.EXPECT().Snapshot(gomock.Any()).Return(nil, errors.New("boom")),
	)

	conv := currency.NewConverter(source)

	got, err := conv.Available(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"BRL", "EUR", "JPY", "USD"}, got)

	_, err = conv.Available(context.Background())
	assert.Error(t, err)
}
