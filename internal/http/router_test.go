package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finsight/internal/category"
	"github.com/MrJamesThe3rd/finsight/internal/currency"
	"github.com/MrJamesThe3rd/finsight/internal/export"
	"github.com/MrJamesThe3rd/finsight/internal/goal"
	apihttp "github.com/MrJamesThe3rd/finsight/internal/http"
	"github.com/MrJamesThe3rd/finsight/internal/http/auth"
	httpcategory "github.com/MrJamesThe3rd/finsight/internal/http/category"
	httpcurrency "github.com/MrJamesThe3rd/finsight/internal/http/currency"
	httpexport "github.com/MrJamesThe3rd/finsight/internal/http/export"
	httpgoal "github.com/MrJamesThe3rd/finsight/internal/http/goal"
	"github.com/MrJamesThe3rd/finsight/internal/http/importcsv"
	httpmatching "github.com/MrJamesThe3rd/finsight/internal/http/matching"
	"github.com/MrJamesThe3rd/finsight/internal/http/report"
	httptransaction "github.com/MrJamesThe3rd/finsight/internal/http/transaction"
	"github.com/MrJamesThe3rd/finsight/internal/importer"
	"github.com/MrJamesThe3rd/finsight/internal/matching"
	"github.com/MrJamesThe3rd/finsight/internal/summary"
	"github.com/MrJamesThe3rd/finsight/internal/transaction"
)

func TestRouter(t *testing.T) {
	ctrl := gomock.NewController(t)

	categoryRepo := category.NewMockRepository(ctrl)
	categories := category.NewService(categoryRepo)
	transactions := transaction.NewService(transaction.NewMockRepository(ctrl), categories)
	goals := goal.NewService(goal.NewMockRepository(ctrl), categories)
	converter := currency.NewConverter(currency.NewMockRateSource(ctrl))
	rules := matching.NewService(matching.NewMockRepository(ctrl), categories)
	summaries := summary.NewService(summary.NewMockTransactionLister(ctrl), summary.NewMockGoalLister(ctrl), "BRL")

	tokens := auth.NewTokenService("secret", time.Hour)
	owner := uuid.New()

	token, err := tokens.Generate(owner)
	require.NoError(t, err)

	categoryRepo.EXPECT().ListCategories(gomock.Any(), owner).Return(nil, nil)

	router := apihttp.New(apihttp.Handlers{
		Reports:      report.NewHandler(summaries, converter),
		Currency:     httpcurrency.NewHandler(converter),
		Goals:        httpgoal.NewHandler(goals),
		Transactions: httptransaction.NewHandler(transactions),
		Categories:   httpcategory.NewHandler(categories),
		Import:       importcsv.NewHandler(importer.NewService(), transactions, rules),
		Rules:        httpmatching.NewHandler(rules),
		Export:       httpexport.NewHandler(export.NewService(transactions, summaries), summaries.Today),
	}, tokens, []string{"*"})

	type testCase struct {
		name       string
		target     string
		token      string
		wantStatus int
	}

	tests := []testCase{
		{name: "HealthIsPublic", target: "/health", wantStatus: http.StatusOK},
		{name: "APIRequiresToken", target: "/api/v1/categories/", wantStatus: http.StatusUnauthorized},
		{name: "APIWithToken", target: "/api/v1/categories/", token: token, wantStatus: http.StatusOK},
		{name: "UnknownRoute", target: "/api/v1/nope", token: token, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
