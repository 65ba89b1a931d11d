package matching_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finsight/internal/category"
	"github.com/MrJamesThe3rd/finsight/internal/matching"
	"github.com/MrJamesThe3rd/finsight/internal/transaction"
)

var owner = uuid.MustParse("6f1c1f0e-5d1e-4b7e-9a43-2a7c3f0e9d11")

func TestService_Learn(t *testing.T) {
	catID := uuid.New()

	type args struct {
		pattern string
	}

	type testCase struct {
		name        string
		args        args
		setupMock   func(r *matching.MockRepository, c *matching.MockCategoryLookup)
		wantErr     error
		wantPattern string
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{pattern: "  UBER  "},
			setupMock: func(r *matching.MockRepository, c *matching.MockCategoryLookup) {
				c.EXPECT().Get(gomock.Any(), owner, catID).Return(&category.Category{ID: catID}, nil)
				r.EXPECT().CreateRule(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantPattern: "UBER",
		},
		{
			name:    "BlankPattern",
			args:    args{pattern: "   "},
			wantErr: matching.ErrEmptyPattern,
		},
		{
			name: "ForeignCategory",
			args: args{pattern: "IFOOD"},
			setupMock: func(_ *matching.MockRepository, c *matching.MockCategoryLookup) {
				c.EXPECT().Get(gomock.Any(), owner, catID).Return(nil, category.ErrNotFound)
			},
			wantErr: matching.ErrCategoryNotAccessible,
		},
		{
			name: "RepoError",
			args: args{pattern: "IFOOD"},
			setupMock: func(r *matching.MockRepository, c *matching.MockCategoryLookup) {
				c.EXPECT().Get(gomock.Any(), owner, catID).Return(&category.Category{ID: catID}, nil)
				r.EXPECT().CreateRule(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: errors.New("creating rule: db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := matching.NewMockRepository(ctrl)
			categories := matching.NewMockCategoryLookup(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, categories)
			}

			got, err := matching.NewService(repo, categories).Learn(context.Background(), owner, tt.args.pattern, catID)

			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPattern, got.Pattern)
			assert.Equal(t, owner, got.OwnerID)
			assert.Equal(t, catID, got.CategoryID)
		})
	}
}

func TestService_Categorize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := uuid.New()
	preset := uuid.New()

	repo := matching.NewMockRepository(ctrl)
	repo.EXPECT().
		FindMatch(gomock.Any(), owner, "UBER *TRIP", category.TypeExpense).
		Return(&transport, nil)
	repo.EXPECT().
		FindMatch(gomock.Any(), owner, "SALARIO", category.TypeIncome).
		Return(nil, nil)

	params := []transaction.CreateParams{
		{Amount: decimal.NewFromInt(10), Type: transaction.TypeExpense, Description: "UBER *TRIP"},
		{Amount: decimal.NewFromInt(5000), Type: transaction.TypeIncome, Description: "SALARIO"},
		{Amount: decimal.NewFromInt(3), Type: transaction.TypeExpense, Description: "PADARIA", CategoryID: &preset},
		{Amount: decimal.NewFromInt(1), Type: transaction.TypeExpense, Description: " "},
	}

	err := matching.NewService(repo, matching.NewMockCategoryLookup(ctrl)).Categorize(context.Background(), owner, params)
	require.NoError(t, err)

	require.NotNil(t, params[0].CategoryID)
	assert.Equal(t, transport, *params[0].CategoryID)
	assert.Nil(t, params[1].CategoryID)
	assert.Equal(t, preset, *params[2].CategoryID)
	assert.Nil(t, params[3].CategoryID)
}

func TestService_Categorize_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := matching.NewMockRepository(ctrl)
	repo.EXPECT().FindMatch(gomock.Any(), owner, "UBER", category.TypeExpense).Return(nil, errors.New("db error"))

	params := []transaction.CreateParams{{Type: transaction.TypeExpense, Description: "UBER"}}

	err := matching.NewService(repo, matching.NewMockCategoryLookup(ctrl)).Categorize(context.Background(), owner, params)
	assert.EqualError(t, err, `categorizing "UBER": db error`)
}
