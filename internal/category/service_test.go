package category_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finsight/internal/category"
)

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := uuid.New()

	repo := category.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateCategory(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *category.Category) error {
			c.ID = uuid.New()
			return nil
		})

	svc := category.NewService(repo)

	got, err := svc.Create(context.Background(), category.CreateParams{
		Owner: owner,
		Name:  "Groceries",
		Type:  category.TypeExpense,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	require.NotNil(t, got.OwnerID)
	assert.Equal(t, owner, *got.OwnerID)
	assert.True(t, got.AccessibleBy(owner))
	assert.False(t, got.AccessibleBy(uuid.New()))
}

func TestService_Get(t *testing.T) {
	owner := uuid.New()
	id := uuid.New()

	type testCase struct {
		name      string
		setupMock func(m *category.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Global",
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().GetCategory(gomock.Any(), id).Return(&category.Category{ID: id, Name: "Salary"}, nil)
			},
		},
		{
			name: "Own",
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().GetCategory(gomock.Any(), id).Return(&category.Category{ID: id, OwnerID: new(owner)}, nil)
			},
		},
		{
			name: "SomeoneElses",
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().GetCategory(gomock.Any(), id).Return(&category.Category{ID: id, OwnerID: new(uuid.New())}, nil)
			},
			wantErr: category.ErrNotFound,
		},
		{
			name: "RepoError",
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().GetCategory(gomock.Any(), id).Return(nil, errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := category.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := category.NewService(repo).Get(context.Background(), owner, id)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, id, got.ID)
		})
	}
}
