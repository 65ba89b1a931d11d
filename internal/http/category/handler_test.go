package category_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finsight/internal/category"
	"github.com/MrJamesThe3rd/finsight/internal/http/auth"
	httpcategory "github.com/MrJamesThe3rd/finsight/internal/http/category"
)

var owner = uuid.New()

func serve(t *testing.T, method, body string, setupMock func(m *category.MockRepository)) *httptest.ResponseRecorder {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := category.NewMockRepository(ctrl)

	if setupMock != nil {
		setupMock(repo)
	}

	r := chi.NewRouter()
	r.Route("/categories", httpcategory.NewHandler(category.NewService(repo)).Routes)

	req := httptest.NewRequest(method, "/categories/", strings.NewReader(body))
	req = req.WithContext(auth.WithOwner(req.Context(), owner))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	return rec
}

func TestHandler_List(t *testing.T) {
	rec := serve(t, http.MethodGet, "", func(m *category.MockRepository) {
		m.EXPECT().ListCategories(gomock.Any(), owner).Return([]*category.Category{
			{ID: uuid.New(), Name: "Moradia", Type: category.TypeExpense},
			{ID: uuid.New(), Name: "Freelas", Type: category.TypeIncome, OwnerID: &owner},
		}, nil)
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, true, body[0]["global"])
	assert.Equal(t, false, body[1]["global"])
}

func TestHandler_Create(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		setupMock  func(m *category.MockRepository)
		wantStatus int
	}

	tests := []testCase{
		{
			name: "Success",
			body: `{"name":"Pets","type":"expense"}`,
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().CreateCategory(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *category.Category) error {
						assert.Equal(t, owner, *c.OwnerID)
						c.ID = uuid.New()

						return nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "BlankName",
			body:       `{"name":" ","type":"expense"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "UnknownType",
			body:       `{"name":"Pets","type":"transfer"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Malformed",
			body:       `[`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, http.MethodPost, tt.body, tt.setupMock)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
