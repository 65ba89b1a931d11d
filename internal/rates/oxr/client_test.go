package oxr_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finsight/internal/rates/oxr"
)

func TestClient_Latest(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/latest.json", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("app_id"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"disclaimer": "Usage subject to terms",
			"license": "https://openexchangerates.org/license",
			"timestamp": 1767225600,
			"base": "USD",
			"rates": {"BRL": 5.4321, "EUR": 0.91, "usd": 1}
		}`))
	}))
	defer ts.Close()

	c := oxr.New(ts.URL+"/api/", "secret", 5*time.Second)

	s, err := c.Latest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "USD", s.Base)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), s.Timestamp)
	assert.Equal(t, "5.4321", s.Rates["BRL"].String())
	assert.Equal(t, "0.91", s.Rates["EUR"].String())
	assert.Contains(t, s.Rates, "USD")
}

func TestClient_Latest_Errors(t *testing.T) {
	type testCase struct {
		name    string
		status  int
		body    string
		wantErr string
	}

	tests := []testCase{
		{name: "Unauthorized", status: http.StatusUnauthorized, body: `{"error": true, "message": "invalid_app_id"}`, wantErr: "unexpected status 401"},
		{name: "ServerError", status: http.StatusBadGateway, body: "", wantErr: "unexpected status 502"},
		{name: "NotJSON", status: http.StatusOK, body: "<html>", wantErr: "malformed rates response"},
		{name: "MissingBase", status: http.StatusOK, body: `{"rates": {"BRL": 5}}`, wantErr: "missing base"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			_, err := oxr.New(ts.URL, "id", time.Second).Latest(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, 1, calls)
		})
	}
}

func TestClient_Latest_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := oxr.New(url, "id", time.Second).Latest(context.Background())
	assert.Error(t, err)
}
