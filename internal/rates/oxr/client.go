// Package oxr fetches the latest exchange rates from Open Exchange Rates.
package oxr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/rates"
)

const DefaultBaseURL = "https://openexchangerates.org/api"

var errMalformed = errors.New("malformed rates response")

// Client implements rates.Provider. It performs exactly one request per call.
type Client struct {
	baseURL string
	appID   string
	client  *http.Client
}

func New(baseURL, appID string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		appID:   appID,
		client:  &http.Client{Timeout: timeout},
	}
}

type latestResponse struct {
	Base      string                     `json:"base"`
	Timestamp int64                      `json:"timestamp"`
	Rates     map[string]decimal.Decimal `json:"rates"`
}

func (c *Client) Latest(ctx context.Context) (*rates.Snapshot, error) {
	endpoint := c.baseURL + "/latest.json?" + url.Values{"app_id": {c.appID}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting latest rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %w", errMalformed, err)
	}

	if payload.Base == "" {
		return nil, fmt.Errorf("%w: missing base", errMalformed)
	}

	snapshot := &rates.Snapshot{
		Base:      rates.NormalizeCode(payload.Base),
		Timestamp: time.Unix(payload.Timestamp, 0).UTC(),
		Rates:     make(map[string]decimal.Decimal, len(payload.Rates)),
	}

	for code, rate := range payload.Rates {
		snapshot.Rates[rates.NormalizeCode(code)] = rate
	}

	return snapshot, nil
}
