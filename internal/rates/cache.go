package rates

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

//go:generate mockgen -source=cache.go -destination=provider_mock.go -package=rates
type Provider interface {
	Latest(ctx context.Context) (*Snapshot, error)
}

const fetchKey = "latest"

// Cache holds at most one Snapshot. It starts empty, is filled by the first successful
// fetch and stays filled until Evict. Reads of a filled cache take no lock. Concurrent
// misses share a single provider call.
type Cache struct {
	provider Provider
	current  atomic.Pointer[Snapshot]
	group    singleflight.Group
}

func NewCache(provider Provider) *Cache {
	return &Cache{provider: provider}
}

// Snapshot returns the cached snapshot, fetching it first when the cache is empty.
// A failed fetch leaves the cache empty and returns an error wrapping
// ErrProviderUnavailable. The shared fetch keeps the values of the caller that started
// it but not its cancellation, so one caller going away does not fail the others.
func (c *Cache) Snapshot(ctx context.Context) (*Snapshot, error) {
	if s := c.current.Load(); s != nil {
		return s, nil
	}

	v, err, _ := c.group.Do(fetchKey, func() (any, error) {
		if s := c.current.Load(); s != nil {
			return s, nil
		}

		s, err := c.provider.Latest(context.WithoutCancel(ctx))
		if err != nil {
			slog.Warn("exchange rate fetch failed", "error", err)
			return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
		}

		if s == nil {
			return nil, fmt.Errorf("%w: empty response", ErrProviderUnavailable)
		}

		c.current.Store(s)
		slog.Info("exchange rates cached", "base", s.Base, "currencies", len(s.Rates), "timestamp", s.Timestamp)

		return s, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Snapshot), nil
}

// Evict empties the cache so the next read fetches again.
func (c *Cache) Evict() {
	if c.current.Swap(nil) != nil {
		slog.Info("exchange rates evicted")
	}
}

// Populated reports whether a snapshot is currently cached.
func (c *Cache) Populated() bool {
	return c.current.Load() != nil
}
