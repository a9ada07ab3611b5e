package market

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

// CachedQuotes wraps a provider with a short-lived in-process quote cache so
// repeated lookups within a chat turn hit the network once per ticker.
type CachedQuotes struct {
	inner Provider
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewCachedQuotes creates a caching decorator around the given provider.
func NewCachedQuotes(inner Provider, ttl time.Duration) (*CachedQuotes, error) {
	if ttl <= 0 {
		ttl = time.Minute
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     1_000,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("quote cache init failed: %w", err)
	}
	return &CachedQuotes{inner: inner, cache: cache, ttl: ttl}, nil
}

// Quote returns the cached quote when fresh, otherwise asks the inner
// provider. Failures are not cached.
func (c *CachedQuotes) Quote(ctx context.Context, ticker string) (*Quote, error) {
	if v, ok := c.cache.Get(ticker); ok {
		if q, ok := v.(*Quote); ok {
			return q, nil
		}
	}

	q, err := c.inner.Quote(ctx, ticker)
	if err != nil {
		return nil, err
	}

	c.cache.SetWithTTL(ticker, q, 1, c.ttl)
	return q, nil
}

// Close releases the cache's background resources.
func (c *CachedQuotes) Close() {
	c.cache.Close()
}
