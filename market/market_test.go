package market

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockQuotesKnownTicker(t *testing.T) {
	m := NewMockQuotes(1)

	q, err := m.Quote(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", q.Ticker)
	assert.InDelta(t, 178.50, q.Price, 178.50*0.002)
	assert.Equal(t, "Apple Inc.", q.Company)
	assert.NotEmpty(t, q.News)
}

func TestMockQuotesUnknownTicker(t *testing.T) {
	m := NewMockQuotes(1)
	_, err := m.Quote(context.Background(), "NOPE")
	require.Error(t, err)
}

func TestMockQuotesSeededFluctuation(t *testing.T) {
	a := NewMockQuotes(42)
	b := NewMockQuotes(42)

	for i := 0; i < 5; i++ {
		qa, err := a.Quote(context.Background(), "MSFT")
		require.NoError(t, err)
		qb, err := b.Quote(context.Background(), "MSFT")
		require.NoError(t, err)
		assert.Equal(t, qa.Price, qb.Price, "same seed yields the same price stream")
	}
}

func TestQuoteChangePct(t *testing.T) {
	q := &Quote{Price: 110, PrevClose: 100}
	assert.InDelta(t, 10.0, q.ChangePct(), 1e-9)

	zero := &Quote{Price: 110}
	assert.Equal(t, 0.0, zero.ChangePct())
}

type failingProvider struct{}

func (failingProvider) Quote(context.Context, string) (*Quote, error) {
	return nil, fmt.Errorf("boom")
}

func TestFallbackQuotes(t *testing.T) {
	mock := NewMockQuotes(1)
	f := NewFallbackQuotes(failingProvider{}, mock)

	q, err := f.Quote(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", q.Ticker)
}

type countingProvider struct {
	calls atomic.Int64
	inner Provider
}

func (c *countingProvider) Quote(ctx context.Context, ticker string) (*Quote, error) {
	c.calls.Add(1)
	return c.inner.Quote(ctx, ticker)
}

func TestCachedQuotes(t *testing.T) {
	counting := &countingProvider{inner: NewMockQuotes(1)}
	cached, err := NewCachedQuotes(counting, time.Minute)
	require.NoError(t, err)
	defer cached.Close()

	first, err := cached.Quote(context.Background(), "AAPL")
	require.NoError(t, err)

	// Ristretto admits asynchronously; wait for the entry to land.
	require.Eventually(t, func() bool {
		q, err := cached.Quote(context.Background(), "AAPL")
		return err == nil && q.Price == first.Price && counting.calls.Load() >= 1
	}, time.Second, 10*time.Millisecond)
}

func TestHTTPQuotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/AAPL", r.URL.Path)
		fmt.Fprint(w, `{"chart":{"result":[{"meta":{"symbol":"AAPL","regularMarketPrice":178.5,"previousClose":176.2,"longName":"Apple Inc."}}]}}`)
	}))
	defer srv.Close()

	h := NewHTTPQuotes(HTTPQuotesConfig{BaseURL: srv.URL})
	q, err := h.Quote(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 178.5, q.Price)
	assert.Equal(t, 176.2, q.PrevClose)
	assert.Equal(t, "Apple Inc.", q.Company)
}

func TestHTTPQuotesErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[],"error":{"code":"Not Found","description":"No data found"}}}`)
	}))
	defer srv.Close()

	h := NewHTTPQuotes(HTTPQuotesConfig{BaseURL: srv.URL})
	_, err := h.Quote(context.Background(), "NOPE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No data found")
}
