package market

import (
	"context"
	"log"
)

// FallbackQuotes tries a primary provider and falls back to a secondary one
// when the primary fails. Used to back the live HTTP provider with mock data
// so the assistant stays usable offline.
type FallbackQuotes struct {
	primary  Provider
	fallback Provider
}

// NewFallbackQuotes creates the fallback decorator.
func NewFallbackQuotes(primary, fallback Provider) *FallbackQuotes {
	return &FallbackQuotes{primary: primary, fallback: fallback}
}

// Quote returns the primary provider's quote, or the fallback's on error.
func (f *FallbackQuotes) Quote(ctx context.Context, ticker string) (*Quote, error) {
	if f.primary != nil {
		q, err := f.primary.Quote(ctx, ticker)
		if err == nil {
			return q, nil
		}
		log.Printf("⚠️ quote fetch failed for %s: %v, using fallback", ticker, err)
	}
	return f.fallback.Quote(ctx, ticker)
}
