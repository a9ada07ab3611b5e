// Package market provides quote lookup for tickers, with mock, HTTP,
// cached, and fallback providers.
package market

import "context"

// Quote is a snapshot of market data for one ticker.
type Quote struct {
	Ticker        string   `json:"ticker"`
	Price         float64  `json:"price"`
	PrevClose     float64  `json:"prev_close"`
	Company       string   `json:"company,omitempty"`
	Sector        string   `json:"sector,omitempty"`
	Industry      string   `json:"industry,omitempty"`
	MarketCap     float64  `json:"market_cap,omitempty"`
	PERatio       float64  `json:"pe_ratio,omitempty"`
	DividendYield float64  `json:"dividend_yield,omitempty"`
	// SixMonthRef is the price roughly six months back, used for trend lines.
	SixMonthRef float64  `json:"six_month_ref,omitempty"`
	News        []string `json:"news,omitempty"`
}

// ChangePct is the percent move from the previous close.
func (q *Quote) ChangePct() float64 {
	if q.PrevClose == 0 {
		return 0
	}
	return (q.Price - q.PrevClose) / q.PrevClose * 100
}

// SixMonthChangePct is the percent move over the six-month reference window.
func (q *Quote) SixMonthChangePct() float64 {
	if q.SixMonthRef == 0 {
		return 0
	}
	return (q.Price - q.SixMonthRef) / q.SixMonthRef * 100
}

// Provider looks up a quote for a ticker.
type Provider interface {
	Quote(ctx context.Context, ticker string) (*Quote, error)
}
