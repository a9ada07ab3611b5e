package market

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
)

// MockQuotes provides simulated market data for development and testing.
// Prices fluctuate a little per read; the fluctuation stream is seeded so
// tests can pin it down.
type MockQuotes struct {
	mu     sync.Mutex
	rng    *rand.Rand
	quotes map[string]Quote
}

// NewMockQuotes creates a mock provider seeded for reproducible fluctuation.
func NewMockQuotes(seed int64) *MockQuotes {
	m := &MockQuotes{
		rng:    rand.New(rand.NewSource(seed)),
		quotes: make(map[string]Quote),
	}
	for _, q := range mockUniverse {
		m.quotes[q.Ticker] = q
	}
	return m
}

// Quote returns the mock quote for a ticker. Unknown tickers fail.
func (m *MockQuotes) Quote(_ context.Context, ticker string) (*Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	q, ok := m.quotes[ticker]
	if !ok {
		return nil, fmt.Errorf("unknown ticker: %s", ticker)
	}

	// Small per-read fluctuation around the base price.
	out := q
	out.Price = q.Price * (1 + (m.rng.Float64()-0.5)*0.002)
	return &out, nil
}

// SetPrice overrides a ticker's base price, mainly for tests.
func (m *MockQuotes) SetPrice(ticker string, price float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := m.quotes[ticker]
	q.Ticker = ticker
	q.Price = price
	m.quotes[ticker] = q
}

var mockUniverse = []Quote{
	{
		Ticker: "AAPL", Price: 178.50, PrevClose: 176.20,
		Company: "Apple Inc.", Sector: "Technology", Industry: "Consumer Electronics",
		MarketCap: 2.79e12, PERatio: 29.4, DividendYield: 0.52, SixMonthRef: 165.30,
		News: []string{
			"Apple reports record services revenue in quarterly results",
			"Analysts raise price targets following product launch event",
		},
	},
	{
		Ticker: "MSFT", Price: 378.90, PrevClose: 375.10,
		Company: "Microsoft Corporation", Sector: "Technology", Industry: "Software - Infrastructure",
		MarketCap: 2.81e12, PERatio: 35.2, DividendYield: 0.78, SixMonthRef: 340.80,
		News: []string{
			"Microsoft expands cloud infrastructure investments",
			"Azure growth beats expectations in latest quarter",
		},
	},
	{
		Ticker: "GOOGL", Price: 139.60, PrevClose: 141.20,
		Company: "Alphabet Inc.", Sector: "Communication Services", Industry: "Internet Content & Information",
		MarketCap: 1.76e12, PERatio: 26.8, DividendYield: 0, SixMonthRef: 128.40,
		News: []string{
			"Alphabet announces new AI product integrations",
		},
	},
	{
		Ticker: "JNJ", Price: 158.70, PrevClose: 157.90,
		Company: "Johnson & Johnson", Sector: "Healthcare", Industry: "Drug Manufacturers - General",
		MarketCap: 3.82e11, PERatio: 15.1, DividendYield: 3.02, SixMonthRef: 162.50,
		News: []string{
			"Johnson & Johnson raises full-year guidance",
		},
	},
	{
		Ticker: "V", Price: 252.40, PrevClose: 249.80,
		Company: "Visa Inc.", Sector: "Financial Services", Industry: "Credit Services",
		MarketCap: 5.2e11, PERatio: 30.6, DividendYield: 0.83, SixMonthRef: 235.10,
		News: []string{
			"Visa reports strong cross-border payment volumes",
		},
	},
	{
		Ticker: "TSLA", Price: 238.90, PrevClose: 244.50,
		Company: "Tesla, Inc.", Sector: "Consumer Cyclical", Industry: "Auto Manufacturers",
		MarketCap: 7.6e11, PERatio: 68.3, DividendYield: 0, SixMonthRef: 260.20,
		News: []string{
			"Tesla adjusts vehicle pricing amid demand shifts",
			"Energy storage deployments hit a new record",
		},
	},
	{
		Ticker: "VTSAX", Price: 118.40, PrevClose: 117.90,
		Company: "Vanguard Total Stock Market Index Fund", Sector: "Fund", Industry: "Index Fund",
		SixMonthRef: 109.70,
	},
	{
		Ticker: "FXAIX", Price: 172.10, PrevClose: 171.40,
		Company: "Fidelity 500 Index Fund", Sector: "Fund", Industry: "Index Fund",
		SixMonthRef: 158.90,
	},
	{
		Ticker: "VEIEX", Price: 31.60, PrevClose: 31.80,
		Company: "Vanguard Emerging Markets Stock Index Fund", Sector: "Fund", Industry: "Index Fund",
		SixMonthRef: 33.10,
	},
}
