package portfolio

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finrelay/financeai/market"
)

// staticQuotes serves fixed prices and fails for tickers it doesn't know.
type staticQuotes struct {
	prices map[string]float64
}

func (s staticQuotes) Quote(_ context.Context, ticker string) (*market.Quote, error) {
	price, ok := s.prices[ticker]
	if !ok {
		return nil, fmt.Errorf("no data for %s", ticker)
	}
	return &market.Quote{Ticker: ticker, Price: price}, nil
}

func TestValuateGains(t *testing.T) {
	holdings := Holdings{
		Stocks: []Holding{{Ticker: "AAPL", Shares: 10, PurchasePrice: 100}},
		Cash:   map[string]float64{"checking": 500},
	}
	quotes := staticQuotes{prices: map[string]float64{"AAPL": 150}}

	v := Valuate(context.Background(), holdings, quotes)

	require.Len(t, v.Stocks, 1)
	p := v.Stocks[0]
	assert.True(t, p.Priced)
	assert.Equal(t, 1000.0, p.CostBasis)
	assert.Equal(t, 1500.0, p.CurrentValue)
	assert.Equal(t, 500.0, p.GainLoss)
	assert.Equal(t, 50.0, p.GainLossPct)

	assert.Equal(t, 2000.0, v.GrandTotal)
	assert.Equal(t, 75.0, v.StocksTotal.AllocationPct)
	assert.Equal(t, 25.0, v.Cash.AllocationPct)
}

func TestValuateLookupFailureFallsBackToCost(t *testing.T) {
	holdings := Holdings{
		Stocks: []Holding{
			{Ticker: "AAPL", Shares: 10, PurchasePrice: 100},
			{Ticker: "GONE", Shares: 5, PurchasePrice: 40},
		},
	}
	quotes := staticQuotes{prices: map[string]float64{"AAPL": 150}}

	v := Valuate(context.Background(), holdings, quotes)
	require.Len(t, v.Stocks, 2)

	priced := v.Stocks[0]
	assert.Equal(t, "AAPL", priced.Ticker)
	assert.True(t, priced.Priced)
	assert.Equal(t, 500.0, priced.GainLoss, "other tickers are unaffected by the failure")

	failed := v.Stocks[1]
	assert.Equal(t, "GONE", failed.Ticker)
	assert.False(t, failed.Priced)
	assert.Equal(t, 200.0, failed.CurrentValue, "failed lookup values the holding at cost")
	assert.Equal(t, 0.0, failed.GainLoss)
	assert.Equal(t, 0.0, failed.GainLossPct)
}

func TestValuateZeroCostBasis(t *testing.T) {
	holdings := Holdings{
		Stocks: []Holding{{Ticker: "GIFT", Shares: 10, PurchasePrice: 0}},
	}
	quotes := staticQuotes{prices: map[string]float64{"GIFT": 20}}

	v := Valuate(context.Background(), holdings, quotes)
	require.Len(t, v.Stocks, 1)

	p := v.Stocks[0]
	assert.Equal(t, 0.0, p.CostBasis)
	assert.Equal(t, 200.0, p.CurrentValue)
	assert.Equal(t, 200.0, p.GainLoss)
	assert.Equal(t, 0.0, p.GainLossPct, "zero cost basis pins the percentage to zero")
}

func TestValuateEmptyPortfolio(t *testing.T) {
	v := Valuate(context.Background(), Holdings{}, staticQuotes{})

	assert.Empty(t, v.Stocks)
	assert.Empty(t, v.Funds)
	assert.Equal(t, 0.0, v.GrandTotal)
	assert.Equal(t, 0.0, v.StocksTotal.AllocationPct)
	assert.Equal(t, 0.0, v.FundsTotal.AllocationPct)
	assert.Equal(t, 0.0, v.Cash.AllocationPct)
}

func TestValuateDefaultHoldingsWithMock(t *testing.T) {
	holdings := DefaultHoldings()
	v := Valuate(context.Background(), holdings, market.NewMockQuotes(1))

	require.Len(t, v.Stocks, 6)
	require.Len(t, v.Funds, 3)
	assert.Equal(t, 60500.0, v.Cash.CurrentValue)
	assert.Positive(t, v.GrandTotal)

	total := v.StocksTotal.AllocationPct + v.FundsTotal.AllocationPct + v.Cash.AllocationPct
	assert.InDelta(t, 100.0, total, 0.1)
}

func TestDefaultHoldingsRecords(t *testing.T) {
	holdings := DefaultHoldings()

	for _, h := range holdings.Stocks {
		assert.NotEmpty(t, h.Name, h.Ticker)
		assert.NotEmpty(t, h.PurchaseDate, h.Ticker)
		assert.NotEmpty(t, h.Sector, h.Ticker)
		assert.Empty(t, h.Category, h.Ticker)
	}
	for _, h := range holdings.Funds {
		assert.NotEmpty(t, h.Name, h.Ticker)
		assert.NotEmpty(t, h.PurchaseDate, h.Ticker)
		assert.NotEmpty(t, h.Category, h.Ticker)
		assert.Empty(t, h.Sector, h.Ticker)
	}

	aapl := holdings.Stocks[0]
	assert.Equal(t, "2023-08-15", aapl.PurchaseDate)
	assert.Equal(t, "Technology", aapl.Sector)
	assert.Equal(t, "Large Cap Blend", holdings.Funds[0].Category)
}
