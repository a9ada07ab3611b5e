package portfolio

import (
	"context"
	"log"
	"math"
	"sync"

	"github.com/finrelay/financeai/market"
)

// Position is one valued holding.
type Position struct {
	Ticker       string  `json:"ticker"`
	Name         string  `json:"name"`
	Shares       float64 `json:"shares"`
	CostBasis    float64 `json:"cost_basis"`
	CurrentValue float64 `json:"current_value"`
	GainLoss     float64 `json:"gain_loss"`
	GainLossPct  float64 `json:"gain_loss_pct"`
	// Priced is false when the quote lookup failed and the position was
	// valued at its purchase price instead.
	Priced bool `json:"priced"`
}

// Bucket totals one asset class.
type Bucket struct {
	CurrentValue  float64 `json:"current_value"`
	CostBasis     float64 `json:"cost_basis"`
	AllocationPct float64 `json:"allocation_pct"`
}

// Valuation is the full portfolio report.
type Valuation struct {
	Stocks      []Position `json:"stocks"`
	Funds       []Position `json:"funds"`
	StocksTotal Bucket     `json:"stocks_total"`
	FundsTotal  Bucket     `json:"funds_total"`
	Cash        Bucket     `json:"cash_total"`
	GrandTotal  float64    `json:"grand_total"`
}

// Valuate prices every holding concurrently and aggregates totals. A failed
// quote lookup degrades that one position to its cost basis; it never fails
// the valuation.
func Valuate(ctx context.Context, holdings Holdings, quotes market.Provider) *Valuation {
	v := &Valuation{
		Stocks: valuePositions(ctx, holdings.Stocks, quotes),
		Funds:  valuePositions(ctx, holdings.Funds, quotes),
	}

	for _, p := range v.Stocks {
		v.StocksTotal.CurrentValue += p.CurrentValue
		v.StocksTotal.CostBasis += p.CostBasis
	}
	for _, p := range v.Funds {
		v.FundsTotal.CurrentValue += p.CurrentValue
		v.FundsTotal.CostBasis += p.CostBasis
	}
	v.Cash.CurrentValue = holdings.TotalCash()
	v.Cash.CostBasis = v.Cash.CurrentValue

	v.GrandTotal = v.StocksTotal.CurrentValue + v.FundsTotal.CurrentValue + v.Cash.CurrentValue
	if v.GrandTotal > 0 {
		v.StocksTotal.AllocationPct = round2(v.StocksTotal.CurrentValue / v.GrandTotal * 100)
		v.FundsTotal.AllocationPct = round2(v.FundsTotal.CurrentValue / v.GrandTotal * 100)
		v.Cash.AllocationPct = round2(v.Cash.CurrentValue / v.GrandTotal * 100)
	}
	return v
}

// valuePositions prices the given holdings with one lookup per ticker, run
// concurrently. Each goroutine writes only its own index.
func valuePositions(ctx context.Context, holdings []Holding, quotes market.Provider) []Position {
	positions := make([]Position, len(holdings))

	var wg sync.WaitGroup
	for i, h := range holdings {
		wg.Add(1)
		go func(i int, h Holding) {
			defer wg.Done()
			positions[i] = valueOne(ctx, h, quotes)
		}(i, h)
	}
	wg.Wait()

	return positions
}

func valueOne(ctx context.Context, h Holding, quotes market.Provider) Position {
	p := Position{
		Ticker:    h.Ticker,
		Name:      h.Name,
		Shares:    h.Shares,
		CostBasis: round2(h.Shares * h.PurchasePrice),
	}

	price := h.PurchasePrice
	if quotes != nil {
		q, err := quotes.Quote(ctx, h.Ticker)
		if err == nil && q.Price > 0 {
			price = q.Price
			p.Priced = true
		} else if err != nil {
			log.Printf("⚠️ price lookup failed for %s: %v, valuing at cost", h.Ticker, err)
		}
	}

	p.CurrentValue = round2(h.Shares * price)
	p.GainLoss = round2(p.CurrentValue - p.CostBasis)
	if p.CostBasis > 0 {
		p.GainLossPct = round2(p.GainLoss / p.CostBasis * 100)
	}
	return p
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
