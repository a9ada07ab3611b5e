// Package portfolio values investment holdings against live or mock quotes.
package portfolio

// Holding is one equity or fund position. Sector is set for equities and
// Category for funds; PurchaseDate is informational and never enters the
// valuation math.
type Holding struct {
	Ticker        string  `json:"ticker"`
	Name          string  `json:"name"`
	Shares        float64 `json:"shares"`
	PurchasePrice float64 `json:"purchase_price"`
	PurchaseDate  string  `json:"purchase_date,omitempty"`
	Sector        string  `json:"sector,omitempty"`
	Category      string  `json:"category,omitempty"`
}

// Holdings is the full set of positions plus cash balances.
type Holdings struct {
	Stocks []Holding          `json:"stocks"`
	Funds  []Holding          `json:"funds"`
	Cash   map[string]float64 `json:"cash"`
}

// DefaultHoldings returns the demo account's positions.
func DefaultHoldings() Holdings {
	return Holdings{
		Stocks: []Holding{
			{Ticker: "AAPL", Name: "Apple Inc.", Shares: 50, PurchasePrice: 150.25, PurchaseDate: "2023-08-15", Sector: "Technology"},
			{Ticker: "MSFT", Name: "Microsoft Corporation", Shares: 30, PurchasePrice: 320.50, PurchaseDate: "2023-09-22", Sector: "Technology"},
			{Ticker: "GOOGL", Name: "Alphabet Inc.", Shares: 25, PurchasePrice: 125.75, PurchaseDate: "2024-01-10", Sector: "Technology"},
			{Ticker: "JNJ", Name: "Johnson & Johnson", Shares: 40, PurchasePrice: 155.00, PurchaseDate: "2023-11-05", Sector: "Healthcare"},
			{Ticker: "V", Name: "Visa Inc.", Shares: 20, PurchasePrice: 245.30, PurchaseDate: "2024-03-18", Sector: "Financial Services"},
			{Ticker: "TSLA", Name: "Tesla Inc.", Shares: 15, PurchasePrice: 245.60, PurchaseDate: "2023-10-12", Sector: "Automotive"},
		},
		Funds: []Holding{
			{Ticker: "VTSAX", Name: "Vanguard Total Stock Market Index", Shares: 180, PurchasePrice: 110.50, PurchaseDate: "2023-07-01", Category: "Large Cap Blend"},
			{Ticker: "FXAIX", Name: "Fidelity 500 Index Fund", Shares: 120, PurchasePrice: 165.25, PurchaseDate: "2023-08-15", Category: "Large Cap Blend"},
			{Ticker: "VEIEX", Name: "Vanguard Emerging Markets Stock Index", Shares: 95, PurchasePrice: 32.80, PurchaseDate: "2024-02-20", Category: "Diversified Emerging Markets"},
		},
		Cash: map[string]float64{
			"savings":        25000,
			"checking":       5500,
			"emergency_fund": 30000,
		},
	}
}

// TotalCash sums the cash balances.
func (h Holdings) TotalCash() float64 {
	var total float64
	for _, v := range h.Cash {
		total += v
	}
	return total
}
