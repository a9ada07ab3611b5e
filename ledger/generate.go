package ledger

import (
	"math"
	"math/rand"
	"time"
)

// template describes one spending category for the mock generator.
type template struct {
	category  string
	merchants []string
	min, max  float64
}

var spendingTemplates = []template{
	{CategoryGroceries, []string{"Whole Foods", "Trader Joe's", "Safeway", "Kroger"}, 45, 180},
	{CategoryDining, []string{"Chipotle", "Local Bistro", "Pizza Palace", "Sushi Bar"}, 12, 85},
	{CategoryEntertainment, []string{"Netflix", "AMC Theaters", "Spotify", "Steam"}, 15, 120},
	{CategoryTransportation, []string{"Shell", "Uber", "Metro Transit", "Chevron"}, 8, 65},
	{CategoryUtilities, []string{"Electric Company", "Water District", "Comcast", "Gas Utility"}, 45, 150},
	{CategoryShopping, []string{"Amazon", "Target", "Best Buy", "Costco"}, 25, 250},
	{CategoryHealthcare, []string{"CVS Pharmacy", "Walgreens", "Dental Care", "Urgent Care"}, 20, 200},
}

// GenerateDays is the span of mock ledger history.
const GenerateDays = 90

// Generate builds a deterministic 90-day mock ledger from the given seed.
// Passing the same seed and reference time always yields the same rows.
func Generate(seed int64, now time.Time) []Transaction {
	rng := rand.New(rand.NewSource(seed))
	var txns []Transaction

	for daysAgo := 0; daysAgo < GenerateDays; daysAgo++ {
		date := now.AddDate(0, 0, -daysAgo)
		perDay := 2 + rng.Intn(4)
		for i := 0; i < perDay; i++ {
			t := spendingTemplates[rng.Intn(len(spendingTemplates))]
			amount := t.min + rng.Float64()*(t.max-t.min)
			txns = append(txns, Transaction{
				Date:     date,
				Category: t.category,
				Merchant: t.merchants[rng.Intn(len(t.merchants))],
				Amount:   -round2(amount),
				Kind:     KindDebit,
			})
		}
	}

	// Monthly salary deposits over the covered window.
	for month := 0; month < 3; month++ {
		txns = append(txns, Transaction{
			Date:     now.AddDate(0, 0, -month*30),
			Category: CategoryIncome,
			Merchant: "Direct Deposit - Salary",
			Amount:   8500,
			Kind:     KindCredit,
		})
	}

	investments := []struct {
		daysAgo  int
		amount   float64
		merchant string
	}{
		{15, -1500, "Brokerage - AAPL Purchase"},
		{45, -2000, "Brokerage - VTSAX Purchase"},
		{60, -1000, "Brokerage - MSFT Purchase"},
	}
	for _, inv := range investments {
		txns = append(txns, Transaction{
			Date:     now.AddDate(0, 0, -inv.daysAgo),
			Category: CategoryInvestment,
			Merchant: inv.merchant,
			Amount:   inv.amount,
			Kind:     KindInvestment,
		})
	}

	return txns
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
