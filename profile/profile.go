// Package profile holds the static user profile loaded at startup.
package profile

// Goal is one financial goal the user is working toward.
type Goal struct {
	Name     string  `json:"name"`
	Target   float64 `json:"target_amount"`
	Current  float64 `json:"current_amount"`
	Deadline string  `json:"deadline"`
}

// Progress returns how far along the goal is, as a percentage.
func (g Goal) Progress() float64 {
	if g.Target <= 0 {
		return 0
	}
	return g.Current / g.Target * 100
}

// Expenses captures the monthly budget and its per-category breakdown.
type Expenses struct {
	MonthlyBudget float64            `json:"monthly_budget"`
	Categories    map[string]float64 `json:"categories"`
}

// Profile is the static user configuration. It is read-only after startup.
type Profile struct {
	Name              string   `json:"name"`
	Age               int      `json:"age"`
	Email             string   `json:"email"`
	RiskTolerance     string   `json:"risk_tolerance"`
	InvestmentHorizon string   `json:"investment_horizon"`
	MonthlyIncome     float64  `json:"monthly_income"`
	Expenses          Expenses `json:"expenses"`
	Goals             []Goal   `json:"goals"`
}

// Default returns the demo user profile.
func Default() Profile {
	return Profile{
		Name:              "Alex Thompson",
		Age:               34,
		Email:             "alex.thompson@example.com",
		RiskTolerance:     "moderate",
		InvestmentHorizon: "long-term",
		MonthlyIncome:     8500,
		Expenses: Expenses{
			MonthlyBudget: 5200,
			Categories: map[string]float64{
				"housing":        2000,
				"transportation": 400,
				"groceries":      600,
				"dining":         300,
				"entertainment":  200,
				"utilities":      300,
				"insurance":      400,
				"subscriptions":  150,
				"miscellaneous":  850,
			},
		},
		Goals: []Goal{
			{Name: "Emergency Fund", Target: 50000, Current: 30000, Deadline: "2026-12-31"},
			{Name: "House Down Payment", Target: 120000, Current: 45000, Deadline: "2028-06-30"},
			{Name: "Retirement Savings", Target: 1500000, Current: 185000, Deadline: "2055-01-01"},
			{Name: "Vacation Fund", Target: 8000, Current: 3200, Deadline: "2026-07-01"},
		},
	}
}
