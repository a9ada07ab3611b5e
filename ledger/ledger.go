// Package ledger holds the transaction ledger and the spending analytics
// that run over it.
package ledger

import "time"

// Kind classifies a ledger row.
type Kind string

const (
	KindDebit      Kind = "debit"
	KindCredit     Kind = "credit"
	KindInvestment Kind = "investment"
)

// Canonical category names produced by the generator. The query layer
// matches categories as plain strings so externally loaded ledgers are not
// restricted to this set.
const (
	CategoryGroceries      = "Groceries"
	CategoryDining         = "Dining"
	CategoryEntertainment  = "Entertainment"
	CategoryTransportation = "Transportation"
	CategoryUtilities      = "Utilities"
	CategoryShopping       = "Shopping"
	CategoryHealthcare     = "Healthcare"
	CategoryIncome         = "Income"
	CategoryInvestment     = "Investment"
)

// Transaction is one ledger row. Amount is negative for money leaving the
// account and positive for money coming in.
type Transaction struct {
	Date     time.Time `json:"date"`
	Category string    `json:"category"`
	Merchant string    `json:"merchant"`
	Amount   float64   `json:"amount"`
	Kind     Kind      `json:"type"`
}

// CategorySummary aggregates spending for one category.
type CategorySummary struct {
	Category       string  `json:"category"`
	TotalSpent     float64 `json:"total_spent"`
	Count          int     `json:"num_transactions"`
	AvgTransaction float64 `json:"avg_transaction"`
}
