// Package advisor implements the financial relationship manager's tools.
package advisor

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/finrelay/financeai/core"
	"github.com/finrelay/financeai/ledger"
	"github.com/finrelay/financeai/market"
	"github.com/finrelay/financeai/portfolio"
	"github.com/finrelay/financeai/profile"
)

// Advisor bundles the static data and collaborators the tools work over.
// The ledger and holdings are immutable after construction.
type Advisor struct {
	profile  profile.Profile
	holdings portfolio.Holdings
	txns     []ledger.Transaction
	quotes   market.Provider
	now      func() time.Time
}

// Config assembles an Advisor.
type Config struct {
	Profile  profile.Profile
	Holdings portfolio.Holdings
	Ledger   []ledger.Transaction
	Quotes   market.Provider

	// Now overrides the clock, mainly for tests.
	Now func() time.Time
}

// New creates an advisor over the given data.
func New(cfg Config) *Advisor {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Advisor{
		profile:  cfg.Profile,
		holdings: cfg.Holdings,
		txns:     cfg.Ledger,
		quotes:   cfg.Quotes,
		now:      now,
	}
}

// Toolset returns the five advisor tools.
func (a *Advisor) Toolset() []core.Tool {
	return []core.Tool{
		a.PortfolioTool(),
		a.TransactionsTool(),
		a.MarketDataTool(),
		a.InsightsTool(),
		a.GoalAlignmentTool(),
	}
}

// money formats a dollar amount with thousands separators, e.g. $12,345.67.
func money(v float64) string {
	neg := v < 0
	v = math.Abs(v)

	whole := int64(v)
	cents := int64(math.Round((v - float64(whole)) * 100))
	if cents == 100 {
		whole++
		cents = 0
	}

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s$%s.%02d", sign, b.String(), cents)
}

// signedPct formats a percentage with an explicit sign, e.g. +12.34%.
func signedPct(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}
