package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/finrelay/financeai/core"
	"github.com/finrelay/financeai/portfolio"
	"github.com/finrelay/financeai/tools"
)

// PortfolioTool analyzes the user's holdings against current prices.
func (a *Advisor) PortfolioTool() core.Tool {
	return tools.New("analyze_portfolio").
		Description("Analyze the user's investment portfolio including stocks and mutual funds. Returns current values, gains/losses, and allocation percentages.").
		Schema(tools.ObjectSchema(map[string]interface{}{
			"include_details": tools.BooleanProperty("Whether to include a detailed breakdown of each holding (default true)"),
		})).
		HandlerFunc(func(ctx context.Context, input json.RawMessage) (interface{}, error) {
			params := struct {
				IncludeDetails *bool `json:"include_details"`
			}{}
			if len(input) > 0 {
				if err := json.Unmarshal(input, &params); err != nil {
					return nil, fmt.Errorf("invalid portfolio request: %w", err)
				}
			}
			includeDetails := params.IncludeDetails == nil || *params.IncludeDetails

			v := portfolio.Valuate(ctx, a.holdings, a.quotes)
			return a.renderPortfolio(v, includeDetails), nil
		}).
		Build()
}

func (a *Advisor) renderPortfolio(v *portfolio.Valuation, includeDetails bool) string {
	invested := v.StocksTotal.CostBasis + v.FundsTotal.CostBasis
	marketValue := v.StocksTotal.CurrentValue + v.FundsTotal.CurrentValue
	gainLoss := marketValue - invested
	gainLossPct := 0.0
	if invested > 0 {
		gainLossPct = gainLoss / invested * 100
	}

	var b strings.Builder
	fmt.Fprintf(&b, "PORTFOLIO ANALYSIS (as of %s):\n\n", a.now().Format("2006-01-02"))
	b.WriteString("OVERALL SUMMARY:\n")
	fmt.Fprintf(&b, "- Total Portfolio Value: %s\n", money(v.GrandTotal))
	fmt.Fprintf(&b, "- Total Invested: %s\n", money(invested))
	fmt.Fprintf(&b, "- Total Cash: %s\n", money(v.Cash.CurrentValue))
	fmt.Fprintf(&b, "- Unrealized Gain/Loss: %s (%s)\n\n", money(gainLoss), signedPct(gainLossPct))

	b.WriteString("ALLOCATION:\n")
	fmt.Fprintf(&b, "- Stocks: %s (%.1f%%)\n", money(v.StocksTotal.CurrentValue), v.StocksTotal.AllocationPct)
	fmt.Fprintf(&b, "- Mutual Funds: %s (%.1f%%)\n", money(v.FundsTotal.CurrentValue), v.FundsTotal.AllocationPct)
	fmt.Fprintf(&b, "- Cash: %s (%.1f%%)\n", money(v.Cash.CurrentValue), v.Cash.AllocationPct)

	if includeDetails {
		b.WriteString("\n--- STOCK HOLDINGS ---\n")
		for _, p := range v.Stocks {
			writePosition(&b, p, "Qty")
		}
		b.WriteString("\n--- MUTUAL FUND HOLDINGS ---\n")
		for _, p := range v.Funds {
			writePosition(&b, p, "Units")
		}
	}
	return b.String()
}

func writePosition(b *strings.Builder, p portfolio.Position, unitLabel string) {
	if p.Name != "" {
		fmt.Fprintf(b, "\n%s - %s\n", p.Ticker, p.Name)
	} else {
		fmt.Fprintf(b, "\n%s\n", p.Ticker)
	}
	fmt.Fprintf(b, "  %s: %g | Total Value: %s\n", unitLabel, p.Shares, money(p.CurrentValue))
	fmt.Fprintf(b, "  Gain/Loss: %s (%s)\n", money(p.GainLoss), signedPct(p.GainLossPct))
	if !p.Priced {
		b.WriteString("  (no live price available, valued at cost)\n")
	}
}
