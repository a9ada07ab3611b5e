package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/finrelay/financeai/core"
	"github.com/finrelay/financeai/tools"
)

// InsightsTool generates profile-driven recommendations.
func (a *Advisor) InsightsTool() core.Tool {
	return tools.New("generate_insights").
		Description("Generate personalized financial insights and recommendations based on the user's profile, goals, and risk tolerance.").
		Schema(tools.ObjectSchema(map[string]interface{}{})).
		HandlerFunc(func(ctx context.Context, input json.RawMessage) (interface{}, error) {
			return a.renderInsights(), nil
		}).
		Build()
}

func (a *Advisor) renderInsights() string {
	p := a.profile

	var b strings.Builder
	b.WriteString("PERSONALIZED FINANCIAL INSIGHTS:\n\n")
	b.WriteString("USER PROFILE:\n")
	fmt.Fprintf(&b, "- Risk Tolerance: %s\n", strings.ToUpper(p.RiskTolerance))
	fmt.Fprintf(&b, "- Investment Horizon: %s\n", p.InvestmentHorizon)
	fmt.Fprintf(&b, "- Monthly Income: %s\n", money(p.MonthlyIncome))
	fmt.Fprintf(&b, "- Monthly Budget: %s\n\n", money(p.Expenses.MonthlyBudget))

	b.WriteString("FINANCIAL GOALS:\n")
	for i, g := range p.Goals {
		fmt.Fprintf(&b, "%d. %s: %s of %s (%.0f%%, target %s)\n",
			i+1, g.Name, money(g.Current), money(g.Target), g.Progress(), g.Deadline)
	}

	b.WriteString("\nRECOMMENDATIONS:\n")
	b.WriteString("- 💼 Portfolio Diversification: Review sector concentration; heavy technology weighting increases drawdown risk.\n")
	for _, g := range p.Goals {
		if g.Progress() < 50 {
			fmt.Fprintf(&b, "- 🎯 %s is at %.0f%% of target; consider increasing the monthly contribution.\n", g.Name, g.Progress())
		}
	}
	b.WriteString("- 📊 Review your largest expense categories for optimization opportunities.\n")
	b.WriteString("- 💰 Set up automatic transfers to dedicated savings goals.\n")

	return b.String()
}
