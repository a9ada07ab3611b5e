package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/finrelay/financeai/core"
	"github.com/finrelay/financeai/tools"
)

// GoalAlignmentTool checks a proposed action against the user's goals and
// risk tolerance.
func (a *Advisor) GoalAlignmentTool() core.Tool {
	return tools.New("check_goal_alignment").
		Description("Check whether a proposed financial action aligns with the user's stated financial goals and risk tolerance.").
		Schema(tools.ObjectSchema(map[string]interface{}{
			"proposed_action": tools.StringProperty("Description of the action being considered"),
		}, "proposed_action")).
		HandlerFunc(func(ctx context.Context, input json.RawMessage) (interface{}, error) {
			params := struct {
				ProposedAction string `json:"proposed_action"`
			}{}
			if err := json.Unmarshal(input, &params); err != nil {
				return nil, fmt.Errorf("invalid alignment request: %w", err)
			}
			if params.ProposedAction == "" {
				return nil, fmt.Errorf("proposed_action is required")
			}
			return a.renderAlignment(params.ProposedAction), nil
		}).
		Build()
}

func (a *Advisor) renderAlignment(action string) string {
	p := a.profile

	goalNames := make([]string, 0, 2)
	for i, g := range p.Goals {
		if i >= 2 {
			break
		}
		goalNames = append(goalNames, g.Name)
	}

	var b strings.Builder
	b.WriteString("GOAL ALIGNMENT ANALYSIS:\n\n")
	fmt.Fprintf(&b, "Proposed Action: %s\n\n", action)
	b.WriteString("USER CONTEXT:\n")
	fmt.Fprintf(&b, "- Risk Tolerance: %s\n", p.RiskTolerance)
	fmt.Fprintf(&b, "- Investment Horizon: %s\n", p.InvestmentHorizon)
	fmt.Fprintf(&b, "- Key Goals: %s\n\n", strings.Join(goalNames, ", "))
	b.WriteString("ANALYSIS:\n")

	lower := strings.ToLower(action)

	if containsAny(lower, "crypto", "options", "leverage", "margin") {
		switch p.RiskTolerance {
		case "conservative":
			b.WriteString("⚠️ This action may not align with your CONSERVATIVE risk tolerance.\n")
		case "moderate":
			b.WriteString("⚠️ Exercise caution - this is higher risk than your typical MODERATE risk profile.\n")
		}
	}

	if containsAny(lower, "short-term", "quick") && p.InvestmentHorizon == "long-term" {
		b.WriteString("⚠️ This seems like a short-term strategy, but your investment horizon is LONG-TERM.\n")
	}

	if containsAny(lower, "save", "saving", "emergency fund") {
		b.WriteString("✅ Aligns well with your emergency fund goal.\n")
	}
	if containsAny(lower, "house", "down payment", "property") {
		b.WriteString("✅ Aligns with your house down payment goal.\n")
	}
	if containsAny(lower, "retirement", "401k", "ira", "long-term") {
		b.WriteString("✅ Aligns with your retirement planning goal.\n")
	}

	b.WriteString("\nRECOMMENDATION: Consider how this action helps you progress toward your stated goals while respecting your risk tolerance.\n")
	return b.String()
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
