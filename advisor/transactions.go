package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/finrelay/financeai/core"
	"github.com/finrelay/financeai/ledger"
	"github.com/finrelay/financeai/tools"
)

// TransactionsTool analyzes recent spending patterns.
func (a *Advisor) TransactionsTool() core.Tool {
	return tools.New("analyze_transactions").
		Description("Analyze transaction history to identify spending patterns, top categories, and budget overruns.").
		Schema(tools.ObjectSchema(map[string]interface{}{
			"days":     tools.IntegerProperty("Number of days to analyze (default 30)"),
			"category": tools.StringProperty("Optional category to filter by (e.g., 'Groceries', 'Dining')"),
		})).
		HandlerFunc(func(ctx context.Context, input json.RawMessage) (interface{}, error) {
			params := struct {
				Days     int     `json:"days"`
				Category *string `json:"category"`
			}{}
			if len(input) > 0 {
				if err := json.Unmarshal(input, &params); err != nil {
					return nil, fmt.Errorf("invalid transaction request: %w", err)
				}
			}
			if params.Days == 0 {
				params.Days = 30
			}
			if params.Days < 0 {
				return nil, fmt.Errorf("days must be positive, got %d", params.Days)
			}

			windowed := ledger.FilterByWindow(a.txns, params.Days, a.now())
			filtered := ledger.FilterByCategory(windowed, params.Category)
			summary := ledger.Summarize(filtered)

			return a.renderTransactions(summary, params.Days), nil
		}).
		Build()
}

func (a *Advisor) renderTransactions(summary []ledger.CategorySummary, days int) string {
	totalSpent := ledger.TotalSpent(summary)
	var count int
	for _, s := range summary {
		count += s.Count
	}
	avg := 0.0
	if count > 0 {
		avg = totalSpent / float64(count)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "TRANSACTION ANALYSIS (Last %d days):\n\n", days)
	b.WriteString("SPENDING SUMMARY:\n")
	fmt.Fprintf(&b, "- Total Spent: %s\n", money(totalSpent))
	fmt.Fprintf(&b, "- Number of Transactions: %d\n", count)
	fmt.Fprintf(&b, "- Average Transaction: %s\n\n", money(avg))

	b.WriteString("TOP SPENDING CATEGORIES:\n")
	top := summary
	if len(top) > 5 {
		top = top[:5]
	}
	for _, s := range top {
		fmt.Fprintf(&b, "- %s: %s (%d transactions, avg %s)\n", s.Category, money(s.TotalSpent), s.Count, money(s.AvgTransaction))
	}

	b.WriteString("\nINSIGHTS:\n")
	variances, err := ledger.EvaluateBudget(summary, a.profile.Expenses.Categories, days)
	if err == nil {
		for _, v := range variances {
			if v.Flagged {
				fmt.Fprintf(&b, "⚠️ %s spending is tracking %d%% over budget\n", v.Category, v.PctOverBudget)
			}
		}
	}

	if count > 0 {
		fmt.Fprintf(&b, "\n📊 Average daily spending: %s\n", money(totalSpent/float64(days)))
	}
	return b.String()
}
