package advisor

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finrelay/financeai/core"
	"github.com/finrelay/financeai/ledger"
	"github.com/finrelay/financeai/market"
	"github.com/finrelay/financeai/portfolio"
	"github.com/finrelay/financeai/profile"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testAdvisor(txns []ledger.Transaction) *Advisor {
	return New(Config{
		Profile:  profile.Default(),
		Holdings: portfolio.DefaultHoldings(),
		Ledger:   txns,
		Quotes:   market.NewMockQuotes(1),
		Now:      func() time.Time { return testNow },
	})
}

func run(t *testing.T, tool core.Tool, input string) string {
	t.Helper()
	result, err := tool.Execute(context.Background(), &core.ToolParams{Input: json.RawMessage(input)})
	require.NoError(t, err)
	require.True(t, result.Success, "tool reported failure: %s", result.Error)
	return result.ResultContent()
}

func TestToolsetNames(t *testing.T) {
	a := testAdvisor(nil)
	var names []string
	for _, tool := range a.Toolset() {
		names = append(names, tool.Name())
	}
	assert.Equal(t, []string{
		"analyze_portfolio",
		"analyze_transactions",
		"fetch_market_data",
		"generate_insights",
		"check_goal_alignment",
	}, names)
}

func TestPortfolioTool(t *testing.T) {
	a := testAdvisor(nil)

	out := run(t, a.PortfolioTool(), `{}`)
	assert.Contains(t, out, "PORTFOLIO ANALYSIS (as of 2025-06-15)")
	assert.Contains(t, out, "Total Cash: $60,500.00")
	assert.Contains(t, out, "--- STOCK HOLDINGS ---")
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "VTSAX")
}

func TestPortfolioToolWithoutDetails(t *testing.T) {
	a := testAdvisor(nil)

	out := run(t, a.PortfolioTool(), `{"include_details": false}`)
	assert.Contains(t, out, "OVERALL SUMMARY")
	assert.NotContains(t, out, "--- STOCK HOLDINGS ---")
}

func TestTransactionsTool(t *testing.T) {
	txns := []ledger.Transaction{
		{Date: testNow.AddDate(0, 0, -1), Category: "Dining", Amount: -50, Kind: ledger.KindDebit},
		{Date: testNow.AddDate(0, 0, -2), Category: "Dining", Amount: -30, Kind: ledger.KindDebit},
		{Date: testNow.AddDate(0, 0, -3), Category: "Groceries", Amount: -120, Kind: ledger.KindDebit},
		{Date: testNow.AddDate(0, 0, -40), Category: "Shopping", Amount: -500, Kind: ledger.KindDebit},
	}
	a := testAdvisor(txns)

	out := run(t, a.TransactionsTool(), `{"days": 30}`)
	assert.Contains(t, out, "TRANSACTION ANALYSIS (Last 30 days)")
	assert.Contains(t, out, "Total Spent: $200.00")
	assert.Contains(t, out, "Number of Transactions: 3")
	assert.Contains(t, out, "- Groceries: $120.00 (1 transactions, avg $120.00)")
	assert.NotContains(t, out, "Shopping", "rows outside the window are excluded")
}

func TestTransactionsToolFlagsOverspend(t *testing.T) {
	// 400 of dining in 30 days against a 300 budget projects 33% over.
	txns := []ledger.Transaction{
		{Date: testNow.AddDate(0, 0, -5), Category: "Dining", Amount: -400, Kind: ledger.KindDebit},
	}
	a := testAdvisor(txns)

	out := run(t, a.TransactionsTool(), `{"days": 30}`)
	assert.Contains(t, out, "⚠️ Dining spending is tracking 33% over budget")
}

func TestTransactionsToolCategoryFilter(t *testing.T) {
	txns := []ledger.Transaction{
		{Date: testNow.AddDate(0, 0, -1), Category: "Dining", Amount: -50, Kind: ledger.KindDebit},
		{Date: testNow.AddDate(0, 0, -2), Category: "Groceries", Amount: -120, Kind: ledger.KindDebit},
	}
	a := testAdvisor(txns)

	out := run(t, a.TransactionsTool(), `{"days": 30, "category": "Dining"}`)
	assert.Contains(t, out, "Total Spent: $50.00")
	assert.NotContains(t, out, "Groceries")
}

func TestMarketDataTool(t *testing.T) {
	a := testAdvisor(nil)

	out := run(t, a.MarketDataTool(), `{"ticker": "aapl", "include_news": true}`)
	assert.Contains(t, out, "MARKET DATA for AAPL")
	assert.Contains(t, out, "Company: Apple Inc.")
	assert.Contains(t, out, "RECENT NEWS:")
}

func TestMarketDataToolUnknownTicker(t *testing.T) {
	a := testAdvisor(nil)

	result, err := a.MarketDataTool().Execute(context.Background(), &core.ToolParams{
		Input: json.RawMessage(`{"ticker": "NOPE"}`),
	})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "NOPE")
}

func TestInsightsTool(t *testing.T) {
	a := testAdvisor(nil)

	out := run(t, a.InsightsTool(), `{}`)
	assert.Contains(t, out, "Risk Tolerance: MODERATE")
	assert.Contains(t, out, "Emergency Fund: $30,000.00 of $50,000.00 (60%")
	assert.Contains(t, out, "House Down Payment")
}

func TestGoalAlignmentTool(t *testing.T) {
	a := testAdvisor(nil)

	out := run(t, a.GoalAlignmentTool(), `{"proposed_action": "Buy crypto options for a quick win"}`)
	assert.Contains(t, out, "higher risk than your typical MODERATE risk profile")
	assert.Contains(t, out, "short-term strategy")

	out = run(t, a.GoalAlignmentTool(), `{"proposed_action": "Increase my emergency fund savings"}`)
	assert.Contains(t, out, "✅ Aligns well with your emergency fund goal.")
}

func TestMoneyFormatting(t *testing.T) {
	assert.Equal(t, "$0.00", money(0))
	assert.Equal(t, "$1,234.50", money(1234.5))
	assert.Equal(t, "$2,790,000,000,000.00", money(2.79e12))
	assert.Equal(t, "-$45.25", money(-45.25))
}
