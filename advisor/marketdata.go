package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/finrelay/financeai/core"
	"github.com/finrelay/financeai/market"
	"github.com/finrelay/financeai/tools"
)

// MarketDataTool fetches a current quote for a ticker.
func (a *Advisor) MarketDataTool() core.Tool {
	return tools.New("fetch_market_data").
		Description("Fetch current market data for a stock or fund including price, trend, and optionally news headlines.").
		Schema(tools.ObjectSchema(map[string]interface{}{
			"ticker":       tools.StringProperty("Stock ticker symbol (e.g., 'AAPL', 'MSFT')"),
			"include_news": tools.BooleanProperty("Whether to include recent news headlines (default false)"),
		}, "ticker")).
		HandlerFunc(func(ctx context.Context, input json.RawMessage) (interface{}, error) {
			params := struct {
				Ticker      string `json:"ticker"`
				IncludeNews bool   `json:"include_news"`
			}{}
			if err := json.Unmarshal(input, &params); err != nil {
				return nil, fmt.Errorf("invalid market data request: %w", err)
			}
			if params.Ticker == "" {
				return nil, fmt.Errorf("ticker is required")
			}
			ticker := strings.ToUpper(strings.TrimSpace(params.Ticker))

			q, err := a.quotes.Quote(ctx, ticker)
			if err != nil {
				return nil, fmt.Errorf("market data unavailable for %s: %w", ticker, err)
			}
			return renderQuote(q, params.IncludeNews), nil
		}).
		Build()
}

func renderQuote(q *market.Quote, includeNews bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "MARKET DATA for %s:\n\n", q.Ticker)
	b.WriteString("CURRENT METRICS:\n")
	fmt.Fprintf(&b, "- Current Price: %s\n", money(q.Price))
	if q.PrevClose > 0 {
		fmt.Fprintf(&b, "- Previous Close: %s\n", money(q.PrevClose))
		fmt.Fprintf(&b, "- Day Change: %s\n", signedPct(q.ChangePct()))
	}
	if q.SixMonthRef > 0 {
		fmt.Fprintf(&b, "- 6-Month Change: %s\n", signedPct(q.SixMonthChangePct()))
	}

	b.WriteString("\nKEY INFO:\n")
	fmt.Fprintf(&b, "- Company: %s\n", orNA(q.Company))
	fmt.Fprintf(&b, "- Sector: %s\n", orNA(q.Sector))
	fmt.Fprintf(&b, "- Industry: %s\n", orNA(q.Industry))
	if q.MarketCap > 0 {
		fmt.Fprintf(&b, "- Market Cap: %s\n", money(q.MarketCap))
	}
	if q.PERatio > 0 {
		fmt.Fprintf(&b, "- P/E Ratio: %.1f\n", q.PERatio)
	}
	if q.DividendYield > 0 {
		fmt.Fprintf(&b, "- Dividend Yield: %.2f%%\n", q.DividendYield)
	}

	if includeNews {
		if len(q.News) > 0 {
			b.WriteString("\nRECENT NEWS:\n")
			for i, headline := range q.News {
				if i >= 3 {
					break
				}
				fmt.Fprintf(&b, "- %s\n", headline)
			}
		} else {
			b.WriteString("\nNews not available.\n")
		}
	}
	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
