package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPQuotes fetches quotes from a Yahoo-compatible chart endpoint.
type HTTPQuotes struct {
	baseURL    string
	httpClient *http.Client
}

// HTTPQuotesConfig configures the HTTP quote provider.
type HTTPQuotesConfig struct {
	// BaseURL is the quote API root (e.g. "https://query1.finance.yahoo.com").
	BaseURL string

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration
}

// NewHTTPQuotes creates an HTTP-backed quote provider.
func NewHTTPQuotes(cfg HTTPQuotesConfig) *HTTPQuotes {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://query1.finance.yahoo.com"
	}
	return &HTTPQuotes{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// chartResponse matches the subset of the chart API payload we read.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				PreviousClose      float64 `json:"previousClose"`
				LongName           string  `json:"longName"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Quote fetches the current quote for a ticker.
func (h *HTTPQuotes) Quote(ctx context.Context, ticker string) (*Quote, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s", h.baseURL, ticker)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "financeai/1.0")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("quote lookup for %s returned HTTP %d", ticker, resp.StatusCode)
	}

	var parsed chartResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode quote response: %w", err)
	}
	if parsed.Chart.Error != nil {
		return nil, fmt.Errorf("quote lookup for %s failed: %s", ticker, parsed.Chart.Error.Description)
	}
	if len(parsed.Chart.Result) == 0 {
		return nil, fmt.Errorf("no quote data for %s", ticker)
	}

	meta := parsed.Chart.Result[0].Meta
	if meta.RegularMarketPrice == 0 {
		return nil, fmt.Errorf("no usable price for %s", ticker)
	}

	return &Quote{
		Ticker:    ticker,
		Price:     meta.RegularMarketPrice,
		PrevClose: meta.PreviousClose,
		Company:   meta.LongName,
	}, nil
}
