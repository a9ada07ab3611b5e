// FinanceAI: conversational financial relationship manager.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/finrelay/financeai/advisor"
	"github.com/finrelay/financeai/config"
	"github.com/finrelay/financeai/ledger"
	"github.com/finrelay/financeai/llm"
	"github.com/finrelay/financeai/market"
	"github.com/finrelay/financeai/portfolio"
	"github.com/finrelay/financeai/profile"
	"github.com/finrelay/financeai/server"
	"github.com/finrelay/financeai/store"
)

func main() {
	cfg := config.Load()

	if !cfg.HasProviderKey() {
		log.Fatal("❌ An LLM API key is required (GOOGLE_API_KEY, OPENAI_API_KEY, or ANTHROPIC_API_KEY)")
	}

	provider, err := llm.FromEnv(context.Background())
	if err != nil {
		log.Fatalf("❌ Failed to configure LLM provider: %v", err)
	}
	log.Printf("✅ LLM provider configured: %s", provider.Name())

	// Static demo data: profile, holdings, 90 days of transactions.
	userProfile := profile.Default()
	holdings := portfolio.DefaultHoldings()
	transactions := ledger.Generate(cfg.LedgerSeed, time.Now())
	log.Printf("✅ Mock ledger generated (%d transactions, seed %d)", len(transactions), cfg.LedgerSeed)

	// Quotes: live HTTP with mock fallback, cached per ticker.
	var quotes market.Provider = market.NewFallbackQuotes(
		market.NewHTTPQuotes(market.HTTPQuotesConfig{BaseURL: cfg.QuoteAPIURL}),
		market.NewMockQuotes(cfg.LedgerSeed),
	)
	cached, err := market.NewCachedQuotes(quotes, cfg.QuoteCacheTTL)
	if err != nil {
		log.Printf("⚠️ Quote cache unavailable: %v (continuing without cache)", err)
	} else {
		defer cached.Close()
		quotes = cached
	}
	log.Println("✅ Market data provider configured")

	// Conversation persistence.
	var conversations store.Conversations
	if cfg.ChatDBPath != "" {
		sqlite, err := store.NewSQLiteConversations(cfg.ChatDBPath)
		if err != nil {
			log.Printf("⚠️ Failed to initialize SQLite chat store: %v (using in-memory)", err)
		} else {
			log.Printf("✅ SQLite chat history store initialized (%s)", cfg.ChatDBPath)
			defer sqlite.Close()
			conversations = sqlite
		}
	}

	sessions := store.NewMemorySessions(store.SessionConfig{MaxIdle: cfg.SessionMaxIdle})

	staticDir := cfg.StaticDir
	if staticDir != "" {
		if _, err := os.Stat(staticDir); err != nil {
			staticDir = ""
		}
	}

	srv := server.New(server.Config{
		Provider:      provider,
		SystemPrompt:  advisor.SystemPrompt + "\n\n" + advisor.UserContext(userProfile),
		Model:         cfg.ModelName,
		MaxTokens:     4096,
		Sessions:      sessions,
		Conversations: conversations,
		StaticDir:     staticDir,
	})

	adv := advisor.New(advisor.Config{
		Profile:  userProfile,
		Holdings: holdings,
		Ledger:   transactions,
		Quotes:   quotes,
	})
	srv.AddTools(adv.Toolset()...)
	log.Println("✅ Added 5 financial advisor tools")

	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
