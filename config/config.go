// Package config loads runtime configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full runtime configuration.
type Config struct {
	// Exactly one provider key is needed; selection prefers Google, then
	// OpenAI, then Anthropic.
	GoogleAPIKey    string
	OpenAIAPIKey    string
	AnthropicAPIKey string

	// ModelName overrides the selected provider's default model.
	ModelName string

	Port string

	// LedgerSeed seeds the mock transaction generator.
	LedgerSeed int64

	// ChatDBPath is the SQLite file for persisted conversations. Empty
	// keeps history in memory only.
	ChatDBPath string

	// StaticDir serves the chat UI when set.
	StaticDir string

	// QuoteAPIURL points the HTTP quote provider somewhere else, mainly
	// for tests. Empty uses live quotes with mock fallback.
	QuoteAPIURL string

	// QuoteCacheTTL bounds how long quotes are reused.
	QuoteCacheTTL time.Duration

	// SessionMaxIdle is how long a chat session survives untouched.
	SessionMaxIdle time.Duration
}

// Load reads configuration from .env (if present) and the environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		GoogleAPIKey:    os.Getenv("GOOGLE_API_KEY"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		ModelName:       os.Getenv("MODEL_NAME"),
		Port:            envOr("PORT", "8000"),
		LedgerSeed:      envInt64("LEDGER_SEED", 42),
		ChatDBPath:      envOr("CHAT_DB_PATH", "chat_history.db"),
		StaticDir:       envOr("STATIC_DIR", "public"),
		QuoteAPIURL:     os.Getenv("QUOTE_API_URL"),
		QuoteCacheTTL:   envDuration("QUOTE_CACHE_TTL", time.Minute),
		SessionMaxIdle:  envDuration("SESSION_MAX_IDLE", 30*time.Minute),
	}
}

// HasProviderKey reports whether any LLM provider is configured.
func (c Config) HasProviderKey() bool {
	return c.GoogleAPIKey != "" || c.OpenAIAPIKey != "" || c.AnthropicAPIKey != ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
