package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvNoKeys(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	_, err := FromEnv(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no API key found")
}

func TestFromEnvPrefersOpenAIOverAnthropic(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")

	p, err := FromEnv(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())
}

func TestFromEnvAnthropicFallback(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")

	p, err := FromEnv(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "anthropic", p.Name())
}

func TestSchemaHelpers(t *testing.T) {
	schema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"ticker": map[string]interface{}{"type": "string"},
		},
		"required": []string{"ticker"},
	}

	props := schemaProperties(schema)
	assert.Contains(t, props, "ticker")
	assert.Equal(t, []string{"ticker"}, schemaRequired(schema))

	// JSON round-tripped schemas carry []interface{} instead.
	loose := map[string]interface{}{
		"required": []interface{}{"a", "b"},
	}
	assert.Equal(t, []string{"a", "b"}, schemaRequired(loose))

	assert.Empty(t, schemaProperties(map[string]interface{}{}))
	assert.Empty(t, schemaRequired(map[string]interface{}{}))
}

func TestGeminiSchemaConversion(t *testing.T) {
	schema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"ticker": map[string]interface{}{"type": "string", "description": "Ticker symbol"},
			"days":   map[string]interface{}{"type": "integer"},
			"level":  map[string]interface{}{"type": "string", "enum": []interface{}{"low", "high"}},
		},
		"required": []string{"ticker"},
	}

	out := toGeminiSchema(schema)
	require.NotNil(t, out)
	assert.Equal(t, []string{"ticker"}, out.Required)
	assert.Equal(t, "Ticker symbol", out.Properties["ticker"].Description)
	assert.Equal(t, []string{"low", "high"}, out.Properties["level"].Enum)
}
