package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finrelay/financeai/core"
)

func TestBuilderHandlerFunc(t *testing.T) {
	tool := New("greet").
		Description("Greet someone.").
		Schema(ObjectSchema(map[string]interface{}{
			"name": StringProperty("Who to greet"),
		}, "name")).
		HandlerFunc(func(_ context.Context, input json.RawMessage) (interface{}, error) {
			var params struct {
				Name string `json:"name"`
			}
			if err := json.Unmarshal(input, &params); err != nil {
				return nil, err
			}
			return "hello " + params.Name, nil
		}).
		Build()

	assert.Equal(t, "greet", tool.Name())
	assert.Equal(t, "Greet someone.", tool.Description())

	result, err := tool.Execute(context.Background(), &core.ToolParams{Input: json.RawMessage(`{"name":"alex"}`)})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "hello alex", result.ResultContent())
}

func TestBuilderHandlerFuncError(t *testing.T) {
	tool := New("fail").
		HandlerFunc(func(context.Context, json.RawMessage) (interface{}, error) {
			return nil, fmt.Errorf("nope")
		}).
		Build()

	result, err := tool.Execute(context.Background(), &core.ToolParams{})
	require.NoError(t, err, "handler errors become failed results, not Go errors")
	assert.False(t, result.Success)
	assert.Equal(t, "nope", result.Error)
}

func TestBuilderHandler(t *testing.T) {
	tool := New("raw").
		Handler(func(_ context.Context, params *core.ToolParams) (*core.ToolResult, error) {
			return &core.ToolResult{Success: true, Data: map[string]string{"user": params.UserID}}, nil
		}).
		Build()

	result, err := tool.Execute(context.Background(), &core.ToolParams{UserID: "u1"})
	require.NoError(t, err)
	assert.Contains(t, result.ResultContent(), `"user":"u1"`)
}

func TestBuilderDefaultsSchema(t *testing.T) {
	tool := New("bare").
		HandlerFunc(func(context.Context, json.RawMessage) (interface{}, error) { return "ok", nil }).
		Build()

	schema := tool.Schema()
	assert.Equal(t, "object", schema["type"])
}

func TestBuilderPanicsWithoutHandler(t *testing.T) {
	assert.Panics(t, func() { New("broken").Build() })
	assert.Panics(t, func() {
		(&Builder{}).HandlerFunc(func(context.Context, json.RawMessage) (interface{}, error) { return nil, nil }).Build()
	})
}

func TestObjectSchema(t *testing.T) {
	schema := ObjectSchema(map[string]interface{}{
		"ticker": StringProperty("Ticker symbol"),
		"days":   IntegerProperty("Window in days"),
		"level":  StringEnumProperty("Risk level", "low", "high"),
	}, "ticker")

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, []string{"ticker"}, schema["required"])

	props := schema["properties"].(map[string]interface{})
	ticker := props["ticker"].(map[string]interface{})
	assert.Equal(t, "string", ticker["type"])

	level := props["level"].(map[string]interface{})
	assert.Equal(t, []interface{}{"low", "high"}, level["enum"])
}

func TestObjectSchemaNoRequired(t *testing.T) {
	schema := ObjectSchema(map[string]interface{}{})
	assert.Equal(t, []string{}, schema["required"], "required is always present, even when empty")
}
