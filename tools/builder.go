package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/finrelay/financeai/core"
)

// Builder assembles a core.Tool with a fluent API:
//
//	tool := tools.New("fetch_market_data").
//		Description("Fetch current market data for a ticker.").
//		Schema(tools.ObjectSchema(map[string]interface{}{
//			"ticker": tools.StringProperty("Stock ticker symbol"),
//		}, "ticker")).
//		HandlerFunc(fetchMarketData).
//		Build()
type Builder struct {
	name        string
	description string
	schema      map[string]interface{}
	handler     func(ctx context.Context, params *core.ToolParams) (*core.ToolResult, error)
}

// New starts building a tool with the given name.
func New(name string) *Builder {
	return &Builder{name: name}
}

// Description sets the tool description shown to the model.
func (b *Builder) Description(d string) *Builder {
	b.description = d
	return b
}

// Schema sets the JSON input schema. Use ObjectSchema to construct it.
func (b *Builder) Schema(s map[string]interface{}) *Builder {
	b.schema = s
	return b
}

// Handler sets a handler that works with the full tool params and result.
func (b *Builder) Handler(fn func(ctx context.Context, params *core.ToolParams) (*core.ToolResult, error)) *Builder {
	b.handler = fn
	return b
}

// HandlerFunc sets a simplified handler that receives the raw JSON input and
// returns any value. The value is wrapped in a successful ToolResult; a
// returned error becomes a failed result.
func (b *Builder) HandlerFunc(fn func(ctx context.Context, input json.RawMessage) (interface{}, error)) *Builder {
	b.handler = func(ctx context.Context, params *core.ToolParams) (*core.ToolResult, error) {
		data, err := fn(ctx, params.Input)
		if err != nil {
			return &core.ToolResult{Success: false, Error: err.Error()}, nil
		}
		return &core.ToolResult{Success: true, Data: data}, nil
	}
	return b
}

// Build finalizes the tool. It panics if the name or handler is missing,
// since both are programmer errors caught at startup.
func (b *Builder) Build() core.Tool {
	if b.name == "" {
		panic("tools: Build called without a name")
	}
	if b.handler == nil {
		panic(fmt.Sprintf("tools: tool %q has no handler", b.name))
	}
	schema := b.schema
	if schema == nil {
		schema = ObjectSchema(map[string]interface{}{})
	}
	return &builtTool{
		name:        b.name,
		description: b.description,
		schema:      schema,
		handler:     b.handler,
	}
}

type builtTool struct {
	name        string
	description string
	schema      map[string]interface{}
	handler     func(ctx context.Context, params *core.ToolParams) (*core.ToolResult, error)
}

func (t *builtTool) Name() string                   { return t.name }
func (t *builtTool) Description() string            { return t.description }
func (t *builtTool) Schema() map[string]interface{} { return t.schema }

func (t *builtTool) Execute(ctx context.Context, params *core.ToolParams) (*core.ToolResult, error) {
	return t.handler(ctx, params)
}
