// Package llm abstracts the hosted model providers the agent can run on.
// The engine speaks this package's neutral chat types; each provider adapter
// translates them to its SDK's wire format.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// StopReason indicates why the model stopped generating.
type StopReason string

const (
	StopEndTurn   StopReason = "end_turn"
	StopToolUse   StopReason = "tool_use"
	StopMaxTokens StopReason = "max_tokens"
)

// ToolDef describes a callable tool to the model.
type ToolDef struct {
	Name        string
	Description string

	// InputSchema is a JSON schema object: {"type":"object","properties":...}.
	InputSchema map[string]interface{}
}

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	ID    string
	Name  string
	Input json.RawMessage
}

// ToolReturn answers a prior ToolCall.
type ToolReturn struct {
	CallID  string
	Name    string
	Content string
	IsError bool
}

// Message is one turn of model-visible conversation. An assistant message
// may carry tool calls; a user message may carry tool returns.
type Message struct {
	Role        Role
	Text        string
	ToolCalls   []ToolCall
	ToolReturns []ToolReturn
}

// Request is a single completion request.
type Request struct {
	Model     string
	System    string
	MaxTokens int64
	Messages  []Message
	Tools     []ToolDef
}

// Usage reports token consumption for one completion.
type Usage struct {
	InputTokens  int64
	OutputTokens int64
}

// Response is the model's reply to a Request.
type Response struct {
	Text       string
	ToolCalls  []ToolCall
	StopReason StopReason
	Usage      Usage
}

// Provider is a hosted chat model with tool-calling support.
type Provider interface {
	// Name returns the provider identifier ("google", "openai", "anthropic").
	Name() string

	// DefaultModel returns the model used when the request leaves Model empty.
	DefaultModel() string

	// Complete performs one model call.
	Complete(ctx context.Context, req *Request) (*Response, error)
}

// FromEnv selects a provider from the available API keys, preferring Google,
// then OpenAI, then Anthropic.
func FromEnv(ctx context.Context) (Provider, error) {
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		return NewGemini(ctx, key)
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return NewOpenAI(key), nil
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return NewAnthropic(key), nil
	}
	return nil, fmt.Errorf("no API key found: set GOOGLE_API_KEY, OPENAI_API_KEY, or ANTHROPIC_API_KEY")
}

// schemaProperties extracts the "properties" map from a JSON schema object.
func schemaProperties(schema map[string]interface{}) map[string]interface{} {
	if props, ok := schema["properties"].(map[string]interface{}); ok {
		return props
	}
	return map[string]interface{}{}
}

// schemaRequired extracts the "required" list from a JSON schema object.
func schemaRequired(schema map[string]interface{}) []string {
	switch req := schema["required"].(type) {
	case []string:
		return req
	case []interface{}:
		names := make([]string, 0, len(req))
		for _, r := range req {
			if s, ok := r.(string); ok {
				names = append(names, s)
			}
		}
		return names
	}
	return nil
}
