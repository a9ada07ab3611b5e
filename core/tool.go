// Package core defines the primitives shared by the agent engine, the tool
// builder, and the chat server.
package core

import (
	"context"
	"encoding/json"
)

// Tool is a capability the agent can invoke during a chat turn.
type Tool interface {
	// Name returns the tool's unique name.
	Name() string

	// Description returns the natural-language description shown to the model.
	Description() string

	// Schema returns the JSON schema for the tool's input object.
	Schema() map[string]interface{}

	// Execute runs the tool with the given parameters.
	Execute(ctx context.Context, params *ToolParams) (*ToolResult, error)
}

// ToolParams carries the input and request metadata for a tool invocation.
type ToolParams struct {
	// UserID identifies the user on whose behalf the tool runs.
	UserID string

	// SessionID identifies the chat session that triggered the call.
	SessionID string

	// RequestID identifies the model's tool-use block.
	RequestID string

	// Input is the raw JSON input produced by the model.
	Input json.RawMessage
}

// ToolResult is the outcome of a tool invocation.
type ToolResult struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ResultContent renders the result as the string fed back to the model.
func (r *ToolResult) ResultContent() string {
	if !r.Success {
		return r.Error
	}
	switch d := r.Data.(type) {
	case string:
		return d
	default:
		b, err := json.Marshal(r.Data)
		if err != nil {
			return "tool produced an unserializable result"
		}
		return string(b)
	}
}
