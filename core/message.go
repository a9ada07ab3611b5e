package core

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in a session's conversation history. Only the final
// text of each turn is kept; intermediate tool traffic stays inside the
// engine's run loop.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// TokenUsage tracks model token consumption for a run.
type TokenUsage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
}

// TotalTokens returns input plus output tokens.
func (u TokenUsage) TotalTokens() int64 {
	return u.InputTokens + u.OutputTokens
}

// Context carries the identity of a chat turn through the engine and into
// tool handlers.
type Context struct {
	UserID    string
	SessionID string
	RequestID string
}

// NewContext creates a request context for a chat turn.
func NewContext(userID, sessionID, requestID string) *Context {
	return &Context{
		UserID:    userID,
		SessionID: sessionID,
		RequestID: requestID,
	}
}
