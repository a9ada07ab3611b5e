// Package server exposes the financial assistant over HTTP and WebSocket.
package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/finrelay/financeai/core"
	"github.com/finrelay/financeai/engine"
	"github.com/finrelay/financeai/llm"
	"github.com/finrelay/financeai/store"
)

// Config configures the server.
type Config struct {
	// Provider is the LLM backend the engine talks to.
	Provider llm.Provider

	// SystemPrompt is the standing instruction set for the agent.
	SystemPrompt string

	// Model overrides the provider's default model.
	Model string

	// MaxTokens is the per-completion output token limit.
	MaxTokens int64

	// MaxTurns bounds model round trips per chat message.
	MaxTurns int

	// Deadline bounds wall-clock time per chat message.
	Deadline time.Duration

	// Sessions holds live chat state. Defaults to an in-memory store.
	Sessions *store.MemorySessions

	// Conversations persists transcripts. Defaults to in-memory.
	Conversations store.Conversations

	// StaticDir, when set, is served at the root path.
	StaticDir string

	// AuthFunc validates requests and returns a user ID. If nil, a
	// default user ID is used.
	AuthFunc func(r *http.Request) (userID string, err error)
}

// Server runs the chat shell.
type Server struct {
	config        Config
	engine        *engine.Engine
	registry      *engine.ToolRegistry
	sessions      *store.MemorySessions
	conversations store.Conversations
	upgrader      websocket.Upgrader
}

// New creates a server with the given configuration.
func New(cfg Config) *Server {
	registry := engine.NewToolRegistry()

	sessions := cfg.Sessions
	if sessions == nil {
		sessions = store.NewMemorySessions(store.SessionConfig{})
	}
	conversations := cfg.Conversations
	if conversations == nil {
		conversations = store.NewMemoryConversations()
	}

	return &Server{
		config:        cfg,
		engine:        engine.New(cfg.Provider, registry),
		registry:      registry,
		sessions:      sessions,
		conversations: conversations,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins in development
			},
		},
	}
}

// AddTool registers a tool with the server.
func (s *Server) AddTool(tool core.Tool) {
	s.registry.Register(tool)
}

// AddTools registers multiple tools with the server.
func (s *Server) AddTools(tools ...core.Tool) {
	s.registry.RegisterAll(tools...)
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", s.withCORS(s.handleChat))
	mux.HandleFunc("/api/reset", s.withCORS(s.handleReset))
	mux.HandleFunc("/api/health", s.withCORS(s.handleHealth))
	mux.HandleFunc("/ws", s.handleWebSocket)
	if s.config.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.config.StaticDir)))
	}
	return mux
}

// Run starts the server on the given address.
func (s *Server) Run(addr string) error {
	log.Printf("Starting FinanceAI server on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// chat runs one user message through the engine and updates session state.
func (s *Server) chat(ctx context.Context, sess *store.Session, content string, stream func(chunk string, done bool)) (*engine.Output, error) {
	agentCtx := core.NewContext(sess.UserID, sess.ID, sess.ID)

	// sess is a snapshot, so its history is safe to hand to the engine
	// while other requests on the same session append concurrently.
	output, err := s.engine.Run(ctx, &engine.Input{
		UserMessage:    content,
		Context:        agentCtx,
		History:        sess.History,
		SystemPrompt:   s.config.SystemPrompt,
		Model:          s.config.Model,
		MaxTokens:      s.config.MaxTokens,
		MaxTurns:       s.config.MaxTurns,
		Deadline:       s.config.Deadline,
		StreamCallback: stream,
	})
	if err != nil {
		return nil, err
	}

	s.sessions.Append(sess.ID, core.NewUserMessage(content), core.NewAssistantMessage(output.Text))
	if err := s.conversations.Ensure(ctx, sess.ID, sess.UserID); err != nil {
		log.Printf("Failed to ensure conversation: %v", err)
	}
	s.persist(ctx, sess.ID, "user", content, nil)
	s.persist(ctx, sess.ID, "assistant", output.Text, &output.TokensUsed)

	return output, nil
}

// persist writes a message to the conversation store, creating the
// conversation on first use. Persistence failures are logged, not fatal.
func (s *Server) persist(ctx context.Context, sessionID, role, content string, usage *core.TokenUsage) {
	msg := &store.AppendMessage{
		ConversationID: sessionID,
		Role:           role,
		Content:        content,
	}
	if usage != nil {
		msg.TokensIn = usage.InputTokens
		msg.TokensOut = usage.OutputTokens
	}
	if err := s.conversations.Append(ctx, msg); err != nil {
		log.Printf("Failed to persist message: %v", err)
	}
}

func (s *Server) userID(r *http.Request) (string, error) {
	if s.config.AuthFunc != nil {
		return s.config.AuthFunc(r)
	}
	return "default-user", nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
