package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finrelay/financeai/llm"
	"github.com/finrelay/financeai/store"
)

// cannedProvider answers every completion with the same text.
type cannedProvider struct {
	reply string
}

func (c *cannedProvider) Name() string         { return "canned" }
func (c *cannedProvider) DefaultModel() string { return "canned-model" }

func (c *cannedProvider) Complete(_ context.Context, _ *llm.Request) (*llm.Response, error) {
	return &llm.Response{
		Text:       c.reply,
		StopReason: llm.StopEndTurn,
		Usage:      llm.Usage{InputTokens: 10, OutputTokens: 4},
	}, nil
}

func testServer() *Server {
	return New(Config{
		Provider:     &cannedProvider{reply: "Here's what I found."},
		SystemPrompt: "You are a test assistant.",
	})
}

func postJSON(t *testing.T, handler http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestChatEndpoint(t *testing.T) {
	handler := testServer().Handler()

	rec := postJSON(t, handler, "/api/chat", ChatRequest{Message: "how am I doing?"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Here's what I found.", resp.Response)
	assert.NotEmpty(t, resp.SessionID, "a session ID is minted when none is sent")
}

func TestChatEndpointKeepsSession(t *testing.T) {
	handler := testServer().Handler()

	first := postJSON(t, handler, "/api/chat", ChatRequest{Message: "hi"})
	var resp ChatResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &resp))

	second := postJSON(t, handler, "/api/chat", ChatRequest{Message: "and again", SessionID: resp.SessionID})
	var resp2 ChatResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp2))
	assert.Equal(t, resp.SessionID, resp2.SessionID, "the session ID round-trips")
}

func TestChatEndpointValidation(t *testing.T) {
	handler := testServer().Handler()

	rec := postJSON(t, handler, "/api/chat", ChatRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/chat", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestResetEndpoint(t *testing.T) {
	srv := testServer()
	handler := srv.Handler()

	chat := postJSON(t, handler, "/api/chat", ChatRequest{Message: "hi"})
	var resp ChatResponse
	require.NoError(t, json.Unmarshal(chat.Body.Bytes(), &resp))

	sess := srv.sessions.GetOrCreate(resp.SessionID, "default-user")
	require.Len(t, sess.History, 2)

	rec := postJSON(t, handler, "/api/reset", ResetRequest{SessionID: resp.SessionID})
	require.Equal(t, http.StatusOK, rec.Code)
	sess = srv.sessions.GetOrCreate(resp.SessionID, "default-user")
	assert.Empty(t, sess.History, "reset clears the session history")
}

func TestHealthEndpoint(t *testing.T) {
	handler := testServer().Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "FinanceAI", health["service"])
	assert.Equal(t, "canned", health["provider"])
}

func TestCORSPreflight(t *testing.T) {
	handler := testServer().Handler()

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestChatPersistsConversation(t *testing.T) {
	conversations := store.NewMemoryConversations()
	srv := New(Config{
		Provider:      &cannedProvider{reply: "noted"},
		Conversations: conversations,
	})

	rec := postJSON(t, srv.Handler(), "/api/chat", ChatRequest{Message: "remember this"})
	var resp ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	got, err := conversations.Get(context.Background(), resp.SessionID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "remember this", got.Messages[0].Content)
	assert.Equal(t, "assistant", got.Messages[1].Role)
	assert.Equal(t, int64(4), got.Messages[1].TokensOut)
}

func TestWebSocketChat(t *testing.T) {
	srv := httptest.NewServer(testServer().Handler())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "message", Content: "hello"}))

	// Collect messages until the turn completes.
	var types []string
	var sessionID string
	for {
		var msg ServerMessage
		require.NoError(t, conn.ReadJSON(&msg))
		types = append(types, msg.Type)
		if msg.SessionID != "" {
			sessionID = msg.SessionID
		}
		if msg.Type == "complete" || msg.Type == "error" {
			break
		}
	}

	assert.Contains(t, types, "text")
	assert.Equal(t, "complete", types[len(types)-1])
	assert.NotEmpty(t, sessionID)
}
