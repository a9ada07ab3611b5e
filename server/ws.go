package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// ClientMessage is a message from the browser over the WebSocket.
type ClientMessage struct {
	Type      string `json:"type"`
	Content   string `json:"content,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// ServerMessage is a message to the browser over the WebSocket.
type ServerMessage struct {
	Type       string      `json:"type"`
	Content    string      `json:"content,omitempty"`
	SessionID  string      `json:"session_id,omitempty"`
	TokenUsage *TokenUsage `json:"token_usage,omitempty"`
}

// TokenUsage reports token counts on a completed turn.
type TokenUsage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
	TotalTokens  int64 `json:"total_tokens"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("WebSocket connected for user %s", userID)

	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}

		switch msg.Type {
		case "message":
			s.handleWSMessage(r.Context(), conn, userID, msg)

		case "reset":
			if msg.SessionID != "" {
				s.sessions.Reset(msg.SessionID)
			}
			s.send(conn, ServerMessage{Type: "reset_done", SessionID: msg.SessionID})

		default:
			s.sendError(conn, fmt.Sprintf("Unknown message type: %s", msg.Type))
		}
	}
}

func (s *Server) handleWSMessage(ctx context.Context, conn *websocket.Conn, userID string, msg ClientMessage) {
	if msg.Content == "" {
		return
	}

	sess := s.sessions.GetOrCreate(msg.SessionID, userID)
	log.Printf("[SESSION %s] USER: %s", sess.ID, truncate(msg.Content, 50))

	output, err := s.chat(ctx, sess, msg.Content, func(chunk string, done bool) {
		if !done && chunk != "" {
			s.send(conn, ServerMessage{Type: "text_chunk", Content: chunk, SessionID: sess.ID})
		}
	})
	if err != nil {
		log.Printf("Agent error: %v", err)
		s.sendError(conn, "The assistant could not process that message.")
		return
	}

	log.Printf("[SESSION %s] ASSISTANT: %s", sess.ID, truncate(output.Text, 200))
	s.send(conn, ServerMessage{Type: "text", Content: output.Text, SessionID: sess.ID})
	s.send(conn, ServerMessage{
		Type:      "complete",
		SessionID: sess.ID,
		TokenUsage: &TokenUsage{
			InputTokens:  output.TokensUsed.InputTokens,
			OutputTokens: output.TokensUsed.OutputTokens,
			TotalTokens:  output.TokensUsed.TotalTokens(),
		},
	})
}

func (s *Server) send(conn *websocket.Conn, msg ServerMessage) {
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func (s *Server) sendError(conn *websocket.Conn, content string) {
	s.send(conn, ServerMessage{Type: "error", Content: content})
}
