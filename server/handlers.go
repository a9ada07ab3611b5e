package server

import (
	"encoding/json"
	"log"
	"net/http"
)

// ChatRequest is the POST /api/chat body.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// ChatResponse is the POST /api/chat reply.
type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// ResetRequest is the POST /api/reset body.
type ResetRequest struct {
	SessionID string `json:"session_id"`
}

// withCORS adds permissive CORS headers and answers preflight requests.
func (s *Server) withCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	userID, err := s.userID(r)
	if err != nil {
		httpError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Message == "" {
		httpError(w, http.StatusBadRequest, "message is required")
		return
	}

	sess := s.sessions.GetOrCreate(req.SessionID, userID)
	log.Printf("[SESSION %s] USER: %s", sess.ID, truncate(req.Message, 50))

	output, err := s.chat(r.Context(), sess, req.Message, nil)
	if err != nil {
		log.Printf("Agent error: %v", err)
		httpError(w, http.StatusBadGateway, "the assistant could not process that message")
		return
	}
	log.Printf("[SESSION %s] ASSISTANT: %s", sess.ID, truncate(output.Text, 200))

	writeJSON(w, http.StatusOK, ChatResponse{
		Response:  output.Text,
		SessionID: sess.ID,
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.SessionID == "" {
		httpError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	s.sessions.Reset(req.SessionID)
	log.Printf("[SESSION %s] reset", req.SessionID)

	writeJSON(w, http.StatusOK, map[string]string{
		"status":     "ok",
		"session_id": req.SessionID,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	provider := "none"
	if s.config.Provider != nil {
		provider = s.config.Provider.Name()
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "healthy",
		"service":  "FinanceAI",
		"version":  "1.0.0",
		"provider": provider,
		"tools":    s.registry.List(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func httpError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
