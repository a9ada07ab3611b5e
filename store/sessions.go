// Package store holds conversational state: in-memory chat sessions and
// persistent conversation history.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finrelay/financeai/core"
)

// Session is one live chat session's state.
type Session struct {
	ID         string
	UserID     string
	History    []core.Message
	CreatedAt  time.Time
	LastActive time.Time
	Turns      int
}

// MemorySessions is a session-keyed in-memory store. Idle sessions are
// evicted so a long-running process does not accumulate history forever.
type MemorySessions struct {
	mu       sync.Mutex
	sessions map[string]*Session

	maxIdle    time.Duration
	maxHistory int
	now        func() time.Time
}

// SessionConfig tunes the in-memory session store.
type SessionConfig struct {
	// MaxIdle is how long a session can sit untouched before eviction.
	MaxIdle time.Duration

	// MaxHistory caps the messages kept per session; older messages are
	// dropped first. Zero means unlimited.
	MaxHistory int

	// Now overrides the clock, mainly for tests.
	Now func() time.Time
}

// NewMemorySessions creates a session store.
func NewMemorySessions(cfg SessionConfig) *MemorySessions {
	maxIdle := cfg.MaxIdle
	if maxIdle <= 0 {
		maxIdle = 30 * time.Minute
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &MemorySessions{
		sessions:   make(map[string]*Session),
		maxIdle:    maxIdle,
		maxHistory: cfg.MaxHistory,
		now:        now,
	}
}

// GetOrCreate returns a snapshot of the session with the given ID, creating
// it if needed. An empty ID creates a fresh session with a generated ID.
// Idle sessions are swept on every call.
//
// The snapshot is private to the caller: concurrent Append and Reset calls
// never mutate it.
func (m *MemorySessions) GetOrCreate(sessionID, userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.evictLocked(now)

	if sessionID != "" {
		if s, ok := m.sessions[sessionID]; ok {
			s.LastActive = now
			return snapshot(s)
		}
	} else {
		sessionID = uuid.New().String()
	}

	s := &Session{
		ID:         sessionID,
		UserID:     userID,
		CreatedAt:  now,
		LastActive: now,
	}
	m.sessions[sessionID] = s
	return snapshot(s)
}

func snapshot(s *Session) *Session {
	out := *s
	out.History = make([]core.Message, len(s.History))
	copy(out.History, s.History)
	return &out
}

// Append records one user/assistant exchange on the session.
func (m *MemorySessions) Append(sessionID string, userMsg, assistantMsg core.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return
	}
	s.History = append(s.History, userMsg, assistantMsg)
	s.Turns++
	s.LastActive = m.now()

	if m.maxHistory > 0 && len(s.History) > m.maxHistory {
		s.History = s.History[len(s.History)-m.maxHistory:]
	}
}

// Reset clears a session's history. A missing session is a no-op.
func (m *MemorySessions) Reset(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[sessionID]; ok {
		s.History = nil
		s.Turns = 0
		s.LastActive = m.now()
	}
}

// Len reports the number of live sessions.
func (m *MemorySessions) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *MemorySessions) evictLocked(now time.Time) {
	for id, s := range m.sessions {
		if now.Sub(s.LastActive) > m.maxIdle {
			delete(m.sessions, id)
		}
	}
}
