package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a conversation does not exist.
var ErrNotFound = errors.New("conversation not found")

// Conversation is persisted chat metadata.
type Conversation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoredMessage is one persisted chat message.
type StoredMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	TokensIn  int64     `json:"tokens_in"`
	TokensOut int64     `json:"tokens_out"`
	CreatedAt time.Time `json:"created_at"`
}

// AppendMessage is the input for appending a message.
type AppendMessage struct {
	ConversationID string
	Role           string
	Content        string
	TokensIn       int64
	TokensOut      int64
}

// ConversationWithMessages bundles a conversation and its messages.
type ConversationWithMessages struct {
	Conversation Conversation
	Messages     []StoredMessage
}

// Conversations persists chat transcripts.
type Conversations interface {
	Create(ctx context.Context, userID string) (*Conversation, error)
	// Ensure creates the conversation with the given ID if it does not
	// exist yet. Session IDs double as conversation IDs.
	Ensure(ctx context.Context, id, userID string) error
	Get(ctx context.Context, id string) (*ConversationWithMessages, error)
	Append(ctx context.Context, msg *AppendMessage) error
	List(ctx context.Context, userID string, limit int) ([]*Conversation, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// MemoryConversations is an in-memory Conversations implementation, used in
// tests and when no database path is configured.
type MemoryConversations struct {
	mu            sync.RWMutex
	conversations map[string]*Conversation
	messages      map[string][]StoredMessage
	now           func() time.Time
}

// NewMemoryConversations creates an empty in-memory store.
func NewMemoryConversations() *MemoryConversations {
	return &MemoryConversations{
		conversations: make(map[string]*Conversation),
		messages:      make(map[string][]StoredMessage),
		now:           time.Now,
	}
}

func (m *MemoryConversations) Create(_ context.Context, userID string) (*Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	conv := &Conversation{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.conversations[conv.ID] = conv
	return conv, nil
}

func (m *MemoryConversations) Ensure(_ context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.conversations[id]; ok {
		return nil
	}
	now := m.now()
	m.conversations[id] = &Conversation{
		ID:        id,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

func (m *MemoryConversations) Get(_ context.Context, id string) (*ConversationWithMessages, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	conv, ok := m.conversations[id]
	if !ok {
		return nil, ErrNotFound
	}
	msgs := make([]StoredMessage, len(m.messages[id]))
	copy(msgs, m.messages[id])
	return &ConversationWithMessages{Conversation: *conv, Messages: msgs}, nil
}

func (m *MemoryConversations) Append(_ context.Context, msg *AppendMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	conv, ok := m.conversations[msg.ConversationID]
	if !ok {
		return ErrNotFound
	}

	now := m.now()
	m.messages[msg.ConversationID] = append(m.messages[msg.ConversationID], StoredMessage{
		ID:        uuid.New().String(),
		Role:      msg.Role,
		Content:   msg.Content,
		TokensIn:  msg.TokensIn,
		TokensOut: msg.TokensOut,
		CreatedAt: now,
	})
	conv.UpdatedAt = now
	return nil
}

func (m *MemoryConversations) List(_ context.Context, userID string, limit int) ([]*Conversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	var out []*Conversation
	for _, conv := range m.conversations {
		if conv.UserID == userID {
			c := *conv
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryConversations) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.conversations[id]; !ok {
		return ErrNotFound
	}
	delete(m.conversations, id)
	delete(m.messages, id)
	return nil
}

func (m *MemoryConversations) Close() error { return nil }
