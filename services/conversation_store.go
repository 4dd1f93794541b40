package services

import (
	"context"
	"sync"

	"github.com/lukenewport-prog/nptgpt/models"
)

// SystemPrompt seeds every new conversation as its first message.
const SystemPrompt = "You are a helpful AI assistant capable of understanding both text and images."

// ConversationStore maps a conversation identifier to its ordered message
// history. Resolve with an empty id returns a fresh seeded history and an
// empty id: the identifier is only minted once a reply exists, at Save time.
// Save replaces the stored history wholesale, last writer wins.
type ConversationStore interface {
	Resolve(ctx context.Context, id string) (string, []models.Message, error)
	Save(ctx context.Context, id string, history []models.Message) error
}

// NewHistory returns the initial state of a conversation: exactly one
// system message.
func NewHistory() []models.Message {
	return []models.Message{models.SystemMessage(SystemPrompt)}
}

// MemoryStore keeps conversations in a process-wide map. Nothing survives a
// restart; that is an accepted limitation of the single-tenant setup, not
// something callers may rely on.
type MemoryStore struct {
	mu            sync.RWMutex
	conversations map[string][]models.Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{conversations: make(map[string][]models.Message)}
}

// Resolve returns a copy of the stored history for id. An unknown id starts
// a fresh conversation under that id; an empty id starts a fresh
// conversation whose id the caller mints later.
func (s *MemoryStore) Resolve(_ context.Context, id string) (string, []models.Message, error) {
	if id != "" {
		s.mu.RLock()
		history, ok := s.conversations[id]
		s.mu.RUnlock()
		if ok {
			return id, cloneHistory(history), nil
		}
	}
	return id, NewHistory(), nil
}

func (s *MemoryStore) Save(_ context.Context, id string, history []models.Message) error {
	s.mu.Lock()
	s.conversations[id] = cloneHistory(history)
	s.mu.Unlock()
	return nil
}

// cloneHistory keeps the store as the sole owner of stored slices.
func cloneHistory(history []models.Message) []models.Message {
	out := make([]models.Message, len(history))
	copy(out, history)
	return out
}
