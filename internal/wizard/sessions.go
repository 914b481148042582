package wizard

import (
	"context"
	"errors"
	"sync"
)

var ErrSessionNotFound = errors.New("wizard session not found")

// SessionStore persists serialized wizard state between requests.
type SessionStore interface {
	Save(ctx context.Context, id string, st *State) error
	Load(ctx context.Context, id string) (*State, error)
	Delete(ctx context.Context, id string) error
}

// MemorySessions is the single-node fallback and the test double.
type MemorySessions struct {
	mu       sync.RWMutex
	sessions map[string]State
}

var _ SessionStore = (*MemorySessions)(nil)

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{sessions: make(map[string]State)}
}

func (m *MemorySessions) Save(_ context.Context, id string, st *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = *st
	return nil
}

func (m *MemorySessions) Load(_ context.Context, id string) (*State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &st, nil
}

func (m *MemorySessions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
