package db

import (
	"sync"
	"time"

	"github.com/w4tchme/w4tchme/internal/model"
)

// MemStore is an in-memory Store for tests and local tooling. Now is
// injectable so expiry behavior can be driven by a simulated clock.
type MemStore struct {
	mu      sync.Mutex
	screens map[string]model.Screen

	Now        func() time.Time
	FailCreate error
	FailClear  error
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{
		screens: make(map[string]model.Screen),
		Now:     time.Now,
	}
}

func (m *MemStore) CreateScreen(screen *model.Screen) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailCreate != nil {
		return m.FailCreate
	}
	if _, exists := m.screens[screen.ID]; exists {
		return ErrDuplicateID
	}
	screen.CreatedAt = m.Now()
	m.screens[screen.ID] = *screen
	return nil
}

func (m *MemStore) GetScreenByID(id string) (*model.Screen, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	screen, ok := m.screens[id]
	if !ok || screen.Expired(m.Now()) {
		return nil, ErrNotFound
	}
	return &screen, nil
}

func (m *MemStore) ListScreens() ([]model.Screen, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	screens := make([]model.Screen, 0, len(m.screens))
	for _, s := range m.screens {
		screens = append(screens, s)
	}
	return screens, nil
}

func (m *MemStore) TableNames() []string {
	return []string{"screens"}
}

func (m *MemStore) ClearTable(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailClear != nil {
		return m.FailClear
	}
	if name == "screens" {
		m.screens = make(map[string]model.Screen)
	}
	return nil
}

// Len reports how many screens are stored, expired rows included.
func (m *MemStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.screens)
}
