package storage

import (
	"context"
	"sync"
	"time"

	"triviarena/internal/model"
)

// defaultIdleWindow is how long a session may sit untouched before a
// cleanup pass removes it.
const defaultIdleWindow = time.Hour

// MemoryStorage keeps sessions in an in-process table. It is the fallback
// backend when Redis is unavailable or unconfigured. The TTL passed to Set
// is ignored (kept for contract compatibility); expiry happens only when
// Cleanup runs, so effective TTL has slack up to the cleanup interval.
type MemoryStorage struct {
	mu         sync.RWMutex
	sessions   map[string]*model.GameSession
	idleWindow time.Duration
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		sessions:   make(map[string]*model.GameSession),
		idleWindow: defaultIdleWindow,
	}
}

func (m *MemoryStorage) Get(_ context.Context, id string) (*model.GameSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id], nil
}

func (m *MemoryStorage) Set(_ context.Context, id string, session *model.GameSession, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = session
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MemoryStorage) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions), nil
}

// Cleanup removes every session idle longer than the window.
func (m *MemoryStorage) Cleanup(_ context.Context) (int, error) {
	cutoff := time.Now().Add(-m.idleWindow)
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, sess := range m.sessions {
		if sess.LastActive.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed, nil
}
