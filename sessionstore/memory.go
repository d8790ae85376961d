package sessionstore

import (
	"context"
	"sync"
)

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

// Store saves session under user.
func (m *MemoryStore) Store(_ context.Context, user string, session Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[user] = session
	return nil
}

// Lookup returns the session saved under user.
func (m *MemoryStore) Lookup(_ context.Context, user string) (Session, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[user]
	return session, ok, nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }
