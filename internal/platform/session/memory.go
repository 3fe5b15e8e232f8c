package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// MemoryStore keeps sessions in a process-local map. Expired entries are
// dropped lazily on Get. Suitable for development and single-instance
// deployments; production should use the redis backend.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func (m *MemoryStore) Set(_ context.Context, id string, s Session) error {
	if err := validate(id, s); err != nil {
		return err
	}
	ttl, err := ttlFor(s.Token, m.ttl)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.entries[id] = memoryEntry{session: s, expiresAt: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (Session, error) {
	m.mu.RLock()
	entry, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok {
		return Session{}, ErrNoSession
	}
	if time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, id)
		m.mu.Unlock()
		return Session{}, ErrNoSession
	}
	return entry.session, nil
}

func (m *MemoryStore) Clear(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.entries, id)
	m.mu.Unlock()
	return nil
}
