package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	session *Session
	expiry  time.Time
}

// MemoryStore is an in-process Store for single-instance deployments.
// Expired entries are evicted lazily on read and periodically by a
// janitor goroutine.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
	ttl     time.Duration
	done    chan struct{}
}

// NewMemoryStore creates an in-memory store with the given session TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	m := &MemoryStore{
		entries: make(map[string]*memoryEntry),
		ttl:     ttl,
		done:    make(chan struct{}),
	}

	go m.janitor(5 * time.Minute)
	return m
}

func (m *MemoryStore) Create(_ context.Context, s *Session) error {
	if s.ID == "" {
		s.ID = NewID()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	s.Version = 1

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[s.ID] = &memoryEntry{
		session: s.Clone(),
		expiry:  time.Now().Add(m.ttl),
	}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	entry, ok := m.entries[id]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(entry.expiry) {
		// Lazy eviction on read
		m.mu.Lock()
		if cur, stillThere := m.entries[id]; stillThere && time.Now().After(cur.expiry) {
			delete(m.entries, id)
		}
		m.mu.Unlock()
		return nil, ErrNotFound
	}

	return entry.session.Clone(), nil
}

func (m *MemoryStore) Update(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[s.ID]
	if !ok || time.Now().After(entry.expiry) {
		delete(m.entries, s.ID)
		return ErrNotFound
	}
	if entry.session.Version != s.Version {
		return ErrVersionConflict
	}

	next := s.Clone()
	next.Version++
	entry.session = next
	s.Version = next.Version
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, id)
	return nil
}

// Len reports the number of live entries. Used by stats reporting.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	now := time.Now()
	for _, entry := range m.entries {
		if now.Before(entry.expiry) {
			n++
		}
	}
	return n
}

// janitor periodically removes expired sessions
func (m *MemoryStore) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.evictExpired()
		case <-m.done:
			return
		}
	}
}

func (m *MemoryStore) evictExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for id, entry := range m.entries {
		if now.After(entry.expiry) {
			delete(m.entries, id)
		}
	}
}

// Close stops the janitor goroutine. Should be called on shutdown.
func (m *MemoryStore) Close() {
	close(m.done)
}
