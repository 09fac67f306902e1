package session

import (
	"sync"
	"time"

	"github.com/mkwei/pricelens/internal/idgen"
)

// maxSessions caps the in-memory session table. When the cap is hit the
// stalest session is evicted.
const maxSessions = 10000

// MemoryStore is an in-memory session store for demo/development.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Create starts a new session and returns it.
func (m *MemoryStore) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) >= maxSessions {
		m.evictStalest()
	}

	now := m.now()
	s := &Session{
		ID:        idgen.WithPrefix("ses_"),
		CreatedAt: now,
		LastSeen:  now,
	}
	m.sessions[s.ID] = s
	cp := *s
	return &cp
}

// Get returns the session with the given ID, refreshing its LastSeen.
func (m *MemoryStore) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.LastSeen = m.now()
	cp := *s
	return &cp, nil
}

// SetReveal flips the reveal flag for one session.
func (m *MemoryStore) SetReveal(id string, reveal bool) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.Reveal = reveal
	s.LastSeen = m.now()
	cp := *s
	return &cp, nil
}

// evictStalest drops the least recently seen session. Caller holds the lock.
func (m *MemoryStore) evictStalest() {
	var stalestID string
	var stalest time.Time
	for id, s := range m.sessions {
		if stalestID == "" || s.LastSeen.Before(stalest) {
			stalestID = id
			stalest = s.LastSeen
		}
	}
	if stalestID != "" {
		delete(m.sessions, stalestID)
	}
}
