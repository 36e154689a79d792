package wizard

import (
	"fmt"
	"sync"
	"time"

	"github.com/woodhall335/landlord-heaven/facts"
)

// InMemorySessionStore implements SessionStore using an in-memory map.
// Thread-safe with RWMutex; used in tests and single-node development.
type InMemorySessionStore struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewInMemorySessionStore creates a new in-memory session store.
func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{
		sessions: make(map[string]*Session),
	}
}

// Create adds a new session, enforcing unique IDs and setting timestamps.
func (s *InMemorySessionStore) Create(session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; exists {
		return fmt.Errorf("session with ID %s already exists", session.ID)
	}

	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now
	if session.Facts == nil {
		session.Facts = facts.Record{}
	}
	s.sessions[session.ID] = session
	return nil
}

// Get retrieves a session by ID. The returned session carries a copy of the
// facts record, so callers can hand it to the mapper without aliasing the
// stored one.
func (s *InMemorySessionStore) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, exists := s.sessions[id]
	if !exists {
		return nil, fmt.Errorf("session %s not found", id)
	}

	copied := *session
	copied.Facts = session.Facts.Clone()
	return &copied, nil
}

// SaveFacts replaces a session's facts record.
func (s *InMemorySessionStore) SaveFacts(id string, record facts.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[id]
	if !exists {
		return fmt.Errorf("session %s not found", id)
	}

	session.Facts = record.Clone()
	session.UpdatedAt = time.Now()
	return nil
}

// Delete removes a session.
func (s *InMemorySessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[id]; !exists {
		return fmt.Errorf("session %s not found", id)
	}

	delete(s.sessions, id)
	return nil
}
