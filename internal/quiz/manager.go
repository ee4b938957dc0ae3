package quiz

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager errors.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNotSessionOwner = errors.New("session belongs to another user")
)

const (
	// finishedRetention keeps graded sessions around so the result screen
	// can be re-read after finishing.
	finishedRetention = 30 * time.Minute
	// idleTimeout evicts abandoned in-progress sessions.
	idleTimeout = 6 * time.Hour
)

// Manager is the registry of live in-memory sessions. Eviction always
// goes through remove so a discarded session's timer is stopped and can
// never mutate a stale attempt.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewManager creates a Manager and starts its janitor goroutine.
func NewManager() *Manager {
	m := &Manager{sessions: make(map[uuid.UUID]*Session)}

	go func() {
		for range time.Tick(time.Minute) {
			m.sweep()
		}
	}()

	return m
}

// Put registers a session.
func (m *Manager) Put(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
}

// Get returns the session with the given ID, enforcing ownership.
func (m *Manager) Get(id uuid.UUID, ownerID int) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.OwnerID != ownerID {
		return nil, ErrNotSessionOwner
	}
	return s, nil
}

// Remove evicts and closes a session. Closing stops the countdown; a
// removed session can never finish or mutate afterwards.
func (m *Manager) Remove(id uuid.UUID) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.Close()
	}
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// sweep evicts finished sessions past retention and idle abandoned ones.
func (m *Manager) sweep() {
	now := time.Now()

	m.mu.RLock()
	var stale []uuid.UUID
	for id, s := range m.sessions {
		idle := now.Sub(s.IdleSince())
		if (s.Finished() && idle > finishedRetention) || idle > idleTimeout {
			stale = append(stale, id)
		}
	}
	m.mu.RUnlock()

	for _, id := range stale {
		m.Remove(id)
	}
}
