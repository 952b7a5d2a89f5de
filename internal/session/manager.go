// Package session keeps one visualizer store per client session and evicts
// sessions that have been idle for too long.
package session

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"visualizer-service/internal/visualizer"
)

// ErrSessionNotFound is returned for unknown or evicted session ids.
var ErrSessionNotFound = errors.New("session not found")

// Session is a visualizer store bound to an id.
type Session struct {
	ID         string
	Store      *visualizer.Store
	CreatedAt  time.Time
	LastAccess time.Time
}

// Manager creates, looks up and evicts sessions.
type Manager struct {
	reducer  *visualizer.Reducer
	idleTTL  time.Duration
	sessions map[string]*Session
	onCreate []func(*Session)
	now      func() time.Time
	mu       sync.RWMutex
}

// NewManager creates a Manager whose sessions expire after idleTTL without access.
func NewManager(reducer *visualizer.Reducer, idleTTL time.Duration) *Manager {
	return &Manager{
		reducer:  reducer,
		idleTTL:  idleTTL,
		sessions: make(map[string]*Session),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// OnCreate registers a hook run for every new session before it is returned.
func (m *Manager) OnCreate(hook func(*Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onCreate = append(m.onCreate, hook)
}

// Create starts a new session holding the initial visualizer state.
func (m *Manager) Create() *Session {
	now := m.now()
	s := &Session{
		ID:         uuid.New().String(),
		Store:      visualizer.NewStore(m.reducer),
		CreatedAt:  now,
		LastAccess: now,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, hook := range m.onCreate {
		hook(s)
	}
	m.sessions[s.ID] = s
	log.Printf("Created visualizer session %s", s.ID)
	return s
}

// Get returns the session with the given id and marks it as accessed.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.LastAccess = m.now()
	return s, nil
}

// Delete removes the session with the given id.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	log.Printf("Deleted visualizer session %s", id)
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep evicts sessions idle for longer than the idle TTL and returns how many it removed.
func (m *Manager) Sweep() int {
	if m.idleTTL <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.idleTTL)

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if s.LastAccess.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
