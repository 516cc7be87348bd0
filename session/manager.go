package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"art-customizer/metrics"
	"art-customizer/models"
)

// Manager owns the live sessions of the process
type Manager struct {
	deps Dependencies

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewManager creates a session manager sharing deps across sessions
func NewManager(deps Dependencies) *Manager {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Manager{
		deps:     deps,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Create starts a session for artworkID. The session is only registered
// once the artwork has loaded.
func (m *Manager) Create(ctx context.Context, artworkID int64) (*Session, error) {
	s := New(m.deps)
	if _, err := s.LoadArtwork(ctx, artworkID); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[s.id] = s
	n := len(m.sessions)
	m.mu.Unlock()

	metrics.SetActiveSessions(n)
	log.Printf("✓ SessionManager: created session %s for artwork %d", s.id, artworkID)
	return s, nil
}

// Get looks up a session by its string id and marks it active
func (m *Manager) Get(id string) (*Session, error) {
	sid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid session id %q: %w", id, models.ErrSessionNotFound)
	}

	m.mu.RLock()
	s, ok := m.sessions[sid]
	m.mu.RUnlock()
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	s.touch()
	return s, nil
}

// Delete discards a session
func (m *Manager) Delete(id string) error {
	sid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid session id %q: %w", id, models.ErrSessionNotFound)
	}

	m.mu.Lock()
	_, ok := m.sessions[sid]
	delete(m.sessions, sid)
	n := len(m.sessions)
	m.mu.Unlock()

	if !ok {
		return models.ErrSessionNotFound
	}
	metrics.SetActiveSessions(n)
	return nil
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep removes sessions idle for longer than ttl and returns how many were
// removed. It never takes a session's own lock.
func (m *Manager) Sweep(ttl time.Duration) int {
	cutoff := m.deps.Now().Add(-ttl)

	m.mu.Lock()
	removed := 0
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	n := len(m.sessions)
	m.mu.Unlock()

	if removed > 0 {
		log.Printf("🧹 SessionManager: expired %d idle sessions (%d active)", removed, n)
	}
	metrics.SetActiveSessions(n)
	return removed
}

// StartCleanup sweeps expired sessions every interval until ctx is done
func (m *Manager) StartCleanup(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Sweep(ttl)
			}
		}
	}()
}
