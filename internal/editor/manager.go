// internal/editor/manager.go
//
// Per-site session bookkeeping.
//
// The system assumes a single editor session per tenant at a time, so
// the manager hands out one Session per site ID, created lazily on the
// first editing request and reused for the rest of the session.

package editor

import (
	"context"
	"sync"
	"time"

	"github.com/audreylyn/Golden-Crumb-sub001/internal/storage"
)

// Manager owns the live sessions of this process.
type Manager struct {
	store  storage.Store
	window time.Duration

	mu       sync.Mutex
	sessions map[uint64]*Session
}

// NewManager wires the backing store into future sessions.
func NewManager(store storage.Store, window time.Duration) *Manager {
	return &Manager{
		store:    store,
		window:   window,
		sessions: make(map[uint64]*Session),
	}
}

// For returns the session bound to siteID, creating it on first use.
func (m *Manager) For(siteID uint64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[siteID]; ok {
		return s
	}
	s := NewSession(m.store, siteID, m.window)
	m.sessions[siteID] = s
	return s
}

// CloseAll flushes and closes every live session.  Used at shutdown; the
// first error is returned, later sessions still close.
func (m *Manager) CloseAll(ctx context.Context) error {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[uint64]*Session)
	m.mu.Unlock()

	var first error
	for _, s := range sessions {
		if err := s.Close(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}
