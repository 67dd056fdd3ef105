package services

import (
	"fmt"
	"sync"

	"spingate-backend/internal/models"
)

// SessionRegistry is the process-wide table of active sessions, keyed by
// session id. Connection workers insert on connect and remove on disconnect
// concurrently; the orchestrator only looks sessions up.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*models.Session),
	}
}

// Add registers a session. A credential whose session id is already bound
// to a live connection is rejected; each credential is consumed by exactly
// one connection at a time.
func (r *SessionRegistry) Add(session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.ID]; exists {
		return fmt.Errorf("%w: %s", models.ErrSessionActive, session.ID)
	}
	r.sessions[session.ID] = session
	return nil
}

func (r *SessionRegistry) Get(sessionID string) (*models.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[sessionID]
	return session, ok
}

// Remove drops a session from the registry. Removing keys the entry to the
// given session pointer so a reconnect that re-registered the same id is
// not torn down by the old connection's deferred cleanup.
func (r *SessionRegistry) Remove(session *models.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.sessions[session.ID]; ok && current == session {
		delete(r.sessions, session.ID)
	}
}

func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}
