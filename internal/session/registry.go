package session

import (
	"sync"
	"time"
)

// Registry holds live sessions in memory, keyed by session id.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	clock    func() time.Time
}

// NewRegistry creates an empty Registry. Sessions it creates use clock.
func NewRegistry(clock func() time.Time) *Registry {
	return &Registry{sessions: make(map[string]*Session), clock: clock}
}

// Create starts and registers a session for account.
func (r *Registry) Create(account Account) *Session {
	s := New(account, r.clock)
	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()
	return s
}

// Get returns the session with id or ErrNotFound.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete signs out and discards the session.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	s.SignOut()
	return nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
