package memory

import (
	"context"
	"sync"
	"time"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

type entry struct {
	session   domain.Session
	expiresAt time.Time
}

// SessionRepository implements repository.SessionRepository using an in-memory map.
// Sessions are lost on restart.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]entry
	ttl      time.Duration
	nowFunc  func() time.Time // injectable clock for testing
}

// NewSessionRepository creates an in-memory session repository.
// A zero ttl keeps sessions until they are deleted.
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]entry),
		ttl:      ttl,
		nowFunc:  time.Now,
	}
}

// Get returns a copy of the stored session.
func (r *SessionRepository) Get(_ context.Context, id string) (*domain.Session, error) {
	r.mu.RLock()
	e, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok || r.expired(e) {
		return nil, apperrors.NotFound("session", id)
	}

	s := e.session
	return &s, nil
}

// Save stores a copy of the session.
func (r *SessionRepository) Save(_ context.Context, session *domain.Session) error {
	e := entry{session: *session}
	if r.ttl > 0 {
		e.expiresAt = r.nowFunc().Add(r.ttl)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = e
	return nil
}

// Delete removes the session if present.
func (r *SessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

// Ping always succeeds.
func (r *SessionRepository) Ping(context.Context) error {
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (r *SessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *SessionRepository) expired(e entry) bool {
	return !e.expiresAt.IsZero() && r.nowFunc().After(e.expiresAt)
}
