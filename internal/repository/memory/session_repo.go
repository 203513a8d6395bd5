package memory

import (
	"context"
	"sync"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/google/uuid"
)

type entry struct {
	session   domain.Session
	expiresAt time.Time
}

// SessionRepository keeps sessions in process memory. It is used when
// Redis is not configured and in tests.
type SessionRepository struct {
	mu       sync.Mutex
	sessions map[string]entry
	now      func() time.Time
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]entry), now: time.Now}
}

func (r *SessionRepository) Create(_ context.Context, s *domain.Session, ttl time.Duration) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.ID = uuid.NewString()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = r.now().UTC()
	}
	r.sessions[s.ID] = entry{session: *s, expiresAt: r.now().Add(ttl)}
	r.sweepLocked()
	return s.ID, nil
}

func (r *SessionRepository) Get(_ context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if !r.now().Before(e.expiresAt) {
		delete(r.sessions, id)
		return nil, domain.ErrSessionNotFound
	}
	s := e.session
	return &s, nil
}

func (r *SessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

// Len reports the number of stored sessions, expired ones included.
func (r *SessionRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// sweepLocked drops expired sessions. Caller holds mu.
func (r *SessionRepository) sweepLocked() {
	now := r.now()
	for id, e := range r.sessions {
		if !now.Before(e.expiresAt) {
			delete(r.sessions, id)
		}
	}
}
