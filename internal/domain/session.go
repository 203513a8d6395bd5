package domain

import (
	"context"
	"time"
)

// Session is the server-side record behind the session cookie.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Session) Actor() *Actor {
	return &Actor{UserID: s.UserID, Name: s.Name, Email: s.Email, Role: s.Role, SessionID: s.ID}
}

type SessionRepository interface {
	// Create stores s under a new random id and returns that id.
	Create(ctx context.Context, s *Session, ttl time.Duration) (string, error)
	// Get returns ErrSessionNotFound for unknown or expired ids.
	Get(ctx context.Context, id string) (*Session, error)
	// Delete is a no-op for unknown ids.
	Delete(ctx context.Context, id string) error
}
