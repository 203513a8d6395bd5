package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

type sessionRepo struct {
	client goredis.UniversalClient
}

// NewSessionRepository stores sessions as JSON values under session:<id>.
func NewSessionRepository(client goredis.UniversalClient) domain.SessionRepository {
	return &sessionRepo{client: client}
}

func (r *sessionRepo) Create(ctx context.Context, s *domain.Session, ttl time.Duration) (string, error) {
	s.ID = uuid.NewString()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+s.ID, b, ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return s.ID, nil
}

func (r *sessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	b, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	var s domain.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", id, err)
	}
	return &s, nil
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
