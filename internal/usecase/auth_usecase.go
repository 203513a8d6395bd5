package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/security"

	"github.com/go-playground/validator/v10"
)

const invalidCredentials = "Invalid credentials"

// TokenIssuer signs the bearer token returned at login.
type TokenIssuer interface {
	Issue(userID int64, email, role string) (string, error)
}

type authUsecase struct {
	userRepo   domain.UserRepository
	sessions   domain.SessionRepository
	hasher     security.PasswordHasher
	tokens     TokenIssuer
	notifier   domain.Notifier
	events     domain.EventPublisher
	validate   *validator.Validate
	sessionTTL time.Duration
}

func NewAuthUsecase(
	userRepo domain.UserRepository,
	sessions domain.SessionRepository,
	hasher security.PasswordHasher,
	tokens TokenIssuer,
	notifier domain.Notifier,
	events domain.EventPublisher,
	validate *validator.Validate,
	sessionTTL time.Duration,
) domain.AuthUsecase {
	return &authUsecase{
		userRepo:   userRepo,
		sessions:   sessions,
		hasher:     hasher,
		tokens:     tokens,
		notifier:   notifier,
		events:     events,
		validate:   validate,
		sessionTTL: sessionTTL,
	}
}

// Login checks the credentials, opens a session and issues a bearer token.
// Unknown email and wrong password produce the same error.
func (u *authUsecase) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	ctx, span := tracer.Start(ctx, "auth.Login")
	defer span.End()

	if err := validateRequest(u.validate, req); err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.BadRequest(invalidCredentials)
		}
		return nil, apperror.Internal(err)
	}
	if err := u.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperror.BadRequest(invalidCredentials)
	}

	sessionID, err := u.sessions.Create(ctx, &domain.Session{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
	}, u.sessionTTL)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	token, err := u.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		_ = u.sessions.Delete(ctx, sessionID)
		return nil, apperror.Internal(err)
	}

	if u.notifier != nil {
		u.notifier.Broadcast(domain.Notification{
			Event:   "notification",
			Message: user.Name + " just logged in",
		})
	}
	publish(ctx, u.events, domain.EventUserLoggedIn, map[string]any{
		"userId": user.ID,
		"role":   user.Role,
	})

	return &domain.LoginResult{
		Token:     token,
		SessionID: sessionID,
		User: domain.Actor{
			UserID: user.ID,
			Name:   user.Name,
			Email:  user.Email,
			Role:   user.Role,
		},
	}, nil
}

// Logout succeeds when there is no session to destroy.
func (u *authUsecase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := u.sessions.Delete(ctx, sessionID); err != nil {
		return apperror.New(http.StatusInternalServerError, "Failed to logout", err)
	}
	return nil
}

func (u *authUsecase) Authenticate(ctx context.Context, sessionID string) (*domain.Actor, error) {
	if sessionID == "" {
		return nil, domain.ErrSessionNotFound
	}
	s, err := u.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.Actor(), nil
}

func (u *authUsecase) SessionCheck(ctx context.Context, sessionID string) domain.SessionStatus {
	actor, err := u.Authenticate(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			logger.Log.Error("session lookup failed", "error", err)
		}
		return domain.SessionStatus{IsAuthenticated: false}
	}
	return domain.SessionStatus{IsAuthenticated: true, User: actor}
}
