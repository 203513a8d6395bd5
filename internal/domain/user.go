package domain

import (
	"context"
	"slices"
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleUser     = "user"
	RoleEmployer = "employer"
)

var (
	// ElevatedRoles may create jobs and export applications.
	ElevatedRoles = []string{RoleAdmin, RoleEmployer}
	// StrictRoles gate admin-only operations.
	StrictRoles = []string{RoleAdmin}
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserSummary is the public slice of a user attached to jobs and applications.
type UserSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Actor is the authenticated caller of a request, built once from the session.
type Actor struct {
	UserID    int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	SessionID string `json:"-"`
}

// IsAdmin reports whether the actor passes the strict gate. Admin overrides
// on job, application and user ownership checks go through it.
func (a *Actor) IsAdmin() bool {
	return a.HasRole(StrictRoles...)
}

// HasRole reports whether the actor's role is one of roles.
func (a *Actor) HasRole(roles ...string) bool {
	return a != nil && slices.Contains(roles, a.Role)
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=100,valid_name,no_emoji"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// UpdateUserRequest carries only the fields present in the request body.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=100,valid_name,no_emoji"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin user employer"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token     string `json:"token"`
	User      Actor  `json:"user"`
	SessionID string `json:"-"`
}

type SessionStatus struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	User            *Actor `json:"user,omitempty"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user *User) error
}

type UserUsecase interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id int64) (*User, error)
	UpdateUser(ctx context.Context, actor *Actor, id int64, req UpdateUserRequest) (*User, error)
}

type AuthUsecase interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	Authenticate(ctx context.Context, sessionID string) (*Actor, error)
	SessionCheck(ctx context.Context, sessionID string) SessionStatus
}
