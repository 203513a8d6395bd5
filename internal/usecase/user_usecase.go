package usecase

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/security"

	"github.com/go-playground/validator/v10"
)

type userUsecase struct {
	userRepo domain.UserRepository
	hasher   security.PasswordHasher
	validate *validator.Validate
}

func NewUserUsecase(userRepo domain.UserRepository, hasher security.PasswordHasher, validate *validator.Validate) domain.UserUsecase {
	return &userUsecase{userRepo: userRepo, hasher: hasher, validate: validate}
}

// CreateUser registers a plain user account. The role cannot be chosen at signup.
func (u *userUsecase) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, apperror.BadRequest("Name, Email, and Password are required!")
	}
	if err := validateRequest(u.validate, req); err != nil {
		return nil, err
	}

	hash, err := u.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, apperror.Conflict("Email already registered")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func (u *userUsecase) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := u.userRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return users, nil
}

func (u *userUsecase) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

// UpdateUser lets a user edit their own account and an admin edit any account.
// Only admins may change a role.
func (u *userUsecase) UpdateUser(ctx context.Context, actor *domain.Actor, id int64, req domain.UpdateUserRequest) (*domain.User, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if actor.UserID != id && !actor.IsAdmin() {
		return nil, apperror.Forbidden("You can only update your own account")
	}
	if req.Role != nil && !actor.IsAdmin() {
		return nil, apperror.Forbidden("Only admins can change roles")
	}
	if err := validateRequest(u.validate, req); err != nil {
		return nil, err
	}

	user, err := u.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Password != nil {
		hash, err := u.hasher.Hash(*req.Password)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		user.PasswordHash = hash
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			return nil, apperror.Conflict("Email already registered")
		case errors.Is(err, domain.ErrNotFound):
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}
