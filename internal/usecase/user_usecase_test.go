package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/security"
	"go-jobboard-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserUsecase(repo *MockUserRepo) domain.UserUsecase {
	return usecase.NewUserUsecase(repo, security.BcryptHasher{Cost: bcrypt.MinCost}, validation.Validator())
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Should force the user role and hash the password", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == domain.RoleUser &&
				u.PasswordHash != "password123" &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")) == nil
		})).Return(nil)

		user, err := newUserUsecase(repo).CreateUser(ctx, domain.CreateUserRequest{
			Name: "Bilawal Zaman", Email: "bilawal@example.com", Password: "password123",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, user.Role)
		repo.AssertExpectations(t)
	})

	t.Run("Should require name, email and password", func(t *testing.T) {
		repo := new(MockUserRepo)
		_, err := newUserUsecase(repo).CreateUser(ctx, domain.CreateUserRequest{Email: "a@b.com"})
		assertAppError(t, err, http.StatusBadRequest)
		assert.Equal(t, "Name, Email, and Password are required!", err.Error())
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject an invalid email", func(t *testing.T) {
		repo := new(MockUserRepo)
		_, err := newUserUsecase(repo).CreateUser(ctx, domain.CreateUserRequest{Name: "A", Email: "nope", Password: "password123"})
		assertAppError(t, err, http.StatusBadRequest)
	})

	t.Run("Should report a taken email as conflict", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrEmailTaken)

		_, err := newUserUsecase(repo).CreateUser(ctx, domain.CreateUserRequest{Name: "John", Email: "john@example.com", Password: "password123"})
		assertAppError(t, err, http.StatusBadRequest)
		assert.Equal(t, "Email already registered", err.Error())
	})
}

func TestGetUser_NotFound(t *testing.T) {
	repo := new(MockUserRepo)
	repo.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrNotFound)

	_, err := newUserUsecase(repo).GetUser(context.Background(), 99)
	assertAppError(t, err, http.StatusNotFound)
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	john := func() *domain.User {
		return &domain.User{ID: 2, Name: "John Doe", Email: "john@example.com", PasswordHash: "old", Role: domain.RoleUser}
	}

	t.Run("Should let a user rename themselves", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByID", mock.Anything, int64(2)).Return(john(), nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Name == "Johnny" && u.Email == "john@example.com" && u.PasswordHash == "old"
		})).Return(nil)

		user, err := newUserUsecase(repo).UpdateUser(ctx, userActor, 2, domain.UpdateUserRequest{Name: strPtr("Johnny")})
		require.NoError(t, err)
		assert.Equal(t, "Johnny", user.Name)
	})

	t.Run("Should re-hash a new password", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByID", mock.Anything, int64(2)).Return(john(), nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("newpassword")) == nil
		})).Return(nil)

		_, err := newUserUsecase(repo).UpdateUser(ctx, userActor, 2, domain.UpdateUserRequest{Password: strPtr("newpassword")})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Should forbid editing someone else", func(t *testing.T) {
		repo := new(MockUserRepo)
		_, err := newUserUsecase(repo).UpdateUser(ctx, userActor, 3, domain.UpdateUserRequest{Name: strPtr("x")})
		assertAppError(t, err, http.StatusForbidden)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Should forbid a non-admin from changing their role", func(t *testing.T) {
		repo := new(MockUserRepo)
		_, err := newUserUsecase(repo).UpdateUser(ctx, userActor, 2, domain.UpdateUserRequest{Role: strPtr("admin")})
		assertAppError(t, err, http.StatusForbidden)
	})

	t.Run("Should let an admin change a role", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByID", mock.Anything, int64(2)).Return(john(), nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool { return u.Role == domain.RoleEmployer })).Return(nil)

		user, err := newUserUsecase(repo).UpdateUser(ctx, adminActor, 2, domain.UpdateUserRequest{Role: strPtr("employer")})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleEmployer, user.Role)
	})

	t.Run("Should reject an unknown role", func(t *testing.T) {
		repo := new(MockUserRepo)
		_, err := newUserUsecase(repo).UpdateUser(ctx, adminActor, 2, domain.UpdateUserRequest{Role: strPtr("superuser")})
		assertAppError(t, err, http.StatusBadRequest)
	})

	t.Run("Should require authentication", func(t *testing.T) {
		_, err := newUserUsecase(new(MockUserRepo)).UpdateUser(ctx, nil, 2, domain.UpdateUserRequest{})
		assertAppError(t, err, http.StatusUnauthorized)
	})
}
