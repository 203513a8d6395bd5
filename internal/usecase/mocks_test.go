package usecase_test

import (
	"context"
	"sync"
	"testing"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock Repositories
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) GetByIDWithEmployer(ctx context.Context, id int64) (*domain.JobWithEmployer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobWithEmployer), args.Error(1)
}
func (m *MockJobRepo) ListWithEmployer(ctx context.Context) ([]domain.JobWithEmployer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobWithEmployer), args.Error(1)
}
func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) list(args mock.Arguments) ([]domain.ApplicationWithApplicant, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApplicationWithApplicant), args.Error(1)
}
func (m *MockApplicationRepo) ListByJobID(ctx context.Context, jobID int64) ([]domain.ApplicationWithApplicant, error) {
	return m.list(m.Called(ctx, jobID))
}
func (m *MockApplicationRepo) ListAll(ctx context.Context) ([]domain.ApplicationWithApplicant, error) {
	return m.list(m.Called(ctx))
}
func (m *MockApplicationRepo) ListByEmployerID(ctx context.Context, employerID int64) ([]domain.ApplicationWithApplicant, error) {
	return m.list(m.Called(ctx, employerID))
}
func (m *MockApplicationRepo) ListByUserID(ctx context.Context, userID int64) ([]domain.ApplicationWithApplicant, error) {
	return m.list(m.Called(ctx, userID))
}
func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Application, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, key string, v any) error {
	return m.Called(ctx, key, v).Error(0)
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification
}

func (n *recordingNotifier) Broadcast(msg domain.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
}

var (
	adminActor    = &domain.Actor{UserID: 1, Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin}
	employerActor = &domain.Actor{UserID: 4, Name: "Tech Corp HR", Email: "hr@techcorp.com", Role: domain.RoleEmployer}
	otherEmployer = &domain.Actor{UserID: 5, Name: "Other HR", Email: "hr@other.com", Role: domain.RoleEmployer}
	userActor     = &domain.Actor{UserID: 2, Name: "John Doe", Email: "john@example.com", Role: domain.RoleUser}
)

func assertAppError(t *testing.T, err error, code int) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code, appErr.Message)
}

func strPtr(s string) *string { return &s }

