package usecase_test

import (
	"bytes"
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/mq"
	"go-jobboard-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// uniqueAppStore enforces the (job, user) uniqueness the database provides.
type uniqueAppStore struct {
	MockApplicationRepo
	mu   sync.Mutex
	rows map[[2]int64]domain.Application
}

func newUniqueAppStore() *uniqueAppStore {
	return &uniqueAppStore{rows: map[[2]int64]domain.Application{}}
}

func (s *uniqueAppStore) Create(_ context.Context, app *domain.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]int64{app.JobID, app.UserID}
	if _, ok := s.rows[key]; ok {
		return domain.ErrDuplicateApplication
	}
	app.ID = int64(len(s.rows) + 1)
	app.AppliedAt = time.Now()
	s.rows[key] = *app
	return nil
}

func (s *uniqueAppStore) count(jobID, userID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[[2]int64{jobID, userID}]; ok {
		return 1
	}
	return 0
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	job := &domain.Job{ID: 1, EmployerID: employerActor.UserID}

	t.Run("Should create a pending application", func(t *testing.T) {
		jobs := new(MockJobRepo)
		jobs.On("GetByID", mock.Anything, int64(1)).Return(job, nil)
		store := newUniqueAppStore()
		events := new(MockPublisher)
		events.On("Publish", mock.Anything, domain.EventApplicationSubmitted, mock.Anything).Return(nil)
		uc := usecase.NewApplicationUsecase(store, jobs, events, validation.Validator())

		app, err := uc.Apply(ctx, userActor, 1, domain.ApplyRequest{CoverLetter: strPtr("Hi"), CV: strPtr("John_Doe-cv.pdf")})
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationPending, app.Status)
		assert.Equal(t, userActor.UserID, app.UserID)
		assert.Equal(t, "John_Doe-cv.pdf", *app.CV)
		events.AssertExpectations(t)
	})

	t.Run("Should reject a second application with conflict", func(t *testing.T) {
		jobs := new(MockJobRepo)
		jobs.On("GetByID", mock.Anything, int64(1)).Return(job, nil)
		store := newUniqueAppStore()
		uc := usecase.NewApplicationUsecase(store, jobs, mq.NopPublisher{}, validation.Validator())

		_, err := uc.Apply(ctx, userActor, 1, domain.ApplyRequest{})
		require.NoError(t, err)

		_, err = uc.Apply(ctx, userActor, 1, domain.ApplyRequest{})
		assertAppError(t, err, http.StatusBadRequest)
		assert.Equal(t, "Already applied to this job", err.Error())
		assert.Equal(t, 1, store.count(1, userActor.UserID))
	})

	t.Run("Should let only one of many concurrent applies win", func(t *testing.T) {
		jobs := new(MockJobRepo)
		jobs.On("GetByID", mock.Anything, int64(1)).Return(job, nil)
		store := newUniqueAppStore()
		uc := usecase.NewApplicationUsecase(store, jobs, mq.NopPublisher{}, validation.Validator())

		const n = 16
		var wg sync.WaitGroup
		errs := make([]error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = uc.Apply(ctx, userActor, 1, domain.ApplyRequest{})
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
			}
		}
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, 1, store.count(1, userActor.UserID))
	})

	t.Run("Should return not found for a missing job", func(t *testing.T) {
		jobs := new(MockJobRepo)
		jobs.On("GetByID", mock.Anything, int64(9)).Return(nil, domain.ErrNotFound)
		store := newUniqueAppStore()
		uc := usecase.NewApplicationUsecase(store, jobs, nil, validation.Validator())

		_, err := uc.Apply(ctx, userActor, 9, domain.ApplyRequest{})
		assertAppError(t, err, http.StatusNotFound)
		assert.Equal(t, 0, store.count(9, userActor.UserID))
	})

	t.Run("Should require authentication", func(t *testing.T) {
		uc := usecase.NewApplicationUsecase(newUniqueAppStore(), new(MockJobRepo), nil, validation.Validator())
		_, err := uc.Apply(ctx, nil, 1, domain.ApplyRequest{})
		assertAppError(t, err, http.StatusUnauthorized)
	})
}

func TestListForActor(t *testing.T) {
	ctx := context.Background()
	all := []domain.ApplicationWithApplicant{{Application: domain.Application{ID: 1}}, {Application: domain.Application{ID: 2}}}
	mine := []domain.ApplicationWithApplicant{{Application: domain.Application{ID: 2}}}

	t.Run("admin sees every application", func(t *testing.T) {
		repo := new(MockApplicationRepo)
		repo.On("ListAll", mock.Anything).Return(all, nil)
		got, err := usecase.NewApplicationUsecase(repo, nil, nil, validation.Validator()).ListForActor(ctx, adminActor)
		require.NoError(t, err)
		assert.Len(t, got, 2)
		repo.AssertNotCalled(t, "ListByEmployerID", mock.Anything, mock.Anything)
	})

	t.Run("employer sees applications to their own jobs", func(t *testing.T) {
		repo := new(MockApplicationRepo)
		repo.On("ListByEmployerID", mock.Anything, employerActor.UserID).Return(mine, nil)
		got, err := usecase.NewApplicationUsecase(repo, nil, nil, validation.Validator()).ListForActor(ctx, employerActor)
		require.NoError(t, err)
		assert.Equal(t, mine, got)
		repo.AssertNotCalled(t, "ListAll", mock.Anything)
	})

	t.Run("user sees their own submissions", func(t *testing.T) {
		repo := new(MockApplicationRepo)
		repo.On("ListByUserID", mock.Anything, userActor.UserID).Return(mine, nil)
		got, err := usecase.NewApplicationUsecase(repo, nil, nil, validation.Validator()).ListForActor(ctx, userActor)
		require.NoError(t, err)
		assert.Equal(t, mine, got)
	})
}

func TestUpdateApplicationStatus(t *testing.T) {
	ctx := context.Background()
	app := &domain.Application{ID: 5, JobID: 1, UserID: userActor.UserID, Status: domain.ApplicationPending}
	job := &domain.Job{ID: 1, EmployerID: employerActor.UserID}

	setup := func() (*MockApplicationRepo, *MockJobRepo, *MockPublisher) {
		apps := new(MockApplicationRepo)
		apps.On("GetByID", mock.Anything, int64(5)).Return(app, nil)
		apps.On("UpdateStatus", mock.Anything, int64(5), mock.Anything).Return(
			&domain.Application{ID: 5, JobID: 1, UserID: userActor.UserID, Status: domain.ApplicationAccepted}, nil)
		jobs := new(MockJobRepo)
		jobs.On("GetByID", mock.Anything, int64(1)).Return(job, nil)
		events := new(MockPublisher)
		events.On("Publish", mock.Anything, domain.EventApplicationStatusChanged, mock.Anything).Return(nil)
		return apps, jobs, events
	}

	for _, actor := range []*domain.Actor{employerActor, adminActor} {
		t.Run("Should allow "+actor.Name, func(t *testing.T) {
			apps, jobs, events := setup()
			uc := usecase.NewApplicationUsecase(apps, jobs, events, validation.Validator())

			updated, err := uc.UpdateStatus(ctx, actor, 5, domain.UpdateApplicationStatusRequest{Status: "accepted"})
			require.NoError(t, err)
			assert.Equal(t, domain.ApplicationAccepted, updated.Status)
			events.AssertExpectations(t)
		})
	}

	for _, actor := range []*domain.Actor{otherEmployer, userActor} {
		t.Run("Should forbid "+actor.Name+" and leave status unchanged", func(t *testing.T) {
			apps, jobs, events := setup()
			uc := usecase.NewApplicationUsecase(apps, jobs, events, validation.Validator())

			_, err := uc.UpdateStatus(ctx, actor, 5, domain.UpdateApplicationStatusRequest{Status: "accepted"})
			assertAppError(t, err, http.StatusForbidden)
			apps.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
			events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("Should reject a status outside the reviewer set", func(t *testing.T) {
		apps, jobs, events := setup()
		uc := usecase.NewApplicationUsecase(apps, jobs, events, validation.Validator())

		for _, status := range []string{"pending", "hired", ""} {
			_, err := uc.UpdateStatus(ctx, employerActor, 5, domain.UpdateApplicationStatusRequest{Status: status})
			assertAppError(t, err, http.StatusBadRequest)
		}
		apps.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should return not found for a missing application", func(t *testing.T) {
		apps := new(MockApplicationRepo)
		apps.On("GetByID", mock.Anything, int64(6)).Return(nil, domain.ErrNotFound)
		uc := usecase.NewApplicationUsecase(apps, new(MockJobRepo), nil, validation.Validator())

		_, err := uc.UpdateStatus(ctx, adminActor, 6, domain.UpdateApplicationStatusRequest{Status: "reviewed"})
		assertAppError(t, err, http.StatusNotFound)
	})
}

func TestExportForActor(t *testing.T) {
	ctx := context.Background()

	t.Run("Should write one row per application", func(t *testing.T) {
		repo := new(MockApplicationRepo)
		repo.On("ListByEmployerID", mock.Anything, employerActor.UserID).Return([]domain.ApplicationWithApplicant{
			{
				Application: domain.Application{ID: 1, JobID: 3, Status: "pending", CV: strPtr("John_Doe-cv.pdf"), AppliedAt: time.Date(2025, 2, 9, 20, 58, 0, 0, time.UTC)},
				Applicant:   domain.UserSummary{Name: "John Doe", Email: "john@example.com"},
				JobTitle:    "UX Designer",
			},
		}, nil)
		uc := usecase.NewApplicationUsecase(repo, nil, nil, validation.Validator())

		var buf bytes.Buffer
		require.NoError(t, uc.ExportForActor(ctx, employerActor, &buf))

		f, err := excelize.OpenReader(&buf)
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("Applications")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "APPLICATION ID", rows[0][0])
		assert.Equal(t, "UX Designer", rows[1][2])
		assert.Equal(t, "John Doe", rows[1][3])
		assert.Equal(t, "John_Doe-cv.pdf", rows[1][6])
		assert.Equal(t, "2025-02-09 20:58", rows[1][8])
	})

	t.Run("Should forbid plain users", func(t *testing.T) {
		repo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(repo, nil, nil, validation.Validator())

		err := uc.ExportForActor(ctx, userActor, &bytes.Buffer{})
		assertAppError(t, err, http.StatusForbidden)
	})
}
