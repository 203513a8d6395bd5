package postgres

import (
	"context"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

var applicationListColumns = []string{
	"id", "job_id", "user_id", "cover_letter", "cv", "status", "applied_at", "updated_at",
	"name", "email", "title",
}

func strPtr(s string) *string { return &s }

func TestApplicationRepo_ListByEmployerID(t *testing.T) {
	mock := newMock(t)
	repo := NewApplicationRepository(mock)

	newer := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	older := newer.Add(-24 * time.Hour)
	rows := pgxmock.NewRows(applicationListColumns).
		AddRow(int64(11), int64(5), int64(2), strPtr("Hire me"), strPtr("John_Doe-cv.pdf"), domain.ApplicationPending,
			newer, newer, "John Doe", "john@example.com", "Backend Engineer").
		AddRow(int64(10), int64(6), int64(7), strPtr(""), strPtr(""), domain.ApplicationReviewed,
			older, older, "Bilawal Zaman", "bilawal@example.com", "Data Analyst")

	mock.ExpectQuery(`JOIN jobs j ON j\.id = a\.job_id WHERE j\.employer_id = \$1 ORDER BY a\.applied_at DESC, a\.id DESC`).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	apps, err := repo.ListByEmployerID(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, int64(11), apps[0].ID)
	assert.Equal(t, "John Doe", apps[0].Applicant.Name)
	assert.Equal(t, "Backend Engineer", apps[0].JobTitle)
	assert.Equal(t, "John_Doe-cv.pdf", *apps[0].CV)
	assert.Equal(t, int64(10), apps[1].ID)
}

func TestApplicationRepo_ListByUserID_Empty(t *testing.T) {
	mock := newMock(t)
	repo := NewApplicationRepository(mock)

	mock.ExpectQuery(`WHERE a\.user_id = \$1 ORDER BY a\.applied_at DESC`).
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows(applicationListColumns))

	apps, err := repo.ListByUserID(context.Background(), 2)
	require.NoError(t, err)
	assert.NotNil(t, apps)
	assert.Empty(t, apps)
}

func TestApplicationRepo_Create(t *testing.T) {
	insert := `INSERT INTO job_applications \(job_id, user_id, cover_letter, cv, status\)`

	t.Run("Should map a unique violation to a duplicate application", func(t *testing.T) {
		mock := newMock(t)
		repo := NewApplicationRepository(mock)

		mock.ExpectQuery(insert).
			WithArgs(int64(5), int64(2), pgxmock.AnyArg(), pgxmock.AnyArg(), domain.ApplicationPending).
			WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "uq_job_applications_job_user"})

		err := repo.Create(context.Background(), &domain.Application{JobID: 5, UserID: 2, Status: domain.ApplicationPending})
		assert.ErrorIs(t, err, domain.ErrDuplicateApplication)
	})

	t.Run("Should map a foreign key violation to not found", func(t *testing.T) {
		mock := newMock(t)
		repo := NewApplicationRepository(mock)

		mock.ExpectQuery(insert).
			WithArgs(int64(999), int64(2), pgxmock.AnyArg(), pgxmock.AnyArg(), domain.ApplicationPending).
			WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation})

		err := repo.Create(context.Background(), &domain.Application{JobID: 999, UserID: 2, Status: domain.ApplicationPending})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Should fill id and timestamps on success", func(t *testing.T) {
		mock := newMock(t)
		repo := NewApplicationRepository(mock)

		now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
		mock.ExpectQuery(insert).
			WithArgs(int64(5), int64(2), pgxmock.AnyArg(), pgxmock.AnyArg(), domain.ApplicationPending).
			WillReturnRows(pgxmock.NewRows([]string{"id", "applied_at", "updated_at"}).AddRow(int64(42), now, now))

		app := &domain.Application{JobID: 5, UserID: 2, Status: domain.ApplicationPending}
		require.NoError(t, repo.Create(context.Background(), app))
		assert.Equal(t, int64(42), app.ID)
		assert.Equal(t, now, app.AppliedAt)
	})
}

func TestApplicationRepo_UpdateStatus_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewApplicationRepository(mock)

	mock.ExpectQuery(`UPDATE job_applications SET status = \$2`).
		WithArgs(int64(77), domain.ApplicationAccepted).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.UpdateStatus(context.Background(), 77, domain.ApplicationAccepted)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_Create_EmailTaken(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`INSERT INTO users \(name, email, password_hash, role\)`).
		WithArgs("John Doe", "john@example.com", "hash", domain.RoleUser).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	err := repo.Create(context.Background(), &domain.User{Name: "John Doe", Email: "john@example.com", PasswordHash: "hash", Role: domain.RoleUser})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestJobRepo_Delete(t *testing.T) {
	t.Run("Should report a missing job", func(t *testing.T) {
		mock := newMock(t)
		repo := NewJobRepository(mock)

		mock.ExpectExec(`DELETE FROM jobs WHERE id = \$1`).
			WithArgs(int64(9)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), 9), domain.ErrNotFound)
	})

	t.Run("Should delete an existing job", func(t *testing.T) {
		mock := newMock(t)
		repo := NewJobRepository(mock)

		mock.ExpectExec(`DELETE FROM jobs WHERE id = \$1`).
			WithArgs(int64(4)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		assert.NoError(t, repo.Delete(context.Background(), 4))
	})
}

func TestJobRepo_GetByIDWithEmployer_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewJobRepository(mock)

	mock.ExpectQuery(`JOIN users u ON u\.id = j\.employer_id WHERE j\.id = \$1`).
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByIDWithEmployer(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
