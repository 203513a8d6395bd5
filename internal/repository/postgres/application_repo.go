package postgres

import (
	"context"
	"go-jobboard-backend/internal/domain"
)

type applicationRepo struct {
	db DBTX
}

func NewApplicationRepository(db DBTX) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Create relies on uq_job_applications_job_user to reject a second
// application for the same (job, user) pair.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `INSERT INTO job_applications (job_id, user_id, cover_letter, cv, status)
              VALUES ($1, $2, $3, $4, $5) RETURNING id, applied_at, updated_at`
	err := r.db.QueryRow(ctx, query, app.JobID, app.UserID, app.CoverLetter, app.CV, app.Status).
		Scan(&app.ID, &app.AppliedAt, &app.UpdatedAt)
	if err != nil {
		switch pgCode(err) {
		case pgUniqueViolation:
			return domain.ErrDuplicateApplication
		case pgForeignKeyViolation:
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := `SELECT id, job_id, user_id, cover_letter, cv, status, applied_at, updated_at
              FROM job_applications WHERE id = $1`
	var app domain.Application
	err := r.db.QueryRow(ctx, query, id).Scan(
		&app.ID, &app.JobID, &app.UserID, &app.CoverLetter, &app.CV, &app.Status, &app.AppliedAt, &app.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

const applicationListSelect = `
		SELECT
			a.id, a.job_id, a.user_id, a.cover_letter, a.cv, a.status, a.applied_at, a.updated_at,
			u.name, u.email, j.title
		FROM job_applications a
		JOIN users u ON u.id = a.user_id
		JOIN jobs j ON j.id = a.job_id`

const applicationListOrder = ` ORDER BY a.applied_at DESC, a.id DESC`

func (r *applicationRepo) list(ctx context.Context, where string, args ...any) ([]domain.ApplicationWithApplicant, error) {
	rows, err := r.db.Query(ctx, applicationListSelect+where+applicationListOrder, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []domain.ApplicationWithApplicant{}
	for rows.Next() {
		var app domain.ApplicationWithApplicant
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.UserID, &app.CoverLetter, &app.CV, &app.Status, &app.AppliedAt, &app.UpdatedAt,
			&app.Applicant.Name, &app.Applicant.Email, &app.JobTitle,
		); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (r *applicationRepo) ListByJobID(ctx context.Context, jobID int64) ([]domain.ApplicationWithApplicant, error) {
	return r.list(ctx, ` WHERE a.job_id = $1`, jobID)
}

func (r *applicationRepo) ListAll(ctx context.Context) ([]domain.ApplicationWithApplicant, error) {
	return r.list(ctx, "")
}

// ListByEmployerID returns applications for jobs owned by employerID
func (r *applicationRepo) ListByEmployerID(ctx context.Context, employerID int64) ([]domain.ApplicationWithApplicant, error) {
	return r.list(ctx, ` WHERE j.employer_id = $1`, employerID)
}

func (r *applicationRepo) ListByUserID(ctx context.Context, userID int64) ([]domain.ApplicationWithApplicant, error) {
	return r.list(ctx, ` WHERE a.user_id = $1`, userID)
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Application, error) {
	query := `UPDATE job_applications SET status = $2, updated_at = NOW() WHERE id = $1
              RETURNING id, job_id, user_id, cover_letter, cv, status, applied_at, updated_at`
	var app domain.Application
	err := r.db.QueryRow(ctx, query, id, status).Scan(
		&app.ID, &app.JobID, &app.UserID, &app.CoverLetter, &app.CV, &app.Status, &app.AppliedAt, &app.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}
