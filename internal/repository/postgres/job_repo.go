package postgres

import (
	"context"
	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
)

type jobRepo struct {
	db DBTX
}

func NewJobRepository(db DBTX) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (title, description, location, salary_range, employment_type, requirements, employer_id)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		job.Title, job.Description, job.Location, job.SalaryRange, job.EmploymentType, job.Requirements, job.EmployerID,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		if pgCode(err) == pgForeignKeyViolation {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `SELECT id, title, description, location, salary_range, employment_type, requirements, employer_id, created_at, updated_at
              FROM jobs WHERE id = $1`
	var job domain.Job
	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.Title, &job.Description, &job.Location, &job.SalaryRange, &job.EmploymentType,
		&job.Requirements, &job.EmployerID, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

const jobWithEmployerSelect = `
		SELECT
			j.id, j.title, j.description, j.location, j.salary_range, j.employment_type,
			j.requirements, j.employer_id, j.created_at, j.updated_at,
			u.name, u.email
		FROM jobs j
		JOIN users u ON u.id = j.employer_id`

func scanJobWithEmployer(row pgx.Row) (*domain.JobWithEmployer, error) {
	var job domain.JobWithEmployer
	err := row.Scan(
		&job.ID, &job.Title, &job.Description, &job.Location, &job.SalaryRange, &job.EmploymentType,
		&job.Requirements, &job.EmployerID, &job.CreatedAt, &job.UpdatedAt,
		&job.Employer.Name, &job.Employer.Email,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// GetByIDWithEmployer retrieves a job with the owning employer's name and email
func (r *jobRepo) GetByIDWithEmployer(ctx context.Context, id int64) (*domain.JobWithEmployer, error) {
	job, err := scanJobWithEmployer(r.db.QueryRow(ctx, jobWithEmployerSelect+` WHERE j.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return job, nil
}

// ListWithEmployer returns every job, newest first
func (r *jobRepo) ListWithEmployer(ctx context.Context) ([]domain.JobWithEmployer, error) {
	rows, err := r.db.Query(ctx, jobWithEmployerSelect+` ORDER BY j.created_at DESC, j.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []domain.JobWithEmployer{}
	for rows.Next() {
		job, err := scanJobWithEmployer(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `UPDATE jobs SET title = $2, description = $3, location = $4, salary_range = $5,
              employment_type = $6, requirements = $7, updated_at = NOW()
              WHERE id = $1 RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		job.ID, job.Title, job.Description, job.Location, job.SalaryRange, job.EmploymentType, job.Requirements,
	).Scan(&job.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
