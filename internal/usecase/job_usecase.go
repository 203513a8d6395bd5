package usecase

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
)

type jobUsecase struct {
	jobRepo  domain.JobRepository
	validate *validator.Validate
}

func NewJobUsecase(jobRepo domain.JobRepository, validate *validator.Validate) domain.JobUsecase {
	return &jobUsecase{jobRepo: jobRepo, validate: validate}
}

func (u *jobUsecase) ListJobs(ctx context.Context) ([]domain.JobWithEmployer, error) {
	ctx, span := tracer.Start(ctx, "jobs.List")
	defer span.End()

	jobs, err := u.jobRepo.ListWithEmployer(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}

func (u *jobUsecase) GetJob(ctx context.Context, id int64) (*domain.JobWithEmployer, error) {
	ctx, span := tracer.Start(ctx, "jobs.Get")
	defer span.End()
	span.SetAttributes(attribute.Int64("job.id", id))

	job, err := u.jobRepo.GetByIDWithEmployer(ctx, id)
	if err != nil {
		return nil, jobLookupError(err)
	}
	return job, nil
}

// CreateJob always assigns the new job to the caller.
func (u *jobUsecase) CreateJob(ctx context.Context, actor *domain.Actor, req domain.CreateJobRequest) (*domain.Job, error) {
	ctx, span := tracer.Start(ctx, "jobs.Create")
	defer span.End()

	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if !actor.HasRole(domain.ElevatedRoles...) {
		return nil, apperror.Forbidden("Access denied")
	}
	if err := validateRequest(u.validate, req); err != nil {
		return nil, err
	}

	job := &domain.Job{
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		SalaryRange:    req.SalaryRange,
		EmploymentType: req.EmploymentType,
		Requirements:   req.Requirements,
		EmployerID:     actor.UserID,
	}
	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, apperror.Internal(err)
	}
	return job, nil
}

// UpdateJob merges the present fields into the job. Any authenticated
// caller may update a job; ownership is enforced on delete only.
func (u *jobUsecase) UpdateJob(ctx context.Context, actor *domain.Actor, id int64, req domain.UpdateJobRequest) (*domain.JobWithEmployer, error) {
	ctx, span := tracer.Start(ctx, "jobs.Update")
	defer span.End()
	span.SetAttributes(attribute.Int64("job.id", id))

	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := validateRequest(u.validate, req); err != nil {
		return nil, err
	}

	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, jobLookupError(err)
	}
	req.Apply(job)
	if err := u.jobRepo.Update(ctx, job); err != nil {
		return nil, jobLookupError(err)
	}

	updated, err := u.jobRepo.GetByIDWithEmployer(ctx, id)
	if err != nil {
		return nil, jobLookupError(err)
	}
	return updated, nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, actor *domain.Actor, id int64) error {
	ctx, span := tracer.Start(ctx, "jobs.Delete")
	defer span.End()
	span.SetAttributes(attribute.Int64("job.id", id))

	if err := requireActor(actor); err != nil {
		return err
	}

	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return jobLookupError(err)
	}
	if !actor.IsAdmin() && job.EmployerID != actor.UserID {
		return apperror.Forbidden("Unauthorized to delete this job")
	}

	if err := u.jobRepo.Delete(ctx, id); err != nil {
		return jobLookupError(err)
	}
	return nil
}

func jobLookupError(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound("Job not found")
	}
	return apperror.Internal(err)
}
