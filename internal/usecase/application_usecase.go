package usecase

import (
	"context"
	"errors"
	"io"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
)

type applicationUsecase struct {
	appRepo  domain.ApplicationRepository
	jobRepo  domain.JobRepository
	events   domain.EventPublisher
	validate *validator.Validate
}

func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	events domain.EventPublisher,
	validate *validator.Validate,
) domain.ApplicationUsecase {
	return &applicationUsecase{appRepo: appRepo, jobRepo: jobRepo, events: events, validate: validate}
}

// Apply submits the caller's application. A second application for the same
// job is rejected by the store's unique constraint.
func (u *applicationUsecase) Apply(ctx context.Context, actor *domain.Actor, jobID int64, req domain.ApplyRequest) (*domain.Application, error) {
	ctx, span := tracer.Start(ctx, "applications.Apply")
	defer span.End()
	span.SetAttributes(attribute.Int64("job.id", jobID))

	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := validateRequest(u.validate, req); err != nil {
		return nil, err
	}

	if _, err := u.jobRepo.GetByID(ctx, jobID); err != nil {
		return nil, jobLookupError(err)
	}

	app := &domain.Application{
		JobID:       jobID,
		UserID:      actor.UserID,
		CoverLetter: req.CoverLetter,
		CV:          req.CV,
		Status:      domain.ApplicationPending,
	}
	if err := u.appRepo.Create(ctx, app); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateApplication):
			return nil, apperror.Conflict("Already applied to this job")
		case errors.Is(err, domain.ErrNotFound):
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}

	publish(ctx, u.events, domain.EventApplicationSubmitted, map[string]any{
		"applicationId": app.ID,
		"jobId":         app.JobID,
		"userId":        app.UserID,
	})
	return app, nil
}

func (u *applicationUsecase) ListByJob(ctx context.Context, jobID int64) ([]domain.ApplicationWithApplicant, error) {
	apps, err := u.appRepo.ListByJobID(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// ListForActor scopes the list by role: admins see everything, employers see
// applications to their own jobs and users see their own submissions.
func (u *applicationUsecase) ListForActor(ctx context.Context, actor *domain.Actor) ([]domain.ApplicationWithApplicant, error) {
	ctx, span := tracer.Start(ctx, "applications.ListForActor")
	defer span.End()

	if err := requireActor(actor); err != nil {
		return nil, err
	}

	var (
		apps []domain.ApplicationWithApplicant
		err  error
	)
	switch actor.Role {
	case domain.RoleAdmin:
		apps, err = u.appRepo.ListAll(ctx)
	case domain.RoleEmployer:
		apps, err = u.appRepo.ListByEmployerID(ctx, actor.UserID)
	default:
		apps, err = u.appRepo.ListByUserID(ctx, actor.UserID)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// UpdateStatus is allowed for admins and the employer that owns the job.
func (u *applicationUsecase) UpdateStatus(ctx context.Context, actor *domain.Actor, applicationID int64, req domain.UpdateApplicationStatusRequest) (*domain.Application, error) {
	ctx, span := tracer.Start(ctx, "applications.UpdateStatus")
	defer span.End()
	span.SetAttributes(attribute.Int64("application.id", applicationID))

	if err := requireActor(actor); err != nil {
		return nil, err
	}

	app, err := u.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}
	job, err := u.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, jobLookupError(err)
	}
	if !actor.IsAdmin() && job.EmployerID != actor.UserID {
		return nil, apperror.Forbidden("Unauthorized to update this application")
	}

	if err := validateRequest(u.validate, req); err != nil {
		return nil, err
	}

	updated, err := u.appRepo.UpdateStatus(ctx, applicationID, req.Status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}

	publish(ctx, u.events, domain.EventApplicationStatusChanged, map[string]any{
		"applicationId": updated.ID,
		"jobId":         updated.JobID,
		"userId":        updated.UserID,
		"from":          app.Status,
		"to":            updated.Status,
	})
	return updated, nil
}

func (u *applicationUsecase) ExportForActor(ctx context.Context, actor *domain.Actor, w io.Writer) error {
	ctx, span := tracer.Start(ctx, "applications.Export")
	defer span.End()

	if err := requireActor(actor); err != nil {
		return err
	}
	if !actor.HasRole(domain.ElevatedRoles...) {
		return apperror.Forbidden("Access denied")
	}

	apps, err := u.ListForActor(ctx, actor)
	if err != nil {
		return err
	}
	if err := writeApplicationsWorkbook(apps, w); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
