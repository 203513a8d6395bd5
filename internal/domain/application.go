package domain

import (
	"context"
	"io"
	"time"
)

const (
	ApplicationPending  = "pending"
	ApplicationReviewed = "reviewed"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

type Application struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"jobId"`
	UserID      int64     `json:"userId"`
	CoverLetter *string   `json:"coverLetter"`
	CV          *string   `json:"cv"`
	Status      string    `json:"status"`
	AppliedAt   time.Time `json:"appliedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ApplicationWithApplicant extends Application with the applicant and job title
type ApplicationWithApplicant struct {
	Application
	Applicant UserSummary `json:"applicant"`
	JobTitle  string      `json:"jobTitle"`
}

type ApplyRequest struct {
	CoverLetter *string `form:"coverLetter" json:"coverLetter" validate:"omitempty,max=10000"`
	// CV is the stored resume filename, set by the upload middleware.
	CV *string `form:"-" json:"-"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,application_status"`
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	ListByJobID(ctx context.Context, jobID int64) ([]ApplicationWithApplicant, error)
	ListAll(ctx context.Context) ([]ApplicationWithApplicant, error)
	ListByEmployerID(ctx context.Context, employerID int64) ([]ApplicationWithApplicant, error)
	ListByUserID(ctx context.Context, userID int64) ([]ApplicationWithApplicant, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*Application, error)
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, actor *Actor, jobID int64, req ApplyRequest) (*Application, error)
	ListByJob(ctx context.Context, jobID int64) ([]ApplicationWithApplicant, error)
	ListForActor(ctx context.Context, actor *Actor) ([]ApplicationWithApplicant, error)
	UpdateStatus(ctx context.Context, actor *Actor, applicationID int64, req UpdateApplicationStatusRequest) (*Application, error)
	// ExportForActor writes the actor's role-scoped list as an xlsx workbook.
	ExportForActor(ctx context.Context, actor *Actor, w io.Writer) error
}
