package domain

import (
	"context"
	"time"
)

const (
	EmploymentFullTime   = "full-time"
	EmploymentPartTime   = "part-time"
	EmploymentContract   = "contract"
	EmploymentInternship = "internship"
)

type Job struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Location       string    `json:"location"`
	SalaryRange    *string   `json:"salaryRange"`
	EmploymentType string    `json:"employmentType"`
	Requirements   *string   `json:"requirements"`
	EmployerID     int64     `json:"employerId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// JobWithEmployer extends Job with the owning employer's summary
type JobWithEmployer struct {
	Job
	Employer UserSummary `json:"employer"`
}

type CreateJobRequest struct {
	Title          string  `json:"title" validate:"required,max=255"`
	Description    string  `json:"description" validate:"required"`
	Location       string  `json:"location" validate:"required,max=255"`
	SalaryRange    *string `json:"salaryRange" validate:"omitempty,max=100"`
	EmploymentType string  `json:"employmentType" validate:"required,employment_type"`
	Requirements   *string `json:"requirements"`
}

// UpdateJobRequest merges only the fields present in the request body.
type UpdateJobRequest struct {
	Title          *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description    *string `json:"description" validate:"omitempty,min=1"`
	Location       *string `json:"location" validate:"omitempty,min=1,max=255"`
	SalaryRange    *string `json:"salaryRange" validate:"omitempty,max=100"`
	EmploymentType *string `json:"employmentType" validate:"omitempty,employment_type"`
	Requirements   *string `json:"requirements"`
}

// Apply copies the present fields onto job.
func (r UpdateJobRequest) Apply(job *Job) {
	if r.Title != nil {
		job.Title = *r.Title
	}
	if r.Description != nil {
		job.Description = *r.Description
	}
	if r.Location != nil {
		job.Location = *r.Location
	}
	if r.SalaryRange != nil {
		job.SalaryRange = r.SalaryRange
	}
	if r.EmploymentType != nil {
		job.EmploymentType = *r.EmploymentType
	}
	if r.Requirements != nil {
		job.Requirements = r.Requirements
	}
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	GetByIDWithEmployer(ctx context.Context, id int64) (*JobWithEmployer, error)
	ListWithEmployer(ctx context.Context) ([]JobWithEmployer, error)
	Update(ctx context.Context, job *Job) error
	Delete(ctx context.Context, id int64) error
}

type JobUsecase interface {
	ListJobs(ctx context.Context) ([]JobWithEmployer, error)
	GetJob(ctx context.Context, id int64) (*JobWithEmployer, error)
	CreateJob(ctx context.Context, actor *Actor, req CreateJobRequest) (*Job, error)
	UpdateJob(ctx context.Context, actor *Actor, id int64, req UpdateJobRequest) (*JobWithEmployer, error)
	DeleteJob(ctx context.Context, actor *Actor, id int64) error
}
