package services

import (
	"context"

	"github.com/craneworks/craneops_backend/internal/core/domain"
	"github.com/craneworks/craneops_backend/internal/dto"
)

// JobListResult carries one page of jobs plus the cursor for the next page.
type JobListResult struct {
	Jobs      []domain.Job
	NextToken string
}

// JobSvcFacade manages job records. Payment status is always recomputed from
// the amounts; callers never set it directly. By-ID mutations take the
// caller's company and answer ErrNotFound for jobs of other companies.
type JobSvcFacade interface {
	CreateJob(ctx context.Context, companyID string, req dto.CreateJobRequest, creatorUserID string) (*domain.Job, error)
	GetJobByID(ctx context.Context, jobID string) (*domain.Job, error)
	ListJobs(ctx context.Context, companyID string, params dto.ListJobsParams) (*JobListResult, error)
	UpdateJob(ctx context.Context, companyID string, jobID string, req dto.UpdateJobRequest, requestingUserID string) (*domain.Job, error)
	DeleteJob(ctx context.Context, companyID string, jobID string, requestingUserID string) error

	// RecordPayment sets the paid amount and recomputes the payment status.
	RecordPayment(ctx context.Context, companyID string, jobID string, paidAmountMan int64, requestingUserID string) (*domain.Job, error)

	// BulkComplete marks the given jobs 완료 and returns how many changed.
	BulkComplete(ctx context.Context, companyID string, jobIDs []string, requestingUserID string) (int64, error)

	// Calendar aggregates a month's jobs per day.
	Calendar(ctx context.Context, companyID string, year int, month int, workerID string) ([]dto.CalendarDay, error)
}
