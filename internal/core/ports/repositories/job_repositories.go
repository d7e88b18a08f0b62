package repositories

import (
	"context"
	"time"

	"github.com/craneworks/craneops_backend/internal/core/domain"
)

// JobFilter narrows job listings. All fields are optional; zero values mean
// "no constraint". AfterDate/AfterCreatedAt form the pagination cursor.
type JobFilter struct {
	From          *time.Time
	To            *time.Time
	WorkerID      string
	WorkerName    string
	MachineNumber string
	Client        string
	Status        domain.JobStatus
	PaymentStatus domain.PaymentStatus
	OutsourceType domain.OutsourceType
	LocationQuery string

	Limit          int
	AfterDate      *time.Time
	AfterCreatedAt *time.Time
}

// JobRepository provides access to job records.
type JobRepository interface {
	SaveJob(ctx context.Context, job domain.Job) error
	FindJobByID(ctx context.Context, jobID string) (*domain.Job, error)
	ListJobs(ctx context.Context, companyID string, filter JobFilter) ([]domain.Job, error)
	ListOutsourcedJobs(ctx context.Context, companyID string) ([]domain.Job, error)
	UpdateJob(ctx context.Context, job domain.Job) error
	UpdateJobsStatus(ctx context.Context, companyID string, jobIDs []string, status domain.JobStatus, updaterUserID string) (int64, error)
	DeleteJob(ctx context.Context, jobID string) error
}
