package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/craneworks/craneops_backend/internal/apperrors"
	"github.com/craneworks/craneops_backend/internal/core/domain"
	portsrepo "github.com/craneworks/craneops_backend/internal/core/ports/repositories"
	portssvc "github.com/craneworks/craneops_backend/internal/core/ports/services"
	"github.com/craneworks/craneops_backend/internal/dto"
	"github.com/craneworks/craneops_backend/internal/utils/pagination"
	"github.com/google/uuid"
)

const defaultJobPageSize = 50

type jobService struct {
	BaseService
	jobRepo     portsrepo.JobRepository
	machineRepo portsrepo.MachineRepository
	ledgerSvc   portssvc.LedgerSvcFacade
}

// NewJobService creates the dispatch record service. The ledger service is
// invoked after every change to an outsourced job so the ledgers stay in step.
func NewJobService(jobRepo portsrepo.JobRepository, machineRepo portsrepo.MachineRepository, ledgerSvc portssvc.LedgerSvcFacade) portssvc.JobSvcFacade {
	return &jobService{jobRepo: jobRepo, machineRepo: machineRepo, ledgerSvc: ledgerSvc}
}

var _ portssvc.JobSvcFacade = (*jobService)(nil)

// syncLedgers reconciles the outsourcing ledgers, logging instead of failing
// the job operation when the sync goes wrong. The next sync catches up.
func (s *jobService) syncLedgers(ctx context.Context, companyID string) {
	if _, err := s.ledgerSvc.SyncOutsourcing(ctx, companyID); err != nil {
		s.LogError(ctx, err, "failed to sync outsourcing ledgers after job change",
			slog.String("company_id", companyID))
	}
}

func (s *jobService) CreateJob(ctx context.Context, companyID string, req dto.CreateJobRequest, creatorUserID string) (*domain.Job, error) {
	jobDate, err := time.Parse(dto.DateOnly, req.JobDate)
	if err != nil {
		return nil, fmt.Errorf("invalid job date: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	job := &domain.Job{
		JobID:            uuid.NewString(),
		CompanyID:        companyID,
		JobDate:          jobDate,
		JobTime:          req.JobTime,
		WorkerName:       req.WorkerName,
		MachineName:      req.MachineName,
		MachineNumber:    req.MachineNumber,
		MachineAlias:     req.MachineAlias,
		ClientOwner:      req.ClientOwner,
		ClientTenant:     req.ClientTenant,
		Location:         req.Location,
		Note:             req.Note,
		Status:           domain.JobInProgress,
		DurationType:     req.DurationType,
		DurationHours:    req.DurationHours,
		AmountMan:        req.AmountMan,
		PaidAmountMan:    req.PaidAmountMan,
		OutsourceType:    req.OutsourceType,
		OutsourcePartner: req.OutsourcePartner,
		IsSpare:          req.IsSpare,
		ShareAmount:      req.ShareAmount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if req.WorkerID != "" {
		workerID := req.WorkerID
		job.WorkerID = &workerID
	}
	if job.OutsourceType == "" {
		job.OutsourceType = domain.OutsourceNone
	}

	// Machine details may come by reference instead of inline.
	if req.MachineID != "" {
		machine, err := s.machineRepo.FindMachineByID(ctx, req.MachineID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve machine %s: %w", req.MachineID, err)
		}
		if job.MachineName == "" {
			job.MachineName = machine.Name
		}
		if job.MachineNumber == "" {
			job.MachineNumber = machine.PlateNumber
		}
		if job.MachineAlias == "" {
			job.MachineAlias = machine.Alias
		}
	}

	job.RecomputePaymentStatus()

	if err := s.jobRepo.SaveJob(ctx, *job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	if job.IsOutsourced() {
		s.syncLedgers(ctx, companyID)
	}
	return job, nil
}

func (s *jobService) GetJobByID(ctx context.Context, jobID string) (*domain.Job, error) {
	job, err := s.jobRepo.FindJobByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// findCompanyJob loads a job and hides it behind ErrNotFound when it belongs
// to another company.
func (s *jobService) findCompanyJob(ctx context.Context, companyID, jobID string) (*domain.Job, error) {
	job, err := s.jobRepo.FindJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CompanyID != companyID {
		return nil, fmt.Errorf("job %s: %w", jobID, apperrors.ErrNotFound)
	}
	return job, nil
}

// filterFromParams maps the bound query parameters onto the repository filter.
func filterFromParams(params dto.ListJobsParams) (portsrepo.JobFilter, error) {
	filter := portsrepo.JobFilter{
		MachineNumber: params.MachineNumber,
		Client:        params.Client,
		Status:        domain.JobStatus(params.Status),
		PaymentStatus: domain.PaymentStatus(params.PaymentStatus),
		OutsourceType: domain.OutsourceType(params.OutsourceType),
		LocationQuery: params.Query,
		Limit:         params.Limit,
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultJobPageSize
	}
	if params.From != "" {
		from, err := time.Parse(dto.DateOnly, params.From)
		if err != nil {
			return filter, fmt.Errorf("invalid from date: %w", apperrors.ErrValidation)
		}
		filter.From = &from
	}
	if params.To != "" {
		to, err := time.Parse(dto.DateOnly, params.To)
		if err != nil {
			return filter, fmt.Errorf("invalid to date: %w", apperrors.ErrValidation)
		}
		filter.To = &to
	}
	if params.Worker != "" {
		// The worker filter accepts either an account ID or a display name,
		// since jobs may predate the worker's account.
		if _, err := uuid.Parse(params.Worker); err == nil {
			filter.WorkerID = params.Worker
		} else {
			filter.WorkerName = params.Worker
		}
	}
	if params.PageToken != "" {
		afterDate, afterCreated, err := pagination.DecodeToken(params.PageToken)
		if err != nil {
			return filter, fmt.Errorf("invalid page token: %w", apperrors.ErrValidation)
		}
		filter.AfterDate = &afterDate
		filter.AfterCreatedAt = &afterCreated
	}
	return filter, nil
}

func (s *jobService) ListJobs(ctx context.Context, companyID string, params dto.ListJobsParams) (*portssvc.JobListResult, error) {
	filter, err := filterFromParams(params)
	if err != nil {
		return nil, err
	}

	// Fetch one extra row to learn whether another page exists.
	pageSize := filter.Limit
	filter.Limit = pageSize + 1

	jobs, err := s.jobRepo.ListJobs(ctx, companyID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	result := &portssvc.JobListResult{Jobs: jobs}
	if len(jobs) > pageSize {
		result.Jobs = jobs[:pageSize]
		last := result.Jobs[pageSize-1]
		result.NextToken = pagination.EncodeToken(last.JobDate, last.CreatedAt)
	}
	return result, nil
}

func (s *jobService) UpdateJob(ctx context.Context, companyID string, jobID string, req dto.UpdateJobRequest, requestingUserID string) (*domain.Job, error) {
	job, err := s.findCompanyJob(ctx, companyID, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to find job for update: %w", err)
	}
	wasOutsourced := job.IsOutsourced()

	if req.JobDate != nil {
		jobDate, err := time.Parse(dto.DateOnly, *req.JobDate)
		if err != nil {
			return nil, fmt.Errorf("invalid job date: %w", apperrors.ErrValidation)
		}
		job.JobDate = jobDate
	}
	if req.JobTime != nil {
		job.JobTime = *req.JobTime
	}
	if req.WorkerID != nil {
		if *req.WorkerID == "" {
			job.WorkerID = nil
		} else {
			job.WorkerID = req.WorkerID
		}
	}
	if req.WorkerName != nil {
		job.WorkerName = *req.WorkerName
	}
	if req.MachineName != nil {
		job.MachineName = *req.MachineName
	}
	if req.MachineNumber != nil {
		job.MachineNumber = *req.MachineNumber
	}
	if req.MachineAlias != nil {
		job.MachineAlias = *req.MachineAlias
	}
	if req.ClientOwner != nil {
		job.ClientOwner = *req.ClientOwner
	}
	if req.ClientTenant != nil {
		job.ClientTenant = *req.ClientTenant
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.Note != nil {
		job.Note = *req.Note
	}
	if req.Status != nil {
		job.Status = *req.Status
	}
	if req.DurationType != nil {
		job.DurationType = *req.DurationType
	}
	if req.DurationHours != nil {
		job.DurationHours = *req.DurationHours
	}
	if req.AmountMan != nil {
		job.AmountMan = *req.AmountMan
	}
	if req.PaidAmountMan != nil {
		job.PaidAmountMan = *req.PaidAmountMan
	}
	if req.OutsourceType != nil {
		job.OutsourceType = *req.OutsourceType
	}
	if req.OutsourcePartner != nil {
		job.OutsourcePartner = *req.OutsourcePartner
	}
	if req.IsSpare != nil {
		job.IsSpare = *req.IsSpare
	}
	if req.ShareAmount != nil {
		job.ShareAmount = *req.ShareAmount
	}

	job.RecomputePaymentStatus()
	job.LastUpdatedAt = time.Now()
	job.LastUpdatedBy = requestingUserID

	if err := s.jobRepo.UpdateJob(ctx, *job); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	if wasOutsourced || job.IsOutsourced() {
		s.syncLedgers(ctx, job.CompanyID)
	}
	return job, nil
}

func (s *jobService) DeleteJob(ctx context.Context, companyID string, jobID string, requestingUserID string) error {
	job, err := s.findCompanyJob(ctx, companyID, jobID)
	if err != nil {
		return fmt.Errorf("failed to find job for deletion: %w", err)
	}
	if err := s.jobRepo.DeleteJob(ctx, jobID); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	s.LogInfo(ctx, "job deleted",
		slog.String("job_id", jobID), slog.String("deleted_by", requestingUserID))
	if job.IsOutsourced() {
		s.syncLedgers(ctx, job.CompanyID)
	}
	return nil
}

func (s *jobService) RecordPayment(ctx context.Context, companyID string, jobID string, paidAmountMan int64, requestingUserID string) (*domain.Job, error) {
	if paidAmountMan < 0 {
		return nil, fmt.Errorf("paid amount must not be negative: %w", apperrors.ErrValidation)
	}
	job, err := s.findCompanyJob(ctx, companyID, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to find job for payment: %w", err)
	}
	job.PaidAmountMan = paidAmountMan
	job.RecomputePaymentStatus()
	job.LastUpdatedAt = time.Now()
	job.LastUpdatedBy = requestingUserID
	if err := s.jobRepo.UpdateJob(ctx, *job); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	return job, nil
}

func (s *jobService) BulkComplete(ctx context.Context, companyID string, jobIDs []string, requestingUserID string) (int64, error) {
	updated, err := s.jobRepo.UpdateJobsStatus(ctx, companyID, jobIDs, domain.JobCompleted, requestingUserID)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk complete jobs: %w", err)
	}
	s.LogInfo(ctx, "jobs bulk completed",
		slog.String("company_id", companyID), slog.Int64("updated", updated))
	return updated, nil
}

func (s *jobService) Calendar(ctx context.Context, companyID string, year int, month int, workerID string) ([]dto.CalendarDay, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be 1..12: %w", apperrors.ErrValidation)
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	filter := portsrepo.JobFilter{From: &from, To: &to, WorkerID: workerID}
	jobs, err := s.jobRepo.ListJobs(ctx, companyID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs for calendar: %w", err)
	}

	byDay := map[string]*dto.CalendarDay{}
	for i := range jobs {
		day := jobs[i].JobDate.Format(dto.DateOnly)
		agg, ok := byDay[day]
		if !ok {
			agg = &dto.CalendarDay{Date: day}
			byDay[day] = agg
		}
		agg.JobCount++
		if jobs[i].Status == domain.JobCompleted {
			agg.CompletedJobs++
		}
		agg.AmountMan += jobs[i].AmountMan
	}

	days := make([]dto.CalendarDay, 0, len(byDay))
	for _, agg := range byDay {
		days = append(days, *agg)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days, nil
}
