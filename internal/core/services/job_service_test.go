package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/craneworks/craneops_backend/internal/apperrors"
	"github.com/craneworks/craneops_backend/internal/core/domain"
	portsrepo "github.com/craneworks/craneops_backend/internal/core/ports/repositories"
	portssvc "github.com/craneworks/craneops_backend/internal/core/ports/services"
	"github.com/craneworks/craneops_backend/internal/core/services"
	"github.com/craneworks/craneops_backend/internal/dto"
	"github.com/craneworks/craneops_backend/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock MachineRepository ---
type MockMachineRepository struct {
	mock.Mock
}

func (m *MockMachineRepository) SaveMachine(ctx context.Context, machine domain.Machine) error {
	args := m.Called(ctx, machine)
	return args.Error(0)
}

func (m *MockMachineRepository) FindMachineByID(ctx context.Context, machineID string) (*domain.Machine, error) {
	args := m.Called(ctx, machineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Machine), args.Error(1)
}

func (m *MockMachineRepository) FindMachineByPlate(ctx context.Context, companyID string, plateNumber string) (*domain.Machine, error) {
	args := m.Called(ctx, companyID, plateNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Machine), args.Error(1)
}

func (m *MockMachineRepository) ListMachinesByCompany(ctx context.Context, companyID string) ([]domain.Machine, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Machine), args.Error(1)
}

func (m *MockMachineRepository) UpdateMachine(ctx context.Context, machine domain.Machine) error {
	args := m.Called(ctx, machine)
	return args.Error(0)
}

func (m *MockMachineRepository) MarkMachineDeleted(ctx context.Context, machineID string, deletedAt time.Time, deleterUserID string) error {
	args := m.Called(ctx, machineID, deletedAt, deleterUserID)
	return args.Error(0)
}

// --- Mock LedgerSvcFacade ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) ListEntries(ctx context.Context, companyID string, direction domain.LedgerDirection, from, to *time.Time) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, companyID, direction, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) CreateManualEntry(ctx context.Context, companyID string, req dto.CreateLedgerEntryRequest, creatorUserID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, companyID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) DeleteEntry(ctx context.Context, companyID string, entryID string, requestingUserID string) error {
	args := m.Called(ctx, companyID, entryID, requestingUserID)
	return args.Error(0)
}

func (m *MockLedgerService) SyncOutsourcing(ctx context.Context, companyID string) (*portssvc.SyncReport, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.SyncReport), args.Error(1)
}

func newJobServiceForTest() (portssvc.JobSvcFacade, *MockJobRepository, *MockMachineRepository, *MockLedgerService) {
	jobRepo := new(MockJobRepository)
	machineRepo := new(MockMachineRepository)
	ledgerSvc := new(MockLedgerService)
	return services.NewJobService(jobRepo, machineRepo, ledgerSvc), jobRepo, machineRepo, ledgerSvc
}

func TestCreateJobDefaultsAndDerivedStatus(t *testing.T) {
	ctx := context.Background()
	svc, jobRepo, _, _ := newJobServiceForTest()

	jobRepo.On("SaveJob", ctx, mock.MatchedBy(func(j domain.Job) bool {
		return j.Status == domain.JobInProgress &&
			j.OutsourceType == domain.OutsourceNone &&
			j.PaymentStatus == domain.PaymentUnpaid &&
			j.CreatedBy == "user-1"
	})).Return(nil)

	job, err := svc.CreateJob(ctx, "company-1", dto.CreateJobRequest{
		JobDate:    "2025-03-14",
		WorkerName: "김기사",
		AmountMan:  150,
	}, "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentUnpaid, job.PaymentStatus)
	assert.NotEmpty(t, job.JobID)
}

func TestCreateJobResolvesMachineByID(t *testing.T) {
	ctx := context.Background()
	svc, jobRepo, machineRepo, _ := newJobServiceForTest()

	machine := &domain.Machine{
		MachineID:   "machine-1",
		Name:        "25톤 카고크레인",
		PlateNumber: "12가3456",
		Alias:       "1호차",
	}
	machineRepo.On("FindMachineByID", ctx, "machine-1").Return(machine, nil)
	jobRepo.On("SaveJob", ctx, mock.MatchedBy(func(j domain.Job) bool {
		return j.MachineName == "25톤 카고크레인" &&
			j.MachineNumber == "12가3456" &&
			j.MachineAlias == "1호차"
	})).Return(nil)

	_, err := svc.CreateJob(ctx, "company-1", dto.CreateJobRequest{
		JobDate:   "2025-03-14",
		MachineID: "machine-1",
	}, "user-1")
	require.NoError(t, err)
	machineRepo.AssertExpectations(t)
}

func TestCreateJobTriggersLedgerSyncWhenOutsourced(t *testing.T) {
	ctx := context.Background()
	svc, jobRepo, _, ledgerSvc := newJobServiceForTest()

	jobRepo.On("SaveJob", ctx, mock.Anything).Return(nil)
	ledgerSvc.On("SyncOutsourcing", ctx, "company-1").Return(&portssvc.SyncReport{Added: 1}, nil)

	_, err := svc.CreateJob(ctx, "company-1", dto.CreateJobRequest{
		JobDate:          "2025-03-14",
		WorkerName:       "김기사",
		OutsourceType:    domain.OutsourceGiven,
		OutsourcePartner: "대한크레인",
	}, "user-1")
	require.NoError(t, err)
	ledgerSvc.AssertCalled(t, "SyncOutsourcing", ctx, "company-1")
}

func TestCreateJobSkipsSyncWithoutOutsourcing(t *testing.T) {
	ctx := context.Background()
	svc, jobRepo, _, ledgerSvc := newJobServiceForTest()

	jobRepo.On("SaveJob", ctx, mock.Anything).Return(nil)

	_, err := svc.CreateJob(ctx, "company-1", dto.CreateJobRequest{
		JobDate:    "2025-03-14",
		WorkerName: "김기사",
	}, "user-1")
	require.NoError(t, err)
	ledgerSvc.AssertNotCalled(t, "SyncOutsourcing", mock.Anything, mock.Anything)
}

func TestListJobsPaginatesWithCursor(t *testing.T) {
	ctx := context.Background()
	svc, jobRepo, _, _ := newJobServiceForTest()

	// Three rows back for a page size of two means another page exists.
	jobs := []domain.Job{
		{JobID: "job-3", JobDate: time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)},
		{JobID: "job-2", JobDate: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)},
		{JobID: "job-1", JobDate: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)},
	}
	jobRepo.On("ListJobs", ctx, "company-1", mock.MatchedBy(func(f portsrepo.JobFilter) bool {
		return f.Limit == 3
	})).Return(jobs, nil)

	result, err := svc.ListJobs(ctx, "company-1", dto.ListJobsParams{Limit: 2})
	require.NoError(t, err)
	require.Len(t, result.Jobs, 2)
	require.NotEmpty(t, result.NextToken)

	gotDate, _, err := pagination.DecodeToken(result.NextToken)
	require.NoError(t, err)
	assert.True(t, jobs[1].JobDate.Equal(gotDate))
}

func TestListJobsLastPageHasNoToken(t *testing.T) {
	ctx := context.Background()
	svc, jobRepo, _, _ := newJobServiceForTest()

	jobRepo.On("ListJobs", ctx, "company-1", mock.Anything).Return([]domain.Job{
		{JobID: "job-1", JobDate: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)},
	}, nil)

	result, err := svc.ListJobs(ctx, "company-1", dto.ListJobsParams{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, result.Jobs, 1)
	assert.Empty(t, result.NextToken)
}

func TestListJobsWorkerFilterDisambiguation(t *testing.T) {
	ctx := context.Background()
	svc, jobRepo, _, _ := newJobServiceForTest()

	workerID := uuid.NewString()
	jobRepo.On("ListJobs", ctx, "company-1", mock.MatchedBy(func(f portsrepo.JobFilter) bool {
		return f.WorkerID == workerID && f.WorkerName == ""
	})).Return([]domain.Job{}, nil).Once()

	_, err := svc.ListJobs(ctx, "company-1", dto.ListJobsParams{Worker: workerID})
	require.NoError(t, err)

	jobRepo.On("ListJobs", ctx, "company-1", mock.MatchedBy(func(f portsrepo.JobFilter) bool {
		return f.WorkerID == "" && f.WorkerName == "김기사"
	})).Return([]domain.Job{}, nil).Once()

	_, err = svc.ListJobs(ctx, "company-1", dto.ListJobsParams{Worker: "김기사"})
	require.NoError(t, err)
	jobRepo.AssertExpectations(t)
}

func TestUpdateJobSyncsWhenOutsourcingRemoved(t *testing.T) {
	ctx := context.Background()
	svc, jobRepo, _, ledgerSvc := newJobServiceForTest()

	existing := &domain.Job{
		JobID:            "job-1",
		CompanyID:        "company-1",
		JobDate:          time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Status:           domain.JobInProgress,
		OutsourceType:    domain.OutsourceReceived,
		OutsourcePartner: "대한크레인",
	}
	jobRepo.On("FindJobByID", ctx, "job-1").Return(existing, nil)
	jobRepo.On("UpdateJob", ctx, mock.Anything).Return(nil)
	ledgerSvc.On("SyncOutsourcing", ctx, "company-1").Return(&portssvc.SyncReport{Removed: 1}, nil)

	none := domain.OutsourceNone
	_, err := svc.UpdateJob(ctx, "company-1", "job-1", dto.UpdateJobRequest{OutsourceType: &none}, "user-1")
	require.NoError(t, err)
	ledgerSvc.AssertCalled(t, "SyncOutsourcing", ctx, "company-1")
}

func TestUpdateJobOfAnotherCompanyIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc, jobRepo, _, _ := newJobServiceForTest()

	existing := &domain.Job{JobID: "job-1", CompanyID: "company-1"}
	jobRepo.On("FindJobByID", ctx, "job-1").Return(existing, nil)

	note := "탈취시도"
	_, err := svc.UpdateJob(ctx, "company-2", "job-1", dto.UpdateJobRequest{Note: &note}, "intruder")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	jobRepo.AssertNotCalled(t, "UpdateJob", mock.Anything, mock.Anything)
}

func TestDeleteJobOfAnotherCompanyIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc, jobRepo, _, _ := newJobServiceForTest()

	existing := &domain.Job{JobID: "job-1", CompanyID: "company-1"}
	jobRepo.On("FindJobByID", ctx, "job-1").Return(existing, nil)

	err := svc.DeleteJob(ctx, "company-2", "job-1", "intruder")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	jobRepo.AssertNotCalled(t, "DeleteJob", mock.Anything, mock.Anything)
}

func TestRecordPayment(t *testing.T) {
	ctx := context.Background()
	svc, jobRepo, _, _ := newJobServiceForTest()

	existing := &domain.Job{JobID: "job-1", CompanyID: "company-1", AmountMan: 150, PaymentStatus: domain.PaymentUnpaid}
	jobRepo.On("FindJobByID", ctx, "job-1").Return(existing, nil)
	jobRepo.On("UpdateJob", ctx, mock.MatchedBy(func(j domain.Job) bool {
		return j.PaidAmountMan == 150 && j.PaymentStatus == domain.PaymentPaid
	})).Return(nil)

	job, err := svc.RecordPayment(ctx, "company-1", "job-1", 150, "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, job.PaymentStatus)
}

func TestRecordPaymentRejectsNegative(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newJobServiceForTest()

	_, err := svc.RecordPayment(ctx, "company-1", "job-1", -1, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestRecordPaymentOfAnotherCompanyIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc, jobRepo, _, _ := newJobServiceForTest()

	existing := &domain.Job{JobID: "job-1", CompanyID: "company-1", AmountMan: 150}
	jobRepo.On("FindJobByID", ctx, "job-1").Return(existing, nil)

	_, err := svc.RecordPayment(ctx, "company-2", "job-1", 150, "intruder")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	jobRepo.AssertNotCalled(t, "UpdateJob", mock.Anything, mock.Anything)
}

func TestCalendarAggregatesPerDay(t *testing.T) {
	ctx := context.Background()
	svc, jobRepo, _, _ := newJobServiceForTest()

	jobs := []domain.Job{
		{JobDate: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), Status: domain.JobCompleted, AmountMan: 100},
		{JobDate: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), Status: domain.JobInProgress, AmountMan: 50},
		{JobDate: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), Status: domain.JobCompleted, AmountMan: 70},
	}
	jobRepo.On("ListJobs", ctx, "company-1", mock.MatchedBy(func(f portsrepo.JobFilter) bool {
		return f.From != nil && f.To != nil &&
			f.From.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) &&
			f.To.Equal(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC))
	})).Return(jobs, nil)

	days, err := svc.Calendar(ctx, "company-1", 2025, 3, "")
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "2025-03-14", days[0].Date)
	assert.Equal(t, 2, days[0].JobCount)
	assert.Equal(t, 1, days[0].CompletedJobs)
	assert.Equal(t, int64(150), days[0].AmountMan)
	assert.Equal(t, "2025-03-20", days[1].Date)
}

func TestCalendarRejectsBadMonth(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newJobServiceForTest()

	_, err := svc.Calendar(ctx, "company-1", 2025, 13, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
