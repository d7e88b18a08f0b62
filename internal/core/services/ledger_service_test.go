package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/craneworks/craneops_backend/internal/apperrors"
	"github.com/craneworks/craneops_backend/internal/core/domain"
	portsrepo "github.com/craneworks/craneops_backend/internal/core/ports/repositories"
	"github.com/craneworks/craneops_backend/internal/core/services"
	"github.com/craneworks/craneops_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntries(ctx context.Context, companyID string, direction domain.LedgerDirection, from, to *time.Time) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, companyID, direction, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListAutoEntries(ctx context.Context, companyID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockLedgerRepository) ApplyAutoDiff(ctx context.Context, companyID string, removeKeys []string, insert []domain.LedgerEntry) error {
	args := m.Called(ctx, companyID, removeKeys, insert)
	return args.Error(0)
}

func (m *MockLedgerRepository) Summarize(ctx context.Context, companyID string, from, to *time.Time) (*portsrepo.LedgerSummary, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.LedgerSummary), args.Error(1)
}

// --- Mock JobRepository ---
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) SaveJob(ctx context.Context, job domain.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) FindJobByID(ctx context.Context, jobID string) (*domain.Job, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepository) ListJobs(ctx context.Context, companyID string, filter portsrepo.JobFilter) ([]domain.Job, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}

func (m *MockJobRepository) ListOutsourcedJobs(ctx context.Context, companyID string) ([]domain.Job, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}

func (m *MockJobRepository) UpdateJob(ctx context.Context, job domain.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) UpdateJobsStatus(ctx context.Context, companyID string, jobIDs []string, status domain.JobStatus, updaterUserID string) (int64, error) {
	args := m.Called(ctx, companyID, jobIDs, status, updaterUserID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJobRepository) DeleteJob(ctx context.Context, jobID string) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}

func outsourcedJob(id, partner string, outsourceType domain.OutsourceType) domain.Job {
	return domain.Job{
		JobID:            id,
		CompanyID:        "company-1",
		JobDate:          time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		WorkerName:       "김기사",
		MachineNumber:    "12가3456",
		AmountMan:        150,
		OutsourceType:    outsourceType,
		OutsourcePartner: partner,
	}
}

func autoEntryForJob(j domain.Job) domain.LedgerEntry {
	entry := domain.EntryFromOutsourcedJob(&j)
	entry.EntryID = "entry-" + j.JobID
	return entry
}

func TestSyncOutsourcingInsertsMissingEntries(t *testing.T) {
	ctx := context.Background()
	ledgerRepo := new(MockLedgerRepository)
	jobRepo := new(MockJobRepository)
	svc := services.NewLedgerService(ledgerRepo, jobRepo)

	job := outsourcedJob("job-1", "대한크레인", domain.OutsourceReceived)
	jobRepo.On("ListOutsourcedJobs", ctx, "company-1").Return([]domain.Job{job}, nil)
	ledgerRepo.On("ListAutoEntries", ctx, "company-1").Return([]domain.LedgerEntry{}, nil)
	ledgerRepo.On("ApplyAutoDiff", ctx, "company-1", []string{}, mock.MatchedBy(func(insert []domain.LedgerEntry) bool {
		return len(insert) == 1 &&
			insert[0].AutoKey == job.OutsourceAutoKey() &&
			insert[0].CreatedBy == "system" &&
			insert[0].EntryID != ""
	})).Return(nil)

	report, err := svc.SyncOutsourcing(ctx, "company-1")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Added)
	assert.Equal(t, 0, report.Removed)
	ledgerRepo.AssertExpectations(t)
}

func TestSyncOutsourcingRemovesStaleEntries(t *testing.T) {
	ctx := context.Background()
	ledgerRepo := new(MockLedgerRepository)
	jobRepo := new(MockJobRepository)
	svc := services.NewLedgerService(ledgerRepo, jobRepo)

	stale := autoEntryForJob(outsourcedJob("job-gone", "사라진업체", domain.OutsourceGiven))
	jobRepo.On("ListOutsourcedJobs", ctx, "company-1").Return([]domain.Job{}, nil)
	ledgerRepo.On("ListAutoEntries", ctx, "company-1").Return([]domain.LedgerEntry{stale}, nil)
	ledgerRepo.On("ApplyAutoDiff", ctx, "company-1", []string{stale.AutoKey}, []domain.LedgerEntry{}).Return(nil)

	report, err := svc.SyncOutsourcing(ctx, "company-1")
	require.NoError(t, err)
	assert.Equal(t, 0, report.Added)
	assert.Equal(t, 1, report.Removed)
	ledgerRepo.AssertExpectations(t)
}

func TestSyncOutsourcingIsIdempotent(t *testing.T) {
	ctx := context.Background()
	ledgerRepo := new(MockLedgerRepository)
	jobRepo := new(MockJobRepository)
	svc := services.NewLedgerService(ledgerRepo, jobRepo)

	job := outsourcedJob("job-1", "대한크레인", domain.OutsourceReceived)
	jobRepo.On("ListOutsourcedJobs", ctx, "company-1").Return([]domain.Job{job}, nil)
	ledgerRepo.On("ListAutoEntries", ctx, "company-1").Return([]domain.LedgerEntry{autoEntryForJob(job)}, nil)
	ledgerRepo.On("ApplyAutoDiff", ctx, "company-1", []string{}, []domain.LedgerEntry{}).Return(nil)

	report, err := svc.SyncOutsourcing(ctx, "company-1")
	require.NoError(t, err)
	assert.Equal(t, 0, report.Added)
	assert.Equal(t, 0, report.Removed)
	ledgerRepo.AssertExpectations(t)
}

func TestSyncOutsourcingCollapsesDuplicateKeys(t *testing.T) {
	ctx := context.Background()
	ledgerRepo := new(MockLedgerRepository)
	jobRepo := new(MockJobRepository)
	svc := services.NewLedgerService(ledgerRepo, jobRepo)

	// Two jobs with identical derived fields hash to the same key. One entry
	// must come out, not two.
	first := outsourcedJob("job-1", "대한크레인", domain.OutsourceReceived)
	second := outsourcedJob("job-2", "대한크레인", domain.OutsourceReceived)
	jobRepo.On("ListOutsourcedJobs", ctx, "company-1").Return([]domain.Job{first, second}, nil)
	ledgerRepo.On("ListAutoEntries", ctx, "company-1").Return([]domain.LedgerEntry{}, nil)
	ledgerRepo.On("ApplyAutoDiff", ctx, "company-1", []string{}, mock.MatchedBy(func(insert []domain.LedgerEntry) bool {
		return len(insert) == 1
	})).Return(nil)

	report, err := svc.SyncOutsourcing(ctx, "company-1")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Added)
	ledgerRepo.AssertExpectations(t)
}

func TestDeleteEntryAlsoDeletesOriginatingJob(t *testing.T) {
	ctx := context.Background()
	ledgerRepo := new(MockLedgerRepository)
	jobRepo := new(MockJobRepository)
	svc := services.NewLedgerService(ledgerRepo, jobRepo)

	job := outsourcedJob("job-1", "대한크레인", domain.OutsourceReceived)
	entry := autoEntryForJob(job)
	ledgerRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil)
	jobRepo.On("DeleteJob", ctx, "job-1").Return(nil)
	ledgerRepo.On("DeleteEntry", ctx, entry.EntryID).Return(nil)

	err := svc.DeleteEntry(ctx, "company-1", entry.EntryID, "user-1")
	require.NoError(t, err)
	jobRepo.AssertCalled(t, "DeleteJob", ctx, "job-1")
	ledgerRepo.AssertExpectations(t)
}

func TestDeleteEntryOfAnotherCompanyIsNotFound(t *testing.T) {
	ctx := context.Background()
	ledgerRepo := new(MockLedgerRepository)
	jobRepo := new(MockJobRepository)
	svc := services.NewLedgerService(ledgerRepo, jobRepo)

	entry := autoEntryForJob(outsourcedJob("job-1", "대한크레인", domain.OutsourceReceived))
	ledgerRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil)

	err := svc.DeleteEntry(ctx, "company-2", entry.EntryID, "intruder")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	ledgerRepo.AssertNotCalled(t, "DeleteEntry", mock.Anything, mock.Anything)
	jobRepo.AssertNotCalled(t, "DeleteJob", mock.Anything, mock.Anything)
}

func TestDeleteEntryWithoutJobLinkMatchesByAutoKey(t *testing.T) {
	ctx := context.Background()
	ledgerRepo := new(MockLedgerRepository)
	jobRepo := new(MockJobRepository)
	svc := services.NewLedgerService(ledgerRepo, jobRepo)

	job := outsourcedJob("job-1", "대한크레인", domain.OutsourceReceived)
	entry := autoEntryForJob(job)
	entry.JobID = nil
	ledgerRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil)
	jobRepo.On("ListOutsourcedJobs", ctx, "company-1").Return([]domain.Job{job}, nil)
	jobRepo.On("DeleteJob", ctx, "job-1").Return(nil)
	ledgerRepo.On("DeleteEntry", ctx, entry.EntryID).Return(nil)

	err := svc.DeleteEntry(ctx, "company-1", entry.EntryID, "user-1")
	require.NoError(t, err)
	jobRepo.AssertCalled(t, "DeleteJob", ctx, "job-1")
}

func TestDeleteEntryFallsBackToStableFields(t *testing.T) {
	ctx := context.Background()
	ledgerRepo := new(MockLedgerRepository)
	jobRepo := new(MockJobRepository)
	svc := services.NewLedgerService(ledgerRepo, jobRepo)

	// The entry was derived before the job's worker was corrected, so the
	// recomputed key no longer matches. Date, partner, direction and amount
	// still identify the job.
	job := outsourcedJob("job-1", "대한크레인", domain.OutsourceReceived)
	entry := autoEntryForJob(job)
	entry.JobID = nil
	job.WorkerName = "박기사"
	require.NotEqual(t, entry.AutoKey, job.OutsourceAutoKey())

	ledgerRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil)
	jobRepo.On("ListOutsourcedJobs", ctx, "company-1").Return([]domain.Job{job}, nil)
	jobRepo.On("DeleteJob", ctx, "job-1").Return(nil)
	ledgerRepo.On("DeleteEntry", ctx, entry.EntryID).Return(nil)

	err := svc.DeleteEntry(ctx, "company-1", entry.EntryID, "user-1")
	require.NoError(t, err)
	jobRepo.AssertCalled(t, "DeleteJob", ctx, "job-1")
}

func TestDeleteManualEntryLeavesJobsAlone(t *testing.T) {
	ctx := context.Background()
	ledgerRepo := new(MockLedgerRepository)
	jobRepo := new(MockJobRepository)
	svc := services.NewLedgerService(ledgerRepo, jobRepo)

	entry := domain.LedgerEntry{
		EntryID:   "entry-manual",
		CompanyID: "company-1",
		Direction: domain.LedgerExpense,
		Amount:    decimal.NewFromInt(30000),
	}
	ledgerRepo.On("FindEntryByID", ctx, "entry-manual").Return(&entry, nil)
	ledgerRepo.On("DeleteEntry", ctx, "entry-manual").Return(nil)

	err := svc.DeleteEntry(ctx, "company-1", "entry-manual", "user-1")
	require.NoError(t, err)
	jobRepo.AssertNotCalled(t, "DeleteJob", mock.Anything, mock.Anything)
}

func TestCreateManualEntry(t *testing.T) {
	ctx := context.Background()
	ledgerRepo := new(MockLedgerRepository)
	jobRepo := new(MockJobRepository)
	svc := services.NewLedgerService(ledgerRepo, jobRepo)

	ledgerRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.Direction == domain.LedgerExpense &&
			e.Category == "유류비" &&
			e.CreatedBy == "user-1" &&
			e.Source == "" && e.AutoKey == ""
	})).Return(nil)

	entry, err := svc.CreateManualEntry(ctx, "company-1", dto.CreateLedgerEntryRequest{
		Direction: domain.LedgerExpense,
		EntryDate: "2025-03-14",
		Category:  "유류비",
		Amount:    decimal.NewFromInt(80000),
	}, "user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, entry.EntryID)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), entry.EntryDate)
}

func TestCreateManualEntryRejectsNegativeAmount(t *testing.T) {
	ctx := context.Background()
	svc := services.NewLedgerService(new(MockLedgerRepository), new(MockJobRepository))

	_, err := svc.CreateManualEntry(ctx, "company-1", dto.CreateLedgerEntryRequest{
		Direction: domain.LedgerIncome,
		EntryDate: "2025-03-14",
		Category:  "기타",
		Amount:    decimal.NewFromInt(-100),
	}, "user-1")
	assert.Error(t, err)
}
