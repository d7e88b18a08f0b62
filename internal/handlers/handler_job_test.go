package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/craneworks/craneops_backend/internal/apperrors"
	"github.com/craneworks/craneops_backend/internal/core/domain"
	portssvc "github.com/craneworks/craneops_backend/internal/core/ports/services"
	"github.com/craneworks/craneops_backend/internal/dto"
	"github.com/craneworks/craneops_backend/internal/middleware"
	"github.com/craneworks/craneops_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JobService ---
type MockJobService struct {
	mock.Mock
}

func (m *MockJobService) CreateJob(ctx context.Context, companyID string, req dto.CreateJobRequest, creatorUserID string) (*domain.Job, error) {
	args := m.Called(ctx, companyID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobService) GetJobByID(ctx context.Context, jobID string) (*domain.Job, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobService) ListJobs(ctx context.Context, companyID string, params dto.ListJobsParams) (*portssvc.JobListResult, error) {
	args := m.Called(ctx, companyID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.JobListResult), args.Error(1)
}

func (m *MockJobService) UpdateJob(ctx context.Context, companyID string, jobID string, req dto.UpdateJobRequest, requestingUserID string) (*domain.Job, error) {
	args := m.Called(ctx, companyID, jobID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobService) DeleteJob(ctx context.Context, companyID string, jobID string, requestingUserID string) error {
	args := m.Called(ctx, companyID, jobID, requestingUserID)
	return args.Error(0)
}

func (m *MockJobService) RecordPayment(ctx context.Context, companyID string, jobID string, paidAmountMan int64, requestingUserID string) (*domain.Job, error) {
	args := m.Called(ctx, companyID, jobID, paidAmountMan, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobService) BulkComplete(ctx context.Context, companyID string, jobIDs []string, requestingUserID string) (int64, error) {
	args := m.Called(ctx, companyID, jobIDs, requestingUserID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJobService) Calendar(ctx context.Context, companyID string, year int, month int, workerID string) ([]dto.CalendarDay, error) {
	args := m.Called(ctx, companyID, year, month, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.CalendarDay), args.Error(1)
}

var _ portssvc.JobSvcFacade = (*MockJobService)(nil)

// --- Test Suite ---
type JobHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockJobService *MockJobService
	jwtSecret      string
	companyID      string
	userID         string
}

func (suite *JobHandlerTestSuite) generateTestToken(role string) string {
	token, err := utils.GenerateJWT(suite.userID, suite.companyID, role, suite.jwtSecret, time.Hour, "test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *JobHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockJobService = new(MockJobService)
	v1 := suite.router.Group("/api/v1")
	registerJobRoutes(v1, suite.mockJobService)
}

func (suite *JobHandlerTestSuite) serve(method, url, role string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(role))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *JobHandlerTestSuite) TestListJobs() {
	result := &portssvc.JobListResult{
		Jobs: []domain.Job{{
			JobID:      uuid.NewString(),
			CompanyID:  suite.companyID,
			JobDate:    time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
			WorkerName: "김기사",
			Status:     domain.JobInProgress,
		}},
		NextToken: "next-token",
	}
	suite.mockJobService.On("ListJobs", mock.Anything, suite.companyID, mock.MatchedBy(func(p dto.ListJobsParams) bool {
		return p.Limit == 10 && p.Status == string(domain.JobInProgress)
	})).Return(result, nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/jobs?limit=10&status=진행중", "worker", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListJobsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Jobs, 1)
	suite.Equal("김기사", resp.Jobs[0].WorkerName)
	suite.Equal("next-token", resp.NextToken)
	suite.mockJobService.AssertExpectations(suite.T())
}

func (suite *JobHandlerTestSuite) TestGetJobFromAnotherCompanyIsHidden() {
	jobID := uuid.NewString()
	suite.mockJobService.On("GetJobByID", mock.Anything, jobID).Return(&domain.Job{
		JobID:     jobID,
		CompanyID: uuid.NewString(),
	}, nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/jobs/"+jobID, "worker", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *JobHandlerTestSuite) TestWorkerListIsScopedToSelf() {
	// Even an explicit filter for a colleague comes back scoped to the caller.
	otherWorkerID := uuid.NewString()
	suite.mockJobService.On("ListJobs", mock.Anything, suite.companyID, mock.MatchedBy(func(p dto.ListJobsParams) bool {
		return p.Worker == suite.userID
	})).Return(&portssvc.JobListResult{Jobs: []domain.Job{}}, nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/jobs?worker="+otherWorkerID, "worker", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockJobService.AssertExpectations(suite.T())
}

func (suite *JobHandlerTestSuite) TestManagerListKeepsWorkerFilter() {
	otherWorkerID := uuid.NewString()
	suite.mockJobService.On("ListJobs", mock.Anything, suite.companyID, mock.MatchedBy(func(p dto.ListJobsParams) bool {
		return p.Worker == otherWorkerID
	})).Return(&portssvc.JobListResult{Jobs: []domain.Job{}}, nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/jobs?worker="+otherWorkerID, "manager", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockJobService.AssertExpectations(suite.T())
}

func (suite *JobHandlerTestSuite) TestWorkerCannotSeeColleaguesJob() {
	jobID := uuid.NewString()
	colleagueID := uuid.NewString()
	suite.mockJobService.On("GetJobByID", mock.Anything, jobID).Return(&domain.Job{
		JobID:     jobID,
		CompanyID: suite.companyID,
		WorkerID:  &colleagueID,
	}, nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/jobs/"+jobID, "worker", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *JobHandlerTestSuite) TestWorkerSeesOwnJob() {
	jobID := uuid.NewString()
	suite.mockJobService.On("GetJobByID", mock.Anything, jobID).Return(&domain.Job{
		JobID:     jobID,
		CompanyID: suite.companyID,
		WorkerID:  &suite.userID,
	}, nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/jobs/"+jobID, "worker", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *JobHandlerTestSuite) TestWorkerCalendarIsScopedToSelf() {
	suite.mockJobService.On("Calendar", mock.Anything, suite.companyID, 2025, 3, suite.userID).
		Return([]dto.CalendarDay{}, nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/jobs/calendar?year=2025&month=3&worker="+uuid.NewString(), "worker", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockJobService.AssertExpectations(suite.T())
}

func (suite *JobHandlerTestSuite) TestCreateJob() {
	req := dto.CreateJobRequest{
		JobDate:    "2025-03-14",
		WorkerName: "김기사",
		Location:   "서울 강남구",
		AmountMan:  150,
	}
	created := &domain.Job{
		JobID:         uuid.NewString(),
		CompanyID:     suite.companyID,
		JobDate:       time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		WorkerName:    "김기사",
		Status:        domain.JobInProgress,
		AmountMan:     150,
		PaymentStatus: domain.PaymentUnpaid,
	}
	// A worker's own registration is pinned to their account.
	wantReq := req
	wantReq.WorkerID = suite.userID
	suite.mockJobService.On("CreateJob", mock.Anything, suite.companyID, wantReq, suite.userID).Return(created, nil).Once()

	w := suite.serve(http.MethodPost, "/api/v1/jobs", "worker", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JobResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(string(domain.PaymentUnpaid), string(resp.PaymentStatus))
	suite.mockJobService.AssertExpectations(suite.T())
}

func (suite *JobHandlerTestSuite) TestCreateJobRejectsBadDate() {
	w := suite.serve(http.MethodPost, "/api/v1/jobs", "worker", map[string]any{
		"jobDate":    "14-03-2025",
		"workerName": "김기사",
		"location":   "서울",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJobService.AssertNotCalled(suite.T(), "CreateJob", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JobHandlerTestSuite) TestRecordPaymentNotFound() {
	jobID := uuid.NewString()
	suite.mockJobService.On("RecordPayment", mock.Anything, suite.companyID, jobID, int64(100), suite.userID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.serve(http.MethodPut, fmt.Sprintf("/api/v1/jobs/%s/payment", jobID), "worker",
		dto.RecordPaymentRequest{PaidAmountMan: 100})
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *JobHandlerTestSuite) TestBulkCompleteNeedsManagerialRole() {
	w := suite.serve(http.MethodPost, "/api/v1/jobs/bulk-complete", "worker",
		dto.BulkStatusRequest{JobIDs: []string{uuid.NewString()}})
	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockJobService.AssertNotCalled(suite.T(), "BulkComplete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JobHandlerTestSuite) TestBulkCompleteAsManager() {
	jobIDs := []string{uuid.NewString(), uuid.NewString()}
	suite.mockJobService.On("BulkComplete", mock.Anything, suite.companyID, jobIDs, suite.userID).
		Return(int64(2), nil).Once()

	w := suite.serve(http.MethodPost, "/api/v1/jobs/bulk-complete", "manager",
		dto.BulkStatusRequest{JobIDs: jobIDs})

	suite.Equal(http.StatusOK, w.Code)
	var resp map[string]int64
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(2), resp["updated"])
}

func (suite *JobHandlerTestSuite) TestRequestWithoutTokenIsRejected() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func TestJobHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(JobHandlerTestSuite))
}
