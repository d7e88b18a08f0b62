package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/craneworks/craneops_backend/internal/apperrors"
	"github.com/craneworks/craneops_backend/internal/core/domain"
	"github.com/craneworks/craneops_backend/internal/core/services"
	"github.com/craneworks/craneops_backend/internal/dto"
	"github.com/craneworks/craneops_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock CompanyRepository ---
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindCompanyByName(ctx context.Context, name string) (*domain.Company, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return hash
}

func TestRegisterCompanyCreatesBossAndJoinCode(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	companyRepo := new(MockCompanyRepository)
	svc := services.NewAuthService(userRepo, companyRepo)

	companyRepo.On("FindCompanyByName", ctx, "대한중기").Return(nil, apperrors.ErrNotFound)
	userRepo.On("FindUserByPhone", ctx, "010-1234-5678").Return(nil, apperrors.ErrNotFound)
	userRepo.On("FindUserByUsername", ctx, "박사장").Return(nil, apperrors.ErrNotFound)
	companyRepo.On("SaveCompany", ctx, mock.MatchedBy(func(c domain.Company) bool {
		return c.Name == "대한중기" && len(c.JoinCode) == 6
	})).Return(nil)
	userRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleBoss &&
			u.Status == domain.UserStatusActive &&
			u.CompanyID != "" &&
			u.CreatedBy == u.UserID
	})).Return(nil)

	boss, company, err := svc.RegisterCompany(ctx, dto.RegisterCompanyRequest{
		CompanyName: "대한중기",
		BossName:    "박사장",
		Phone:       "010-1234-5678",
		Password:    "pass1234",
	})
	require.NoError(t, err)
	assert.Equal(t, company.CompanyID, boss.CompanyID)
	assert.Len(t, company.JoinCode, 6)
	companyRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestRegisterCompanyRejectsDuplicateName(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	companyRepo := new(MockCompanyRepository)
	svc := services.NewAuthService(userRepo, companyRepo)

	companyRepo.On("FindCompanyByName", ctx, "대한중기").Return(&domain.Company{CompanyID: "existing"}, nil)

	_, _, err := svc.RegisterCompany(ctx, dto.RegisterCompanyRequest{
		CompanyName: "대한중기",
		BossName:    "박사장",
		Phone:       "010-1234-5678",
		Password:    "pass1234",
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestRegisterWorkerRequiresMatchingJoinCode(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	companyRepo := new(MockCompanyRepository)
	svc := services.NewAuthService(userRepo, companyRepo)

	company := &domain.Company{CompanyID: "company-1", Name: "대한중기", JoinCode: "123456"}
	companyRepo.On("FindCompanyByName", ctx, "대한중기").Return(company, nil)

	_, err := svc.RegisterWorker(ctx, dto.RegisterWorkerRequest{
		CompanyName: "대한중기",
		JoinCode:    "999999",
		Name:        "김기사",
		Phone:       "010-1234-5678",
		Password:    "pass1234",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	userRepo.AssertNotCalled(t, "SaveUser", mock.Anything, mock.Anything)
}

func TestRegisterWorkerStartsPending(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	companyRepo := new(MockCompanyRepository)
	svc := services.NewAuthService(userRepo, companyRepo)

	company := &domain.Company{CompanyID: "company-1", Name: "대한중기", JoinCode: "123456"}
	companyRepo.On("FindCompanyByName", ctx, "대한중기").Return(company, nil)
	userRepo.On("FindUserByPhone", ctx, "010-1234-5678").Return(nil, apperrors.ErrNotFound)
	userRepo.On("FindUserByUsername", ctx, "김기사").Return(nil, apperrors.ErrNotFound)
	userRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Status == domain.UserStatusPending &&
			u.Role == domain.RoleWorker &&
			u.CompanyID == "company-1"
	})).Return(nil)

	worker, err := svc.RegisterWorker(ctx, dto.RegisterWorkerRequest{
		CompanyName: "대한중기",
		JoinCode:    "123456",
		Name:        "김기사",
		Phone:       "010-1234-5678",
		Password:    "pass1234",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusPending, worker.Status)
}

func TestLoginByPhone(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	svc := services.NewAuthService(userRepo, new(MockCompanyRepository))

	user := &domain.User{
		UserID:       "user-1",
		Phone:        "010-1234-5678",
		PasswordHash: mustHash(t, "pass1234"),
		Status:       domain.UserStatusActive,
	}
	userRepo.On("FindUserByPhone", ctx, "010-1234-5678").Return(user, nil)

	got, err := svc.Login(ctx, "010-1234-5678", "pass1234")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
}

func TestLoginFallsBackToUsername(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	svc := services.NewAuthService(userRepo, new(MockCompanyRepository))

	user := &domain.User{
		UserID:       "user-1",
		Username:     "김기사",
		PasswordHash: mustHash(t, "pass1234"),
		Status:       domain.UserStatusActive,
	}
	userRepo.On("FindUserByPhone", ctx, "김기사").Return(nil, apperrors.ErrNotFound)
	userRepo.On("FindUserByUsername", ctx, "김기사").Return(user, nil)

	got, err := svc.Login(ctx, "김기사", "pass1234")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	svc := services.NewAuthService(userRepo, new(MockCompanyRepository))

	user := &domain.User{
		UserID:       "user-1",
		PasswordHash: mustHash(t, "pass1234"),
		Status:       domain.UserStatusActive,
	}
	userRepo.On("FindUserByPhone", ctx, "010-1234-5678").Return(user, nil)

	_, err := svc.Login(ctx, "010-1234-5678", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLoginRejectsPendingWorker(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	svc := services.NewAuthService(userRepo, new(MockCompanyRepository))

	user := &domain.User{
		UserID:       "user-1",
		PasswordHash: mustHash(t, "pass1234"),
		Status:       domain.UserStatusPending,
	}
	userRepo.On("FindUserByPhone", ctx, "010-1234-5678").Return(user, nil)

	_, err := svc.Login(ctx, "010-1234-5678", "pass1234")
	assert.ErrorIs(t, err, apperrors.ErrPendingApproval)
}

func TestRefreshValidatesStoredHashAndExpiry(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	svc := services.NewAuthService(userRepo, new(MockCompanyRepository))

	future := time.Now().Add(time.Hour)
	user := &domain.User{
		UserID:                 "user-1",
		RefreshTokenHash:       utils.HashRefreshToken("refresh-token"),
		RefreshTokenExpiryTime: &future,
	}
	userRepo.On("FindUserByID", ctx, "user-1").Return(user, nil)

	got, err := svc.Refresh(ctx, "user-1", "refresh-token")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)

	_, err = svc.Refresh(ctx, "user-1", "some-other-token")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestRefreshRejectsExpiredToken(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	svc := services.NewAuthService(userRepo, new(MockCompanyRepository))

	past := time.Now().Add(-time.Hour)
	user := &domain.User{
		UserID:                 "user-1",
		RefreshTokenHash:       utils.HashRefreshToken("refresh-token"),
		RefreshTokenExpiryTime: &past,
	}
	userRepo.On("FindUserByID", ctx, "user-1").Return(user, nil)

	_, err := svc.Refresh(ctx, "user-1", "refresh-token")
	assert.ErrorIs(t, err, apperrors.ErrRefreshTokenExpired)
}
