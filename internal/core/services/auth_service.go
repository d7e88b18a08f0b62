package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/craneworks/craneops_backend/internal/apperrors"
	"github.com/craneworks/craneops_backend/internal/core/domain"
	portsrepo "github.com/craneworks/craneops_backend/internal/core/ports/repositories"
	portssvc "github.com/craneworks/craneops_backend/internal/core/ports/services"
	"github.com/craneworks/craneops_backend/internal/dto"
	"github.com/craneworks/craneops_backend/internal/utils"
	"github.com/google/uuid"
)

const joinCodeLength = 6

type authService struct {
	BaseService
	userRepo    portsrepo.UserRepository
	companyRepo portsrepo.CompanyRepository
}

// NewAuthService creates the registration and login service.
func NewAuthService(userRepo portsrepo.UserRepository, companyRepo portsrepo.CompanyRepository) portssvc.AuthSvcFacade {
	return &authService{userRepo: userRepo, companyRepo: companyRepo}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) RegisterCompany(ctx context.Context, req dto.RegisterCompanyRequest) (*domain.User, *domain.Company, error) {
	if _, err := s.companyRepo.FindCompanyByName(ctx, req.CompanyName); err == nil {
		return nil, nil, fmt.Errorf("company name already registered: %w", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil, fmt.Errorf("failed to check company name: %w", err)
	}
	if _, err := s.userRepo.FindUserByPhone(ctx, req.Phone); err == nil {
		return nil, nil, fmt.Errorf("phone already registered: %w", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil, fmt.Errorf("failed to check phone: %w", err)
	}

	joinCode, err := utils.GenerateDigitCode(joinCodeLength)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate join code: %w", err)
	}

	boss, err := buildUser(ctx, s.userRepo, "", req.BossName, req.Phone, req.Password, domain.RoleBoss, domain.UserStatusActive, "")
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	company := &domain.Company{
		CompanyID: uuid.NewString(),
		Name:      req.CompanyName,
		JoinCode:  joinCode,
		Phone:     req.CompanyPhone,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     boss.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: boss.UserID,
		},
	}
	boss.CompanyID = company.CompanyID

	if err := s.companyRepo.SaveCompany(ctx, *company); err != nil {
		return nil, nil, fmt.Errorf("failed to register company: %w", err)
	}
	if err := s.userRepo.SaveUser(ctx, *boss); err != nil {
		return nil, nil, fmt.Errorf("failed to register boss account: %w", err)
	}

	s.LogInfo(ctx, "company registered",
		slog.String("company_id", company.CompanyID), slog.String("boss_user_id", boss.UserID))
	return boss, company, nil
}

func (s *authService) RegisterWorker(ctx context.Context, req dto.RegisterWorkerRequest) (*domain.User, error) {
	company, err := s.companyRepo.FindCompanyByName(ctx, req.CompanyName)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("company or join code is wrong: %w", apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("failed to look up company: %w", err)
	}
	if company.JoinCode != req.JoinCode {
		return nil, fmt.Errorf("company or join code is wrong: %w", apperrors.ErrValidation)
	}
	if _, err := s.userRepo.FindUserByPhone(ctx, req.Phone); err == nil {
		return nil, fmt.Errorf("phone already registered: %w", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check phone: %w", err)
	}

	worker, err := buildUser(ctx, s.userRepo, company.CompanyID, req.Name, req.Phone, req.Password, domain.RoleWorker, domain.UserStatusPending, "")
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.SaveUser(ctx, *worker); err != nil {
		return nil, fmt.Errorf("failed to register worker: %w", err)
	}

	s.LogInfo(ctx, "worker registered, awaiting approval",
		slog.String("user_id", worker.UserID), slog.String("company_id", company.CompanyID))
	return worker, nil
}

func (s *authService) Login(ctx context.Context, login, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByPhone(ctx, login)
	if errors.Is(err, apperrors.ErrNotFound) {
		user, err = s.userRepo.FindUserByUsername(ctx, login)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	if user.Status == domain.UserStatusPending {
		return nil, apperrors.ErrPendingApproval
	}
	return user, nil
}

func (s *authService) Refresh(ctx context.Context, userID, refreshToken string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.RefreshTokenHash == "" || !utils.CompareRefreshTokenHash(refreshToken, user.RefreshTokenHash) {
		return nil, apperrors.ErrUnauthorized
	}
	if user.RefreshTokenExpiryTime == nil || time.Now().After(*user.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrRefreshTokenExpired
	}
	return user, nil
}

func (s *authService) Logout(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}
	return nil
}
