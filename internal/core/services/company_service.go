package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/craneworks/craneops_backend/internal/core/domain"
	portsrepo "github.com/craneworks/craneops_backend/internal/core/ports/repositories"
	portssvc "github.com/craneworks/craneops_backend/internal/core/ports/services"
	"github.com/craneworks/craneops_backend/internal/dto"
	"github.com/craneworks/craneops_backend/internal/utils"
)

type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepository
}

// NewCompanyService creates the tenant management service.
func NewCompanyService(companyRepo portsrepo.CompanyRepository) portssvc.CompanySvcFacade {
	return &companyService{companyRepo: companyRepo}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

func (s *companyService) GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

func (s *companyService) UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, requestingUserID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find company for update: %w", err)
	}
	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Phone != nil {
		company.Phone = *req.Phone
	}
	company.LastUpdatedAt = time.Now()
	company.LastUpdatedBy = requestingUserID
	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	return company, nil
}

func (s *companyService) RotateJoinCode(ctx context.Context, companyID string, requestingUserID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find company for join code rotation: %w", err)
	}
	code, err := utils.GenerateDigitCode(joinCodeLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate join code: %w", err)
	}
	company.JoinCode = code
	company.LastUpdatedAt = time.Now()
	company.LastUpdatedBy = requestingUserID
	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		return nil, fmt.Errorf("failed to rotate join code: %w", err)
	}
	s.LogInfo(ctx, "join code rotated", slog.String("company_id", companyID))
	return company, nil
}
