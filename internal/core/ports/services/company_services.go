package services

import (
	"context"

	"github.com/craneworks/craneops_backend/internal/core/domain"
	"github.com/craneworks/craneops_backend/internal/dto"
)

// CompanySvcFacade manages the tenant record itself.
type CompanySvcFacade interface {
	GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
	UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, requestingUserID string) (*domain.Company, error)

	// RotateJoinCode replaces the 6-digit worker registration code.
	RotateJoinCode(ctx context.Context, companyID string, requestingUserID string) (*domain.Company, error)
}
