package repositories

import (
	"context"

	"github.com/craneworks/craneops_backend/internal/core/domain"
)

// CompanyRepository provides access to company (tenant) records.
type CompanyRepository interface {
	SaveCompany(ctx context.Context, company domain.Company) error
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
	FindCompanyByName(ctx context.Context, name string) (*domain.Company, error)
	UpdateCompany(ctx context.Context, company domain.Company) error
}
