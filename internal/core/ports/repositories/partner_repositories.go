package repositories

import (
	"context"

	"github.com/craneworks/craneops_backend/internal/core/domain"
)

// PartnerRepository provides access to a company's owner/tenant directories.
type PartnerRepository interface {
	SavePartner(ctx context.Context, partner domain.Partner) error
	FindPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error)
	FindPartnerByName(ctx context.Context, companyID string, kind domain.PartnerKind, name string) (*domain.Partner, error)
	ListPartnersByCompany(ctx context.Context, companyID string, kind domain.PartnerKind) ([]domain.Partner, error)
	DeletePartner(ctx context.Context, partnerID string) error
}
