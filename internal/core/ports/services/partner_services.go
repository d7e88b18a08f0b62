package services

import (
	"context"

	"github.com/craneworks/craneops_backend/internal/core/domain"
)

// PartnerSvcFacade manages the owner/tenant client directories.
type PartnerSvcFacade interface {
	AddPartner(ctx context.Context, companyID string, kind domain.PartnerKind, name string, creatorUserID string) (*domain.Partner, error)
	ListPartners(ctx context.Context, companyID string, kind domain.PartnerKind) ([]domain.Partner, error)
	RemovePartner(ctx context.Context, partnerID string, requestingUserID string) error
}
