package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/craneworks/craneops_backend/internal/apperrors"
	"github.com/craneworks/craneops_backend/internal/core/domain"
	portsrepo "github.com/craneworks/craneops_backend/internal/core/ports/repositories"
	portssvc "github.com/craneworks/craneops_backend/internal/core/ports/services"
	"github.com/google/uuid"
)

type partnerService struct {
	BaseService
	partnerRepo portsrepo.PartnerRepository
}

// NewPartnerService creates the client directory service.
func NewPartnerService(partnerRepo portsrepo.PartnerRepository) portssvc.PartnerSvcFacade {
	return &partnerService{partnerRepo: partnerRepo}
}

var _ portssvc.PartnerSvcFacade = (*partnerService)(nil)

func (s *partnerService) AddPartner(ctx context.Context, companyID string, kind domain.PartnerKind, name string, creatorUserID string) (*domain.Partner, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("partner name must not be empty: %w", apperrors.ErrValidation)
	}
	if _, err := s.partnerRepo.FindPartnerByName(ctx, companyID, kind, name); err == nil {
		return nil, fmt.Errorf("partner already in directory: %w", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check partner name: %w", err)
	}

	now := time.Now()
	partner := &domain.Partner{
		PartnerID: uuid.NewString(),
		CompanyID: companyID,
		Kind:      kind,
		Name:      name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.partnerRepo.SavePartner(ctx, *partner); err != nil {
		return nil, fmt.Errorf("failed to add partner: %w", err)
	}
	return partner, nil
}

func (s *partnerService) ListPartners(ctx context.Context, companyID string, kind domain.PartnerKind) ([]domain.Partner, error) {
	partners, err := s.partnerRepo.ListPartnersByCompany(ctx, companyID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list partners: %w", err)
	}
	return partners, nil
}

func (s *partnerService) RemovePartner(ctx context.Context, partnerID string, requestingUserID string) error {
	if err := s.partnerRepo.DeletePartner(ctx, partnerID); err != nil {
		return fmt.Errorf("failed to remove partner: %w", err)
	}
	return nil
}
