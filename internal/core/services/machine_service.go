package services

import (
	"context"
	"fmt"
	"time"

	"github.com/craneworks/craneops_backend/internal/apperrors"
	"github.com/craneworks/craneops_backend/internal/core/domain"
	portsrepo "github.com/craneworks/craneops_backend/internal/core/ports/repositories"
	portssvc "github.com/craneworks/craneops_backend/internal/core/ports/services"
	"github.com/craneworks/craneops_backend/internal/dto"
	"github.com/google/uuid"
)

type machineService struct {
	BaseService
	machineRepo portsrepo.MachineRepository
}

// NewMachineService creates the fleet directory service.
func NewMachineService(machineRepo portsrepo.MachineRepository) portssvc.MachineSvcFacade {
	return &machineService{machineRepo: machineRepo}
}

var _ portssvc.MachineSvcFacade = (*machineService)(nil)

func (s *machineService) CreateMachine(ctx context.Context, companyID string, req dto.CreateMachineRequest, creatorUserID string) (*domain.Machine, error) {
	now := time.Now()
	machine := &domain.Machine{
		MachineID:   uuid.NewString(),
		CompanyID:   companyID,
		Name:        req.Name,
		PlateNumber: req.PlateNumber,
		Alias:       req.Alias,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.machineRepo.SaveMachine(ctx, *machine); err != nil {
		return nil, fmt.Errorf("failed to create machine: %w", err)
	}
	return machine, nil
}

func (s *machineService) GetMachineByID(ctx context.Context, machineID string) (*domain.Machine, error) {
	machine, err := s.machineRepo.FindMachineByID(ctx, machineID)
	if err != nil {
		return nil, fmt.Errorf("failed to get machine: %w", err)
	}
	return machine, nil
}

func (s *machineService) ListMachines(ctx context.Context, companyID string) ([]domain.Machine, error) {
	machines, err := s.machineRepo.ListMachinesByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}
	return machines, nil
}

// findCompanyMachine loads a machine and hides it behind ErrNotFound when it
// belongs to another company.
func (s *machineService) findCompanyMachine(ctx context.Context, companyID, machineID string) (*domain.Machine, error) {
	machine, err := s.machineRepo.FindMachineByID(ctx, machineID)
	if err != nil {
		return nil, err
	}
	if machine.CompanyID != companyID {
		return nil, fmt.Errorf("machine %s: %w", machineID, apperrors.ErrNotFound)
	}
	return machine, nil
}

func (s *machineService) UpdateMachine(ctx context.Context, companyID string, machineID string, req dto.UpdateMachineRequest, requestingUserID string) (*domain.Machine, error) {
	machine, err := s.findCompanyMachine(ctx, companyID, machineID)
	if err != nil {
		return nil, fmt.Errorf("failed to find machine for update: %w", err)
	}
	if req.Name != nil {
		machine.Name = *req.Name
	}
	if req.PlateNumber != nil {
		machine.PlateNumber = *req.PlateNumber
	}
	if req.Alias != nil {
		machine.Alias = *req.Alias
	}
	machine.LastUpdatedAt = time.Now()
	machine.LastUpdatedBy = requestingUserID
	if err := s.machineRepo.UpdateMachine(ctx, *machine); err != nil {
		return nil, fmt.Errorf("failed to update machine: %w", err)
	}
	return machine, nil
}

func (s *machineService) DeleteMachine(ctx context.Context, companyID string, machineID string, requestingUserID string) error {
	if _, err := s.findCompanyMachine(ctx, companyID, machineID); err != nil {
		return fmt.Errorf("failed to find machine for deletion: %w", err)
	}
	if err := s.machineRepo.MarkMachineDeleted(ctx, machineID, time.Now(), requestingUserID); err != nil {
		return fmt.Errorf("failed to delete machine: %w", err)
	}
	return nil
}
