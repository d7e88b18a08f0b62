package services

import (
	"context"

	"github.com/craneworks/craneops_backend/internal/core/domain"
	"github.com/craneworks/craneops_backend/internal/dto"
)

// MachineSvcFacade manages a company's machine directory. Mutations answer
// ErrNotFound for machines of other companies.
type MachineSvcFacade interface {
	CreateMachine(ctx context.Context, companyID string, req dto.CreateMachineRequest, creatorUserID string) (*domain.Machine, error)
	GetMachineByID(ctx context.Context, machineID string) (*domain.Machine, error)
	ListMachines(ctx context.Context, companyID string) ([]domain.Machine, error)
	UpdateMachine(ctx context.Context, companyID string, machineID string, req dto.UpdateMachineRequest, requestingUserID string) (*domain.Machine, error)
	DeleteMachine(ctx context.Context, companyID string, machineID string, requestingUserID string) error
}
