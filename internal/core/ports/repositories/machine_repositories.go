package repositories

import (
	"context"
	"time"

	"github.com/craneworks/craneops_backend/internal/core/domain"
)

// MachineRepository provides access to a company's machine directory.
type MachineRepository interface {
	SaveMachine(ctx context.Context, machine domain.Machine) error
	FindMachineByID(ctx context.Context, machineID string) (*domain.Machine, error)
	FindMachineByPlate(ctx context.Context, companyID string, plateNumber string) (*domain.Machine, error)
	ListMachinesByCompany(ctx context.Context, companyID string) ([]domain.Machine, error)
	UpdateMachine(ctx context.Context, machine domain.Machine) error
	MarkMachineDeleted(ctx context.Context, machineID string, deletedAt time.Time, deleterUserID string) error
}
