package dto

import "github.com/craneworks/craneops_backend/internal/core/domain"

// CreateMachineRequest adds a machine to the fleet directory.
type CreateMachineRequest struct {
	Name        string `json:"name" binding:"required"`
	PlateNumber string `json:"plateNumber" binding:"required"`
	Alias       string `json:"alias"`
}

// UpdateMachineRequest updates machine details. Nil fields are left unchanged.
type UpdateMachineRequest struct {
	Name        *string `json:"name,omitempty"`
	PlateNumber *string `json:"plateNumber,omitempty"`
	Alias       *string `json:"alias,omitempty"`
}

// MachineResponse is the API shape of a machine.
type MachineResponse struct {
	MachineID   string `json:"machineID"`
	Name        string `json:"name"`
	PlateNumber string `json:"plateNumber"`
	Alias       string `json:"alias"`
}

// ListMachinesResponse wraps the machine directory listing.
type ListMachinesResponse struct {
	Machines []MachineResponse `json:"machines"`
}

// ToMachineResponse maps a domain machine to its API shape.
func ToMachineResponse(m *domain.Machine) MachineResponse {
	return MachineResponse{
		MachineID:   m.MachineID,
		Name:        m.Name,
		PlateNumber: m.PlateNumber,
		Alias:       m.Alias,
	}
}
