package domain

import "time"

// Machine is a crane or other heavy-equipment unit in a company's fleet.
// PlateNumber is unique within the company.
type Machine struct {
	MachineID   string `json:"machineID"`
	CompanyID   string `json:"companyID"`
	Name        string `json:"name"`
	PlateNumber string `json:"plateNumber"`
	Alias       string `json:"alias"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
