package models

import "time"

// Machine is the machines table row. Plate numbers are unique per company.
type Machine struct {
	MachineID   string `db:"machine_id"`
	CompanyID   string `db:"company_id"`
	Name        string `db:"name"`
	PlateNumber string `db:"plate_number"`
	Alias       string `db:"alias"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
