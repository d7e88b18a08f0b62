package models

import (
	"database/sql"
	"time"
)

// Job is the jobs table row.
type Job struct {
	JobID     string    `db:"job_id"`
	CompanyID string    `db:"company_id"`
	JobDate   time.Time `db:"job_date"`
	JobTime   string    `db:"job_time"`

	WorkerID   sql.NullString `db:"worker_id"`
	WorkerName string         `db:"worker_name"`

	MachineName   string `db:"machine_name"`
	MachineNumber string `db:"machine_number"`
	MachineAlias  string `db:"machine_alias"`

	ClientOwner  string `db:"client_owner"`
	ClientTenant string `db:"client_tenant"`

	Location string `db:"location"`
	Note     string `db:"note"`
	Status   string `db:"status"`

	DurationType  string  `db:"duration_type"`
	DurationHours float64 `db:"duration_hours"`

	AmountMan     int64  `db:"amount_man"`
	PaidAmountMan int64  `db:"paid_amount_man"`
	PaymentStatus string `db:"payment_status"`

	OutsourceType    string `db:"outsource_type"`
	OutsourcePartner string `db:"outsource_partner"`

	IsSpare     bool `db:"is_spare"`
	ShareAmount bool `db:"share_amount"`

	AuditFields
}
