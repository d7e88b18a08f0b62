package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the ledger_entries table row. Amount is in won.
type LedgerEntry struct {
	EntryID     string          `db:"entry_id"`
	CompanyID   string          `db:"company_id"`
	Direction   string          `db:"direction"`
	EntryDate   time.Time       `db:"entry_date"`
	Category    string          `db:"category"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`

	Source  sql.NullString `db:"source"`
	AutoKey sql.NullString `db:"auto_key"`
	JobID   sql.NullString `db:"job_id"`

	AuditFields
}
