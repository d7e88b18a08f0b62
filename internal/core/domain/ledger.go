package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerDirection separates the income ledger from the expense ledger.
type LedgerDirection string

const (
	LedgerIncome  LedgerDirection = "income"
	LedgerExpense LedgerDirection = "expense"
)

// Source tags for entries derived from outsourced jobs. Manual entries carry
// an empty source.
const (
	SourceAutoOutsrcReceived = "auto_outsrc_received"
	SourceAutoOutsrcGiven    = "auto_outsrc_given"
)

// Category labels used for the derived entries.
const (
	CategoryOutsrcReceived = "외주받음"
	CategoryOutsrcGiven    = "외주줬음"
)

// LedgerEntry is one income or expense row. Amounts are in won.
type LedgerEntry struct {
	EntryID   string          `json:"entryID"`
	CompanyID string          `json:"companyID"`
	Direction LedgerDirection `json:"direction"`
	EntryDate time.Time       `json:"entryDate"`
	Category  string          `json:"category"`
	// Description holds the partner name for auto entries.
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`

	// Source and AutoKey are set only on entries derived from outsourced jobs.
	Source  string `json:"source,omitempty"`
	AutoKey string `json:"autoKey,omitempty"`
	// JobID links an auto entry back to the job it was derived from.
	JobID *string `json:"jobID,omitempty"`

	AuditFields
}

// IsAuto reports whether the entry was machine-generated from a job.
func (e *LedgerEntry) IsAuto() bool {
	return e.Source == SourceAutoOutsrcReceived || e.Source == SourceAutoOutsrcGiven
}

// manWon is the won value of one 만원.
var manWon = decimal.NewFromInt(10000)

// ManToWon converts a 만원 amount into won.
func ManToWon(amountMan int64) decimal.Decimal {
	return decimal.NewFromInt(amountMan).Mul(manWon)
}

// EntryFromOutsourcedJob derives the ledger entry an outsourced job demands.
// Received work is income for us; given work is an expense.
func EntryFromOutsourcedJob(j *Job) LedgerEntry {
	direction := LedgerIncome
	category := CategoryOutsrcReceived
	source := SourceAutoOutsrcReceived
	if j.OutsourceType == OutsourceGiven {
		direction = LedgerExpense
		category = CategoryOutsrcGiven
		source = SourceAutoOutsrcGiven
	}
	jobID := j.JobID
	return LedgerEntry{
		CompanyID:   j.CompanyID,
		Direction:   direction,
		EntryDate:   j.JobDate,
		Category:    category,
		Description: j.OutsourcePartner,
		Amount:      ManToWon(j.AmountMan),
		Source:      source,
		AutoKey:     j.OutsourceAutoKey(),
		JobID:       &jobID,
	}
}
