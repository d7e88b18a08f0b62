package dto

import (
	"time"

	"github.com/craneworks/craneops_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLedgerEntryRequest adds a manual income or expense row.
type CreateLedgerEntryRequest struct {
	Direction   domain.LedgerDirection `json:"direction" binding:"required,oneof=income expense"`
	EntryDate   string                 `json:"entryDate" binding:"required,datetime=2006-01-02"`
	Category    string                 `json:"category" binding:"required"`
	Description string                 `json:"description"`
	Amount      decimal.Decimal        `json:"amount" binding:"required"`
}

// ListLedgerParams filter a ledger listing, bound from the query string.
type ListLedgerParams struct {
	Direction string `form:"direction" binding:"required,oneof=income expense"`
	From      string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// LedgerEntryResponse is the API shape of a ledger entry.
type LedgerEntryResponse struct {
	EntryID     string                 `json:"entryID"`
	Direction   domain.LedgerDirection `json:"direction"`
	EntryDate   string                 `json:"entryDate"`
	Category    string                 `json:"category"`
	Description string                 `json:"description"`
	Amount      decimal.Decimal        `json:"amount"`
	Source      string                 `json:"source,omitempty"`
	AutoKey     string                 `json:"autoKey,omitempty"`
	JobID       *string                `json:"jobID,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
}

// ListLedgerResponse wraps a ledger listing.
type ListLedgerResponse struct {
	Entries []LedgerEntryResponse `json:"entries"`
}

// SummaryResponse aggregates the ledgers plus outstanding job balances.
type SummaryResponse struct {
	From           string          `json:"from,omitempty"`
	To             string          `json:"to,omitempty"`
	IncomeTotal    decimal.Decimal `json:"incomeTotal"`
	ExpenseTotal   decimal.Decimal `json:"expenseTotal"`
	NetTotal       decimal.Decimal `json:"netTotal"`
	OutstandingMan int64           `json:"outstandingMan"` // unpaid job balances, in 만원
}

// ToLedgerEntryResponse maps a domain ledger entry to its API shape.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:     e.EntryID,
		Direction:   e.Direction,
		EntryDate:   e.EntryDate.Format(DateOnly),
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
		Source:      e.Source,
		AutoKey:     e.AutoKey,
		JobID:       e.JobID,
		CreatedAt:   e.CreatedAt,
	}
}

// ToLedgerEntryResponses maps a slice of ledger entries.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToLedgerEntryResponse(&entries[i])
	}
	return out
}
