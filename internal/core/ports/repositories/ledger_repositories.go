package repositories

import (
	"context"
	"time"

	"github.com/craneworks/craneops_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerSummary aggregates a company's ledgers over a date range.
type LedgerSummary struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
}

// LedgerRepository provides access to income/expense ledger entries.
type LedgerRepository interface {
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) error
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)
	ListEntries(ctx context.Context, companyID string, direction domain.LedgerDirection, from, to *time.Time) ([]domain.LedgerEntry, error)
	ListAutoEntries(ctx context.Context, companyID string) ([]domain.LedgerEntry, error)
	DeleteEntry(ctx context.Context, entryID string) error
	// ApplyAutoDiff removes the auto entries whose keys are listed and inserts
	// the missing derived entries, atomically in one transaction.
	ApplyAutoDiff(ctx context.Context, companyID string, removeKeys []string, insert []domain.LedgerEntry) error
	Summarize(ctx context.Context, companyID string, from, to *time.Time) (*LedgerSummary, error)
}
