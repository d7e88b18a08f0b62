package services

import (
	"context"
	"time"

	"github.com/craneworks/craneops_backend/internal/core/domain"
	"github.com/craneworks/craneops_backend/internal/dto"
)

// SyncReport describes what one reconciliation run changed.
type SyncReport struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

// LedgerSvcFacade manages the income/expense ledgers and keeps them
// consistent with outsourced jobs.
type LedgerSvcFacade interface {
	ListEntries(ctx context.Context, companyID string, direction domain.LedgerDirection, from, to *time.Time) ([]domain.LedgerEntry, error)
	CreateManualEntry(ctx context.Context, companyID string, req dto.CreateLedgerEntryRequest, creatorUserID string) (*domain.LedgerEntry, error)

	// DeleteEntry removes a ledger entry of the caller's company. Deleting an
	// auto-generated entry also deletes the job it was derived from.
	DeleteEntry(ctx context.Context, companyID string, entryID string, requestingUserID string) error

	// SyncOutsourcing reconciles the ledgers against the current set of
	// outsourced jobs. Idempotent: a second run on unchanged data is a no-op.
	SyncOutsourcing(ctx context.Context, companyID string) (*SyncReport, error)
}

// ReportingSvcFacade aggregates the ledgers and outstanding job balances.
type ReportingSvcFacade interface {
	Summary(ctx context.Context, companyID string, from, to *time.Time) (*dto.SummaryResponse, error)
}
