package services

import (
	"context"
	"time"

	"github.com/craneworks/craneops_backend/internal/core/domain"
)

// ExportFile is a rendered spreadsheet ready to be served or attached.
type ExportFile struct {
	Filename string
	Mime     string
	Data     []byte
}

// ExportSvcFacade renders job lists and ledgers to CSV/XLSX.
type ExportSvcFacade interface {
	JobsCSV(ctx context.Context, jobs []domain.Job, from, to *time.Time) (*ExportFile, error)
	JobsXLSX(ctx context.Context, jobs []domain.Job, from, to *time.Time) (*ExportFile, error)
	LedgerCSV(ctx context.Context, entries []domain.LedgerEntry, direction domain.LedgerDirection, from, to *time.Time) (*ExportFile, error)
	LedgerXLSX(ctx context.Context, entries []domain.LedgerEntry, direction domain.LedgerDirection, from, to *time.Time) (*ExportFile, error)
}

// MailSvcFacade sends outbound mail with optional attachments.
type MailSvcFacade interface {
	SendWithAttachment(ctx context.Context, to []string, subject, body string, attachment *ExportFile) error
}
