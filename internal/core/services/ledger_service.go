package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/craneworks/craneops_backend/internal/apperrors"
	"github.com/craneworks/craneops_backend/internal/core/domain"
	portsrepo "github.com/craneworks/craneops_backend/internal/core/ports/repositories"
	portssvc "github.com/craneworks/craneops_backend/internal/core/ports/services"
	"github.com/craneworks/craneops_backend/internal/dto"
	"github.com/google/uuid"
)

// autoEntryActor is recorded as the creator of machine-generated entries.
const autoEntryActor = "system"

type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepository
	jobRepo    portsrepo.JobRepository
}

// NewLedgerService creates the income/expense ledger service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepository, jobRepo portsrepo.JobRepository) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo, jobRepo: jobRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) ListEntries(ctx context.Context, companyID string, direction domain.LedgerDirection, from, to *time.Time) ([]domain.LedgerEntry, error) {
	entries, err := s.ledgerRepo.ListEntries(ctx, companyID, direction, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return entries, nil
}

func (s *ledgerService) CreateManualEntry(ctx context.Context, companyID string, req dto.CreateLedgerEntryRequest, creatorUserID string) (*domain.LedgerEntry, error) {
	entryDate, err := time.Parse(dto.DateOnly, req.EntryDate)
	if err != nil {
		return nil, fmt.Errorf("invalid entry date: %w", apperrors.ErrValidation)
	}
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("amount must not be negative: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	entry := &domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		CompanyID:   companyID,
		Direction:   req.Direction,
		EntryDate:   entryDate,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.ledgerRepo.SaveEntry(ctx, *entry); err != nil {
		return nil, fmt.Errorf("failed to create ledger entry: %w", err)
	}
	return entry, nil
}

func (s *ledgerService) DeleteEntry(ctx context.Context, companyID string, entryID string, requestingUserID string) error {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to find ledger entry: %w", err)
	}
	if entry.CompanyID != companyID {
		return fmt.Errorf("ledger entry %s: %w", entryID, apperrors.ErrNotFound)
	}

	// Deleting a machine-generated entry also removes the job it mirrors,
	// otherwise the next sync would just recreate the entry.
	if entry.IsAuto() {
		if err := s.deleteOriginatingJob(ctx, entry); err != nil {
			return err
		}
	}

	if err := s.ledgerRepo.DeleteEntry(ctx, entryID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to delete ledger entry: %w", err)
	}
	s.LogInfo(ctx, "ledger entry deleted",
		slog.String("entry_id", entryID), slog.Bool("auto", entry.IsAuto()))
	return nil
}

// deleteOriginatingJob removes the job an auto entry was derived from. Older
// entries predate the job link, so those fall back to matching the derived
// fields against the outsourced jobs.
func (s *ledgerService) deleteOriginatingJob(ctx context.Context, entry *domain.LedgerEntry) error {
	if entry.JobID != nil {
		return s.deleteJobTolerantly(ctx, *entry.JobID)
	}

	jobs, err := s.jobRepo.ListOutsourcedJobs(ctx, entry.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to list outsourced jobs: %w", err)
	}
	for i := range jobs {
		if jobs[i].OutsourceAutoKey() == entry.AutoKey {
			return s.deleteJobTolerantly(ctx, jobs[i].JobID)
		}
	}

	// The key changes when the job's worker or machine fields are edited, so
	// as a last resort match on the parts the entry actually carries: date,
	// partner, direction and amount.
	for i := range jobs {
		derived := domain.EntryFromOutsourcedJob(&jobs[i])
		if derived.Direction == entry.Direction &&
			derived.EntryDate.Equal(entry.EntryDate) &&
			derived.Description == entry.Description &&
			derived.Amount.Equal(entry.Amount) {
			return s.deleteJobTolerantly(ctx, jobs[i].JobID)
		}
	}
	return nil
}

func (s *ledgerService) deleteJobTolerantly(ctx context.Context, jobID string) error {
	if err := s.jobRepo.DeleteJob(ctx, jobID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to delete originating job: %w", err)
	}
	return nil
}

func (s *ledgerService) SyncOutsourcing(ctx context.Context, companyID string) (*portssvc.SyncReport, error) {
	jobs, err := s.jobRepo.ListOutsourcedJobs(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list outsourced jobs: %w", err)
	}
	existing, err := s.ledgerRepo.ListAutoEntries(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list auto ledger entries: %w", err)
	}

	// Desired state: one entry per outsourced job, keyed by the content hash.
	// Jobs that collide on the key are indistinguishable, one entry suffices.
	desired := make(map[string]domain.LedgerEntry, len(jobs))
	for i := range jobs {
		entry := domain.EntryFromOutsourcedJob(&jobs[i])
		if _, ok := desired[entry.AutoKey]; !ok {
			desired[entry.AutoKey] = entry
		}
	}

	present := make(map[string]bool, len(existing))
	removeKeys := []string{}
	for i := range existing {
		key := existing[i].AutoKey
		if _, wanted := desired[key]; !wanted {
			removeKeys = append(removeKeys, key)
			continue
		}
		present[key] = true
	}

	now := time.Now()
	insert := []domain.LedgerEntry{}
	for key, entry := range desired {
		if present[key] {
			continue
		}
		entry.EntryID = uuid.NewString()
		entry.CreatedAt = now
		entry.CreatedBy = autoEntryActor
		entry.LastUpdatedAt = now
		entry.LastUpdatedBy = autoEntryActor
		insert = append(insert, entry)
	}

	if err := s.ledgerRepo.ApplyAutoDiff(ctx, companyID, removeKeys, insert); err != nil {
		return nil, fmt.Errorf("failed to reconcile ledgers: %w", err)
	}

	report := &portssvc.SyncReport{Added: len(insert), Removed: len(removeKeys)}
	if report.Added > 0 || report.Removed > 0 {
		s.LogInfo(ctx, "outsourcing ledgers reconciled",
			slog.String("company_id", companyID),
			slog.Int("added", report.Added), slog.Int("removed", report.Removed))
	}
	return report, nil
}
