package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/craneworks/craneops_backend/internal/apperrors"
	"github.com/craneworks/craneops_backend/internal/core/domain"
	portsrepo "github.com/craneworks/craneops_backend/internal/core/ports/repositories"
	"github.com/craneworks/craneops_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(db *pgxpool.Pool) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

func toModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	m := models.LedgerEntry{
		EntryID:     d.EntryID,
		CompanyID:   d.CompanyID,
		Direction:   string(d.Direction),
		EntryDate:   d.EntryDate,
		Category:    d.Category,
		Description: d.Description,
		Amount:      d.Amount,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
	if d.Source != "" {
		m.Source = sql.NullString{String: d.Source, Valid: true}
	}
	if d.AutoKey != "" {
		m.AutoKey = sql.NullString{String: d.AutoKey, Valid: true}
	}
	if d.JobID != nil {
		m.JobID = sql.NullString{String: *d.JobID, Valid: true}
	}
	return m
}

func toDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	d := domain.LedgerEntry{
		EntryID:     m.EntryID,
		CompanyID:   m.CompanyID,
		Direction:   domain.LedgerDirection(m.Direction),
		EntryDate:   m.EntryDate,
		Category:    m.Category,
		Description: m.Description,
		Amount:      m.Amount,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.Source.Valid {
		d.Source = m.Source.String
	}
	if m.AutoKey.Valid {
		d.AutoKey = m.AutoKey.String
	}
	if m.JobID.Valid {
		d.JobID = &m.JobID.String
	}
	return d
}

const ledgerColumns = `entry_id, company_id, direction, entry_date, category, description, amount,
	source, auto_key, job_id, created_at, created_by, last_updated_at, last_updated_by`

func scanLedgerEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.CompanyID,
		&m.Direction,
		&m.EntryDate,
		&m.Category,
		&m.Description,
		&m.Amount,
		&m.Source,
		&m.AutoKey,
		&m.JobID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

const insertLedgerEntryQuery = `
	INSERT INTO ledger_entries (entry_id, company_id, direction, entry_date, category, description, amount,
		source, auto_key, job_id, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
`

func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := toModelLedgerEntry(entry)
	_, err := r.Pool.Exec(ctx, insertLedgerEntryQuery,
		m.EntryID, m.CompanyID, m.Direction, m.EntryDate, m.Category, m.Description, m.Amount,
		m.Source, m.AutoKey, m.JobID, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("ledger entry with this auto key already exists: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save ledger entry: %w", err)
	}
	return nil
}

func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM ledger_entries WHERE entry_id = $1;`, ledgerColumns)
	m, err := scanLedgerEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger entry by ID %s: %w", entryID, err)
	}
	d := toDomainLedgerEntry(m)
	return &d, nil
}

func (r *PgxLedgerRepository) ListEntries(ctx context.Context, companyID string, direction domain.LedgerDirection, from, to *time.Time) ([]domain.LedgerEntry, error) {
	conds := []string{"company_id = $1", "direction = $2"}
	args := []any{companyID, string(direction)}
	if from != nil {
		args = append(args, *from)
		conds = append(conds, fmt.Sprintf("entry_date >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		conds = append(conds, fmt.Sprintf("entry_date <= $%d", len(args)))
	}
	query := fmt.Sprintf(`
		SELECT %s FROM ledger_entries
		WHERE %s
		ORDER BY entry_date DESC, created_at DESC;
	`, ledgerColumns, strings.Join(conds, " AND "))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		m, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, toDomainLedgerEntry(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows: %w", rows.Err())
	}
	return entries, nil
}

func (r *PgxLedgerRepository) ListAutoEntries(ctx context.Context, companyID string) ([]domain.LedgerEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM ledger_entries
		WHERE company_id = $1 AND auto_key IS NOT NULL
		ORDER BY entry_date, created_at;
	`, ledgerColumns)
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query auto ledger entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		m, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, toDomainLedgerEntry(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows: %w", rows.Err())
	}
	return entries, nil
}

func (r *PgxLedgerRepository) DeleteEntry(ctx context.Context, entryID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM ledger_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete ledger entry: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("ledger entry not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxLedgerRepository) ApplyAutoDiff(ctx context.Context, companyID string, removeKeys []string, insert []domain.LedgerEntry) error {
	if len(removeKeys) == 0 && len(insert) == 0 {
		return nil
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if len(removeKeys) > 0 {
		_, err := tx.Exec(ctx,
			`DELETE FROM ledger_entries WHERE company_id = $1 AND auto_key = ANY($2);`,
			companyID, removeKeys)
		if err != nil {
			return fmt.Errorf("failed to delete orphaned auto entries: %w", err)
		}
	}
	for _, entry := range insert {
		m := toModelLedgerEntry(entry)
		_, err := tx.Exec(ctx, insertLedgerEntryQuery,
			m.EntryID, m.CompanyID, m.Direction, m.EntryDate, m.Category, m.Description, m.Amount,
			m.Source, m.AutoKey, m.JobID, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				// A concurrent sync already wrote this key. Same derived data, so
				// skipping keeps the run idempotent.
				continue
			}
			return fmt.Errorf("failed to insert derived auto entry: %w", err)
		}
	}
	return r.Commit(ctx, tx)
}

func (r *PgxLedgerRepository) Summarize(ctx context.Context, companyID string, from, to *time.Time) (*portsrepo.LedgerSummary, error) {
	conds := []string{"company_id = $1"}
	args := []any{companyID}
	if from != nil {
		args = append(args, *from)
		conds = append(conds, fmt.Sprintf("entry_date >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		conds = append(conds, fmt.Sprintf("entry_date <= $%d", len(args)))
	}
	query := fmt.Sprintf(`
		SELECT
			COALESCE(SUM(CASE WHEN direction = 'income' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN direction = 'expense' THEN amount ELSE 0 END), 0)
		FROM ledger_entries
		WHERE %s;
	`, strings.Join(conds, " AND "))

	var income, expense decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&income, &expense); err != nil {
		return nil, fmt.Errorf("failed to summarize ledger: %w", err)
	}
	return &portsrepo.LedgerSummary{IncomeTotal: income, ExpenseTotal: expense}, nil
}
