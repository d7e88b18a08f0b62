package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/craneworks/craneops_backend/internal/apperrors"
	"github.com/craneworks/craneops_backend/internal/core/domain"
	portsrepo "github.com/craneworks/craneops_backend/internal/core/ports/repositories"
	"github.com/craneworks/craneops_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJobRepository struct {
	BaseRepository
}

func newPgxJobRepository(db *pgxpool.Pool) portsrepo.JobRepository {
	return &PgxJobRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.JobRepository = (*PgxJobRepository)(nil)

func toModelJob(d domain.Job) models.Job {
	m := models.Job{
		JobID:            d.JobID,
		CompanyID:        d.CompanyID,
		JobDate:          d.JobDate,
		JobTime:          d.JobTime,
		WorkerName:       d.WorkerName,
		MachineName:      d.MachineName,
		MachineNumber:    d.MachineNumber,
		MachineAlias:     d.MachineAlias,
		ClientOwner:      d.ClientOwner,
		ClientTenant:     d.ClientTenant,
		Location:         d.Location,
		Note:             d.Note,
		Status:           string(d.Status),
		DurationType:     d.DurationType,
		DurationHours:    d.DurationHours,
		AmountMan:        d.AmountMan,
		PaidAmountMan:    d.PaidAmountMan,
		PaymentStatus:    string(d.PaymentStatus),
		OutsourceType:    string(d.OutsourceType),
		OutsourcePartner: d.OutsourcePartner,
		IsSpare:          d.IsSpare,
		ShareAmount:      d.ShareAmount,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
	if d.WorkerID != nil {
		m.WorkerID = sql.NullString{String: *d.WorkerID, Valid: true}
	}
	return m
}

func toDomainJob(m models.Job) domain.Job {
	d := domain.Job{
		JobID:            m.JobID,
		CompanyID:        m.CompanyID,
		JobDate:          m.JobDate,
		JobTime:          m.JobTime,
		WorkerName:       m.WorkerName,
		MachineName:      m.MachineName,
		MachineNumber:    m.MachineNumber,
		MachineAlias:     m.MachineAlias,
		ClientOwner:      m.ClientOwner,
		ClientTenant:     m.ClientTenant,
		Location:         m.Location,
		Note:             m.Note,
		Status:           domain.JobStatus(m.Status),
		DurationType:     m.DurationType,
		DurationHours:    m.DurationHours,
		AmountMan:        m.AmountMan,
		PaidAmountMan:    m.PaidAmountMan,
		PaymentStatus:    domain.PaymentStatus(m.PaymentStatus),
		OutsourceType:    domain.OutsourceType(m.OutsourceType),
		OutsourcePartner: m.OutsourcePartner,
		IsSpare:          m.IsSpare,
		ShareAmount:      m.ShareAmount,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.WorkerID.Valid {
		d.WorkerID = &m.WorkerID.String
	}
	return d
}

const jobColumns = `job_id, company_id, job_date, job_time, worker_id, worker_name,
	machine_name, machine_number, machine_alias, client_owner, client_tenant,
	location, note, status, duration_type, duration_hours,
	amount_man, paid_amount_man, payment_status, outsource_type, outsource_partner,
	is_spare, share_amount, created_at, created_by, last_updated_at, last_updated_by`

func scanJob(row pgx.Row) (models.Job, error) {
	var m models.Job
	err := row.Scan(
		&m.JobID,
		&m.CompanyID,
		&m.JobDate,
		&m.JobTime,
		&m.WorkerID,
		&m.WorkerName,
		&m.MachineName,
		&m.MachineNumber,
		&m.MachineAlias,
		&m.ClientOwner,
		&m.ClientTenant,
		&m.Location,
		&m.Note,
		&m.Status,
		&m.DurationType,
		&m.DurationHours,
		&m.AmountMan,
		&m.PaidAmountMan,
		&m.PaymentStatus,
		&m.OutsourceType,
		&m.OutsourcePartner,
		&m.IsSpare,
		&m.ShareAmount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxJobRepository) SaveJob(ctx context.Context, job domain.Job) error {
	m := toModelJob(job)
	query := `
		INSERT INTO jobs (job_id, company_id, job_date, job_time, worker_id, worker_name,
			machine_name, machine_number, machine_alias, client_owner, client_tenant,
			location, note, status, duration_type, duration_hours,
			amount_man, paid_amount_man, payment_status, outsource_type, outsource_partner,
			is_spare, share_amount, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.JobID, m.CompanyID, m.JobDate, m.JobTime, m.WorkerID, m.WorkerName,
		m.MachineName, m.MachineNumber, m.MachineAlias, m.ClientOwner, m.ClientTenant,
		m.Location, m.Note, m.Status, m.DurationType, m.DurationHours,
		m.AmountMan, m.PaidAmountMan, m.PaymentStatus, m.OutsourceType, m.OutsourcePartner,
		m.IsSpare, m.ShareAmount, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

func (r *PgxJobRepository) FindJobByID(ctx context.Context, jobID string) (*domain.Job, error) {
	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE job_id = $1;`, jobColumns)
	m, err := scanJob(r.Pool.QueryRow(ctx, query, jobID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find job by ID %s: %w", jobID, err)
	}
	d := toDomainJob(m)
	return &d, nil
}

// buildJobFilter appends WHERE clauses for each set filter field. Arguments
// are numbered after the ones already collected in args.
func buildJobFilter(filter portsrepo.JobFilter, conds []string, args []any) ([]string, []any) {
	add := func(cond string, vals ...any) {
		placeholders := make([]any, len(vals))
		for i := range vals {
			args = append(args, vals[i])
			placeholders[i] = len(args)
		}
		conds = append(conds, fmt.Sprintf(cond, placeholders...))
	}

	if filter.From != nil {
		add("job_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("job_date <= $%d", *filter.To)
	}
	if filter.WorkerID != "" {
		add("worker_id = $%d", filter.WorkerID)
	}
	if filter.WorkerName != "" {
		add("worker_name = $%d", filter.WorkerName)
	}
	if filter.MachineNumber != "" {
		add("machine_number = $%d", filter.MachineNumber)
	}
	if filter.Client != "" {
		add("(client_owner = $%d OR client_tenant = $%d)", filter.Client, filter.Client)
	}
	if filter.Status != "" {
		add("status = $%d", string(filter.Status))
	}
	if filter.PaymentStatus != "" {
		add("payment_status = $%d", string(filter.PaymentStatus))
	}
	if filter.OutsourceType != "" {
		add("outsource_type = $%d", string(filter.OutsourceType))
	}
	if filter.LocationQuery != "" {
		add("location ILIKE $%d", "%"+filter.LocationQuery+"%")
	}
	if filter.AfterDate != nil && filter.AfterCreatedAt != nil {
		add("(job_date, created_at) < ($%d, $%d)", *filter.AfterDate, *filter.AfterCreatedAt)
	}
	return conds, args
}

func (r *PgxJobRepository) ListJobs(ctx context.Context, companyID string, filter portsrepo.JobFilter) ([]domain.Job, error) {
	conds := []string{"company_id = $1"}
	args := []any{companyID}
	conds, args = buildJobFilter(filter, conds, args)

	query := fmt.Sprintf(`
		SELECT %s FROM jobs
		WHERE %s
		ORDER BY job_date DESC, created_at DESC
	`, jobColumns, strings.Join(conds, " AND "))
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		m, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		jobs = append(jobs, toDomainJob(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating job rows: %w", rows.Err())
	}
	return jobs, nil
}

func (r *PgxJobRepository) ListOutsourcedJobs(ctx context.Context, companyID string) ([]domain.Job, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM jobs
		WHERE company_id = $1
			AND outsource_type IN ($2, $3)
			AND btrim(outsource_partner) <> ''
		ORDER BY job_date, created_at;
	`, jobColumns)
	rows, err := r.Pool.Query(ctx, query, companyID,
		string(domain.OutsourceReceived), string(domain.OutsourceGiven))
	if err != nil {
		return nil, fmt.Errorf("failed to query outsourced jobs: %w", err)
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		m, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		jobs = append(jobs, toDomainJob(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating job rows: %w", rows.Err())
	}
	return jobs, nil
}

func (r *PgxJobRepository) UpdateJob(ctx context.Context, job domain.Job) error {
	m := toModelJob(job)
	query := `
		UPDATE jobs
		SET job_date = $1, job_time = $2, worker_id = $3, worker_name = $4,
			machine_name = $5, machine_number = $6, machine_alias = $7,
			client_owner = $8, client_tenant = $9, location = $10, note = $11,
			status = $12, duration_type = $13, duration_hours = $14,
			amount_man = $15, paid_amount_man = $16, payment_status = $17,
			outsource_type = $18, outsource_partner = $19, is_spare = $20, share_amount = $21,
			last_updated_at = $22, last_updated_by = $23
		WHERE job_id = $24;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.JobDate, m.JobTime, m.WorkerID, m.WorkerName,
		m.MachineName, m.MachineNumber, m.MachineAlias,
		m.ClientOwner, m.ClientTenant, m.Location, m.Note,
		m.Status, m.DurationType, m.DurationHours,
		m.AmountMan, m.PaidAmountMan, m.PaymentStatus,
		m.OutsourceType, m.OutsourcePartner, m.IsSpare, m.ShareAmount,
		m.LastUpdatedAt, m.LastUpdatedBy, m.JobID,
	)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxJobRepository) UpdateJobsStatus(ctx context.Context, companyID string, jobIDs []string, status domain.JobStatus, updaterUserID string) (int64, error) {
	if len(jobIDs) == 0 {
		return 0, nil
	}
	query := `
		UPDATE jobs
		SET status = $1, last_updated_at = now(), last_updated_by = $2
		WHERE company_id = $3 AND job_id = ANY($4);
	`
	cmdTag, err := r.Pool.Exec(ctx, query, string(status), updaterUserID, companyID, jobIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk update job status: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

func (r *PgxJobRepository) DeleteJob(ctx context.Context, jobID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM jobs WHERE job_id = $1;`, jobID)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
