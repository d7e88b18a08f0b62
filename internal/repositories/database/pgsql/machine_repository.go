package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/craneworks/craneops_backend/internal/apperrors"
	"github.com/craneworks/craneops_backend/internal/core/domain"
	portsrepo "github.com/craneworks/craneops_backend/internal/core/ports/repositories"
	"github.com/craneworks/craneops_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMachineRepository struct {
	BaseRepository
}

func newPgxMachineRepository(db *pgxpool.Pool) portsrepo.MachineRepository {
	return &PgxMachineRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.MachineRepository = (*PgxMachineRepository)(nil)

func toDomainMachine(m models.Machine) domain.Machine {
	return domain.Machine{
		MachineID:   m.MachineID,
		CompanyID:   m.CompanyID,
		Name:        m.Name,
		PlateNumber: m.PlateNumber,
		Alias:       m.Alias,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
		DeletedAt: m.DeletedAt,
	}
}

const machineColumns = `machine_id, company_id, name, plate_number, alias, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanMachine(row pgx.Row) (models.Machine, error) {
	var m models.Machine
	err := row.Scan(
		&m.MachineID,
		&m.CompanyID,
		&m.Name,
		&m.PlateNumber,
		&m.Alias,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

func (r *PgxMachineRepository) SaveMachine(ctx context.Context, machine domain.Machine) error {
	query := `
		INSERT INTO machines (machine_id, company_id, name, plate_number, alias, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		machine.MachineID, machine.CompanyID, machine.Name, machine.PlateNumber, machine.Alias,
		machine.CreatedAt, machine.CreatedBy, machine.LastUpdatedAt, machine.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("plate number already registered: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save machine: %w", err)
	}
	return nil
}

func (r *PgxMachineRepository) FindMachineByID(ctx context.Context, machineID string) (*domain.Machine, error) {
	query := fmt.Sprintf(`SELECT %s FROM machines WHERE machine_id = $1 AND deleted_at IS NULL;`, machineColumns)
	m, err := scanMachine(r.Pool.QueryRow(ctx, query, machineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find machine by ID %s: %w", machineID, err)
	}
	d := toDomainMachine(m)
	return &d, nil
}

func (r *PgxMachineRepository) FindMachineByPlate(ctx context.Context, companyID string, plateNumber string) (*domain.Machine, error) {
	query := fmt.Sprintf(`SELECT %s FROM machines WHERE company_id = $1 AND plate_number = $2 AND deleted_at IS NULL;`, machineColumns)
	m, err := scanMachine(r.Pool.QueryRow(ctx, query, companyID, plateNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find machine by plate: %w", err)
	}
	d := toDomainMachine(m)
	return &d, nil
}

func (r *PgxMachineRepository) ListMachinesByCompany(ctx context.Context, companyID string) ([]domain.Machine, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM machines
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY name, plate_number;
	`, machineColumns)
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query machines: %w", err)
	}
	defer rows.Close()

	machines := []domain.Machine{}
	for rows.Next() {
		m, err := scanMachine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan machine row: %w", err)
		}
		machines = append(machines, toDomainMachine(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating machine rows: %w", rows.Err())
	}
	return machines, nil
}

func (r *PgxMachineRepository) UpdateMachine(ctx context.Context, machine domain.Machine) error {
	query := `
		UPDATE machines
		SET name = $1, plate_number = $2, alias = $3, last_updated_at = $4, last_updated_by = $5
		WHERE machine_id = $6 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		machine.Name, machine.PlateNumber, machine.Alias,
		machine.LastUpdatedAt, machine.LastUpdatedBy, machine.MachineID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("plate number already registered: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update machine: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("machine not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxMachineRepository) MarkMachineDeleted(ctx context.Context, machineID string, deletedAt time.Time, deleterUserID string) error {
	query := `
		UPDATE machines
		SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
		WHERE machine_id = $3 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, deletedAt, deleterUserID, machineID)
	if err != nil {
		return fmt.Errorf("failed to mark machine as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("machine not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}
