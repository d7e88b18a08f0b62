package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/craneworks/craneops_backend/internal/apperrors"
	"github.com/craneworks/craneops_backend/internal/core/domain"
	portsrepo "github.com/craneworks/craneops_backend/internal/core/ports/repositories"
	"github.com/craneworks/craneops_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCompanyRepository struct {
	BaseRepository
}

func newPgxCompanyRepository(db *pgxpool.Pool) portsrepo.CompanyRepository {
	return &PgxCompanyRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.CompanyRepository = (*PgxCompanyRepository)(nil)

func toModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID: d.CompanyID,
		Name:      d.Name,
		JoinCode:  d.JoinCode,
		Phone:     d.Phone,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID: m.CompanyID,
		Name:      m.Name,
		JoinCode:  m.JoinCode,
		Phone:     m.Phone,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanCompany(row pgx.Row) (models.Company, error) {
	var m models.Company
	err := row.Scan(
		&m.CompanyID,
		&m.Name,
		&m.JoinCode,
		&m.Phone,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

const companyColumns = `company_id, name, join_code, phone, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	m := toModelCompany(company)
	query := `
		INSERT INTO companies (company_id, name, join_code, phone, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CompanyID, m.Name, m.JoinCode, m.Phone,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("company name already registered: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save company: %w", err)
	}
	return nil
}

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies WHERE company_id = $1;`, companyColumns)
	m, err := scanCompany(r.Pool.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company by ID %s: %w", companyID, err)
	}
	d := toDomainCompany(m)
	return &d, nil
}

func (r *PgxCompanyRepository) FindCompanyByName(ctx context.Context, name string) (*domain.Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies WHERE name = $1;`, companyColumns)
	m, err := scanCompany(r.Pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company by name: %w", err)
	}
	d := toDomainCompany(m)
	return &d, nil
}

func (r *PgxCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	m := toModelCompany(company)
	query := `
		UPDATE companies
		SET name = $1, join_code = $2, phone = $3, last_updated_at = $4, last_updated_by = $5
		WHERE company_id = $6;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Name, m.JoinCode, m.Phone, m.LastUpdatedAt, m.LastUpdatedBy, m.CompanyID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("company name already registered: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update company: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("company not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
