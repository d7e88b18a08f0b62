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

type PgxPartnerRepository struct {
	BaseRepository
}

func newPgxPartnerRepository(db *pgxpool.Pool) portsrepo.PartnerRepository {
	return &PgxPartnerRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.PartnerRepository = (*PgxPartnerRepository)(nil)

func toDomainPartner(m models.Partner) domain.Partner {
	return domain.Partner{
		PartnerID: m.PartnerID,
		CompanyID: m.CompanyID,
		Kind:      domain.PartnerKind(m.Kind),
		Name:      m.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const partnerColumns = `partner_id, company_id, kind, name, created_at, created_by, last_updated_at, last_updated_by`

func scanPartner(row pgx.Row) (models.Partner, error) {
	var m models.Partner
	err := row.Scan(
		&m.PartnerID,
		&m.CompanyID,
		&m.Kind,
		&m.Name,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxPartnerRepository) SavePartner(ctx context.Context, partner domain.Partner) error {
	query := `
		INSERT INTO partners (partner_id, company_id, kind, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		partner.PartnerID, partner.CompanyID, string(partner.Kind), partner.Name,
		partner.CreatedAt, partner.CreatedBy, partner.LastUpdatedAt, partner.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("partner already in directory: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save partner: %w", err)
	}
	return nil
}

func (r *PgxPartnerRepository) FindPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error) {
	query := fmt.Sprintf(`SELECT %s FROM partners WHERE partner_id = $1;`, partnerColumns)
	m, err := scanPartner(r.Pool.QueryRow(ctx, query, partnerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find partner by ID %s: %w", partnerID, err)
	}
	d := toDomainPartner(m)
	return &d, nil
}

func (r *PgxPartnerRepository) FindPartnerByName(ctx context.Context, companyID string, kind domain.PartnerKind, name string) (*domain.Partner, error) {
	query := fmt.Sprintf(`SELECT %s FROM partners WHERE company_id = $1 AND kind = $2 AND name = $3;`, partnerColumns)
	m, err := scanPartner(r.Pool.QueryRow(ctx, query, companyID, string(kind), name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find partner by name: %w", err)
	}
	d := toDomainPartner(m)
	return &d, nil
}

func (r *PgxPartnerRepository) ListPartnersByCompany(ctx context.Context, companyID string, kind domain.PartnerKind) ([]domain.Partner, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM partners
		WHERE company_id = $1 AND kind = $2
		ORDER BY name;
	`, partnerColumns)
	rows, err := r.Pool.Query(ctx, query, companyID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to query partners: %w", err)
	}
	defer rows.Close()

	partners := []domain.Partner{}
	for rows.Next() {
		m, err := scanPartner(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan partner row: %w", err)
		}
		partners = append(partners, toDomainPartner(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating partner rows: %w", rows.Err())
	}
	return partners, nil
}

func (r *PgxPartnerRepository) DeletePartner(ctx context.Context, partnerID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM partners WHERE partner_id = $1;`, partnerID)
	if err != nil {
		return fmt.Errorf("failed to delete partner: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("partner not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
