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
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDocumentRepository struct {
	BaseRepository
}

func newPgxDocumentRepository(db *pgxpool.Pool) portsrepo.DocumentRepository {
	return &PgxDocumentRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.DocumentRepository = (*PgxDocumentRepository)(nil)

func toDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID: m.DocumentID,
		CompanyID:  m.CompanyID,
		Filename:   m.Filename,
		StoredName: m.StoredName,
		Size:       m.Size,
		Mime:       m.Mime,
		Storage:    domain.StorageDriver(m.Storage),
		UploadedBy: m.UploadedBy,
		UploadedAt: m.UploadedAt,
	}
}

const documentColumns = `document_id, company_id, filename, stored_name, size, mime, storage, uploaded_by, uploaded_at`

func scanDocument(row pgx.Row) (models.Document, error) {
	var m models.Document
	err := row.Scan(
		&m.DocumentID,
		&m.CompanyID,
		&m.Filename,
		&m.StoredName,
		&m.Size,
		&m.Mime,
		&m.Storage,
		&m.UploadedBy,
		&m.UploadedAt,
	)
	return m, err
}

func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	query := `
		INSERT INTO documents (document_id, company_id, filename, stored_name, size, mime, storage, uploaded_by, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		doc.DocumentID, doc.CompanyID, doc.Filename, doc.StoredName,
		doc.Size, doc.Mime, string(doc.Storage), doc.UploadedBy, doc.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM documents WHERE document_id = $1;`, documentColumns)
	m, err := scanDocument(r.Pool.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find document by ID %s: %w", documentID, err)
	}
	d := toDomainDocument(m)
	return &d, nil
}

func (r *PgxDocumentRepository) ListDocumentsByCompany(ctx context.Context, companyID string) ([]domain.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM documents
		WHERE company_id = $1
		ORDER BY uploaded_at DESC;
	`, documentColumns)
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	docs := []domain.Document{}
	for rows.Next() {
		m, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		docs = append(docs, toDomainDocument(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", rows.Err())
	}
	return docs, nil
}

func (r *PgxDocumentRepository) DeleteDocument(ctx context.Context, documentID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM documents WHERE document_id = $1;`, documentID)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("document not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
