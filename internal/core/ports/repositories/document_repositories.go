package repositories

import (
	"context"

	"github.com/craneworks/craneops_backend/internal/core/domain"
)

// DocumentRepository provides access to uploaded document metadata.
type DocumentRepository interface {
	SaveDocument(ctx context.Context, doc domain.Document) error
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)
	ListDocumentsByCompany(ctx context.Context, companyID string) ([]domain.Document, error)
	DeleteDocument(ctx context.Context, documentID string) error
}
