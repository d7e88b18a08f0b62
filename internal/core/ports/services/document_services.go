package services

import (
	"context"
	"io"

	"github.com/craneworks/craneops_backend/internal/core/domain"
)

// DocumentSvcFacade stores uploaded attachments on local disk or S3.
type DocumentSvcFacade interface {
	Upload(ctx context.Context, companyID string, filename, mime string, size int64, content io.Reader, uploaderUserID string) (*domain.Document, error)
	ListDocuments(ctx context.Context, companyID string) ([]domain.Document, error)

	// DownloadURL returns a URL the client can fetch the bytes from: a
	// presigned S3 URL or a local static path, depending on the driver.
	// Documents of other companies answer ErrNotFound.
	DownloadURL(ctx context.Context, companyID string, documentID string) (string, error)

	Delete(ctx context.Context, companyID string, documentID string, requestingUserID string) error
}
