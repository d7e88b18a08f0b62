package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/craneworks/craneops_backend/internal/apperrors"
	"github.com/craneworks/craneops_backend/internal/core/domain"
	portsrepo "github.com/craneworks/craneops_backend/internal/core/ports/repositories"
	portssvc "github.com/craneworks/craneops_backend/internal/core/ports/services"
	"github.com/craneworks/craneops_backend/internal/platform/config"
	"github.com/google/uuid"
)

const presignExpiry = 15 * time.Minute

type documentService struct {
	BaseService
	docRepo portsrepo.DocumentRepository
	cfg     *config.Config
}

// NewDocumentService creates the attachment storage service. The storage
// driver (local disk or S3) comes from configuration.
func NewDocumentService(docRepo portsrepo.DocumentRepository, cfg *config.Config) portssvc.DocumentSvcFacade {
	return &documentService{docRepo: docRepo, cfg: cfg}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

func (s *documentService) s3Client(ctx context.Context) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(s.cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.S3AccessKey, s.cfg.S3SecretKey, "",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if s.cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.S3BaseEndpoint)
		}
	}), nil
}

// storedName namespaces keys per company so one tenant can never reach
// another tenant's files.
func storedName(companyID, filename string) string {
	return fmt.Sprintf("%s/%s%s", companyID, uuid.NewString(), filepath.Ext(filename))
}

func (s *documentService) Upload(ctx context.Context, companyID string, filename, mime string, size int64, content io.Reader, uploaderUserID string) (*domain.Document, error) {
	doc := &domain.Document{
		DocumentID: uuid.NewString(),
		CompanyID:  companyID,
		Filename:   filename,
		StoredName: storedName(companyID, filename),
		Size:       size,
		Mime:       mime,
		Storage:    domain.StorageDriver(s.cfg.StorageDriver),
		UploadedBy: uploaderUserID,
		UploadedAt: time.Now(),
	}

	switch doc.Storage {
	case domain.StorageS3:
		client, err := s.s3Client(ctx)
		if err != nil {
			return nil, err
		}
		_, err = client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.cfg.S3Bucket),
			Key:         aws.String(doc.StoredName),
			Body:        content,
			ContentType: aws.String(mime),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to upload to S3: %w", err)
		}
	case domain.StorageLocal:
		path := filepath.Join(s.cfg.UploadDir, doc.StoredName)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %w", err)
		}
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create upload file: %w", err)
		}
		if _, err := io.Copy(f, content); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write upload file: %w", err)
		}
		if err := f.Close(); err != nil {
			return nil, fmt.Errorf("failed to close upload file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown storage driver %q: %w", s.cfg.StorageDriver, apperrors.ErrValidation)
	}

	if err := s.docRepo.SaveDocument(ctx, *doc); err != nil {
		return nil, fmt.Errorf("failed to save document metadata: %w", err)
	}
	s.LogInfo(ctx, "document uploaded",
		slog.String("document_id", doc.DocumentID), slog.String("storage", string(doc.Storage)))
	return doc, nil
}

func (s *documentService) ListDocuments(ctx context.Context, companyID string) ([]domain.Document, error) {
	docs, err := s.docRepo.ListDocumentsByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// findCompanyDocument loads document metadata and hides it behind ErrNotFound
// when it belongs to another company.
func (s *documentService) findCompanyDocument(ctx context.Context, companyID, documentID string) (*domain.Document, error) {
	doc, err := s.docRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.CompanyID != companyID {
		return nil, fmt.Errorf("document %s: %w", documentID, apperrors.ErrNotFound)
	}
	return doc, nil
}

func (s *documentService) DownloadURL(ctx context.Context, companyID string, documentID string) (string, error) {
	doc, err := s.findCompanyDocument(ctx, companyID, documentID)
	if err != nil {
		return "", fmt.Errorf("failed to find document: %w", err)
	}

	switch doc.Storage {
	case domain.StorageS3:
		client, err := s.s3Client(ctx)
		if err != nil {
			return "", err
		}
		presigner := s3.NewPresignClient(client)
		req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.cfg.S3Bucket),
			Key:    aws.String(doc.StoredName),
		}, s3.WithPresignExpires(presignExpiry))
		if err != nil {
			return "", fmt.Errorf("failed to presign download: %w", err)
		}
		return req.URL, nil
	case domain.StorageLocal:
		return "/uploads/" + doc.StoredName, nil
	default:
		return "", fmt.Errorf("unknown storage driver %q: %w", doc.Storage, apperrors.ErrValidation)
	}
}

func (s *documentService) Delete(ctx context.Context, companyID string, documentID string, requestingUserID string) error {
	doc, err := s.findCompanyDocument(ctx, companyID, documentID)
	if err != nil {
		return fmt.Errorf("failed to find document for deletion: %w", err)
	}

	switch doc.Storage {
	case domain.StorageS3:
		client, err := s.s3Client(ctx)
		if err != nil {
			return err
		}
		_, err = client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.cfg.S3Bucket),
			Key:    aws.String(doc.StoredName),
		})
		if err != nil {
			return fmt.Errorf("failed to delete from S3: %w", err)
		}
	case domain.StorageLocal:
		err := os.Remove(filepath.Join(s.cfg.UploadDir, doc.StoredName))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to delete upload file: %w", err)
		}
	}

	if err := s.docRepo.DeleteDocument(ctx, documentID); err != nil {
		return fmt.Errorf("failed to delete document metadata: %w", err)
	}
	s.LogInfo(ctx, "document deleted",
		slog.String("document_id", documentID), slog.String("deleted_by", requestingUserID))
	return nil
}
