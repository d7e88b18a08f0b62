package dto

import (
	"time"

	"github.com/craneworks/craneops_backend/internal/core/domain"
)

// DocumentResponse is the API shape of an uploaded document.
type DocumentResponse struct {
	DocumentID string    `json:"documentID"`
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	Mime       string    `json:"mime"`
	Storage    string    `json:"storage"`
	UploadedBy string    `json:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// ListDocumentsResponse wraps a document listing.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

// DownloadURLResponse carries a presigned or static download URL.
type DownloadURLResponse struct {
	URL string `json:"url"`
}

// ToDocumentResponse maps a domain document to its API shape.
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID: d.DocumentID,
		Filename:   d.Filename,
		Size:       d.Size,
		Mime:       d.Mime,
		Storage:    string(d.Storage),
		UploadedBy: d.UploadedBy,
		UploadedAt: d.UploadedAt,
	}
}
