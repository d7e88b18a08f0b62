package domain

import "time"

// StorageDriver identifies where a document's bytes live.
type StorageDriver string

const (
	StorageLocal StorageDriver = "local"
	StorageS3    StorageDriver = "s3"
)

// Document is an uploaded attachment scoped to a company.
type Document struct {
	DocumentID string        `json:"documentID"`
	CompanyID  string        `json:"companyID"`
	Filename   string        `json:"filename"`   // original name, may be non-ASCII
	StoredName string        `json:"storedName"` // key on disk or in the bucket
	Size       int64         `json:"size"`
	Mime       string        `json:"mime"`
	Storage    StorageDriver `json:"storage"`
	UploadedBy string        `json:"uploadedBy"`
	UploadedAt time.Time     `json:"uploadedAt"`
}
