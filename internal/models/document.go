package models

import "time"

// Document is the documents table row.
type Document struct {
	DocumentID string    `db:"document_id"`
	CompanyID  string    `db:"company_id"`
	Filename   string    `db:"filename"`
	StoredName string    `db:"stored_name"`
	Size       int64     `db:"size"`
	Mime       string    `db:"mime"`
	Storage    string    `db:"storage"`
	UploadedBy string    `db:"uploaded_by"`
	UploadedAt time.Time `db:"uploaded_at"`
}
