package domain

import "time"

// ShareLink grants password-protected read-only access to a company's job
// list. Links are ephemeral: they live in Redis with a TTL and are never
// persisted to the database.
type ShareLink struct {
	Token        string    `json:"token"`
	CompanyID    string    `json:"companyID"`
	PasswordHash string    `json:"-"`
	CreatedBy    string    `json:"createdBy"`
	ExpiresAt    time.Time `json:"expiresAt"`
}
