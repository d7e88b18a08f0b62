package dto

import "time"

// CreateShareLinkRequest issues a password-protected read-only link.
type CreateShareLinkRequest struct {
	Password    string `json:"password" binding:"required,min=4"`
	ExpiryHours int    `json:"expiryHours" binding:"required,min=1,max=720"`
}

// ShareLinkResponse returns the issued token and its expiry.
type ShareLinkResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SharedJobsParams are accepted on the public shared view.
type SharedJobsParams struct {
	Password string `form:"password" binding:"required"`
	From     string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To       string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// MailExportRequest emails an export to the given recipients.
type MailExportRequest struct {
	To      []string `json:"to" binding:"required,min=1,dive,email"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
	From    string   `json:"from" binding:"omitempty,datetime=2006-01-02"`
	ToDate  string   `json:"toDate" binding:"omitempty,datetime=2006-01-02"`
}
