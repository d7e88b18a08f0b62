package models

import (
	"database/sql"
	"time"
)

// User is the users table row.
type User struct {
	UserID       string         `db:"user_id"`
	Username     string         `db:"username"`
	Name         string         `db:"name"`
	Phone        string         `db:"phone"`
	PasswordHash string         `db:"password_hash"`
	Role         string         `db:"role"`
	Status       string         `db:"status"`
	CompanyID    string         `db:"company_id"`
	PendingPhone sql.NullString `db:"pending_phone"`

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`

	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
