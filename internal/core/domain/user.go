package domain

import "time"

// UserRole defines the access tier a user has inside their company.
type UserRole string

const (
	RoleBoss    UserRole = "boss"
	RoleManager UserRole = "manager"
	RoleWorker  UserRole = "worker"
)

// IsManagerial reports whether the role may manage directories, ledgers and staff.
func (r UserRole) IsManagerial() bool {
	return r == RoleBoss || r == RoleManager
}

// UserStatus defines the lifecycle state of a user account.
// Workers self-register as pending and must be approved by the boss before
// they can log in.
type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusPending UserStatus = "pending"
)

// User represents a staff account belonging to a company.
type User struct {
	UserID       string     `json:"userID"`
	Username     string     `json:"username"` // generated from the name, deduplicated with numeric suffixes
	Name         string     `json:"name"`
	Phone        string     `json:"phone"`
	PasswordHash string     `json:"-"`
	Role         UserRole   `json:"role"`
	Status       UserStatus `json:"status"`
	CompanyID    string     `json:"companyID"`

	// PendingPhone holds a requested phone change awaiting boss approval.
	PendingPhone *string `json:"pendingPhone,omitempty"`

	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`

	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
