package services

import (
	"context"
	"time"

	"github.com/craneworks/craneops_backend/internal/core/domain"
	"github.com/craneworks/craneops_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetUserByPhone retrieves a user by phone number.
	GetUserByPhone(ctx context.Context, phone string) (*domain.User, error)

	// ListCompanyStaff lists every user of the company, the worker directory
	// of the original system.
	ListCompanyStaff(ctx context.Context, companyID string) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// CreateUser creates a user inside a company; the username is generated
	// from the name and deduplicated with numeric suffixes.
	CreateUser(ctx context.Context, companyID string, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)

	// UpdateUser updates name/phone/role of a staff member of the caller's
	// company.
	UpdateUser(ctx context.Context, companyID string, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error)

	// RequestPhoneChange records a phone change awaiting boss approval.
	RequestPhoneChange(ctx context.Context, userID string, newPhone string) (*domain.User, error)

	// UpdateRefreshToken stores the hashed refresh token for a user.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error

	// ClearRefreshToken clears the refresh token for a user.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserLifecycleSvc defines approval and removal of staff accounts. All three
// operations are scoped to the approver's company and answer ErrNotFound for
// accounts of other companies.
type UserLifecycleSvc interface {
	// ApproveWorker activates a pending worker account.
	ApproveWorker(ctx context.Context, companyID string, userID string, approverUserID string) (*domain.User, error)

	// ApprovePhoneChange applies a pending phone change.
	ApprovePhoneChange(ctx context.Context, companyID string, userID string, approverUserID string) (*domain.User, error)

	// DeactivateUser marks a user as deleted (soft delete).
	DeactivateUser(ctx context.Context, companyID string, userID string, requestingUserID string) error
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
}
