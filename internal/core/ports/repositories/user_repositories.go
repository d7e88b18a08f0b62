package repositories

import (
	"context"
	"time"

	"github.com/craneworks/craneops_backend/internal/core/domain"
)

// UserReader provides read access to users.
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUserByPhone(ctx context.Context, phone string) (*domain.User, error)
	ListUsersByCompany(ctx context.Context, companyID string) ([]domain.User, error)
}

// UserWriter provides write access to users.
type UserWriter interface {
	SaveUser(ctx context.Context, user domain.User) error
	UpdateUser(ctx context.Context, user domain.User) error
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error
	ClearRefreshToken(ctx context.Context, userID string) error
	MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deleterUserID string) error
}

// UserRepository combines read and write access to users.
type UserRepository interface {
	UserReader
	UserWriter
}
