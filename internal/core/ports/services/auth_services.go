package services

import (
	"context"
	"time"

	"github.com/craneworks/craneops_backend/internal/core/domain"
	"github.com/craneworks/craneops_backend/internal/dto"
)

// AuthSvcFacade covers registration, login and token rotation.
type AuthSvcFacade interface {
	// RegisterCompany creates a company plus its boss account and returns the
	// authenticated boss. The company join code is generated here.
	RegisterCompany(ctx context.Context, req dto.RegisterCompanyRequest) (*domain.User, *domain.Company, error)

	// RegisterWorker self-registers a worker against a company name and join
	// code; the account starts in pending status.
	RegisterWorker(ctx context.Context, req dto.RegisterWorkerRequest) (*domain.User, error)

	// Login authenticates by phone (or username) and password. Pending worker
	// accounts are rejected with apperrors.ErrPendingApproval even when the
	// credentials are correct.
	Login(ctx context.Context, login, password string) (*domain.User, error)

	// Refresh validates a refresh token and returns the user it belongs to.
	Refresh(ctx context.Context, userID, refreshToken string) (*domain.User, error)

	// Logout clears the stored refresh token.
	Logout(ctx context.Context, userID string) error
}

// TokenSvcFacade issues access and refresh tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
