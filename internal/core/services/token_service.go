package services

import (
	"context"
	"fmt"
	"time"

	"github.com/craneworks/craneops_backend/internal/core/domain"
	portssvc "github.com/craneworks/craneops_backend/internal/core/ports/services"
	"github.com/craneworks/craneops_backend/internal/platform/config"
	"github.com/craneworks/craneops_backend/internal/utils"
)

type tokenService struct {
	BaseService
	jwtSecret          string
	jwtExpiry          time.Duration
	jwtIssuer          string
	refreshTokenExpiry time.Duration
}

// NewTokenService creates the access/refresh token issuer.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{
		jwtSecret:          cfg.JWTSecret,
		jwtExpiry:          cfg.JWTExpiryDuration,
		jwtIssuer:          cfg.JWTIssuer,
		refreshTokenExpiry: cfg.RefreshTokenExpiryDuration,
	}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiry := time.Now().Add(s.jwtExpiry)
	token, err := utils.GenerateJWT(user.UserID, user.CompanyID, string(user.Role), s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, expiry, nil
}

func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	token, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return token, time.Now().Add(s.refreshTokenExpiry), nil
}
