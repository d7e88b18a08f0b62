package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/craneworks/craneops_backend/internal/apperrors"
	"github.com/craneworks/craneops_backend/internal/core/domain"
	portssvc "github.com/craneworks/craneops_backend/internal/core/ports/services"
	"github.com/craneworks/craneops_backend/internal/utils"
	"github.com/redis/go-redis/v9"
)

const shareKeyPrefix = "share:"

type shareService struct {
	BaseService
	redis *redis.Client
}

// NewShareService creates the ephemeral share link service. Links live only
// in Redis; expiry is enforced by the key TTL.
func NewShareService(redisClient *redis.Client) portssvc.ShareSvcFacade {
	return &shareService{redis: redisClient}
}

var _ portssvc.ShareSvcFacade = (*shareService)(nil)

func (s *shareService) CreateShareLink(ctx context.Context, companyID, password string, ttl time.Duration, creatorUserID string) (*domain.ShareLink, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("ttl must be positive: %w", apperrors.ErrValidation)
	}
	token, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return nil, fmt.Errorf("failed to generate share token: %w", err)
	}
	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash share password: %w", err)
	}

	link := &domain.ShareLink{
		Token:        token,
		CompanyID:    companyID,
		PasswordHash: passwordHash,
		CreatedBy:    creatorUserID,
		ExpiresAt:    time.Now().Add(ttl),
	}
	payload, err := json.Marshal(shareLinkRecord{
		Token:        link.Token,
		CompanyID:    link.CompanyID,
		PasswordHash: link.PasswordHash,
		CreatedBy:    link.CreatedBy,
		ExpiresAt:    link.ExpiresAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode share link: %w", err)
	}
	if err := s.redis.Set(ctx, shareKeyPrefix+token, payload, ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to store share link: %w", err)
	}

	s.LogInfo(ctx, "share link created",
		slog.String("company_id", companyID), slog.Time("expires_at", link.ExpiresAt))
	return link, nil
}

func (s *shareService) ResolveShareLink(ctx context.Context, token, password string) (*domain.ShareLink, error) {
	payload, err := s.redis.Get(ctx, shareKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up share link: %w", err)
	}

	var link shareLinkRecord
	if err := json.Unmarshal(payload, &link); err != nil {
		return nil, fmt.Errorf("failed to decode share link: %w", err)
	}
	if !utils.CheckPasswordHash(password, link.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return &domain.ShareLink{
		Token:        link.Token,
		CompanyID:    link.CompanyID,
		PasswordHash: link.PasswordHash,
		CreatedBy:    link.CreatedBy,
		ExpiresAt:    link.ExpiresAt,
	}, nil
}

// shareLinkRecord is the Redis payload. The password hash must round-trip,
// which the domain type's json tags deliberately prevent.
type shareLinkRecord struct {
	Token        string    `json:"token"`
	CompanyID    string    `json:"companyID"`
	PasswordHash string    `json:"passwordHash"`
	CreatedBy    string    `json:"createdBy"`
	ExpiresAt    time.Time `json:"expiresAt"`
}
