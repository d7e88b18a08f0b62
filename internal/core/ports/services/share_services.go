package services

import (
	"context"
	"time"

	"github.com/craneworks/craneops_backend/internal/core/domain"
)

// ShareSvcFacade issues and resolves ephemeral share links.
type ShareSvcFacade interface {
	// CreateShareLink stores a password-protected link with the given TTL and
	// returns it. The link disappears when the TTL elapses.
	CreateShareLink(ctx context.Context, companyID, password string, ttl time.Duration, creatorUserID string) (*domain.ShareLink, error)

	// ResolveShareLink returns the company a valid token+password pair grants
	// read access to.
	ResolveShareLink(ctx context.Context, token, password string) (*domain.ShareLink, error)
}
