package dto

import (
	"time"

	"github.com/craneworks/craneops_backend/internal/core/domain"
)

// RegisterCompanyRequest creates a company together with its boss account.
type RegisterCompanyRequest struct {
	CompanyName  string `json:"companyName" binding:"required"`
	CompanyPhone string `json:"companyPhone"`
	BossName     string `json:"bossName" binding:"required"`
	Phone        string `json:"phone" binding:"required,krphone"`
	Password     string `json:"password" binding:"required,min=4"`
}

// RegisterWorkerRequest self-registers a worker against an existing company.
type RegisterWorkerRequest struct {
	CompanyName string `json:"companyName" binding:"required"`
	JoinCode    string `json:"joinCode" binding:"required,len=6,numeric"`
	Name        string `json:"name" binding:"required"`
	Phone       string `json:"phone" binding:"required,krphone"`
	Password    string `json:"password" binding:"required,min=4"`
}

// LoginRequest authenticates by phone (or generated username) and password.
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest rotates an access token using a refresh token.
type RefreshRequest struct {
	UserID       string `json:"userID" binding:"required"`
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthResponse carries tokens plus the authenticated user.
type AuthResponse struct {
	AccessToken        string       `json:"accessToken"`
	AccessTokenExpiry  time.Time    `json:"accessTokenExpiry"`
	RefreshToken       string       `json:"refreshToken,omitempty"`
	RefreshTokenExpiry time.Time    `json:"refreshTokenExpiry,omitempty"`
	User               UserResponse `json:"user"`
}

// RegisterCompanyResponse additionally returns the generated join code so the
// boss can hand it to workers.
type RegisterCompanyResponse struct {
	AuthResponse
	Company CompanyResponse `json:"company"`
}

// ToAuthResponse assembles an AuthResponse from tokens and a user.
func ToAuthResponse(user *domain.User, accessToken string, accessExpiry time.Time, refreshToken string, refreshExpiry time.Time) AuthResponse {
	return AuthResponse{
		AccessToken:        accessToken,
		AccessTokenExpiry:  accessExpiry,
		RefreshToken:       refreshToken,
		RefreshTokenExpiry: refreshExpiry,
		User:               ToUserResponse(user),
	}
}
