package dto

import (
	"time"

	"github.com/craneworks/craneops_backend/internal/core/domain"
)

// CreateUserRequest adds a staff member directly (boss/manager action, no
// approval round-trip).
type CreateUserRequest struct {
	Name     string          `json:"name" binding:"required"`
	Phone    string          `json:"phone" binding:"required,krphone"`
	Password string          `json:"password" binding:"required,min=4"`
	Role     domain.UserRole `json:"role" binding:"required,oneof=boss manager worker"`
}

// UpdateUserRequest updates staff details. Nil fields are left unchanged.
type UpdateUserRequest struct {
	Name  *string          `json:"name,omitempty"`
	Phone *string          `json:"phone,omitempty" binding:"omitempty,krphone"`
	Role  *domain.UserRole `json:"role,omitempty" binding:"omitempty,oneof=boss manager worker"`
}

// RequestPhoneChangeRequest records a phone change for boss approval.
type RequestPhoneChangeRequest struct {
	Phone string `json:"phone" binding:"required,krphone"`
}

// UserResponse is the API shape of a user.
type UserResponse struct {
	UserID       string            `json:"userID"`
	Username     string            `json:"username"`
	Name         string            `json:"name"`
	Phone        string            `json:"phone"`
	Role         domain.UserRole   `json:"role"`
	Status       domain.UserStatus `json:"status"`
	CompanyID    string            `json:"companyID"`
	PendingPhone *string           `json:"pendingPhone,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// ListUsersResponse wraps the company staff listing.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserResponse maps a domain user to its API shape.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:       u.UserID,
		Username:     u.Username,
		Name:         u.Name,
		Phone:        u.Phone,
		Role:         u.Role,
		Status:       u.Status,
		CompanyID:    u.CompanyID,
		PendingPhone: u.PendingPhone,
		CreatedAt:    u.CreatedAt,
	}
}
