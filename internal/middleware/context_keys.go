package middleware

import (
	"github.com/craneworks/craneops_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey    = contextKey("userID")
	companyIDKey = contextKey("companyID")
	roleKey      = contextKey("role")
)

// GetUserIDFromContext retrieves the authenticated user ID from the request
// context. It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	v := c.Request.Context().Value(userIDKey)
	if v == nil {
		return "", false
	}
	userID, ok := v.(string)
	return userID, ok
}

// GetCompanyIDFromContext retrieves the authenticated user's company ID.
func GetCompanyIDFromContext(c *gin.Context) (string, bool) {
	v := c.Request.Context().Value(companyIDKey)
	if v == nil {
		return "", false
	}
	companyID, ok := v.(string)
	return companyID, ok
}

// GetRoleFromContext retrieves the authenticated user's role.
func GetRoleFromContext(c *gin.Context) (domain.UserRole, bool) {
	v := c.Request.Context().Value(roleKey)
	if v == nil {
		return "", false
	}
	role, ok := v.(domain.UserRole)
	return role, ok
}
