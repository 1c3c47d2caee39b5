// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

// UserIDKey is the context key for the acting user's ID.
const UserIDKey ContextKey = "user_id"

// IdentityMiddleware resolves the acting user from the X-User-ID header.
// Authentication is handled upstream; every request reaching the API carries
// the owner it acts for.
type IdentityMiddleware struct{}

// NewIdentityMiddleware creates a new identity middleware instance.
func NewIdentityMiddleware() *IdentityMiddleware {
	return &IdentityMiddleware{}
}

// Resolve returns a Gin middleware handler that requires the X-User-ID header.
func (m *IdentityMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("X-User-ID")
		if header == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "X-User-ID header is required",
			})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(header)
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid X-User-ID header format",
			})
			c.Abort()
			return
		}

		c.Set(string(UserIDKey), userID)
		c.Next()
	}
}

// GetUserIDFromContext extracts the user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(string(UserIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}
