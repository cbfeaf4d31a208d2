package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/projtrack/project-tracker-api/internal/constants"
	apierrors "github.com/projtrack/project-tracker-api/internal/errors"
	"github.com/projtrack/project-tracker-api/internal/token"
)

// RequireAuth validates the bearer token and attaches the verified identity
// to the request context. A missing credential answers 401; a credential that
// fails verification answers 403.
func RequireAuth(verifier *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		claims, err := verifier.Verify(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			apierrors.Forbidden(c, "Invalid or expired token")
			c.Abort()
			return
		}

		// Store identity in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyUserEmail, claims.Email)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetUserEmail retrieves the current user email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(constants.ContextKeyUserEmail)
	if !exists {
		return "", false
	}
	s, ok := email.(string)
	return s, ok
}
