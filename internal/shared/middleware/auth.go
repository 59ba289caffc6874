package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/warewise/server/internal/domain/identity"
	"github.com/warewise/server/internal/domain/session"
)

const (
	// AuthorizationHeader is the header key for authorization.
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens.
	BearerPrefix = "Bearer "
	// UserIDKey is the context key for user ID.
	UserIDKey = "user_id"
	// EmailKey is the context key for email.
	EmailKey = "email"
	// SessionIDKey is the context key for the session id.
	SessionIDKey = "session_id"
)

// SessionValidator defines the interface for session token validation.
type SessionValidator interface {
	ValidateSessionToken(token string) (*identity.Claims, error)
}

// Auth returns a middleware that validates session tokens.
// If the token is valid, it sets user_id, email and session_id in the context.
// If optional is true, the middleware will not abort on missing/invalid tokens.
func Auth(validator SessionValidator, optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			if !optional {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": gin.H{
						"code":    "UNAUTHORIZED",
						"message": "Authorization header required",
					},
				})
			}
			c.Next()
			return
		}

		claims, err := validator.ValidateSessionToken(token)
		if err != nil {
			if !optional {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": gin.H{
						"code":    "INVALID_TOKEN",
						"message": "Invalid or expired token",
					},
				})
			}
			c.Next()
			return
		}

		// Set user info in context
		c.Set(UserIDKey, claims.UserID)
		c.Set(EmailKey, claims.Email)
		c.Set(SessionIDKey, claims.SessionID())

		c.Next()
	}
}

// RequireAuth returns a middleware that requires a valid session token.
func RequireAuth(validator SessionValidator) gin.HandlerFunc {
	return Auth(validator, false)
}

// OptionalAuth returns a middleware that optionally validates session tokens.
func OptionalAuth(validator SessionValidator) gin.HandlerFunc {
	return Auth(validator, true)
}

// extractBearerToken extracts the bearer token from the Authorization header.
func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		return ""
	}

	if strings.HasPrefix(authHeader, BearerPrefix) {
		return strings.TrimPrefix(authHeader, BearerPrefix)
	}

	return ""
}

// GetUserID returns the user ID from context.
// Returns uuid.Nil if not found.
func GetUserID(c *gin.Context) uuid.UUID {
	if val, exists := c.Get(UserIDKey); exists {
		if userID, ok := val.(uuid.UUID); ok {
			return userID
		}
	}
	return uuid.Nil
}

// GetEmail returns the email from context.
// Returns empty string if not found.
func GetEmail(c *gin.Context) string {
	if val, exists := c.Get(EmailKey); exists {
		if email, ok := val.(string); ok {
			return email
		}
	}
	return ""
}

// GetSessionID returns the session id from context.
func GetSessionID(c *gin.Context) string {
	if val, exists := c.Get(SessionIDKey); exists {
		if id, ok := val.(string); ok {
			return id
		}
	}
	return ""
}

// GetIdentity returns the caller identity from context, or nil when the
// request is unauthenticated.
func GetIdentity(c *gin.Context) *session.Identity {
	userID := GetUserID(c)
	if userID == uuid.Nil {
		return nil
	}
	return &session.Identity{
		UserID:    userID,
		Email:     GetEmail(c),
		SessionID: GetSessionID(c),
	}
}

// IsAuthenticated returns true if the user is authenticated.
func IsAuthenticated(c *gin.Context) bool {
	return GetUserID(c) != uuid.Nil
}
