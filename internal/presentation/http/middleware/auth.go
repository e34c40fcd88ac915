// Package middleware provides gin middleware for the HTTP API.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/security"
)

const claimsKey = "authClaims"

// TokenValidator checks a bearer token and returns its claims.
type TokenValidator interface {
	ValidateToken(token string) (*security.Claims, error)
}

// BearerToken extracts the token from the Authorization header. Browsers
// cannot set headers on websocket upgrades, so the token query parameter is
// accepted as well.
func BearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return c.Query("token")
}

// RequireAuth rejects requests without a valid token with 401
func RequireAuth(validator TokenValidator, logger *logging.ChanneledLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			logger.Auth().Warn("Rejected token", "path", c.Request.URL.Path, "error", err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth. Non-admin tokens get 403.
func RequireAdmin(logger *logging.ChanneledLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
			return
		}
		if !claims.IsAdmin {
			logger.Auth().Warn("Unauthorized admin access attempt", "userId", claims.Subject, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Admin access required"})
			return
		}
		c.Next()
	}
}

// GetClaims retrieves the claims RequireAuth stored on the context
func GetClaims(c *gin.Context) (*security.Claims, bool) {
	value, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*security.Claims)
	return claims, ok
}

// Actor names the caller for logs and events.
func Actor(c *gin.Context) string {
	if claims, ok := GetClaims(c); ok {
		return claims.Email
	}
	return "anonymous"
}
