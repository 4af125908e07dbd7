// README: Firebase ID-token auth middleware and role guard for admin routes.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tvirti/internal/infra"
)

const (
	callerUIDKey  = "callerUID"
	callerRoleKey = "callerRole"
)

// Auth verifies the "Authorization: Bearer <Firebase ID token>" header and stores the
// caller's UID and role claim on the context.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		token, err := verifier.VerifyIDToken(c.Request.Context(), strings.TrimSpace(raw))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(callerUIDKey, token.UID)
		if role, ok := token.Claims["role"].(string); ok {
			c.Set(callerRoleKey, role)
		}
		c.Next()
	}
}

// RequireRole rejects callers whose role claim is not role. It must run after Auth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CallerRole(c) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

func CallerUID(c *gin.Context) string {
	return c.GetString(callerUIDKey)
}

func CallerRole(c *gin.Context) string {
	return c.GetString(callerRoleKey)
}
