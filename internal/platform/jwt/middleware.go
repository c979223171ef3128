package jwtmw

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"task_backend/internal/api"
)

// ContextUsername is the gin context key holding the authenticated username.
const ContextUsername = "username"

// TokenVerifier verifies a raw bearer token.
type TokenVerifier interface {
	Verify(tokenStr string) (*Claims, error)
}

// AuthRequired returns a Gin middleware function that validates bearer tokens
// and restricts access to authenticated users only.
func AuthRequired(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Code: "UNAUTHORIZED", Message: "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		claims, err := verifier.Verify(tokenStr)
		if err != nil {
			slog.Warn("token rejected", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
			return
		}

		c.Set(ContextUsername, claims.Subject)
		c.Next()
	}
}

// UsernameFrom returns the username stored by AuthRequired.
func UsernameFrom(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextUsername)
	if !ok {
		return "", false
	}
	username, ok := v.(string)
	return username, ok && username != ""
}
