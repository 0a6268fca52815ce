package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/pressuremap-backend-go/internal/service"
	"github.com/jengzang/pressuremap-backend-go/pkg/response"
)

// ContextSerialKey holds the paired device serial in the gin context
const ContextSerialKey = "device_serial"

// TokenVerifier validates bearer tokens
type TokenVerifier interface {
	Verify(token string) (*service.DeviceClaims, error)
}

// Auth requires a valid device session bearer token
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			response.Error(c, http.StatusUnauthorized, "Missing bearer token", nil)
			c.Abort()
			return
		}

		claims, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid session token", err)
			c.Abort()
			return
		}

		c.Set(ContextSerialKey, claims.Subject)
		c.Next()
	}
}
