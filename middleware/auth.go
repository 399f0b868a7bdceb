package middleware

import (
	"net/http"
	"strings"

	"cabanero/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// Context keys set for downstream handlers.
const (
	ContextClienteID  = "clienteID"
	ContextHasBilling = "hasBilling"
)

// SessionAuthMiddleware resolves the bearer token against the auth
// subsystem's Redis session store and exposes the customer identity to
// handlers. Session creation and teardown live in the external auth service;
// this middleware only reads.
func SessionAuthMiddleware(authClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		session, err := utils.GetAuthSession(authClient, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}
		if session.Status != "complete" || session.ClienteID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session not established"})
			return
		}

		c.Set(ContextClienteID, session.ClienteID)
		c.Set(ContextHasBilling, session.HasBilling)
		c.Next()
	}
}
