package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	invitationModel "github.com/leaguehq/league-service/internal/invitation/model"
)

// IdentityKey is the gin context key under which Middleware stores the
// authenticated identity.
const IdentityKey = "auth.identity"

// Middleware authenticates requests with a Bearer token and stores the
// resulting identity in the request context.
func Middleware(manager *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			unauthorized(c, "missing bearer token")
			return
		}

		identity, err := manager.Parse(token)
		if err != nil {
			if err == ErrTokenExpired {
				unauthorized(c, "token expired")
				return
			}
			unauthorized(c, "invalid token")
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// IdentityFrom extracts the authenticated identity set by Middleware.
func IdentityFrom(c *gin.Context) (invitationModel.Identity, bool) {
	value, exists := c.Get(IdentityKey)
	if !exists {
		return invitationModel.Identity{}, false
	}
	identity, ok := value.(invitationModel.Identity)
	return identity, ok
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}
