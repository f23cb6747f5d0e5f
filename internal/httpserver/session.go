package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const identityCtxKey = "identityKey"

// identityMiddleware resolves the Bearer token to an identity key. A
// missing or invalid token still serves the request as the shared guest
// identity; cart routes never require authentication.
func identityMiddleware(identity IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		c.Set(identityCtxKey, identity.Resolve(c.Request.Context(), token))
		c.Next()
	}
}

func identityFrom(c *gin.Context) string {
	return c.GetString(identityCtxKey)
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

type guestSessionResponse struct {
	Token       string `json:"token"`
	IdentityKey string `json:"identityKey"`
	ExpiresIn   int    `json:"expiresInSeconds"`
}

func guestSessionHandler(identity IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, key, err := identity.IssueGuest(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "issue session"})
			return
		}
		c.JSON(http.StatusCreated, guestSessionResponse{
			Token:       token,
			IdentityKey: key,
			ExpiresIn:   identity.TTLSeconds(),
		})
	}
}
