// internal/interfaces/http/middleware/session.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/config"
)

const (
	// SessionIDKey is the gin context key holding the storefront session id
	SessionIDKey = "session_id"
	// CredentialKey is the gin context key holding the upstream auth cookie value
	CredentialKey = "client_credential"

	sessionCookieName = "session_id"
	sessionCookieAge  = 30 * 24 * 3600
)

// Session ensures every request carries a storefront session cookie.
// The session id scopes the cart, wishlist and checkout state.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(sessionCookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.New().String()
			c.SetCookie(sessionCookieName, sessionID, sessionCookieAge, "/", "", false, true)
		}

		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

// RequireClientAuth ensures the commerce API session cookie is present and
// stashes its value so handlers can forward it upstream. Authentication
// itself is owned by the external auth service; this layer only passes
// the credential through.
func RequireClientAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential, err := c.Cookie(cfg.Commerce.AuthCookieName)
		if err != nil || credential == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		c.Set(CredentialKey, credential)
		c.Next()
	}
}

// GetSessionID extracts the storefront session id from gin context
func GetSessionID(c *gin.Context) string {
	if sessionID, exists := c.Get(SessionIDKey); exists {
		return sessionID.(string)
	}
	return ""
}

// GetCredential extracts the upstream auth credential from gin context
func GetCredential(c *gin.Context) string {
	if credential, exists := c.Get(CredentialKey); exists {
		return credential.(string)
	}
	return ""
}
