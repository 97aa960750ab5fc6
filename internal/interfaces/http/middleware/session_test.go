// internal/interfaces/http/middleware/session_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func sessionRouter() *gin.Engine {
	router := gin.New()
	router.Use(Session())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetSessionID(c))
	})
	return router
}

func TestSessionMintsCookieForNewVisitor(t *testing.T) {
	router := sessionRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.String())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session_id", cookies[0].Name)
	assert.Equal(t, w.Body.String(), cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestSessionReusesExistingCookie(t *testing.T) {
	router := sessionRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "existing-session"})
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "existing-session", w.Body.String())
	assert.Empty(t, w.Result().Cookies())
}

func TestRequireClientAuth(t *testing.T) {
	cfg := &config.Config{
		Commerce: config.CommerceConfig{AuthCookieName: "connect.sid"},
	}

	router := gin.New()
	router.Use(RequireClientAuth(cfg))
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetCredential(c))
	})

	// missing cookie is rejected
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// the cookie value is stashed for upstream forwarding
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "connect.sid", Value: "secret"})
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "secret", w.Body.String())
}
