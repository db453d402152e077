package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-applytrack-backend/config"
	"go-applytrack-backend/internal/delivery/http/middleware"
	"go-applytrack-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return s
}

// newAuthRouter mounts the middleware in front of a handler that captures
// the context keys the middleware sets.
func newAuthRouter(captured *map[string]interface{}) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{SupabaseJWTSecret: testSecret}

	r := gin.New()
	r.Use(middleware.AuthMiddleware(nil, cfg))
	r.GET("/me", func(c *gin.Context) {
		*captured = c.Keys
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("Should return 401 without an Authorization header", func(t *testing.T) {
		var keys map[string]interface{}
		r := newAuthRouter(&keys)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Nil(t, keys)
	})

	t.Run("Should return 403 for a token signed with the wrong secret", func(t *testing.T) {
		var keys map[string]interface{}
		r := newAuthRouter(&keys)

		tok := signedToken(t, "other-secret", jwt.MapClaims{
			"sub": "user1",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Should return 403 when the subject claim is missing", func(t *testing.T) {
		var keys map[string]interface{}
		r := newAuthRouter(&keys)

		tok := signedToken(t, testSecret, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Should expose exactly the subject identity to handlers", func(t *testing.T) {
		var keys map[string]interface{}
		r := newAuthRouter(&keys)

		tok := signedToken(t, testSecret, jwt.MapClaims{
			"sub":   "user1",
			"email": "user1@example.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user1", keys[string(domain.KeyUserID)])
		// The user id is the only identity the middleware resolves;
		// other claims stay in the token.
		assert.Len(t, keys, 1)
	})
}
