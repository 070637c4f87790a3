package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PramodHashantha/GPA-Calculator/internal/auth"
	"github.com/PramodHashantha/GPA-Calculator/internal/server/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	existing map[string]bool
	lookups  int
}

func (f *fakeUsers) UserExists(_ context.Context, userID string) (bool, error) {
	f.lookups++
	return f.existing[userID], nil
}

func newTestManager(users *fakeUsers, limit int) *Manager {
	return NewManager(users, cache.New(5*time.Minute, 10*time.Minute), ratelimit.NewLimiter(limit, time.Minute))
}

func protectedRouter(m *Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(m.Auth())
	router.Use(m.RateLimit())
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString("user_id")})
	})
	return router
}

func get(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthValidToken(t *testing.T) {
	users := &fakeUsers{existing: map[string]bool{"user-1": true}}
	router := protectedRouter(newTestManager(users, 100))

	token, err := auth.GenerateToken("user-1", "user@example.com")
	require.NoError(t, err)

	w := get(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestAuthMissingOrMalformedHeader(t *testing.T) {
	users := &fakeUsers{existing: map[string]bool{"user-1": true}}
	router := protectedRouter(newTestManager(users, 100))

	w := get(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(router, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	users := &fakeUsers{existing: map[string]bool{"user-1": true}}
	router := protectedRouter(newTestManager(users, 100))

	w := get(router, "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsDeletedUser(t *testing.T) {
	users := &fakeUsers{existing: map[string]bool{}}
	router := protectedRouter(newTestManager(users, 100))

	token, err := auth.GenerateToken("user-1", "user@example.com")
	require.NoError(t, err)

	w := get(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "User no longer exists")
}

func TestAuthCachesValidatedClaims(t *testing.T) {
	users := &fakeUsers{existing: map[string]bool{"user-1": true}}
	router := protectedRouter(newTestManager(users, 100))

	token, err := auth.GenerateToken("user-1", "user@example.com")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		w := get(router, "Bearer "+token)
		require.Equal(t, http.StatusOK, w.Code)
	}

	// only the first request hits the user store
	assert.Equal(t, 1, users.lookups)
}

func TestRateLimitExceeded(t *testing.T) {
	users := &fakeUsers{existing: map[string]bool{"user-1": true}}
	router := protectedRouter(newTestManager(users, 2))

	token, err := auth.GenerateToken("user-1", "user@example.com")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		w := get(router, "Bearer "+token)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := get(router, "Bearer "+token)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate limit exceeded")
}
