package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/PramodHashantha/GPA-Calculator/internal/auth"
	"github.com/PramodHashantha/GPA-Calculator/internal/server/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// UserLookup confirms that a token's subject still has an account.
type UserLookup interface {
	UserExists(ctx context.Context, userID string) (bool, error)
}

// Manager wires all HTTP middlewares with shared dependencies.
type Manager struct {
	users       UserLookup
	claimsCache *cache.Cache
	rateLimiter *ratelimit.Limiter
}

// NewManager builds a middleware manager for the HTTP server.
func NewManager(users UserLookup, claimsCache *cache.Cache, limiter *ratelimit.Limiter) *Manager {
	return &Manager{
		users:       users,
		claimsCache: claimsCache,
		rateLimiter: limiter,
	}
}

// Auth validates bearer tokens and decorates the context with the caller's
// user ID and email. Verified claims are cached per token so repeated
// requests skip the account-existence check.
func (m *Manager) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization token required"})
			return
		}

		if cached, found := m.claimsCache.Get(token); found {
			claims, ok := cached.(*auth.Claims)
			if !ok || claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
				m.claimsCache.Delete(token)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
				return
			}
			setUserContext(c, claims)
			c.Next()
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		// token signatures outlive account deletion, so confirm the user
		exists, err := m.users.UserExists(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "server error"})
			return
		}
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User no longer exists"})
			return
		}

		m.claimsCache.Set(token, claims, cache.DefaultExpiration)
		setUserContext(c, claims)
		c.Next()
	}
}

// RateLimit enforces per-user request limits.
func (m *Manager) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "please authenticate first"})
			return
		}

		if !m.rateLimiter.Allow(userID) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func setUserContext(c *gin.Context, claims *auth.Claims) {
	c.Set("user_id", claims.UserID)
	c.Set("user_email", claims.Email)
}
