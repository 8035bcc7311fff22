package auth

import (
	"net/http"
	"strings"
	"time"

	"zenadmin/internal/permission"

	"github.com/gin-gonic/gin"
)

const authorizationHeader = "Authorization"
const bearerPrefix = "Bearer "

// RequireSession is the authorization gate for protected routes. Per request:
// extract the bearer token, verify it, and resolve the caller's permissions
// from the cache. A cache miss is a 401 even for a cryptographically valid
// token: logout (or a process restart) invalidates authorization immediately
// without a revocation list. On success the identity is attached to the
// request context.
//
// The gate never mutates cache state; that belongs to login and logout.
func RequireSession(m *TokenManager, cache *permission.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(authorizationHeader))
		if raw == "" || !strings.HasPrefix(raw, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tok := strings.TrimPrefix(raw, bearerPrefix)

		claims, err := m.Verify(tok, time.Now())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if _, ok := cache.Get(claims.UserID); !ok {
			// No active session on this process instance.
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session not active"})
			return
		}

		ctx := WithIdentity(c.Request.Context(), Identity{UserID: claims.UserID, Username: claims.Username})
		c.Request = c.Request.WithContext(ctx)

		// Also store on gin context for handler convenience.
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)

		c.Next()
	}
}

// RequirePermission gates a route on one permission code, resolved through
// the cache so it reflects the latest login/refresh, not the token.
func RequirePermission(cache *permission.Cache, code string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := CurrentUser(c.Request.Context())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if !cache.Has(id.UserID, code) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
