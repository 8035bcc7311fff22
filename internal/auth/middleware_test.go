package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"zenadmin/internal/permission"

	"github.com/gin-gonic/gin"
)

func gateRouter(t *testing.T, m *TokenManager, cache *permission.Cache) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	protected := r.Group("/")
	protected.Use(RequireSession(m, cache))
	protected.GET("/me", func(c *gin.Context) {
		id, err := CurrentUser(c.Request.Context())
		if err != nil {
			c.JSON(500, gin.H{"error": "no identity"})
			return
		}
		c.JSON(200, gin.H{"user_id": id.UserID, "username": id.Username})
	})
	protected.GET("/admin", RequirePermission(cache, "system.user.list"), func(c *gin.Context) {
		c.Status(200)
	})
	return r
}

func doGet(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRequireSession_MissingHeader(t *testing.T) {
	m, _ := NewTokenManager("secret", time.Hour)
	r := gateRouter(t, m, permission.NewCache())

	if w := doGet(r, "/me", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireSession_MalformedHeader(t *testing.T) {
	m, _ := NewTokenManager("secret", time.Hour)
	r := gateRouter(t, m, permission.NewCache())
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-bearer scheme, got %d", w.Code)
	}
}

func TestRequireSession_InvalidToken(t *testing.T) {
	m, _ := NewTokenManager("secret", time.Hour)
	r := gateRouter(t, m, permission.NewCache())

	if w := doGet(r, "/me", "garbage"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireSession_ValidTokenButCacheMiss(t *testing.T) {
	m, _ := NewTokenManager("secret", time.Hour)
	cache := permission.NewCache()
	r := gateRouter(t, m, cache)

	tok, err := m.Issue(time.Now(), 7, "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Cryptographically valid token, but no active session on this process.
	if w := doGet(r, "/me", tok); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 on cache miss, got %d", w.Code)
	}
}

func TestRequireSession_PassesAndAttachesIdentity(t *testing.T) {
	m, _ := NewTokenManager("secret", time.Hour)
	cache := permission.NewCache()
	cache.Put(7, permission.NewSet("a"))
	r := gateRouter(t, m, cache)

	tok, _ := m.Issue(time.Now(), 7, "alice")
	w := doGet(r, "/me", tok)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"username":"alice"`) {
		t.Fatalf("expected identity in response, got %s", w.Body.String())
	}
}

func TestRequirePermission_DeniesWithoutCode(t *testing.T) {
	m, _ := NewTokenManager("secret", time.Hour)
	cache := permission.NewCache()
	cache.Put(7, permission.NewSet("other.code"))
	r := gateRouter(t, m, cache)

	tok, _ := m.Issue(time.Now(), 7, "alice")
	if w := doGet(r, "/admin", tok); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestRequirePermission_WildcardBypasses(t *testing.T) {
	m, _ := NewTokenManager("secret", time.Hour)
	cache := permission.NewCache()
	cache.Put(1, permission.Wildcard())
	r := gateRouter(t, m, cache)

	tok, _ := m.Issue(time.Now(), 1, "root")
	if w := doGet(r, "/admin", tok); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for wildcard, got %d", w.Code)
	}
}

func TestGate_LogoutInvalidatesUnexpiredToken(t *testing.T) {
	m, _ := NewTokenManager("secret", time.Hour)
	cache := permission.NewCache()
	cache.Put(7, permission.NewSet("a"))
	r := gateRouter(t, m, cache)

	tok, _ := m.Issue(time.Now(), 7, "alice")
	if w := doGet(r, "/me", tok); w.Code != http.StatusOK {
		t.Fatalf("expected 200 before logout, got %d", w.Code)
	}

	cache.Evict(7)

	if w := doGet(r, "/me", tok); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout with same token, got %d", w.Code)
	}
}
