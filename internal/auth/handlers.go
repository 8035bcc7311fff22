package auth

import (
	"errors"
	"net/http"

	"zenadmin/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers exposes the auth HTTP surface. Keep these thin: parse/validate
// input, call the service, map errors to status codes.
type Handlers struct {
	Service *Service
}

// Login handles POST /api/auth/login (public).
func (h Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
		return
	}

	meta := RequestMeta{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	res, err := h.Service.Login(c.Request.Context(), req, meta)
	if err != nil {
		status, msg := loginErrorResponse(err)
		c.AbortWithStatusJSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, res)
}

// Me handles GET /api/auth/me (protected). Doubles as the cache refresh path.
func (h Handlers) Me(c *gin.Context) {
	id, err := CurrentUser(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	info, err := h.Service.LoginInfo(c.Request.Context(), id.UserID)
	if err != nil {
		logger.FromGin(c).Error("login info failed", "user_id", id.UserID, "err", err)
		if errors.Is(err, ErrUserNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to load user info"})
		return
	}
	c.JSON(http.StatusOK, info)
}

// Logout handles GET /api/auth/logout (protected). Always succeeds.
func (h Handlers) Logout(c *gin.Context) {
	id, err := CurrentUser(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	h.Service.Logout(id.UserID)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type updateAvatarRequest struct {
	AvatarURL string `json:"avatarUrl" binding:"required"`
}

// UpdateAvatar handles POST /api/auth/avatar (protected).
func (h Handlers) UpdateAvatar(c *gin.Context) {
	id, err := CurrentUser(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req updateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "avatarUrl required"})
		return
	}

	if err := h.Service.UpdateAvatar(c.Request.Context(), id.UserID, req.AvatarURL); err != nil {
		logger.FromGin(c).Error("avatar update failed", "user_id", id.UserID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "avatar update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatarUrl": req.AvatarURL})
}

func loginErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrInvalidCredentials.Error()
	case errors.Is(err, ErrAccountDisabled):
		return http.StatusForbidden, ErrAccountDisabled.Error()
	case errors.Is(err, ErrAccountLocked):
		return http.StatusForbidden, ErrAccountLocked.Error()
	case errors.Is(err, ErrTooManyAttempts):
		return http.StatusTooManyRequests, ErrTooManyAttempts.Error()
	case errors.Is(err, ErrTokenCreation):
		return http.StatusInternalServerError, "login failed"
	default:
		return http.StatusInternalServerError, "login failed"
	}
}
