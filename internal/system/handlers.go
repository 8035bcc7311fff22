package system

import (
	"errors"
	"net/http"
	"strconv"

	"zenadmin/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers exposes the admin CRUD HTTP surface under /api/system.
type Handlers struct {
	Service *Service
}

/* ===================== USERS ===================== */

func (h Handlers) ListUsers(c *gin.Context) {
	q := UserQuery{
		Current:  intQuery(c, "current"),
		PageSize: intQuery(c, "pageSize"),
		Username: c.Query("username"),
		Status:   intQuery(c, "status"),
	}
	page, err := h.Service.ListUsers(c.Request.Context(), q)
	if err != nil {
		h.fail(c, "list users", err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h Handlers) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "username, email and password required"})
		return
	}
	id, err := h.Service.CreateUser(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "create user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h Handlers) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.Service.UpdateUser(c.Request.Context(), id, req); err != nil {
		h.fail(c, "update user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h Handlers) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Service.DeleteUser(c.Request.Context(), id); err != nil {
		h.fail(c, "delete user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

/* ===================== ROLES ===================== */

func (h Handlers) ListRoles(c *gin.Context) {
	q := RoleQuery{
		Current:  intQuery(c, "current"),
		PageSize: intQuery(c, "pageSize"),
		Name:     c.Query("name"),
		Status:   intQuery(c, "status"),
	}
	page, err := h.Service.ListRoles(c.Request.Context(), q)
	if err != nil {
		h.fail(c, "list roles", err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h Handlers) CreateRole(c *gin.Context) {
	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "name and code required"})
		return
	}
	id, err := h.Service.CreateRole(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "create role", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h Handlers) UpdateRole(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.Service.UpdateRole(c.Request.Context(), id, req); err != nil {
		h.fail(c, "update role", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h Handlers) DeleteRole(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Service.DeleteRole(c.Request.Context(), id); err != nil {
		h.fail(c, "delete role", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RoleOptions serves the role picker for the user form.
func (h Handlers) RoleOptions(c *gin.Context) {
	opts, err := h.Service.RoleOptions(c.Request.Context())
	if err != nil {
		h.fail(c, "role options", err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

/* ===================== MENUS ===================== */

func (h Handlers) ListMenus(c *gin.Context) {
	menus, err := h.Service.ListMenus(c.Request.Context(), c.Query("name"))
	if err != nil {
		h.fail(c, "list menus", err)
		return
	}
	c.JSON(http.StatusOK, menus)
}

func (h Handlers) CreateMenu(c *gin.Context) {
	var req SaveMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}
	id, err := h.Service.CreateMenu(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "create menu", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h Handlers) UpdateMenu(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req SaveMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}
	if err := h.Service.UpdateMenu(c.Request.Context(), id, req); err != nil {
		h.fail(c, "update menu", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h Handlers) DeleteMenu(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Service.DeleteMenu(c.Request.Context(), id); err != nil {
		h.fail(c, "delete menu", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

/* ===================== DICTS ===================== */

func (h Handlers) ListDicts(c *gin.Context) {
	dicts, err := h.Service.ListDicts(c.Request.Context(), c.Query("dictType"))
	if err != nil {
		h.fail(c, "list dicts", err)
		return
	}
	c.JSON(http.StatusOK, dicts)
}

func (h Handlers) CreateDict(c *gin.Context) {
	var req SaveDictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "dictType, label and value required"})
		return
	}
	id, err := h.Service.CreateDict(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "create dict", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h Handlers) UpdateDict(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req SaveDictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "dictType, label and value required"})
		return
	}
	if err := h.Service.UpdateDict(c.Request.Context(), id, req); err != nil {
		h.fail(c, "update dict", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h Handlers) DeleteDict(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Service.DeleteDict(c.Request.Context(), id); err != nil {
		h.fail(c, "delete dict", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

/* ===================== HELPERS ===================== */

func (h Handlers) fail(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrUsernameTaken):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrSystemProtected):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		logger.FromGin(c).Error(op+" failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": op + " failed"})
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func intQuery(c *gin.Context, key string) int {
	n, _ := strconv.Atoi(c.Query(key))
	return n
}
