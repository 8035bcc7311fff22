package main

import (
	"database/sql"
	"net/http"
	"time"

	"zenadmin/internal/audit"
	"zenadmin/internal/auth"
	"zenadmin/internal/config"
	"zenadmin/internal/dashboard"
	"zenadmin/internal/permission"
	"zenadmin/internal/system"
	"zenadmin/internal/webui"
	"zenadmin/pkg/utils"

	"github.com/gin-gonic/gin"
)

type routeDeps struct {
	cfg       config.Config
	db        *sql.DB
	tokens    *auth.TokenManager
	permCache *permission.Cache
	auth      *auth.Service
	system    *system.Service
	dashboard *dashboard.Service
	audit     *audit.Service
}

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, d routeDeps) {
	authH := auth.Handlers{Service: d.auth}
	sysH := system.Handlers{Service: d.system}
	dashH := dashboard.Handlers{Service: d.dashboard}
	logH := audit.Handlers{Service: d.audit}

	// public
	r.GET("/healthz", func(c *gin.Context) {
		if err := utils.HealthCheck(c.Request.Context(), d.db, 2*time.Second); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "db": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/api/summary", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"name": "zenadmin-api", "version": version})
	})
	r.POST("/api/auth/login", authH.Login)

	// protected API group: session required, permissions enforced per route
	api := r.Group("/api")
	api.Use(auth.RequireSession(d.tokens, d.permCache))
	{
		api.GET("/auth/me", authH.Me)
		api.GET("/auth/logout", authH.Logout)
		api.POST("/auth/avatar", authH.UpdateAvatar)

		api.GET("/dashboard/stats", dashH.Stats)

		sys := api.Group("/system")
		{
			sys.GET("/users", auth.RequirePermission(d.permCache, "system.user.list"), sysH.ListUsers)
			sys.POST("/users", auth.RequirePermission(d.permCache, "system.user.create"), sysH.CreateUser)
			sys.PUT("/users/:id", auth.RequirePermission(d.permCache, "system.user.update"), sysH.UpdateUser)
			sys.DELETE("/users/:id", auth.RequirePermission(d.permCache, "system.user.delete"), sysH.DeleteUser)

			sys.GET("/roles", auth.RequirePermission(d.permCache, "system.role.list"), sysH.ListRoles)
			sys.POST("/roles", auth.RequirePermission(d.permCache, "system.role.create"), sysH.CreateRole)
			sys.PUT("/roles/:id", auth.RequirePermission(d.permCache, "system.role.update"), sysH.UpdateRole)
			sys.DELETE("/roles/:id", auth.RequirePermission(d.permCache, "system.role.delete"), sysH.DeleteRole)
			sys.GET("/roles/options", auth.RequirePermission(d.permCache, "system.role.list"), sysH.RoleOptions)

			sys.GET("/menus", auth.RequirePermission(d.permCache, "system.menu.list"), sysH.ListMenus)
			sys.POST("/menus", auth.RequirePermission(d.permCache, "system.menu.create"), sysH.CreateMenu)
			sys.PUT("/menus/:id", auth.RequirePermission(d.permCache, "system.menu.update"), sysH.UpdateMenu)
			sys.DELETE("/menus/:id", auth.RequirePermission(d.permCache, "system.menu.delete"), sysH.DeleteMenu)

			sys.GET("/dicts", auth.RequirePermission(d.permCache, "system.dict.list"), sysH.ListDicts)
			sys.POST("/dicts", auth.RequirePermission(d.permCache, "system.dict.create"), sysH.CreateDict)
			sys.PUT("/dicts/:id", auth.RequirePermission(d.permCache, "system.dict.update"), sysH.UpdateDict)
			sys.DELETE("/dicts/:id", auth.RequirePermission(d.permCache, "system.dict.delete"), sysH.DeleteDict)

			sys.GET("/logs", auth.RequirePermission(d.permCache, "system.log.list"), logH.List)
		}
	}

	if d.cfg.Web.EmbedEnabled {
		r.NoRoute(webui.Handler())
	}
}
