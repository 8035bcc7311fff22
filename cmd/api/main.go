package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zenadmin/internal/audit"
	"zenadmin/internal/auth"
	"zenadmin/internal/config"
	"zenadmin/internal/dashboard"
	"zenadmin/internal/permission"
	"zenadmin/internal/system"
	"zenadmin/pkg/logger"
	"zenadmin/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// version is stamped via -ldflags at build time.
var version = "dev"

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Error("token manager init failed", "err", err)
		os.Exit(1)
	}

	permCache := permission.NewCache()

	auditSvc := audit.NewService(audit.NewPostgresRepo(db))
	defer auditSvc.Wait()

	dashSvc := dashboard.NewService(dashboard.NewPostgresRepo(db), rdb, log, version)

	authRepo := auth.NewPostgresRepo(db)
	authSvc, err := auth.NewService(auth.ServiceDeps{
		Tokens:      tokens,
		Cache:       permCache,
		Credentials: authRepo,
		Permissions: authRepo,
		Profiles:    authRepo,
		Audit:       auditSvc,
		Limiter:     auth.NewRedisLimiter(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow),
		Observer:    dashSvc,
	})
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	sysRepo := system.NewPostgresRepo(db)
	sysSvc := system.NewService(sysRepo, sysRepo, sysRepo, sysRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	registerRoutes(r, routeDeps{
		cfg:       cfg,
		db:        db,
		tokens:    tokens,
		permCache: permCache,
		auth:      authSvc,
		system:    sysSvc,
		dashboard: dashSvc,
		audit:     auditSvc,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
	// Deferred auditSvc.Wait() drains in-flight audit writes before exit.
}
