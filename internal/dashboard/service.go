// Package dashboard aggregates headline numbers for the admin home screen.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"zenadmin/pkg/utils"
)

const (
	loginCounterPrefix = "stats:logins"
	counterRetention   = 40 * 24 * time.Hour
)

// StatsRepository reads the aggregate counts the dashboard shows.
type StatsRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountActiveUsers(ctx context.Context, since time.Time) (int64, error)
	CountRoles(ctx context.Context) (int64, error)
}

// Stats is the payload for GET /api/dashboard/stats.
type Stats struct {
	TotalUsers    int64  `json:"totalUsers"`
	ActiveUsers   int64  `json:"activeUsers"`
	TotalRoles    int64  `json:"totalRoles"`
	TodayLogins   int64  `json:"todayLogins"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
	Version       string `json:"version"`
}

type Service struct {
	repo      StatsRepository
	rdb       *redis.Client
	log       *slog.Logger
	startedAt time.Time
	version   string
	clock     func() time.Time
}

func NewService(repo StatsRepository, rdb *redis.Client, log *slog.Logger, version string) *Service {
	return &Service{
		repo:      repo,
		rdb:       rdb,
		log:       log,
		startedAt: time.Now(),
		version:   version,
		clock:     time.Now,
	}
}

// Stats gathers the counters. The login counter is best-effort: a redis
// outage degrades it to zero rather than failing the whole endpoint.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	now := s.clock()

	total, err := s.repo.CountUsers(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count users: %w", err)
	}
	active, err := s.repo.CountActiveUsers(ctx, now.AddDate(0, 0, -7))
	if err != nil {
		return Stats{}, fmt.Errorf("count active users: %w", err)
	}
	roles, err := s.repo.CountRoles(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count roles: %w", err)
	}

	var logins int64
	if s.rdb != nil {
		logins, err = utils.GetDailyCounter(ctx, s.rdb, loginCounterPrefix, now)
		if err != nil {
			s.log.Warn("login counter unavailable", "err", err)
			logins = 0
		}
	}

	return Stats{
		TotalUsers:    total,
		ActiveUsers:   active,
		TotalRoles:    roles,
		TodayLogins:   logins,
		UptimeSeconds: int64(now.Sub(s.startedAt).Seconds()),
		Version:       s.version,
	}, nil
}

// LoginSucceeded bumps the daily login counter. Failures are logged and
// dropped; metrics never block a login.
func (s *Service) LoginSucceeded(ctx context.Context, userID int64) {
	if s.rdb == nil {
		return
	}
	if err := utils.IncrDailyCounter(ctx, s.rdb, loginCounterPrefix, s.clock(), counterRetention); err != nil {
		s.log.Warn("login counter incr failed", "user_id", userID, "err", err)
	}
}
