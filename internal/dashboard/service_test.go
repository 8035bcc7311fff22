package dashboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

type fakeStatsRepo struct {
	users  int64
	active int64
	roles  int64
	err    error
}

func (f *fakeStatsRepo) CountUsers(context.Context) (int64, error) {
	return f.users, f.err
}

func (f *fakeStatsRepo) CountActiveUsers(context.Context, time.Time) (int64, error) {
	return f.active, f.err
}

func (f *fakeStatsRepo) CountRoles(context.Context) (int64, error) {
	return f.roles, f.err
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStatsAggregates(t *testing.T) {
	svc := NewService(&fakeStatsRepo{users: 12, active: 4, roles: 3}, nil, discard(), "1.2.0")
	svc.startedAt = time.Now().Add(-90 * time.Second)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalUsers != 12 || stats.ActiveUsers != 4 || stats.TotalRoles != 3 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.UptimeSeconds < 89 {
		t.Fatalf("expected uptime around 90s, got %d", stats.UptimeSeconds)
	}
	if stats.Version != "1.2.0" {
		t.Fatalf("unexpected version: %q", stats.Version)
	}
	// No redis wired: today's logins report zero rather than erroring.
	if stats.TodayLogins != 0 {
		t.Fatalf("expected zero logins without redis, got %d", stats.TodayLogins)
	}
}

func TestStatsPropagatesRepoError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewService(&fakeStatsRepo{err: boom}, nil, discard(), "dev")

	if _, err := svc.Stats(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected repo error, got %v", err)
	}
}

func TestLoginSucceededWithoutRedisIsNoop(t *testing.T) {
	svc := NewService(&fakeStatsRepo{}, nil, discard(), "dev")
	svc.LoginSucceeded(context.Background(), 42)
}
