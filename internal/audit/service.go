package audit

import (
	"context"
	"errors"
	"sync"
	"time"

	"zenadmin/pkg/logger"

	"github.com/google/uuid"
)

// Repository is the persistence contract for operation log entries.
//
// It MUST be append-only for writes. List exists only for the admin log view.
type Repository interface {
	Append(ctx context.Context, e Entry) error
	List(ctx context.Context, q Query) ([]Entry, int, error)
}

// Service records operation log entries.
//
// Record is fire-and-forget: it detaches from the request, never blocks the
// caller, and swallows failures after logging them. Nothing in a request's
// critical path may depend on an audit write succeeding.
type Service struct {
	repo  Repository
	clock func() time.Time

	// wg lets tests and shutdown wait for in-flight writes.
	wg sync.WaitGroup
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEntry = errors.New("audit: invalid entry")

// Record spawns a detached, best-effort write of the entry.
func (s *Service) Record(ctx context.Context, e Entry) {
	detached := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.append(detached, e); err != nil {
			logger.From(detached).Error("audit write failed",
				"action", string(e.Action), "username", e.Username, "err", err)
		}
	}()
}

// Append validates and writes synchronously. Most callers want Record.
func (s *Service) Append(ctx context.Context, e Entry) error {
	return s.append(ctx, e)
}

func (s *Service) append(ctx context.Context, e Entry) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.Action == "" {
		return ErrInvalidEntry
	}
	if e.Status != StatusSuccess && e.Status != StatusFail {
		return ErrInvalidEntry
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	return s.repo.Append(ctx, e)
}

// List returns entries for the admin log view.
func (s *Service) List(ctx context.Context, q Query) ([]Entry, int, error) {
	if s.repo == nil {
		return nil, 0, errors.New("audit: repository not configured")
	}
	if q.Current <= 0 {
		q.Current = 1
	}
	if q.PageSize <= 0 || q.PageSize > 200 {
		q.PageSize = 20
	}
	return s.repo.List(ctx, q)
}

// Wait blocks until all in-flight Record writes finish. For tests and
// graceful shutdown.
func (s *Service) Wait() {
	s.wg.Wait()
}
