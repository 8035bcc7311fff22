package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"zenadmin/internal/audit"
	"zenadmin/internal/permission"
	"zenadmin/pkg/logger"
)

// AttemptLimiter throttles login attempts per username and client IP.
// A limiter error is fail-open: availability wins over strictness, and the
// failure is logged.
type AttemptLimiter interface {
	Allow(ctx context.Context, username, ip string) (bool, error)
	Reset(ctx context.Context, username, ip string) error
}

// LoginObserver is notified after a fully successful login. Implementations
// must be cheap; dashboard counters hang off this.
type LoginObserver interface {
	LoginSucceeded(ctx context.Context, userID int64)
}

// Service composes credential verification, token issuance, and permission
// cache population into the login/logout flow.
type Service struct {
	verifier *Verifier
	tokens   *TokenManager
	cache    *permission.Cache
	perms    PermissionRepository
	profiles ProfileRepository
	creds    CredentialRepository
	audit    *audit.Service

	// optional collaborators
	limiter  AttemptLimiter
	observer LoginObserver

	// clock is injectable for deterministic tests.
	clock func() time.Time
}

type ServiceDeps struct {
	Tokens      *TokenManager
	Cache       *permission.Cache
	Credentials CredentialRepository
	Permissions PermissionRepository
	Profiles    ProfileRepository
	Audit       *audit.Service

	Limiter  AttemptLimiter
	Observer LoginObserver
}

func NewService(d ServiceDeps) (*Service, error) {
	if d.Tokens == nil || d.Cache == nil || d.Credentials == nil || d.Permissions == nil || d.Profiles == nil {
		return nil, errors.New("auth: tokens, cache, and repositories are required")
	}
	return &Service{
		verifier: NewVerifier(d.Credentials),
		tokens:   d.Tokens,
		cache:    d.Cache,
		perms:    d.Permissions,
		profiles: d.Profiles,
		creds:    d.Credentials,
		audit:    d.Audit,
		limiter:  d.Limiter,
		observer: d.Observer,
		clock:    time.Now,
	}, nil
}

// Login runs the end-to-end login flow. First failure aborts the remaining
// steps; only the last-login stamp and auditing are fire-and-forget.
func (s *Service) Login(ctx context.Context, req LoginRequest, meta RequestMeta) (LoginResult, error) {
	start := s.clock()
	log := logger.From(ctx)

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, req.Username, meta.IP)
		if err != nil {
			// Fail open: a broken limiter must not lock everyone out.
			log.Warn("login limiter unavailable", "err", err)
		} else if !allowed {
			s.recordLogin(ctx, 0, req.Username, ErrTooManyAttempts.Error(), audit.StatusFail, start, meta)
			return LoginResult{}, ErrTooManyAttempts
		}
	}

	// 1. verify login credentials
	user, err := s.verifier.Verify(ctx, req.Username, req.Password)
	if err != nil {
		log.Warn("login verification failed", "username", req.Username, "err", err)
		s.recordLogin(ctx, 0, req.Username, err.Error(), audit.StatusFail, start, meta)
		return LoginResult{}, err
	}

	// 2. issue session token
	token, err := s.tokens.Issue(s.clock(), user.ID, user.Username)
	if err != nil {
		log.Error("token issue failed", "user_id", user.ID, "err", err)
		return LoginResult{}, err
	}

	// 3. populate the permission cache. A token the gate can never honor must
	// not leave the building, so a failure here fails the login.
	if err := s.cachePermissions(ctx, user.ID, user.IsSystem); err != nil {
		log.Error("permission cache population failed", "user_id", user.ID, "err", err)
		return LoginResult{}, err
	}

	// 4. last-login stamp, detached from the response path
	s.stampLastLogin(ctx, user.ID)

	// 5. assemble user info (also refreshes the cache)
	info, err := s.LoginInfo(ctx, user.ID)
	if err != nil {
		return LoginResult{}, err
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, req.Username, meta.IP); err != nil {
			log.Warn("login limiter reset failed", "err", err)
		}
	}
	if s.observer != nil {
		s.observer.LoginSucceeded(ctx, user.ID)
	}

	s.recordLogin(ctx, user.ID, user.Username, "login successful", audit.StatusSuccess, start, meta)
	log.Info("login successful", "username", user.Username, "user_id", user.ID)

	return LoginResult{Token: token, User: info}, nil
}

// Logout evicts the user's cached permissions. A still-valid token then fails
// the session gate on its next request. Idempotent.
func (s *Service) Logout(userID int64) {
	s.cache.Evict(userID)
}

// LoginInfo returns the full user info and refreshes the permission cache
// with the freshly resolved set. Serves both the login response and the
// current-user endpoint, keeping the cache warm.
func (s *Service) LoginInfo(ctx context.Context, userID int64) (UserInfo, error) {
	profile, ok, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		return UserInfo{}, fmt.Errorf("profile lookup: %w", err)
	}
	if !ok {
		// The user authenticated moments ago; a missing profile is an
		// integrity problem, not a login race to hide.
		return UserInfo{}, ErrUserNotFound
	}

	set, err := s.resolvePermissions(ctx, userID, profile.IsSystem)
	if err != nil {
		return UserInfo{}, err
	}
	s.cache.Put(userID, set)

	return UserInfo{
		ID:          profile.ID,
		Username:    profile.Username,
		RealName:    profile.RealName,
		Email:       profile.Email,
		AvatarURL:   profile.AvatarURL,
		IsSystem:    profile.IsSystem,
		Permissions: set.Codes(),
	}, nil
}

// UpdateAvatar stores a new avatar URL for the user.
func (s *Service) UpdateAvatar(ctx context.Context, userID int64, avatarURL string) error {
	if avatarURL == "" {
		return errors.New("avatar url is required")
	}
	return s.profiles.UpdateAvatar(ctx, userID, avatarURL)
}

func (s *Service) cachePermissions(ctx context.Context, userID int64, isSystem bool) error {
	set, err := s.resolvePermissions(ctx, userID, isSystem)
	if err != nil {
		return err
	}
	s.cache.Put(userID, set)
	return nil
}

func (s *Service) resolvePermissions(ctx context.Context, userID int64, isSystem bool) (permission.Set, error) {
	// System accounts always cache as the wildcard set, whatever the stored
	// grants say.
	if isSystem {
		return permission.Wildcard(), nil
	}
	codes, err := s.perms.ListPermissions(ctx, userID)
	if err != nil {
		return permission.Set{}, fmt.Errorf("permission lookup: %w", err)
	}
	return permission.NewSet(codes...), nil
}

func (s *Service) stampLastLogin(ctx context.Context, userID int64) {
	detached := context.WithoutCancel(ctx)
	go func() {
		if err := s.creds.UpdateLastLogin(detached, userID); err != nil {
			logger.From(detached).Warn("last login update failed", "user_id", userID, "err", err)
		}
	}()
}

func (s *Service) recordLogin(ctx context.Context, userID int64, username, detail, status string, start time.Time, meta RequestMeta) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ctx, audit.Entry{
		UserID:      userID,
		Username:    username,
		Action:      audit.ActionLogin,
		Status:      status,
		Description: detail,
		DurationMS:  s.clock().Sub(start).Milliseconds(),
		IPAddress:   meta.IP,
		UserAgent:   meta.UserAgent,
	})
}
