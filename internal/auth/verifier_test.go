package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// fakeRepo implements the auth storage contracts in memory.
type fakeRepo struct {
	mu          sync.Mutex
	users       map[string]Credentials
	profiles    map[int64]Profile
	perms       map[int64][]string
	lastLogins  []int64
	permsErr    error
	credsErr    error
	lastLoginCh chan int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:       make(map[string]Credentials),
		profiles:    make(map[int64]Profile),
		perms:       make(map[int64][]string),
		lastLoginCh: make(chan int64, 16),
	}
}

func (f *fakeRepo) addUser(c Credentials, p Profile, perms []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[c.Username] = c
	f.profiles[c.ID] = p
	f.perms[c.ID] = perms
}

func (f *fakeRepo) FindCredentials(ctx context.Context, username string) (Credentials, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.credsErr != nil {
		return Credentials{}, false, f.credsErr
	}
	c, ok := f.users[username]
	return c, ok, nil
}

func (f *fakeRepo) UpdateLastLogin(ctx context.Context, userID int64) error {
	f.mu.Lock()
	f.lastLogins = append(f.lastLogins, userID)
	f.mu.Unlock()
	select {
	case f.lastLoginCh <- userID:
	default:
	}
	return nil
}

func (f *fakeRepo) ListPermissions(ctx context.Context, userID int64) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.permsErr != nil {
		return nil, f.permsErr
	}
	return f.perms[userID], nil
}

func (f *fakeRepo) FindByID(ctx context.Context, userID int64) (Profile, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	return p, ok, nil
}

func (f *fakeRepo) UpdateAvatar(ctx context.Context, userID int64, avatarURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return ErrUserNotFound
	}
	p.AvatarURL = avatarURL
	f.profiles[userID] = p
	return nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return h
}

func TestVerify_Success(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(Credentials{
		ID: 1, Username: "alice", PasswordHash: mustHash(t, "correct-horse"), Status: StatusActive,
	}, Profile{ID: 1, Username: "alice"}, nil)

	v := NewVerifier(repo)
	got, err := v.Verify(context.Background(), "alice", "correct-horse")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.ID != 1 || got.Username != "alice" {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestVerify_UnknownUserAndWrongPasswordLookAlike(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(Credentials{
		ID: 1, Username: "alice", PasswordHash: mustHash(t, "correct-horse"), Status: StatusActive,
	}, Profile{ID: 1, Username: "alice"}, nil)

	v := NewVerifier(repo)

	_, errUnknown := v.Verify(context.Background(), "nobody", "whatever")
	_, errWrong := v.Verify(context.Background(), "alice", "wrong")

	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrong, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrong)
	}
}

func TestVerify_StatusErrorsAreDistinct(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(Credentials{
		ID: 2, Username: "bob", PasswordHash: mustHash(t, "pw"), Status: StatusDisabled,
	}, Profile{ID: 2, Username: "bob"}, nil)
	repo.addUser(Credentials{
		ID: 3, Username: "carol", PasswordHash: mustHash(t, "pw"), Status: StatusLocked,
	}, Profile{ID: 3, Username: "carol"}, nil)

	v := NewVerifier(repo)

	if _, err := v.Verify(context.Background(), "bob", "pw"); !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
	if _, err := v.Verify(context.Background(), "carol", "pw"); !errors.Is(err, ErrAccountLocked) {
		t.Fatalf("expected ErrAccountLocked, got %v", err)
	}
}

func TestVerify_UnknownStatusIsAnError(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(Credentials{
		ID: 4, Username: "dave", PasswordHash: mustHash(t, "pw"), Status: 99,
	}, Profile{ID: 4, Username: "dave"}, nil)

	v := NewVerifier(repo)
	_, err := v.Verify(context.Background(), "dave", "pw")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected a status integrity error, got %v", err)
	}
}

func TestVerify_RepoErrorPropagates(t *testing.T) {
	repo := newFakeRepo()
	repo.credsErr = errors.New("db down")

	v := NewVerifier(repo)
	if _, err := v.Verify(context.Background(), "alice", "pw"); err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected wrapped storage error, got %v", err)
	}
}
