package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	m, err := NewTokenManager("secret", time.Hour)
	if err != nil {
		t.Fatalf("manager: %v", err)
	}

	now := time.Unix(1700000000, 0).UTC()
	tok, err := m.Issue(now, 42, "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if tok == "" {
		t.Fatalf("expected token string")
	}

	claims, err := m.Verify(tok, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "alice" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if !claims.ExpiresAt.Time.After(claims.IssuedAt.Time) {
		t.Fatalf("expected exp > iat")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m, _ := NewTokenManager("secret", time.Hour)

	now := time.Unix(1700000000, 0).UTC()
	tok, err := m.Issue(now, 1, "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := m.Verify(tok, now.Add(time.Hour+time.Second)); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after expiry, got %v", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	m1, _ := NewTokenManager("secret-one", time.Hour)
	m2, _ := NewTokenManager("secret-two", time.Hour)

	now := time.Now()
	tok, err := m1.Issue(now, 1, "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := m2.Verify(tok, now); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m, _ := NewTokenManager("secret", time.Hour)
	if _, err := m.Verify("not-a-jwt", time.Now()); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	if _, err := NewTokenManager("", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestNewTokenManagerDefaultsTTL(t *testing.T) {
	m, err := NewTokenManager("secret", 0)
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	if m.TTL() != time.Hour {
		t.Fatalf("expected 1h default, got %v", m.TTL())
	}
}
