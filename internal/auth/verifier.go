package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Verifier checks a username/password pair against stored credentials and
// account status.
type Verifier struct {
	creds CredentialRepository
}

func NewVerifier(creds CredentialRepository) *Verifier {
	return &Verifier{creds: creds}
}

// Verify returns the minimal user record for a valid, active account.
//
// An unknown username and a wrong password are both ErrInvalidCredentials.
// Non-active account status surfaces distinctly (disabled/locked), checked
// before the password so a locked account reads the same with or without the
// right password.
func (v *Verifier) Verify(ctx context.Context, username, password string) (Credentials, error) {
	user, ok, err := v.creds.FindCredentials(ctx, username)
	if err != nil {
		return Credentials{}, fmt.Errorf("credential lookup: %w", err)
	}
	if !ok {
		return Credentials{}, ErrInvalidCredentials
	}

	switch user.Status {
	case StatusActive:
	case StatusDisabled:
		return Credentials{}, ErrAccountDisabled
	case StatusLocked:
		return Credentials{}, ErrAccountLocked
	default:
		return Credentials{}, fmt.Errorf("account %d has unknown status %d", user.ID, user.Status)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Credentials{}, ErrInvalidCredentials
	}
	return user, nil
}

// HashPassword produces a bcrypt hash for storage. Used by user management.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
