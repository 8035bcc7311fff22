package auth

import "errors"

// Error taxonomy for the authentication core.
//
// Credential failures are intentionally indistinguishable: an unknown username
// and a wrong password both surface as ErrInvalidCredentials so the login
// endpoint never confirms which usernames exist. Account status errors are
// surfaced distinctly; a status message is less sensitive than existence.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrAccountLocked      = errors.New("account is locked")
	ErrTokenCreation      = errors.New("token creation failed")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUserNotFound       = errors.New("user not found")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)
