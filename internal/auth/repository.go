package auth

import "context"

// Storage contracts the authentication core depends on. Durable storage is a
// collaborator: lookups happen before any cache mutation, and no cache lock
// is held across these calls.

// CredentialRepository resolves stored login credentials.
type CredentialRepository interface {
	// FindCredentials returns the credential row for username. ok is false
	// when no such user exists; that must surface to callers as a generic
	// credential failure, never as "user not found".
	FindCredentials(ctx context.Context, username string) (Credentials, bool, error)

	// UpdateLastLogin stamps the last successful login. Called from a
	// detached background task; failures are logged and dropped.
	UpdateLastLogin(ctx context.Context, userID int64) error
}

// PermissionRepository resolves the permission codes granted to a user.
type PermissionRepository interface {
	ListPermissions(ctx context.Context, userID int64) ([]string, error)
}

// ProfileRepository resolves full user profiles for the login response and
// the current-user endpoint.
type ProfileRepository interface {
	FindByID(ctx context.Context, userID int64) (Profile, bool, error)
	UpdateAvatar(ctx context.Context, userID int64, avatarURL string) error
}
