package auth

import (
	"context"
	"errors"
)

// Identity is the authenticated caller derived from a verified token.
// It exists only for the duration of one request.
type Identity struct {
	UserID   int64
	Username string
}

type ctxKey int

const ctxIdentity ctxKey = iota

// WithIdentity attaches the authenticated identity to the request context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxIdentity, id)
}

// CurrentUser returns the identity attached by the session middleware.
func CurrentUser(ctx context.Context) (Identity, error) {
	if v, ok := ctx.Value(ctxIdentity).(Identity); ok && v.UserID != 0 {
		return v, nil
	}
	return Identity{}, errors.New("identity not in context")
}
