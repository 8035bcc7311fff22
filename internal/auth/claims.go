package auth

import "github.com/golang-jwt/jwt/v5"

// Claims are the only supported JWT claims shape for this service.
// Session tokens are stateless: there is no server-side token record and no
// revocation list. Authorization freshness comes from the permission cache,
// not from the token.
type Claims struct {
	jwt.RegisteredClaims

	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}
