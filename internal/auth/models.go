package auth

import "time"

// Account status codes, stored on the users row. Closed set; anything else is
// treated as a storage integrity problem, not a new state.
const (
	StatusActive   = 1
	StatusDisabled = 2
	StatusLocked   = 3
)

// Credentials is the minimal user record the login flow needs downstream.
type Credentials struct {
	ID           int64
	Username     string
	PasswordHash string
	Status       int
	IsSystem     bool
}

// UserInfo is the user payload returned by login and by the current-user
// endpoint. Permissions carries resolved codes; the wildcard serializes
// as "*".
type UserInfo struct {
	ID          int64    `json:"id"`
	Username    string   `json:"username"`
	RealName    string   `json:"realName,omitempty"`
	Email       string   `json:"email,omitempty"`
	AvatarURL   string   `json:"avatarUrl,omitempty"`
	IsSystem    bool     `json:"isSystem"`
	Permissions []string `json:"permissions"`
}

// LoginRequest is the login endpoint payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResult is the successful login response body.
type LoginResult struct {
	Token string   `json:"token"`
	User  UserInfo `json:"userInfo"`
}

// RequestMeta carries client attributes used for auditing and attempt
// limiting. It is captured at the HTTP edge and passed through.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// Profile is the stored user profile row used to assemble UserInfo.
type Profile struct {
	ID          int64
	Username    string
	RealName    string
	Email       string
	AvatarURL   string
	IsSystem    bool
	LastLoginAt time.Time
}
