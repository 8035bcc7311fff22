package audit

import "time"

// Entry is an immutable, append-only operation log record.
//
// Invariants:
// - Entries are never updated or deleted.
// - Capture is best-effort; critical flows must not block on audit failures.
//
// Storage recommendation (Postgres):
// - Table operation_logs with an INSERT-only policy.
// - Optional: partition by time for retention.
type Entry struct {
	ID string `json:"id" db:"id"`

	// UserID is the acting user; 0 for failed logins where no user resolved.
	UserID   int64  `json:"userId" db:"user_id"`
	Username string `json:"username" db:"username"`

	// Action is the business operation tag, e.g. "AUTH_LOGIN".
	Action Action `json:"action" db:"action"`

	// Status is "SUCCESS" or "FAIL".
	Status string `json:"status" db:"status"`

	// Description is a short human-readable outcome for internal ops.
	Description string `json:"description,omitempty" db:"description"`

	DurationMS int64 `json:"durationMs" db:"duration_ms"`

	// IPAddress should hold the resolved client IP (X-Forwarded-For processed
	// at the edge).
	IPAddress string `json:"ipAddress,omitempty" db:"ip_address"`
	UserAgent string `json:"userAgent,omitempty" db:"user_agent"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Action string

const (
	ActionLogin  Action = "AUTH_LOGIN"
	ActionLogout Action = "AUTH_LOGOUT"
	ActionAdmin  Action = "ADMIN_ACTION"
)

const (
	StatusSuccess = "SUCCESS"
	StatusFail    = "FAIL"
)

// Query filters the operation log listing.
type Query struct {
	Username string
	Action   string
	Current  int
	PageSize int
}
