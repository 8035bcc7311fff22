package audit

import (
	"context"
	"database/sql"
)

// PostgresRepo persists operation log entries.
//
// Assumed schema:
//
//	CREATE TABLE operation_logs (
//	    id          UUID PRIMARY KEY,
//	    user_id     BIGINT NOT NULL,
//	    username    TEXT NOT NULL,
//	    action      TEXT NOT NULL,
//	    status      TEXT NOT NULL,
//	    description TEXT NOT NULL DEFAULT '',
//	    duration_ms BIGINT NOT NULL DEFAULT 0,
//	    ip_address  TEXT NOT NULL DEFAULT '',
//	    user_agent  TEXT NOT NULL DEFAULT '',
//	    created_at  TIMESTAMPTZ NOT NULL
//	);
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Append(ctx context.Context, e Entry) error {
	const q = `
INSERT INTO operation_logs (id, user_id, username, action, status, description, duration_ms, ip_address, user_agent, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`
	_, err := r.db.ExecContext(ctx, q,
		e.ID,
		e.UserID,
		e.Username,
		string(e.Action),
		e.Status,
		e.Description,
		e.DurationMS,
		e.IPAddress,
		e.UserAgent,
		e.CreatedAt,
	)
	return err
}

func (r *PostgresRepo) List(ctx context.Context, q Query) ([]Entry, int, error) {
	const countQ = `
SELECT COUNT(*)
FROM operation_logs
WHERE ($1 = '' OR username = $1)
  AND ($2 = '' OR action = $2)
`
	var total int
	if err := r.db.QueryRowContext(ctx, countQ, q.Username, q.Action).Scan(&total); err != nil {
		return nil, 0, err
	}

	const listQ = `
SELECT id, user_id, username, action, status, description, duration_ms, ip_address, user_agent, created_at
FROM operation_logs
WHERE ($1 = '' OR username = $1)
  AND ($2 = '' OR action = $2)
ORDER BY created_at DESC
LIMIT $3 OFFSET $4
`
	offset := (q.Current - 1) * q.PageSize
	rows, err := r.db.QueryContext(ctx, listQ, q.Username, q.Action, q.PageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var action string
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Username,
			&action,
			&e.Status,
			&e.Description,
			&e.DurationMS,
			&e.IPAddress,
			&e.UserAgent,
			&e.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		e.Action = Action(action)
		out = append(out, e)
	}
	return out, total, rows.Err()
}
