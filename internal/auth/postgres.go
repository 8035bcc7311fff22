package auth

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresRepo implements the auth storage contracts against the users /
// user_roles / role_menus / menus tables.
//
// Permission codes come from menus reachable through the user's roles; empty
// codes and disabled menus are excluded.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) FindCredentials(ctx context.Context, username string) (Credentials, bool, error) {
	const q = `
SELECT id, username, password_hash, status, is_system
FROM users
WHERE username = $1 AND deleted_at IS NULL
`
	var c Credentials
	err := r.db.QueryRowContext(ctx, q, username).Scan(
		&c.ID,
		&c.Username,
		&c.PasswordHash,
		&c.Status,
		&c.IsSystem,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Credentials{}, false, nil
	}
	if err != nil {
		return Credentials{}, false, err
	}
	return c, true, nil
}

func (r *PostgresRepo) UpdateLastLogin(ctx context.Context, userID int64) error {
	const q = `
UPDATE users SET last_login_at = NOW(), updated_at = NOW()
WHERE id = $1 AND deleted_at IS NULL
`
	_, err := r.db.ExecContext(ctx, q, userID)
	return err
}

func (r *PostgresRepo) ListPermissions(ctx context.Context, userID int64) ([]string, error) {
	const q = `
SELECT DISTINCT m.code
FROM user_roles ur
JOIN role_menus rm ON rm.role_id = ur.role_id
JOIN menus m ON m.id = rm.menu_id
WHERE ur.user_id = $1 AND m.status = 1 AND m.code <> ''
`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

func (r *PostgresRepo) FindByID(ctx context.Context, userID int64) (Profile, bool, error) {
	const q = `
SELECT id, username, COALESCE(real_name, ''), COALESCE(email, ''), COALESCE(avatar_url, ''), is_system, COALESCE(last_login_at, 'epoch'::timestamptz)
FROM users
WHERE id = $1 AND deleted_at IS NULL
`
	var p Profile
	err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&p.ID,
		&p.Username,
		&p.RealName,
		&p.Email,
		&p.AvatarURL,
		&p.IsSystem,
		&p.LastLoginAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, false, nil
	}
	if err != nil {
		return Profile{}, false, err
	}
	return p, true, nil
}

func (r *PostgresRepo) UpdateAvatar(ctx context.Context, userID int64, avatarURL string) error {
	const q = `
UPDATE users SET avatar_url = $2, updated_at = NOW()
WHERE id = $1 AND deleted_at IS NULL
`
	res, err := r.db.ExecContext(ctx, q, userID, avatarURL)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}
	return nil
}
