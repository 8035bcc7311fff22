package dashboard

import (
	"context"
	"database/sql"
	"time"
)

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) CountUsers(ctx context.Context) (int64, error) {
	const q = `SELECT COUNT(*) FROM users WHERE deleted_at IS NULL`
	var n int64
	err := r.db.QueryRowContext(ctx, q).Scan(&n)
	return n, err
}

func (r *PostgresRepo) CountActiveUsers(ctx context.Context, since time.Time) (int64, error) {
	const q = `SELECT COUNT(*) FROM users WHERE deleted_at IS NULL AND last_login_at >= $1`
	var n int64
	err := r.db.QueryRowContext(ctx, q, since).Scan(&n)
	return n, err
}

func (r *PostgresRepo) CountRoles(ctx context.Context) (int64, error) {
	const q = `SELECT COUNT(*) FROM roles WHERE status = 1`
	var n int64
	err := r.db.QueryRowContext(ctx, q).Scan(&n)
	return n, err
}
