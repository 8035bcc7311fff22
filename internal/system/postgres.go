package system

import (
	"context"
	"database/sql"
	"errors"

	"zenadmin/pkg/utils"
)

// PostgresRepo backs the admin CRUD with the users / roles / menus / dicts
// tables. Multi-table writes (user+roles, role+menus) run inside a
// transaction so assignments never partially apply.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

/* ===================== USERS ===================== */

func (r *PostgresRepo) ListUsers(ctx context.Context, q UserQuery) ([]User, int, error) {
	const countQ = `
SELECT COUNT(*)
FROM users
WHERE deleted_at IS NULL
  AND ($1 = '' OR username ILIKE '%' || $1 || '%')
  AND ($2 = 0 OR status = $2)
`
	var total int
	if err := r.db.QueryRowContext(ctx, countQ, q.Username, q.Status).Scan(&total); err != nil {
		return nil, 0, err
	}

	const listQ = `
SELECT id, username, COALESCE(email, ''), COALESCE(real_name, ''), COALESCE(avatar_url, ''), status, last_login_at, created_at, updated_at
FROM users
WHERE deleted_at IS NULL
  AND ($1 = '' OR username ILIKE '%' || $1 || '%')
  AND ($2 = 0 OR status = $2)
ORDER BY id
LIMIT $3 OFFSET $4
`
	rows, err := r.db.QueryContext(ctx, listQ, q.Username, q.Status, q.PageSize, (q.Current-1)*q.PageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		var lastLogin sql.NullTime
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.RealName, &u.AvatarURL, &u.Status, &lastLogin, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, err
		}
		if lastLogin.Valid {
			t := lastLogin.Time
			u.LastLoginAt = &t
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range users {
		roles, err := r.userRoles(ctx, users[i].ID)
		if err != nil {
			return nil, 0, err
		}
		users[i].Roles = roles
	}
	return users, total, nil
}

func (r *PostgresRepo) userRoles(ctx context.Context, userID int64) ([]OptionItem, error) {
	const q = `
SELECT ro.id, ro.name
FROM user_roles ur
JOIN roles ro ON ro.id = ur.role_id
WHERE ur.user_id = $1
ORDER BY ro.id
`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OptionItem
	for rows.Next() {
		var o OptionItem
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) CreateUser(ctx context.Context, u User, passwordHash string, roleIDs []int64) (int64, error) {
	var id int64
	err := utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		const q = `
INSERT INTO users (username, email, real_name, password_hash, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
RETURNING id
`
		if err := tx.QueryRowContext(ctx, q, u.Username, u.Email, u.RealName, passwordHash, u.Status).Scan(&id); err != nil {
			return err
		}
		return replaceUserRoles(ctx, tx, id, roleIDs)
	})
	return id, err
}

func (r *PostgresRepo) UpdateUser(ctx context.Context, id int64, req UpdateUserRequest) error {
	return utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		const q = `
UPDATE users SET
    email = COALESCE($2, email),
    real_name = COALESCE($3, real_name),
    status = COALESCE($4, status),
    updated_at = NOW()
WHERE id = $1 AND deleted_at IS NULL
`
		res, err := tx.ExecContext(ctx, q, id, req.Email, req.RealName, req.Status)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return ErrNotFound
		}
		if req.RoleIDs != nil {
			return replaceUserRoles(ctx, tx, id, *req.RoleIDs)
		}
		return nil
	})
}

func replaceUserRoles(ctx context.Context, tx *sql.Tx, userID int64, roleIDs []int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		return err
	}
	for _, rid := range roleIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`, userID, rid); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresRepo) DeleteUser(ctx context.Context, id int64) error {
	// Soft delete; auth lookups filter on deleted_at.
	const q = `UPDATE users SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	const q = `SELECT 1 FROM users WHERE username = $1 AND deleted_at IS NULL`
	var one int
	err := r.db.QueryRowContext(ctx, q, username).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

/* ===================== ROLES ===================== */

func (r *PostgresRepo) ListRoles(ctx context.Context, q RoleQuery) ([]Role, int, error) {
	const countQ = `
SELECT COUNT(*)
FROM roles
WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
  AND ($2 = 0 OR status = $2)
`
	var total int
	if err := r.db.QueryRowContext(ctx, countQ, q.Name, q.Status).Scan(&total); err != nil {
		return nil, 0, err
	}

	const listQ = `
SELECT id, name, code, COALESCE(description, ''), status, sort_order, created_at, updated_at
FROM roles
WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
  AND ($2 = 0 OR status = $2)
ORDER BY sort_order, id
LIMIT $3 OFFSET $4
`
	rows, err := r.db.QueryContext(ctx, listQ, q.Name, q.Status, q.PageSize, (q.Current-1)*q.PageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		var ro Role
		if err := rows.Scan(&ro.ID, &ro.Name, &ro.Code, &ro.Description, &ro.Status, &ro.SortOrder, &ro.CreatedAt, &ro.UpdatedAt); err != nil {
			return nil, 0, err
		}
		roles = append(roles, ro)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range roles {
		menus, err := r.roleMenus(ctx, roles[i].ID)
		if err != nil {
			return nil, 0, err
		}
		roles[i].Menus = menus
	}
	return roles, total, nil
}

func (r *PostgresRepo) roleMenus(ctx context.Context, roleID int64) ([]OptionItem, error) {
	const q = `
SELECT m.id, m.name
FROM role_menus rm
JOIN menus m ON m.id = rm.menu_id
WHERE rm.role_id = $1
ORDER BY m.id
`
	rows, err := r.db.QueryContext(ctx, q, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OptionItem
	for rows.Next() {
		var o OptionItem
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) CreateRole(ctx context.Context, ro Role, menuIDs []int64) (int64, error) {
	var id int64
	err := utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		const q = `
INSERT INTO roles (name, code, description, status, sort_order, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
RETURNING id
`
		if err := tx.QueryRowContext(ctx, q, ro.Name, ro.Code, ro.Description, ro.Status, ro.SortOrder).Scan(&id); err != nil {
			return err
		}
		return replaceRoleMenus(ctx, tx, id, menuIDs)
	})
	return id, err
}

func (r *PostgresRepo) UpdateRole(ctx context.Context, id int64, req UpdateRoleRequest) error {
	return utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		const q = `
UPDATE roles SET
    name = COALESCE($2, name),
    code = COALESCE($3, code),
    description = COALESCE($4, description),
    status = COALESCE($5, status),
    sort_order = COALESCE($6, sort_order),
    updated_at = NOW()
WHERE id = $1
`
		res, err := tx.ExecContext(ctx, q, id, req.Name, req.Code, req.Description, req.Status, req.SortOrder)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return ErrNotFound
		}
		if req.MenuIDs != nil {
			return replaceRoleMenus(ctx, tx, id, *req.MenuIDs)
		}
		return nil
	})
}

func replaceRoleMenus(ctx context.Context, tx *sql.Tx, roleID int64, menuIDs []int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM role_menus WHERE role_id = $1`, roleID); err != nil {
		return err
	}
	for _, mid := range menuIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO role_menus (role_id, menu_id) VALUES ($1, $2)`, roleID, mid); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresRepo) DeleteRole(ctx context.Context, id int64) error {
	return utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM role_menus WHERE role_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM user_roles WHERE role_id = $1`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *PostgresRepo) RoleOptions(ctx context.Context) ([]OptionItem, error) {
	const q = `SELECT id, name FROM roles WHERE status = 1 ORDER BY sort_order, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OptionItem
	for rows.Next() {
		var o OptionItem
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

/* ===================== MENUS ===================== */

func (r *PostgresRepo) ListMenus(ctx context.Context, name string) ([]Menu, error) {
	const q = `
SELECT id, parent_id, name, COALESCE(code, ''), menu_type, sort_order, status, is_system, created_at, updated_at
FROM menus
WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
ORDER BY parent_id, sort_order, id
`
	rows, err := r.db.QueryContext(ctx, q, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Menu
	for rows.Next() {
		var m Menu
		if err := rows.Scan(&m.ID, &m.ParentID, &m.Name, &m.Code, &m.MenuType, &m.SortOrder, &m.Status, &m.IsSystem, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) CreateMenu(ctx context.Context, m Menu) (int64, error) {
	const q = `
INSERT INTO menus (parent_id, name, code, menu_type, sort_order, status, is_system, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, FALSE, NOW(), NOW())
RETURNING id
`
	var id int64
	err := r.db.QueryRowContext(ctx, q, m.ParentID, m.Name, m.Code, m.MenuType, m.SortOrder, m.Status).Scan(&id)
	return id, err
}

// menuGuard rejects writes against menus seeded by migrations.
func menuGuard(ctx context.Context, q rowQueryer, id int64) error {
	var isSystem bool
	err := q.QueryRowContext(ctx, `SELECT is_system FROM menus WHERE id = $1`, id).Scan(&isSystem)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if isSystem {
		return ErrSystemProtected
	}
	return nil
}

type rowQueryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *PostgresRepo) UpdateMenu(ctx context.Context, id int64, m Menu) error {
	if err := menuGuard(ctx, r.db, id); err != nil {
		return err
	}
	const q = `
UPDATE menus SET parent_id = $2, name = $3, code = $4, menu_type = $5, sort_order = $6, status = $7, updated_at = NOW()
WHERE id = $1
`
	_, err := r.db.ExecContext(ctx, q, id, m.ParentID, m.Name, m.Code, m.MenuType, m.SortOrder, m.Status)
	return err
}

func (r *PostgresRepo) DeleteMenu(ctx context.Context, id int64) error {
	return utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		if err := menuGuard(ctx, tx, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM role_menus WHERE menu_id = $1`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM menus WHERE id = $1`, id)
		return err
	})
}

/* ===================== DICTS ===================== */

func (r *PostgresRepo) ListDicts(ctx context.Context, dictType string) ([]Dict, error) {
	const q = `
SELECT id, dict_type, label, value, is_default
FROM dicts
WHERE ($1 = '' OR dict_type = $1)
ORDER BY dict_type, id
`
	rows, err := r.db.QueryContext(ctx, q, dictType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Dict
	for rows.Next() {
		var d Dict
		if err := rows.Scan(&d.ID, &d.DictType, &d.Label, &d.Value, &d.IsDefault); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) CreateDict(ctx context.Context, d Dict) (int64, error) {
	const q = `
INSERT INTO dicts (dict_type, label, value, is_default)
VALUES ($1, $2, $3, $4)
RETURNING id
`
	var id int64
	err := r.db.QueryRowContext(ctx, q, d.DictType, d.Label, d.Value, d.IsDefault).Scan(&id)
	return id, err
}

func (r *PostgresRepo) UpdateDict(ctx context.Context, id int64, d Dict) error {
	const q = `
UPDATE dicts SET dict_type = $2, label = $3, value = $4, is_default = $5
WHERE id = $1
`
	res, err := r.db.ExecContext(ctx, q, id, d.DictType, d.Label, d.Value, d.IsDefault)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) DeleteDict(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dicts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
