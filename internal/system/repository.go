package system

import "context"

// Storage contracts for the admin resource CRUD. Implementations live in
// postgres.go; tests use in-memory fakes.

type UserRepository interface {
	ListUsers(ctx context.Context, q UserQuery) ([]User, int, error)
	CreateUser(ctx context.Context, u User, passwordHash string, roleIDs []int64) (int64, error)
	UpdateUser(ctx context.Context, id int64, req UpdateUserRequest) error
	DeleteUser(ctx context.Context, id int64) error
	UsernameExists(ctx context.Context, username string) (bool, error)
}

type RoleRepository interface {
	ListRoles(ctx context.Context, q RoleQuery) ([]Role, int, error)
	CreateRole(ctx context.Context, r Role, menuIDs []int64) (int64, error)
	UpdateRole(ctx context.Context, id int64, req UpdateRoleRequest) error
	DeleteRole(ctx context.Context, id int64) error
	RoleOptions(ctx context.Context) ([]OptionItem, error)
}

type MenuRepository interface {
	ListMenus(ctx context.Context, name string) ([]Menu, error)
	CreateMenu(ctx context.Context, m Menu) (int64, error)
	UpdateMenu(ctx context.Context, id int64, m Menu) error
	DeleteMenu(ctx context.Context, id int64) error
}

type DictRepository interface {
	ListDicts(ctx context.Context, dictType string) ([]Dict, error)
	CreateDict(ctx context.Context, d Dict) (int64, error)
	UpdateDict(ctx context.Context, id int64, d Dict) error
	DeleteDict(ctx context.Context, id int64) error
}
