package system

import "time"

// Resource status codes shared by users, roles, and menus.
const (
	StatusNormal   = 1
	StatusDisabled = 2
)

// Page is the paginated list envelope the admin UI consumes.
type Page[T any] struct {
	List     []T `json:"list"`
	Total    int `json:"total"`
	Current  int `json:"current"`
	PageSize int `json:"pageSize"`
}

type OptionItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type User struct {
	ID          int64        `json:"id"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	RealName    string       `json:"realName,omitempty"`
	AvatarURL   string       `json:"avatarUrl,omitempty"`
	Status      int          `json:"status"`
	LastLoginAt *time.Time   `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Roles       []OptionItem `json:"roles"`
}

type CreateUserRequest struct {
	Username string  `json:"username" binding:"required"`
	Email    string  `json:"email" binding:"required"`
	Password string  `json:"password" binding:"required"`
	RealName string  `json:"realName"`
	Status   int     `json:"status"`
	RoleIDs  []int64 `json:"roleIds"`
}

type UpdateUserRequest struct {
	Email    *string  `json:"email"`
	RealName *string  `json:"realName"`
	Status   *int     `json:"status"`
	RoleIDs  *[]int64 `json:"roleIds"`
}

type UserQuery struct {
	Current  int
	PageSize int
	Username string
	Status   int // 0 means all
}

type Role struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Code        string       `json:"code"`
	Description string       `json:"description,omitempty"`
	Status      int          `json:"status"`
	SortOrder   int          `json:"sortOrder"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Menus       []OptionItem `json:"menus"`
}

type CreateRoleRequest struct {
	Name        string  `json:"name" binding:"required"`
	Code        string  `json:"code" binding:"required"`
	Description string  `json:"description"`
	Status      int     `json:"status"`
	SortOrder   int     `json:"sortOrder"`
	MenuIDs     []int64 `json:"menuIds"`
}

type UpdateRoleRequest struct {
	Name        *string  `json:"name"`
	Code        *string  `json:"code"`
	Description *string  `json:"description"`
	Status      *int     `json:"status"`
	SortOrder   *int     `json:"sortOrder"`
	MenuIDs     *[]int64 `json:"menuIds"`
}

type RoleQuery struct {
	Current  int
	PageSize int
	Name     string
	Status   int
}

type Menu struct {
	ID        int64     `json:"id"`
	ParentID  int64     `json:"parentId"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	MenuType  int       `json:"menuType"`
	SortOrder int       `json:"sortOrder"`
	Status    int       `json:"status"`
	IsSystem  bool      `json:"isSystem"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SaveMenuRequest struct {
	ParentID  int64  `json:"parentId"`
	Name      string `json:"name" binding:"required"`
	Code      string `json:"code"`
	MenuType  int    `json:"menuType"`
	SortOrder int    `json:"sortOrder"`
	Status    int    `json:"status"`
}

type Dict struct {
	ID        int64  `json:"id"`
	DictType  string `json:"dictType"`
	Label     string `json:"label"`
	Value     string `json:"value"`
	IsDefault bool   `json:"isDefault"`
}

type SaveDictRequest struct {
	DictType  string `json:"dictType" binding:"required"`
	Label     string `json:"label" binding:"required"`
	Value     string `json:"value" binding:"required"`
	IsDefault bool   `json:"isDefault"`
}
