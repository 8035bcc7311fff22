package system

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"zenadmin/internal/auth"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUsernameTaken   = errors.New("username already exists")
	ErrSystemProtected = errors.New("system resource cannot be modified")
)

// Service implements the admin resource CRUD. Thin orchestration over the
// repositories: validate, normalize, delegate.
type Service struct {
	users UserRepository
	roles RoleRepository
	menus MenuRepository
	dicts DictRepository
}

func NewService(users UserRepository, roles RoleRepository, menus MenuRepository, dicts DictRepository) *Service {
	return &Service{users: users, roles: roles, menus: menus, dicts: dicts}
}

/* ===================== USERS ===================== */

func (s *Service) ListUsers(ctx context.Context, q UserQuery) (Page[User], error) {
	q.Current, q.PageSize = normalizePage(q.Current, q.PageSize)
	list, total, err := s.users.ListUsers(ctx, q)
	if err != nil {
		return Page[User]{}, fmt.Errorf("list users: %w", err)
	}
	return Page[User]{List: list, Total: total, Current: q.Current, PageSize: q.PageSize}, nil
}

func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (int64, error) {
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Email == "" {
		return 0, ErrInvalidArgument
	}
	if len(req.Password) < 8 {
		return 0, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidArgument)
	}
	if req.Status == 0 {
		req.Status = StatusNormal
	}

	taken, err := s.users.UsernameExists(ctx, req.Username)
	if err != nil {
		return 0, fmt.Errorf("username check: %w", err)
	}
	if taken {
		return 0, ErrUsernameTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	u := User{
		Username: req.Username,
		Email:    req.Email,
		RealName: req.RealName,
		Status:   req.Status,
	}
	return s.users.CreateUser(ctx, u, hash, req.RoleIDs)
}

func (s *Service) UpdateUser(ctx context.Context, id int64, req UpdateUserRequest) error {
	if id <= 0 {
		return ErrInvalidArgument
	}
	if req.Status != nil && *req.Status != StatusNormal && *req.Status != StatusDisabled {
		return ErrInvalidArgument
	}
	return s.users.UpdateUser(ctx, id, req)
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidArgument
	}
	return s.users.DeleteUser(ctx, id)
}

/* ===================== ROLES ===================== */

func (s *Service) ListRoles(ctx context.Context, q RoleQuery) (Page[Role], error) {
	q.Current, q.PageSize = normalizePage(q.Current, q.PageSize)
	list, total, err := s.roles.ListRoles(ctx, q)
	if err != nil {
		return Page[Role]{}, fmt.Errorf("list roles: %w", err)
	}
	return Page[Role]{List: list, Total: total, Current: q.Current, PageSize: q.PageSize}, nil
}

func (s *Service) CreateRole(ctx context.Context, req CreateRoleRequest) (int64, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Code = strings.TrimSpace(req.Code)
	if req.Name == "" || req.Code == "" {
		return 0, ErrInvalidArgument
	}
	if req.Status == 0 {
		req.Status = StatusNormal
	}
	r := Role{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Status:      req.Status,
		SortOrder:   req.SortOrder,
	}
	return s.roles.CreateRole(ctx, r, req.MenuIDs)
}

func (s *Service) UpdateRole(ctx context.Context, id int64, req UpdateRoleRequest) error {
	if id <= 0 {
		return ErrInvalidArgument
	}
	return s.roles.UpdateRole(ctx, id, req)
}

func (s *Service) DeleteRole(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidArgument
	}
	return s.roles.DeleteRole(ctx, id)
}

func (s *Service) RoleOptions(ctx context.Context) ([]OptionItem, error) {
	return s.roles.RoleOptions(ctx)
}

/* ===================== MENUS ===================== */

func (s *Service) ListMenus(ctx context.Context, name string) ([]Menu, error) {
	return s.menus.ListMenus(ctx, name)
}

func (s *Service) CreateMenu(ctx context.Context, req SaveMenuRequest) (int64, error) {
	if strings.TrimSpace(req.Name) == "" {
		return 0, ErrInvalidArgument
	}
	if req.Status == 0 {
		req.Status = StatusNormal
	}
	return s.menus.CreateMenu(ctx, Menu{
		ParentID:  req.ParentID,
		Name:      strings.TrimSpace(req.Name),
		Code:      strings.TrimSpace(req.Code),
		MenuType:  req.MenuType,
		SortOrder: req.SortOrder,
		Status:    req.Status,
	})
}

func (s *Service) UpdateMenu(ctx context.Context, id int64, req SaveMenuRequest) error {
	if id <= 0 || strings.TrimSpace(req.Name) == "" {
		return ErrInvalidArgument
	}
	return s.menus.UpdateMenu(ctx, id, Menu{
		ParentID:  req.ParentID,
		Name:      strings.TrimSpace(req.Name),
		Code:      strings.TrimSpace(req.Code),
		MenuType:  req.MenuType,
		SortOrder: req.SortOrder,
		Status:    req.Status,
	})
}

func (s *Service) DeleteMenu(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidArgument
	}
	return s.menus.DeleteMenu(ctx, id)
}

/* ===================== DICTS ===================== */

func (s *Service) ListDicts(ctx context.Context, dictType string) ([]Dict, error) {
	return s.dicts.ListDicts(ctx, dictType)
}

func (s *Service) CreateDict(ctx context.Context, req SaveDictRequest) (int64, error) {
	if req.DictType == "" || req.Label == "" || req.Value == "" {
		return 0, ErrInvalidArgument
	}
	return s.dicts.CreateDict(ctx, Dict{
		DictType:  req.DictType,
		Label:     req.Label,
		Value:     req.Value,
		IsDefault: req.IsDefault,
	})
}

func (s *Service) UpdateDict(ctx context.Context, id int64, req SaveDictRequest) error {
	if id <= 0 {
		return ErrInvalidArgument
	}
	return s.dicts.UpdateDict(ctx, id, Dict{
		DictType:  req.DictType,
		Label:     req.Label,
		Value:     req.Value,
		IsDefault: req.IsDefault,
	})
}

func (s *Service) DeleteDict(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidArgument
	}
	return s.dicts.DeleteDict(ctx, id)
}

func normalizePage(current, pageSize int) (int, int) {
	if current <= 0 {
		current = 1
	}
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 20
	}
	return current, pageSize
}
