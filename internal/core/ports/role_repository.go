package ports

import (
	"context"

	"github.com/melxagency/rmoneyok/internal/core/domain"
)

// RoleRepository persists operator roles and their grants.
type RoleRepository interface {
	Roles(ctx context.Context) ([]domain.Role, error)
	CreateRole(ctx context.Context, name string) (*domain.Role, error)
	UpdateRole(ctx context.Context, id, name string) (*domain.Role, error)
	DeleteRole(ctx context.Context, id string) error

	Permissions(ctx context.Context) ([]domain.RolePermission, error)
	PermissionByRole(ctx context.Context, role string) (*domain.RolePermission, error)
	CreatePermission(ctx context.Context, perm *domain.RolePermission) (*domain.RolePermission, error)
	UpdatePermission(ctx context.Context, perm *domain.RolePermission) (*domain.RolePermission, error)
	DeletePermission(ctx context.Context, id string) error

	MenuByRole(ctx context.Context, role string) (*domain.RoleMenu, error)
}
