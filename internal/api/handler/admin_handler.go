package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/melxagency/rmoneyok/internal/core/domain"
	"github.com/melxagency/rmoneyok/internal/core/ports"
)

// AdminHandler exposes the back-office account, role, and permission screens.
type AdminHandler struct {
	auth  ports.AuthService
	roles ports.RoleRepository
}

func NewAdminHandler(auth ports.AuthService, roles ports.RoleRepository) *AdminHandler {
	return &AdminHandler{auth: auth, roles: roles}
}

type createUserRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	FullName string `json:"fullname" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required"`
}

type updateUserRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	FullName string `json:"fullname" validate:"required"`
	Password string `json:"password" validate:"omitempty,min=8"`
	Role     string `json:"role" validate:"required"`
}

type roleRequest struct {
	Name string `json:"name" validate:"required"`
}

type permissionRequest struct {
	Role         string `json:"role" validate:"required"`
	ManageUsers  bool   `json:"manage_users"`
	ManageLeads  bool   `json:"manage_leads"`
	ManagePrices bool   `json:"manage_prices"`
}

// CreateUser registers a new operator account.
//
// @Summary      Create operator
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "Operator"
// @Success      201   {object}  domain.User
// @Failure      409   {object}  map[string]string
// @Security     BearerAuth
// @Router       /admin/users [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.auth.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Username: req.Username,
		FullName: req.FullName,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// ListUsers returns every operator account.
//
// @Summary      List operators
// @Tags         admin
// @Produce      json
// @Success      200  {array}  domain.User
// @Security     BearerAuth
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.auth.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateUser edits an operator account. A blank password keeps the current one.
//
// @Summary      Update operator
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Operator"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  map[string]string
// @Security     BearerAuth
// @Router       /admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.auth.UpdateUser(c.Request().Context(), ports.UpdateUserInput{
		ID:       c.Param("id"),
		Username: req.Username,
		FullName: req.FullName,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser removes an operator account.
//
// @Summary      Delete operator
// @Tags         admin
// @Produce      json
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.auth.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListRoles returns all roles.
//
// @Summary      List roles
// @Tags         admin
// @Produce      json
// @Success      200  {array}  domain.Role
// @Security     BearerAuth
// @Router       /admin/roles [get]
func (h *AdminHandler) ListRoles(c echo.Context) error {
	roles, err := h.roles.Roles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roles)
}

// CreateRole adds a role.
//
// @Summary      Create role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      roleRequest  true  "Role"
// @Success      201   {object}  domain.Role
// @Security     BearerAuth
// @Router       /admin/roles [post]
func (h *AdminHandler) CreateRole(c echo.Context) error {
	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	role, err := h.roles.CreateRole(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, role)
}

// UpdateRole renames a role.
//
// @Summary      Rename role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Role id"
// @Param        body  body      roleRequest  true  "Role"
// @Success      200   {object}  domain.Role
// @Failure      404   {object}  map[string]string
// @Security     BearerAuth
// @Router       /admin/roles/{id} [put]
func (h *AdminHandler) UpdateRole(c echo.Context) error {
	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	role, err := h.roles.UpdateRole(c.Request().Context(), c.Param("id"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, role)
}

// DeleteRole removes a role.
//
// @Summary      Delete role
// @Tags         admin
// @Produce      json
// @Param        id  path  string  true  "Role id"
// @Success      204
// @Security     BearerAuth
// @Router       /admin/roles/{id} [delete]
func (h *AdminHandler) DeleteRole(c echo.Context) error {
	if err := h.roles.DeleteRole(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListPermissions returns every role's grants.
//
// @Summary      List permissions
// @Tags         admin
// @Produce      json
// @Success      200  {array}  domain.RolePermission
// @Security     BearerAuth
// @Router       /admin/permissions [get]
func (h *AdminHandler) ListPermissions(c echo.Context) error {
	perms, err := h.roles.Permissions(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, perms)
}

// PermissionByRole returns a single role's grants.
//
// @Summary      Permissions of a role
// @Tags         admin
// @Produce      json
// @Param        role  path      string  true  "Role name"
// @Success      200   {object}  domain.RolePermission
// @Failure      404   {object}  map[string]string
// @Security     BearerAuth
// @Router       /admin/permissions/by-role/{role} [get]
func (h *AdminHandler) PermissionByRole(c echo.Context) error {
	perm, err := h.roles.PermissionByRole(c.Request().Context(), c.Param("role"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, perm)
}

// CreatePermission records a role's grants.
//
// @Summary      Create permission
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      permissionRequest  true  "Permission"
// @Success      201   {object}  domain.RolePermission
// @Security     BearerAuth
// @Router       /admin/permissions [post]
func (h *AdminHandler) CreatePermission(c echo.Context) error {
	var req permissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	perm, err := h.roles.CreatePermission(c.Request().Context(), &domain.RolePermission{
		Role:         req.Role,
		ManageUsers:  req.ManageUsers,
		ManageLeads:  req.ManageLeads,
		ManagePrices: req.ManagePrices,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, perm)
}

// UpdatePermission replaces a role's grants.
//
// @Summary      Update permission
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Permission id"
// @Param        body  body      permissionRequest  true  "Permission"
// @Success      200   {object}  domain.RolePermission
// @Failure      404   {object}  map[string]string
// @Security     BearerAuth
// @Router       /admin/permissions/{id} [put]
func (h *AdminHandler) UpdatePermission(c echo.Context) error {
	var req permissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	perm, err := h.roles.UpdatePermission(c.Request().Context(), &domain.RolePermission{
		ID:           c.Param("id"),
		Role:         req.Role,
		ManageUsers:  req.ManageUsers,
		ManageLeads:  req.ManageLeads,
		ManagePrices: req.ManagePrices,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, perm)
}

// DeletePermission removes a role's grants.
//
// @Summary      Delete permission
// @Tags         admin
// @Produce      json
// @Param        id  path  string  true  "Permission id"
// @Success      204
// @Security     BearerAuth
// @Router       /admin/permissions/{id} [delete]
func (h *AdminHandler) DeletePermission(c echo.Context) error {
	if err := h.roles.DeletePermission(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// MenuByRole returns the admin sections a role can see.
//
// @Summary      Menu of a role
// @Tags         admin
// @Produce      json
// @Param        role  path      string  true  "Role name"
// @Success      200   {object}  domain.RoleMenu
// @Failure      404   {object}  map[string]string
// @Security     BearerAuth
// @Router       /admin/menus/{role} [get]
func (h *AdminHandler) MenuByRole(c echo.Context) error {
	menu, err := h.roles.MenuByRole(c.Request().Context(), c.Param("role"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, menu)
}
