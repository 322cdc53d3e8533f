package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/onevoker/TimeTracker/internal/core/domain"
	"github.com/onevoker/TimeTracker/internal/core/ports"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 500
)

// AdminHandler exposes role management and the activity log.
type AdminHandler struct {
	roles    ports.RoleService
	activity ports.ActivityRepository
}

func NewAdminHandler(roles ports.RoleService, activity ports.ActivityRepository) *AdminHandler {
	return &AdminHandler{roles: roles, activity: activity}
}

// AddRole handles POST /admin/add-role?username=&roleName=.
//
// @Summary      Grant a role to a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        username  query     string  true  "Username"
// @Param        roleName  query     string  true  "Role, e.g. ROLE_Admin"
// @Success      200       {object}  messageResponse
// @Failure      404       {object}  errorResponse
// @Router       /admin/add-role [post]
func (h *AdminHandler) AddRole(c echo.Context) error {
	username := c.QueryParam("username")
	role := c.QueryParam("roleName")
	if username == "" || role == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and roleName are required")
	}
	msg, err := h.roles.AddRoleToUser(c.Request().Context(), username, domain.Role(role))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

// CreateUserWithRole handles POST /admin/create-user-with-role?roleName=.
//
// @Summary      Create a user holding a role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        roleName  query     string              true  "Role, e.g. ROLE_Admin"
// @Param        body      body      credentialsRequest  true  "Username and password"
// @Success      201       {object}  messageResponse
// @Failure      404       {object}  errorResponse
// @Failure      409       {object}  errorResponse
// @Router       /admin/create-user-with-role [post]
func (h *AdminHandler) CreateUserWithRole(c echo.Context) error {
	role := c.QueryParam("roleName")
	if role == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "roleName is required")
	}
	var req credentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	msg, err := h.roles.CreateUserWithRole(c.Request().Context(), req.Username, req.Password, domain.Role(role))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: msg})
}

// CreateRole handles POST /admin/roles.
//
// @Summary      Create a role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      roleRequest  true  "Role name"
// @Success      201   {object}  domain.RoleEntry
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /admin/roles [post]
func (h *AdminHandler) CreateRole(c echo.Context) error {
	var req roleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	entry, err := h.roles.CreateRole(c.Request().Context(), domain.Role(req.Name))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}

// ListRoles handles GET /admin/roles.
//
// @Summary      List roles
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.RoleEntry
// @Router       /admin/roles [get]
func (h *AdminHandler) ListRoles(c echo.Context) error {
	roles, err := h.roles.ListRoles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roles)
}

// Activity handles GET /admin/activity?limit=.
//
// @Summary      Recent activity
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max entries (default 50, max 500)"
// @Success      200    {array}   domain.ActivityEntry
// @Router       /admin/activity [get]
func (h *AdminHandler) Activity(c echo.Context) error {
	limit := defaultActivityLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = min(n, maxActivityLimit)
	}
	entries, err := h.activity.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
