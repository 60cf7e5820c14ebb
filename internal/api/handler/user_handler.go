package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawmarket/petstore-api/internal/core/domain"
	"github.com/pawmarket/petstore-api/internal/core/ports"
)

// UserHandler handles HTTP requests for account administration.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=client seller veterinarian admin owner"`
}

type setBannedRequest struct {
	Banned bool `json:"banned"`
}

type myPermissionsResponse struct {
	Role        domain.Role          `json:"role,omitempty"`
	Permissions domain.PermissionSet `json:"permissions"`
}

type rolesResponse struct {
	Roles []domain.Role `json:"roles"`
}

// List handles GET /v1/users; staff only.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	users, err := h.service.List(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /v1/users/:id; staff, or the account itself.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ChangeRole handles PATCH /v1/users/:id/role; staff only; changes that
// touch the admin or owner level require the owner.
//
// @Summary      Change a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User ID"
// @Param        body  body      changeRoleRequest  true  "New role"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/users/{id}/role [patch]
func (h *UserHandler) ChangeRole(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.ChangeRole(c.Request().Context(), caller, c.Param("id"), domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// SetBanned handles PATCH /v1/users/:id/ban; staff only.
//
// @Summary      Ban or unban a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "User ID"
// @Param        body  body      setBannedRequest  true  "Ban flag"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/users/{id}/ban [patch]
func (h *UserHandler) SetBanned(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req setBannedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.SetBanned(c.Request().Context(), caller, c.Param("id"), req.Banned)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /v1/users/:id; owner only.
//
// @Summary      Delete a user account
// @Tags         users
// @Security     BearerAuth
// @Param        id  path  string  true  "User ID"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// MyPermissions handles GET /v1/me/permissions. Authenticated callers get
// the set derived from their stored role, so a role change takes effect on
// the next request without reissuing the token. Anonymous callers get the
// minimal anonymous set.
//
// @Summary      Caller's permission set
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  myPermissionsResponse
// @Router       /v1/me/permissions [get]
func (h *UserHandler) MyPermissions(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return c.JSON(http.StatusOK, myPermissionsResponse{
			Permissions: domain.AnonymousPermissions(),
		})
	}
	return c.JSON(http.StatusOK, myPermissionsResponse{
		Role:        caller.Role,
		Permissions: caller.Permissions,
	})
}

// Roles handles GET /v1/roles; owner only. The role set is closed, so this
// is a constant.
//
// @Summary      List assignable roles
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  rolesResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/roles [get]
func (h *UserHandler) Roles(c echo.Context) error {
	if _, err := ctxCaller(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rolesResponse{Roles: domain.AllRoles})
}

// Stats handles GET /v1/stats; owner only.
//
// @Summary      System statistics
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.SystemStats
// @Failure      403  {object}  errorResponse
// @Router       /v1/stats [get]
func (h *UserHandler) Stats(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
