package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/easyjatra/marketplace-api/internal/core/ports"
)

// UserHandler handles account sync, role lookup, and admin user management.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Sync handles POST /user — upsert by email on login.
//
// @Summary      Sync a user profile after identity-provider login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      syncUserRequest  true  "User profile"
// @Success      200   {object}  syncUserResponse
// @Failure      400   {object}  errorResponse
// @Router       /user [post]
func (h *UserHandler) Sync(c echo.Context) error {
	var req syncUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.SyncLogin(c.Request().Context(), ports.SyncLoginInput{
		Email: req.Email,
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		return err
	}

	resp := syncUserResponse{Created: result.Created}
	if result.Created {
		resp.InsertedID = result.UserID
	}
	return c.JSON(http.StatusOK, resp)
}

// Role handles GET /user/role — the caller's stored role.
//
// @Summary      Get the caller's role
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  roleResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /user/role [get]
func (h *UserHandler) Role(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	role, err := h.service.Role(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roleResponse{Role: role})
}

// List handles GET /users (admin only) — every user except the caller.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	users, err := h.service.ListOthers(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateRole handles PATCH /update-role (admin only).
//
// @Summary      Assign a role to a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateRoleRequest  true  "Email and new role"
// @Success      200   {object}  map[string]bool
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /update-role [patch]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.UpdateRole(c.Request().Context(), req.Email, req.Role); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"updated": true})
}
