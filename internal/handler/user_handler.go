package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"docvault/internal/auth"
	"docvault/internal/model"
	"docvault/internal/service"
)

// UserHandler handles user management endpoints.
type UserHandler struct {
	svc            service.UserService
	internalSecret string
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc service.UserService, internalSecret string) *UserHandler {
	return &UserHandler{svc: svc, internalSecret: internalSecret}
}

// UpdateUserRequest patches user fields; empty fields stay unchanged.
type UpdateUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" validate:"omitempty,email"`
}

// UpdateRoleRequest changes a user's role.
type UpdateRoleRequest struct {
	Role model.Role `json:"role" validate:"required"`
}

// ListUsers godoc
// @Summary Get all users (Admin only)
// @Tags users
// @Produce json
// @Success 200 {object} Response
// @Failure 403 {object} Response
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "User Retrieved Successfully", users)
}

// GetUser godoc
// @Summary Get a user by ID (users can see only their own details)
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondBadRequest(c, "invalid user id")
	}

	// Internal callers and the user themselves may read the record.
	claims := auth.CurrentUser(c)
	if !auth.IsInternal(c, h.internalSecret) && (claims == nil || claims.UserID != id) {
		return echo.NewHTTPError(http.StatusForbidden, "you can only view your own details")
	}

	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "User Retrieved Successfully", user)
}

// UpdateUser godoc
// @Summary Update user details (Editor only)
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Router /users/{id} [patch]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondBadRequest(c, "invalid user id")
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	user, err := h.svc.UpdateUser(c.Request().Context(), id, req.FirstName, req.LastName, req.Email)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "User Updated Successfully", user)
}

// UpdateRole godoc
// @Summary Update user role (Admin only)
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body UpdateRoleRequest true "New role"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Router /users/{id}/role [patch]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondBadRequest(c, "invalid user id")
	}

	var req UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	user, err := h.svc.UpdateRole(c.Request().Context(), id, req.Role)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "UserRole updated Successfully", user)
}

// DeleteUser godoc
// @Summary Delete a user (Admin only)
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondBadRequest(c, "invalid user id")
	}

	if err := h.svc.DeleteUser(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "User Deleted Successfully", nil)
}
