package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"artmuseum/internal/log"
	"artmuseum/internal/service"
)

// UserHandler serves the user routes of one backend.
type UserHandler struct {
	svc    service.UserService
	prefix string
	logger log.Logger
}

// NewUserHandler creates a handler whose Location headers start with prefix,
// e.g. "/api/mysql/Users".
func NewUserHandler(svc service.UserService, prefix string, logger log.Logger) *UserHandler {
	return &UserHandler{svc: svc, prefix: prefix, logger: logger}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	UserName string `json:"userName" validate:"max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,max=72"`
}

// RolesRequest replaces a user's roles with a comma-separated list.
type RolesRequest struct {
	Roles string `json:"roles" validate:"required,max=50"`
}

// Register godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param backend path string true "mysql, mongo or neo4j"
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /{backend}/Users/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.svc.Register(c.Request().Context(), req.UserName, req.Email, req.Password)
	if err != nil {
		return fail(c, h.logger, err)
	}

	c.Response().Header().Set(echo.HeaderLocation, location(h.prefix, user.ID))
	return c.JSON(http.StatusCreated, user)
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param backend path string true "mysql, mongo or neo4j"
// @Param id path int true "User ID"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /{backend}/Users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return fail(c, h.logger, err)
	}
	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, user)
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param backend path string true "mysql, mongo or neo4j"
// @Success 200 {array} model.User
// @Router /{backend}/Users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateRoles godoc
// @Summary Replace a user's roles
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param backend path string true "mysql, mongo or neo4j"
// @Param id path int true "User ID"
// @Param request body RolesRequest true "Roles"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /{backend}/Users/{id}/roles [put]
func (h *UserHandler) UpdateRoles(c echo.Context) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return fail(c, h.logger, err)
	}
	var req RolesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.svc.UpdateRoles(c.Request().Context(), id, req.Roles)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags users
// @Security BearerAuth
// @Param backend path string true "mysql, mongo or neo4j"
// @Param id path int true "User ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /{backend}/Users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return fail(c, h.logger, err)
	}
	if err := h.svc.DeleteUser(c.Request().Context(), id); err != nil {
		return fail(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}
