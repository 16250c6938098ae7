package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"artmuseum/internal/auth"
	apperrors "artmuseum/internal/errors"
	"artmuseum/internal/log"
	"artmuseum/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	logger      log.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, logger log.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Token string `json:"token"`
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /Auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, _, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, LoginResponse{Token: token})
}

// Me godoc
// @Summary Profile of the token holder
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /Auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return fail(c, h.logger, apperrors.ErrUnauthorized)
	}

	user, err := h.authService.Profile(c.Request().Context(), claims)
	if err != nil {
		return fail(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, user)
}
