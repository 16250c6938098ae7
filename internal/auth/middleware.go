package auth

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "artmuseum/internal/errors"
)

// ContextKey is where validated claims are stored on the echo context.
const ContextKey = "user"

// Middleware validates the bearer token with s and stores *Claims under
// ContextKey. Any failure answers 401 with a code naming the failure.
func Middleware(s *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  ContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(_ echo.Context, token string) (interface{}, error) {
			return s.Validate(token)
		},
		ErrorHandler: func(_ echo.Context, err error) error {
			code := "UNAUTHORIZED"
			switch {
			case errors.Is(err, ErrTokenExpired):
				code = "TOKEN_EXPIRED"
			case errors.Is(err, ErrTokenMalformed):
				code = "TOKEN_MALFORMED"
			case errors.Is(err, ErrTokenInvalid):
				code = "TOKEN_INVALID"
			case errors.Is(err, echojwt.ErrJWTMissing):
				code = "TOKEN_MISSING"
			}
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: apperrors.ErrUnauthorized.Error(),
				Code:  code,
			})
		},
	})
}

// ClaimsFrom returns the claims stored by Middleware.
func ClaimsFrom(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(ContextKey).(*Claims)
	return claims, ok && claims != nil
}

// RequireRole answers 401 when no claims are present and 403 when the
// claims lack role. It must run after Middleware.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: apperrors.ErrUnauthorized.Error(),
					Code:  "UNAUTHORIZED",
				})
			}
			if !claims.HasRole(role) {
				return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
					Error: apperrors.ErrForbidden.Error(),
					Code:  "FORBIDDEN",
				})
			}
			return next(c)
		}
	}
}
