package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "artmuseum/internal/errors"
	"artmuseum/internal/log"
)

// fail maps err onto the HTTP error envelope. Server-side failures are
// logged here since the body the client gets says nothing about them.
func fail(c echo.Context, logger log.Logger, err error) error {
	mapped := apperrors.MapErrorToHTTP(err)
	if mapped.StatusCode >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request().Method).
			Str("route", c.Path()).
			Msg("request failed")
	}
	return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
}

func badBody() error {
	return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
		Error: "invalid request body",
		Code:  "INVALID_BODY",
	})
}

func invalid(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
		Error: err.Error(),
		Code:  "VALIDATION_FAILED",
	})
}

// bindAndValidate decodes the body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return badBody()
	}
	if err := c.Validate(req); err != nil {
		return invalid(err)
	}
	return nil
}

// int64Param reads a numeric path parameter.
func int64Param(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", name, c.Param(name), apperrors.ErrInvalidID)
	}
	return id, nil
}
