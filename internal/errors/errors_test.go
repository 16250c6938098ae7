package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "artmuseum/internal/errors"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", apperrors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"wrapped not found", fmt.Errorf("neo4j get collection 7: %w", apperrors.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"validation", fmt.Errorf("%w: name is required", apperrors.ErrValidation), http.StatusBadRequest, "VALIDATION_FAILED"},
		{"invalid id", apperrors.ErrInvalidID, http.StatusBadRequest, "INVALID_ID"},
		{"conflict", apperrors.ErrConflict, http.StatusConflict, "CONFLICT"},
		{"credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"unauthorized", apperrors.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"unavailable", apperrors.ErrBackendUnavailable, http.StatusServiceUnavailable, "BACKEND_UNAVAILABLE"},
		{"unknown", fmt.Errorf("dial tcp: connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := apperrors.MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.status, httpErr.StatusCode)
			assert.Equal(t, tt.code, httpErr.ToErrorResponse().Code)
		})
	}
}

func TestMapErrorToHTTPHidesInternals(t *testing.T) {
	httpErr := apperrors.MapErrorToHTTP(fmt.Errorf("mysql: password=secret"))
	assert.Equal(t, "internal server error", httpErr.Error())
}
