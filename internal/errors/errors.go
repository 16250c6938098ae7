package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound is returned when the addressed entity does not exist in the backend.
	ErrNotFound = errors.New("resource not found")
	// ErrValidation is returned when a payload is missing a required field or exceeds a limit.
	ErrValidation = errors.New("validation failed")
	// ErrConflict is returned when a unique key (such as a user email) is already taken.
	ErrConflict = errors.New("resource already exists")
	// ErrInvalidCredentials is returned when email and password do not match a user.
	ErrInvalidCredentials = errors.New("Incorrect email or password.")
	// ErrUnauthorized is returned when a request carries no valid bearer token.
	ErrUnauthorized = errors.New("authentication required")
	// ErrForbidden is returned when the caller lacks the role an operation requires.
	ErrForbidden = errors.New("insufficient role")
	// ErrInvalidID is returned when an identifier cannot be parsed for the backend.
	ErrInvalidID = errors.New("invalid identifier")
	// ErrBackendUnavailable is returned when a store cannot be reached.
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors, possibly wrapped, to HTTP errors.
// Anything unrecognized becomes a generic 500 that leaks no internals.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, ErrNotFound.Error(), "NOT_FOUND")
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_FAILED")
	case errors.Is(err, ErrInvalidID):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidID.Error(), "INVALID_ID")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, ErrConflict.Error(), "CONFLICT")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthorized.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, ErrForbidden.Error(), "FORBIDDEN")
	case errors.Is(err, ErrBackendUnavailable):
		return NewHTTPError(http.StatusServiceUnavailable, ErrBackendUnavailable.Error(), "BACKEND_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
