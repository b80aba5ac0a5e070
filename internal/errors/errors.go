package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrTaskNotFound is returned when a task does not exist or belongs to
	// another user. The two cases are deliberately indistinguishable.
	ErrTaskNotFound = errors.New("task not found")
	// ErrInvalidPriority is returned when a priority filter or field does not
	// name a known level.
	ErrInvalidPriority = errors.New("invalid priority")
	// ErrEmailInUse is returned when registering with an already used email.
	ErrEmailInUse = errors.New("email already in use")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidRefreshToken is returned when a refresh token is missing,
	// unknown, or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrUserNotFound is returned when a user lookup by id or email misses.
	ErrUserNotFound = errors.New("user not found")
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

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrTaskNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TASK_NOT_FOUND")
	case errors.Is(err, ErrInvalidPriority):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PRIORITY")
	case errors.Is(err, ErrEmailInUse):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_IN_USE")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_REFRESH_TOKEN")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
