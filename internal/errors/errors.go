package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailInUse is returned when signing up with an already registered email.
	ErrEmailInUse = errors.New("email already in use")
	// ErrInvalidCredentials is returned for unknown email or wrong password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotAuthorized is returned when a bearer credential is missing, invalid or expired.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrUnsupportedImage is returned when an uploaded file is not a decodable raster image.
	ErrUnsupportedImage = errors.New("unsupported image format")
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Message: e.Message}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unrecognized
// becomes a generic 500 so internals never leak into responses.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrEmailInUse):
		return NewHTTPError(http.StatusConflict, "Email in use")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, "Email or password is wrong")
	case errors.Is(err, ErrNotAuthorized):
		return NewHTTPError(http.StatusUnauthorized, "Not authorized")
	default:
		return NewHTTPError(http.StatusInternalServerError, "error")
	}
}
