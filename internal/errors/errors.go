package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrBookNotFound is returned when a book is not found.
	ErrBookNotFound = errors.New("book not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when another user already owns the email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrReferenced is returned when a row cannot be deleted because a transaction points at it.
	ErrReferenced = errors.New("record is referenced by a transaction")
	// ErrInvalidField is returned when a supplied field cannot be decoded.
	ErrInvalidField = errors.New("invalid field")
)

// MissingFieldError reports required JSON keys absent from a payload.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return "missing required field: " + strings.Join(e.Fields, ", ")
}

// InvalidFieldError reports a field that is present but malformed.
type InvalidFieldError struct {
	Field  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid field %s: %s", e.Field, e.Reason)
}

// Unwrap lets callers match with errors.Is(err, ErrInvalidField).
func (e *InvalidFieldError) Unwrap() error {
	return ErrInvalidField
}

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
	var missing *MissingFieldError
	var invalid *InvalidFieldError

	switch {
	case errors.Is(err, ErrBookNotFound):
		return NewHTTPError(http.StatusNotFound, ErrBookNotFound.Error(), "BOOK_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.As(err, &missing):
		return NewHTTPError(http.StatusBadRequest, missing.Error(), "MISSING_FIELD")
	case errors.As(err, &invalid):
		return NewHTTPError(http.StatusBadRequest, invalid.Error(), "INVALID_FIELD")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, ErrEmailTaken.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrReferenced):
		return NewHTTPError(http.StatusConflict, ErrReferenced.Error(), "RECORD_REFERENCED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
