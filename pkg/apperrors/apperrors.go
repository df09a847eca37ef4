package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind categorizes an error for HTTP mapping
type Kind string

const (
	// KindValidation represents malformed or incomplete input
	KindValidation Kind = "validation"
	// KindNotFound represents a lookup with no result where one is required
	KindNotFound Kind = "not_found"
	// KindAuthentication represents bad credentials or an invalid/expired token
	KindAuthentication Kind = "authentication"
	// KindAuthorization represents an authenticated caller acting outside its scope
	KindAuthorization Kind = "authorization"
	// KindInternal represents backing-store or transport failures
	KindInternal Kind = "internal"
)

// Error is the application error type carrying a kind, message and wrapped cause
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new application error
func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation creates a validation error
func Validation(message string, err error) *Error {
	return New(KindValidation, message, err)
}

// NotFound creates a not-found error
func NotFound(message string) *Error {
	return New(KindNotFound, message, nil)
}

// Authentication creates an authentication error
func Authentication(message string, err error) *Error {
	return New(KindAuthentication, message, err)
}

// Authorization creates an authorization error
func Authorization(message string) *Error {
	return New(KindAuthorization, message, nil)
}

// Internal creates an internal error
func Internal(message string, err error) *Error {
	return New(KindInternal, message, err)
}

// KindOf extracts the kind from err, walking wrapped errors.
// Unclassified errors report KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps an error to the HTTP status code it should surface as
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
