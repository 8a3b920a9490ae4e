package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorType represents the failure classes surfaced by the frontend
type ErrorType string

const (
	// ErrorTypeAuthMissing indicates a credential was required but absent
	ErrorTypeAuthMissing ErrorType = "AUTH_MISSING"

	// ErrorTypeValidation indicates locally detectable bad input
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeExternal indicates a non-success response from the REST API
	ErrorTypeExternal ErrorType = "EXTERNAL"

	// ErrorTypeTransport indicates the REST API could not be reached
	ErrorTypeTransport ErrorType = "TRANSPORT"

	// ErrorTypeDecode indicates a malformed session token or payload
	ErrorTypeDecode ErrorType = "DECODE"

	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	// Status is the upstream HTTP status for EXTERNAL errors.
	Status int
	Err    error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAuthMissingError creates a new missing-credential error
func NewAuthMissingError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeAuthMissing,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewAPIError creates an error for a non-success API response
func NewAPIError(status int, message string) *AppError {
	if message == "" {
		message = http.StatusText(status)
	}
	return &AppError{
		Type:    ErrorTypeExternal,
		Message: message,
		Status:  status,
	}
}

// NewTransportError creates an error for a failed API round trip
func NewTransportError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeTransport,
		Message: message,
		Err:     err,
	}
}

// NewDecodeError creates a new decode error
func NewDecodeError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeDecode,
		Message: message,
		Err:     err,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// TypeOf returns the ErrorType of err, or ErrorTypeInternal for foreign errors.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// IsType reports whether err is an AppError of the given type
func IsType(err error, t ErrorType) bool {
	return err != nil && TypeOf(err) == t
}

// MessageOf returns the user-facing message carried by err.
func MessageOf(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// StatusOf returns the upstream status of an EXTERNAL error, or 0.
func StatusOf(err error) int {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Status
	}
	return 0
}
