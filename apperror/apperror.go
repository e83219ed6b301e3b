// Package apperror defines a centralized system for application-specific errors.
// Every error that crosses a handler boundary is an *AppError, so each failure
// maps deterministically to an HTTP status code and one of the two response
// envelopes the API speaks: validation errors carry
// {code, reason, message, location} and everything else carries {message}.
// Internal error detail (the wrapped Err) never reaches a client.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType defines the category of an application error.
type ErrorType int

const (
	// UnknownError is for unspecified errors
	UnknownError ErrorType = iota
	// DatabaseError represents an error originating from the store
	DatabaseError
	// ConfigError represents an error related to application configuration
	ConfigError
	// AuthError represents an authentication error (missing/invalid token, bad credentials)
	AuthError
	// UnauthorizedError represents an authorization error (authenticated but forbidden)
	UnauthorizedError
	// NotFoundError represents a missing route or resource
	NotFoundError
	// ValidationError represents a field-located input validation error
	ValidationError
	// BadRequestError represents a generic bad request
	BadRequestError
	// InternalError represents a generic internal server error
	InternalError
)

// AppError is the application's custom error type. It wraps an underlying
// error for debugging while keeping the user-facing Message separate.
// Location is only meaningful for ValidationError: it names the payload
// field that failed.
type AppError struct {
	Type     ErrorType
	Message  string
	Location string
	Err      error // underlying error, never serialized
}

// Error satisfies the standard error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error, participating in the Go 1.13+
// error-wrapping convention so errors.Is / errors.As can walk the chain.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code appropriate for the error type.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case DatabaseError, ConfigError, InternalError:
		return http.StatusInternalServerError
	case AuthError:
		// 401: the caller is not (validly) authenticated.
		return http.StatusUnauthorized
	case UnauthorizedError:
		// 403: the caller is authenticated but lacks permission.
		return http.StatusForbidden
	case NotFoundError:
		return http.StatusNotFound
	case ValidationError:
		return http.StatusUnprocessableEntity
	case BadRequestError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError is the generic constructor, useful when the error type is
// determined dynamically. Prefer the specific constructors below.
func NewAppError(errType ErrorType, message string, underlyingError error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     underlyingError,
	}
}

// NewDatabaseError creates a new DatabaseError
func NewDatabaseError(message string, underlyingError error) *AppError {
	return NewAppError(DatabaseError, message, underlyingError)
}

// NewConfigError creates a new ConfigError
func NewConfigError(message string, underlyingError error) *AppError {
	return NewAppError(ConfigError, message, underlyingError)
}

// NewAuthError creates a new AuthError (for authentication issues)
func NewAuthError(message string, underlyingError error) *AppError {
	return NewAppError(AuthError, message, underlyingError)
}

// NewUnauthorizedError creates a new UnauthorizedError (for authorization issues)
func NewUnauthorizedError(message string, underlyingError error) *AppError {
	return NewAppError(UnauthorizedError, message, underlyingError)
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(message string, underlyingError error) *AppError {
	return NewAppError(NotFoundError, message, underlyingError)
}

// NewValidationError creates a ValidationError located at the named payload
// field. The location travels to the client in the error envelope.
func NewValidationError(message string, location string) *AppError {
	return &AppError{
		Type:     ValidationError,
		Message:  message,
		Location: location,
	}
}

// NewBadRequestError creates a new BadRequestError
func NewBadRequestError(message string, underlyingError error) *AppError {
	return NewAppError(BadRequestError, message, underlyingError)
}

// NewInternalError creates a new InternalError
func NewInternalError(message string, underlyingError error) *AppError {
	return NewAppError(InternalError, message, underlyingError)
}

// ErrorResponse is the wire shape of an error. For validation errors all
// four fields are populated; for everything else only Message is set, so
// the serialized form collapses to {"message": "..."}.
type ErrorResponse struct {
	Code     int    `json:"code,omitempty" example:"422"`
	Reason   string `json:"reason,omitempty" example:"ValidationError"`
	Message  string `json:"message" example:"A description of the error"`
	Location string `json:"location,omitempty" example:"username"`
}

// ToResponse converts an AppError to its client-facing envelope. Only the
// user-facing Message is included, never the wrapped Err.
func (e *AppError) ToResponse() ErrorResponse {
	if e.Type == ValidationError {
		return ErrorResponse{
			Code:     http.StatusUnprocessableEntity,
			Reason:   "ValidationError",
			Message:  e.Message,
			Location: e.Location,
		}
	}
	return ErrorResponse{Message: e.Message}
}

// FromError attempts to convert a generic error to an *AppError.
// It returns the *AppError and true if successful, otherwise nil and false.
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsNotFound checks if an error is a NotFound error
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == NotFoundError
}

// IsAuthError checks if an error is an AuthError (authentication problem)
func IsAuthError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == AuthError
}

// IsUnauthorizedError checks if an error is an UnauthorizedError (authorization problem)
func IsUnauthorizedError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == UnauthorizedError
}

// IsValidationError checks if an error is a ValidationError
func IsValidationError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ValidationError
}
