// Package apperror defines the application's error taxonomy. Every
// domain-classified failure is an *AppError carrying a type, a user-facing
// message, an optional structured details payload, and an optional wrapped
// cause. Handlers map the type to an HTTP status; unclassified errors are
// rendered as a generic 500 with full detail logged server-side only.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies an application error.
type ErrorType int

const (
	// UnknownError is for unspecified errors.
	UnknownError ErrorType = iota
	// DatabaseError represents an error originating from the database.
	DatabaseError
	// ConfigError represents an error related to application configuration.
	ConfigError
	// AuthError represents an authentication failure (missing, malformed,
	// signature-invalid, or expired credential).
	AuthError
	// InsufficientTokensError represents a balance below the required cost.
	InsufficientTokensError
	// NotFoundError represents a resource not found error.
	NotFoundError
	// ValidationError represents an input validation error.
	ValidationError
	// BadRequestError represents a generic bad request.
	BadRequestError
	// InternalError represents a generic internal server error.
	InternalError
	// ExternalServiceError represents a failure of the text-generation
	// backend or another external collaborator.
	ExternalServiceError
	// MigrationError represents an error during database migrations.
	MigrationError
	// ConflictError represents a conflict, e.g. resource already exists.
	ConflictError
)

// AppError is the application's error type. Details is included verbatim in
// API responses for classified errors, so it must never carry internals; Err
// is for server-side logging only.
type AppError struct {
	Type    ErrorType
	Message string
	Details map[string]interface{}
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is / errors.As chains.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code appropriate for the error type.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case AuthError:
		return http.StatusUnauthorized
	case InsufficientTokensError:
		return http.StatusForbidden
	case NotFoundError:
		return http.StatusNotFound
	case ValidationError, BadRequestError:
		return http.StatusBadRequest
	case ExternalServiceError:
		return http.StatusBadGateway
	case ConflictError:
		return http.StatusConflict
	case DatabaseError, ConfigError, InternalError, MigrationError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates a new AppError with an arbitrary type.
func NewAppError(errType ErrorType, message string, underlying error) *AppError {
	return &AppError{Type: errType, Message: message, Err: underlying}
}

// NewDatabaseError creates a new DatabaseError.
func NewDatabaseError(message string, underlying error) *AppError {
	return NewAppError(DatabaseError, message, underlying)
}

// NewConfigError creates a new ConfigError.
func NewConfigError(message string, underlying error) *AppError {
	return NewAppError(ConfigError, message, underlying)
}

// NewAuthError creates a new AuthError.
func NewAuthError(message string, underlying error) *AppError {
	return NewAppError(AuthError, message, underlying)
}

// NewInsufficientTokensError creates the 403 balance failure. The required
// and available counts are not sensitive and are surfaced to the client.
func NewInsufficientTokensError(required, available int64) *AppError {
	return &AppError{
		Type:    InsufficientTokensError,
		Message: "insufficient tokens",
		Details: map[string]interface{}{
			"required":  required,
			"available": available,
		},
	}
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(message string, underlying error) *AppError {
	return NewAppError(NotFoundError, message, underlying)
}

// NewValidationError creates a ValidationError carrying per-field messages.
func NewValidationError(message string, fields map[string]interface{}) *AppError {
	return &AppError{Type: ValidationError, Message: message, Details: fields}
}

// NewBadRequestError creates a new BadRequestError.
func NewBadRequestError(message string, underlying error) *AppError {
	return NewAppError(BadRequestError, message, underlying)
}

// NewInternalError creates a new InternalError.
func NewInternalError(message string, underlying error) *AppError {
	return NewAppError(InternalError, message, underlying)
}

// NewExternalServiceError creates a new ExternalServiceError.
func NewExternalServiceError(message string, underlying error) *AppError {
	return NewAppError(ExternalServiceError, message, underlying)
}

// NewMigrationError creates a new MigrationError.
func NewMigrationError(message string, underlying error) *AppError {
	return NewAppError(MigrationError, message, underlying)
}

// NewConflictError creates a new ConflictError.
func NewConflictError(message string, underlying error) *AppError {
	return NewAppError(ConflictError, message, underlying)
}

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ToResponse converts an AppError to its client-facing representation. The
// wrapped cause is deliberately excluded.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message, Details: e.Details}
}

// FromError attempts to convert a generic error to an *AppError.
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

// IsNotFound reports whether err is classified as NotFoundError.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == NotFoundError
}

// IsAuthError reports whether err is classified as AuthError.
func IsAuthError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == AuthError
}

// IsInsufficientTokens reports whether err is the balance failure.
func IsInsufficientTokens(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == InsufficientTokensError
}

// IsValidationError reports whether err is classified as ValidationError.
func IsValidationError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ValidationError
}

// IsExternalServiceError reports whether err is classified as ExternalServiceError.
func IsExternalServiceError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ExternalServiceError
}

// IsConflictError reports whether err is classified as ConflictError.
func IsConflictError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ConflictError
}
