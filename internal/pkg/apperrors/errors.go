package apperrors

import "errors"

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrBlacklisted        = errors.New("account is blacklisted")
	ErrPendingApproval    = errors.New("account is awaiting admin approval")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrSessionNotFound    = errors.New("session not found")
)

// Authorization errors
var (
	ErrAccessDenied = errors.New("access denied")
	ErrUnknownRole  = errors.New("unknown role")
)

// Registration errors
var (
	ErrDuplicateEmail = errors.New("email already exists")
)

// User errors
var (
	ErrUserNotFound = errors.New("user not found")
)

// Drive and application errors
var (
	ErrDriveNotFound        = errors.New("drive not found")
	ErrDeadlinePassed       = errors.New("drive deadline has passed")
	ErrDuplicateApplication = errors.New("already applied to this drive")
)

// Validation errors
var (
	ErrValidationFailed = errors.New("validation failed")
)

// CustomError wraps a sentinel with a human-readable message.
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation failure with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewForbiddenError creates a permission failure with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrAccessDenied,
		Message: message,
	}
}
