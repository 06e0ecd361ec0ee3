package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateSecret    = errors.New("generated secret already exists")
)

// Machine-readable error tags returned in the "error" field of responses
const (
	CodeMissingKey              = "missing_key"
	CodeInvalidKey              = "invalid_key"
	CodeOrphanedKey             = "orphaned_key"
	CodeInsufficientPermissions = "insufficient_permissions"
	CodeDuplicateSecret         = "duplicate_secret"
	CodeMalformedIdentifier     = "malformed_identifier"
	CodeNotFound                = "not_found"
	CodeForbidden               = "forbidden"
	CodeUnauthorized            = "unauthorized"
	CodeBadRequest              = "bad_request"
	CodeInternalError           = "internal_error"
)

// AppError represents an application error with HTTP status and a
// machine-readable tag. Required/Current are set only for permission
// denials so callers can see both capability sets.
type AppError struct {
	Status   int      `json:"-"`
	Code     string   `json:"error"`
	Message  string   `json:"message"`
	Required []string `json:"required,omitempty"`
	Current  []string `json:"current,omitempty"`
	Err      error    `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// MissingKey is returned when the key header is absent
func MissingKey() *AppError {
	return NewAppError(http.StatusUnauthorized, CodeMissingKey, "API key is required", ErrUnauthorized)
}

// InvalidKey is returned when the key is unknown or inactive
func InvalidKey() *AppError {
	return NewAppError(http.StatusUnauthorized, CodeInvalidKey, "Invalid or inactive API key", ErrUnauthorized)
}

// OrphanedKey is returned when the key's project no longer exists
func OrphanedKey() *AppError {
	return NewAppError(http.StatusUnauthorized, CodeOrphanedKey, "API key project no longer exists", ErrUnauthorized)
}

// InsufficientPermissions echoes both capability sets for diagnosability
func InsufficientPermissions(required, current []string) *AppError {
	e := NewAppError(http.StatusForbidden, CodeInsufficientPermissions, "API key lacks required permissions", ErrForbidden)
	e.Required = required
	e.Current = current
	return e
}

// DuplicateSecret is returned when secret generation collides twice
func DuplicateSecret() *AppError {
	return NewAppError(http.StatusInternalServerError, CodeDuplicateSecret, "failed to generate a unique key", ErrDuplicateSecret)
}

// MalformedIdentifier distinguishes bad id shapes from missing resources
func MalformedIdentifier(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeMalformedIdentifier, message, ErrInvalidInput)
}

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeBadRequest, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

func InternalServerError(message string) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Code: CodeInternalError, Message: message}
}
