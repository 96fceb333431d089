package shared

import (
	"errors"
	"fmt"
)

// Error codes shared by every domain. They are stable identifiers; the HTTP
// layer maps them onto status codes.
const (
	CodeNotFound           = "NOT_FOUND"
	CodeForbidden          = "FORBIDDEN"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeInvalidPeriod      = "INVALID_PERIOD"
	CodeInvariantViolation = "INVARIANT_VIOLATION"
	CodeConflict           = "CONFLICT"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code, so that
// errors.Is(err, ErrForbidden) holds for any forbidden error.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound           = NewDomainError(CodeNotFound, "Resource not found")
	ErrForbidden          = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
	ErrInvalidInput       = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrInvalidPeriod      = NewDomainError(CodeInvalidPeriod, "Period start must be before period end")
	ErrInvariantViolation = NewDomainError(CodeInvariantViolation, "Stored data violates an invariant")
	ErrConflict           = NewDomainError(CodeConflict, "Resource conflicts with an existing one")
)

// Forbidden returns a FORBIDDEN error with a formatted message
func Forbidden(format string, args ...any) *DomainError {
	return NewDomainError(CodeForbidden, fmt.Sprintf(format, args...))
}

// NotFound returns a NOT_FOUND error with a formatted message
func NotFound(format string, args ...any) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf(format, args...))
}

// InvalidInput returns an INVALID_INPUT error with a formatted message
func InvalidInput(format string, args ...any) *DomainError {
	return NewDomainError(CodeInvalidInput, fmt.Sprintf(format, args...))
}

// InvariantViolation returns an INVARIANT_VIOLATION error with a formatted message
func InvariantViolation(format string, args ...any) *DomainError {
	return NewDomainError(CodeInvariantViolation, fmt.Sprintf(format, args...))
}
