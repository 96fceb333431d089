package dto

import "net/http"

// Error codes returned in ErrorInfo.Code. Format: ERR_<DESCRIPTION>
const (
	ErrCodeInternal           = "ERR_INTERNAL"
	ErrCodeValidation         = "ERR_VALIDATION"
	ErrCodeBadRequest         = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput       = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON        = "ERR_INVALID_JSON"
	ErrCodeInvalidPeriod      = "ERR_INVALID_PERIOD"
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeTokenExpired       = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "ERR_TOKEN_INVALID"
	ErrCodeTokenRevoked       = "ERR_TOKEN_REVOKED"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeNotFound           = "ERR_NOT_FOUND"
	ErrCodeConflict           = "ERR_CONFLICT"
	ErrCodeInvariantViolation = "ERR_INVARIANT_VIOLATION"
	ErrCodeRequestTooLarge    = "ERR_REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeInvalidInput:       http.StatusBadRequest,
	ErrCodeInvalidJSON:        http.StatusBadRequest,
	ErrCodeInvalidPeriod:      http.StatusBadRequest,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeTokenRevoked:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeInvariantViolation: http.StatusInternalServerError,
	ErrCodeRequestTooLarge:    http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status for an error code, 500 when unknown
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodes maps shared.DomainError codes to API error codes
var domainErrorCodes = map[string]string{
	"NOT_FOUND":           ErrCodeNotFound,
	"FORBIDDEN":           ErrCodeForbidden,
	"INVALID_INPUT":       ErrCodeInvalidInput,
	"INVALID_PERIOD":      ErrCodeInvalidPeriod,
	"INVARIANT_VIOLATION": ErrCodeInvariantViolation,
	"CONFLICT":            ErrCodeConflict,
	"UNAUTHORIZED":        ErrCodeUnauthorized,
}

// NormalizeErrorCode converts a domain error code to its API code. Unknown
// codes become ERR_INTERNAL.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := domainErrorCodes[code]; ok {
		return apiCode
	}
	return ErrCodeInternal
}
