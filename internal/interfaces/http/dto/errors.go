package dto

import (
	"errors"
	"net/http"

	"github.com/craftbase/backend/internal/domain/shared"
)

// Boundary error codes for failures that never reach the domain
const (
	ErrCodeUnknown      = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
)

// domainCodeHTTPStatus maps domain error codes to HTTP status codes.
// A missing id and an id owned by another tenant both surface as 404;
// reference and rule failures are client errors, not conflicts.
var domainCodeHTTPStatus = map[string]int{
	"NOT_FOUND":           http.StatusNotFound,
	"REFERENCE_NOT_FOUND": http.StatusBadRequest,
	"VALIDATION_FAILED":   http.StatusBadRequest,
	"INVARIANT_VIOLATION": http.StatusBadRequest,
	"ALREADY_EXISTS":      http.StatusConflict,
	"TENANT_REQUIRED":     http.StatusUnauthorized,
}

// GetHTTPStatus returns the HTTP status for a domain error code,
// defaulting to 500 for anything unmapped.
func GetHTTPStatus(code string) int {
	if status, ok := domainCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// FromError converts any error to an error code and HTTP status. Domain
// errors keep their code; everything else is an internal error and its
// message is not exposed.
func FromError(err error) (code string, message string, status int) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code, domainErr.Message, GetHTTPStatus(domainErr.Code)
	}
	return ErrCodeUnknown, "An internal error occurred", http.StatusInternalServerError
}
