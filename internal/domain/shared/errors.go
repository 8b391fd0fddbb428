package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors.
//
// ErrNotFound covers both a missing id and an id owned by another tenant;
// callers cannot tell the two apart, so existence never leaks across tenants.
var (
	ErrNotFound           = NewDomainError("NOT_FOUND", "Resource not found")
	ErrReferenceNotFound  = NewDomainError("REFERENCE_NOT_FOUND", "Referenced resource not found")
	ErrValidationFailed   = NewDomainError("VALIDATION_FAILED", "Input validation failed")
	ErrInvariantViolation = NewDomainError("INVARIANT_VIOLATION", "Operation violates a domain invariant")
	ErrAlreadyExists      = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrTenantRequired     = NewDomainError("TENANT_REQUIRED", "Operation requires a bound tenant")
)
