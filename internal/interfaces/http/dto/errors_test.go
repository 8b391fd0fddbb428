package dto

import (
	"errors"
	"net/http"
	"testing"

	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"REFERENCE_NOT_FOUND", http.StatusBadRequest},
		{"VALIDATION_FAILED", http.StatusBadRequest},
		{"INVARIANT_VIOLATION", http.StatusBadRequest},
		{"ALREADY_EXISTS", http.StatusConflict},
		{"TENANT_REQUIRED", http.StatusUnauthorized},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestFromError(t *testing.T) {
	t.Run("domain errors keep their code and message", func(t *testing.T) {
		code, message, status := FromError(shared.ErrNotFound)

		assert.Equal(t, "NOT_FOUND", code)
		assert.Equal(t, "Resource not found", message)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("wrapped domain errors unwrap", func(t *testing.T) {
		wrapped := errors.Join(errors.New("save contact"), shared.ErrReferenceNotFound)

		code, _, status := FromError(wrapped)

		assert.Equal(t, "REFERENCE_NOT_FOUND", code)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("infrastructure errors never leak their message", func(t *testing.T) {
		code, message, status := FromError(errors.New("dial tcp 10.0.0.5:5432: connection refused"))

		assert.Equal(t, ErrCodeUnknown, code)
		assert.Equal(t, "An internal error occurred", message)
		assert.Equal(t, http.StatusInternalServerError, status)
	})
}
