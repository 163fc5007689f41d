package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromStatus(t *testing.T) {
	cause := errors.New("upstream failed")

	tests := []struct {
		name     string
		status   int
		category Category
		message  string
	}{
		{"Should map 502 to service unavailable", http.StatusBadGateway, CategoryServiceUnavailable, MessageServiceUnavailable},
		{"Should map 503 to maintenance", http.StatusServiceUnavailable, CategoryMaintenance, MessageMaintenance},
		{"Should map 400 to validation", http.StatusBadRequest, CategoryValidation, MessageValidation},
		{"Should map 422 to validation", http.StatusUnprocessableEntity, CategoryValidation, MessageValidation},
		{"Should map 500 to unexpected", http.StatusInternalServerError, CategoryUnexpected, MessageUnexpected},
		{"Should map unknown statuses to unexpected", http.StatusTeapot, CategoryUnexpected, MessageUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := FromStatus(tt.status, cause)
			assert.Equal(t, tt.status, appErr.Code)
			assert.Equal(t, tt.category, appErr.Category)
			assert.Equal(t, tt.message, appErr.Message)
			assert.Equal(t, cause, appErr.Unwrap())
		})
	}
}

func TestConstructors(t *testing.T) {
	t.Run("Should build a not found error", func(t *testing.T) {
		appErr := NotFound("Consultant introuvable")
		assert.Equal(t, http.StatusNotFound, appErr.Code)
		assert.Equal(t, CategoryNotFound, appErr.Category)
		assert.Equal(t, "Consultant introuvable", appErr.Error())
	})

	t.Run("Should build a bad request error with the validation category", func(t *testing.T) {
		appErr := BadRequest("Ce champ est requis")
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		assert.Equal(t, CategoryValidation, appErr.Category)
	})

	t.Run("Should wrap the cause in an internal error", func(t *testing.T) {
		cause := errors.New("db down")
		appErr := Internal(cause)
		assert.Equal(t, http.StatusInternalServerError, appErr.Code)
		assert.Equal(t, MessageUnexpected, appErr.Message)
		assert.True(t, errors.Is(appErr, cause))
	})

	t.Run("Should build a network error with no status", func(t *testing.T) {
		appErr := Network(errors.New("dial tcp: timeout"))
		assert.Equal(t, 0, appErr.Code)
		assert.Equal(t, CategoryNetwork, appErr.Category)
		assert.Equal(t, MessageNetwork, appErr.Message)
	})
}
