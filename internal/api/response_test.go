package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/mealwise/backend/internal/service"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrMealPlanNotFound, http.StatusNotFound},
		{fmt.Errorf("lookup: %w", service.ErrRecipeNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: date must be YYYY-MM-DD", service.ErrValidation), http.StatusBadRequest},
		{service.ErrNoItems, http.StatusBadRequest},
		{service.ErrInvalidDateRange, http.StatusBadRequest},
		{service.ErrTokenExpired, http.StatusUnauthorized},
		{service.ErrExportDisabled, http.StatusServiceUnavailable},
		{fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
