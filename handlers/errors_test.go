package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/pocketbase/pocketbase/tools/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-booking/internal/status"
)

func TestToApiError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", fmt.Errorf("event ev1: %w", status.ErrNotFound), http.StatusNotFound},
		{"conflict", fmt.Errorf("ticket already used: %w", status.ErrConflict), http.StatusConflict},
		{"validation", fmt.Errorf("quantity must be positive: %w", status.ErrValidation), http.StatusBadRequest},
		{"external", fmt.Errorf("payout gateway: %w", status.ErrExternal), http.StatusBadGateway},
		{"unknown", errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var apiErr *router.ApiError
			require.True(t, errors.As(toApiError(tt.err), &apiErr))
			assert.Equal(t, tt.wantStatus, apiErr.Status)
		})
	}
}

func TestToApiError_HidesInternalDetail(t *testing.T) {
	var apiErr *router.ApiError
	require.True(t, errors.As(toApiError(errors.New("sqlite: database locked")), &apiErr))

	assert.NotContains(t, apiErr.Message, "sqlite")
}
