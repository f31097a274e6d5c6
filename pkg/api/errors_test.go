package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"order-forecast/pkg/calculator"
	"order-forecast/pkg/forecast"
	"order-forecast/pkg/models"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"app error passes through", ErrRateLimitExceeded(), http.StatusTooManyRequests, CodeRateLimitExceeded},
		{"no baseline", fmt.Errorf("growth: %w", calculator.ErrNoBaseline), http.StatusUnprocessableEntity, CodeNoBaseline},
		{"unknown mode", models.ErrUnknownMode, http.StatusBadRequest, CodeBadRequest},
		{"deadline", fmt.Errorf("fetch: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, CodeTimeout},
		{"degenerate fit", fmt.Errorf("fit: %w", forecast.ErrDegenerateSeries), http.StatusInternalServerError, CodeInternalError},
		{"anything else", errors.New("boom"), http.StatusInternalServerError, CodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			assert.Equal(t, tt.status, got.HTTPStatus)
			assert.Equal(t, tt.code, got.Code)
		})
	}
	assert.Nil(t, MapError(nil))
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("cause")
	err := ErrInternal("").Wrap(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "INTERNAL_ERROR: an internal error occurred: cause", err.Error())
}
