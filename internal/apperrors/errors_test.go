package apperrors_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		client bool
	}{
		{"validation", apperrors.NewValidationError("amount must be positive"), http.StatusBadRequest, true},
		{"not found", apperrors.NewNotFoundError("entry 1"), http.StatusNotFound, true},
		{"duplicate name", fmt.Errorf("%w: Cash", apperrors.ErrDuplicateName), http.StatusConflict, true},
		{"idempotency conflict", apperrors.ErrIdempotencyConflict, http.StatusConflict, true},
		{"version conflict", fmt.Errorf("wrapped: %w", apperrors.ErrVersionConflict), http.StatusConflict, true},
		{"inactive account", apperrors.ErrInactiveAccount, http.StatusUnprocessableEntity, true},
		{"conversion unavailable", apperrors.ErrConversionUnavailable, http.StatusServiceUnavailable, false},
		{"app error", apperrors.NewAppError(http.StatusBadGateway, "upstream", errors.New("boom")), http.StatusBadGateway, false},
		{"unknown", context.DeadlineExceeded, http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, apperrors.HTTPStatus(tt.err))
			assert.Equal(t, tt.client, apperrors.IsClientError(tt.err))
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := apperrors.NewAppError(500, "failed to begin transaction", inner)

	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "failed to begin transaction: connection refused", err.Error())
}
