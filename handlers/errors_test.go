package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"insightiq/backend"
	"insightiq/service"
	"insightiq/workspace"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", workspace.ErrEmptyQuery, http.StatusBadRequest},
		{"superseded", workspace.ErrSuperseded, http.StatusConflict},
		{"query failed", fmt.Errorf("%w: no matching table", workspace.ErrQueryFailed), http.StatusUnprocessableEntity},
		{"upload failed", workspace.ErrUploadFailed, http.StatusUnprocessableEntity},
		{"upload unavailable", workspace.ErrUploadUnavailable, http.StatusServiceUnavailable},
		{"demo backend", errBackendUnavailable, http.StatusServiceUnavailable},
		{"unknown dataset", workspace.ErrDatasetNotFound, http.StatusNotFound},
		{"bad export name", service.ErrInvalidFilename, http.StatusBadRequest},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"backend status passthrough", &backend.APIError{StatusCode: http.StatusTeapot, Detail: "nope"}, http.StatusTeapot},
		{"malformed backend body", fmt.Errorf("query: %w", backend.ErrMalformedResponse), http.StatusBadGateway},
		{"transport failure", errors.New("connection refused"), http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusFor(tc.err))
		})
	}
}
