package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Liveness(t *testing.T) {
	e := newTestEcho()
	h := NewHealthHandler(nil)

	rec := httptest.NewRecorder()
	require.NoError(t, h.Liveness(e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := PingerFunc(func(ctx context.Context) error { return nil })
	down := PingerFunc(func(ctx context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name     string
		deps     map[string]Pinger
		wantCode int
		wantBody string
	}{
		{
			name:     "all healthy",
			deps:     map[string]Pinger{"store": ok, "redis": ok},
			wantCode: http.StatusOK,
			wantBody: `{"status":"ok","dependencies":{"store":{"status":"ok"},"redis":{"status":"ok"}}}`,
		},
		{
			name:     "redis down",
			deps:     map[string]Pinger{"store": ok, "redis": down},
			wantCode: http.StatusServiceUnavailable,
			wantBody: `{"status":"degraded","dependencies":{"store":{"status":"ok"},"redis":{"status":"unhealthy","error":"connection refused"}}}`,
		},
		{
			name:     "nil dependency skipped",
			deps:     map[string]Pinger{"store": ok, "redis": nil},
			wantCode: http.StatusOK,
			wantBody: `{"status":"ok","dependencies":{"store":{"status":"ok"}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			h := NewHealthHandler(tt.deps)

			rec := httptest.NewRecorder()
			require.NoError(t, h.Readiness(e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
