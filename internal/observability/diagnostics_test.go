package observability_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nasheedyasin/diffscope/internal/observability"
)

var errNotReady = errors.New("not ready")

func TestDiagnosticsServer(t *testing.T) {
	t.Parallel()

	_, metricsHandler, err := observability.PrometheusMeter()
	require.NoError(t, err)

	srv, err := observability.NewDiagnosticsServer("127.0.0.1:0", metricsHandler)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, srv.Close())
	})

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		resp, getErr := http.Get(fmt.Sprintf("http://%s%s", srv.Addr(), path))
		require.NoError(t, getErr, path)

		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		require.NoError(t, resp.Body.Close())
	}
}

func TestHealthHandler(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	observability.HealthHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReadyHandler(t *testing.T) {
	t.Parallel()

	passing := func(context.Context) error { return nil }
	failing := func(context.Context) error { return errNotReady }

	rec := httptest.NewRecorder()
	observability.ReadyHandler(passing).ServeHTTP(rec, httptest.NewRequest("GET", "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	observability.ReadyHandler(passing, failing).ServeHTTP(rec, httptest.NewRequest("GET", "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unavailable"}`, rec.Body.String())
}
