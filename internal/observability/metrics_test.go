package observability_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nasheedyasin/diffscope/internal/observability"
)

func TestREDMetricsEndToEnd(t *testing.T) {
	t.Parallel()

	meter, handler, err := observability.PrometheusMeter()
	require.NoError(t, err)

	red, err := observability.NewREDMetrics(meter)
	require.NoError(t, err)

	ctx := context.Background()

	red.RecordRequest(ctx, "mcp.diffscope_extract", "ok", 150*time.Millisecond)
	red.RecordRequest(ctx, "mcp.diffscope_extract", "error", time.Second)

	dec := red.TrackInflight(ctx, "mcp.diffscope_extract")
	dec()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	assert.Contains(t, body, "diffscope_requests_total")
	assert.Contains(t, body, "diffscope_errors_total")
	assert.Contains(t, body, `op="mcp.diffscope_extract"`)
}

func TestPrometheusMeterIndependentRegistries(t *testing.T) {
	t.Parallel()

	meterA, _, err := observability.PrometheusMeter()
	require.NoError(t, err)

	meterB, handlerB, err := observability.PrometheusMeter()
	require.NoError(t, err)

	redA, err := observability.NewREDMetrics(meterA)
	require.NoError(t, err)

	_, err = observability.NewREDMetrics(meterB)
	require.NoError(t, err)

	redA.RecordRequest(context.Background(), "cli.extract", "ok", time.Millisecond)

	// Recordings on A's meter do not show up in B's registry.
	rec := httptest.NewRecorder()
	handlerB.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.NotContains(t, rec.Body.String(), `op="cli.extract"`)
}
