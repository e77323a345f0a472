package observability_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nasheedyasin/diffscope/internal/observability"
)

func TestSetupLogging(t *testing.T) {
	logger := observability.SetupLogging("info", "text")
	require.NotNil(t, logger)

	ctx := context.Background()
	assert.True(t, logger.Enabled(ctx, slog.LevelInfo))
	assert.False(t, logger.Enabled(ctx, slog.LevelDebug))

	logger = observability.SetupLogging("debug", "json")
	assert.True(t, logger.Enabled(ctx, slog.LevelDebug))
}
