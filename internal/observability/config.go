// Package observability provides structured logging, RED metrics with a
// Prometheus scrape endpoint, and a diagnostics HTTP server for the
// diffscope application modes (CLI, MCP).
package observability

import (
	"log/slog"
	"os"
)

// serviceName is the OTel meter and metric namespace.
const serviceName = "diffscope"

// SetupLogging configures the default slog logger with the given minimum
// level ("debug", "info", "warn", "error") and format ("text" or "json").
// The MCP stdio transport owns stdout, so logs always go to stderr.
func SetupLogging(level, format string) *slog.Logger {
	var lvl slog.Level

	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}
