package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nasheedyasin/diffscope/internal/config"
	"github.com/nasheedyasin/diffscope/internal/mcp"
	"github.com/nasheedyasin/diffscope/internal/observability"
)

// NewMCPCommand creates the MCP server command.
func NewMCPCommand(configPath *string) *cobra.Command {
	var diagAddr string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The MCP server exposes function-level diff extraction as tools that AI
agents can discover and invoke:
  - diffscope_extract: per-function diffs of a commit
  - repo_clone: clone a repository into the local cache
  - commit_exists: check whether a commit exists in a local repository
  - report_format: validate vulnerability report entries`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(*configPath)
			if err != nil {
				return err
			}

			// Stdio transport owns stdout; logs always go to stderr as JSON.
			logger := observability.SetupLogging(cfg.Log.Level, "json")

			meter, metricsHandler, err := observability.PrometheusMeter()
			if err != nil {
				return err
			}

			red, err := observability.NewREDMetrics(meter)
			if err != nil {
				return err
			}

			if diagAddr == "" {
				diagAddr = cfg.Diag.Addr
			}

			if diagAddr != "" {
				diag, diagErr := observability.NewDiagnosticsServer(diagAddr, metricsHandler)
				if diagErr != nil {
					return diagErr
				}

				defer func() {
					closeErr := diag.Close()
					if closeErr != nil {
						slog.Warn("diagnostics shutdown failed", "error", closeErr)
					}
				}()

				logger.Info("diagnostics endpoint listening", "addr", diag.Addr())
			}

			srv := mcp.NewServer(mcp.ServerDeps{
				Logger:    logger,
				Metrics:   red,
				CacheDir:  cfg.Repo.CacheDir,
				Host:      cfg.Repo.Host,
				ScanDepth: cfg.Extract.ScanDepth,
			})

			return srv.Run(cobraCmd.Context())
		},
	}

	cmd.Flags().StringVar(&diagAddr, "diag-addr", "", "address for the diagnostics HTTP endpoint (empty disables)")

	return cmd
}
