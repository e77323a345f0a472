// Package main provides the entry point for the diffscope CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nasheedyasin/diffscope/cmd/diffscope/commands"
	"github.com/nasheedyasin/diffscope/pkg/version"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "diffscope",
		Short: "Diffscope - function-level git diff extraction",
		Long: `Diffscope extracts per-function unified diffs from git commits.

Given a commit it finds the functions the commit touched and synthesizes
one full-function-context diff per function, across Python, JavaScript,
TypeScript, Java, C, C++, C#, Rust, and Go sources.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: .diffscope.yaml in CWD or $HOME)")

	rootCmd.AddCommand(commands.NewExtractCommand(&configPath))
	rootCmd.AddCommand(commands.NewMCPCommand(&configPath))
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "diffscope %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
