package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/nasheedyasin/diffscope/internal/config"
	"github.com/nasheedyasin/diffscope/internal/observability"
	"github.com/nasheedyasin/diffscope/pkg/funcdiff"
	"github.com/nasheedyasin/diffscope/pkg/pipeline"
)

// Sentinel errors for extract command flag validation.
var (
	// ErrNoRepoSource is returned when neither --repo nor --path is given.
	ErrNoRepoSource = errors.New("a repository source is required (use --repo or --path)")
	// ErrConflictingRepoSources is returned when both --repo and --path are given.
	ErrConflictingRepoSources = errors.New("--repo and --path are mutually exclusive")
)

// extractOptions carries the resolved extract invocation parameters.
type extractOptions struct {
	commitRef string
	repoSlug  string
	repoPath  string
	host      string
	cacheDir  string
	scanDepth int
	jsonOut   bool
	showDiffs bool
}

// NewExtractCommand creates the extract subcommand.
func NewExtractCommand(configPath *string) *cobra.Command {
	var (
		opts    extractOptions
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "extract <commit-ref>",
		Short: "Extract per-function diffs from a commit",
		Long: `Extract per-function unified diffs from a commit.

The repository comes either from a hosting platform (--repo owner/name,
cloned into the cache) or from a local working copy (--path). Each changed
function yields one diff with the full function body as context.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configPath)
			if err != nil {
				return err
			}

			observability.SetupLogging(cfg.Log.Level, cfg.Log.Format)

			if noColor {
				color.NoColor = true //nolint:reassign // intentional override of library global
			}

			opts.commitRef = args[0]

			if opts.host == "" {
				opts.host = cfg.Repo.Host
			}

			if opts.cacheDir == "" {
				opts.cacheDir = cfg.Repo.CacheDir
			}

			if !cobraCmd.Flags().Changed("scan-depth") {
				opts.scanDepth = cfg.Extract.ScanDepth
			}

			return runExtract(cobraCmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.repoSlug, "repo", "", "owner/name slug of a hosted repository")
	cmd.Flags().StringVar(&opts.repoPath, "path", "", "path to a local git repository")
	cmd.Flags().StringVar(&opts.host, "host", "", "hosting platform for --repo (github or gitlab)")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "directory for cached repository clones")
	cmd.Flags().IntVar(&opts.scanDepth, "scan-depth", 0, "scan up to this many first-parent ancestors for interesting changes")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "emit records as JSON instead of a table")
	cmd.Flags().BoolVar(&opts.showDiffs, "diffs", false, "print the full colored diff of every record")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	return cmd
}

func runExtract(ctx context.Context, opts extractOptions) error {
	gen, err := openGenerator(opts)
	if err != nil {
		return err
	}
	defer gen.Close()

	records, err := gen.Extract(ctx, opts.commitRef, opts.scanDepth)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoFunctionDiffs) {
			fmt.Fprintln(os.Stdout, "No function diffs found")

			return nil
		}

		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(os.Stdout, "No function diffs found")

		return nil
	}

	if opts.jsonOut {
		return printJSON(records)
	}

	printSummary(gen, opts.commitRef, records)

	if opts.showDiffs {
		printDiffs(records)
	}

	return nil
}

func openGenerator(opts extractOptions) (*pipeline.Generator, error) {
	switch {
	case opts.repoSlug != "" && opts.repoPath != "":
		return nil, ErrConflictingRepoSources
	case opts.repoPath != "":
		return pipeline.Open(opts.repoPath)
	case opts.repoSlug != "":
		return pipeline.AcquireGenerator(opts.repoSlug, opts.host, opts.cacheDir)
	default:
		return nil, ErrNoRepoSource
	}
}

func printJSON(records []funcdiff.Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}

	fmt.Fprintln(os.Stdout, string(data))

	return nil
}

// printSummary prints the commit headline, whole-commit stats, and a
// per-function table.
func printSummary(gen *pipeline.Generator, commitRef string, records []funcdiff.Record) {
	if summary, author, err := gen.CommitHeadline(commitRef); err == nil {
		fmt.Fprintf(os.Stdout, "%s  (%s <%s>)\n", summary, author.Name, author.Email)
	}

	stats, err := gen.CommitStats(commitRef)
	if err == nil {
		fmt.Fprintf(os.Stdout, "%s: %s files changed, %s insertions(+), %s deletions(-)\n\n",
			commitRef,
			humanize.Comma(int64(stats.FilesChanged)),
			humanize.Comma(int64(stats.Insertions)),
			humanize.Comma(int64(stats.Deletions)),
		)
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)

	tbl.AppendHeader(table.Row{"Function", "File", "Language", "+", "-"})

	for _, rec := range records {
		tbl.AppendRow(table.Row{
			rec.FuncName,
			rec.FilePath,
			rec.FileLanguage,
			humanize.Comma(int64(rec.LinesAdded)),
			humanize.Comma(int64(rec.LinesDeleted)),
		})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d functions", len(records))})

	fmt.Fprintln(os.Stdout, tbl.Render())
}

// printDiffs prints every record's diff with per-line coloring.
func printDiffs(records []funcdiff.Record) {
	header := color.New(color.Bold)

	for _, rec := range records {
		fmt.Fprintln(os.Stdout)
		header.Fprintf(os.Stdout, "%s (%s)\n", rec.FuncName, rec.FilePath)

		printColoredDiff(rec.Diff)
	}
}

func printColoredDiff(diff string) {
	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)
	hunk := color.New(color.FgCyan)

	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			fmt.Fprintln(os.Stdout, line)
		case strings.HasPrefix(line, "@@"):
			hunk.Fprintln(os.Stdout, line)
		case strings.HasPrefix(line, "+"):
			added.Fprintln(os.Stdout, line)
		case strings.HasPrefix(line, "-"):
			removed.Fprintln(os.Stdout, line)
		default:
			fmt.Fprintln(os.Stdout, line)
		}
	}
}
