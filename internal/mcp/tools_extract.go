package mcp

import (
	"context"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nasheedyasin/diffscope/pkg/gitlib"
	"github.com/nasheedyasin/diffscope/pkg/pipeline"
)

// noFunctionDiffsMessage is the verdict returned when extraction completes
// without producing any records.
const noFunctionDiffsMessage = "No function diffs found"

// ExtractOutput is the structured payload of the diffscope_extract tool.
type ExtractOutput struct {
	CommitRef string `json:"commit_ref"`
	RepoPath  string `json:"repo_path"`
	Records   any    `json:"records"`
}

// handleExtract processes diffscope_extract tool calls.
func (s *Server) handleExtract(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input ExtractInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	host := input.Host
	if host == "" {
		host = s.host
	}

	err := validateExtractInput(input, host)
	if err != nil {
		return errorResult(err)
	}

	depth := input.ScanDepth
	if depth == 0 {
		depth = s.scanDepth
	}

	gen, err := pipeline.AcquireGenerator(input.RepoSlug, host, s.cacheDir)
	if err != nil {
		return errorResult(fmt.Errorf("acquire repository: %w", err))
	}
	defer gen.Close()

	records, err := gen.Extract(ctx, input.CommitRef, depth)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoFunctionDiffs) {
			return textResult(noFunctionDiffsMessage)
		}

		return errorResult(fmt.Errorf("extract function diffs: %w", err))
	}

	if len(records) == 0 {
		return textResult(noFunctionDiffsMessage)
	}

	return jsonResult(ExtractOutput{
		CommitRef: input.CommitRef,
		RepoPath:  gen.RepoPath(),
		Records:   records,
	})
}

// validateExtractInput validates the extract tool input parameters.
func validateExtractInput(input ExtractInput, host string) error {
	if input.RepoSlug == "" {
		return ErrEmptyRepoSlug
	}

	if input.CommitRef == "" {
		return ErrEmptyCommitRef
	}

	if input.ScanDepth < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeScanDepth, input.ScanDepth)
	}

	if _, err := gitlib.CacheKey(input.RepoSlug, host); err != nil {
		return err
	}

	return nil
}
