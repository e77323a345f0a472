package mcp

import (
	"context"
	"os"
	"path/filepath"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nasheedyasin/diffscope/pkg/gitlib"
	"github.com/nasheedyasin/diffscope/pkg/pipeline"
)

// CloneOutput is the structured payload of the repo_clone tool.
type CloneOutput struct {
	RepoPath     string `json:"repo_path"`
	CloneSuccess bool   `json:"clone_success"`
}

// CommitExistsOutput is the structured payload of the commit_exists tool.
type CommitExistsOutput struct {
	CommitExists bool   `json:"commit_exists"`
	ErrorMsg     string `json:"error_msg"`
}

// handleClone processes repo_clone tool calls. Clone failures are reported
// in the payload, not as tool errors, so callers can fall back to manual
// cloning.
func (s *Server) handleClone(
	_ context.Context,
	_ *mcpsdk.CallToolRequest,
	input CloneInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if input.RepoSlug == "" {
		return errorResult(ErrEmptyRepoSlug)
	}

	host := input.Host
	if host == "" {
		host = s.host
	}

	gen, err := pipeline.AcquireGenerator(input.RepoSlug, host, s.cacheDir)
	if err != nil {
		return jsonResult(CloneOutput{RepoPath: "", CloneSuccess: false})
	}

	path := gen.RepoPath()
	gen.Close()

	// An ephemeral clone is gone after Close; only a cached working copy
	// outlives the call.
	if _, statErr := os.Stat(path); statErr != nil {
		return jsonResult(CloneOutput{RepoPath: "", CloneSuccess: false})
	}

	return jsonResult(CloneOutput{RepoPath: path, CloneSuccess: true})
}

// handleCommitExists processes commit_exists tool calls.
func (s *Server) handleCommitExists(
	_ context.Context,
	_ *mcpsdk.CallToolRequest,
	input CommitExistsInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if input.RepoPath == "" {
		return errorResult(ErrEmptyRepoPath)
	}

	if !filepath.IsAbs(input.RepoPath) {
		return errorResult(ErrRepoPathNotAbsolute)
	}

	if input.CommitSha == "" {
		return errorResult(ErrEmptyCommitRef)
	}

	repo, err := gitlib.OpenRepository(input.RepoPath)
	if err != nil {
		return jsonResult(CommitExistsOutput{CommitExists: false, ErrorMsg: err.Error()})
	}
	defer repo.Free()

	commit, err := repo.RevparseCommit(input.CommitSha)
	if err != nil {
		return jsonResult(CommitExistsOutput{CommitExists: false, ErrorMsg: err.Error()})
	}
	commit.Free()

	return jsonResult(CommitExistsOutput{CommitExists: true, ErrorMsg: ""})
}
