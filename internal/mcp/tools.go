package mcp

import (
	"encoding/json"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool name constants.
const (
	ToolNameExtract      = "diffscope_extract"
	ToolNameClone        = "repo_clone"
	ToolNameCommitExists = "commit_exists"
	ToolNameReportFormat = "report_format"
)

// Sentinel errors for tool input validation.
var (
	// ErrEmptyRepoSlug indicates the repo_slug parameter is empty.
	ErrEmptyRepoSlug = errors.New("repo_slug parameter is required and must not be empty")
	// ErrEmptyCommitRef indicates the commit_ref parameter is empty.
	ErrEmptyCommitRef = errors.New("commit_ref parameter is required and must not be empty")
	// ErrEmptyRepoPath indicates the repo_path parameter is empty.
	ErrEmptyRepoPath = errors.New("repo_path parameter is required and must not be empty")
	// ErrRepoPathNotAbsolute indicates the repo_path is not an absolute path.
	ErrRepoPathNotAbsolute = errors.New("repo_path must be an absolute path")
	// ErrNegativeScanDepth indicates the scan_depth parameter is negative.
	ErrNegativeScanDepth = errors.New("scan_depth must not be negative")
)

// Input types (auto-generate JSON schemas via struct tags).

// ExtractInput is the input schema for the diffscope_extract tool.
type ExtractInput struct {
	CommitRef string `json:"commit_ref"           jsonschema:"commit sha or revision to extract function diffs from"`
	Host      string `json:"host,omitempty"       jsonschema:"hosting platform of the repository (github or gitlab)"`
	RepoSlug  string `json:"repo_slug"            jsonschema:"owner/name slug of the repository"`
	ScanDepth int    `json:"scan_depth,omitempty" jsonschema:"scan up to this many first-parent ancestors for a commit touching interesting code"`
}

// CloneInput is the input schema for the repo_clone tool.
type CloneInput struct {
	Host     string `json:"host,omitempty" jsonschema:"hosting platform of the repository (github or gitlab)"`
	RepoSlug string `json:"repo_slug"      jsonschema:"owner/name slug of the repository"`
}

// CommitExistsInput is the input schema for the commit_exists tool.
type CommitExistsInput struct {
	CommitSha string `json:"commit_sha" jsonschema:"commit sha to look up"`
	RepoPath  string `json:"repo_path"  jsonschema:"absolute path to a local git repository"`
}

// ReportFormatInput is the input schema for the report_format tool.
type ReportFormatInput struct {
	Vulnerabilities []Vulnerability `json:"vulnerabilities" jsonschema:"vulnerability report entries to validate"`
}

// Vulnerability is one entry of a vulnerability report.
type Vulnerability struct {
	AffectedVersions []string `json:"affected_versions" jsonschema:"versions of the library affected by the vulnerability"`
	CommitSha        string   `json:"commit_sha"        jsonschema:"sha of the commit that fixed the vulnerability"`
	DiffURL          string   `json:"diff_url"          jsonschema:"url of the diff that fixed the vulnerability"`
	FilePath         string   `json:"file_path"         jsonschema:"repository-relative path of the file containing the vulnerable function"`
	FunctionName     string   `json:"function_name"     jsonschema:"fully-qualified name of the vulnerable function"`
}

// Output type (used as structured output for generic AddTool).

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// Result helpers.

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// textResult builds a successful CallToolResult with plain text content.
func textResult(text string) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: text},
		},
	}, ToolOutput{Data: text}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}
