package mcp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Verdict strings echoed back to the caller.
const (
	reportVerdictOK      = "Input formatting is correct. Please proceed with the analysis."
	reportVerdictNoInput = "Input formatting is incorrect. Please provide a list of vulnerabilities."
)

// Sentinel errors for vulnerability report validation.
var (
	// ErrEmptyFilePath indicates a report entry has no file path.
	ErrEmptyFilePath = errors.New("file path is empty")
	// ErrHomeAnchoredPath indicates a file path leaks a user-specific location.
	ErrHomeAnchoredPath = errors.New("file path contains a user-specific path")
	// ErrEmptyFunctionName indicates a report entry has no function name.
	ErrEmptyFunctionName = errors.New("function name is empty")
	// ErrEmptyCommitSha indicates a report entry has no commit sha.
	ErrEmptyCommitSha = errors.New("commit sha is empty")
	// ErrInvalidCommitSha indicates a commit sha is not 7-40 hex characters.
	ErrInvalidCommitSha = errors.New("commit sha must be a hexadecimal string between 7 and 40 characters")
	// ErrEmptyDiffURL indicates a report entry has no diff URL.
	ErrEmptyDiffURL = errors.New("diff url is empty")
	// ErrEmptyAffectedVersions indicates a report entry lists no affected versions.
	ErrEmptyAffectedVersions = errors.New("affected versions list is empty")
)

// commitShaPattern matches abbreviated through full-length hex object names.
var commitShaPattern = regexp.MustCompile(`^[a-fA-F0-9]{7,40}$`)

// handleReportFormat processes report_format tool calls.
func (s *Server) handleReportFormat(
	_ context.Context,
	_ *mcpsdk.CallToolRequest,
	input ReportFormatInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if len(input.Vulnerabilities) == 0 {
		return textResult(reportVerdictNoInput)
	}

	for _, vuln := range input.Vulnerabilities {
		if err := validateVulnerability(vuln); err != nil {
			return errorResult(err)
		}
	}

	if err := validateReportSchema(input.Vulnerabilities); err != nil {
		return errorResult(err)
	}

	return textResult(reportVerdictOK)
}

// validateVulnerability checks one report entry for field presence and
// format problems.
func validateVulnerability(vuln Vulnerability) error {
	if vuln.FilePath == "" {
		return ErrEmptyFilePath
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		if strings.HasPrefix(vuln.FilePath, home) {
			return fmt.Errorf("%w: %s", ErrHomeAnchoredPath, vuln.FilePath)
		}
	}

	if vuln.FunctionName == "" {
		return ErrEmptyFunctionName
	}

	if vuln.CommitSha == "" {
		return ErrEmptyCommitSha
	}

	if !commitShaPattern.MatchString(vuln.CommitSha) {
		return fmt.Errorf("%w: %q", ErrInvalidCommitSha, vuln.CommitSha)
	}

	if vuln.DiffURL == "" {
		return ErrEmptyDiffURL
	}

	if len(vuln.AffectedVersions) == 0 {
		return ErrEmptyAffectedVersions
	}

	return nil
}
