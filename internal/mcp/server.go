// Package mcp implements a Model Context Protocol server exposing
// function-level diff extraction as MCP tools over stdio transport.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nasheedyasin/diffscope/internal/observability"
)

const (
	// serverName is the MCP server implementation name.
	serverName = "diffscope"
	// serverVersion is the MCP server implementation version.
	serverVersion = "1.0.0"

	// toolCount is the expected number of registered tools.
	toolCount = 4
)

// ServerDeps holds injectable dependencies for the MCP server.
// Zero-value fields use production defaults.
type ServerDeps struct {
	// Logger is an optional structured logger. Nil uses slog default.
	Logger *slog.Logger

	// Metrics is an optional RED metrics recorder. Nil disables per-tool metrics.
	Metrics *observability.REDMetrics

	// CacheDir is the directory for cached repository clones. Empty uses
	// ephemeral clones that are removed after each tool call.
	CacheDir string

	// Host is the default hosting platform for repository slugs.
	Host string

	// ScanDepth is the default history scan depth for extraction.
	ScanDepth int
}

// Server wraps the MCP SDK server with diffscope tool registrations.
type Server struct {
	inner     *mcpsdk.Server
	mu        sync.RWMutex
	tools     []string
	metrics   *observability.REDMetrics
	cacheDir  string
	host      string
	scanDepth int
}

// NewServer creates a new MCP server with all diffscope tools registered.
func NewServer(deps ServerDeps) *Server {
	opts := &mcpsdk.ServerOptions{}
	if deps.Logger != nil {
		opts.Logger = deps.Logger
	}

	inner := mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    serverName,
			Version: serverVersion,
		},
		opts,
	)

	srv := &Server{
		inner:     inner,
		tools:     make([]string, 0, toolCount),
		metrics:   deps.Metrics,
		cacheDir:  deps.CacheDir,
		host:      deps.Host,
		scanDepth: deps.ScanDepth,
	}

	srv.registerTools()

	return srv
}

// ListToolNames returns the sorted names of all registered tools.
func (s *Server) ListToolNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.tools))
	copy(names, s.tools)
	sort.Strings(names)

	return names
}

// Run starts the MCP server on stdio transport. It blocks until the context
// is canceled or the connection closes.
func (s *Server) Run(ctx context.Context) error {
	err := s.inner.Run(ctx, &mcpsdk.StdioTransport{})
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

// RunWithTransport starts the MCP server on the given transport. It blocks
// until the context is canceled or the connection closes.
func (s *Server) RunWithTransport(ctx context.Context, transport mcpsdk.Transport) error {
	err := s.inner.Run(ctx, transport)
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

// registerTools adds all diffscope MCP tools to the server.
func (s *Server) registerTools() {
	s.registerExtractTool()
	s.registerCloneTool()
	s.registerCommitExistsTool()
	s.registerReportFormatTool()
}

func (s *Server) registerExtractTool() {
	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameExtract,
		Description: extractToolDescription,
	}, withMetrics(s.metrics, ToolNameExtract, s.handleExtract))

	s.trackTool(ToolNameExtract)
}

func (s *Server) registerCloneTool() {
	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameClone,
		Description: cloneToolDescription,
	}, withMetrics(s.metrics, ToolNameClone, s.handleClone))

	s.trackTool(ToolNameClone)
}

func (s *Server) registerCommitExistsTool() {
	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameCommitExists,
		Description: commitExistsToolDescription,
	}, withMetrics(s.metrics, ToolNameCommitExists, s.handleCommitExists))

	s.trackTool(ToolNameCommitExists)
}

func (s *Server) registerReportFormatTool() {
	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameReportFormat,
		Description: reportFormatToolDescription,
	}, withMetrics(s.metrics, ToolNameReportFormat, s.handleReportFormat))

	s.trackTool(ToolNameReportFormat)
}

// withMetrics wraps an MCP tool handler to record RED metrics per invocation.
func withMetrics[Input any](
	metrics *observability.REDMetrics,
	toolName string,
	handler func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error),
) func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if metrics == nil {
		return handler
	}

	return func(ctx context.Context, req *mcpsdk.CallToolRequest, input Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
		start := time.Now()

		decInflight := metrics.TrackInflight(ctx, "mcp."+toolName)
		defer decInflight()

		result, output, err := handler(ctx, req, input)

		status := "ok"
		if err != nil || (result != nil && result.IsError) {
			status = "error"
		}

		metrics.RecordRequest(ctx, "mcp."+toolName, status, time.Since(start))

		return result, output, err
	}
}

func (s *Server) trackTool(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tools = append(s.tools, name)
}

// Tool description constants.
const (
	extractToolDescription = "Extract per-function unified diffs from a commit. " +
		"Clones or reuses the repository, finds the functions the commit touched, " +
		"and returns one full-function-context diff record per changed function."

	cloneToolDescription = "Clone a GitHub or GitLab repository into the local cache " +
		"and return the absolute path to the working copy."

	commitExistsToolDescription = "Check whether a commit exists in a local repository. " +
		"Accepts an absolute repository path and a commit sha."

	reportFormatToolDescription = "Validate vulnerability report entries before presentation: " +
		"field presence, commit sha format, and path hygiene. " +
		"Returns a go/no-go verdict on the input formatting."
)
