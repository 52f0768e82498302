// Package mcp exposes the validation and merge pipeline as MCP tools
// over stdio.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/specgate/internal/config"
	"github.com/ternarybob/specgate/pkg/spec"
)

// Server wraps the pipeline to provide MCP tool access.
type Server struct {
	cfg    *config.Config
	server *server.MCPServer
}

// NewServer creates a new MCP server bound to the given configuration.
func NewServer(cfg *config.Config, version string) *Server {
	s := &Server{cfg: cfg}

	mcpServer := server.NewMCPServer(
		"specgate",
		version,
		server.WithToolCapabilities(true),
	)

	s.registerTools(mcpServer)

	s.server = mcpServer
	return s
}

// registerTools registers all MCP tools with the server.
func (s *Server) registerTools(mcpServer *server.MCPServer) {
	// validate_specs - run a validation batch
	mcpServer.AddTool(
		mcp.NewTool("validate_specs",
			mcp.WithDescription("Validate a spec document tree: metadata parsing, schema checks, and contract registry cross-reference. Returns issues one per line, or 'pass'."),
			mcp.WithString("root",
				mcp.Description("Directory to scan for spec documents (defaults to the configured root)"),
			),
			mcp.WithString("paths",
				mcp.Description("Comma-separated explicit document paths; overrides root scanning"),
			),
			mcp.WithString("registry",
				mcp.Description("Contract registry path (defaults to contracts.md under the root)"),
			),
		),
		s.handleValidate,
	)

	// merge_specs - synthesize a merged spec and gate report
	mcpServer.AddTool(
		mcp.NewTool("merge_specs",
			mcp.WithDescription("Merge workstream documents into a single spec. Runs validation plus dependency graph checks and writes the merged document and gate report."),
			mcp.WithString("output",
				mcp.Required(),
				mcp.Description("Path for the merged spec document (overwritten on every run)"),
			),
			mcp.WithString("root",
				mcp.Description("Directory to scan for workstream documents (defaults to the configured root)"),
			),
			mcp.WithString("paths",
				mcp.Description("Comma-separated explicit document paths; overrides root scanning"),
			),
			mcp.WithString("registry",
				mcp.Description("Contract registry path (defaults to contracts.md under the root)"),
			),
			mcp.WithString("report",
				mcp.Description("Path for the gate report JSON (defaults to gate-report.json next to the output)"),
			),
			mcp.WithString("id",
				mcp.Description("Identifier for the merged document (default: merged-spec)"),
			),
			mcp.WithString("title",
				mcp.Description("Title for the merged document (default: Merged Specification)"),
			),
		),
		s.handleMerge,
	)
}

// ServeStdio runs the MCP server over stdin/stdout until the client
// disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.server)
}

// handleValidate handles the validate_specs tool.
func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := spec.ValidateOptions{
		Paths:        splitPaths(request.GetString("paths", "")),
		Root:         request.GetString("root", ""),
		RegistryPath: request.GetString("registry", ""),
	}
	if opts.Root == "" && len(opts.Paths) == 0 {
		opts.Root = s.cfg.Specs.Root
	}
	if opts.RegistryPath == "" {
		opts.RegistryPath = s.cfg.Specs.Registry
	}

	result, err := spec.ValidateSet(opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("validate failed: %v", err)), nil
	}

	if result.Passed() {
		return mcp.NewToolResultText(fmt.Sprintf("pass: %d documents validated", len(result.Documents))), nil
	}
	return mcp.NewToolResultText(formatIssues(result.Issues)), nil
}

// handleMerge handles the merge_specs tool.
func (s *Server) handleMerge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	output := request.GetString("output", "")
	if output == "" {
		return mcp.NewToolResultError("output parameter is required"), nil
	}

	opts := spec.MergeOptions{
		Paths:        splitPaths(request.GetString("paths", "")),
		Root:         request.GetString("root", ""),
		RegistryPath: request.GetString("registry", ""),
		OutputPath:   output,
		ReportPath:   request.GetString("report", ""),
		ID:           request.GetString("id", ""),
		Title:        request.GetString("title", ""),
	}
	if opts.Root == "" && len(opts.Paths) == 0 {
		opts.Root = s.cfg.Specs.Root
	}
	if opts.RegistryPath == "" {
		opts.RegistryPath = s.cfg.Specs.Registry
	}

	result, err := spec.MergeSet(opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("merge failed: %v", err)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "status: %s\n", result.Report.Status)
	fmt.Fprintf(&b, "merged: %s\n", result.OutputPath)
	fmt.Fprintf(&b, "report: %s\n", result.ReportPath)
	fmt.Fprintf(&b, "workstreams: %d\n", result.Report.WorkstreamCount)
	fmt.Fprintf(&b, "contracts: %d\n", result.Report.ContractCount)
	if len(result.Report.Issues) > 0 {
		b.WriteString(formatIssues(result.Report.Issues))
	}
	return mcp.NewToolResultText(b.String()), nil
}

// splitPaths parses a comma-separated path list, dropping empties.
func splitPaths(raw string) []string {
	if raw == "" {
		return nil
	}
	var paths []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

func formatIssues(issues []spec.Issue) string {
	var b strings.Builder
	for _, issue := range issues {
		b.WriteString(issue.String())
		b.WriteString("\n")
	}
	return b.String()
}
