// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/relicdev/relic/core"
	"github.com/relicdev/relic/internal/contract"
)

// NewMCPServer initializes and configures the Relic MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, git contract.GitClient, mgr contract.CacheManager, orch *core.Orchestrator) *server.MCPServer {
	s := server.NewMCPServer(
		"Relic Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		git:     git,
		mgr:     mgr,
		orch:    orch,
	}

	// --- 1. Tool: submit_analysis ---
	s.AddTool(mcp.NewTool("submit_analysis",
		mcp.WithDescription("Start an asynchronous commit-history analysis of a Git repository and return a handle ID."),
		mcp.WithString("target", mcp.Description("Repository URL or local path to analyze."), mcp.Required()),
		mcp.WithString("branch", mcp.Description("Branch to analyze. Defaults to the configured branch.")),
		mcp.WithNumber("max_commits", mcp.Description("Maximum number of commits to read from the log.")),
		mcp.WithBoolean("narrate", mcp.Description("Generate a narrative summary of the analysis.")),
	), h.handleSubmitAnalysis)

	// --- 2. Tool: get_analysis_status ---
	s.AddTool(mcp.NewTool("get_analysis_status",
		mcp.WithDescription("Fetch the state of a previously submitted analysis, including its result once completed."),
		mcp.WithString("analysis_id", mcp.Description("Handle ID returned by submit_analysis."), mcp.Required()),
	), h.handleGetAnalysisStatus)

	// --- 3. Tool: get_churn_report ---
	s.AddTool(mcp.NewTool("get_churn_report",
		mcp.WithDescription("Compute line churn over a recent time window for a local repository."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to current directory if not specified).")),
		mcp.WithNumber("days", mcp.Description("Size of the lookback window in days. Defaults to 30.")),
	), h.handleGetChurnReport)

	// --- 4. Tool: get_dead_code_report ---
	s.AddTool(mcp.NewTool("get_dead_code_report",
		mcp.WithDescription("Classify tracked files as dead or stale based on commit inactivity."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
	), h.handleGetDeadCodeReport)

	// --- 5. Tool: get_file_history ---
	s.AddTool(mcp.NewTool("get_file_history",
		mcp.WithDescription("Fetch the commit history of a single file, with per-commit diffs."),
		mcp.WithString("file_path", mcp.Description("Repository-relative path of the file."), mcp.Required()),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of commits to return.")),
	), h.handleGetFileHistory)

	return s
}

// StartMCPServer starts the Relic MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, git contract.GitClient, mgr contract.CacheManager, orch *core.Orchestrator) error {
	s := NewMCPServer(baseCfg, git, mgr, orch)
	return server.ServeStdio(s)
}
