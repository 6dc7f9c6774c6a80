package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/relicdev/relic/core"
	"github.com/relicdev/relic/internal/contract"
	"github.com/relicdev/relic/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	git     contract.GitClient
	mgr     contract.CacheManager
	orch    *core.Orchestrator
}

// engineFor builds a per-request engine pointed at a local repository path.
// Reports run synchronously against local working copies; remote targets go
// through submit_analysis instead.
func (h *toolHandler) engineFor(repoPath string) *core.Engine {
	cfg := h.baseCfg.CloneWithRepo("", repoPath, "")
	return core.New(cfg, h.git, h.mgr)
}

// toolError formats a tagged failure with its boundary status class so MCP
// clients can distinguish bad input from retriable and internal failures.
func toolError(action string, err error) *mcp.CallToolResult {
	kind := contract.KindOf(err)
	return mcp.NewToolResultError(fmt.Sprintf("%s failed (%s): %v", action, kind.Status(), err))
}

func (h *toolHandler) handleSubmitAnalysis(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target := request.GetString("target", "")
	if target == "" {
		return mcp.NewToolResultError("target is required"), nil
	}
	branch := request.GetString("branch", "")

	opts := schema.AnalysisOptions{
		MaxCommits: request.GetInt("max_commits", 0),
		Narrate:    request.GetBool("narrate", false),
	}

	id := h.orch.Submit(target, branch, opts)
	jsonData, _ := json.MarshalIndent(map[string]string{"analysisId": id}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetAnalysisStatus(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("analysis_id", "")
	if id == "" {
		return mcp.NewToolResultError("analysis_id is required"), nil
	}

	status, found := h.orch.Status(id)
	if !found {
		return mcp.NewToolResultError(fmt.Sprintf("no analysis found for handle %q (%s)", id, contract.StatusNotFound)), nil
	}

	jsonData, _ := json.MarshalIndent(status, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetChurnReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repoPath := request.GetString("repo_path", ".")
	days := request.GetInt("days", 30)

	engine := h.engineFor(repoPath)
	report, err := engine.CachedChurnReport(ctx, repoPath, repoPath, days)
	if err != nil {
		return toolError("churn report", err), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetDeadCodeReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repoPath := request.GetString("repo_path", ".")

	engine := h.engineFor(repoPath)
	report, err := engine.CachedDeadCodeReport(ctx, repoPath, repoPath)
	if err != nil {
		return toolError("dead code report", err), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetFileHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filePath := request.GetString("file_path", "")
	if filePath == "" {
		return mcp.NewToolResultError("file_path is required"), nil
	}
	repoPath := request.GetString("repo_path", ".")
	limit := request.GetInt("limit", contract.DefaultHistoryLimit)

	engine := h.engineFor(repoPath)
	entries, err := engine.CachedFileHistory(ctx, repoPath, repoPath, filePath, limit)
	if err != nil {
		return toolError("file history", err), nil
	}

	jsonData, _ := json.MarshalIndent(entries, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
