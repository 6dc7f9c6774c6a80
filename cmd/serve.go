package cmd

import (
	"github.com/spf13/cobra"

	"github.com/relicdev/relic/internal/contract"
	"github.com/relicdev/relic/internal/mcp"
)

// serveCmd starts the MCP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Relic MCP server",
	Long: `Launch an MCP server that allows AI agents to run repository analyses via
standard tools.

Exposed tools:
  submit_analysis      - start an asynchronous analysis, returns a handle ID
  get_analysis_status  - poll a handle for its state and result
  get_churn_report     - churn over a recent time window
  get_dead_code_report - dead/stale classification of tracked files
  get_file_history     - commit history of a single file with diffs

The server speaks the protocol over stdio, so nothing else may write to
stdout while it runs.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Suppress the normal header logs when running in MCP mode
		// to avoid polluting stdio which is used for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		git := contract.NewLocalGitClient()
		return mcp.StartMCPServer(rootCtx, cfg, git, cacheManager, buildOrchestrator())
	},
}
