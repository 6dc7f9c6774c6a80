package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/relicdev/relic/core"
	"github.com/relicdev/relic/internal/contract"
	"github.com/relicdev/relic/internal/outwriter"
)

// historyCmd shows the commit history of one file.
var historyCmd = &cobra.Command{
	Use:   "history <file> [repo]",
	Short: "Show the commit-by-commit history of a single file.",
	Long: `Walk the commit history of one file, newest first, with the diff each
commit applied to it.

Missing diffs (for example on shallow clones) are tolerated and rendered as
commits without a patch. A file with no history at all is an error.

Examples:
  # History of a file in the current repository
  relic history src/main.go

  # History of a file in another repository
  relic history src/main.go ../other-repo

  # Limit the walk and emit JSON
  relic history src/main.go --history-limit 10 --output json`,
	Args: cobra.RangeArgs(1, 2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// The first positional is the file; the repository is the optional second.
		return sharedSetup(rootCtx, cmd, args[1:])
	},
	Run: func(_ *cobra.Command, args []string) {
		filePath := args[0]
		limit := viper.GetInt("history-limit")
		err := withLocalRepo(func(engine *core.Engine, repoPath, target string) error {
			entries, err := engine.CachedFileHistory(rootCtx, repoPath, target, filePath, limit)
			if err != nil {
				return err
			}
			return outwriter.PrintFileHistory(entries, filePath, cfg)
		})
		if err != nil {
			contract.LogFatal("Cannot fetch file history", err)
		}
	},
}
