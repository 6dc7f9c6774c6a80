package cmd

import (
	"github.com/spf13/cobra"

	"github.com/relicdev/relic/core"
	"github.com/relicdev/relic/internal/contract"
	"github.com/relicdev/relic/internal/outwriter"
)

// deadcodeCmd classifies tracked files by inactivity.
var deadcodeCmd = &cobra.Command{
	Use:   "deadcode [repo]",
	Short: "Find files that nobody has touched in a long time.",
	Long: `Classify every tracked file by commit inactivity.

Files with no commit inside the dead threshold are flagged dead; files with
very few commits that have also gone quiet are flagged stale. A file lands
in at most one bucket. The report walks the full tracked file listing, so it
can take a while on very large repositories.

Examples:
  # Classify the repository in the current directory
  relic deadcode

  # Inspect a remote repository
  relic deadcode https://github.com/acme/widgets

  # Machine-readable output for CI gating
  relic deadcode --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		err := withLocalRepo(func(engine *core.Engine, repoPath, target string) error {
			report, err := engine.CachedDeadCodeReport(rootCtx, repoPath, target)
			if err != nil {
				return err
			}
			return outwriter.PrintDeadCodeReport(report, cfg)
		})
		if err != nil {
			contract.LogFatal("Cannot run dead code report", err)
		}
	},
}
