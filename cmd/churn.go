package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/relicdev/relic/core"
	"github.com/relicdev/relic/internal/contract"
	"github.com/relicdev/relic/internal/outwriter"
)

// churnCmd computes line churn over a recent window.
var churnCmd = &cobra.Command{
	Use:   "churn [repo]",
	Short: "Show the most changed files over a recent time window.",
	Long: `Measure line churn across the repository for a recent time window.

Aggregates additions and deletions per file since the window start and ranks
files by total changed lines, surfacing where current development effort is
concentrated.

Examples:
  # Churn over the default 30-day window
  relic churn

  # A tighter window with more results
  relic churn --days 7 --limit 25

  # Export as CSV for a dashboard
  relic churn --output csv --output-file churn.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		days := viper.GetInt("days")
		err := withLocalRepo(func(engine *core.Engine, repoPath, target string) error {
			report, err := engine.CachedChurnReport(rootCtx, repoPath, target, days)
			if err != nil {
				return err
			}
			return outwriter.PrintChurnReport(report, cfg)
		})
		if err != nil {
			contract.LogFatal("Cannot run churn report", err)
		}
	},
}
