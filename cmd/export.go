package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/relicdev/relic/internal/contract"
	"github.com/relicdev/relic/internal/parquet"
	"github.com/relicdev/relic/schema"
)

// exportCmd exports a full analysis to Parquet files.
var exportCmd = &cobra.Command{
	Use:   "export [repo]",
	Short: "Export analysis data to Parquet for BI tools and analytics",
	Long: `Run a full analysis and export the results to Parquet format for use with
analytics tools.

Exports two datasets:
- File metrics - per-file health, churn and activity metrics
- Contributor activity - per-author commit and line rollups

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter. The contributor dataset is written next
to it with a "-contributors" suffix.

Examples:
  # Export the current repository
  relic export --output-file relic-data.parquet

  # Use with DuckDB for analysis
  relic export --output-file data.parquet
  duckdb -c "SELECT * FROM read_parquet('data.parquet') LIMIT 10"`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.OutputFile == "" {
			contract.LogFatal("Cannot export", fmt.Errorf("--output-file is required"))
		}

		status, err := runAnalysisToCompletion(buildOrchestrator())
		if err != nil {
			contract.LogFatal("Cannot run analysis", err)
		}
		if status.State == schema.StateFailed {
			contract.LogFatal(fmt.Sprintf("Analysis failed (%s)", status.ErrorKind), fmt.Errorf("%s", status.Error))
		}

		analysis := status.Result
		if err := parquet.WriteAnalysis(cfg.OutputFile, analysis); err != nil {
			contract.LogFatal("Cannot write file metrics", err)
		}

		contribFile := suffixedPath(cfg.OutputFile, "-contributors")
		rows := parquet.ConvertContributorRecords(analysis.Repository, analysis.Contributors)
		if err := parquet.WriteContributorsParquet(rows, contribFile); err != nil {
			contract.LogFatal("Cannot write contributor activity", err)
		}

		fmt.Fprintf(os.Stderr, "💾 Wrote parquet to %s and %s\n", cfg.OutputFile, contribFile)
	},
}

// suffixedPath inserts suffix before the file extension.
func suffixedPath(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}
