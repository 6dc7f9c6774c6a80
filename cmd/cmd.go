// Package cmd defines the command-line interface for relic.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/relicdev/relic/internal/contract"
	"github.com/relicdev/relic/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(churnCmd)
	rootCmd.AddCommand(deadcodeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("branch", "b", contract.DefaultBranch, "Branch to analyze")
	rootCmd.PersistentFlags().String("temp-root", "", "Directory for transient working copies of remote repositories")
	rootCmd.PersistentFlags().String("clone-timeout", "", "Timeout for cloning remote repositories (e.g. 5m)")
	rootCmd.PersistentFlags().Int("clone-depth", 0, "Shallow clone depth for remote repositories; commits beyond it are not counted")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultReportLimit, "Number of results to display in reports")
	rootCmd.PersistentFlags().Int("max-commits", 0, "Maximum number of commits to read from the log")
	rootCmd.PersistentFlags().Bool("narrate", false, "Generate a narrative summary of the analysis")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.MemoryBackend), "Cache backend: sqlite or mysql or postgresql or memory or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("narrator-model", "", "OpenAI model for narrative summaries (empty uses the default)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of churnCmd to Viper
	churnCmd.Flags().Int("days", 30, "Size of the churn lookback window in days")
	if err := viper.BindPFlags(churnCmd.Flags()); err != nil {
		contract.LogFatal("Error binding churn flags", err)
	}

	// Bind all flags of historyCmd to Viper
	historyCmd.Flags().Int("history-limit", contract.DefaultHistoryLimit, "Maximum number of commits to show per file")
	if err := viper.BindPFlags(historyCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history flags", err)
	}

	// Bind all flags of cacheMigrateCmd to Viper
	cacheMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(cacheMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding cache migrate flags", err)
	}
}
