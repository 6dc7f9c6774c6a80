package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/relicdev/relic/core"
	"github.com/relicdev/relic/internal/acquire"
	"github.com/relicdev/relic/internal/contract"
	"github.com/relicdev/relic/internal/narrator"
	"github.com/relicdev/relic/internal/outwriter"
	"github.com/relicdev/relic/schema"
)

// statusPollInterval is how often the CLI checks a submitted handle.
const statusPollInterval = 50 * time.Millisecond

// buildOrchestrator wires the analysis pipeline from the validated config.
func buildOrchestrator() *core.Orchestrator {
	var primary contract.Narrator
	if cfg.NarratorAPIKey != "" {
		n, err := narrator.NewOpenAINarrator(cfg.NarratorAPIKey, cfg.NarratorModel)
		if err != nil {
			contract.LogWarn("narrator unavailable, using fallback", err)
		} else {
			primary = n
		}
	}
	return core.NewOrchestrator(cfg, contract.NewLocalGitClient(), cacheManager, primary, narrator.TemplateNarrator{})
}

// analysisTarget is the repository identity of the current invocation.
func analysisTarget() string {
	if cfg.RepoURL != "" {
		return cfg.RepoURL
	}
	return cfg.RepoPath
}

// withLocalRepo runs fn against a local working copy of the configured
// repository, acquiring and cleaning up a transient clone for remote targets.
func withLocalRepo(fn func(engine *core.Engine, repoPath, target string) error) error {
	git := contract.NewLocalGitClient()
	target := analysisTarget()
	repoPath := cfg.RepoPath
	if cfg.RepoURL != "" {
		ws, err := acquire.Acquire(rootCtx, git, cfg, cfg.RepoURL, cfg.Branch)
		if err != nil {
			return err
		}
		defer ws.Cleanup()
		repoPath = ws.Path
	}
	return fn(core.New(cfg, git, cacheManager), repoPath, target)
}

// runAnalysisToCompletion submits the configured repository and blocks until
// the handle resolves.
func runAnalysisToCompletion(orch *core.Orchestrator) (schema.AnalysisStatus, error) {
	id := orch.Submit(analysisTarget(), cfg.Branch, cfg.Options)
	for {
		status, found := orch.Status(id)
		if !found {
			return schema.AnalysisStatus{}, fmt.Errorf("analysis handle %s was evicted before completion", id)
		}
		if status.State != schema.StateProcessing {
			return status, nil
		}
		time.Sleep(statusPollInterval)
	}
}

// analyzeCmd performs a full repository analysis.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [repo]",
	Short: "Analyze a repository's full commit history.",
	Long: `Aggregate a repository's commit history into per-file and per-contributor
activity metrics.

For each tracked file this computes commit counts, churn rate, a composite
health score and a dead/alive classification. Contributors are rolled up by
email with their total commits and line counts.

The repository argument can be a local path or a remote URL; remote
repositories are cloned into a transient working copy and cleaned up
afterwards. Results are cached, so repeat runs within the cache TTL are
served instantly.

Examples:
  # Analyze the repository in the current directory
  relic analyze

  # Analyze a remote repository on a specific branch
  relic analyze https://github.com/acme/widgets --branch develop

  # Cap the commit timeline and add a narrative summary
  relic analyze --max-commits 500 --narrate

  # Export the result for later inspection
  relic analyze --output json --output-file analysis.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		status, err := runAnalysisToCompletion(buildOrchestrator())
		if err != nil {
			contract.LogFatal("Cannot run analysis", err)
		}
		if status.State == schema.StateFailed {
			contract.LogFatal(fmt.Sprintf("Analysis failed (%s)", status.ErrorKind), fmt.Errorf("%s", status.Error))
		}

		if err := outwriter.PrintAnalysis(status.Result, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write analysis output", err)
		}
		if status.Narrative != "" {
			fmt.Printf("\n%s\n", status.Narrative)
		}
	},
}
