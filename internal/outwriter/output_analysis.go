package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/relicdev/relic/internal/contract"
	"github.com/relicdev/relic/schema"
)

// writeAnalysisTables renders the human-readable view: a summary line, the
// file table and the contributor table.
func writeAnalysisTables(w io.Writer, analysis *schema.RepositoryAnalysis, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	stats := analysis.Stats
	if _, err := fmt.Fprintf(w, "Repository: %s (branch %s)\n", analysis.Repository.Name, analysis.Repository.Branch); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Commits: %d | Files: %d | Contributors: %d\n",
		stats.TotalCommits, stats.TotalFiles, stats.TotalContributors); err != nil {
		return err
	}
	if !stats.OldestCommit.IsZero() {
		if _, err := fmt.Fprintf(w, "History: %s to %s\n\n",
			stats.OldestCommit.Format("2006-01-02"), stats.NewestCommit.Format("2006-01-02")); err != nil {
			return err
		}
	}

	if err := writeFileTable(w, analysis.Files, cfg, fmtFloat, intFmt); err != nil {
		return err
	}
	if err := writeContributorTable(w, analysis.Contributors, intFmt); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Analysis completed in %v with %d workers. Cache backend: %s\n",
		duration, cfg.Workers, cfg.CacheBackend)
	return err
}

// writeFileTable renders the per-file metrics table.
func writeFileTable(w io.Writer, files []schema.FileRecord, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Path", "Health", "Label", "Commits", "Churn", "LOC", "Last Modified"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxPathWidth := GetMaxTablePathWidth(cfg)
	var data [][]string
	for _, f := range files {
		data = append(data, []string{
			contract.TruncatePath(f.Path, maxPathWidth),
			fmt.Sprintf(intFmt, f.HealthScore),
			healthLabel(cfg, f.HealthScore, f.IsDead),
			fmt.Sprintf(intFmt, f.CommitCount),
			fmtFloat(f.ChurnRate),
			fmt.Sprintf(intFmt, f.LinesOfCode),
			f.LastModified.Format("2006-01-02"),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeContributorTable renders the per-contributor rollup table.
func writeContributorTable(w io.Writer, contributors []schema.ContributorRecord, intFmt string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Contributor", "Email", "Commits", "Added", "Deleted", "Last Active"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, c := range contributors {
		data = append(data, []string{
			c.Name,
			c.Email,
			fmt.Sprintf(intFmt, c.CommitCount),
			fmt.Sprintf(intFmt, c.LinesAdded),
			fmt.Sprintf(intFmt, c.LinesDeleted),
			c.LastActiveAt.Format("2006-01-02"),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeAnalysisCSV writes the per-file metrics as CSV rows. The contributor
// rollup stays out of the CSV view; it has its own shape and belongs to JSON.
func writeAnalysisCSV(w io.Writer, analysis *schema.RepositoryAnalysis, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"path",
		"extension",
		"health_score",
		"label",
		"commits",
		"churn_rate",
		"lines_of_code",
		"size_kb",
		"first_commit",
		"last_modified",
		"is_dead",
		"contributors",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, f := range analysis.Files {
			rec := []string{
				f.Path,
				f.Extension,
				fmt.Sprintf(intFmt, f.HealthScore),
				contract.GetPlainLabel(f.HealthScore, f.IsDead, false),
				fmt.Sprintf(intFmt, f.CommitCount),
				fmtFloat(f.ChurnRate),
				fmt.Sprintf(intFmt, f.LinesOfCode),
				fmtFloat(float64(f.SizeBytes) / 1024.0),
				f.FirstCommitAt.Format(contract.DateTimeFormat),
				f.LastModified.Format(contract.DateTimeFormat),
				strconv.FormatBool(f.IsDead),
				strings.Join(f.Contributors, "|"),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
