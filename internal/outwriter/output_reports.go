package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/relicdev/relic/internal/contract"
	"github.com/relicdev/relic/schema"
)

// PrintChurnReport dispatches a churn report to the configured format.
func PrintChurnReport(report *schema.ChurnReport, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeChurnCSV(w, report, intFmt)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeChurnTable(w, report, cfg, fmtFloat, intFmt)
		}, "Wrote table")
	}
}

// writeChurnTable renders the human-readable churn view.
func writeChurnTable(w io.Writer, report *schema.ChurnReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	if _, err := fmt.Fprintf(w, "Churn over the last %d days (%s to %s)\n",
		report.Period.Days,
		report.Period.StartDate.Format("2006-01-02"),
		report.Period.EndDate.Format("2006-01-02")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Commits: %d | +%d/-%d lines | %s changed lines per day\n",
		report.TotalCommits, report.TotalAdditions, report.TotalDeletions, fmtFloat(report.ChurnRate)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Path", "Changes", "Added", "Deleted", "Commits"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxPathWidth := GetMaxTablePathWidth(cfg)
	var data [][]string
	for i, f := range report.MostChangedFiles {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(f.Path, maxPathWidth),
			fmt.Sprintf(intFmt, f.TotalChanges),
			fmt.Sprintf(intFmt, f.Additions),
			fmt.Sprintf(intFmt, f.Deletions),
			fmt.Sprintf(intFmt, f.CommitCount),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeChurnCSV writes the most-changed files as CSV rows.
func writeChurnCSV(w io.Writer, report *schema.ChurnReport, intFmt string) error {
	header := []string{"rank", "path", "total_changes", "additions", "deletions", "commits"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, f := range report.MostChangedFiles {
			rec := []string{
				strconv.Itoa(i + 1),
				f.Path,
				fmt.Sprintf(intFmt, f.TotalChanges),
				fmt.Sprintf(intFmt, f.Additions),
				fmt.Sprintf(intFmt, f.Deletions),
				fmt.Sprintf(intFmt, f.CommitCount),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// PrintDeadCodeReport dispatches a dead code report to the configured format.
func PrintDeadCodeReport(report *schema.DeadCodeReport, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDeadCodeCSV(w, report, intFmt)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDeadCodeTable(w, report, cfg, fmtFloat, intFmt)
		}, "Wrote table")
	}
}

// writeDeadCodeTable renders the human-readable dead code view.
func writeDeadCodeTable(w io.Writer, report *schema.DeadCodeReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	if _, err := fmt.Fprintf(w, "Examined %d files: %d dead, %d stale (%s%% dead)\n",
		report.TotalFiles, len(report.DeadFiles), len(report.StaleFiles), fmtFloat(report.DeadCodePercentage)); err != nil {
		return err
	}

	writeBucket := func(title string, files []schema.InactiveFile) error {
		if len(files) == 0 {
			return nil
		}
		if _, err := fmt.Fprintf(w, "\n%s\n", title); err != nil {
			return err
		}
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Path", "Quiet Days", "Commits", "Last Modified"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})

		maxPathWidth := GetMaxTablePathWidth(cfg)
		var data [][]string
		for _, f := range files {
			data = append(data, []string{
				contract.TruncatePath(f.Path, maxPathWidth),
				fmt.Sprintf(intFmt, f.DaysSinceLast),
				fmt.Sprintf(intFmt, f.TotalCommits),
				f.LastModified.Format("2006-01-02"),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		return table.Render()
	}

	if err := writeBucket("Dead files", report.DeadFiles); err != nil {
		return err
	}
	return writeBucket("Stale files", report.StaleFiles)
}

// writeDeadCodeCSV writes both buckets as CSV rows, tagged by class.
func writeDeadCodeCSV(w io.Writer, report *schema.DeadCodeReport, intFmt string) error {
	header := []string{"class", "path", "days_since_last_commit", "total_commits", "last_modified"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		writeRows := func(class string, files []schema.InactiveFile) error {
			for _, f := range files {
				rec := []string{
					class,
					f.Path,
					fmt.Sprintf(intFmt, f.DaysSinceLast),
					fmt.Sprintf(intFmt, f.TotalCommits),
					f.LastModified.Format(contract.DateTimeFormat),
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
			return nil
		}
		if err := writeRows("dead", report.DeadFiles); err != nil {
			return err
		}
		return writeRows("stale", report.StaleFiles)
	})
}

// PrintFileHistory dispatches a file history to the configured format.
func PrintFileHistory(entries []schema.FileHistoryEntry, filePath string, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, entries)
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryText(w, entries, filePath)
		}, "Wrote history")
	}
}

// writeHistoryText renders the commit-by-commit view of one file.
func writeHistoryText(w io.Writer, entries []schema.FileHistoryEntry, filePath string) error {
	if _, err := fmt.Fprintf(w, "History of %s (%d commits)\n", filePath, len(entries)); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "\ncommit %s\nAuthor: %s <%s>\nDate:   %s\n\n    %s\n",
			e.Hash, e.Author, e.Email, e.Timestamp.Format(contract.DateTimeFormat), e.Message); err != nil {
			return err
		}
		if e.Diff != "" {
			if _, err := fmt.Fprintln(w, e.Diff); err != nil {
				return err
			}
		}
	}
	return nil
}
