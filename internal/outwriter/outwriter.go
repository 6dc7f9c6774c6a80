// Package outwriter renders analyses and reports in the configured output
// format.
package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/relicdev/relic/internal/contract"
	"github.com/relicdev/relic/internal/parquet"
	"github.com/relicdev/relic/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteAnalysis prints a full repository analysis using the configured output format.
func (ow *OutWriter) WriteAnalysis(analysis *schema.RepositoryAnalysis, cfg *contract.Config, duration time.Duration) error {
	return PrintAnalysis(analysis, cfg, duration)
}

// WriteChurn prints a churn report using the configured output format.
func (ow *OutWriter) WriteChurn(report *schema.ChurnReport, cfg *contract.Config) error {
	return PrintChurnReport(report, cfg)
}

// WriteDeadCode prints a dead code report using the configured output format.
func (ow *OutWriter) WriteDeadCode(report *schema.DeadCodeReport, cfg *contract.Config) error {
	return PrintDeadCodeReport(report, cfg)
}

// WriteHistory prints a single file's commit history using the configured output format.
func (ow *OutWriter) WriteHistory(entries []schema.FileHistoryEntry, filePath string, cfg *contract.Config) error {
	return PrintFileHistory(entries, filePath, cfg)
}

// PrintAnalysis dispatches a full analysis to the configured format.
func PrintAnalysis(analysis *schema.RepositoryAnalysis, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, analysis)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalysisCSV(w, analysis, fmtFloat, intFmt)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		if err := parquet.WriteAnalysis(cfg.OutputFile, analysis); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote parquet to %s\n", cfg.OutputFile)
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalysisTables(w, analysis, cfg, fmtFloat, intFmt, duration)
		}, "Wrote table")
	}
}

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	return nil
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	numFmt := "%.*f"
	intFmt = "%d"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf(numFmt, precision, v)
	}
	return fmtFloat, intFmt
}

// healthLabel picks the colored or plain label depending on configuration.
func healthLabel(cfg *contract.Config, score int, isDead bool) string {
	if cfg.UseColors {
		return contract.GetColorLabel(score, isDead, false)
	}
	return contract.GetPlainLabel(score, isDead, false)
}
