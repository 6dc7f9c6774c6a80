// Package parquet provides data structures and functions for exporting
// repository analysis data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/relicdev/relic/schema"
)

// FileMetric represents the derived metrics for a single file in an analysis.
// Each row carries the repository identity so exports from multiple
// repositories can be concatenated into one dataset.
type FileMetric struct {
	// Repository is the short repository name
	Repository string `parquet:"repository,snappy"`

	// Branch is the analyzed branch
	Branch string `parquet:"branch,snappy"`

	// AnalyzedAt is when the analysis ran (stored as TIMESTAMP with nanosecond precision)
	AnalyzedAt time.Time `parquet:"analyzed_at,snappy"`

	// FilePath is the relative path to the file in the repository
	FilePath string `parquet:"file_path,snappy"`

	// Extension is the file extension without the dot
	Extension string `parquet:"extension,snappy"`

	// LinesOfCode is the line count at HEAD
	LinesOfCode int32 `parquet:"lines_of_code,snappy"`

	// SizeBytes is the file size at HEAD in bytes
	SizeBytes int64 `parquet:"size_bytes,snappy"`

	// FirstCommitAt is the timestamp of the oldest commit touching the file
	FirstCommitAt time.Time `parquet:"first_commit_at,snappy"`

	// LastModified is the timestamp of the newest commit touching the file
	LastModified time.Time `parquet:"last_modified,snappy"`

	// TotalCommits is the number of commits touching the file
	TotalCommits int32 `parquet:"total_commits,snappy"`

	// ChurnRate is commits per day of file lifetime
	ChurnRate float64 `parquet:"churn_rate,snappy"`

	// HealthScore is the composite recency and activity score in [0, 100]
	HealthScore int32 `parquet:"health_score,snappy"`

	// IsDead marks files with no commit inside the dead threshold
	IsDead bool `parquet:"is_dead,snappy"`

	// ContributorCount is the number of unique authors across the file's commits
	ContributorCount int32 `parquet:"contributor_count,snappy"`
}

// ContributorActivity represents the per-author rollup for an analysis.
type ContributorActivity struct {
	// Repository is the short repository name
	Repository string `parquet:"repository,snappy"`

	// Branch is the analyzed branch
	Branch string `parquet:"branch,snappy"`

	// AnalyzedAt is when the analysis ran (stored as TIMESTAMP with nanosecond precision)
	AnalyzedAt time.Time `parquet:"analyzed_at,snappy"`

	// Name is the display name of the contributor
	Name string `parquet:"name,snappy"`

	// Email is the contributor identity key
	Email string `parquet:"email,snappy"`

	// TotalCommits is the number of commits authored
	TotalCommits int32 `parquet:"total_commits,snappy"`

	// LinesAdded is the total lines added across all commits
	LinesAdded int64 `parquet:"lines_added,snappy"`

	// LinesDeleted is the total lines deleted across all commits
	LinesDeleted int64 `parquet:"lines_deleted,snappy"`

	// FirstCommitAt is the contributor's oldest commit timestamp
	FirstCommitAt time.Time `parquet:"first_commit_at,snappy"`

	// LastActiveAt is the contributor's newest commit timestamp
	LastActiveAt time.Time `parquet:"last_active_at,snappy"`
}

// ConvertFileRecords converts schema.FileRecord to FileMetric for Parquet export.
func ConvertFileRecords(identity schema.RepositoryIdentity, files []schema.FileRecord) []FileMetric {
	result := make([]FileMetric, len(files))
	for i, f := range files {
		result[i] = FileMetric{
			Repository:       identity.Name,
			Branch:           identity.Branch,
			AnalyzedAt:       identity.AnalyzedAt,
			FilePath:         f.Path,
			Extension:        f.Extension,
			LinesOfCode:      int32(f.LinesOfCode),
			SizeBytes:        f.SizeBytes,
			FirstCommitAt:    f.FirstCommitAt,
			LastModified:     f.LastModified,
			TotalCommits:     int32(f.CommitCount),
			ChurnRate:        f.ChurnRate,
			HealthScore:      int32(f.HealthScore),
			IsDead:           f.IsDead,
			ContributorCount: int32(len(f.Contributors)),
		}
	}
	return result
}

// ConvertContributorRecords converts schema.ContributorRecord to ContributorActivity for Parquet export.
func ConvertContributorRecords(identity schema.RepositoryIdentity, contributors []schema.ContributorRecord) []ContributorActivity {
	result := make([]ContributorActivity, len(contributors))
	for i, c := range contributors {
		result[i] = ContributorActivity{
			Repository:    identity.Name,
			Branch:        identity.Branch,
			AnalyzedAt:    identity.AnalyzedAt,
			Name:          c.Name,
			Email:         c.Email,
			TotalCommits:  int32(c.CommitCount),
			LinesAdded:    int64(c.LinesAdded),
			LinesDeleted:  int64(c.LinesDeleted),
			FirstCommitAt: c.FirstCommitAt,
			LastActiveAt:  c.LastActiveAt,
		}
	}
	return result
}

// writeParquet writes a slice of records to a Parquet file.
// The schema is automatically derived from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	// Close flushes the row group and footer; without it the file is truncated.
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteFileMetricsParquet writes a slice of FileMetric structs to a Parquet file.
func WriteFileMetricsParquet(data []FileMetric, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteContributorsParquet writes a slice of ContributorActivity structs to a Parquet file.
func WriteContributorsParquet(data []ContributorActivity, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteAnalysis exports the per-file metrics of an analysis to a single
// Parquet file. Contributor rollups are exported separately via
// WriteContributorsParquet.
func WriteAnalysis(outputFile string, analysis *schema.RepositoryAnalysis) error {
	rows := ConvertFileRecords(analysis.Repository, analysis.Files)
	return WriteFileMetricsParquet(rows, outputFile)
}
