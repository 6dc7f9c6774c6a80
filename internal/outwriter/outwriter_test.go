package outwriter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relicdev/relic/internal/contract"
	"github.com/relicdev/relic/schema"
)

func testConfig() *contract.Config {
	return &contract.Config{
		Workers:      4,
		Precision:    2,
		Width:        100,
		UseColors:    false,
		CacheBackend: schema.MemoryBackend,
	}
}

func testAnalysis() *schema.RepositoryAnalysis {
	return &schema.RepositoryAnalysis{
		Repository: schema.RepositoryIdentity{
			Name:   "widgets",
			Branch: "main",
		},
		Files: []schema.FileRecord{
			{
				Path:          "src/main.go",
				Extension:     "go",
				LinesOfCode:   420,
				SizeBytes:     10240,
				FirstCommitAt: time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC),
				LastModified:  time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
				CommitCount:   42,
				ChurnRate:     0.08,
				HealthScore:   88,
				Contributors:  []string{"Alice", "Bob"},
			},
			{
				Path:         "legacy/old.go",
				Extension:    "go",
				LastModified: time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC),
				CommitCount:  2,
				HealthScore:  4,
				IsDead:       true,
				Contributors: []string{"Alice"},
			},
		},
		Contributors: []schema.ContributorRecord{
			{
				Name:         "Alice",
				Email:        "alice@example.com",
				CommitCount:  30,
				LinesAdded:   900,
				LinesDeleted: 120,
				LastActiveAt: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
			},
		},
		Stats: schema.Stats{
			TotalCommits:      44,
			TotalFiles:        2,
			TotalContributors: 1,
			OldestCommit:      time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC),
			NewestCommit:      time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestWriteAnalysisTables(t *testing.T) {
	cfg := testConfig()
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	err := writeAnalysisTables(&buf, testAnalysis(), cfg, fmtFloat, intFmt, 2*time.Second)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Repository: widgets (branch main)")
	assert.Contains(t, out, "Commits: 44 | Files: 2 | Contributors: 1")
	assert.Contains(t, out, "History: 2023-01-10 to 2024-05-20")
	assert.Contains(t, out, "src/main.go")
	assert.Contains(t, out, contract.DeadValue)
	assert.Contains(t, out, "alice@example.com")
	assert.Contains(t, out, "Cache backend: memory")
}

func TestWriteAnalysisTablesSkipsEmptyHistoryLine(t *testing.T) {
	cfg := testConfig()
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	analysis := testAnalysis()
	analysis.Stats.OldestCommit = time.Time{}

	var buf bytes.Buffer
	require.NoError(t, writeAnalysisTables(&buf, analysis, cfg, fmtFloat, intFmt, time.Second))
	assert.NotContains(t, buf.String(), "History:")
}

func TestWriteAnalysisCSV(t *testing.T) {
	fmtFloat, intFmt := createFormatters(2)

	var buf bytes.Buffer
	err := writeAnalysisCSV(&buf, testAnalysis(), fmtFloat, intFmt)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3) // header + 2 rows

	assert.Contains(t, lines[0], "path")
	assert.Contains(t, lines[0], "health_score")
	assert.Contains(t, lines[0], "contributors")

	assert.Contains(t, lines[1], "src/main.go")
	assert.Contains(t, lines[1], "88")
	assert.Contains(t, lines[1], "10.00") // 10240 bytes as KB
	assert.Contains(t, lines[1], "Alice|Bob")

	assert.Contains(t, lines[2], "legacy/old.go")
	assert.Contains(t, lines[2], contract.DeadValue)
	assert.Contains(t, lines[2], "true")
}

func TestPrintAnalysisJSON(t *testing.T) {
	cfg := testConfig()
	cfg.Output = schema.JSONOut

	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, testAnalysis()))

	var decoded schema.RepositoryAnalysis
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "widgets", decoded.Repository.Name)
	assert.Len(t, decoded.Files, 2)
}

func TestPrintAnalysisParquetRequiresOutputFile(t *testing.T) {
	cfg := testConfig()
	cfg.Output = schema.ParquetOut

	err := PrintAnalysis(testAnalysis(), cfg, time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output-file")
}

func testChurnReport() *schema.ChurnReport {
	return &schema.ChurnReport{
		Period: schema.ChurnPeriod{
			Days:      30,
			StartDate: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		TotalCommits:   12,
		TotalAdditions: 311,
		TotalDeletions: 155,
		ChurnRate:      15.53,
		MostChangedFiles: []schema.FileChurn{
			{Path: "src/hot.go", Additions: 200, Deletions: 100, CommitCount: 8, TotalChanges: 300},
			{Path: "src/warm.go", Additions: 111, Deletions: 55, CommitCount: 4, TotalChanges: 166},
		},
	}
}

func TestWriteChurnTable(t *testing.T) {
	cfg := testConfig()
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	err := writeChurnTable(&buf, testChurnReport(), cfg, fmtFloat, intFmt)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Churn over the last 30 days (2024-05-02 to 2024-06-01)")
	assert.Contains(t, out, "Commits: 12 | +311/-155 lines | 15.53 changed lines per day")
	assert.Contains(t, out, "src/hot.go")
	assert.Contains(t, out, "src/warm.go")
}

func TestWriteChurnCSV(t *testing.T) {
	_, intFmt := createFormatters(2)

	var buf bytes.Buffer
	err := writeChurnCSV(&buf, testChurnReport(), intFmt)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	assert.Contains(t, lines[0], "rank")
	assert.Contains(t, lines[0], "total_changes")
	assert.Equal(t, "1,src/hot.go,300,200,100,8", lines[1])
	assert.Equal(t, "2,src/warm.go,166,111,55,4", lines[2])
}

func testDeadCodeReport() *schema.DeadCodeReport {
	return &schema.DeadCodeReport{
		TotalFiles: 10,
		DeadFiles: []schema.InactiveFile{
			{Path: "legacy/old.go", LastModified: time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC), DaysSinceLast: 730, TotalCommits: 2},
		},
		StaleFiles: []schema.InactiveFile{
			{Path: "docs/notes.md", LastModified: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), DaysSinceLast: 152, TotalCommits: 1},
		},
		DeadCodePercentage: 10.0,
		AnalyzedAt:         time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestWriteDeadCodeTable(t *testing.T) {
	cfg := testConfig()
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	err := writeDeadCodeTable(&buf, testDeadCodeReport(), cfg, fmtFloat, intFmt)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Examined 10 files: 1 dead, 1 stale (10.00% dead)")
	assert.Contains(t, out, "Dead files")
	assert.Contains(t, out, "legacy/old.go")
	assert.Contains(t, out, "Stale files")
	assert.Contains(t, out, "docs/notes.md")
}

func TestWriteDeadCodeTableOmitsEmptyBuckets(t *testing.T) {
	cfg := testConfig()
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	report := testDeadCodeReport()
	report.StaleFiles = nil

	var buf bytes.Buffer
	require.NoError(t, writeDeadCodeTable(&buf, report, cfg, fmtFloat, intFmt))
	assert.NotContains(t, buf.String(), "Stale files")
}

func TestWriteDeadCodeCSV(t *testing.T) {
	_, intFmt := createFormatters(2)

	var buf bytes.Buffer
	err := writeDeadCodeCSV(&buf, testDeadCodeReport(), intFmt)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	assert.Contains(t, lines[0], "class")
	assert.True(t, strings.HasPrefix(lines[1], "dead,legacy/old.go,730,2,"))
	assert.True(t, strings.HasPrefix(lines[2], "stale,docs/notes.md,152,1,"))
}

func TestWriteHistoryText(t *testing.T) {
	entries := []schema.FileHistoryEntry{
		{
			Hash:      "abc123",
			Author:    "Alice",
			Email:     "alice@example.com",
			Timestamp: time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC),
			Message:   "tighten validation",
			Diff:      "+added line\n-removed line",
		},
		{
			Hash:      "def456",
			Author:    "Bob",
			Email:     "bob@example.com",
			Timestamp: time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC),
			Message:   "initial version",
		},
	}

	var buf bytes.Buffer
	err := writeHistoryText(&buf, entries, "src/main.go")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "History of src/main.go (2 commits)")
	assert.Contains(t, out, "commit abc123")
	assert.Contains(t, out, "Author: Alice <alice@example.com>")
	assert.Contains(t, out, "    tighten validation")
	assert.Contains(t, out, "+added line")
	assert.Contains(t, out, "commit def456")
}

func TestCreateFormatters(t *testing.T) {
	fmtFloat, intFmt := createFormatters(2)
	assert.Equal(t, "3.14", fmtFloat(3.14159))
	assert.Equal(t, "%d", intFmt)

	fmtFloat, _ = createFormatters(0)
	assert.Equal(t, "3", fmtFloat(3.14159))
}

func TestGetMaxTablePathWidth(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  int
	}{
		{"narrow terminal clamps to minimum", 40, 15},
		{"mid-size terminal uses available space", 100, 50},
		{"wide terminal clamps to maximum", 200, 70},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tc.width}
			assert.Equal(t, tc.want, GetMaxTablePathWidth(cfg))
		})
	}
}

func TestHealthLabel(t *testing.T) {
	plain := &contract.Config{UseColors: false}
	assert.Equal(t, contract.HealthyValue, healthLabel(plain, 85, false))
	assert.Equal(t, contract.AgingValue, healthLabel(plain, 50, false))
	assert.Equal(t, contract.DecayingValue, healthLabel(plain, 10, false))
	assert.Equal(t, contract.DeadValue, healthLabel(plain, 85, true))
}
