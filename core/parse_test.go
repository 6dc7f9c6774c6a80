package core

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommitLog(t *testing.T) {
	out, err := os.ReadFile("testdata/commitlog.txt")
	require.NoError(t, err)

	commits := ParseCommitLog(out, 0)
	require.Len(t, commits, 3)

	first := commits[0]
	assert.Equal(t, "aaa1111", first.Hash)
	assert.Equal(t, "Alice", first.AuthorName)
	assert.Equal(t, "alice@example.com", first.AuthorEmail)
	assert.Equal(t, "Refactor parser", first.Message)
	assert.Equal(t, time.Date(2024, 3, 21, 10, 0, 0, 0, time.UTC), first.Timestamp.UTC())
	assert.Equal(t, 2, first.FilesChanged)
	assert.Equal(t, 30, first.Insertions)
	assert.Equal(t, 4, first.Deletions)

	// Missing deletions segment reads as zero.
	second := commits[1]
	assert.Equal(t, "bbb2222", second.Hash)
	assert.Equal(t, 5, second.Insertions)
	assert.Equal(t, 0, second.Deletions)

	// Newest first ordering is preserved from the raw log.
	assert.True(t, commits[0].Timestamp.After(commits[2].Timestamp))
}

func TestParseCommitLogMaxCommits(t *testing.T) {
	out, err := os.ReadFile("testdata/commitlog.txt")
	require.NoError(t, err)

	commits := ParseCommitLog(out, 2)
	require.Len(t, commits, 2)
	assert.Equal(t, "aaa1111", commits[0].Hash)
	assert.Equal(t, "bbb2222", commits[1].Hash)
}

func TestParseCommitLogMalformed(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "empty output", input: "", expected: 0},
		{name: "whitespace only", input: "\n  \n", expected: 0},
		{name: "truncated header", input: "--abc|Alice|alice@example.com\n", expected: 0},
		{name: "bad date drops commit", input: "--abc|Alice|alice@example.com|yesterday|msg\n", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commits := ParseCommitLog([]byte(tt.input), 0)
			assert.Len(t, commits, tt.expected)
		})
	}
}

func TestParseCommitLogSubjectWithPipe(t *testing.T) {
	commits := ParseCommitLog([]byte("--abc|Alice|alice@example.com|2024-03-01T08:00:00Z|fix a|b parsing\n"), 0)
	require.Len(t, commits, 1)
	assert.Equal(t, "fix a|b parsing", commits[0].Message)
}

func TestParseNumstat(t *testing.T) {
	input := "--aaa|Alice|alice@example.com|2024-03-21T10:00:00Z\n" +
		"10\t2\tsrc/parser.go\n" +
		"5\t0\tsrc/lexer.go\n" +
		"--bbb|Bob|bob@example.com|2024-03-20T10:00:00Z\n" +
		"3\t3\tsrc/parser.go\n" +
		"-\t-\tassets/logo.png\n"

	agg := ParseNumstat([]byte(input))

	assert.Equal(t, 2, agg.TotalCommits)
	assert.Equal(t, 18, agg.TotalAdditions)
	assert.Equal(t, 5, agg.TotalDeletions)

	parser := agg.Files["src/parser.go"]
	require.NotNil(t, parser)
	assert.Equal(t, 13, parser.Additions)
	assert.Equal(t, 5, parser.Deletions)
	assert.Equal(t, 2, parser.CommitCount)
	assert.Equal(t, 18, parser.TotalChanges)

	// Binary markers count as zero lines but still register the touch.
	logo := agg.Files["assets/logo.png"]
	require.NotNil(t, logo)
	assert.Equal(t, 0, logo.TotalChanges)
	assert.Equal(t, 1, logo.CommitCount)
}

func TestParseNumstatEmpty(t *testing.T) {
	agg := ParseNumstat(nil)
	assert.Equal(t, 0, agg.TotalCommits)
	assert.Empty(t, agg.Files)
}
