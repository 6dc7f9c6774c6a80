package narrator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relicdev/relic/schema"
)

func sampleAnalysis() *schema.RepositoryAnalysis {
	return &schema.RepositoryAnalysis{
		Repository: schema.RepositoryIdentity{Name: "widgets", Branch: "main"},
		Files: []schema.FileRecord{
			{Path: "src/live.go", CommitCount: 12, HealthScore: 80},
			{Path: "src/gone.go", CommitCount: 1, HealthScore: 3, IsDead: true},
		},
		Contributors: []schema.ContributorRecord{
			{Name: "Alice", Email: "alice@example.com", CommitCount: 30, LinesAdded: 900, LinesDeleted: 120},
			{Name: "Bob", Email: "bob@example.com", CommitCount: 5},
		},
		Stats: schema.Stats{
			TotalCommits:      35,
			TotalFiles:        2,
			TotalContributors: 2,
			OldestCommit:      time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC),
			NewestCommit:      time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestNewOpenAINarratorRequiresKey(t *testing.T) {
	_, err := NewOpenAINarrator("", "")
	assert.Error(t, err)

	n, err := NewOpenAINarrator("sk-test", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, n.model)

	n, err = NewOpenAINarrator("sk-test", "gpt-4o")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", n.model)
}

func TestDigest(t *testing.T) {
	digest := Digest(sampleAnalysis())

	assert.Contains(t, digest, "Repository: widgets (branch main)")
	assert.Contains(t, digest, "Commits: 35, files analyzed: 2, contributors: 2")
	assert.Contains(t, digest, "History spans 2022-01-10 to 2024-05-20")
	assert.Contains(t, digest, "Contributor Alice: 30 commits, +900/-120 lines")
	assert.Contains(t, digest, "File src/gone.go: 1 commits, health 3, dead=true")
}

func TestDigestCapsListedFiles(t *testing.T) {
	analysis := sampleAnalysis()
	for range 30 {
		analysis.Files = append(analysis.Files, schema.FileRecord{Path: "filler.go"})
	}

	digest := Digest(analysis)
	assert.LessOrEqual(t, len(digest), 4096, "digest should stay compact for large trees")
}

func TestTemplateNarrator(t *testing.T) {
	text, err := TemplateNarrator{}.Narrate(context.Background(), sampleAnalysis())
	require.NoError(t, err)

	assert.Contains(t, text, "widgets carries 35 commits")
	assert.Contains(t, text, "Alice has left the deepest mark with 30 commits.")
	assert.Contains(t, text, "1 files lie untouched")
	assert.Contains(t, text, "January 2022 to May 2024")
}

func TestTemplateNarratorEmptyIdentity(t *testing.T) {
	analysis := &schema.RepositoryAnalysis{}
	text, err := TemplateNarrator{}.Narrate(context.Background(), analysis)
	require.NoError(t, err)
	assert.Contains(t, text, "This repository carries 0 commits")
}

func TestTemplateNarratorDeterministic(t *testing.T) {
	a, _ := TemplateNarrator{}.Narrate(context.Background(), sampleAnalysis())
	b, _ := TemplateNarrator{}.Narrate(context.Background(), sampleAnalysis())
	assert.Equal(t, a, b)
}
