//go:build basic

// Package integration contains integration tests for relic.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipWithoutGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

func TestRelicVersion(t *testing.T) {
	out, err := runRelicCommand(t, ".", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "relic CLI")
}

func TestRelicAnalyze(t *testing.T) {
	skipWithoutGit(t)
	repo := makeFixtureRepo(t)

	out, err := runRelicCommand(t, ".", "analyze", repo, "--color", "no", "--cache-backend", "none")
	require.NoError(t, err)
	assert.Contains(t, out, "Commits: 2")
	assert.Contains(t, out, "main.go")
	assert.Contains(t, out, "alice@example.com")
}

func TestRelicAnalyzeJSON(t *testing.T) {
	skipWithoutGit(t)
	repo := makeFixtureRepo(t)

	out, err := runRelicCommand(t, ".", "analyze", repo, "--output", "json", "--cache-backend", "none")
	require.NoError(t, err)
	assert.Contains(t, out, `"totalCommits": 2`)
}

func TestRelicChurn(t *testing.T) {
	skipWithoutGit(t)
	repo := makeFixtureRepo(t)

	out, err := runRelicCommand(t, ".", "churn", repo, "--days", "7", "--cache-backend", "none")
	require.NoError(t, err)
	assert.Contains(t, out, "Churn over the last 7 days")
}

func TestRelicDeadcode(t *testing.T) {
	skipWithoutGit(t)
	repo := makeFixtureRepo(t)

	// A freshly committed repo has no dead or stale files.
	out, err := runRelicCommand(t, ".", "deadcode", repo, "--cache-backend", "none")
	require.NoError(t, err)
	assert.Contains(t, out, "0 dead, 0 stale")
}

func TestRelicHistory(t *testing.T) {
	skipWithoutGit(t)
	repo := makeFixtureRepo(t)

	out, err := runRelicCommand(t, ".", "history", "main.go", repo, "--cache-backend", "none")
	require.NoError(t, err)
	assert.Contains(t, out, "History of main.go")
	assert.Contains(t, out, "initial version")
}

func TestRelicHistoryUnknownFile(t *testing.T) {
	skipWithoutGit(t)
	repo := makeFixtureRepo(t)

	_, err := runRelicCommand(t, ".", "history", "missing.go", repo, "--cache-backend", "none")
	require.Error(t, err)
}
