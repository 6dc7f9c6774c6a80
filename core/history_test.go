package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/relicdev/relic/internal/contract"
)

func TestGetFileHistory(t *testing.T) {
	client := new(contract.MockGitClient)
	client.
		On("CommitLog", mock.Anything, testRepoPath, contract.LogOptions{FilePath: "a.js", MaxCount: 50}).
		Return(scenarioLog(), nil)
	client.
		On("ShowCommitDiff", mock.Anything, testRepoPath, "c3", "a.js").
		Return("diff --git a/a.js b/a.js\n+cached = true\n", nil)
	// Commits beyond the shallow horizon yield empty diffs, not errors.
	client.
		On("ShowCommitDiff", mock.Anything, testRepoPath, mock.Anything, "a.js").
		Return("", nil)

	entries, err := testEngine(client).GetFileHistory(context.Background(), testRepoPath, "a.js", 50)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "c3", entries[0].Hash)
	assert.Equal(t, "Alice", entries[0].Author)
	assert.Equal(t, "Add caching", entries[0].Message)
	assert.Contains(t, entries[0].Diff, "cached = true")

	assert.Equal(t, "c2", entries[1].Hash)
	assert.Empty(t, entries[1].Diff)
}

func TestGetFileHistoryNotFound(t *testing.T) {
	client := new(contract.MockGitClient)
	client.
		On("CommitLog", mock.Anything, testRepoPath, contract.LogOptions{FilePath: "ghost.js", MaxCount: 0}).
		Return([]byte(""), nil)

	_, err := testEngine(client).GetFileHistory(context.Background(), testRepoPath, "ghost.js", 0)
	require.Error(t, err)
	assert.Equal(t, contract.KindFileNotFound, contract.KindOf(err))
}

func TestCachedFileHistory(t *testing.T) {
	client := new(contract.MockGitClient)
	client.
		On("CommitLog", mock.Anything, testRepoPath, contract.LogOptions{FilePath: "a.js", MaxCount: 10}).
		Return(scenarioLog(), nil).
		Once()
	client.
		On("ShowCommitDiff", mock.Anything, testRepoPath, mock.Anything, "a.js").
		Return("", nil)

	engine := testEngine(client)
	engine.cache = newMemManager()

	ctx := context.Background()
	first, err := engine.CachedFileHistory(ctx, testRepoPath, testRepoPath, "a.js", 10)
	require.NoError(t, err)

	// The second call replays from cache; the mock allows only one log read.
	second, err := engine.CachedFileHistory(ctx, testRepoPath, testRepoPath, "a.js", 10)
	require.NoError(t, err)
	assert.Equal(t, len(first), len(second))
	client.AssertExpectations(t)
}
