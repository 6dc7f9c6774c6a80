package core

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/relicdev/relic/internal/contract"
)

// agedLog renders a history whose commits all sit daysAgo days in the past.
func agedLog(daysAgo, commits int) []byte {
	ts := testNow.AddDate(0, 0, -daysAgo).Format(time.RFC3339)
	var out []byte
	for i := range commits {
		out = fmt.Appendf(out,
			"--h%d|Alice|alice@example.com|%s|Change %d\n 1 file changed, 1 insertion(+)\n", i, ts, i)
	}
	return out
}

func deadCodeClient() *contract.MockGitClient {
	client := new(contract.MockGitClient)
	client.
		On("ListTrackedFiles", mock.Anything, testRepoPath).
		Return([]string{"active.go", "dead.go", "stale.go", "quiet-but-busy.go", "untracked-history.go"}, nil)

	fileLog := func(path string, out []byte) {
		client.
			On("CommitLog", mock.Anything, testRepoPath, contract.LogOptions{FilePath: path}).
			Return(out, nil)
	}
	fileLog("active.go", agedLog(5, 10))
	fileLog("dead.go", agedLog(200, 1))
	fileLog("stale.go", agedLog(120, 2))
	fileLog("quiet-but-busy.go", agedLog(120, 8))
	fileLog("untracked-history.go", []byte(""))
	return client
}

func TestDetectDeadCode(t *testing.T) {
	report, err := testEngine(deadCodeClient()).DetectDeadCode(context.Background(), testRepoPath)
	require.NoError(t, err)

	// Files with no reachable history do not count at all.
	assert.Equal(t, 4, report.TotalFiles)
	assert.Equal(t, testNow, report.AnalyzedAt)

	require.Len(t, report.DeadFiles, 1)
	dead := report.DeadFiles[0]
	assert.Equal(t, "dead.go", dead.Path)
	assert.Equal(t, 200, dead.DaysSinceLast)
	assert.Equal(t, 1, dead.TotalCommits)

	// quiet-but-busy.go is old but has enough commits to escape staleness.
	require.Len(t, report.StaleFiles, 1)
	assert.Equal(t, "stale.go", report.StaleFiles[0].Path)

	assert.InDelta(t, 25.0, report.DeadCodePercentage, 0.0001) // 1 of 4
}

func TestDetectDeadCodeExclusivity(t *testing.T) {
	// A file that is both old enough to be dead and sparse enough to be
	// stale lands only in the dead bucket.
	client := new(contract.MockGitClient)
	client.
		On("ListTrackedFiles", mock.Anything, testRepoPath).
		Return([]string{"forgotten.go"}, nil)
	client.
		On("CommitLog", mock.Anything, testRepoPath, contract.LogOptions{FilePath: "forgotten.go"}).
		Return(agedLog(400, 1), nil)

	report, err := testEngine(client).DetectDeadCode(context.Background(), testRepoPath)
	require.NoError(t, err)

	assert.Len(t, report.DeadFiles, 1)
	assert.Empty(t, report.StaleFiles)
	assert.InDelta(t, 100.0, report.DeadCodePercentage, 0.0001)
}

func TestDetectDeadCodeEmptyTree(t *testing.T) {
	client := new(contract.MockGitClient)
	client.
		On("ListTrackedFiles", mock.Anything, testRepoPath).
		Return([]string{}, nil)

	report, err := testEngine(client).DetectDeadCode(context.Background(), testRepoPath)
	require.NoError(t, err)

	assert.Zero(t, report.TotalFiles)
	assert.Zero(t, report.DeadCodePercentage)
	assert.Empty(t, report.DeadFiles)
	assert.Empty(t, report.StaleFiles)
}

func TestDetectDeadCodeIgnoresScanLimit(t *testing.T) {
	engine := testEngine(deadCodeClient())
	engine.cfg.Tuning.FileScanLimit = 2

	report, err := engine.DetectDeadCode(context.Background(), testRepoPath)
	require.NoError(t, err)

	// The dead code pass walks the whole tree regardless of the analysis
	// scan cap.
	assert.Equal(t, 4, report.TotalFiles)
}
