package core

import (
	"context"
	"fmt"

	"github.com/relicdev/relic/internal/contract"
	"github.com/relicdev/relic/schema"
)

// GetFileHistory returns the commit-by-commit history of one file, newest
// first, each entry carrying the diff of that commit when it can be
// retrieved. A path with no reachable history is a not-found condition.
// limit caps the number of entries when positive.
func (e *Engine) GetFileHistory(ctx context.Context, repoPath, filePath string, limit int) ([]schema.FileHistoryEntry, error) {
	out, err := e.git.CommitLog(ctx, repoPath, contract.LogOptions{FilePath: filePath, MaxCount: limit})
	if err != nil {
		return nil, contract.WrapError(contract.KindAggregation, "reading file history", err)
	}
	commits := ParseCommitLog(out, limit)
	if len(commits) == 0 {
		return nil, contract.NewError(contract.KindFileNotFound,
			fmt.Sprintf("no history found for %s", filePath))
	}

	entries := make([]schema.FileHistoryEntry, 0, len(commits))
	for _, c := range commits {
		// An empty diff is acceptable; shallow clones cannot always
		// reconstruct every referenced commit.
		diff, _ := e.git.ShowCommitDiff(ctx, repoPath, c.Hash, filePath)
		entries = append(entries, schema.FileHistoryEntry{
			Hash:      c.Hash,
			Author:    c.AuthorName,
			Email:     c.AuthorEmail,
			Timestamp: c.Timestamp,
			Message:   c.Message,
			Diff:      diff,
		})
	}
	return entries, nil
}
