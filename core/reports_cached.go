package core

import (
	"context"
	"fmt"

	"github.com/relicdev/relic/schema"
)

// Cached report entry points. Each wraps its computation with a keyed,
// TTL-bounded cache lookup; target is the repository identity (normalized
// URL or local path) that scopes the key. Cache failures fall through to
// recomputation silently.

// CachedChurnReport serves the churn report for the given window.
func (e *Engine) CachedChurnReport(ctx context.Context, repoPath, target string, days int) (*schema.ChurnReport, error) {
	store := e.reportStore()
	key := ReportCacheKey("churn", target, fmt.Sprintf("%d:%d", days, e.cfg.ReportLimit))

	if report := lookupCached[schema.ChurnReport](store, key); report != nil {
		return report, nil
	}
	report, err := e.CalculateChurn(ctx, repoPath, days)
	if err != nil {
		return nil, err
	}
	storeCached(store, key, report, schema.ReportTTL)
	return report, nil
}

// CachedDeadCodeReport serves the dead code classification.
func (e *Engine) CachedDeadCodeReport(ctx context.Context, repoPath, target string) (*schema.DeadCodeReport, error) {
	store := e.reportStore()
	key := ReportCacheKey("deadcode", target, "")

	if report := lookupCached[schema.DeadCodeReport](store, key); report != nil {
		return report, nil
	}
	report, err := e.DetectDeadCode(ctx, repoPath)
	if err != nil {
		return nil, err
	}
	storeCached(store, key, report, schema.ReportTTL)
	return report, nil
}

// CachedFileHistory serves the per-file commit history with diffs.
func (e *Engine) CachedFileHistory(ctx context.Context, repoPath, target, filePath string, limit int) ([]schema.FileHistoryEntry, error) {
	store := e.fileHistoryStore()
	key := ReportCacheKey("history", target, fmt.Sprintf("%s:%d", filePath, limit))

	if entries := lookupCached[[]schema.FileHistoryEntry](store, key); entries != nil {
		return *entries, nil
	}
	entries, err := e.GetFileHistory(ctx, repoPath, filePath, limit)
	if err != nil {
		return nil, err
	}
	storeCached(store, key, &entries, schema.FileHistoryTTL)
	return entries, nil
}
