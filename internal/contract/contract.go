// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/relicdev/relic/schema"
)

// LogOptions narrows a commit log query. The zero value means the full
// (bounded by the clone depth) history of the whole repository.
type LogOptions struct {
	FilePath string    // Restrict to commits touching this file
	MaxCount int       // Cap the number of entries (0 = no cap)
	Since    time.Time // Restrict to commits after this instant
}

// FileStat is the on-disk state of a tracked file at HEAD.
type FileStat struct {
	SizeBytes int64
	LineCount int
}

// GitClient defines the read-only operations the aggregation engine needs
// from a local working copy. This allows the core logic to be tested without
// a real git executable. Implementations must tolerate concurrent calls
// against the same checkout.
type GitClient interface {
	// Run executes a git command and returns the combined output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// ListTrackedFiles returns all tracked file paths relative to the
	// repository root. It fails when repoPath is not a repository root.
	ListTrackedFiles(ctx context.Context, repoPath string) ([]string, error)

	// CommitLog returns the raw commit log output, newest first, in the
	// shortstat framing parsed by core. An empty result is valid.
	CommitLog(ctx context.Context, repoPath string, opts LogOptions) ([]byte, error)

	// NumstatLog returns the raw per-file add/delete log output needed for
	// churn attribution, newest first.
	NumstatLog(ctx context.Context, repoPath string, since time.Time) ([]byte, error)

	// ShowCommitDiff returns the diff text of one file at one commit. A
	// retrieval failure yields an empty string and nil error: a missing diff
	// is tolerated by every caller, never fatal.
	ShowCommitDiff(ctx context.Context, repoPath, hash, filePath string) (string, error)

	// FileStat returns size and line count at HEAD. Stat failures yield a
	// zero-valued stat, because files referenced in history may no longer
	// exist on disk.
	FileStat(repoPath, filePath string) (FileStat, error)

	// HasCommits reports whether the repository has at least one commit.
	HasCommits(ctx context.Context, repoPath string) (bool, error)

	// Clone materializes a bounded-depth, single-branch, blob-filtered
	// working copy of url at dest. An empty branch clones the remote's
	// default branch.
	Clone(ctx context.Context, url, dest, branch string, depth int) error
}

// Store is a keyed blob store with per-entry TTL. All operations are
// best-effort: callers treat any error as a cache miss and fall through to
// recomputation.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// CacheManager hands out the TTL-classed stores of the result cache.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	AnalysisStore() Store
	ReportStore() Store
	FileHistoryStore() Store
	Close()
}

// Narrator turns a completed analysis into natural-language text. It must be
// treated as fallible and possibly absent; orchestration always has a
// deterministic fallback.
type Narrator interface {
	Narrate(ctx context.Context, analysis *schema.RepositoryAnalysis) (string, error)
}
