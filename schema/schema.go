// Package schema has configs, models and shared constants for all parts of relic.
package schema

import "time"

// CommitRecord represents a single commit in the analyzed history.
// Records are immutable once parsed from the Git log.
type CommitRecord struct {
	Hash         string    `json:"hash"`         // Full commit hash
	AuthorName   string    `json:"author"`       // Display name of the author
	AuthorEmail  string    `json:"email"`        // Email of the author (contributor identity key)
	Timestamp    time.Time `json:"timestamp"`    // Author date of the commit
	Message      string    `json:"message"`      // Subject line of the commit message
	FilesChanged int       `json:"filesChanged"` // Number of files touched by the commit
	Insertions   int       `json:"insertions"`   // Lines added across all files
	Deletions    int       `json:"deletions"`    // Lines deleted across all files
}

// FileRecord holds the derived activity metrics for a single tracked file.
// A FileRecord is only emitted for files with at least one commit.
type FileRecord struct {
	Path          string    `json:"path"`          // Repository-rooted relative path
	Extension     string    `json:"extension"`     // File extension without the dot, or "unknown"
	LinesOfCode   int       `json:"linesOfCode"`   // Line count at HEAD (0 if the file is gone)
	SizeBytes     int64     `json:"sizeBytes"`     // Size at HEAD in bytes (0 if the file is gone)
	FirstCommitAt time.Time `json:"firstCommit"`   // Timestamp of the oldest commit touching the file
	LastModified  time.Time `json:"lastModified"`  // Timestamp of the newest commit touching the file
	CommitCount   int       `json:"commitCount"`   // Number of commits touching the file (>= 1)
	ChurnRate     float64   `json:"churnRate"`     // Commits per day of file lifetime, 2-decimal rounded
	HealthScore   int       `json:"healthScore"`   // Composite recency+activity score in [0, 100]
	IsDead        bool      `json:"isDead"`        // True when the file has had no commit within the dead threshold
	Contributors  []string  `json:"contributors"`  // Unique author names across the file's commits
}

// ContributorRecord aggregates per-author activity across the full commit log.
// Identity is keyed by email: distinct emails are distinct contributors even
// when display names collide.
type ContributorRecord struct {
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	CommitCount   int       `json:"commits"`
	LinesAdded    int       `json:"linesAdded"`
	LinesDeleted  int       `json:"linesDeleted"`
	FirstCommitAt time.Time `json:"firstCommit"`
	LastActiveAt  time.Time `json:"lastActive"`
}

// RepositoryIdentity names the repository snapshot an analysis belongs to.
type RepositoryIdentity struct {
	URL        string    `json:"url"`  // Normalized URL, or local path for on-disk repos
	Name       string    `json:"name"` // Short repository name derived from the URL
	Branch     string    `json:"branch"`
	AnalyzedAt time.Time `json:"analyzedAt"`
}

// Stats summarizes an analysis result.
type Stats struct {
	TotalCommits      int       `json:"totalCommits"`
	TotalFiles        int       `json:"totalFiles"`
	TotalContributors int       `json:"totalContributors"`
	OldestCommit      time.Time `json:"oldestCommit"`
	NewestCommit      time.Time `json:"newestCommit"`
}

// RepositoryAnalysis is the immutable top-level snapshot produced by one
// aggregation run. Commits are ordered newest first; this ordering is
// load-bearing because Stats derives its oldest/newest timestamps from the
// last/first elements.
type RepositoryAnalysis struct {
	Repository   RepositoryIdentity  `json:"repository"`
	Commits      []CommitRecord      `json:"commits"`
	Files        []FileRecord        `json:"files"`
	Contributors []ContributorRecord `json:"contributors"` // Sorted by descending commit count
	Stats        Stats               `json:"stats"`
}
