package schema

import "time"

// ChurnPeriod bounds the time window of a churn report.
type ChurnPeriod struct {
	Days      int       `json:"days"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// FileChurn is a per-file entry in a churn report.
type FileChurn struct {
	Path         string `json:"path"`
	Additions    int    `json:"additions"`
	Deletions    int    `json:"deletions"`
	CommitCount  int    `json:"commits"`
	TotalChanges int    `json:"totalChanges"` // Additions + Deletions
}

// ChurnReport is the on-demand, time-windowed churn view. MostChangedFiles is
// ordered by descending total changes and capped to the report limit.
type ChurnReport struct {
	Period           ChurnPeriod `json:"period"`
	TotalCommits     int         `json:"totalCommits"`
	TotalAdditions   int         `json:"totalAdditions"`
	TotalDeletions   int         `json:"totalDeletions"`
	ChurnRate        float64     `json:"churnRate"` // Changed lines per day, 2-decimal rounded
	MostChangedFiles []FileChurn `json:"mostChangedFiles"`
}

// InactiveFile is a file flagged by the dead code report.
type InactiveFile struct {
	Path          string    `json:"path"`
	LastModified  time.Time `json:"lastModified"`
	DaysSinceLast int       `json:"daysSinceLastCommit"`
	TotalCommits  int       `json:"totalCommits"`
}

// DeadCodeReport classifies tracked files by inactivity. A file appears in at
// most one of DeadFiles or StaleFiles; the dead check runs first.
type DeadCodeReport struct {
	TotalFiles         int            `json:"totalFiles"` // Files examined that have at least one commit
	DeadFiles          []InactiveFile `json:"deadFiles"`
	StaleFiles         []InactiveFile `json:"staleFiles"`
	DeadCodePercentage float64        `json:"deadCodePercentage"` // Dead / total * 100, 2-decimal rounded
	AnalyzedAt         time.Time      `json:"analyzedAt"`
}

// FileHistoryEntry is one commit in a single file's history, with an optional
// diff. Diff is empty when retrieval failed; that is tolerated, not an error.
type FileHistoryEntry struct {
	Hash      string    `json:"hash"`
	Author    string    `json:"author"`
	Email     string    `json:"email"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Diff      string    `json:"diff,omitempty"`
}
