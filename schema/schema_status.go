package schema

import "time"

// HandleState is the lifecycle state of a submitted analysis.
type HandleState string

// Handle states. A handle moves from processing to exactly one terminal state
// and is never reused afterwards.
const (
	StateProcessing HandleState = "processing"
	StateCompleted  HandleState = "completed"
	StateFailed     HandleState = "failed"
)

// AnalysisStatus is the externally visible view of one analysis handle.
type AnalysisStatus struct {
	ID          string              `json:"analysisId"`
	State       HandleState         `json:"status"`
	Progress    int                 `json:"progress"` // 0 while processing, 100 on completion
	StartedAt   time.Time           `json:"startedAt"`
	CompletedAt time.Time           `json:"completedAt,omitempty"`
	Result      *RepositoryAnalysis `json:"result,omitempty"`
	Narrative   string              `json:"narrative,omitempty"` // Narrator output or fallback text
	Error       string              `json:"error,omitempty"`
	ErrorKind   string              `json:"errorKind,omitempty"`
	Cached      bool                `json:"cached"` // True when the result was replayed from cache
}

// CacheStatus describes the state of one cache store.
type CacheStatus struct {
	Backend         string
	Connected       bool
	TotalEntries    int
	LiveEntries     int // Entries that have not yet passed their expiry
	OldestEntryTime time.Time
	LastEntryTime   time.Time
}
