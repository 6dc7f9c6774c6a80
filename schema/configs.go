package schema

import "time"

// DatabaseBackend identifies the storage engine behind a cache store.
type DatabaseBackend string

// Supported cache backends.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	MemoryBackend     DatabaseBackend = "memory"
	NoneBackend       DatabaseBackend = "none"
)

// OutputMode identifies an output format for CLI rendering.
type OutputMode string

// Supported output modes.
const (
	TextOut    OutputMode = "text"
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// AnalysisOptions are the per-request knobs of an analysis run. They are part
// of the cache key identity: two requests with different options are distinct.
type AnalysisOptions struct {
	MaxCommits int  `json:"maxCommits"` // Commit timeline cap (default 1000)
	Narrate    bool `json:"narrate"`    // Invoke the narrator over the completed result
}

// Tuning holds the product-tuning constants of the aggregation engine. The
// values have no derivation beyond observed defaults, so they are carried as
// configuration rather than hardwired numbers.
type Tuning struct {
	MaxCommits        int     // Commit timeline cap per analysis
	FileScanLimit     int     // File analysis pass cap (dead code report ignores this)
	CloneDepth        int     // Shallow clone depth; history beyond it undercounts commit totals
	DeadAfterDays     int     // No commit within this window means dead
	StaleAfterDays    int     // Inactivity floor of the stale classification
	StaleMaxCommits   int     // Commit-count ceiling of the stale classification (exclusive)
	RecencyDecay      float64 // Days-per-point divisor of the recency half of the health score
	ActivityPerCommit int     // Points per commit for the activity half of the health score
}

// DefaultTuning returns the stock tuning constants.
func DefaultTuning() Tuning {
	return Tuning{
		MaxCommits:        1000,
		FileScanLimit:     100,
		CloneDepth:        50,
		DeadAfterDays:     180,
		StaleAfterDays:    90,
		StaleMaxCommits:   3,
		RecencyDecay:      3.65,
		ActivityPerCommit: 2,
	}
}

// DefaultAnalysisOptions returns the stock per-request options.
func DefaultAnalysisOptions() AnalysisOptions {
	return AnalysisOptions{MaxCommits: DefaultTuning().MaxCommits, Narrate: false}
}

// Cache TTL classes. Full analyses and reports have distinct lifetimes; all
// of them are advisory only.
const (
	AnalysisTTL    = 30 * time.Minute
	FileHistoryTTL = 10 * time.Minute
	ReportTTL      = 30 * time.Minute
	NarrativeTTL   = time.Hour
)
