// Package iocache is the TTL-bounded result cache behind the analysis and
// report pipelines.
package iocache

import (
	"fmt"

	"github.com/relicdev/relic/internal/contract"
	"github.com/relicdev/relic/schema"
)

// Table names for the TTL-classed stores.
const (
	analysisTable    = "analysis_cache"
	reportTable      = "report_cache"
	fileHistoryTable = "file_history_cache"
)

// Manager hands out the TTL-classed stores. All stores share one backend;
// construction fails atomically, so a manager either has every store or
// none.
type Manager struct {
	analysis    contract.Store
	reports     contract.Store
	fileHistory contract.Store
}

var _ contract.CacheManager = &Manager{} // Compile-time check

// NewManager builds a cache manager for the given backend. MemoryBackend
// serves entries from process memory; NoneBackend returns a manager whose
// stores miss on every read and drop every write.
func NewManager(backend schema.DatabaseBackend, connStr string) (*Manager, error) {
	switch backend {
	case schema.MemoryBackend:
		return &Manager{
			analysis:    NewMemoryStore(),
			reports:     NewMemoryStore(),
			fileHistory: NewMemoryStore(),
		}, nil

	case schema.NoneBackend:
		return &Manager{
			analysis:    noopStore{},
			reports:     noopStore{},
			fileHistory: noopStore{},
		}, nil

	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend:
		analysis, err := NewSQLStore(analysisTable, backend, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize analysis cache: %w", err)
		}
		reports, err := NewSQLStore(reportTable, backend, connStr)
		if err != nil {
			_ = analysis.Close()
			return nil, fmt.Errorf("failed to initialize report cache: %w", err)
		}
		fileHistory, err := NewSQLStore(fileHistoryTable, backend, connStr)
		if err != nil {
			_ = analysis.Close()
			_ = reports.Close()
			return nil, fmt.Errorf("failed to initialize file history cache: %w", err)
		}
		return &Manager{analysis: analysis, reports: reports, fileHistory: fileHistory}, nil

	default:
		return nil, fmt.Errorf("unsupported cache backend: %s. Must be sqlite, mysql, postgresql, memory or none", backend)
	}
}

// AnalysisStore implements the CacheManager interface.
func (m *Manager) AnalysisStore() contract.Store { return m.analysis }

// ReportStore implements the CacheManager interface.
func (m *Manager) ReportStore() contract.Store { return m.reports }

// FileHistoryStore implements the CacheManager interface.
func (m *Manager) FileHistoryStore() contract.Store { return m.fileHistory }

// Close releases every store. Called on application shutdown.
func (m *Manager) Close() {
	_ = m.analysis.Close()
	_ = m.reports.Close()
	_ = m.fileHistory.Close()
}

// Stores returns the named stores for status and clear commands.
func (m *Manager) Stores() map[string]contract.Store {
	return map[string]contract.Store{
		analysisTable:    m.analysis,
		reportTable:      m.reports,
		fileHistoryTable: m.fileHistory,
	}
}
