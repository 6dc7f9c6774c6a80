package core

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/relicdev/relic/internal/contract"
	"github.com/relicdev/relic/schema"
)

// AnalysisCacheKey derives the cache identity of an analysis request. The
// options are part of the identity: two requests with different options are
// distinct entries.
func AnalysisCacheKey(target, branch string, opts schema.AnalysisOptions) string {
	key := fmt.Sprintf("analysis:%s:%s:%d:%t",
		contract.NormalizeRepoURL(target), branch, opts.MaxCommits, opts.Narrate)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}

// ReportCacheKey derives the cache identity of a derived report. kind names
// the report family and param carries its window or path argument.
func ReportCacheKey(kind, target string, param string) string {
	key := fmt.Sprintf("%s:%s:%s", kind, contract.NormalizeRepoURL(target), param)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}

// lookupCached retrieves and decodes a cached value. Any store or decode
// failure reads as a miss; the cache never fails a request.
func lookupCached[T any](store contract.Store, key string) *T {
	if store == nil {
		return nil
	}
	data, err := store.Get(key)
	if err != nil {
		return nil
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil
	}
	return &value
}

// storeCached encodes and stores a value with the given TTL, best effort.
func storeCached[T any](store contract.Store, key string, value *T, ttl time.Duration) {
	if store == nil || value == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = store.Set(key, data, ttl)
}

// analysisStore returns the analysis store, or nil when caching is off.
func (e *Engine) analysisStore() contract.Store {
	if e.cache == nil {
		return nil
	}
	return e.cache.AnalysisStore()
}

// reportStore returns the report store, or nil when caching is off.
func (e *Engine) reportStore() contract.Store {
	if e.cache == nil {
		return nil
	}
	return e.cache.ReportStore()
}

// fileHistoryStore returns the file history store, or nil when caching is off.
func (e *Engine) fileHistoryStore() contract.Store {
	if e.cache == nil {
		return nil
	}
	return e.cache.FileHistoryStore()
}
