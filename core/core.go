// Package core implements the aggregation engine: commit log parsing, the
// per-file analysis pass, scoring and the derived reports.
package core

import (
	"time"

	"github.com/relicdev/relic/internal/contract"
)

// Engine runs aggregation passes over a local working copy. It holds no
// per-run state; one engine serves any number of concurrent analyses.
type Engine struct {
	cfg   *contract.Config
	git   contract.GitClient
	cache contract.CacheManager

	// now is the clock. Tests pin it to get stable day arithmetic.
	now func() time.Time
}

// New creates an engine from validated configuration and its collaborators.
// The cache manager may be nil, which disables result caching entirely.
func New(cfg *contract.Config, git contract.GitClient, cache contract.CacheManager) *Engine {
	return &Engine{
		cfg:   cfg,
		git:   git,
		cache: cache,
		now:   time.Now,
	}
}
