package core

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/relicdev/relic/internal/acquire"
	"github.com/relicdev/relic/internal/contract"
	"github.com/relicdev/relic/schema"
)

// Orchestrator runs analyses asynchronously behind opaque handles. Submit
// returns immediately with a handle ID; the pipeline (acquire, aggregate,
// narrate, cache) runs on its own goroutine and resolves the handle to
// exactly one terminal state. The handle table is bounded: once it reaches
// the configured limit, the oldest handle is evicted on insert.
type Orchestrator struct {
	cfg      *contract.Config
	git      contract.GitClient
	cache    contract.CacheManager
	narrator contract.Narrator // primary, may be nil
	fallback contract.Narrator // deterministic, must not fail

	mu      sync.Mutex
	handles map[string]*schema.AnalysisStatus
	order   []string

	now func() time.Time
}

// NewOrchestrator wires an orchestrator from validated configuration and its
// collaborators. narrator may be nil; fallback is used whenever the primary
// is absent or fails.
func NewOrchestrator(cfg *contract.Config, git contract.GitClient, cache contract.CacheManager, narrator, fallback contract.Narrator) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		git:      git,
		cache:    cache,
		narrator: narrator,
		fallback: fallback,
		handles:  make(map[string]*schema.AnalysisStatus),
		now:      time.Now,
	}
}

// Submit starts an analysis of target (remote URL or local path) and returns
// the handle ID. A cache hit resolves the handle to completed before Submit
// returns, flagged as cached; otherwise the pipeline runs in the background.
func (o *Orchestrator) Submit(target, branch string, opts schema.AnalysisOptions) string {
	if contract.LooksLikeURL(target) {
		target = contract.NormalizeRepoURL(target)
	}
	if branch == "" {
		branch = o.cfg.Branch
	}
	if opts.MaxCommits <= 0 {
		opts.MaxCommits = o.cfg.Tuning.MaxCommits
	}

	id := uuid.NewString()
	status := &schema.AnalysisStatus{
		ID:        id,
		State:     schema.StateProcessing,
		StartedAt: o.now(),
	}
	o.insert(status)

	engine := o.engineFor(target, branch, opts)
	key := AnalysisCacheKey(target, branch, opts)

	if analysis := lookupCached[schema.RepositoryAnalysis](engine.analysisStore(), key); analysis != nil {
		complete := func(narrative string) {
			o.resolve(id, func(s *schema.AnalysisStatus) {
				s.State = schema.StateCompleted
				s.Progress = 100
				s.CompletedAt = o.now()
				s.Result = analysis
				s.Narrative = narrative
				s.Cached = true
			})
		}
		if opts.Narrate {
			// Narration may hit the network; Submit must not wait on it.
			go func() { complete(o.narrate(context.Background(), engine, key, analysis)) }()
		} else {
			complete("")
		}
		return id
	}

	go o.run(id, engine, key, target, branch, opts)
	return id
}

// Status returns a snapshot of the handle, or false for unknown or evicted
// IDs.
func (o *Orchestrator) Status(id string) (schema.AnalysisStatus, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	status, found := o.handles[id]
	if !found {
		return schema.AnalysisStatus{}, false
	}
	return *status, true
}

// run is the background pipeline behind one handle.
func (o *Orchestrator) run(id string, engine *Engine, key, target, branch string, opts schema.AnalysisOptions) {
	ctx := context.Background()

	repoPath := target
	identity := schema.RepositoryIdentity{
		URL:    target,
		Name:   contract.RepoNameFromURL(target),
		Branch: branch,
	}

	if contract.LooksLikeURL(target) {
		ws, err := acquire.Acquire(ctx, o.git, o.cfg, target, branch)
		if err != nil {
			o.fail(id, err)
			return
		}
		defer ws.Cleanup()
		repoPath = ws.Path
	}

	analysis, err := engine.AnalyzeRepository(ctx, repoPath, identity)
	if err != nil {
		o.fail(id, err)
		return
	}

	narrative := ""
	if opts.Narrate {
		narrative = o.narrate(ctx, engine, key, analysis)
	}

	storeCached(engine.analysisStore(), key, analysis, schema.AnalysisTTL)

	o.resolve(id, func(s *schema.AnalysisStatus) {
		s.State = schema.StateCompleted
		s.Progress = 100
		s.CompletedAt = o.now()
		s.Result = analysis
		s.Narrative = narrative
	})
}

// narrate produces the narrative text, falling back to the deterministic
// narrator when the primary is absent or fails. Primary output is cached
// under the request identity so repeated Narrate requests within the TTL skip
// the provider call. Narration never fails an analysis.
func (o *Orchestrator) narrate(ctx context.Context, engine *Engine, key string, analysis *schema.RepositoryAnalysis) string {
	store := engine.reportStore()
	narrativeKey := "narrative:" + key
	if cached := lookupCached[string](store, narrativeKey); cached != nil {
		return *cached
	}
	if o.narrator != nil {
		text, err := o.narrator.Narrate(ctx, analysis)
		if err == nil {
			storeCached(store, narrativeKey, &text, schema.NarrativeTTL)
			return text
		}
		contract.LogWarn("narrator failed, using fallback", err)
	}
	if o.fallback != nil {
		if text, err := o.fallback.Narrate(ctx, analysis); err == nil {
			return text
		}
	}
	return "Narration is unavailable for this analysis."
}

// engineFor derives a per-request engine so request options never mutate the
// shared configuration.
func (o *Orchestrator) engineFor(target, branch string, opts schema.AnalysisOptions) *Engine {
	cfg := o.cfg.CloneWithRepo(target, "", branch)
	cfg.Options = opts
	return New(cfg, o.git, o.cache)
}

func (o *Orchestrator) insert(status *schema.AnalysisStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cfg.HandleLimit > 0 && len(o.order) >= o.cfg.HandleLimit {
		oldest := o.order[0]
		o.order = o.order[1:]
		delete(o.handles, oldest)
	}
	o.handles[status.ID] = status
	o.order = append(o.order, status.ID)
}

func (o *Orchestrator) resolve(id string, mutate func(*schema.AnalysisStatus)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if status, found := o.handles[id]; found {
		mutate(status)
	}
}

func (o *Orchestrator) fail(id string, err error) {
	kind := contract.KindOf(err)
	o.resolve(id, func(s *schema.AnalysisStatus) {
		s.State = schema.StateFailed
		s.CompletedAt = o.now()
		s.Error = err.Error()
		s.ErrorKind = string(kind)
	})
}
