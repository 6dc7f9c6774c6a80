package core

import (
	"context"
	"sync"

	"github.com/relicdev/relic/internal/contract"
	"github.com/relicdev/relic/schema"
)

// filePass derives per-file activity metrics over the tracked files, capped
// at Tuning.FileScanLimit. A worker pool walks one git log per file; files
// whose history cannot be read are logged and skipped, never fatal. Result
// order follows the tracked-file listing.
func (e *Engine) filePass(ctx context.Context, repoPath string) ([]schema.FileRecord, error) {
	paths, err := e.git.ListTrackedFiles(ctx, repoPath)
	if err != nil {
		return nil, err
	}
	if limit := e.cfg.Tuning.FileScanLimit; limit > 0 && len(paths) > limit {
		paths = paths[:limit]
	}

	type job struct {
		index int
		path  string
	}
	jobs := make(chan job)
	slots := make([]*schema.FileRecord, len(paths))

	var wg sync.WaitGroup
	for range e.cfg.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				rec, err := e.analyzeFile(ctx, repoPath, j.path)
				if err != nil {
					contract.LogWarn("analyzing file "+j.path, err)
					continue
				}
				slots[j.index] = rec
			}
		}()
	}
	for i, p := range paths {
		jobs <- job{index: i, path: p}
	}
	close(jobs)
	wg.Wait()

	records := make([]schema.FileRecord, 0, len(paths))
	for _, rec := range slots {
		if rec != nil {
			records = append(records, *rec)
		}
	}
	return records, nil
}

// analyzeFile computes the metrics of one tracked file. Files with no
// reachable history return nil without error and are dropped from the
// result.
func (e *Engine) analyzeFile(ctx context.Context, repoPath, path string) (*schema.FileRecord, error) {
	out, err := e.git.CommitLog(ctx, repoPath, contract.LogOptions{FilePath: path})
	if err != nil {
		return nil, err
	}
	commits := ParseCommitLog(out, 0)
	if len(commits) == 0 {
		return nil, nil
	}

	first := commits[len(commits)-1].Timestamp
	last := commits[0].Timestamp
	now := e.now()

	seen := make(map[string]struct{})
	contributors := make([]string, 0, 4)
	for _, c := range commits {
		if _, ok := seen[c.AuthorName]; ok {
			continue
		}
		seen[c.AuthorName] = struct{}{}
		contributors = append(contributors, c.AuthorName)
	}

	// Stat failures report zero size and lines; history can outlive the
	// file on disk.
	stat, _ := e.git.FileStat(repoPath, path)

	return &schema.FileRecord{
		Path:          path,
		Extension:     schema.ExtensionOf(path),
		LinesOfCode:   stat.LineCount,
		SizeBytes:     stat.SizeBytes,
		FirstCommitAt: first,
		LastModified:  last,
		CommitCount:   len(commits),
		ChurnRate:     ChurnRate(first, last, len(commits)),
		HealthScore:   HealthScore(e.cfg.Tuning, last, len(commits), now),
		IsDead:        IsDead(e.cfg.Tuning, last, now),
		Contributors:  contributors,
	}, nil
}
