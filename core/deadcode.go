package core

import (
	"context"
	"sort"
	"sync"

	"github.com/relicdev/relic/internal/contract"
	"github.com/relicdev/relic/schema"
)

// DetectDeadCode classifies every tracked file by inactivity. Unlike the
// analysis file pass this walks the full file listing with no scan cap, so
// the percentage reflects the whole tree. A file lands in at most one
// bucket; the dead check runs first.
func (e *Engine) DetectDeadCode(ctx context.Context, repoPath string) (*schema.DeadCodeReport, error) {
	paths, err := e.git.ListTrackedFiles(ctx, repoPath)
	if err != nil {
		return nil, err
	}
	now := e.now()

	type activity struct {
		path         string
		lastModified schema.InactiveFile
		ok           bool
	}
	jobs := make(chan int)
	results := make([]activity, len(paths))

	var wg sync.WaitGroup
	for range e.cfg.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				path := paths[i]
				out, err := e.git.CommitLog(ctx, repoPath, contract.LogOptions{FilePath: path})
				if err != nil {
					contract.LogWarn("reading history of "+path, err)
					continue
				}
				commits := ParseCommitLog(out, 0)
				if len(commits) == 0 {
					continue
				}
				last := commits[0].Timestamp
				results[i] = activity{
					path: path,
					lastModified: schema.InactiveFile{
						Path:          path,
						LastModified:  last,
						DaysSinceLast: schema.DaysBetween(last, now),
						TotalCommits:  len(commits),
					},
					ok: true,
				}
			}
		}()
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	report := &schema.DeadCodeReport{AnalyzedAt: now}
	tuning := e.cfg.Tuning
	for _, res := range results {
		if !res.ok {
			continue
		}
		report.TotalFiles++
		entry := res.lastModified
		if entry.DaysSinceLast > tuning.DeadAfterDays {
			report.DeadFiles = append(report.DeadFiles, entry)
			continue
		}
		if entry.TotalCommits < tuning.StaleMaxCommits && entry.DaysSinceLast > tuning.StaleAfterDays {
			report.StaleFiles = append(report.StaleFiles, entry)
		}
	}

	byQuietest := func(entries []schema.InactiveFile) {
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].DaysSinceLast != entries[j].DaysSinceLast {
				return entries[i].DaysSinceLast > entries[j].DaysSinceLast
			}
			return entries[i].Path < entries[j].Path
		})
	}
	byQuietest(report.DeadFiles)
	byQuietest(report.StaleFiles)

	if report.TotalFiles > 0 {
		report.DeadCodePercentage = schema.Round2(float64(len(report.DeadFiles)) / float64(report.TotalFiles) * 100)
	}
	return report, nil
}
