package core

import (
	"context"
	"sort"

	"github.com/relicdev/relic/internal/contract"
	"github.com/relicdev/relic/schema"
)

// CalculateChurn builds the time-windowed churn report from a single
// repository-wide numstat pass. days is clamped to at least one. The
// most-changed list is ordered by descending total changes, ties broken by
// path, and capped at the configured report limit.
func (e *Engine) CalculateChurn(ctx context.Context, repoPath string, days int) (*schema.ChurnReport, error) {
	if days < 1 {
		days = 1
	}
	now := e.now()
	since := now.AddDate(0, 0, -days)

	out, err := e.git.NumstatLog(ctx, repoPath, since)
	if err != nil {
		return nil, contract.WrapError(contract.KindAggregation, "reading churn log", err)
	}
	agg := ParseNumstat(out)

	files := make([]schema.FileChurn, 0, len(agg.Files))
	for _, fc := range agg.Files {
		files = append(files, *fc)
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].TotalChanges != files[j].TotalChanges {
			return files[i].TotalChanges > files[j].TotalChanges
		}
		return files[i].Path < files[j].Path
	})
	if len(files) > e.cfg.ReportLimit {
		files = files[:e.cfg.ReportLimit]
	}

	return &schema.ChurnReport{
		Period: schema.ChurnPeriod{
			Days:      days,
			StartDate: since,
			EndDate:   now,
		},
		TotalCommits:     agg.TotalCommits,
		TotalAdditions:   agg.TotalAdditions,
		TotalDeletions:   agg.TotalDeletions,
		ChurnRate:        schema.Round2(float64(agg.TotalAdditions+agg.TotalDeletions) / float64(days)),
		MostChangedFiles: files,
	}, nil
}
