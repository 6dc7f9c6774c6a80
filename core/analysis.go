package core

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/relicdev/relic/internal/contract"
	"github.com/relicdev/relic/schema"
)

// AnalyzeRepository runs the full aggregation over the working copy at
// repoPath and returns an immutable snapshot. The commit timeline runs first
// to rule out an empty history; the file pass and the contributor rollup
// then run concurrently. The rollup reads the full log on its own: the
// commit cap bounds only the timeline snapshot, never who counts as a
// contributor.
func (e *Engine) AnalyzeRepository(ctx context.Context, repoPath string, identity schema.RepositoryIdentity) (*schema.RepositoryAnalysis, error) {
	has, err := e.git.HasCommits(ctx, repoPath)
	if err != nil {
		return nil, contract.WrapError(contract.KindRepositoryAccess, "probing repository", err)
	}
	if !has {
		return nil, contract.NewError(contract.KindEmptyRepository, "repository has no commits to analyze")
	}

	out, err := e.git.CommitLog(ctx, repoPath, contract.LogOptions{MaxCount: e.cfg.Options.MaxCommits})
	if err != nil {
		return nil, contract.WrapError(contract.KindAggregation, "reading commit log", err)
	}
	commits := ParseCommitLog(out, e.cfg.Options.MaxCommits)
	if len(commits) == 0 {
		return nil, contract.NewError(contract.KindEmptyRepository, "repository has no commits to analyze")
	}

	var (
		files        []schema.FileRecord
		contributors []schema.ContributorRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var ferr error
		files, ferr = e.filePass(gctx, repoPath)
		return ferr
	})
	g.Go(func() error {
		full, rerr := e.git.CommitLog(gctx, repoPath, contract.LogOptions{})
		if rerr != nil {
			return rerr
		}
		contributors = rollupContributors(ParseCommitLog(full, 0))
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, contract.WrapError(contract.KindAggregation, "aggregating repository activity", err)
	}

	identity.AnalyzedAt = e.now()
	return &schema.RepositoryAnalysis{
		Repository:   identity,
		Commits:      commits,
		Files:        files,
		Contributors: contributors,
		Stats: schema.Stats{
			TotalCommits:      len(commits),
			TotalFiles:        len(files),
			TotalContributors: len(contributors),
			OldestCommit:      commits[len(commits)-1].Timestamp,
			NewestCommit:      commits[0].Timestamp,
		},
	}, nil
}

// rollupContributors folds the commit timeline into per-author records,
// keyed by email. Distinct emails stay distinct contributors even when the
// display names collide. The result is sorted by descending commit count,
// ties broken by email.
func rollupContributors(commits []schema.CommitRecord) []schema.ContributorRecord {
	byEmail := make(map[string]*schema.ContributorRecord)
	for _, c := range commits {
		rec, found := byEmail[c.AuthorEmail]
		if !found {
			// Commits arrive newest first, so the first sighting fixes
			// the display name and the last-active instant.
			rec = &schema.ContributorRecord{
				Name:          c.AuthorName,
				Email:         c.AuthorEmail,
				FirstCommitAt: c.Timestamp,
				LastActiveAt:  c.Timestamp,
			}
			byEmail[c.AuthorEmail] = rec
		}
		rec.CommitCount++
		rec.LinesAdded += c.Insertions
		rec.LinesDeleted += c.Deletions
		if c.Timestamp.Before(rec.FirstCommitAt) {
			rec.FirstCommitAt = c.Timestamp
		}
		if c.Timestamp.After(rec.LastActiveAt) {
			rec.LastActiveAt = c.Timestamp
		}
	}

	contributors := make([]schema.ContributorRecord, 0, len(byEmail))
	for _, rec := range byEmail {
		contributors = append(contributors, *rec)
	}
	sort.Slice(contributors, func(i, j int) bool {
		if contributors[i].CommitCount != contributors[j].CommitCount {
			return contributors[i].CommitCount > contributors[j].CommitCount
		}
		return contributors[i].Email < contributors[j].Email
	})
	return contributors
}
