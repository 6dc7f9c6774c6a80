package core

import (
	"math"
	"time"

	"github.com/relicdev/relic/schema"
)

// HealthScore blends recency and activity into a [0, 100] integer. The
// recency half starts at 50 and decays by one point per RecencyDecay days of
// silence; the activity half grants ActivityPerCommit points per commit,
// capped at 50.
func HealthScore(t schema.Tuning, lastCommit time.Time, commitCount int, now time.Time) int {
	daysSince := now.Sub(lastCommit).Hours() / 24

	recency := 50 - daysSince/t.RecencyDecay
	if recency < 0 {
		recency = 0
	}

	activity := float64(commitCount * t.ActivityPerCommit)
	if activity > 50 {
		activity = 50
	}

	score := recency + activity
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}
	return int(math.Round(score))
}

// ChurnRate is commits per day of file lifetime, measured from the first
// commit to the last and floored at one day, 2-decimal rounded. Lifetime
// ends at the last commit, not the analysis instant, so a long-quiet file
// keeps the rate its active span earned.
func ChurnRate(firstCommit, lastCommit time.Time, commitCount int) float64 {
	return schema.Round2(float64(commitCount) / schema.FileAgeDays(firstCommit, lastCommit))
}

// IsDead reports whether the file's last commit falls outside the dead
// window.
func IsDead(t schema.Tuning, lastCommit time.Time, now time.Time) bool {
	return schema.DaysBetween(lastCommit, now) > t.DeadAfterDays
}

// IsStale reports whether a live file is barely-touched and quiet: fewer
// than StaleMaxCommits commits and no activity inside the stale window.
// Callers must check IsDead first; the two classes are exclusive.
func IsStale(t schema.Tuning, lastCommit time.Time, commitCount int, now time.Time) bool {
	return commitCount < t.StaleMaxCommits && schema.DaysBetween(lastCommit, now) > t.StaleAfterDays
}
