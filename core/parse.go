package core

import (
	"strconv"
	"strings"
	"time"

	"github.com/relicdev/relic/schema"
)

// commitHeaderPrefix frames commit headers in the raw log output.
const commitHeaderPrefix = "--"

// ParseCommitLog parses the shortstat-framed commit log output into records,
// newest first. Each commit is a '--hash|author|email|date|subject' header
// line followed by an optional shortstat summary line. Malformed headers and
// unparseable dates drop the commit rather than failing the whole log.
// maxCommits caps the result when positive.
func ParseCommitLog(out []byte, maxCommits int) []schema.CommitRecord {
	lines := strings.Split(string(out), "\n")
	commits := make([]schema.CommitRecord, 0, len(lines)/2)

	var current *schema.CommitRecord
	for _, l := range lines {
		if strings.HasPrefix(l, commitHeaderPrefix) {
			if current != nil {
				commits = append(commits, *current)
				if maxCommits > 0 && len(commits) >= maxCommits {
					return commits
				}
			}
			current = parseCommitHeader(l[len(commitHeaderPrefix):])
			continue
		}
		if current == nil || strings.TrimSpace(l) == "" {
			continue
		}
		if files, ins, del, ok := parseShortStat(l); ok {
			current.FilesChanged = files
			current.Insertions = ins
			current.Deletions = del
		}
	}
	if current != nil && (maxCommits <= 0 || len(commits) < maxCommits) {
		commits = append(commits, *current)
	}
	return commits
}

// parseCommitHeader parses 'hash|author|email|date|subject'. The subject is
// the remainder, so pipes inside commit messages survive.
func parseCommitHeader(header string) *schema.CommitRecord {
	parts := strings.SplitN(header, "|", 5)
	if len(parts) < 5 {
		return nil
	}
	ts, err := time.Parse(time.RFC3339, parts[3])
	if err != nil {
		return nil
	}
	return &schema.CommitRecord{
		Hash:        parts[0],
		AuthorName:  parts[1],
		AuthorEmail: parts[2],
		Timestamp:   ts,
		Message:     parts[4],
	}
}

// parseShortStat parses a ' N files changed, N insertions(+), N deletions(-)'
// summary line. Any of the three segments may be absent.
func parseShortStat(line string) (files, insertions, deletions int, ok bool) {
	if !strings.Contains(line, "changed") {
		return 0, 0, 0, false
	}
	for _, segment := range strings.Split(line, ",") {
		fields := strings.Fields(segment)
		if len(fields) < 2 {
			continue
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		switch {
		case strings.HasPrefix(fields[1], "file"):
			files = n
		case strings.HasPrefix(fields[1], "insertion"):
			insertions = n
		case strings.HasPrefix(fields[1], "deletion"):
			deletions = n
		}
	}
	return files, insertions, deletions, true
}

// NumstatAggregate is the rollup of a numstat log pass.
type NumstatAggregate struct {
	TotalCommits   int
	TotalAdditions int
	TotalDeletions int
	Files          map[string]*schema.FileChurn
}

// ParseNumstat aggregates a '--hash|author|email|date' framed numstat log into
// per-file add/delete totals. Binary file markers ('-') count as zero lines.
func ParseNumstat(out []byte) *NumstatAggregate {
	agg := &NumstatAggregate{Files: make(map[string]*schema.FileChurn)}

	for _, l := range strings.Split(string(out), "\n") {
		if strings.HasPrefix(l, commitHeaderPrefix) {
			agg.TotalCommits++
			continue
		}
		if strings.TrimSpace(l) == "" {
			continue
		}
		parts := strings.SplitN(l, "\t", 3)
		if len(parts) < 3 {
			continue
		}
		add, del := 0, 0
		if parts[0] != "-" {
			add, _ = strconv.Atoi(parts[0])
		}
		if parts[1] != "-" {
			del, _ = strconv.Atoi(parts[1])
		}
		path := parts[2]

		fc, found := agg.Files[path]
		if !found {
			fc = &schema.FileChurn{Path: path}
			agg.Files[path] = fc
		}
		fc.Additions += add
		fc.Deletions += del
		fc.CommitCount++
		fc.TotalChanges += add + del

		agg.TotalAdditions += add
		agg.TotalDeletions += del
	}
	return agg
}
