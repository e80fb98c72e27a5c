package summary

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// History is the slice of version-control state the staleness checker
// needs. *vcs.Repo satisfies it; tests substitute a stub.
type History interface {
	LastCommitTime(relPath string) (time.Time, bool)
}

// Checker decides whether stored summaries predate their source files, using
// git history as ground truth with a file-mtime fallback. Version-control
// failures are swallowed: staleness detection degrades to "cannot tell"
// rather than failing the query.
type Checker struct {
	store *Store
	repo  History
}

// NewChecker creates a Checker over store. repo may be nil when the
// workspace is not under version control; only the mtime fallback applies
// then.
func NewChecker(store *Store, repo History) *Checker {
	return &Checker{store: store, repo: repo}
}

// LastChangeTime returns the time of the file's most recent substantive
// change: the last commit touching it, falling back to the filesystem
// modification time for untracked files or absent repositories.
func (c *Checker) LastChangeTime(file string) (time.Time, bool) {
	key := NormalizeKey(file)
	if c.repo != nil {
		if ts, ok := c.repo.LastCommitTime(key); ok {
			return ts, true
		}
	}
	info, err := os.Stat(filepath.Join(c.store.Workspace(), filepath.FromSlash(key)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// SummaryTime returns the generation time of the stored summary, or
// ok=false when no record exists or its timestamp is unparseable.
func (c *Checker) SummaryTime(file string) (time.Time, bool) {
	return c.store.Get(file).GeneratedTime()
}

// IsStale reports whether the file's summary predates its last change.
// A missing summary is stale by definition. When the change time cannot be
// determined the summary is conservatively treated as fresh — staleness must
// be provable.
func (c *Checker) IsStale(file string) StalenessRecord {
	key := NormalizeKey(file)
	rec := StalenessRecord{File: key}

	genAt, ok := c.SummaryTime(key)
	if !ok {
		rec.Stale = true
		rec.Reason = "no summary exists"
		return rec
	}
	rec.GeneratedAt = &genAt

	changedAt, ok := c.LastChangeTime(key)
	if !ok {
		rec.Reason = "cannot determine modification time"
		return rec
	}
	rec.ChangedAt = &changedAt

	if changedAt.After(genAt) {
		rec.Stale = true
		rec.Reason = fmt.Sprintf("source changed at %s, summary generated at %s",
			changedAt.Format(time.RFC3339), genAt.Format(time.RFC3339))
	} else {
		rec.Reason = "summary is up to date"
	}
	return rec
}

// ScanWorkspace checks every stored summary and returns the stale ones,
// sorted by file path for deterministic output.
func (c *Checker) ScanWorkspace() ([]StalenessRecord, error) {
	entries, err := c.store.List()
	if err != nil {
		return nil, err
	}

	var stale []StalenessRecord
	seen := make(map[string]bool)
	for _, e := range entries {
		if e.File == "" || seen[e.File] {
			continue
		}
		seen[e.File] = true
		if rec := c.IsStale(e.File); rec.Stale {
			stale = append(stale, rec)
		}
	}
	sort.Slice(stale, func(i, j int) bool { return stale[i].File < stale[j].File })
	return stale, nil
}
