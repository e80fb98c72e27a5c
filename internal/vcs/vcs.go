// Package vcs answers git questions about a workspace — current branch,
// current commit, last change time for a file — by shelling out to git.
// Every failure (no repository, untracked file, git missing) degrades to a
// "not available" answer rather than an error, so callers can always fall
// back to filesystem state.
package vcs

import (
	"context"
	"os/exec"
	"regexp"
	"strings"
	"sync"
	"time"
)

const queryTimeout = 5 * time.Second

// mainBranches are the branch names that map to the canonical, unsuffixed
// artifact pair. Matching is case-insensitive.
var mainBranches = map[string]bool{
	"main":    true,
	"master":  true,
	"develop": true,
	"dev":     true,
}

// Repo wraps git queries against a single workspace root. The branch and
// head lookups are memoized for the life of the process: a serving process
// handles one checkout, and re-running rev-parse per request would dominate
// the cost of a cached summary read.
type Repo struct {
	root string

	mu         sync.Mutex
	branch     string
	branchOK   bool
	branchDone bool
	head       string
	headOK     bool
	headDone   bool
}

// New creates a Repo for the given workspace root.
func New(root string) *Repo {
	return &Repo{root: root}
}

// Root returns the workspace root this repo was opened on.
func (r *Repo) Root() string {
	return r.root
}

// Branch returns the current branch name, or ok=false when the workspace is
// not under version control (or git is unavailable).
func (r *Repo) Branch() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.branchDone {
		r.branch, r.branchOK = r.run("rev-parse", "--abbrev-ref", "HEAD")
		r.branchDone = true
	}
	return r.branch, r.branchOK
}

// Head returns the short hash of the current commit, or ok=false.
func (r *Repo) Head() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.headDone {
		r.head, r.headOK = r.run("rev-parse", "--short", "HEAD")
		r.headDone = true
	}
	return r.head, r.headOK
}

// LastCommitTime returns the committer timestamp of the most recent commit
// touching relPath, or ok=false when the file has no history.
func (r *Repo) LastCommitTime(relPath string) (time.Time, bool) {
	out, ok := r.run("log", "-1", "--format=%cI", "--", relPath)
	if !ok || out == "" {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, out)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// run executes a git command in the repo root and returns its trimmed
// stdout. Any failure maps to ok=false.
func (r *Repo) run(args ...string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.root
	out, err := cmd.Output()
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(out)), true
}

// IsMainBranch reports whether name is one of the branches stored without a
// filename suffix.
func IsMainBranch(name string) bool {
	return mainBranches[strings.ToLower(name)]
}

var unsafeBranchChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// SanitizeBranch converts a branch name into a filename-safe suffix: any run
// of characters outside [A-Za-z0-9_-] collapses to a single underscore, and
// the result is lowercased.
func SanitizeBranch(name string) string {
	return strings.ToLower(unsafeBranchChars.ReplaceAllString(name, "_"))
}
