package summary

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codex/internal/vcs"
)

// Branches is the slice of version-control state the store needs for
// branch-aware path selection. *vcs.Repo satisfies it; tests substitute a
// stub.
type Branches interface {
	Branch() (string, bool)
	Head() (string, bool)
}

// Store persists summary records under <workspace>/docs/codebase, one
// artifact pair per source file. On a non-main branch each pair carries a
// sanitized branch suffix, and reads fall back to the canonical pair when
// the branch-specific one does not exist yet.
//
// The store does no locking of its own: the writer is the analysis pipeline,
// which is invoked serially per file. Concurrent writers to the same
// (file, branch) pair are last-writer-wins.
type Store struct {
	workspace string
	root      string
	repo      Branches
}

// NewStore creates a store rooted at the given workspace. repo may be nil
// when the workspace is not under version control.
func NewStore(workspace string, repo Branches) *Store {
	return &Store{
		workspace: workspace,
		root:      filepath.Join(workspace, filepath.FromSlash(StoreDir)),
		repo:      repo,
	}
}

// Workspace returns the workspace root.
func (s *Store) Workspace() string {
	return s.workspace
}

// Root returns the on-disk store root.
func (s *Store) Root() string {
	return s.root
}

// branchSuffix resolves the filename suffix for the current branch: empty
// for main branches or when branch resolution fails.
func (s *Store) branchSuffix() string {
	if s.repo == nil {
		return ""
	}
	branch, ok := s.repo.Branch()
	if !ok || vcs.IsMainBranch(branch) {
		return ""
	}
	return vcs.SanitizeBranch(branch)
}

// Get returns the record for a workspace-relative file, or nil when no
// readable pair exists. On a non-main branch the branch-specific pair is
// tried first, then the canonical one. A record only counts when both
// artifacts read successfully; corruption is treated as absent.
func (s *Store) Get(file string) *Record {
	key := NormalizeKey(file)
	suffix := s.branchSuffix()

	if rec := s.readPair(key, suffix); rec != nil {
		return rec
	}
	if suffix != "" {
		return s.readPair(key, "")
	}
	return nil
}

// readPair reads and merges one artifact pair. Any failure returns nil.
func (s *Store) readPair(key, suffix string) *Record {
	jsonPath, mdPath := artifactPair(s.root, key, suffix)

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil
	}
	md, err := os.ReadFile(mdPath)
	if err != nil {
		return nil
	}

	rec := decodeRecord(data)
	if rec == nil {
		return nil
	}
	rec.Markdown = string(md)
	return rec
}

// decodeRecord parses a structured artifact, rejecting unrecognized shapes.
func decodeRecord(data []byte) *Record {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil
	}
	if rec.SourceFile == "" || rec.SchemaVersion > SchemaVersion {
		return nil
	}
	return &rec
}

// Save writes the artifact pair for a workspace-relative file at the path
// selected by the current branch. Both artifacts are written to temporary
// files and renamed into place so a failure cannot leave only one of the
// pair updated.
func (s *Store) Save(file string, rec *Record) error {
	key := NormalizeKey(file)

	rec.SourceFile = key
	rec.SchemaVersion = SchemaVersion
	if rec.GeneratedAt == "" {
		// Sub-second precision matters: a source change in the same second
		// as generation must still compare strictly after it.
		rec.GeneratedAt = time.Now().Format(time.RFC3339Nano)
	}
	if s.repo != nil {
		if branch, ok := s.repo.Branch(); ok {
			rec.GitBranch = branch
		}
		if head, ok := s.repo.Head(); ok {
			rec.GitCommit = head
		}
	}

	jsonPath, mdPath := artifactPair(s.root, key, s.branchSuffix())
	if err := os.MkdirAll(filepath.Dir(jsonPath), 0o755); err != nil {
		return fmt.Errorf("create summary directory: %w", err)
	}

	// The markdown lives only in the .md artifact.
	onDisk := *rec
	onDisk.Markdown = ""
	data, err := json.MarshalIndent(&onDisk, "", "  ")
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}

	jsonTmp := jsonPath + ".tmp"
	mdTmp := mdPath + ".tmp"
	if err := os.WriteFile(jsonTmp, data, 0o644); err != nil {
		return fmt.Errorf("write summary data: %w", err)
	}
	if err := os.WriteFile(mdTmp, []byte(rec.Markdown), 0o644); err != nil {
		os.Remove(jsonTmp)
		return fmt.Errorf("write summary text: %w", err)
	}
	if err := os.Rename(jsonTmp, jsonPath); err != nil {
		os.Remove(jsonTmp)
		os.Remove(mdTmp)
		return fmt.Errorf("commit summary data: %w", err)
	}
	if err := os.Rename(mdTmp, mdPath); err != nil {
		os.Remove(mdTmp)
		return fmt.Errorf("commit summary text: %w", err)
	}
	return nil
}

// List enumerates every structured artifact under the store root and returns
// the metadata of those that parse. Unparseable artifacts are skipped, never
// fatal.
func (s *Store) List() ([]ListEntry, error) {
	var entries []ListEntry
	err := s.walkArtifacts(func(jsonPath string, data []byte) {
		rec := decodeRecord(data)
		if rec == nil {
			return
		}
		entries = append(entries, ListEntry{File: rec.SourceFile, GeneratedAt: rec.GeneratedAt})
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// All loads every readable record under the store root, one per source file.
// When both a canonical and a branch-suffixed artifact exist for the same
// file, the record whose gitBranch matches the current branch wins;
// otherwise the first in walk order (lexicographic) is kept.
func (s *Store) All() ([]*Record, error) {
	currentBranch := ""
	if s.repo != nil {
		if b, ok := s.repo.Branch(); ok {
			currentBranch = b
		}
	}

	byFile := make(map[string]*Record)
	var order []string
	err := s.walkArtifacts(func(jsonPath string, data []byte) {
		rec := decodeRecord(data)
		if rec == nil {
			return
		}
		existing, ok := byFile[rec.SourceFile]
		if !ok {
			byFile[rec.SourceFile] = rec
			order = append(order, rec.SourceFile)
			return
		}
		if currentBranch != "" && rec.GitBranch == currentBranch && existing.GitBranch != currentBranch {
			byFile[rec.SourceFile] = rec
		}
	})
	if err != nil {
		return nil, err
	}

	records := make([]*Record, 0, len(order))
	for _, file := range order {
		records = append(records, byFile[file])
	}
	return records, nil
}

// walkArtifacts calls fn with the contents of every .json artifact under the
// store root. An empty or missing store yields no calls and no error; only a
// broken walk (unreadable root with entries) surfaces.
func (s *Store) walkArtifacts(fn func(jsonPath string, data []byte)) error {
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries, keep walking
		}
		if d.IsDir() || !strings.HasSuffix(p, ".json") {
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return nil
		}
		fn(p, data)
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("walk summary store: %w", err)
	}
	return nil
}
