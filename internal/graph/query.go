package graph

import (
	"fmt"
	"path"
	"strings"

	"codex/internal/summary"
)

// sampleKeys bounds the diagnostic emitted on a failed lookup.
const sampleKeys = 10

// Query locates the entry for one file and returns its single-node view:
// the file's exports and dependencies plus one depends_on edge per internal
// dependency and one used_by edge per dependent.
//
// Resolution runs in tiers: exact key match after normalization, then a
// path-suffix match, then a match on the filename alone. Keys are considered
// in lexicographic order within a tier, so resolution is deterministic
// regardless of directory traversal order. A miss returns a view whose
// Diagnostic lists a sample of available keys.
func (e *Engine) Query(file string) (*FileView, error) {
	idx, err := e.load()
	if err != nil {
		return nil, err
	}

	want := summary.NormalizeKey(file)
	key, tier := resolve(idx, want)
	if key == "" {
		return &FileView{
			File:       want,
			Diagnostic: missDiagnostic(want, idx.keys),
		}, nil
	}

	rec := idx.records[key]
	view := &FileView{
		File:       key,
		Purpose:    rec.Summary.Purpose,
		Exports:    rec.Summary.PublicAPI,
		DependsOn:  rec.Summary.Dependencies.Internal,
		External:   rec.Summary.Dependencies.External,
		Dependents: idx.dependents[key],
		MatchTier:  tier,
	}
	for _, dep := range rec.Summary.Dependencies.Internal {
		view.Edges = append(view.Edges, Edge{
			From:  key,
			To:    summary.NormalizeKey(dep.Path),
			Type:  EdgeDependsOn,
			Usage: dep.Usage,
		})
	}
	for _, from := range idx.dependents[key] {
		view.Edges = append(view.Edges, Edge{
			From: from,
			To:   key,
			Type: EdgeUsedBy,
		})
	}
	return view, nil
}

// resolve finds the stored key for want, returning the key and the tier that
// matched.
func resolve(idx *index, want string) (key, tier string) {
	if _, ok := idx.records[want]; ok {
		return want, MatchExact
	}

	// Suffix tier: stored keys ending in the query, or containing it.
	for _, k := range idx.keys {
		if strings.HasSuffix(k, "/"+want) || strings.Contains(k, want) {
			return k, MatchSuffix
		}
	}

	// Filename tier: final path segment alone.
	base := path.Base(want)
	for _, k := range idx.keys {
		if path.Base(k) == base {
			return k, MatchFilename
		}
	}
	return "", ""
}

func missDiagnostic(want string, keys []string) string {
	if len(keys) == 0 {
		return fmt.Sprintf("no entry for %q: the store is empty — generate summaries first", want)
	}
	sample := keys
	if len(sample) > sampleKeys {
		sample = sample[:sampleKeys]
	}
	return fmt.Sprintf("no entry for %q; available keys include: %s", want, strings.Join(sample, ", "))
}
