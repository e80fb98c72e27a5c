package graph

import (
	"fmt"
	"sort"

	"codex/internal/summary"
)

// Engine builds graph views from the summary store. Every build is a fresh
// fold over the store's current records; nothing is incrementally updated in
// place.
type Engine struct {
	store *summary.Store
}

// NewEngine creates an Engine over store.
func NewEngine(store *summary.Store) *Engine {
	return &Engine{store: store}
}

// index is the intermediate form shared by Build and Query: records keyed by
// normalized path plus the derived reverse edges.
type index struct {
	records    map[string]*summary.Record
	keys       []string // lexicographic
	dependents map[string][]string
}

// load reads every record and computes the reverse index. Records that fail
// to parse were already skipped by the store.
func (e *Engine) load() (*index, error) {
	records, err := e.store.All()
	if err != nil {
		return nil, fmt.Errorf("load summary records: %w", err)
	}

	idx := &index{
		records:    make(map[string]*summary.Record, len(records)),
		dependents: make(map[string][]string),
	}
	for _, rec := range records {
		key := summary.NormalizeKey(rec.SourceFile)
		if _, dup := idx.records[key]; dup {
			continue
		}
		idx.records[key] = rec
		idx.keys = append(idx.keys, key)
	}
	sort.Strings(idx.keys)

	// Reverse edges are recomputed from the full forward set on every
	// build, never hand-maintained.
	for _, from := range idx.keys {
		for _, dep := range idx.records[from].Summary.Dependencies.Internal {
			to := summary.NormalizeKey(dep.Path)
			idx.dependents[to] = append(idx.dependents[to], from)
		}
	}
	return idx, nil
}

// Build assembles the full dependency graph: one node per stored record, one
// depends_on edge per internal dependency. Nodes and edges are emitted in
// lexicographic key order.
func (e *Engine) Build() (*Graph, error) {
	idx, err := e.load()
	if err != nil {
		return nil, err
	}

	g := &Graph{}
	for _, key := range idx.keys {
		rec := idx.records[key]
		g.Nodes = append(g.Nodes, Node{ID: key, Purpose: rec.Summary.Purpose})
		for _, dep := range rec.Summary.Dependencies.Internal {
			g.Edges = append(g.Edges, Edge{
				From:  key,
				To:    summary.NormalizeKey(dep.Path),
				Type:  EdgeDependsOn,
				Usage: dep.Usage,
			})
		}
	}
	return g, nil
}

// Dependents returns the files that declare key as a dependency, from a
// fresh build of the reverse index.
func (e *Engine) Dependents(file string) ([]string, error) {
	idx, err := e.load()
	if err != nil {
		return nil, err
	}
	return idx.dependents[summary.NormalizeKey(file)], nil
}
