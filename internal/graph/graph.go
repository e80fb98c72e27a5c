// Package graph materializes the workspace dependency graph from the
// summary store's current contents. Forward edges come straight from each
// record's internal dependency set; reverse edges (dependents) are derived
// during the build and never stored, so the two can not drift apart.
package graph

import "codex/internal/summary"

// Node is one source file in the graph.
type Node struct {
	ID      string `json:"id"`
	Purpose string `json:"purpose,omitempty"`
}

// Edge is one directed dependency relationship.
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Type  string `json:"type"` // "depends_on" or "used_by"
	Usage string `json:"usage,omitempty"`
}

const (
	EdgeDependsOn = "depends_on"
	EdgeUsedBy    = "used_by"
)

// Graph is the full dependency graph of the workspace.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Match tiers for fuzzy lookup, strongest first.
const (
	MatchExact    = "exact"
	MatchSuffix   = "suffix"
	MatchFilename = "filename"
)

// FileView is the single-node view returned by Query: the file's own
// declared surface plus its resolved relationships.
type FileView struct {
	File       string                 `json:"file"`
	Purpose    string                 `json:"purpose,omitempty"`
	Exports    []summary.APIEntry     `json:"exports,omitempty"`
	DependsOn  []summary.InternalDep  `json:"dependsOn,omitempty"`
	External   []summary.ExternalDep  `json:"external,omitempty"`
	Dependents []string               `json:"dependents,omitempty"`
	Edges      []Edge                 `json:"edges,omitempty"`

	// MatchTier records how the file key was resolved: exact, suffix, or
	// filename.
	MatchTier string `json:"matchTier,omitempty"`

	// Diagnostic is set instead of the view fields when no entry matched,
	// listing a sample of available keys.
	Diagnostic string `json:"diagnostic,omitempty"`
}

// Found reports whether the query resolved to a stored file.
func (v *FileView) Found() bool {
	return v.Diagnostic == ""
}
