package summary

import "time"

// SchemaVersion is written into every structured artifact. Readers reject
// records with a newer version rather than guessing at unknown shapes.
const SchemaVersion = 1

// Record is one persisted summary: the structured artifact plus the rendered
// markdown that is generated alongside it. The two are written and read as a
// pair; Markdown is merged from the sibling .md artifact and is never stored
// inside the JSON.
type Record struct {
	SourceFile    string  `json:"sourceFile"`
	GeneratedAt   string  `json:"generatedAt"` // ISO-8601
	GitBranch     string  `json:"gitBranch,omitempty"`
	GitCommit     string  `json:"gitCommit,omitempty"`
	SchemaVersion int     `json:"schemaVersion"`
	Summary       Content `json:"summary"`

	Markdown string `json:"markdown,omitempty"`
}

// Content is the semantic payload of a summary.
type Content struct {
	Purpose       string       `json:"purpose"`
	KeyComponents []Component  `json:"keyComponents,omitempty"`
	PublicAPI     []APIEntry   `json:"publicAPI,omitempty"`
	Dependencies  Dependencies `json:"dependencies"`
	Notes         string       `json:"notes,omitempty"`
}

// Component is a named piece of a file (class, function, type) with a short
// description.
type Component struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// APIEntry describes one entry in a file's public surface.
type APIEntry struct {
	Signature   string `json:"signature"`
	Description string `json:"description,omitempty"`
}

// Dependencies splits a file's dependency set into workspace-internal paths
// and external package names.
type Dependencies struct {
	Internal []InternalDep `json:"internal,omitempty"`
	External []ExternalDep `json:"external,omitempty"`
}

// InternalDep is a dependency on another workspace file. Path is a
// workspace-relative forward-slash path, usable directly as a store key.
type InternalDep struct {
	Path  string `json:"path"`
	Usage string `json:"usage,omitempty"`
	Lines []int  `json:"lines,omitempty"`
}

// ExternalDep is a dependency on an external package or module.
type ExternalDep struct {
	Name  string `json:"name"`
	Usage string `json:"usage,omitempty"`
}

// GeneratedTime parses the record's generation timestamp.
func (r *Record) GeneratedTime() (time.Time, bool) {
	if r == nil || r.GeneratedAt == "" {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, r.GeneratedAt)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// ListEntry is the metadata returned by Store.List for one record.
type ListEntry struct {
	File        string `json:"file"`
	GeneratedAt string `json:"generatedAt,omitempty"`
}

// StalenessRecord is the result of one staleness check. It is derived on
// every query, never persisted.
type StalenessRecord struct {
	File        string     `json:"file"`
	GeneratedAt *time.Time `json:"generatedAt,omitempty"`
	ChangedAt   *time.Time `json:"changedAt,omitempty"`
	Stale       bool       `json:"stale"`
	Reason      string     `json:"reason"`
}
