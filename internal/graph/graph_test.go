package graph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codex/internal/summary"
)

func save(t *testing.T, s *summary.Store, file string, deps ...string) {
	t.Helper()
	rec := &summary.Record{
		Summary: summary.Content{
			Purpose:   "purpose of " + file,
			PublicAPI: []summary.APIEntry{{Signature: "export default " + file}},
		},
		Markdown: "# " + file + "\n",
	}
	for _, d := range deps {
		rec.Summary.Dependencies.Internal = append(rec.Summary.Dependencies.Internal,
			summary.InternalDep{Path: d, Usage: "imports"})
	}
	require.NoError(t, s.Save(file, rec))
}

func TestBuild_NodesAndEdges(t *testing.T) {
	s := summary.NewStore(t.TempDir(), nil)
	save(t, s, "a.ts", "b.ts")
	save(t, s, "b.ts")

	g, err := NewEngine(s).Build()
	require.NoError(t, err)

	require.Len(t, g.Nodes, 2)
	assert.Equal(t, "a.ts", g.Nodes[0].ID)
	assert.Equal(t, "purpose of a.ts", g.Nodes[0].Purpose)

	require.Len(t, g.Edges, 1)
	assert.Equal(t, Edge{From: "a.ts", To: "b.ts", Type: EdgeDependsOn, Usage: "imports"}, g.Edges[0])
}

func TestBuild_Symmetry(t *testing.T) {
	s := summary.NewStore(t.TempDir(), nil)
	save(t, s, "src/a.ts", "src/b.ts", "src/c.ts")
	save(t, s, "src/b.ts", "src/c.ts")
	save(t, s, "src/c.ts")

	e := NewEngine(s)

	// Every forward edge must be mirrored in the reverse index.
	g, err := e.Build()
	require.NoError(t, err)
	for _, edge := range g.Edges {
		deps, err := e.Dependents(edge.To)
		require.NoError(t, err)
		assert.Contains(t, deps, edge.From, "dependents of %s must include %s", edge.To, edge.From)
	}

	deps, err := e.Dependents("src/c.ts")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"src/a.ts", "src/b.ts"}, deps)

	deps, err = e.Dependents("src/a.ts")
	require.NoError(t, err)
	assert.Empty(t, deps, "nothing depends on the root")
}

func TestQuery_EndToEnd(t *testing.T) {
	s := summary.NewStore(t.TempDir(), nil)
	save(t, s, "a.ts", "b.ts")
	save(t, s, "b.ts")

	e := NewEngine(s)

	view, err := e.Query("a.ts")
	require.NoError(t, err)
	require.True(t, view.Found())
	assert.Equal(t, MatchExact, view.MatchTier)
	require.Len(t, view.Edges, 1)
	assert.Equal(t, Edge{From: "a.ts", To: "b.ts", Type: EdgeDependsOn, Usage: "imports"}, view.Edges[0])

	view, err = e.Query("b.ts")
	require.NoError(t, err)
	require.True(t, view.Found())
	require.Len(t, view.Edges, 1)
	assert.Equal(t, Edge{From: "a.ts", To: "b.ts", Type: EdgeUsedBy}, view.Edges[0])
	assert.Equal(t, []string{"a.ts"}, view.Dependents)
}

func TestQuery_Normalization(t *testing.T) {
	s := summary.NewStore(t.TempDir(), nil)
	save(t, s, "src/a.ts")

	view, err := NewEngine(s).Query(`.\src\a.ts`)
	require.NoError(t, err)
	require.True(t, view.Found())
	assert.Equal(t, MatchExact, view.MatchTier)
	assert.Equal(t, "src/a.ts", view.File)
}

func TestQuery_FuzzyTiers(t *testing.T) {
	s := summary.NewStore(t.TempDir(), nil)
	save(t, s, "lib/src/util.ts")
	save(t, s, "src/util.ts")

	e := NewEngine(s)

	// Suffix tier: both stored keys end in "/util.ts"; lexicographic order
	// makes lib/src/util.ts the deterministic winner.
	view, err := e.Query("util.ts")
	require.NoError(t, err)
	require.True(t, view.Found())
	assert.Equal(t, "lib/src/util.ts", view.File)
	assert.Equal(t, MatchSuffix, view.MatchTier)

	// A longer query disambiguates via exact match.
	view, err = e.Query("src/util.ts")
	require.NoError(t, err)
	assert.Equal(t, "src/util.ts", view.File)
	assert.Equal(t, MatchExact, view.MatchTier)
}

func TestQuery_FilenameTier(t *testing.T) {
	s := summary.NewStore(t.TempDir(), nil)
	save(t, s, "deep/nested/widget.go")

	// No suffix or substring match for this spelling, but the basename hits.
	view, err := NewEngine(s).Query("other/widget.go")
	require.NoError(t, err)
	require.True(t, view.Found())
	assert.Equal(t, "deep/nested/widget.go", view.File)
	assert.Equal(t, MatchFilename, view.MatchTier)
}

func TestQuery_MissDiagnostic(t *testing.T) {
	s := summary.NewStore(t.TempDir(), nil)
	save(t, s, "a.ts")
	save(t, s, "b.ts")

	view, err := NewEngine(s).Query("nothing.rs")
	require.NoError(t, err)
	assert.False(t, view.Found())
	assert.Contains(t, view.Diagnostic, "a.ts", "diagnostic lists sample keys")
	assert.Empty(t, view.Edges)
}

func TestQuery_EmptyStore(t *testing.T) {
	s := summary.NewStore(t.TempDir(), nil)

	view, err := NewEngine(s).Query("a.ts")
	require.NoError(t, err)
	assert.False(t, view.Found())
	assert.Contains(t, view.Diagnostic, "generate summaries first")
}

func TestBuild_SkipsCorruptedRecords(t *testing.T) {
	ws := t.TempDir()
	s := summary.NewStore(ws, nil)
	for _, f := range []string{"a.ts", "b.ts", "c.ts"} {
		save(t, s, f)
	}
	require.NoError(t, os.WriteFile(filepath.Join(ws, "docs", "codebase", "junk.json"), []byte("%%%"), 0o644))

	g, err := NewEngine(s).Build()
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 3, "one corrupted record must not hide the rest")
}
