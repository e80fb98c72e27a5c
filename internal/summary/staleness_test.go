package summary

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubHistory fakes git commit times per path.
type stubHistory struct {
	times map[string]time.Time
}

func (s *stubHistory) LastCommitTime(relPath string) (time.Time, bool) {
	ts, ok := s.times[relPath]
	return ts, ok
}

func saveAt(t *testing.T, s *Store, file string, generatedAt time.Time) {
	t.Helper()
	require.NoError(t, s.Save(file, &Record{
		GeneratedAt: generatedAt.Format(time.RFC3339),
		Summary:     Content{Purpose: "p"},
		Markdown:    "# p\n",
	}))
}

func TestChecker_NoSummaryIsStale(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	c := NewChecker(store, &stubHistory{})

	rec := c.IsStale("src/a.ts")
	assert.True(t, rec.Stale)
	assert.Equal(t, "no summary exists", rec.Reason)
	assert.Nil(t, rec.GeneratedAt)
}

func TestChecker_UnknownChangeTimeIsFresh(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	c := NewChecker(store, &stubHistory{})

	// Summary exists, but the source file neither has history nor exists on
	// disk: staleness cannot be proven.
	saveAt(t, store, "gone.ts", time.Now())

	rec := c.IsStale("gone.ts")
	assert.False(t, rec.Stale, "conservative: unknown change time is not stale")
	assert.Equal(t, "cannot determine modification time", rec.Reason)
}

func TestChecker_StaleWhenSourceNewer(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	gen := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	hist := &stubHistory{times: map[string]time.Time{
		"src/a.ts": gen.Add(time.Hour),
	}}
	c := NewChecker(store, hist)

	saveAt(t, store, "src/a.ts", gen)

	rec := c.IsStale("src/a.ts")
	assert.True(t, rec.Stale)
	assert.Contains(t, rec.Reason, "source changed at")
	assert.Contains(t, rec.Reason, "summary generated at")
	require.NotNil(t, rec.ChangedAt)
	require.NotNil(t, rec.GeneratedAt)
}

func TestChecker_Boundary(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	gen := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	hist := &stubHistory{times: map[string]time.Time{"a.ts": gen}}
	c := NewChecker(store, hist)

	saveAt(t, store, "a.ts", gen)

	// Exact equality is fresh; strictly-after is stale.
	assert.False(t, c.IsStale("a.ts").Stale, "change at the same instant is not stale")

	hist.times["a.ts"] = gen.Add(time.Millisecond)
	assert.True(t, c.IsStale("a.ts").Stale, "1ms after is stale")
}

func TestChecker_Idempotent(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	gen := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	hist := &stubHistory{times: map[string]time.Time{"a.ts": gen.Add(time.Minute)}}
	c := NewChecker(store, hist)

	saveAt(t, store, "a.ts", gen)

	first := c.IsStale("a.ts")
	second := c.IsStale("a.ts")
	assert.Equal(t, first, second)
}

func TestChecker_MtimeFallback(t *testing.T) {
	ws := t.TempDir()
	store := NewStore(ws, nil)
	c := NewChecker(store, &stubHistory{}) // no history for anything

	src := filepath.Join(ws, "a.ts")
	require.NoError(t, os.WriteFile(src, []byte("export {}"), 0o644))

	gen := time.Now().Add(-time.Hour)
	saveAt(t, store, "a.ts", gen)

	rec := c.IsStale("a.ts")
	assert.True(t, rec.Stale, "mtime newer than summary should read as stale")

	// Push the summary past the mtime and it reads fresh.
	saveAt(t, store, "a.ts", time.Now().Add(time.Hour))
	assert.False(t, c.IsStale("a.ts").Stale)
}

func TestChecker_ScanWorkspace(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	gen := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	hist := &stubHistory{times: map[string]time.Time{
		"b.ts":     gen.Add(time.Hour), // stale
		"a.ts":     gen,                // fresh
		"sub/c.ts": gen.Add(time.Hour), // stale
	}}
	c := NewChecker(store, hist)

	for _, f := range []string{"a.ts", "b.ts", "sub/c.ts"} {
		saveAt(t, store, f, gen)
	}

	stale, err := c.ScanWorkspace()
	require.NoError(t, err)
	require.Len(t, stale, 2, "only stale records are returned")
	assert.Equal(t, "b.ts", stale[0].File, "output sorted by path")
	assert.Equal(t, "sub/c.ts", stale[1].File)
}
