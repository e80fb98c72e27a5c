package walker_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"codex/internal/walker"
)

var tsOnly = map[string]bool{"ts": true}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func collect(t *testing.T, root string, exts map[string]bool) []string {
	t.Helper()
	files, errs := walker.Walk(root, exts)
	var got []string
	for f := range files {
		got = append(got, f.RelPath)
	}
	require.NoError(t, <-errs)
	return got
}

func TestWalk_FiltersByExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.ts", "export {}")
	writeFile(t, root, "src/b.py", "pass")
	writeFile(t, root, "README.md", "# readme")

	got := collect(t, root, tsOnly)
	require.Equal(t, []string{"src/a.ts"}, got)
}

func TestWalk_SkipsIgnoredDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.ts", "export {}")
	writeFile(t, root, "node_modules/lib/index.ts", "export {}")
	writeFile(t, root, "docs/codebase/src/a.ts", "not source")

	got := collect(t, root, tsOnly)
	require.Equal(t, []string{"src/a.ts"}, got)
}

func TestWalk_SkipsEmptyFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.ts", "export {}")
	writeFile(t, root, "src/empty.ts", "")

	got := collect(t, root, tsOnly)
	require.Equal(t, []string{"src/a.ts"}, got)
}

func TestWalk_CreatesIgnoreFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.ts", "export {}")

	collect(t, root, tsOnly)

	data, err := os.ReadFile(filepath.Join(root, ".codexignore"))
	require.NoError(t, err)
	require.Contains(t, string(data), "docs/codebase")
}

func TestWalk_HonorsCustomIgnoreFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".codexignore", "generated\n")
	writeFile(t, root, "src/a.ts", "export {}")
	writeFile(t, root, "generated/b.ts", "export {}")

	got := collect(t, root, tsOnly)
	require.Equal(t, []string{"src/a.ts"}, got)
}
