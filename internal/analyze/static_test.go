package analyze_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codex/internal/analyze"
	"codex/internal/analyze/languages"
	"codex/internal/summary"
)

func newStatic(t *testing.T, files ...string) *analyze.Static {
	t.Helper()
	r := analyze.NewRegistry()
	languages.RegisterAll(r)
	return analyze.NewStatic(r, files)
}

func TestStatic_TypeScript(t *testing.T) {
	src := []byte(`import { helper } from './util';
import lodash from 'lodash';

export function main(): void {
  helper();
}

export class Runner {
  run() {}
}
`)

	a := newStatic(t, "src/app.ts", "src/util.ts")
	content, err := a.Analyze(context.Background(), "src/app.ts", src)
	require.NoError(t, err)

	// Relative import resolves against the workspace file set; the bare
	// package name stays external.
	require.Len(t, content.Dependencies.Internal, 1)
	assert.Equal(t, "src/util.ts", content.Dependencies.Internal[0].Path)
	assert.Equal(t, []int{1}, content.Dependencies.Internal[0].Lines)

	require.Len(t, content.Dependencies.External, 1)
	assert.Equal(t, "lodash", content.Dependencies.External[0].Name)

	names := make([]string, 0, len(content.KeyComponents))
	for _, c := range content.KeyComponents {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"main", "Runner"}, names)

	require.NotEmpty(t, content.PublicAPI)
	sigs := make([]string, 0, len(content.PublicAPI))
	for _, e := range content.PublicAPI {
		sigs = append(sigs, e.Signature)
	}
	assert.Contains(t, sigs[0], "export", "exported declarations keep the export keyword")

	assert.NotEmpty(t, content.Purpose)
}

func TestStatic_UnresolvedRelativeImportKept(t *testing.T) {
	src := []byte(`import { gone } from './missing';
export const x = () => gone();
`)

	a := newStatic(t, "src/app.ts") // no src/missing.* in the workspace
	content, err := a.Analyze(context.Background(), "src/app.ts", src)
	require.NoError(t, err)

	require.Len(t, content.Dependencies.Internal, 1)
	assert.Equal(t, "src/missing", content.Dependencies.Internal[0].Path)
	assert.Contains(t, content.Dependencies.Internal[0].Usage, "unresolved")
}

func TestStatic_Go(t *testing.T) {
	src := []byte(`package widget

import (
	"fmt"

	"github.com/spf13/cobra"
)

type Widget struct{}

func NewWidget() *Widget { return &Widget{} }

func helper() { fmt.Println("x") }

var _ = cobra.Command{}
`)

	a := newStatic(t, "widget/widget.go")
	content, err := a.Analyze(context.Background(), "widget/widget.go", src)
	require.NoError(t, err)

	// Go imports name packages, not files: all external.
	assert.Empty(t, content.Dependencies.Internal)
	extNames := make([]string, 0, len(content.Dependencies.External))
	for _, d := range content.Dependencies.External {
		extNames = append(extNames, d.Name)
	}
	assert.ElementsMatch(t, []string{"fmt", "github.com/spf13/cobra"}, extNames)

	// Unexported definitions are components but not public API.
	sigs := make([]string, 0, len(content.PublicAPI))
	for _, e := range content.PublicAPI {
		sigs = append(sigs, e.Signature)
	}
	assert.Contains(t, sigs, "func NewWidget() *Widget")
	for _, s := range sigs {
		assert.NotContains(t, s, "helper")
	}
}

func TestStatic_Python(t *testing.T) {
	src := []byte(`import os
from util import helper

class App:
    def run(self):
        pass

def _private():
    pass
`)

	a := newStatic(t, "app.py", "util.py")
	content, err := a.Analyze(context.Background(), "app.py", src)
	require.NoError(t, err)

	require.Len(t, content.Dependencies.Internal, 1)
	assert.Equal(t, "util.py", content.Dependencies.Internal[0].Path)

	require.Len(t, content.Dependencies.External, 1)
	assert.Equal(t, "os", content.Dependencies.External[0].Name)

	for _, e := range content.PublicAPI {
		assert.NotContains(t, e.Signature, "_private", "underscore names are private")
	}
}

func TestStatic_UnknownExtension(t *testing.T) {
	a := newStatic(t)
	_, err := a.Analyze(context.Background(), "README.rst", []byte("hello"))
	assert.Error(t, err)
}

func TestStatic_InternalPathsAreStoreKeys(t *testing.T) {
	src := []byte(`import { a } from '../lib/a';
export const run = () => a();
`)

	a := newStatic(t, "src/app.ts", "lib/a.ts")
	content, err := a.Analyze(context.Background(), "src/app.ts", src)
	require.NoError(t, err)

	require.Len(t, content.Dependencies.Internal, 1)
	got := content.Dependencies.Internal[0].Path
	assert.Equal(t, "lib/a.ts", got)
	assert.Equal(t, summary.NormalizeKey(got), got, "internal paths are already normalized keys")
}
