// Package analyze produces summary content for source files. The summary
// store never calls an Analyzer itself: the generate pipeline runs one and
// hands the result to the store, so storage stays decoupled from whatever
// produced the content.
package analyze

import (
	"context"

	"codex/internal/summary"
)

// Analyzer turns one source file into summary content. Implementations may
// be slow (LLM-backed) or fail; callers decide how to handle both.
type Analyzer interface {
	// Analyze summarizes the file at the workspace-relative path. src is
	// the file's contents.
	Analyze(ctx context.Context, file string, src []byte) (*summary.Content, error)
}
