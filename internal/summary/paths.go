package summary

import (
	"path"
	"path/filepath"
	"strings"
)

// StoreDir is the workspace-relative directory holding all summary
// artifacts, mirroring the source tree.
const StoreDir = "docs/codebase"

// NormalizeKey canonicalizes a workspace-relative path for use as a store or
// graph key: backslashes become forward slashes and a leading "./" is
// stripped. Every lookup and comparison goes through this first.
func NormalizeKey(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}

// baseKey strips the file extension from a normalized key, producing the
// shared base path of the artifact pair. Dotfiles keep their name.
func baseKey(key string) string {
	ext := path.Ext(key)
	base := strings.TrimSuffix(key, ext)
	if base == "" || strings.HasSuffix(base, "/") {
		return key
	}
	return base
}

// artifactPair returns the on-disk paths of the structured and rendered
// artifacts for a source key under root, with an optional branch suffix.
func artifactPair(root, key, branchSuffix string) (jsonPath, mdPath string) {
	base := baseKey(key)
	if branchSuffix != "" {
		base = base + "." + branchSuffix
	}
	rel := filepath.FromSlash(base)
	return filepath.Join(root, rel+".json"), filepath.Join(root, rel+".md")
}
