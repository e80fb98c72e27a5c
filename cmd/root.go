package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"codex/internal/summary"
	"codex/internal/vcs"

	"github.com/spf13/cobra"
)

var (
	flagWorkspace string
	flagCacheSize int
)

var rootCmd = &cobra.Command{
	Use:   "codex",
	Short: "Cached codebase summaries and dependency index",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagWorkspace, "workspace", "", "workspace root (default: current directory)")
	rootCmd.PersistentFlags().IntVar(&flagCacheSize, "cache-size", summary.DefaultCacheSize, "in-memory summary cache capacity")
}

// resolveWorkspace returns the absolute workspace root from the flag or the
// working directory.
func resolveWorkspace() (string, error) {
	root := flagWorkspace
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		root = wd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve workspace: %w", err)
	}
	return abs, nil
}

// openService wires a summary service for the resolved workspace. The repo
// is shared with callers that also need staleness checks.
func openService() (*summary.Service, *vcs.Repo, error) {
	root, err := resolveWorkspace()
	if err != nil {
		return nil, nil, err
	}
	repo := vcs.New(root)
	store := summary.NewStore(root, repo)
	return summary.NewService(store, flagCacheSize), repo, nil
}
