package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"codex/internal/analyze"
	"codex/internal/analyze/languages"
	"codex/internal/summary"
	"codex/internal/walker"

	"github.com/spf13/cobra"
)

var (
	flagWorkers int
	flagForce   bool
	flagLLM     bool
	flagOllama  string
	flagModel   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate summaries for every source file in the workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, repo, err := openService()
		if err != nil {
			return err
		}
		root := svc.Store().Workspace()

		registry := analyze.NewRegistry()
		languages.RegisterAll(registry)

		// Collect the full file set first: the static analyzer resolves
		// relative imports against it.
		files, errs := walker.Walk(root, registry.Extensions())
		var discovered []walker.FileInfo
		for f := range files {
			discovered = append(discovered, f)
		}
		if err := <-errs; err != nil {
			return fmt.Errorf("walk workspace: %w", err)
		}
		if len(discovered) == 0 {
			fmt.Println("No analyzable source files found.")
			return nil
		}

		keys := make([]string, len(discovered))
		for i, f := range discovered {
			keys[i] = f.RelPath
		}

		var analyzer analyze.Analyzer = analyze.NewStatic(registry, keys)
		var fallback analyze.Analyzer
		if flagLLM {
			fallback = analyzer
			analyzer = analyze.NewOllama(flagOllama, flagModel)
		}

		checker := summary.NewChecker(svc.Store(), repo)

		fmt.Printf("Generating summaries for %s...\n", root)
		start := time.Now()

		var (
			mu        sync.Mutex
			generated int
			skipped   int
			failed    int
		)

		jobs := make(chan walker.FileInfo)
		var wg sync.WaitGroup
		for i := 0; i < poolSize(flagWorkers); i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for f := range jobs {
					if !flagForce {
						if rec := checker.IsStale(f.RelPath); !rec.Stale {
							mu.Lock()
							skipped++
							mu.Unlock()
							continue
						}
					}
					if err := generateOne(cmd.Context(), svc, analyzer, fallback, f); err != nil {
						fmt.Fprintf(os.Stderr, "warning: %s: %v\n", f.RelPath, err)
						mu.Lock()
						failed++
						mu.Unlock()
						continue
					}
					mu.Lock()
					generated++
					mu.Unlock()
				}
			}()
		}
		for _, f := range discovered {
			jobs <- f
		}
		close(jobs)
		wg.Wait()

		fmt.Printf("\nDone in %s\n", time.Since(start).Round(time.Millisecond))
		fmt.Printf("  Files:  %d total, %d generated, %d up to date, %d failed\n",
			len(discovered), generated, skipped, failed)
		return nil
	},
}

// poolSize clamps the worker flag so the pool always has at least one
// receiver; zero workers would leave sends on the job channel blocked
// forever.
func poolSize(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// generateOne analyzes a single file and saves its artifact pair. When the
// primary analyzer fails and a fallback exists, the fallback is tried before
// giving up.
func generateOne(ctx context.Context, svc *summary.Service, analyzer, fallback analyze.Analyzer, f walker.FileInfo) error {
	src, err := os.ReadFile(f.Path)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	content, err := analyzer.Analyze(ctx, f.RelPath, src)
	if err != nil && fallback != nil {
		fmt.Fprintf(os.Stderr, "warning: %s: %v, falling back to static analysis\n", f.RelPath, err)
		content, err = fallback.Analyze(ctx, f.RelPath, src)
	}
	if err != nil {
		return err
	}

	rec := &summary.Record{
		Summary:  *content,
		Markdown: analyze.Render(f.RelPath, content),
	}
	return svc.Save(f.RelPath, rec)
}

func init() {
	generateCmd.Flags().IntVar(&flagWorkers, "workers", runtime.NumCPU(), "parallel workers")
	generateCmd.Flags().BoolVar(&flagForce, "force", false, "regenerate even when summaries are up to date")
	generateCmd.Flags().BoolVar(&flagLLM, "llm", false, "analyze with an Ollama model instead of tree-sitter only")
	generateCmd.Flags().StringVar(&flagOllama, "ollama", "http://localhost:11434", "ollama base URL")
	generateCmd.Flags().StringVar(&flagModel, "model", "qwen3:8b", "model for --llm analysis")
	rootCmd.AddCommand(generateCmd)
}
