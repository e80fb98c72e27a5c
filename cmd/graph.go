package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"codex/internal/graph"

	"github.com/spf13/cobra"
)

var flagJSON bool

var graphCmd = &cobra.Command{
	Use:   "graph [file]",
	Short: "Show the dependency graph, or one file's dependencies",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := openService()
		if err != nil {
			return err
		}
		engine := graph.NewEngine(svc.Store())

		if len(args) == 1 {
			view, err := engine.Query(args[0])
			if err != nil {
				return fmt.Errorf("query graph: %w", err)
			}
			if flagJSON {
				return printJSON(view)
			}
			printFileView(view)
			return nil
		}

		g, err := engine.Build()
		if err != nil {
			return fmt.Errorf("build graph: %w", err)
		}
		if flagJSON {
			return printJSON(g)
		}
		printGraph(g)
		return nil
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printFileView(view *graph.FileView) {
	if !view.Found() {
		fmt.Println(view.Diagnostic)
		return
	}
	fmt.Printf("%s (%s match)\n", view.File, view.MatchTier)
	if view.Purpose != "" {
		fmt.Printf("  %s\n", view.Purpose)
	}
	if len(view.DependsOn) > 0 {
		fmt.Println("  depends on:")
		for _, d := range view.DependsOn {
			fmt.Printf("    %s\n", d.Path)
		}
	}
	if len(view.External) > 0 {
		fmt.Println("  external:")
		for _, d := range view.External {
			fmt.Printf("    %s\n", d.Name)
		}
	}
	if len(view.Dependents) > 0 {
		fmt.Println("  used by:")
		for _, d := range view.Dependents {
			fmt.Printf("    %s\n", d)
		}
	}
}

func printGraph(g *graph.Graph) {
	fmt.Printf("%d files, %d dependencies\n", len(g.Nodes), len(g.Edges))
	for _, e := range g.Edges {
		fmt.Printf("  %s -> %s\n", e.From, e.To)
	}
}

func init() {
	graphCmd.Flags().BoolVar(&flagJSON, "json", false, "output JSON")
	rootCmd.AddCommand(graphCmd)
}
