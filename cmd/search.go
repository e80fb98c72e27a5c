package cmd

import (
	"fmt"
	"strings"

	"codex/internal/summary"

	"github.com/spf13/cobra"
)

var flagMode string

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search summaries by keyword, dependency, component, or export",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := summary.ParseMode(flagMode)
		if err != nil {
			return err
		}

		svc, _, err := openService()
		if err != nil {
			return err
		}

		query := strings.Join(args, " ")
		results, err := svc.Search(query, mode)
		if err != nil {
			return fmt.Errorf("search summaries: %w", err)
		}
		if len(results) == 0 {
			fmt.Printf("No matches for %q.\n", query)
			return nil
		}

		fmt.Printf("%d matches for %q:\n", len(results), query)
		for _, r := range results {
			if r.Total > 0 {
				fmt.Printf("  %s  (%d/%d keywords)\n", r.File, r.Matched, r.Total)
			} else {
				fmt.Printf("  %s\n", r.File)
			}
			for _, m := range r.Matches {
				fmt.Printf("    - %s\n", m)
			}
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&flagMode, "mode", "keyword", "search mode: keyword, dependency, component, exports")
	rootCmd.AddCommand(searchCmd)
}
