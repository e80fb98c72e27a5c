package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all summarized files",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := openService()
		if err != nil {
			return err
		}

		entries, err := svc.List()
		if err != nil {
			return fmt.Errorf("list summaries: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No summaries found. Run 'codex generate' first.")
			return nil
		}

		fmt.Printf("%d summaries:\n", len(entries))
		for _, e := range entries {
			if e.GeneratedAt != "" {
				fmt.Printf("  %s  (generated %s)\n", e.File, e.GeneratedAt)
			} else {
				fmt.Printf("  %s\n", e.File)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
