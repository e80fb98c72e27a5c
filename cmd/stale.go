package cmd

import (
	"fmt"

	"codex/internal/summary"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	staleFileStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	staleReasonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	freshStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
)

var staleCmd = &cobra.Command{
	Use:   "stale [file]",
	Short: "Report summaries that are older than their source files",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, repo, err := openService()
		if err != nil {
			return err
		}
		checker := summary.NewChecker(svc.Store(), repo)

		if len(args) == 1 {
			rec := checker.IsStale(args[0])
			printStaleness(rec)
			return nil
		}

		records, err := checker.ScanWorkspace()
		if err != nil {
			return fmt.Errorf("scan workspace: %w", err)
		}
		if len(records) == 0 {
			fmt.Println(freshStyle.Render("All summaries are up to date."))
			return nil
		}

		fmt.Printf("%d stale summaries:\n", len(records))
		for _, rec := range records {
			printStaleness(rec)
		}
		return nil
	},
}

func printStaleness(rec summary.StalenessRecord) {
	if rec.Stale {
		fmt.Printf("  %s  %s\n", staleFileStyle.Render(rec.File), staleReasonStyle.Render(rec.Reason))
	} else {
		fmt.Printf("  %s  %s\n", freshStyle.Render(rec.File), staleReasonStyle.Render(rec.Reason))
	}
}

func init() {
	rootCmd.AddCommand(staleCmd)
}
