package cmd

import (
	"codex/internal/tui"

	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse summaries in an interactive terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := openService()
		if err != nil {
			return err
		}
		return tui.Run(tui.Config{
			Workspace: svc.Store().Workspace(),
			Service:   svc,
		})
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
