package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Show the summary for a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := openService()
		if err != nil {
			return err
		}

		rec := svc.Get(args[0])
		if rec == nil {
			return fmt.Errorf("no summary for %s\nRun 'codex generate' first", args[0])
		}

		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
		if err != nil {
			// Plain output when no renderer is available.
			fmt.Println(rec.Markdown)
			return nil
		}
		out, err := r.Render(rec.Markdown)
		if err != nil {
			fmt.Println(rec.Markdown)
			return nil
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
