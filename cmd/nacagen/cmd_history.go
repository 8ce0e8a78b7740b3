package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nacagen/internal/audit"
	"nacagen/internal/workspace"
)

func (a *app) historyCmd() *cobra.Command {
	var (
		limit    int
		stem     string
		markdown bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent ledger events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireRoot(); err != nil {
				return err
			}
			ws, err := workspace.Resolve(a.settings.Root)
			if err != nil {
				return err
			}
			events, err := audit.NewLogger(ws.LedgerPath).Recent(limit, stem)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No ledger events recorded.")
				return nil
			}
			renderHistory(cmd.OutOrStdout(), events, markdown)
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&limit, "limit", 20, "Maximum number of events")
	f.StringVar(&stem, "stem", "", "Only show events for this stem")
	f.BoolVar(&markdown, "markdown", false, "Render tables as Markdown")
	return cmd
}
