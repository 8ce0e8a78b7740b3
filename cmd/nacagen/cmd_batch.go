package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"nacagen/internal/batch"
	"nacagen/internal/notify"
)

func (a *app) batchCmd() *cobra.Command {
	var (
		path     string
		markdown bool
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run every request of a batch file in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := batch.LoadBatch(path)
			if err != nil {
				return err
			}
			gen, err := a.generator()
			if err != nil {
				return err
			}
			res, runErr := batch.Run(cmd.Context(), b, gen)
			a.notifyDone(notify.FormatBatch(b.ID, len(b.Requests), len(res.Items), runErr))
			out := cmd.OutOrStdout()
			if res != nil && len(res.Items) > 0 {
				renderBatch(out, res, markdown)
			}
			if runErr != nil {
				return runErr
			}
			fmt.Fprintf(out, "Batch %s: %d of %d generated in %s\n",
				res.BatchID, len(res.Items), len(b.Requests), res.EndedAt.Sub(res.StartedAt).Round(time.Millisecond))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&path, "file", "f", "", "Batch file (required)")
	f.BoolVar(&markdown, "markdown", false, "Render tables as Markdown")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
