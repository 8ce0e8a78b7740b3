package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nacagen/internal/designation"
)

func (a *app) nameCmd() *cobra.Command {
	var p designation.Params
	cmd := &cobra.Command{
		Use:   "name",
		Short: "Print the designation and file stem for a parameter set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, err := designation.Derive(p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, designation.Stem(name))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&p.Profile, "profile", "", "Family tag: 4, 5, 16 or a 6/7/8-series tag (required)")
	f.Float64Var(&p.CMax, "cmax", 0, "Maximum camber as a fraction of chord")
	f.Float64Var(&p.XMaxC, "xmaxc", 0, "Chordwise position of maximum camber")
	f.Float64Var(&p.TOC, "toc", 0, "Thickness to chord ratio")
	f.Float64Var(&p.CL, "cl", 0, "Design lift coefficient")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}
