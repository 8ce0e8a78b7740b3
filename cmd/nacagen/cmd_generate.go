package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nacagen/internal/namelist"
	"nacagen/internal/notify"
	"nacagen/internal/paramfile"
)

func (a *app) generateCmd() *cobra.Command {
	var (
		paramsPath string
		sets       []string
		setStrings []string
		showTable  bool
		markdown   bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run naca456 for one parameter set and export the contour",
		Example: "  nacagen generate --root ./work --exe /opt/naca456 -f params/naca2412.yaml\n" +
			"  nacagen generate --config nacagen.yaml --set-string profile=4 --set toc=0.12 --table",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ps, err := buildParameters(paramsPath, sets, setStrings)
			if err != nil {
				return err
			}
			gen, err := a.generator()
			if err != nil {
				return err
			}
			res, err := gen.Generate(cmd.Context(), ps)
			if err != nil {
				name := "generation"
				if v, ok := ps.Get("name"); ok {
					name = v.Text()
				}
				a.notifyDone(notify.FormatGeneration(name, 0, err))
				return err
			}
			a.notifyDone(notify.FormatGeneration(res.Name, res.Contour.Len(), nil))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", res.Name, res.Stem)
			fmt.Fprintf(out, "Schema:  %s\n", res.Coordinates.Schema)
			fmt.Fprintf(out, "Points:  %d (contour %d)\n", res.Coordinates.Len(), res.Contour.Len())
			fmt.Fprintf(out, "Export:  %s\n", res.Artifacts.Export)
			if showTable {
				renderCoordinates(out, res.Coordinates, markdown)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&paramsPath, "file", "f", "", "Parameter file (.yaml, .yml, .json or .hcl)")
	f.StringArrayVar(&sets, "set", nil, "Set a parameter as key=value, typed like YAML (repeatable, applied after --file)")
	f.StringArrayVar(&setStrings, "set-string", nil, "Set a string parameter such as profile, camber or name (repeatable, applied after --set)")
	f.BoolVar(&showTable, "table", false, "Print the parsed coordinates")
	f.BoolVar(&markdown, "markdown", false, "Render tables as Markdown")
	return cmd
}

// buildParameters loads path (when set), then applies the --set overrides
// and the --set-string overrides, each in order.
func buildParameters(path string, sets, setStrings []string) (*namelist.ParameterSet, error) {
	ps := namelist.NewParameterSet()
	if path != "" {
		loaded, err := paramfile.Load(path)
		if err != nil {
			return nil, err
		}
		ps = loaded
	}
	for _, s := range sets {
		key, v, err := paramfile.ParseAssignment(s)
		if err != nil {
			return nil, err
		}
		ps.Set(key, v)
	}
	for _, s := range setStrings {
		key, v, err := paramfile.ParseStringAssignment(s)
		if err != nil {
			return nil, err
		}
		ps.Set(key, v)
	}
	if ps.Len() == 0 {
		return nil, fmt.Errorf("no parameters given: use --file, --set or --set-string")
	}
	return ps, nil
}
