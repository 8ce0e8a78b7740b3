package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"nacagen/internal/audit"
	"nacagen/internal/workspace"
)

const sampleConfigFile = "nacagen.yaml"

func (a *app) initCmd() *cobra.Command {
	var withSamples bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the generation root layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireRoot(); err != nil {
				return err
			}
			ws, err := workspace.New(a.settings.Root)
			if err != nil {
				return err
			}
			if err := ws.EnsureDirs(); err != nil {
				return err
			}
			if withSamples {
				if err := writeFileIfMissing(filepath.Join(ws.Root, sampleConfigFile), sampleConfig(ws.Root, a.settings.Executable)); err != nil {
					return err
				}
				if err := writeFileIfMissing(filepath.Join(ws.Root, "params", "naca2412.yaml"), sampleParams); err != nil {
					return err
				}
				if err := writeFileIfMissing(filepath.Join(ws.Root, "params", "naca63a210.hcl"), sampleHCLParams); err != nil {
					return err
				}
				if err := writeFileIfMissing(filepath.Join(ws.Root, "params", "batch.yaml"), sampleBatch); err != nil {
					return err
				}
			}
			if a.settings.Ledger {
				if err := audit.NewLogger(ws.LedgerPath).Record("cli", "root_initialized", "", map[string]any{
					"root":    ws.Root,
					"samples": withSamples,
				}); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "ledger write failed:", err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized generation root at %s\n", ws.Root)
			return nil
		},
	}
	cmd.Flags().BoolVar(&withSamples, "samples", false, "Also write a sample config, parameter and batch files")
	return cmd
}

func writeFileIfMissing(path string, contents string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure dir for %s: %w", path, err)
	}
	return os.WriteFile(path, []byte(contents), 0o644)
}

func sampleConfig(root, exe string) string {
	if exe == "" {
		exe = "/usr/local/bin/naca456"
	}
	return fmt.Sprintf(`root: %s
executable: %s
timeout: 20s
log_level: warn
ledger: true
`, root, exe)
}

const sampleParams = `profile: "4"
cmax: 0.02
xmaxc: 0.4
toc: 0.12
`

const sampleHCLParams = `profile = "63A"
toc     = 0.10
cl      = 0.2
`

const sampleBatch = `id: symmetric-sweep
defaults:
  profile: "4"
  cmax: 0.0
  xmaxc: 0.0
requests:
  - toc: 0.06
  - toc: 0.09
  - toc: 0.12
`
