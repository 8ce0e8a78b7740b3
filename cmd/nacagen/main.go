package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nacagen/internal/config"
	"nacagen/internal/generator"
	"nacagen/internal/logging"
	"nacagen/internal/notify"
)

// version is set at build time via -ldflags.
var version = "dev"

// app carries the flags and settings shared by every subcommand.
type app struct {
	configPath string
	root       string
	exe        string
	timeout    time.Duration
	logLevel   string
	logFormat  string
	ledger     bool
	notify     bool

	settings config.Settings
	logger   *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "nacagen",
		Short: "Generate NACA airfoil geometry with the naca456 engine",
		Long: "nacagen derives NACA designations, writes naca456 namelists, runs the engine\n" +
			"and exports the parsed coordinates as closed contours.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.configPath, "config", "", "YAML settings file")
	f.StringVar(&a.root, "root", "", "Generation root directory")
	f.StringVar(&a.exe, "exe", "", "Path to the naca456 executable")
	f.DurationVar(&a.timeout, "timeout", generator.DefaultTimeout, "Engine run time limit")
	f.StringVar(&a.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	f.StringVar(&a.logFormat, "log-format", "console", "Log format: console or json")
	f.BoolVar(&a.ledger, "ledger", false, "Record runs in the SQLite ledger under the root")
	f.BoolVar(&a.notify, "notify", false, "Show a desktop notification when a run finishes")

	root.AddCommand(a.initCmd())
	root.AddCommand(a.nameCmd())
	root.AddCommand(a.generateCmd())
	root.AddCommand(a.batchCmd())
	root.AddCommand(a.historyCmd())
	root.Version = version
	return root
}

// setup merges the config file with explicitly set flags and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.configPath != "" {
		s, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.settings = s
	}

	flags := cmd.Flags()
	if flags.Changed("root") || a.settings.Root == "" {
		a.settings.Root = a.root
	}
	if flags.Changed("exe") || a.settings.Executable == "" {
		a.settings.Executable = a.exe
	}
	if flags.Changed("timeout") || a.settings.Timeout.Duration == 0 {
		a.settings.Timeout = config.Duration{Duration: a.timeout}
	}
	if flags.Changed("log-level") || a.settings.LogLevel == "" {
		a.settings.LogLevel = a.logLevel
	}
	if flags.Changed("log-format") || a.settings.LogFormat == "" {
		a.settings.LogFormat = a.logFormat
	}
	if flags.Changed("ledger") {
		a.settings.Ledger = a.ledger
	}

	logger, err := logging.New(a.settings.LogLevel, a.settings.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.logger = logger.With(zap.String("cmd", cmd.Name()))
	return nil
}

// generator builds a generator from the merged settings.
func (a *app) generator() (*generator.Generator, error) {
	if err := a.settings.Validate(); err != nil {
		return nil, err
	}
	return generator.New(generator.Config{
		Root:       a.settings.Root,
		Executable: a.settings.Executable,
		Timeout:    a.settings.Timeout.Duration,
		Group:      a.settings.Group,
		Env:        a.settings.Env,
		Ledger:     a.settings.Ledger,
		Logger:     a.logger,
	})
}

// notifyDone sends a finished-run notification when --notify is set.
func (a *app) notifyDone(title, message string) {
	if err := notify.New(a.notify).Send(title, message); err != nil {
		a.logger.Warn("notification failed", zap.Error(err))
	}
}

func (a *app) requireRoot() error {
	if strings.TrimSpace(a.settings.Root) == "" {
		return fmt.Errorf("--root is required")
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
