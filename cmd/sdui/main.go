// Command sdui generates, validates, migrates and stores server-driven UI
// token documents.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Mindburn-Labs/sdui/pkg/config"
	"github.com/Mindburn-Labs/sdui/pkg/tracing"

	_ "github.com/lib/pq"  // Postgres driver
	_ "modernc.org/sqlite" // SQLite driver
)

var version = "dev"

func main() {
	os.Exit(Run(os.Args, os.Stdout, os.Stderr))
}

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// failure marks an error raised by the core rather than by argument
// parsing.
type failure struct{ err error }

func (f *failure) Error() string { return f.err.Error() }
func (f *failure) Unwrap() error { return f.err }

// usage marks a bad argument detected inside a command.
type usage struct{ err error }

func (u *usage) Error() string { return u.err.Error() }
func (u *usage) Unwrap() error { return u.err }

func usagef(format string, args ...any) error {
	return &usage{fmt.Errorf(format, args...)}
}

// app carries state shared by every command of one invocation.
type app struct {
	stdout, stderr io.Writer

	configPath string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
	tracer *tracing.Provider
}

// Run is the entrypoint for testing.
func Run(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := a.rootCommand()
	if len(args) > 1 {
		root.SetArgs(args[1:])
	} else {
		root.SetArgs([]string{})
	}

	err := root.Execute()
	if err == nil {
		return exitOK
	}
	_, _ = fmt.Fprintf(stderr, "sdui: %v\n", err)

	var u *usage
	if errors.As(err, &u) {
		return exitUsage
	}
	var f *failure
	if errors.As(err, &f) {
		return exitFailure
	}
	return exitUsage
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "sdui",
		Short:         "Server-driven UI token tooling",
		Long:          "Generate, validate, render, migrate and store server-driven UI token documents.",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if a.tracer == nil {
				return nil
			}
			return a.tracer.Shutdown(context.Background())
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", os.Getenv("SDUI_CONFIG"), "config file (YAML)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")

	root.AddCommand(
		a.generateCommand(),
		a.schemaCommand(),
		a.renderCommand(),
		a.migrateCommand(),
		a.validateCommand(),
		a.importCommand(),
		a.exportCommand(),
		a.versionCommand(),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return &failure{err}
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return &usage{err}
		}
	}
	a.cfg = cfg
	a.logger = cfg.Logger(a.stderr).With("component", "cli")

	p, err := tracing.NewProvider(cfg.Tracing, a.stderr)
	if err != nil {
		return &failure{err}
	}
	a.tracer = p
	return nil
}

// run adapts a command body so its errors count as core failures unless
// already marked as usage errors.
func run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if err == nil {
			return nil
		}
		var u *usage
		if errors.As(err, &u) {
			return err
		}
		return &failure{err}
	}
}

// writeOutput writes data to path, or to stdout when path is "-".
func (a *app) writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := a.stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	a.logger.Info("wrote output", "path", path, "bytes", len(data))
	return nil
}

// readInput reads path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(a.stdout, "sdui %s\n", version)
			return err
		},
	}
}
