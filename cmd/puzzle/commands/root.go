// Package commands implements the puzzle CLI.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// Execute runs the root command. Telemetry is flushed and the run store
// closed even when the command fails.
func Execute(ctx context.Context, version, commit string) error {
	rootCmd, a := newRootCommand(version, commit, os.Stdout, os.Stderr)
	err := rootCmd.ExecuteContext(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return errors.Join(err, a.teardown(shutdownCtx))
}

func newRootCommand(version, commit string, stdout, stderr io.Writer) (*cobra.Command, *app) {
	a := &app{version: version, stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "puzzle",
		Short: "Solve 8-puzzles with Best-First, Dijkstra or A*",
		Long: `puzzle drives the informed search engine on the 3x3 sliding puzzle.

Boards are written row-major with 0, '_' or '.' for the blank, for example
"123/456/780" (the solved board) or "8 1 3 4 0 2 7 6 5".

Finished searches can be recorded in memory, in a SQLite file or in MySQL,
and listed later with 'puzzle history'.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.flags.configPath, "config", "c", "", "config file path (YAML)")
	flags.StringVar(&a.flags.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	flags.StringVar(&a.flags.logFormat, "log-format", "", "log format: console or json")
	flags.StringVar(&a.flags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	flags.StringVar(&a.flags.trace, "trace", "", "span exporter: none, stdout or otlp")
	flags.StringVar(&a.flags.store, "store", "", "run history store: memory, sqlite or mysql")
	flags.StringVar(&a.flags.dsn, "dsn", "", "SQLite file path or MySQL DSN for --store")

	rootCmd.AddCommand(newSolveCommand(a))
	rootCmd.AddCommand(newStepCommand(a))
	rootCmd.AddCommand(newHistoryCommand(a))

	return rootCmd, a
}
