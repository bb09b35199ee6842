package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"theoremc/internal/ctxlog"
	"theoremc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "theoremc",
	Short: "Theorem document compiler front end",
	Long: `theoremc loads .theorem documents, validates them and computes the
symbol names of the proof harnesses generated from them`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRun,
}

// errReported marks a run whose failures were already printed as diagnostics.
var errReported = errors.New("diagnostics reported")

var cleanups []func()

func init() {
	rootCmd.Version = version.Current().Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(mangleCmd)
	rootCmd.AddCommand(identityCmd)
	rootCmd.AddCommand(exprCmd)
	rootCmd.AddCommand(versionCmd)

	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	pf.String("log-level", "warn", "log level (debug|info|warn|error)")
	pf.String("config", "", "path to "+configFileName+" (default: nearest one above the working directory)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring buffer")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")
}

func main() {
	err := rootCmd.ExecuteContext(context.Background())
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// setupRun installs the logger, the project config and the tracer in the
// command's context before any subcommand runs.
func setupRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	levelStr, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return fmt.Errorf("failed to get log-level flag: %w", err)
	}
	level, ok := ctxlog.ParseLevel(levelStr)
	if !ok {
		return fmt.Errorf("invalid --log-level value %q (expected debug|info|warn|error)", levelStr)
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	ctx = ctxlog.WithLogger(ctx, logger)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	manifest, err := loadManifest(configPath)
	if err != nil {
		return err
	}
	if manifest != nil {
		logger.Debug("loaded config", "path", manifest.Path)
	}
	cmd.SetContext(withManifest(ctx, manifest))

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, cleanup)

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, stopProfiling)
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // descriptors fit in int
}
