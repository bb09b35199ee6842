package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"theoremc/internal/ctxlog"
	"theoremc/internal/diag"
	"theoremc/internal/diagfmt"
	"theoremc/internal/driver"
	"theoremc/internal/identity"
	"theoremc/internal/observ"
	"theoremc/internal/validate"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [paths...]",
	Short: "Load and validate theorem files",
	Long: `Load every .theorem file under the given paths (default: the project
root, or the working directory), run the validation checks over each
document and verify that the generated symbol names do not collide`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("mode", "fail-fast", "failure mode (fail-fast|collect-all)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().String("format", "pretty", "diagnostics format (pretty|short|json)")
	checkCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	checkCmd.Flags().String("aliases", "", "rename graph file (YAML or TOML) to validate as well")
	checkCmd.Flags().String("lang", "", "language of diagnostic messages (BCP 47 tag)")
	checkCmd.Flags().StringSlice("ext", nil, "file extensions to look for (default .theorem)")
}

// checkSettings is what check, mangle and identity share: how to find and
// run over the files.
type checkSettings struct {
	paths   []string
	options driver.Options
	aliases string
}

func resolveCheckSettings(cmd *cobra.Command, args []string, out outputSettings) (checkSettings, error) {
	m := manifestFrom(cmd.Context())
	cfg := configOf(m)

	opts := driver.Options{MaxDiagnostics: out.maxDiagnostics}
	if cmd.Flags().Lookup("mode") != nil {
		modeStr, err := stringSetting(cmd, "mode", m, cfg.Check.Mode, "check", "mode")
		if err != nil {
			return checkSettings{}, err
		}
		if opts.Mode, err = validate.ParseMode(modeStr); err != nil {
			return checkSettings{}, err
		}
	}
	if cmd.Flags().Lookup("jobs") != nil {
		jobs, err := intSetting(cmd, "jobs", m, cfg.Check.Jobs, "check", "jobs")
		if err != nil {
			return checkSettings{}, err
		}
		if jobs < 0 {
			return checkSettings{}, fmt.Errorf("--jobs must be >= 0, got %d", jobs)
		}
		opts.Jobs = jobs
	} else {
		opts.Jobs = cfg.Check.Jobs
	}

	opts.Extensions = cfg.Check.Extensions
	if f := cmd.Flags().Lookup("ext"); f != nil && f.Changed {
		exts, err := cmd.Flags().GetStringSlice("ext")
		if err != nil {
			return checkSettings{}, fmt.Errorf("failed to get ext flag: %w", err)
		}
		opts.Extensions = exts
	}

	aliases := m.resolve(cfg.Identity.Aliases)
	if f := cmd.Flags().Lookup("aliases"); f != nil && f.Changed {
		aliases = f.Value.String()
	}

	paths := args
	if len(paths) == 0 {
		root := "."
		if m != nil {
			root = m.Root
		}
		paths = []string{root}
	}
	if out.timings {
		opts.Timer = observ.NewTimer()
	}
	return checkSettings{paths: paths, options: opts, aliases: aliases}, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd)
	ctx := cmd.Context()

	out, err := resolveOutput(cmd, "format")
	if err != nil {
		return err
	}
	settings, err := resolveCheckSettings(cmd, args, out)
	if err != nil {
		return err
	}
	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiStr)
	if err != nil {
		return err
	}

	files, err := driver.Discover(settings.paths, settings.options.Extensions)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		ctxlog.FromContext(ctx).Warn("no theorem files found", "paths", settings.paths)
	}

	var res *driver.Result
	if out.format != diagfmt.FormatJSON && shouldUseTUI(mode, len(files)) {
		res, err = runCheckWithUI(ctx, "theoremc check", files, settings.options)
	} else {
		res, err = driver.Check(ctx, files, settings.options)
	}
	if err != nil {
		return err
	}

	if settings.aliases != "" {
		if _, aerr := identity.LoadAliases(settings.aliases); aerr != nil {
			var d *diag.Diagnostic
			if !errors.As(aerr, &d) {
				return aerr
			}
			res.Diagnostics.Add(d)
		}
	}

	if err := renderDiagnostics(cmd.OutOrStdout(), res.Diagnostics, res.FileSet, out, settings.options.Timer); err != nil {
		return err
	}
	printTimings(cmd.ErrOrStderr(), out, settings.options.Timer)
	if !res.OK() {
		dumpTraceOnFailure(cmd)
		return errReported
	}
	if out.format != diagfmt.FormatJSON {
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d theorems in %d files\n", len(res.Documents()), len(res.Files))
	}
	return nil
}
