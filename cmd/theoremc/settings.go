package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"theoremc/internal/diag"
	"theoremc/internal/diagfmt"
)

func configOf(m *projectManifest) projectConfig {
	if m == nil {
		return projectConfig{}
	}
	return m.Config
}

// stringSetting returns the flag value when it was given on the command
// line or the config does not set key, and the config value otherwise.
func stringSetting(cmd *cobra.Command, name string, m *projectManifest, fromConfig string, key ...string) (string, error) {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	if cmd.Flags().Changed(name) || !m.defined(key...) {
		return v, nil
	}
	return fromConfig, nil
}

func intSetting(cmd *cobra.Command, name string, m *projectManifest, fromConfig int, key ...string) (int, error) {
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return 0, fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	if cmd.Flags().Changed(name) || !m.defined(key...) {
		return v, nil
	}
	return fromConfig, nil
}

type colorMode string

const (
	colorAuto colorMode = "auto"
	colorOn   colorMode = "on"
	colorOff  colorMode = "off"
)

func readColorMode(value string) (colorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorAuto, nil
	case "on", "always":
		return colorOn, nil
	case "off", "never":
		return colorOff, nil
	default:
		return "", fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

func shouldUseColor(mode colorMode) bool {
	switch mode {
	case colorOn:
		return true
	case colorOff:
		return false
	default:
		return os.Getenv("NO_COLOR") == "" && isTerminal(os.Stdout)
	}
}

// outputSettings controls how diagnostics are shown.
type outputSettings struct {
	format         diagfmt.Format
	color          bool
	localizer      diag.Localizer
	maxDiagnostics int
	timings        bool
}

// resolveOutput merges the output flags with the [output] config section.
// formatFlag names the command's diagnostics format flag; when empty the
// format comes from the config alone.
func resolveOutput(cmd *cobra.Command, formatFlag string) (outputSettings, error) {
	m := manifestFrom(cmd.Context())
	cfg := configOf(m)

	formatStr := cfg.Output.Format
	if formatFlag != "" {
		var err error
		formatStr, err = stringSetting(cmd, formatFlag, m, cfg.Output.Format, "output", "format")
		if err != nil {
			return outputSettings{}, err
		}
	}
	format, err := diagfmt.ParseFormat(formatStr)
	if err != nil {
		return outputSettings{}, err
	}

	colorStr, err := stringSetting(cmd, "color", m, cfg.Output.Color, "output", "color")
	if err != nil {
		return outputSettings{}, err
	}
	mode, err := readColorMode(colorStr)
	if err != nil {
		return outputSettings{}, err
	}
	useColor := shouldUseColor(mode)
	color.NoColor = !useColor

	lang := cfg.Output.Lang
	if cmd.Flags().Lookup("lang") != nil {
		if lang, err = stringSetting(cmd, "lang", m, cfg.Output.Lang, "output", "lang"); err != nil {
			return outputSettings{}, err
		}
	}
	localizer, err := diagfmt.NewLocalizer(lang)
	if err != nil {
		return outputSettings{}, err
	}

	maxDiagnostics, err := intSetting(cmd, "max-diagnostics", m, cfg.Check.MaxDiagnostics, "check", "max_diagnostics")
	if err != nil {
		return outputSettings{}, err
	}
	timings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return outputSettings{}, fmt.Errorf("failed to get timings flag: %w", err)
	}

	return outputSettings{
		format:         format,
		color:          useColor,
		localizer:      localizer,
		maxDiagnostics: maxDiagnostics,
		timings:        timings,
	}, nil
}
