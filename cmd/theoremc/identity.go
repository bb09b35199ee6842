package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"theoremc/internal/driver"
	"theoremc/internal/identity"
)

var identityCmd = &cobra.Command{
	Use:   "identity [flags] [paths...]",
	Short: "Show the stable identity of every theorem",
	Long: `Print the stable identity (normalized path#Theorem) of every theorem
under the given paths, resolved through the rename graph when one is given`,
	RunE: runIdentity,
}

func init() {
	identityCmd.Flags().String("aliases", "", "rename graph file (YAML or TOML)")
	identityCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runIdentity(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}

	out, err := resolveOutput(cmd, "")
	if err != nil {
		return err
	}
	settings, err := resolveCheckSettings(cmd, args, out)
	if err != nil {
		return err
	}

	var graph *identity.AliasGraph
	if settings.aliases != "" {
		graph, err = identity.LoadAliases(settings.aliases)
		if err != nil {
			return err
		}
	}

	res, err := driver.Check(cmd.Context(), settings.paths, settings.options)
	if err != nil {
		return err
	}
	if !res.OK() {
		if err := renderDiagnostics(cmd.ErrOrStderr(), res.Diagnostics, res.FileSet, out, nil); err != nil {
			return err
		}
		return errReported
	}

	entries := identity.Report(res.Documents(), graph)
	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	return renderIdentities(cmd.OutOrStdout(), entries)
}

func renderIdentities(w io.Writer, entries []identity.Entry) error {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.ID.String())
		if e.Canonical != e.ID {
			fmt.Fprintf(&b, " -> %s", e.Canonical)
		}
		if e.Deprecated {
			b.WriteString(" (renamed)")
		}
		if len(e.Aliases) > 0 {
			names := make([]string, len(e.Aliases))
			for i, a := range e.Aliases {
				names[i] = a.String()
			}
			fmt.Fprintf(&b, "\n  aliases: %s", strings.Join(names, ", "))
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
