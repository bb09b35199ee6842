package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"theoremc/internal/driver"
	"theoremc/internal/mangle"
)

var mangleCmd = &cobra.Command{
	Use:   "mangle [flags] [paths...]",
	Short: "Print the generated symbol names of theorem files",
	Long: `Check the theorem files under the given paths and print the symbol
table the code generator uses: action identifiers, module identifiers and
harness paths`,
	RunE: runMangle,
}

func init() {
	mangleCmd.Flags().String("format", "pretty", "table format (pretty|json|msgpack)")
	mangleCmd.Flags().StringP("out", "o", "", "write the table to this file instead of stdout")
	mangleCmd.Flags().String("backend", "kani", "backend module used in pretty harness paths")
	mangleCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
}

func runMangle(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd)

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	switch format {
	case "pretty", "json", "msgpack":
	default:
		return fmt.Errorf("unsupported format %q (must be pretty, json or msgpack)", format)
	}
	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	backend, err := cmd.Flags().GetString("backend")
	if err != nil {
		return fmt.Errorf("failed to get backend flag: %w", err)
	}
	if format == "msgpack" && outPath == "" && isTerminal(os.Stdout) {
		return errors.New("refusing to write msgpack to a terminal; use --out")
	}

	out, err := resolveOutput(cmd, "")
	if err != nil {
		return err
	}
	settings, err := resolveCheckSettings(cmd, args, out)
	if err != nil {
		return err
	}
	res, err := driver.Check(cmd.Context(), settings.paths, settings.options)
	if err != nil {
		return err
	}
	if !res.OK() {
		if err := renderDiagnostics(cmd.ErrOrStderr(), res.Diagnostics, res.FileSet, out, nil); err != nil {
			return err
		}
		dumpTraceOnFailure(cmd)
		return errReported
	}

	w := cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", outPath, err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "json":
		err = res.Symbols.EncodeJSON(w)
	case "msgpack":
		err = res.Symbols.EncodeMsgpack(w)
	default:
		err = renderSymbolTable(w, res.Symbols, backend)
	}
	if err != nil {
		return fmt.Errorf("failed to write symbol table: %w", err)
	}
	printTimings(cmd.ErrOrStderr(), out, settings.options.Timer)
	return nil
}

// renderSymbolTable prints the table as aligned two-column sections.
func renderSymbolTable(w io.Writer, t *mangle.SymbolTable, backend string) error {
	var b strings.Builder
	section := func(title string, rows [][2]string) {
		if len(rows) == 0 {
			return
		}
		width := 0
		for _, r := range rows {
			width = max(width, runewidth.StringWidth(r[0]))
		}
		fmt.Fprintf(&b, "%s:\n", title)
		for _, r := range rows {
			fmt.Fprintf(&b, "  %s  %s\n", runewidth.FillRight(r[0], width), r[1])
		}
	}

	actions := make([][2]string, 0, len(t.Actions))
	for _, a := range t.Actions {
		actions = append(actions, [2]string{a.Name, a.Ident})
	}
	modules := make([][2]string, 0, len(t.Modules))
	for _, m := range t.Modules {
		modules = append(modules, [2]string{m.Path, m.Ident})
	}
	harnesses := make([][2]string, 0, len(t.Harnesses))
	for _, h := range t.Harnesses {
		harnesses = append(harnesses, [2]string{h.Key, h.Path(backend)})
	}
	section("actions", actions)
	section("modules", modules)
	section("harnesses", harnesses)
	if b.Len() == 0 {
		b.WriteString("no symbols\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
