package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"theoremc/internal/diag"
	"theoremc/internal/diagfmt"
	"theoremc/internal/exprform"
	"theoremc/internal/lexer"
	"theoremc/internal/source"
)

const exprSource = "<expr>"

var exprCmd = &cobra.Command{
	Use:   "expr [flags] <text>",
	Short: "Classify a Rust expression the way clause fields are checked",
	Long: `Parse text as a single Rust expression and print its top-level form.
Statement-like forms (blocks, loops, assignments, ...) are rejected exactly
as in assume, prove and witness clauses`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExpr,
}

func init() {
	exprCmd.Flags().Bool("tokens", false, "print the token stream as well")
	exprCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runExpr(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	showTokens, err := cmd.Flags().GetBool("tokens")
	if err != nil {
		return fmt.Errorf("failed to get tokens flag: %w", err)
	}
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
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(exprSource, []byte(text)))

	w := cmd.OutOrStdout()
	if showTokens {
		lexBag := diag.NewBag(out.maxDiagnostics)
		reporter := diag.NewDedupReporter(diag.BagReporter{Bag: lexBag, Files: fs})
		toks := lexer.New(file, lexer.Options{Reporter: reporter}).All()
		if format == "json" {
			err = diagfmt.FormatTokensJSON(w, toks)
		} else {
			err = diagfmt.FormatTokensPretty(w, toks, fs)
		}
		if err != nil {
			return err
		}
		if lexBag.HasErrors() {
			lexBag.Sort()
			return reportExprDiagnostics(cmd, lexBag, fs, out, format)
		}
	}

	checkErr := exprform.Check(text)
	if checkErr == nil {
		form, _ := exprform.Classify(text)
		fmt.Fprintf(w, "form: %s\n", form.Kind)
		return nil
	}

	var fe *exprform.Error
	if !errors.As(checkErr, &fe) {
		return checkErr
	}
	pos := file.Position(fe.Span.Start)
	d := diag.NewError(fe.Code, diag.Location{Source: exprSource, Line: pos.Line, Column: pos.Col}, "expression "+fe.Error())
	if fe.Reason == exprform.ReasonStatement {
		d.WithArg("form", fe.Detail)
	}
	bag := diag.NewBag(1)
	bag.Add(d)
	return reportExprDiagnostics(cmd, bag, fs, out, format)
}

func reportExprDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, out outputSettings, format string) error {
	if format == "json" {
		out.format = diagfmt.FormatJSON
	} else if out.format == diagfmt.FormatJSON {
		out.format = diagfmt.FormatPretty
	}
	if err := renderDiagnostics(cmd.ErrOrStderr(), bag, fs, out, nil); err != nil {
		return err
	}
	return errReported
}
