package main

import (
	"fmt"
	"io"

	"theoremc/internal/diag"
	"theoremc/internal/diagfmt"
	"theoremc/internal/observ"
	"theoremc/internal/source"
)

// renderDiagnostics writes bag in the selected format. JSON output
// carries the timings; the other formats leave them to printTimings.
func renderDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, out outputSettings, timer *observ.Timer) error {
	switch out.format {
	case diagfmt.FormatJSON:
		var report *observ.Report
		if out.timings && timer != nil {
			r := timer.Report()
			report = &r
		}
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			Max:          out.maxDiagnostics,
			IncludeNotes: true,
			Localizer:    out.localizer,
		}, report)
	case diagfmt.FormatShort:
		return diagfmt.Short(w, bag, true, out.localizer)
	default:
		return diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     out.color,
			Context:   2,
			ShowNotes: true,
			Localizer: out.localizer,
		})
	}
}

func printTimings(w io.Writer, out outputSettings, timer *observ.Timer) {
	if !out.timings || timer == nil || out.format == diagfmt.FormatJSON {
		return
	}
	fmt.Fprint(w, timer.Summary())
}
