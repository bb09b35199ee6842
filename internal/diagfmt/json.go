package diagfmt

import (
	"encoding/json"
	"io"

	"theoremc/internal/diag"
	"theoremc/internal/observ"
	"theoremc/internal/source"
)

// LocationJSON is a diagnostic position. Line and column are omitted when
// unknown.
type LocationJSON struct {
	File   string `json:"file"`
	Line   uint32 `json:"line,omitempty"`
	Column uint32 `json:"column,omitempty"`
}

type ArgJSON struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON is one diagnostic. Rendered carries the canonical
// single-line form so tools need not rebuild it.
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Title    string       `json:"title"`
	Message  string       `json:"message"`
	Rendered string       `json:"rendered"`
	Location LocationJSON `json:"location"`
	Args     []ArgJSON    `json:"args,omitempty"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput is the root of the JSON output.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Truncated   bool             `json:"truncated,omitempty"`
	Timings     *observ.Report   `json:"timings,omitempty"`
}

func makeLocation(loc diag.Location, fs *source.FileSet, mode PathMode) LocationJSON {
	return LocationJSON{
		File:   displayPath(loc.Source, mode, fs),
		Line:   loc.Line,
		Column: loc.Column,
	}
}

// BuildDiagnosticsOutput builds the JSON document without serialising it.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	n := len(items)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}

	diagnostics := make([]DiagnosticJSON, 0, n)
	for _, d := range items[:n] {
		out := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.LocalizedMessage(opts.Localizer),
			Rendered: d.RenderWith(opts.Localizer),
			Location: makeLocation(d.Location, fs, opts.PathMode),
		}
		for _, a := range d.Args {
			out.Args = append(out.Args, ArgJSON{Name: a.Name, Value: a.Value})
		}
		if opts.IncludeNotes {
			for _, note := range d.Notes {
				out.Notes = append(out.Notes, NoteJSON{
					Message:  note.Msg,
					Location: makeLocation(note.Location, fs, opts.PathMode),
				})
			}
		}
		diagnostics = append(diagnostics, out)
	}

	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
		Truncated:   n < len(items),
	}
}

// JSON writes the diagnostics as an indented JSON document, with the
// phase timings attached when timings is non-nil.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts, timings *observ.Report) error {
	output := BuildDiagnosticsOutput(bag, fs, opts)
	output.Timings = timings

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
