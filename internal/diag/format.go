package diag

import (
	"strings"
)

// FormatLines renders diagnostics one per line in the canonical
// "CODE | source:line:column | message" form. Notes follow their parent,
// indented by two spaces, with the same code.
func FormatLines(diags []*Diagnostic, includeNotes bool) string {
	return FormatLinesWith(diags, includeNotes, nil)
}

// FormatLinesWith is FormatLines with an optional localizer.
func FormatLinesWith(diags []*Diagnostic, includeNotes bool, l Localizer) string {
	var b strings.Builder
	for i, d := range diags {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(d.RenderWith(l))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			b.WriteString("\n  ")
			b.WriteString(d.Code.ID())
			b.WriteString(" | ")
			b.WriteString(n.Location.String())
			b.WriteString(" | note: ")
			b.WriteString(flattenMessage(n.Msg))
		}
	}
	return b.String()
}
