package diagfmt

import (
	"io"

	"theoremc/internal/diag"
)

// Short writes one "CODE | source:line:column | message" line per
// diagnostic, notes indented below their parent.
func Short(w io.Writer, bag *diag.Bag, notes bool, l diag.Localizer) error {
	if bag.Len() == 0 {
		return nil
	}
	_, err := io.WriteString(w, diag.FormatLinesWith(bag.Items(), notes, l)+"\n")
	return err
}
