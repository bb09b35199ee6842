package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"theoremc/internal/diag"
	"theoremc/internal/source"
)

type palette struct {
	sev    map[diag.Severity]func(a ...any) string
	bold   func(a ...any) string
	gutter func(a ...any) string
	caret  func(a ...any) string
	note   func(a ...any) string
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		sev: map[diag.Severity]func(a ...any) string{
			diag.SevInfo:    mk(color.FgCyan, color.Bold),
			diag.SevWarning: mk(color.FgYellow, color.Bold),
			diag.SevError:   mk(color.FgRed, color.Bold),
		},
		bold:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed, color.Bold),
		note:   mk(color.FgCyan),
	}
}

// Pretty renders diagnostics for people. Each one gets a header line, its
// location, an excerpt of the source with a caret under the column when
// fs holds the file, and its notes. Expects bag.Sort() beforehand when a
// stable order matters.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	var b strings.Builder
	for i, d := range bag.Items() {
		if i > 0 {
			b.WriteByte('\n')
		}
		writePretty(&b, d, fs, opts, p)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writePretty(b *strings.Builder, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	sev, ok := p.sev[d.Severity]
	if !ok {
		sev = p.bold
	}
	label := d.Severity.String()
	fmt.Fprintf(b, "%s%s %s\n",
		sev(fmt.Sprintf("%s[%s]", label, d.Code.ID())),
		p.bold(":"),
		p.bold(strings.TrimSpace(d.LocalizedMessage(opts.Localizer))))

	loc := d.Location
	if loc.Source != "" {
		shown := loc
		shown.Source = displayPath(loc.Source, opts.PathMode, fs)
		fmt.Fprintf(b, "  %s %s\n", p.gutter("-->"), shown.String())
	}
	if file := lookup(fs, loc); file != nil {
		writeExcerpt(b, file, loc, int(max(opts.Context, 0)), p)
	}

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		b.WriteString("  ")
		b.WriteString(p.note("= note:"))
		b.WriteByte(' ')
		if n.Location.Source != "" {
			shown := n.Location
			shown.Source = displayPath(shown.Source, opts.PathMode, fs)
			b.WriteString(shown.String())
			b.WriteString(": ")
		}
		b.WriteString(n.Msg)
		b.WriteByte('\n')
	}
}

func lookup(fs *source.FileSet, loc diag.Location) *source.File {
	if fs == nil || !loc.Known() {
		return nil
	}
	f, ok := fs.GetByPath(loc.Source)
	if !ok {
		return nil
	}
	return f
}

func writeExcerpt(b *strings.Builder, f *source.File, loc diag.Location, context int, p palette) {
	first := max(1, int(loc.Line)-context)
	width := len(fmt.Sprint(loc.Line))
	blank := strings.Repeat(" ", width)

	fmt.Fprintf(b, "%s %s\n", blank, p.gutter("|"))
	for n := first; n <= int(loc.Line); n++ {
		num := fmt.Sprintf("%*d", width, n)
		fmt.Fprintf(b, "%s %s %s\n", p.gutter(num), p.gutter("|"), f.GetLine(uint32(n))) //nolint:gosec // n <= loc.Line
	}
	if loc.Column == 0 {
		return
	}
	line := f.GetLine(loc.Line)
	fmt.Fprintf(b, "%s %s %s%s\n", blank, p.gutter("|"), caretPad(line, int(loc.Column)-1), p.caret("^"))
}

// caretPad returns the whitespace that puts a caret under column col+1,
// keeping tabs and honouring wide runes.
func caretPad(line string, col int) string {
	var pad strings.Builder
	for i, r := range []rune(line) {
		if i >= col {
			break
		}
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return pad.String()
}

func displayPath(path string, mode PathMode, fs *source.FileSet) string {
	if mode == PathModeAuto || path == "" {
		return path
	}
	base := ""
	if fs != nil {
		base = fs.BaseDir()
	}
	return source.FormatPath(path, mode.String(), base)
}
