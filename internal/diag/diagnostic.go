package diag

import (
	"fmt"
	"strings"
)

// Location points at a place in an input file. Line and Column are 1-based;
// a zero Line means the position is unknown.
type Location struct {
	Source string
	Line   uint32
	Column uint32
}

func (l Location) Known() bool {
	return l.Line > 0
}

// String renders "source:line:column", or just the source when the
// position is unknown.
func (l Location) String() string {
	if !l.Known() {
		return l.Source
	}
	return fmt.Sprintf("%s:%d:%d", l.Source, l.Line, l.Column)
}

// Arg is one named argument of a diagnostic. Args keep insertion order so
// that rendering and serialisation stay deterministic.
type Arg struct {
	Name  string
	Value string
}

type Note struct {
	Location Location
	Msg      string
}

// Diagnostic is the payload of every failure raised by the front end.
// Message is the fallback text; localizers may replace it using Code and Args.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Args     []Arg
	Location Location
	Notes    []Note
}

// Error implements error so a Diagnostic can travel through ordinary error returns.
func (d *Diagnostic) Error() string {
	return d.Render()
}

// Render returns the single-line form "CODE | source:line:column | message".
func (d *Diagnostic) Render() string {
	return d.render(d.Message)
}

// RenderWith renders using the localizer's text when it has one for this code.
func (d *Diagnostic) RenderWith(l Localizer) string {
	return d.render(d.LocalizedMessage(l))
}

// LocalizedMessage returns the localizer's text, or the fallback message.
func (d *Diagnostic) LocalizedMessage(l Localizer) string {
	if l != nil {
		if msg, ok := l.Localize(d.Code, d.Args); ok {
			return msg
		}
	}
	return d.Message
}

func (d *Diagnostic) render(msg string) string {
	var b strings.Builder
	b.WriteString(d.Code.ID())
	b.WriteString(" | ")
	b.WriteString(d.Location.String())
	b.WriteString(" | ")
	b.WriteString(flattenMessage(msg))
	return b.String()
}

// Arg returns the value of the named argument.
func (d *Diagnostic) Arg(name string) (string, bool) {
	for _, a := range d.Args {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func flattenMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
