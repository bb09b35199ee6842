package diag

import "theoremc/internal/source"

// Reporter receives span-based findings from the expression lexer and parser.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(code Code, sev Severity, primary source.Span, msg string)

func (f ReporterFunc) Report(code Code, sev Severity, primary source.Span, msg string) {
	f(code, sev, primary, msg)
}

// BagReporter resolves spans through Files and stores the result in Bag.
type BagReporter struct {
	Bag   *Bag
	Files *source.FileSet
}

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string) {
	if r.Bag == nil {
		return
	}
	var loc Location
	if r.Files != nil {
		f := r.Files.Get(primary.File)
		lc := f.Position(primary.Start)
		loc = Location{Source: f.Path, Line: lc.Line, Column: lc.Col}
	}
	r.Bag.Add(New(sev, code, loc, msg))
}

// FirstError keeps the first error-level report and ignores the rest.
type FirstError struct {
	Code  Code
	Span  source.Span
	Msg   string
	found bool
}

func (r *FirstError) Report(code Code, sev Severity, primary source.Span, msg string) {
	if r.found || sev < SevError {
		return
	}
	r.Code, r.Span, r.Msg, r.found = code, primary, msg, true
}

// Found reports whether an error was recorded.
func (r *FirstError) Found() bool {
	return r.found
}
