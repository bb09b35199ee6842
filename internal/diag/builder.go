package diag

import "fmt"

func New(sev Severity, code Code, loc Location, msg string) *Diagnostic {
	return &Diagnostic{
		Severity: sev,
		Code:     code,
		Location: loc,
		Message:  msg,
	}
}

func NewError(code Code, loc Location, msg string) *Diagnostic {
	return New(SevError, code, loc, msg)
}

// Errorf builds an error diagnostic with a formatted fallback message.
func Errorf(code Code, loc Location, format string, args ...any) *Diagnostic {
	return New(SevError, code, loc, fmt.Sprintf(format, args...))
}

// WithArg appends a named argument.
func (d *Diagnostic) WithArg(name, value string) *Diagnostic {
	d.Args = append(d.Args, Arg{Name: name, Value: value})
	return d
}

// WithNote appends a secondary location.
func (d *Diagnostic) WithNote(loc Location, msg string) *Diagnostic {
	d.Notes = append(d.Notes, Note{Location: loc, Msg: msg})
	return d
}
