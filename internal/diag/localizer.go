package diag

// Localizer turns a code and its arguments into display text.
// Implementations live at display boundaries; nothing in the core calls one.
type Localizer interface {
	Localize(code Code, args []Arg) (string, bool)
}

// LocalizerFunc adapts a function to Localizer.
type LocalizerFunc func(code Code, args []Arg) (string, bool)

func (f LocalizerFunc) Localize(code Code, args []Arg) (string, bool) {
	return f(code, args)
}
