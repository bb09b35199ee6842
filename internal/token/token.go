package token

import (
	"theoremc/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a literal, including true and false.
func (t Token) IsLiteral() bool {
	return t.Kind.IsLiteral() || t.Kind == KwTrue || t.Kind == KwFalse
}

// IsKeyword reports whether the token is a strict or reserved keyword.
func (t Token) IsKeyword() bool {
	return t.Kind.IsKeyword()
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Describe renders the token for error messages: "`x`" for tokens with text,
// the kind description otherwise.
func (t Token) Describe() string {
	switch {
	case t.Kind == EOF:
		return "end of input"
	case t.Text != "":
		return "`" + t.Text + "`"
	default:
		return "`" + t.Kind.String() + "`"
	}
}
