package schema

import (
	"fmt"
	"strings"

	"theoremc/internal/token"
)

const (
	reasonEmptyIdent    = "identifier must not be empty"
	reasonIdentPattern  = "must match the pattern ^[A-Za-z_][A-Za-z0-9_]*$ (ASCII letters, digits, and underscores; must not start with a digit)"
	reasonIdentReserved = "this is a Rust reserved keyword and cannot be used as a theorem identifier"
)

// IdentifierError is returned for names that cannot become Rust identifiers.
type IdentifierError struct {
	Identifier string
	Reason     string
}

func (e *IdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier '%s': %s", e.Identifier, e.Reason)
}

// ValidateIdentifier checks theorem names, Forall variables, Let names,
// `as` bindings and ref targets.
func ValidateIdentifier(s string) error {
	switch {
	case s == "":
		return &IdentifierError{Identifier: s, Reason: reasonEmptyIdent}
	case !IsIdentifier(s):
		return &IdentifierError{Identifier: s, Reason: reasonIdentPattern}
	case token.IsReservedWord(s):
		return &IdentifierError{Identifier: s, Reason: reasonIdentReserved}
	}
	return nil
}

// IsIdentifier reports whether s matches ^[A-Za-z_][A-Za-z0-9_]*$.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// ValidateActionName checks the dotted action grammar: at least two
// segments, each an identifier and none a reserved word. It returns a
// reason fragment suitable for prefixing with the step path.
func ValidateActionName(name string) string {
	segments := strings.Split(name, ".")
	if len(segments) < 2 {
		return fmt.Sprintf("action '%s' must have at least two dot-separated segments", name)
	}
	for i, seg := range segments {
		if !IsIdentifier(seg) {
			return fmt.Sprintf("action '%s' segment %d ('%s') %s", name, i+1, seg, reasonIdentPattern)
		}
		if token.IsReservedWord(seg) {
			return fmt.Sprintf("action '%s' segment %d ('%s') is a Rust reserved keyword", name, i+1, seg)
		}
	}
	return ""
}
