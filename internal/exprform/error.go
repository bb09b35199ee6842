package exprform

import (
	"theoremc/internal/ast"
	"theoremc/internal/diag"
	"theoremc/internal/source"
)

type Reason uint8

const (
	// ReasonSyntax means the text is not a Rust expression at all.
	ReasonSyntax Reason = iota + 1
	// ReasonStatement means the text parses but is a statement-like form.
	ReasonStatement
)

// Error describes rejected expression text. Its message is a predicate
// ("is not a valid Rust expression: ...") so callers can prefix the field.
type Error struct {
	Reason Reason
	Code   diag.Code
	Detail string      // grammar error, or the rejected form's name
	Span   source.Span // byte range within the expression text
	Form   ast.ExprKind
}

func (e *Error) Error() string {
	if e.Reason == ReasonStatement {
		return "must be a single expression, not a statement or block"
	}
	return "is not a valid Rust expression: " + e.Detail
}
