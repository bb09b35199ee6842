// Package exprform decides whether embedded expression text is a single
// value-producing Rust expression.
//
// Text is parsed with the full expression grammar first. A parse failure
// is a syntax error; a successful parse is then matched once against an
// explicit denylist of statement-like forms. Everything not on the list is
// accepted, so new value-producing syntax needs no change here.
package exprform

import (
	"maps"
	"slices"

	"theoremc/internal/ast"
	"theoremc/internal/diag"
	"theoremc/internal/parser"
	"theoremc/internal/source"
)

// KindSet is a set of expression kinds.
type KindSet map[ast.ExprKind]struct{}

func NewKindSet(kinds ...ast.ExprKind) KindSet {
	s := make(KindSet, len(kinds))
	for _, k := range kinds {
		s[k] = struct{}{}
	}
	return s
}

func (s KindSet) Contains(k ast.ExprKind) bool {
	_, ok := s[k]
	return ok
}

// Kinds lists the members in enum order.
func (s KindSet) Kinds() []ast.ExprKind {
	return slices.Sorted(maps.Keys(s))
}

// Compound assignments share one kind; the operator is kept in Expr.Op.
var denylist = NewKindSet(
	ast.ExprAssign,
	ast.ExprCompoundAssign,
	ast.ExprAsync,
	ast.ExprBlock,
	ast.ExprBreak,
	ast.ExprConstBlock,
	ast.ExprContinue,
	ast.ExprForLoop,
	ast.ExprWhile,
	ast.ExprLoop,
	ast.ExprLet,
	ast.ExprReturn,
	ast.ExprTryBlock,
	ast.ExprUnsafe,
	ast.ExprYield,
)

// Denylist returns a copy of the statement-like forms that are rejected.
func Denylist() KindSet {
	return maps.Clone(denylist)
}

// Form is the classification of successfully parsed text.
type Form struct {
	Kind ast.ExprKind
	Span source.Span
}

// StatementLike reports whether the form is on the denylist.
func (f Form) StatementLike() bool {
	return denylist.Contains(f.Kind)
}

// Classify parses text as one Rust expression and reports its top-level form.
// The returned error is an *Error with Reason ReasonSyntax.
func Classify(text string) (Form, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("<expr>", []byte(text)))

	first := &diag.FirstError{}
	res := parser.ParseExpr(file, parser.Options{Reporter: first})
	if !res.OK {
		e := &Error{Reason: ReasonSyntax, Code: diag.SynInvalidExpression, Detail: "invalid syntax"}
		if first.Found() {
			e.Code, e.Detail, e.Span = first.Code, first.Msg, first.Span
		}
		return Form{}, e
	}
	return Form{Kind: res.Exprs.Kind(res.Expr), Span: res.Exprs.Span(res.Expr)}, nil
}

// Check accepts text only when it parses and is not a statement-like form.
func Check(text string) error {
	form, err := Classify(text)
	if err != nil {
		return err
	}
	if form.StatementLike() {
		return &Error{
			Reason: ReasonStatement,
			Code:   diag.SynStatementForm,
			Detail: form.Kind.String(),
			Span:   form.Span,
			Form:   form.Kind,
		}
	}
	return nil
}
