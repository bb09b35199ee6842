package ast

import (
	"strings"
)

// Dump renders id as a compact s-expression, e.g.
// (binary >= (method balance (path result)) (path amount)).
func (e *Exprs) Dump(id ExprID) string {
	var b strings.Builder
	e.dump(&b, id)
	return b.String()
}

func (e *Exprs) dump(b *strings.Builder, id ExprID) {
	x := e.Get(id)
	if x == nil {
		b.WriteString("_")
		return
	}
	b.WriteByte('(')
	b.WriteString(x.Kind.String())
	switch x.Kind {
	case ExprBinary, ExprUnary, ExprCompoundAssign, ExprRange:
		b.WriteByte(' ')
		b.WriteString(x.Op.String())
	}
	if x.Mut {
		b.WriteString(" mut")
	}
	if x.Name != "" {
		b.WriteByte(' ')
		b.WriteString(x.Name)
	}
	for _, sub := range x.Subs {
		b.WriteByte(' ')
		e.dump(b, sub)
	}
	if x.Body.IsValid() {
		b.WriteByte(' ')
		e.dumpBlock(b, x.Body)
	}
	for _, arm := range x.Arms {
		b.WriteString(" (arm")
		if arm.Guard.IsValid() {
			b.WriteString(" if ")
			e.dump(b, arm.Guard)
		}
		b.WriteByte(' ')
		e.dump(b, arm.Body)
		b.WriteByte(')')
	}
	if x.Else.IsValid() {
		b.WriteString(" else ")
		e.dump(b, x.Else)
	}
	b.WriteByte(')')
}

func (e *Exprs) dumpBlock(b *strings.Builder, id BlockID) {
	blk := e.Block(id)
	b.WriteByte('{')
	for i, st := range blk.Stmts {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch st.Kind {
		case StmtLet:
			b.WriteString("let")
			if st.Expr.IsValid() {
				b.WriteByte(' ')
				e.dump(b, st.Expr)
			}
			b.WriteByte(';')
		case StmtSemi:
			e.dump(b, st.Expr)
			b.WriteByte(';')
		case StmtExpr:
			e.dump(b, st.Expr)
		case StmtEmpty:
			b.WriteByte(';')
		}
	}
	b.WriteByte('}')
}
