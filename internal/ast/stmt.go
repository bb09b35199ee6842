package ast

import "theoremc/internal/source"

type StmtKind uint8

const (
	// StmtLet is `let pat [: ty] [= init [else { .. }]];`
	StmtLet StmtKind = iota
	// StmtExpr is an expression without a trailing semicolon.
	StmtExpr
	// StmtSemi is an expression followed by ';'.
	StmtSemi
	// StmtEmpty is a lone ';'.
	StmtEmpty
)

type Stmt struct {
	Kind StmtKind
	Span source.Span
	Expr ExprID // initializer for StmtLet, may be NoExprID
	Else ExprID // diverging else block of a let-else
}

type Block struct {
	Span  source.Span
	Label string
	Stmts []Stmt
}

// Tail returns the trailing expression of the block, if any.
func (b *Block) Tail() ExprID {
	if b == nil || len(b.Stmts) == 0 {
		return NoExprID
	}
	last := b.Stmts[len(b.Stmts)-1]
	if last.Kind != StmtExpr {
		return NoExprID
	}
	return last.Expr
}
