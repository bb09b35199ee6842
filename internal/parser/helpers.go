package parser

import (
	"theoremc/internal/ast"
	"theoremc/internal/diag"
	"theoremc/internal/source"
	"theoremc/internal/token"
)

// err reports at the current token.
func (p *Parser) err(code diag.Code, msg string) {
	p.errAt(code, p.diagnosticSpan(), msg)
}

// errAt reports the first error only; later ones are cascades.
func (p *Parser) errAt(code diag.Code, sp source.Span, msg string) {
	if p.failed {
		return
	}
	p.failed = true
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevError, sp, msg)
	}
}

// diagnosticSpan points just past the last token when the input ran out.
func (p *Parser) diagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return p.lastSpan.Tail()
	}
	return peek.Span
}

func (p *Parser) expectedExpression() {
	p.err(diag.SynExpectExpression, "expected expression, found "+p.peek().Describe())
}

// canStartExpr reports whether tok can begin an expression.
func (p *Parser) canStartExpr(tok token.Token) bool {
	switch tok.Kind {
	case token.Ident, token.Lifetime, token.Underscore,
		token.IntLit, token.FloatLit, token.StringLit, token.ByteStringLit, token.CStringLit,
		token.CharLit, token.ByteLit, token.KwTrue, token.KwFalse,
		token.KwSelfLow, token.KwSelfUp, token.KwSuper, token.KwCrate,
		token.KwIf, token.KwMatch, token.KwLoop, token.KwWhile, token.KwFor,
		token.KwUnsafe, token.KwAsync, token.KwMove, token.KwReturn, token.KwBreak,
		token.KwContinue, token.KwYield, token.KwLet, token.KwConst, token.KwTry, token.KwStatic,
		token.LParen, token.LBracket, token.Pipe, token.OrOr, token.Bang, token.Minus,
		token.Star, token.Amp, token.AndAnd, token.DotDot, token.DotDotEq, token.Lt,
		token.ColonColon, token.Pound:
		return true
	case token.LBrace:
		return !p.noStruct
	}
	return false
}

// isBlockLike reports whether an expression ends with a block and so may
// stand as a statement without a trailing semicolon.
func (p *Parser) isBlockLike(id ast.ExprID) bool {
	switch p.exprs.Kind(id) {
	case ast.ExprBlock, ast.ExprIf, ast.ExprMatch, ast.ExprLoop, ast.ExprWhile, ast.ExprForLoop,
		ast.ExprUnsafe, ast.ExprAsync, ast.ExprConstBlock, ast.ExprTryBlock:
		return true
	case ast.ExprMacro:
		x := p.exprs.Get(id)
		return x.Op == token.LBrace
	}
	return false
}

// skipDelimited consumes a balanced token tree starting at an open delimiter.
func (p *Parser) skipDelimited() bool {
	open := p.advance()
	stack := []token.Kind{open.Kind.MatchingDelim()}
	for len(stack) > 0 {
		tok := p.peek()
		switch {
		case tok.Kind == token.EOF:
			p.errAt(diag.SynUnclosedDelimiter, open.Span, "unclosed delimiter `"+open.Kind.String()+"`")
			return false
		case tok.Kind.IsOpenDelim():
			stack = append(stack, tok.Kind.MatchingDelim())
		case tok.Kind.IsCloseDelim():
			if tok.Kind != stack[len(stack)-1] {
				p.err(diag.SynUnclosedDelimiter, "mismatched closing delimiter "+tok.Describe())
				return false
			}
			stack = stack[:len(stack)-1]
		}
		p.advance()
	}
	return true
}

// closeDelim consumes the closing delimiter of a group opened at open.
func (p *Parser) closeDelim(open token.Token) bool {
	want := open.Kind.MatchingDelim()
	if p.eat(want) {
		return true
	}
	if p.at(token.EOF) {
		p.errAt(diag.SynUnclosedDelimiter, open.Span, "unclosed delimiter `"+open.Kind.String()+"`")
		return false
	}
	p.err(diag.SynUnexpectedToken, "expected `"+want.String()+"`, found "+p.peek().Describe())
	return false
}

// commaList parses `item (, item)* [,]` up to the closing delimiter of open.
func (p *Parser) commaList(open token.Token, item func() bool) bool {
	closing := open.Kind.MatchingDelim()
	for !p.at(closing) {
		if p.at(token.EOF) {
			break
		}
		if !item() {
			return false
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	return p.closeDelim(open)
}

// skipOuterAttributes consumes #[...] attributes in front of expressions,
// statements and match arms.
func (p *Parser) skipOuterAttributes() bool {
	for p.at(token.Pound) && p.peekN(1).Kind == token.LBracket {
		p.advance()
		if !p.skipDelimited() {
			return false
		}
	}
	return true
}
