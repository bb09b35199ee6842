package parser

import (
	"theoremc/internal/ast"
	"theoremc/internal/diag"
	"theoremc/internal/source"
	"theoremc/internal/token"
)

func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	if !p.skipOuterAttributes() {
		return ast.NoExprID, false
	}
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit, token.FloatLit, token.StringLit, token.ByteStringLit, token.CStringLit,
		token.CharLit, token.ByteLit, token.KwTrue, token.KwFalse:
		p.advance()
		return p.exprs.New(ast.Expr{Kind: ast.ExprLit, Span: tok.Span, Name: tok.Text}), true

	case token.Ident, token.KwSelfLow, token.KwSelfUp, token.KwSuper, token.KwCrate,
		token.ColonColon, token.Lt:
		return p.parsePathStart()

	case token.Underscore:
		p.advance()
		return p.exprs.New(ast.Expr{Kind: ast.ExprInfer, Span: tok.Span}), true

	case token.LParen:
		return p.parseParenExpr()
	case token.LBracket:
		return p.parseArrayExpr()
	case token.LBrace:
		return p.parseBlockExpr(ast.ExprBlock, "")

	case token.Pipe, token.OrOr, token.KwMove, token.KwStatic:
		return p.parseClosureExpr()
	case token.KwAsync:
		return p.parseAsyncExpr()

	case token.Lifetime:
		return p.parseLabeledExpr()
	case token.KwIf:
		return p.parseIfExpr()
	case token.KwMatch:
		return p.parseMatchExpr()
	case token.KwWhile:
		return p.parseWhileExpr("")
	case token.KwFor:
		return p.parseForExpr("")
	case token.KwLoop:
		return p.parseLoopExpr("")
	case token.KwUnsafe:
		p.advance()
		return p.parseBlockExpr(ast.ExprUnsafe, "")
	case token.KwConst:
		p.advance()
		return p.parseBlockExpr(ast.ExprConstBlock, "")
	case token.KwTry:
		p.advance()
		return p.parseBlockExpr(ast.ExprTryBlock, "")

	case token.KwLet:
		return p.parseLetExpr()
	case token.KwReturn, token.KwYield:
		return p.parseValueJump()
	case token.KwBreak:
		return p.parseBreakExpr()
	case token.KwContinue:
		p.advance()
		label := ""
		if p.at(token.Lifetime) {
			label = p.advance().Text
		}
		return p.exprs.New(ast.Expr{Kind: ast.ExprContinue, Span: p.spanFrom(tok.Span), Name: label}), true
	}

	p.expectedExpression()
	return ast.NoExprID, false
}

// parsePathStart parses a path expression and whatever it introduces:
// a macro invocation or a struct literal.
func (p *Parser) parsePathStart() (ast.ExprID, bool) {
	start := p.peek().Span
	path, ok := p.parseExprPath()
	if !ok {
		return ast.NoExprID, false
	}

	if p.at(token.Bang) {
		next := p.peekN(1).Kind
		if next == token.LParen || next == token.LBracket || next == token.LBrace {
			p.advance()
			delim := p.peek().Kind
			if !p.skipDelimited() {
				return ast.NoExprID, false
			}
			return p.exprs.New(ast.Expr{
				Kind: ast.ExprMacro,
				Span: p.spanFrom(start),
				Name: path + "!",
				Op:   delim,
			}), true
		}
	}

	if p.at(token.LBrace) && !p.noStruct {
		return p.parseStructLit(path, start)
	}
	return p.exprs.New(ast.Expr{Kind: ast.ExprPath, Span: p.spanFrom(start), Name: path}), true
}

// parseStructLit parses `Path { field: expr, short, ..base }`.
func (p *Parser) parseStructLit(path string, start source.Span) (ast.ExprID, bool) {
	open := p.advance()
	var subs []ast.ExprID
	ok := p.withStruct(func() bool {
		closing := open.Kind.MatchingDelim()
		for !p.at(closing) && !p.at(token.EOF) {
			if !p.skipOuterAttributes() {
				return false
			}
			if p.at(token.DotDot) {
				p.advance()
				if !p.at(closing) {
					base, ok := p.parseExpr()
					if !ok {
						return false
					}
					subs = append(subs, base)
				}
				break
			}
			field := p.peek()
			if field.Kind != token.Ident && field.Kind != token.IntLit {
				p.err(diag.SynExpectIdentifier, "expected field name in struct literal, found "+field.Describe())
				return false
			}
			p.advance()
			if p.eat(token.Colon) {
				val, ok := p.parseExpr()
				if !ok {
					return false
				}
				subs = append(subs, val)
			} else if field.Kind == token.Ident {
				subs = append(subs, p.exprs.New(ast.Expr{Kind: ast.ExprPath, Span: field.Span, Name: field.Text}))
			} else {
				p.err(diag.SynUnexpectedToken, "expected `:` after tuple field index, found "+p.peek().Describe())
				return false
			}
			if !p.eat(token.Comma) {
				break
			}
		}
		return p.closeDelim(open)
	})
	if !ok {
		return ast.NoExprID, false
	}
	return p.exprs.New(ast.Expr{Kind: ast.ExprStruct, Span: p.spanFrom(start), Name: path, Subs: subs}), true
}

// parseParenExpr parses (), (e), (e,) and (a, b, ..).
func (p *Parser) parseParenExpr() (ast.ExprID, bool) {
	open := p.advance()
	var subs []ast.ExprID
	trailingComma := false
	ok := p.withStruct(func() bool {
		for !p.at(token.RParen) && !p.at(token.EOF) {
			e, ok := p.parseExpr()
			if !ok {
				return false
			}
			subs = append(subs, e)
			trailingComma = p.eat(token.Comma)
			if !trailingComma {
				break
			}
		}
		return p.closeDelim(open)
	})
	if !ok {
		return ast.NoExprID, false
	}
	kind := ast.ExprTuple
	if len(subs) == 1 && !trailingComma {
		kind = ast.ExprParen
	}
	return p.exprs.New(ast.Expr{Kind: kind, Span: p.spanFrom(open.Span), Subs: subs}), true
}

// parseArrayExpr parses [], [a, b, ..] and [x; n].
func (p *Parser) parseArrayExpr() (ast.ExprID, bool) {
	open := p.advance()
	kind := ast.ExprArray
	var subs []ast.ExprID
	ok := p.withStruct(func() bool {
		if p.at(token.RBracket) {
			return p.closeDelim(open)
		}
		first, ok := p.parseExpr()
		if !ok {
			return false
		}
		subs = append(subs, first)
		if p.eat(token.Semicolon) {
			kind = ast.ExprRepeat
			count, ok := p.parseExpr()
			if !ok {
				return false
			}
			subs = append(subs, count)
			return p.closeDelim(open)
		}
		if !p.eat(token.Comma) {
			return p.closeDelim(open)
		}
		return p.commaList(open, func() bool {
			e, ok := p.parseExpr()
			subs = append(subs, e)
			return ok
		})
	})
	if !ok {
		return ast.NoExprID, false
	}
	return p.exprs.New(ast.Expr{Kind: kind, Span: p.spanFrom(open.Span), Subs: subs}), true
}

// parseClosureExpr parses `[static] [move] |params| [-> T] body` and `|| body`.
func (p *Parser) parseClosureExpr() (ast.ExprID, bool) {
	start := p.peek().Span
	p.eat(token.KwStatic)
	p.eat(token.KwMove)

	paramsStart := p.pos
	switch {
	case p.eat(token.OrOr):
	case p.at(token.Pipe):
		p.advance()
		for !p.at(token.Pipe) {
			if !p.skipOuterAttributes() {
				return ast.NoExprID, false
			}
			if _, ok := p.parsePatternText(false); !ok {
				return ast.NoExprID, false
			}
			if p.eat(token.Colon) {
				if _, ok := p.parseTypeText(true); !ok {
					return ast.NoExprID, false
				}
			}
			if !p.eat(token.Comma) {
				break
			}
		}
		if _, ok := p.expect(token.Pipe); !ok {
			return ast.NoExprID, false
		}
	default:
		p.err(diag.SynUnexpectedToken, "expected `|` to start closure parameters, found "+p.peek().Describe())
		return ast.NoExprID, false
	}
	params := p.textSince(paramsStart)

	var body ast.ExprID
	if p.eat(token.Arrow) {
		if _, ok := p.parseTypeText(true); !ok {
			return ast.NoExprID, false
		}
		if !p.at(token.LBrace) {
			p.err(diag.SynExpectBlock, "expected `{` after closure return type, found "+p.peek().Describe())
			return ast.NoExprID, false
		}
		blk, ok := p.parseBlockExpr(ast.ExprBlock, "")
		if !ok {
			return ast.NoExprID, false
		}
		body = blk
	} else {
		e, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		body = e
	}
	return p.exprs.New(ast.Expr{
		Kind: ast.ExprClosure,
		Span: p.spanFrom(start),
		Name: params,
		Subs: []ast.ExprID{body},
	}), true
}

// parseAsyncExpr parses `async [move] { .. }` or an async closure.
func (p *Parser) parseAsyncExpr() (ast.ExprID, bool) {
	start := p.advance().Span
	n := 0
	if p.at(token.KwMove) {
		n = 1
	}
	switch p.peekN(n).Kind {
	case token.LBrace:
		p.eat(token.KwMove)
		id, ok := p.parseBlockExpr(ast.ExprAsync, "")
		if ok {
			p.exprs.Get(id).Span = p.spanFrom(start)
		}
		return id, ok
	case token.Pipe, token.OrOr:
		id, ok := p.parseClosureExpr()
		if ok {
			p.exprs.Get(id).Span = p.spanFrom(start)
		}
		return id, ok
	}
	p.err(diag.SynExpectBlock, "expected `{` or closure after `async`, found "+p.peekN(n).Describe())
	return ast.NoExprID, false
}

// parseLetExpr parses `let PAT = EXPR` in expression position (conditions,
// or a bare `let` that is then rejected as a statement form).
func (p *Parser) parseLetExpr() (ast.ExprID, bool) {
	start := p.advance().Span
	pat, ok := p.parsePatternText(true)
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.Assign); !ok {
		return ast.NoExprID, false
	}
	rhs, ok := p.parseBinaryExpr(precComparison)
	if !ok {
		return ast.NoExprID, false
	}
	return p.exprs.New(ast.Expr{
		Kind: ast.ExprLet,
		Span: p.spanFrom(start),
		Name: pat,
		Subs: []ast.ExprID{rhs},
	}), true
}

// parseValueJump parses `return [expr]` and `yield [expr]`.
func (p *Parser) parseValueJump() (ast.ExprID, bool) {
	tok := p.advance()
	kind := ast.ExprReturn
	if tok.Kind == token.KwYield {
		kind = ast.ExprYield
	}
	var subs []ast.ExprID
	if p.canStartExpr(p.peek()) {
		val, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		subs = append(subs, val)
	}
	return p.exprs.New(ast.Expr{Kind: kind, Span: p.spanFrom(tok.Span), Subs: subs}), true
}

// parseBreakExpr parses `break ['label] [expr]`.
func (p *Parser) parseBreakExpr() (ast.ExprID, bool) {
	tok := p.advance()
	label := ""
	if p.at(token.Lifetime) && p.peekN(1).Kind != token.Colon {
		label = p.advance().Text
	}
	var subs []ast.ExprID
	if p.canStartExpr(p.peek()) {
		val, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		subs = append(subs, val)
	}
	return p.exprs.New(ast.Expr{Kind: ast.ExprBreak, Span: p.spanFrom(tok.Span), Name: label, Subs: subs}), true
}
