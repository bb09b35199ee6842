package parser

import (
	"theoremc/internal/ast"
	"theoremc/internal/diag"
	"theoremc/internal/token"
)

func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	base, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.parsePostfixOps(base)
}

// parsePostfixOps applies ?, .await, .field, .0, .method(..), calls and indexing.
func (p *Parser) parsePostfixOps(base ast.ExprID) (ast.ExprID, bool) {
	for {
		switch p.peek().Kind {
		case token.Question:
			p.advance()
			base = p.exprs.New(ast.Expr{
				Kind: ast.ExprTry,
				Span: p.spanFrom(p.exprs.Span(base)),
				Subs: []ast.ExprID{base},
			})

		case token.Dot:
			p.advance()
			next, ok := p.parseDotSuffix(base)
			if !ok {
				return ast.NoExprID, false
			}
			base = next

		case token.LParen:
			args, ok := p.parseCallArgs()
			if !ok {
				return ast.NoExprID, false
			}
			base = p.exprs.New(ast.Expr{
				Kind: ast.ExprCall,
				Span: p.spanFrom(p.exprs.Span(base)),
				Subs: append([]ast.ExprID{base}, args...),
			})

		case token.LBracket:
			open := p.advance()
			var index ast.ExprID
			ok := p.withStruct(func() bool {
				var ok bool
				index, ok = p.parseExpr()
				return ok
			})
			if !ok || !p.closeDelim(open) {
				return ast.NoExprID, false
			}
			base = p.exprs.New(ast.Expr{
				Kind: ast.ExprIndex,
				Span: p.spanFrom(p.exprs.Span(base)),
				Subs: []ast.ExprID{base, index},
			})

		default:
			return base, true
		}
	}
}

func (p *Parser) parseDotSuffix(base ast.ExprID) (ast.ExprID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.KwAwait:
		p.advance()
		return p.exprs.New(ast.Expr{
			Kind: ast.ExprAwait,
			Span: p.spanFrom(p.exprs.Span(base)),
			Subs: []ast.ExprID{base},
		}), true

	case token.IntLit:
		p.advance()
		return p.exprs.New(ast.Expr{
			Kind: ast.ExprField,
			Span: p.spanFrom(p.exprs.Span(base)),
			Name: tok.Text,
			Subs: []ast.ExprID{base},
		}), true

	case token.Ident:
		p.advance()
		name := tok.Text
		turbofish := false
		if p.at(token.ColonColon) {
			p.advance()
			if !p.at(token.Lt) {
				p.err(diag.SynUnexpectedToken, "expected `<` after `::` in method call, found "+p.peek().Describe())
				return ast.NoExprID, false
			}
			if !p.parseGenericArgs() {
				return ast.NoExprID, false
			}
			turbofish = true
		}
		if !p.at(token.LParen) {
			if turbofish {
				p.err(diag.SynUnexpectedToken, "expected `(` after method generics, found "+p.peek().Describe())
				return ast.NoExprID, false
			}
			return p.exprs.New(ast.Expr{
				Kind: ast.ExprField,
				Span: p.spanFrom(p.exprs.Span(base)),
				Name: name,
				Subs: []ast.ExprID{base},
			}), true
		}
		args, ok := p.parseCallArgs()
		if !ok {
			return ast.NoExprID, false
		}
		return p.exprs.New(ast.Expr{
			Kind: ast.ExprMethodCall,
			Span: p.spanFrom(p.exprs.Span(base)),
			Name: name,
			Subs: append([]ast.ExprID{base}, args...),
		}), true
	}

	p.err(diag.SynExpectIdentifier, "expected field name or method after `.`, found "+tok.Describe())
	return ast.NoExprID, false
}

// parseCallArgs parses a parenthesised, comma-separated argument list.
func (p *Parser) parseCallArgs() ([]ast.ExprID, bool) {
	open := p.advance()
	var args []ast.ExprID
	ok := p.withStruct(func() bool {
		return p.commaList(open, func() bool {
			arg, ok := p.parseExpr()
			args = append(args, arg)
			return ok
		})
	})
	return args, ok
}
