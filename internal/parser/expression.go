package parser

import (
	"strings"

	"theoremc/internal/ast"
	"theoremc/internal/diag"
	"theoremc/internal/token"
)

// parseExpr parses a full expression including assignment and ranges.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseAssignExpr()
}

// parseAssignExpr handles '=' and compound assignment; both are right-associative.
func (p *Parser) parseAssignExpr() (ast.ExprID, bool) {
	lhs, ok := p.parseRangeExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if !isAssignOp(p.peek().Kind) {
		return lhs, true
	}
	op := p.advance()
	rhs, ok := p.parseAssignExpr()
	if !ok {
		return ast.NoExprID, false
	}
	kind := ast.ExprAssign
	if op.Kind != token.Assign {
		kind = ast.ExprCompoundAssign
	}
	return p.exprs.New(ast.Expr{
		Kind: kind,
		Span: p.exprs.Span(lhs).Cover(p.exprs.Span(rhs)),
		Op:   op.Kind,
		Subs: []ast.ExprID{lhs, rhs},
	}), true
}

// parseRangeExpr handles a..b, a.., ..b, .., a..=b and ..=b.
func (p *Parser) parseRangeExpr() (ast.ExprID, bool) {
	start := ast.NoExprID
	if !p.atAny(token.DotDot, token.DotDotEq) {
		lhs, ok := p.parseBinaryExpr(precLogicalOr)
		if !ok {
			return ast.NoExprID, false
		}
		start = lhs
		if !p.atAny(token.DotDot, token.DotDotEq) {
			return lhs, true
		}
	}

	op := p.advance()
	sp := op.Span
	if start.IsValid() {
		sp = p.exprs.Span(start).Cover(sp)
	}
	end := ast.NoExprID
	if p.canStartExpr(p.peek()) {
		rhs, ok := p.parseBinaryExpr(precLogicalOr)
		if !ok {
			return ast.NoExprID, false
		}
		end = rhs
		sp = sp.Cover(p.exprs.Span(rhs))
	} else if op.Kind == token.DotDotEq {
		p.err(diag.SynExpectExpression, "inclusive range with no end, found "+p.peek().Describe())
		return ast.NoExprID, false
	}
	if p.atAny(token.DotDot, token.DotDotEq) {
		p.err(diag.SynUnexpectedToken, "range operators cannot be chained")
		return ast.NoExprID, false
	}
	return p.exprs.New(ast.Expr{
		Kind: ast.ExprRange,
		Span: sp,
		Op:   op.Kind,
		Subs: []ast.ExprID{start, end},
	}), true
}

// parseBinaryExpr is the precedence-climbing loop for binary operators and casts.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.continueBinaryExpr(left, minPrec)
}

func (p *Parser) continueBinaryExpr(left ast.ExprID, minPrec int) (ast.ExprID, bool) {
	for {
		opTok := p.peek()
		prec := binaryPrec(opTok.Kind)
		if prec < 0 || prec < minPrec {
			return left, true
		}

		if opTok.Kind == token.KwAs {
			p.advance()
			ty, ok := p.parseTypeText(false)
			if !ok {
				return ast.NoExprID, false
			}
			left = p.exprs.New(ast.Expr{
				Kind: ast.ExprCast,
				Span: p.spanFrom(p.exprs.Span(left)),
				Name: ty,
				Subs: []ast.ExprID{left},
			})
			continue
		}

		p.advance()
		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return ast.NoExprID, false
		}
		left = p.exprs.New(ast.Expr{
			Kind: ast.ExprBinary,
			Span: p.exprs.Span(left).Cover(p.exprs.Span(right)),
			Op:   opTok.Kind,
			Subs: []ast.ExprID{left, right},
		})

		if prec == precComparison && binaryPrec(p.peek().Kind) == precComparison {
			p.err(diag.SynChainedComparison, "comparison operators cannot be chained")
			return ast.NoExprID, false
		}
	}
}

// parseUnaryExpr collects prefix operators and applies them right to left.
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	type prefix struct {
		tok token.Token
		mut bool
	}
	var prefixes []prefix
	for {
		switch p.peek().Kind {
		case token.Minus, token.Bang, token.Star:
			prefixes = append(prefixes, prefix{tok: p.advance()})
			continue
		case token.Amp, token.AndAnd:
			if p.at(token.AndAnd) {
				p.splitGlued(token.Amp, token.Amp)
				prefixes = append(prefixes, prefix{tok: p.advance()})
			}
			amp := p.advance()
			mut := p.eat(token.KwMut)
			prefixes = append(prefixes, prefix{tok: amp, mut: mut})
			continue
		}
		break
	}

	operand, ok := p.parsePostfixExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for i := len(prefixes) - 1; i >= 0; i-- {
		pre := prefixes[i]
		kind := ast.ExprUnary
		if pre.tok.Kind == token.Amp {
			kind = ast.ExprReference
		}
		operand = p.exprs.New(ast.Expr{
			Kind: kind,
			Span: pre.tok.Span.Cover(p.exprs.Span(operand)),
			Op:   pre.tok.Kind,
			Mut:  pre.mut,
			Subs: []ast.ExprID{operand},
		})
	}
	return operand, true
}

// textSince renders the tokens consumed since pos, separating words by spaces.
func (p *Parser) textSince(pos int) string {
	var b strings.Builder
	prevWord := false
	for _, tok := range p.toks[pos:p.pos] {
		text := tok.Text
		if text == "" {
			text = tok.Kind.String()
		}
		word := tok.Kind == token.Ident || tok.IsKeyword() || tok.IsLiteral() || tok.Kind == token.Lifetime
		if word && prevWord {
			b.WriteByte(' ')
		}
		b.WriteString(text)
		prevWord = word
	}
	return b.String()
}
