package parser

import (
	"theoremc/internal/diag"
	"theoremc/internal/token"
)

func isPathSegment(k token.Kind) bool {
	switch k {
	case token.Ident, token.KwSelfLow, token.KwSelfUp, token.KwSuper, token.KwCrate:
		return true
	}
	return false
}

// parseExprPath parses an expression path: `a::b`, `::a`, `Vec::<u8>::new`,
// `<T as Trait>::CONST`. Generic arguments require the turbofish.
func (p *Parser) parseExprPath() (string, bool) {
	start := p.pos
	if p.at(token.Lt) {
		if !p.parseQualifiedSelf() {
			return "", false
		}
	} else {
		p.eat(token.ColonColon)
	}
	if !p.parsePathSegments(true) {
		return "", false
	}
	return p.textSince(start), true
}

// parseQualifiedSelf parses `<Type [as Trait]>::` in front of a path.
func (p *Parser) parseQualifiedSelf() bool {
	p.advance()
	if !p.parseType(true) {
		return false
	}
	if p.eat(token.KwAs) {
		if !p.parseTypePath() {
			return false
		}
	}
	if !p.eatGt() {
		p.err(diag.SynUnexpectedToken, "expected `>` to close qualified path, found "+p.peek().Describe())
		return false
	}
	_, ok := p.expect(token.ColonColon)
	return ok
}

// parsePathSegments parses `seg (:: seg)*`. With turbofish set, generic
// arguments must be written `::<..>`; otherwise `<..>` follows a segment directly.
func (p *Parser) parsePathSegments(turbofish bool) bool {
	for {
		if !isPathSegment(p.peek().Kind) {
			p.err(diag.SynExpectIdentifier, "expected path segment, found "+p.peek().Describe())
			return false
		}
		p.advance()

		if !turbofish {
			if p.at(token.Lt) && !p.parseGenericArgs() {
				return false
			}
			if p.at(token.LParen) && !p.parseFnSugar() {
				return false
			}
		}
		if !p.at(token.ColonColon) {
			return true
		}
		next := p.peekN(1).Kind
		if next == token.Lt {
			p.advance()
			if !p.parseGenericArgs() {
				return false
			}
			if !p.at(token.ColonColon) || !isPathSegment(p.peekN(1).Kind) {
				return true
			}
			p.advance()
			continue
		}
		if !isPathSegment(next) {
			return true
		}
		p.advance()
	}
}

// parseGenericArgs parses `<arg, ..>` where an arg is a lifetime, a type,
// a const argument or an associated item binding.
func (p *Parser) parseGenericArgs() bool {
	open := p.advance()
	for {
		if p.eatGt() {
			return true
		}
		if p.at(token.EOF) {
			p.errAt(diag.SynUnclosedDelimiter, open.Span, "unclosed generic argument list")
			return false
		}
		if !p.parseGenericArg() {
			return false
		}
		if !p.eat(token.Comma) {
			if p.eatGt() {
				return true
			}
			p.err(diag.SynUnexpectedToken, "expected `,` or `>` in generic arguments, found "+p.peek().Describe())
			return false
		}
	}
}

func (p *Parser) parseGenericArg() bool {
	tok := p.peek()
	switch {
	case tok.Kind == token.Lifetime:
		p.advance()
		return true
	case tok.IsLiteral():
		p.advance()
		return true
	case tok.Kind == token.Minus:
		p.advance()
		if !p.peek().IsLiteral() {
			p.err(diag.SynUnexpectedToken, "expected literal after `-` in const argument, found "+p.peek().Describe())
			return false
		}
		p.advance()
		return true
	case tok.Kind == token.LBrace:
		return p.skipDelimited()
	case tok.Kind == token.Ident && p.peekN(1).Kind == token.Assign:
		p.advance()
		p.advance()
		return p.parseType(true)
	case tok.Kind == token.Ident && p.peekN(1).Kind == token.Colon:
		p.advance()
		p.advance()
		return p.parseBounds(true)
	}
	return p.parseType(true)
}

// parseFnSugar parses the `(A, B) -> C` tail of Fn-family bounds.
func (p *Parser) parseFnSugar() bool {
	open := p.advance()
	ok := p.commaList(open, func() bool { return p.parseType(true) })
	if !ok {
		return false
	}
	if p.eat(token.Arrow) {
		return p.parseType(false)
	}
	return true
}
