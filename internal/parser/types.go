package parser

import (
	"theoremc/internal/diag"
	"theoremc/internal/token"
)

// parseTypeText parses a type and returns its normalized text.
func (p *Parser) parseTypeText(allowPlus bool) (string, bool) {
	start := p.pos
	if !p.parseType(allowPlus) {
		return "", false
	}
	return p.textSince(start), true
}

// parseType parses a Rust type. allowPlus is false after `as` and `&`,
// where a following `+` belongs to the enclosing expression.
func (p *Parser) parseType(allowPlus bool) bool {
	switch p.peek().Kind {
	case token.LParen:
		open := p.advance()
		return p.commaList(open, func() bool { return p.parseType(true) })

	case token.LBracket:
		open := p.advance()
		if !p.parseType(true) {
			return false
		}
		if p.eat(token.Semicolon) {
			ok := p.withStruct(func() bool {
				_, ok := p.parseExpr()
				return ok
			})
			if !ok {
				return false
			}
		}
		return p.closeDelim(open)

	case token.Amp, token.AndAnd:
		if p.at(token.AndAnd) {
			p.splitGlued(token.Amp, token.Amp)
		}
		p.advance()
		p.eat(token.Lifetime)
		p.eat(token.KwMut)
		return p.parseType(false)

	case token.Star:
		p.advance()
		if !p.eat(token.KwConst) && !p.eat(token.KwMut) {
			p.err(diag.SynExpectType, "expected `const` or `mut` after `*` in pointer type, found "+p.peek().Describe())
			return false
		}
		return p.parseType(false)

	case token.Bang, token.Underscore:
		p.advance()
		return true

	case token.KwFn, token.KwUnsafe, token.KwExtern:
		return p.parseFnPointerType()

	case token.KwFor:
		p.advance()
		if !p.at(token.Lt) {
			p.err(diag.SynUnexpectedToken, "expected `<` after `for`, found "+p.peek().Describe())
			return false
		}
		if !p.parseGenericArgs() {
			return false
		}
		return p.parseType(allowPlus)

	case token.KwImpl, token.KwDyn:
		p.advance()
		return p.parseBounds(allowPlus)

	case token.Lt, token.Ident, token.KwSelfUp, token.KwSelfLow, token.KwSuper, token.KwCrate, token.ColonColon:
		if !p.parseTypePath() {
			return false
		}
		if allowPlus && p.at(token.Plus) {
			p.advance()
			return p.parseBounds(true)
		}
		return true
	}
	p.err(diag.SynExpectType, "expected type, found "+p.peek().Describe())
	return false
}

// parseTypePath parses a path in type position, where generics need no turbofish.
func (p *Parser) parseTypePath() bool {
	if p.at(token.Lt) {
		if !p.parseQualifiedSelf() {
			return false
		}
	} else {
		p.eat(token.ColonColon)
	}
	return p.parsePathSegments(false)
}

// parseFnPointerType parses `[unsafe] [extern "abi"] fn(A, B) -> C`.
func (p *Parser) parseFnPointerType() bool {
	p.eat(token.KwUnsafe)
	if p.eat(token.KwExtern) {
		p.eat(token.StringLit)
	}
	if _, ok := p.expect(token.KwFn); !ok {
		return false
	}
	if !p.at(token.LParen) {
		p.err(diag.SynUnexpectedToken, "expected `(` in function pointer type, found "+p.peek().Describe())
		return false
	}
	open := p.advance()
	ok := p.commaList(open, func() bool {
		if p.eat(token.DotDotDot) {
			return true
		}
		if (p.at(token.Ident) || p.at(token.Underscore)) && p.peekN(1).Kind == token.Colon {
			p.advance()
			p.advance()
		}
		return p.parseType(true)
	})
	if !ok {
		return false
	}
	if p.eat(token.Arrow) {
		return p.parseType(false)
	}
	return true
}

// parseBounds parses `Bound (+ Bound)*`: trait paths, `?Sized`, lifetimes,
// parenthesised bounds and `for<'a>` prefixes.
func (p *Parser) parseBounds(allowPlus bool) bool {
	for {
		switch p.peek().Kind {
		case token.Lifetime:
			p.advance()
		case token.LParen:
			open := p.advance()
			if !p.parseBounds(true) || !p.closeDelim(open) {
				return false
			}
		default:
			p.eat(token.Question)
			if p.eat(token.Tilde) {
				p.eat(token.KwConst)
			}
			if p.at(token.KwFor) {
				p.advance()
				if !p.at(token.Lt) || !p.parseGenericArgs() {
					if !p.failed {
						p.err(diag.SynUnexpectedToken, "expected `<` after `for`, found "+p.peek().Describe())
					}
					return false
				}
			}
			if !p.parseTypePath() {
				return false
			}
		}
		if !allowPlus || !p.eat(token.Plus) {
			return true
		}
	}
}
