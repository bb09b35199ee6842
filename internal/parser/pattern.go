package parser

import (
	"theoremc/internal/diag"
	"theoremc/internal/token"
)

// parsePatternText parses a pattern and returns its normalized text.
// topAlt allows `A | B` alternatives at the top level.
func (p *Parser) parsePatternText(topAlt bool) (string, bool) {
	start := p.pos
	if !p.parsePattern(topAlt) {
		return "", false
	}
	return p.textSince(start), true
}

func (p *Parser) parsePattern(topAlt bool) bool {
	if topAlt {
		p.eat(token.Pipe)
	}
	if !p.parsePatternNoAlt() {
		return false
	}
	for topAlt && p.eat(token.Pipe) {
		if !p.parsePatternNoAlt() {
			return false
		}
	}
	return true
}

func (p *Parser) parsePatternNoAlt() bool {
	tok := p.peek()
	switch tok.Kind {
	case token.Underscore:
		p.advance()
		return true

	case token.DotDot:
		p.advance()
		if p.rangeEndStart() {
			return p.parseRangeEnd()
		}
		return true

	case token.DotDotEq:
		p.advance()
		return p.parseRangeEnd()

	case token.Amp, token.AndAnd:
		if tok.Kind == token.AndAnd {
			p.splitGlued(token.Amp, token.Amp)
		}
		p.advance()
		p.eat(token.KwMut)
		return p.parsePatternNoAlt()

	case token.LParen, token.LBracket:
		open := p.advance()
		return p.commaList(open, func() bool { return p.parsePattern(true) })

	case token.KwRef, token.KwMut:
		p.advance()
		if tok.Kind == token.KwRef {
			p.eat(token.KwMut)
		}
		return p.parseBinding()

	case token.KwBox:
		p.advance()
		return p.parsePatternNoAlt()

	case token.Minus:
		p.advance()
		if !p.atAny(token.IntLit, token.FloatLit) {
			p.err(diag.SynExpectPattern, "expected numeric literal after `-` in pattern, found "+p.peek().Describe())
			return false
		}
		p.advance()
		return p.parseRangeTail()

	case token.Ident:
		switch p.peekN(1).Kind {
		case token.ColonColon, token.LParen, token.LBrace, token.Bang,
			token.DotDot, token.DotDotEq, token.DotDotDot:
		default:
			return p.parseBinding()
		}
		return p.parsePathPattern()

	case token.KwSelfLow, token.KwSelfUp, token.KwSuper, token.KwCrate, token.ColonColon, token.Lt:
		return p.parsePathPattern()
	}

	if tok.IsLiteral() {
		p.advance()
		return p.parseRangeTail()
	}
	p.err(diag.SynExpectPattern, "expected pattern, found "+tok.Describe())
	return false
}

// parseBinding parses `name [@ subpattern]` after any ref/mut prefix.
func (p *Parser) parseBinding() bool {
	if _, ok := p.expect(token.Ident); !ok {
		return false
	}
	if p.eat(token.At) {
		return p.parsePatternNoAlt()
	}
	return true
}

// parsePathPattern parses unit, tuple-struct, struct and macro patterns,
// and ranges whose bounds are paths.
func (p *Parser) parsePathPattern() bool {
	if _, ok := p.parseExprPath(); !ok {
		return false
	}
	switch p.peek().Kind {
	case token.LParen:
		open := p.advance()
		return p.commaList(open, func() bool { return p.parsePattern(true) })
	case token.LBrace:
		return p.parseStructPatternFields()
	case token.Bang:
		p.advance()
		if !p.peek().Kind.IsOpenDelim() {
			p.err(diag.SynUnexpectedToken, "expected delimiter after macro name, found "+p.peek().Describe())
			return false
		}
		return p.skipDelimited()
	}
	return p.parseRangeTail()
}

func (p *Parser) parseStructPatternFields() bool {
	open := p.advance()
	closing := open.Kind.MatchingDelim()
	for !p.at(closing) && !p.at(token.EOF) {
		if !p.skipOuterAttributes() {
			return false
		}
		if p.eat(token.DotDot) {
			break
		}
		p.eat(token.KwBox)
		if p.eat(token.KwRef) {
			p.eat(token.KwMut)
		} else {
			p.eat(token.KwMut)
		}
		field := p.peek()
		if field.Kind != token.Ident && field.Kind != token.IntLit {
			p.err(diag.SynExpectIdentifier, "expected field name in struct pattern, found "+field.Describe())
			return false
		}
		p.advance()
		if p.eat(token.Colon) && !p.parsePattern(true) {
			return false
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	return p.closeDelim(open)
}

// parseRangeTail parses an optional `..=END`, `...END` or `..[END]` after a bound.
func (p *Parser) parseRangeTail() bool {
	switch p.peek().Kind {
	case token.DotDotEq, token.DotDotDot:
		p.advance()
		return p.parseRangeEnd()
	case token.DotDot:
		p.advance()
		if p.rangeEndStart() {
			return p.parseRangeEnd()
		}
	}
	return true
}

func (p *Parser) rangeEndStart() bool {
	tok := p.peek()
	if tok.IsLiteral() {
		return true
	}
	switch tok.Kind {
	case token.Minus, token.Ident, token.KwSelfUp, token.KwSelfLow, token.KwCrate, token.KwSuper, token.ColonColon:
		return true
	}
	return false
}

func (p *Parser) parseRangeEnd() bool {
	if p.eat(token.Minus) {
		if !p.atAny(token.IntLit, token.FloatLit) {
			p.err(diag.SynExpectPattern, "expected numeric literal in range pattern, found "+p.peek().Describe())
			return false
		}
		p.advance()
		return true
	}
	if p.peek().IsLiteral() {
		p.advance()
		return true
	}
	if _, ok := p.parseExprPath(); !ok {
		return false
	}
	return true
}
