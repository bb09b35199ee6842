package lexer

import (
	"theoremc/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword scans an identifier and classifies it with LookupKeyword.
// A lone '_' is the Underscore token.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		return lx.emit(token.Invalid, start)
	}
	if r < utf8RuneSelf {
		if !isIdentStartByte(byte(r)) {
			return lx.scanOperatorOrPunct()
		}
		lx.cursor.Bump()
	} else {
		if !isIdentStartRune(r) {
			return lx.scanOperatorOrPunct()
		}
		lx.bumpRune()
	}
	lx.eatIdentContinue()

	tok := lx.emit(token.Ident, start)
	if tok.Text == "_" {
		tok.Kind = token.Underscore
		return tok
	}
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}

// scanRawIdent scans r#ident. Raw identifiers never become keywords.
func (lx *Lexer) scanRawIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // r
	lx.cursor.Bump() // #
	lx.eatIdentContinue()
	return lx.emit(token.Ident, start)
}

func (lx *Lexer) eatIdentContinue() {
	for {
		r, sz := lx.peekRune()
		if sz == 0 {
			return
		}
		if r < utf8RuneSelf {
			if !isIdentContinueByte(byte(r)) {
				return
			}
			lx.cursor.Bump()
			continue
		}
		if !isIdentContinueRune(r) {
			return
		}
		lx.bumpRune()
	}
}
