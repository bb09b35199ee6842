package lexer

import (
	"theoremc/internal/diag"
	"theoremc/internal/token"
)

// scanQuoted scans a "..." literal after skipping prefix bytes (b, c).
// Escapes are skipped, not validated; newlines are allowed as in Rust.
func (lx *Lexer) scanQuoted(prefix int, kind token.Kind) token.Token {
	start := lx.cursor.Mark()
	for range prefix {
		lx.cursor.Bump()
	}
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		switch lx.cursor.Bump() {
		case '"':
			lx.eatSuffix()
			return lx.emit(kind, start)
		case '\\':
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated double quote string")
	return lx.emit(token.Invalid, start)
}

// rawStringAhead reports whether r"..." or r#"..."# starts after skip bytes.
func (lx *Lexer) rawStringAhead(skip uint32) bool {
	i := skip
	for lx.cursor.PeekAt(i) == '#' {
		i++
	}
	return lx.cursor.PeekAt(i) == '"'
}

// scanRawString scans r#*"..."#* after skipping prefix bytes (b, c) and the 'r'.
func (lx *Lexer) scanRawString(prefix int, kind token.Kind) token.Token {
	start := lx.cursor.Mark()
	for range prefix {
		lx.cursor.Bump()
	}
	hashes := 0
	for lx.cursor.Eat('#') {
		hashes++
	}
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != '"' {
			continue
		}
		n := 0
		for n < hashes && lx.cursor.Peek() == '#' {
			lx.cursor.Bump()
			n++
		}
		if n == hashes {
			lx.eatSuffix()
			return lx.emit(kind, start)
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated raw string")
	return lx.emit(token.Invalid, start)
}

// scanCharOrLifetime distinguishes 'a' (char) from 'a (lifetime or label).
func (lx *Lexer) scanCharOrLifetime() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\''

	if lx.cursor.Peek() == '\\' {
		return lx.finishChar(start, token.CharLit)
	}

	r, sz := lx.peekRune()
	if sz == 0 || r == '\n' {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
		return lx.emit(token.Invalid, start)
	}
	lx.bumpRune()
	if lx.cursor.Peek() == '\'' {
		lx.cursor.Bump()
		return lx.emit(token.CharLit, start)
	}
	if isIdentStartRune(r) {
		lx.eatIdentContinue()
		if lx.cursor.Peek() == '\'' {
			// 'ab' is neither a char nor a lifetime
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedChar, sp, "character literal may only contain one codepoint")
			return lx.emit(token.Invalid, start)
		}
		return lx.emit(token.Lifetime, start)
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
	return lx.emit(token.Invalid, start)
}

func (lx *Lexer) scanByteChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // b
	lx.cursor.Bump() // '\''
	return lx.finishChar(start, token.ByteLit)
}

// finishChar scans the body of a char literal up to its closing quote.
func (lx *Lexer) finishChar(start Mark, kind token.Kind) token.Token {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '\'':
			lx.cursor.Bump()
			return lx.emit(kind, start)
		case '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
			return lx.emit(token.Invalid, start)
		case '\\':
			lx.cursor.Bump()
			lx.cursor.Bump()
		default:
			lx.bumpRune()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
	return lx.emit(token.Invalid, start)
}
