package lexer

import (
	"theoremc/internal/diag"
	"theoremc/internal/token"
)

// scanNumber handles 0, 1_000, 0b1010, 0o17, 0xff, 1.5, 1., 1e-3, 2.5E+10
// and type suffixes (10u64, 1.0f32), which stay in Token.Text.
// After a '.', only an integer is scanned so that t.0.1 is two tuple indices.
func (lx *Lexer) scanNumber(afterDot bool) token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'b', 'o', 'x':
			base := lx.cursor.PeekAt(1)
			lx.cursor.Bump()
			lx.cursor.Bump()
			digits := 0
			for {
				b := lx.cursor.Peek()
				if b == '_' {
					lx.cursor.Bump()
					continue
				}
				if !isBaseDigit(base, b) {
					break
				}
				lx.cursor.Bump()
				digits++
			}
			if digits == 0 {
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexBadNumber, sp, "no valid digits found for number")
				return lx.emit(token.Invalid, start)
			}
			lx.eatSuffix()
			return lx.emit(token.IntLit, start)
		}
	}

	lx.eatDecDigits()
	if afterDot {
		return lx.emit(token.IntLit, start)
	}

	// fraction: "1.5" and "1." are floats; "1..2", "1.foo" and "1._x" are not
	if lx.cursor.Peek() == '.' {
		next := lx.cursor.PeekAt(1)
		switch {
		case isDec(next):
			lx.cursor.Bump()
			lx.eatDecDigits()
			kind = token.FloatLit
		case next == '.' || isIdentStartByte(next) || next >= utf8RuneSelf:
		default:
			lx.cursor.Bump()
			return lx.emit(token.FloatLit, start)
		}
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		save := lx.cursor.Mark()
		lx.cursor.Bump()
		if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
			lx.cursor.Bump()
		}
		for lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
		if isDec(lx.cursor.Peek()) {
			lx.eatDecDigits()
			kind = token.FloatLit
		} else {
			// not an exponent; leave 'e' for the suffix scanner to reject
			lx.cursor.Reset(save)
		}
	}

	suffixStart := lx.cursor.Mark()
	lx.eatSuffix()
	if suffix := string(lx.file.Content[suffixStart:lx.cursor.Off]); suffix != "" {
		switch {
		case isFloatSuffix(suffix):
			kind = token.FloatLit
		case isIntSuffix(suffix) && kind == token.IntLit:
		default:
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "invalid suffix `"+suffix+"` for number literal")
			return lx.emit(token.Invalid, start)
		}
	}
	return lx.emit(kind, start)
}

func (lx *Lexer) eatDecDigits() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) eatSuffix() {
	if isIdentStartByte(lx.cursor.Peek()) {
		lx.eatIdentContinue()
	}
}

func isBaseDigit(base, b byte) bool {
	switch base {
	case 'b':
		return b == '0' || b == '1'
	case 'o':
		return b >= '0' && b <= '7'
	default:
		return isHex(b)
	}
}

func isIntSuffix(s string) bool {
	switch s {
	case "u8", "u16", "u32", "u64", "u128", "usize",
		"i8", "i16", "i32", "i64", "i128", "isize":
		return true
	}
	return false
}

func isFloatSuffix(s string) bool {
	return s == "f32" || s == "f64"
}
