package lexer

import (
	"theoremc/internal/source"
	"theoremc/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // one-token lookahead
	hold   []token.Trivia // pending leading trivia
	last   token.Kind     // kind of the last emitted token
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next significant token with its Leading trivia attached.
// After the end of input it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.emptySpan(),
		}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == 'r' && lx.rawStringAhead(1):
		tok = lx.scanRawString(1, token.StringLit)
	case ch == 'b' && lx.cursor.PeekAt(1) == '\'':
		tok = lx.scanByteChar()
	case ch == 'b' && lx.cursor.PeekAt(1) == '"':
		tok = lx.scanQuoted(1, token.ByteStringLit)
	case ch == 'b' && lx.cursor.PeekAt(1) == 'r' && lx.rawStringAhead(2):
		tok = lx.scanRawString(2, token.ByteStringLit)
	case ch == 'c' && lx.cursor.PeekAt(1) == '"':
		tok = lx.scanQuoted(1, token.CStringLit)
	case ch == 'c' && lx.cursor.PeekAt(1) == 'r' && lx.rawStringAhead(2):
		tok = lx.scanRawString(2, token.CStringLit)
	case ch == 'r' && lx.cursor.PeekAt(1) == '#' && isIdentStartByte(lx.cursor.PeekAt(2)):
		tok = lx.scanRawIdent()
	case isIdentStartByte(ch), ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber(lx.last == token.Dot)
	case ch == '"':
		tok = lx.scanQuoted(0, token.StringLit)
	case ch == '\'':
		tok = lx.scanCharOrLifetime()
	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.hold
	lx.hold = nil
	lx.last = tok.Kind
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// All lexes the remaining input; the final element is always EOF.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		t := lx.Next()
		out = append(out, t)
		if t.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
