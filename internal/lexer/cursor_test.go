package lexer

import (
	"testing"

	"theoremc/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<expr>", []byte(content))
	return fs.Get(id)
}

func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))

	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Peek(); got != want {
			t.Fatalf("Peek = %q, want %q", got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() || cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Fatalf("expected EOF state at end")
	}
}

func TestPeekLookahead(t *testing.T) {
	cursor := NewCursor(createFile("abc"))

	if b0, b1, ok := cursor.Peek2(); !ok || b0 != 'a' || b1 != 'b' {
		t.Fatalf("Peek2 = %q %q %v", b0, b1, ok)
	}
	if b0, b1, b2, ok := cursor.Peek3(); !ok || b0 != 'a' || b1 != 'b' || b2 != 'c' {
		t.Fatalf("Peek3 = %q %q %q %v", b0, b1, b2, ok)
	}
	if cursor.PeekAt(2) != 'c' || cursor.PeekAt(3) != 0 {
		t.Fatalf("PeekAt wrong")
	}
	cursor.Bump()
	cursor.Bump()
	if _, _, ok := cursor.Peek2(); ok {
		t.Fatalf("Peek2 must fail on the last byte")
	}
}

func TestSpanFromResolve(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("<expr>", []byte("α\nβ")))
	cursor := NewCursor(file)

	mark := cursor.Mark()
	cursor.Bump()
	cursor.Bump()
	span := cursor.SpanFrom(mark)
	if span.Start != 0 || span.End != 2 {
		t.Fatalf("span = %v", span)
	}

	start, end := fs.Resolve(span)
	if start != (source.LineCol{Line: 1, Col: 1}) || end != (source.LineCol{Line: 1, Col: 3}) {
		t.Fatalf("Resolve = %+v..%+v", start, end)
	}

	mark2 := cursor.Mark()
	cursor.Bump() // '\n'
	start2, end2 := fs.Resolve(cursor.SpanFrom(mark2))
	if start2 != (source.LineCol{Line: 1, Col: 3}) || end2 != (source.LineCol{Line: 2, Col: 1}) {
		t.Fatalf("newline span resolves to %+v..%+v", start2, end2)
	}
}

func TestEatAndReset(t *testing.T) {
	cursor := NewCursor(createFile("ab"))

	if cursor.Eat('x') {
		t.Fatalf("Eat must not consume a mismatching byte")
	}
	m := cursor.Mark()
	if !cursor.Eat('a') || !cursor.Eat('b') || !cursor.EOF() {
		t.Fatalf("Eat sequence failed")
	}
	if cursor.Eat('b') {
		t.Fatalf("Eat at EOF must fail")
	}
	cursor.Reset(m)
	if cursor.Peek() != 'a' {
		t.Fatalf("Reset did not rewind")
	}
}
