package token

import (
	"testing"
)

func TestLookupKeyword(t *testing.T) {
	cases := map[string]Kind{
		"let":    KwLet,
		"loop":   KwLoop,
		"match":  KwMatch,
		"Self":   KwSelfUp,
		"self":   KwSelfLow,
		"try":    KwTry,
		"yield":  KwYield,
		"unsafe": KwUnsafe,
		"true":   KwTrue,
	}
	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v, %v; want %v", lexeme, got, ok, want)
		}
	}

	for _, s := range []string{"union", "gen", "macro_rules", "Let", "u64", "result"} {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) unexpectedly matched", s)
		}
	}
}

func TestIsReservedWord(t *testing.T) {
	for _, s := range []string{"fn", "type", "async", "abstract", "union", "gen", "Self"} {
		if !IsReservedWord(s) {
			t.Errorf("%q should be reserved", s)
		}
	}
	for _, s := range []string{"deposit", "Union", "amount", "r#fn", "_"} {
		if IsReservedWord(s) {
			t.Errorf("%q should not be reserved", s)
		}
	}
}

func TestKindPredicates(t *testing.T) {
	compound := []Kind{PlusAssign, MinusAssign, StarAssign, SlashAssign, PercentAssign,
		CaretAssign, AmpAssign, PipeAssign, ShlAssign, ShrAssign}
	if len(compound) != 10 {
		t.Fatalf("expected ten compound assignment kinds")
	}
	for _, k := range compound {
		if !k.IsCompoundAssign() {
			t.Errorf("%v should be compound assignment", k)
		}
	}
	for _, k := range []Kind{Assign, EqEq, Plus, Shr} {
		if k.IsCompoundAssign() {
			t.Errorf("%v must not be compound assignment", k)
		}
	}
	if !KwYield.IsKeyword() || !KwAs.IsKeyword() || Ident.IsKeyword() {
		t.Fatalf("keyword range is wrong")
	}
	if LParen.MatchingDelim() != RParen || LBrace.MatchingDelim() != RBrace || Plus.MatchingDelim() != Invalid {
		t.Fatalf("MatchingDelim mismatch")
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KwLet: "let", ShlAssign: "<<=", EOF: "end of input", Ident: "identifier", FatArrow: "=>",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
	}
}

func TestDescribe(t *testing.T) {
	if got := (Token{Kind: EOF}).Describe(); got != "end of input" {
		t.Fatalf("EOF describe = %q", got)
	}
	if got := (Token{Kind: Ident, Text: "x"}).Describe(); got != "`x`" {
		t.Fatalf("ident describe = %q", got)
	}
	if !(Token{Kind: KwFalse}).IsLiteral() || (Token{Kind: Ident}).IsLiteral() {
		t.Fatalf("IsLiteral mismatch")
	}
}
