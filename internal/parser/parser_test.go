package parser_test

import (
	"testing"

	"theoremc/internal/diag"
	"theoremc/internal/parser"
	"theoremc/internal/source"
)

func parse(t *testing.T, input string) (parser.Result, *diag.FirstError) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("<expr>", []byte(input)))
	first := &diag.FirstError{}
	return parser.ParseExpr(file, parser.Options{Reporter: first}), first
}

func TestParseExprShapes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"x > 0", "(binary > (path x) (lit 0))"},
		{"result.balance() >= amount", "(binary >= (method balance (path result)) (path amount))"},
		{"a + b * c", "(binary + (path a) (binary * (path b) (path c)))"},
		{"a - b - c", "(binary - (binary - (path a) (path b)) (path c))"},
		{"a && b || c", "(binary || (binary && (path a) (path b)) (path c))"},
		{"a | b ^ c & d", "(binary | (path a) (binary ^ (path b) (binary & (path c) (path d))))"},
		{"1 << 2 + 3", "(binary << (lit 1) (binary + (lit 2) (lit 3)))"},
		{"!hnsw.edge_present(&graph, 2, 0, 1)", "(unary ! (method edge_present (path hnsw) (ref (path graph)) (lit 2) (lit 0) (lit 1)))"},
		{"amount <= (u64::MAX - a.balance)", "(binary <= (path amount) (paren (binary - (path u64::MAX) (field balance (path a)))))"},
		{"-x as u8", "(cast u8 (unary - (path x)))"},
		{"x as u32 + 1", "(binary + (cast u32 (path x)) (lit 1))"},
		{"&&mut x", "(ref (ref mut (path x)))"},
		{"*p", "(unary * (path p))"},
		{"x = y = 1", "(assign (path x) (assign (path y) (lit 1)))"},
		{"x += 1", "(compound-assign += (path x) (lit 1))"},
		{"0..10", "(range .. (lit 0) (lit 10))"},
		{"..n", "(range .. _ (path n))"},
		{"a..=b", "(range ..= (path a) (path b))"},
		{"f(x)?.await", "(await (try (call (path f) (path x))))"},
		{"t.0", "(field 0 (path t))"},
		{"xs[i + 1]", "(index (path xs) (binary + (path i) (lit 1)))"},
		{"Vec::<u8>::new()", "(call (path Vec::<u8>::new))"},
		{"HashMap::<String, Vec<u8>>::new()", "(call (path HashMap::<String,Vec<u8>>::new))"},
		{"it.collect::<Vec<_>>()", "(method collect (path it))"},
		{"<T as Default>::default()", "(call (path <T as Default>::default))"},
		{"x as Vec<u8>", "(cast Vec<u8> (path x))"},
		{"if x > 0 { a } else { b }", "(if (binary > (path x) (lit 0)) {(path a)} else (block {(path b)}))"},
		{"if a == B {} else if c {}", "(if (binary == (path a) (path B)) {} else (if (path c) {}))"},
		{"if let Some(v) = opt && v > 1 { v }", "(if (binary && (let Some(v) (path opt)) (binary > (path v) (lit 1))) {(path v)})"},
		{"match x { 1 => true, _ => false }", "(match (path x) (arm (lit true)) (arm (lit false)))"},
		{"match x { Some(n) if n > 0 => { n } None => 0 }", "(match (path x) (arm if (binary > (path n) (lit 0)) (block {(path n)})) (arm (lit 0)))"},
		{"|x| x > 0", "(closure |x| (binary > (path x) (lit 0)))"},
		{"move |a: u8, b| -> u8 { a }", "(closure |a:u8,b| (block {(path a)}))"},
		{"|| true", "(closure || (lit true))"},
		{"Point { x: 1, y }", "(struct Point (lit 1) (path y))"},
		{"Point { x: 1, ..base }", "(struct Point (lit 1) (path base))"},
		{"[0; 4]", "(repeat (lit 0) (lit 4))"},
		{"[1, 2, 3]", "(array (lit 1) (lit 2) (lit 3))"},
		{"(a, b)", "(tuple (path a) (path b))"},
		{"(a,)", "(tuple (path a))"},
		{"()", "(tuple)"},
		{"vec![1, 2]", "(macro vec!)"},
		{"assert!(x > 0) && y", "(binary && (macro assert!) (path y))"},
		{"_", "(infer)"},
		{"{ let x = 1; x > 0 }", "(block {let (lit 1); (binary > (path x) (lit 0))})"},
		{"let x = 5", "(let x (lit 5))"},
		{"loop { break 42; }", "(loop {(break (lit 42));})"},
		{"'outer: loop { break 'outer; }", "(loop 'outer {(break 'outer);})"},
		{"for i in 0..10 { }", "(for (range .. (lit 0) (lit 10)) {})"},
		{"while true { }", "(while (lit true) {})"},
		{"unsafe { x }", "(unsafe {(path x)})"},
		{"async { x }", "(async {(path x)})"},
		{"const { 42 }", "(const {(lit 42)})"},
		{"return 42", "(return (lit 42))"},
		{"continue", "(continue)"},
		{"{ if a { b } c }", "(block {(if (path a) {(path b)}) (path c)})"},
		{"{ match x { _ => {} }.len() }", "(block {(method len (match (path x) (arm (block {}))))})"},
		{"items.iter().any(|v| v == &Foo { a: 1 })", "(method any (method iter (path items)) (closure |v| (binary == (path v) (ref (struct Foo (lit 1))))))"},
		{"f::<{ N + 1 }>()", "(call (path f::<{N+1}>))"},
	}
	for _, tc := range cases {
		res, first := parse(t, tc.in)
		if !res.OK {
			t.Errorf("%q: parse failed: %s", tc.in, first.Msg)
			continue
		}
		if got := res.Exprs.Dump(res.Expr); got != tc.want {
			t.Errorf("%q:\n got  %s\n want %s", tc.in, got, tc.want)
		}
	}
}

func TestParseExprErrors(t *testing.T) {
	cases := []struct {
		in   string
		code diag.Code
		msg  string
	}{
		{"x >", diag.SynExpectExpression, "expected expression, found end of input"},
		{"if { }", diag.SynExpectExpression, "expected expression, found `{`"},
		{"not rust code %%", diag.SynTrailingInput, "unexpected token `rust` after end of expression"},
		{"a < b < c", diag.SynChainedComparison, "comparison operators cannot be chained"},
		{"(a", diag.SynUnclosedDelimiter, "unclosed delimiter `(`"},
		{"{ fn f() {} }", diag.SynItemNotSupported, "item declarations are not supported inside expression blocks, found `fn`"},
		{"{ a b }", diag.SynUnexpectedToken, "expected `;` or `}` after expression, found `b`"},
		{"match x { 1 => a 2 => b }", diag.SynUnexpectedToken, "expected `,` following `match` arm, found `2`"},
		{"x.", diag.SynExpectIdentifier, "expected field name or method after `.`, found end of input"},
		{"", diag.SynExpectExpression, "expected expression, found end of input"},
		{"a ¤ b", diag.LexUnknownChar, "unknown start of token: ¤"},
	}
	for _, tc := range cases {
		res, first := parse(t, tc.in)
		if res.OK {
			t.Errorf("%q: expected failure, got %s", tc.in, res.Exprs.Dump(res.Expr))
			continue
		}
		if !first.Found() {
			t.Errorf("%q: failure without a diagnostic", tc.in)
			continue
		}
		if first.Code != tc.code || first.Msg != tc.msg {
			t.Errorf("%q: got %s %q, want %s %q", tc.in, first.Code.ID(), first.Msg, tc.code.ID(), tc.msg)
		}
	}
}

func TestStructLiteralNotAllowedInConditions(t *testing.T) {
	// `S {}` in a head is the body, not a struct literal.
	res, first := parse(t, "while S { x }")
	if !res.OK {
		t.Fatalf("parse failed: %s", first.Msg)
	}
	if got, want := res.Exprs.Dump(res.Expr), "(while (path S) {(path x)})"; got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestErrorSpanPointsAtEndOfInput(t *testing.T) {
	res, first := parse(t, "x >")
	if res.OK {
		t.Fatal("expected failure")
	}
	if first.Span.Start != 3 || first.Span.End != 3 {
		t.Fatalf("span = %v, want empty span at 3", first.Span)
	}
}
