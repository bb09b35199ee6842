package exprform_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"theoremc/internal/ast"
	"theoremc/internal/diag"
	"theoremc/internal/exprform"
)

func TestCheckAcceptsValueExpressions(t *testing.T) {
	for _, text := range []string{
		"true",
		"x > 0",
		"result.is_valid()",
		"result.balance() >= amount",
		"hnsw.is_bidirectional(&graph)",
		"!hnsw.edge_present(&graph, 2, 0, 1)",
		"amount <= (u64::MAX - a.balance)",
		"x",
		"if x > 0 { a } else { b }",
		"match x { 1 => true, _ => false }",
		"|x| x > 0",
		"vec![1, 2, 3].len() == 3",
		"a.checked_add(b)?",
		"(x as u64) << 2",
		"0..n",
		"Point { x: 1, y: 2 }.x",
		"[1, 2][0]",
		"&mut v",
		"fut.await",
	} {
		t.Run(text, func(t *testing.T) {
			assert.NoError(t, exprform.Check(text))
		})
	}
}

func TestCheckRejectsStatementForms(t *testing.T) {
	cases := map[string]ast.ExprKind{
		"{ let x = 1; x > 0 }": ast.ExprBlock,
		"{ let x = 1; x }":     ast.ExprBlock,
		"for i in 0..10 { }":   ast.ExprForLoop,
		"while true { }":       ast.ExprWhile,
		"loop { break 42; }":   ast.ExprLoop,
		"let x = 5":            ast.ExprLet,
		"unsafe { x }":         ast.ExprUnsafe,
		"async { x }":          ast.ExprAsync,
		"const { 42 }":         ast.ExprConstBlock,
		"try { x }":            ast.ExprTryBlock,
		"return 42":            ast.ExprReturn,
		"break 42":             ast.ExprBreak,
		"continue":             ast.ExprContinue,
		"yield 1":              ast.ExprYield,
		"x = 5":                ast.ExprAssign,
		"x += 1":               ast.ExprCompoundAssign,
		"x -= 2":               ast.ExprCompoundAssign,
		"x *= 3":               ast.ExprCompoundAssign,
		"x /= 3":               ast.ExprCompoundAssign,
		"x %= 3":               ast.ExprCompoundAssign,
		"x ^= 3":               ast.ExprCompoundAssign,
		"x &= 3":               ast.ExprCompoundAssign,
		"x |= 3":               ast.ExprCompoundAssign,
		"x <<= 3":              ast.ExprCompoundAssign,
		"x >>= 3":              ast.ExprCompoundAssign,
	}
	for text, kind := range cases {
		t.Run(text, func(t *testing.T) {
			err := exprform.Check(text)
			require.Error(t, err)
			var fe *exprform.Error
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, exprform.ReasonStatement, fe.Reason)
			assert.Equal(t, kind, fe.Form)
			assert.Equal(t, diag.SynStatementForm, fe.Code)
			assert.Contains(t, err.Error(), "must be a single expression")
		})
	}
}

func TestCheckRejectsSyntaxErrors(t *testing.T) {
	for _, text := range []string{"not rust code %%", "x >", "if { }", "", "(a", "a < b < c"} {
		t.Run(text, func(t *testing.T) {
			err := exprform.Check(text)
			require.Error(t, err)
			var fe *exprform.Error
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, exprform.ReasonSyntax, fe.Reason)
			assert.Contains(t, err.Error(), "is not a valid Rust expression: ")
			assert.NotEmpty(t, fe.Detail)
		})
	}
}

func TestClassifyReportsTopLevelKind(t *testing.T) {
	form, err := exprform.Classify("x = 5")
	require.NoError(t, err)
	assert.Equal(t, ast.ExprAssign, form.Kind)
	assert.True(t, form.StatementLike())

	form, err = exprform.Classify("if a { b } else { c }")
	require.NoError(t, err)
	assert.Equal(t, ast.ExprIf, form.Kind)
	assert.False(t, form.StatementLike())
}

func TestDenylistIsACopy(t *testing.T) {
	d := exprform.Denylist()
	require.True(t, d.Contains(ast.ExprLoop))
	delete(d, ast.ExprLoop)
	assert.True(t, exprform.Denylist().Contains(ast.ExprLoop))
	assert.Len(t, exprform.Denylist().Kinds(), 15)
}
