package parser

import (
	"theoremc/internal/token"
)

// Binary operator precedence; larger binds tighter. Assignment and ranges
// are handled above the Pratt loop, casts and prefixes below it.
const (
	precLogicalOr      = 1  // ||
	precLogicalAnd     = 2  // &&
	precComparison     = 3  // == != < <= > >= (non-associative)
	precBitwiseOr      = 4  // |
	precBitwiseXor     = 5  // ^
	precBitwiseAnd     = 6  // &
	precShift          = 7  // << >>
	precAdditive       = 8  // + -
	precMultiplicative = 9  // * / %
	precCast           = 10 // as
)

// binaryPrec returns the precedence of a binary operator token, or -1.
func binaryPrec(kind token.Kind) int {
	switch kind {
	case token.OrOr:
		return precLogicalOr
	case token.AndAnd:
		return precLogicalAnd
	case token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison
	case token.Pipe:
		return precBitwiseOr
	case token.Caret:
		return precBitwiseXor
	case token.Amp:
		return precBitwiseAnd
	case token.Shl, token.Shr:
		return precShift
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative
	case token.KwAs:
		return precCast
	default:
		return -1
	}
}

// isAssignOp reports whether kind is '=' or a compound assignment.
func isAssignOp(kind token.Kind) bool {
	return kind == token.Assign || kind.IsCompoundAssign()
}
