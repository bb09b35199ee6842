package ast

import (
	"theoremc/internal/source"
	"theoremc/internal/token"
)

// ExprKind enumerates the Rust expression forms the parser recognises.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprArray
	ExprAssign
	ExprCompoundAssign
	ExprAsync
	ExprAwait
	ExprBinary
	ExprBlock
	ExprBreak
	ExprCall
	ExprCast
	ExprClosure
	ExprConstBlock
	ExprContinue
	ExprField
	ExprForLoop
	ExprIf
	ExprIndex
	ExprInfer
	ExprLet
	ExprLit
	ExprLoop
	ExprMacro
	ExprMatch
	ExprMethodCall
	ExprParen
	ExprPath
	ExprRange
	ExprReference
	ExprRepeat
	ExprReturn
	ExprStruct
	ExprTry
	ExprTryBlock
	ExprTuple
	ExprUnary
	ExprUnsafe
	ExprWhile
	ExprYield

	exprKindCount
)

var exprKindNames = [exprKindCount]string{
	ExprInvalid:        "invalid",
	ExprArray:          "array",
	ExprAssign:         "assign",
	ExprCompoundAssign: "compound-assign",
	ExprAsync:          "async",
	ExprAwait:          "await",
	ExprBinary:         "binary",
	ExprBlock:          "block",
	ExprBreak:          "break",
	ExprCall:           "call",
	ExprCast:           "cast",
	ExprClosure:        "closure",
	ExprConstBlock:     "const",
	ExprContinue:       "continue",
	ExprField:          "field",
	ExprForLoop:        "for",
	ExprIf:             "if",
	ExprIndex:          "index",
	ExprInfer:          "infer",
	ExprLet:            "let",
	ExprLit:            "lit",
	ExprLoop:           "loop",
	ExprMacro:          "macro",
	ExprMatch:          "match",
	ExprMethodCall:     "method",
	ExprParen:          "paren",
	ExprPath:           "path",
	ExprRange:          "range",
	ExprReference:      "ref",
	ExprRepeat:         "repeat",
	ExprReturn:         "return",
	ExprStruct:         "struct",
	ExprTry:            "try",
	ExprTryBlock:       "try-block",
	ExprTuple:          "tuple",
	ExprUnary:          "unary",
	ExprUnsafe:         "unsafe",
	ExprWhile:          "while",
	ExprYield:          "yield",
}

func (k ExprKind) String() string {
	if k < exprKindCount {
		return exprKindNames[k]
	}
	return "unknown"
}

// Expr is one expression node. Which fields are meaningful depends on Kind:
//
//	Op    operator of Binary, Unary, CompoundAssign and Range
//	Name  literal text, path, field or method name, macro path, loop label
//	Subs  operands and children in source order
//	Body  block of Block, Async, Unsafe, ConstBlock, TryBlock, loops and If
//	Else  else branch of If
//	Arms  arms of Match
//	Mut   &mut for Reference, move for Closure and Async
type Expr struct {
	Kind ExprKind
	Span source.Span
	Op   token.Kind
	Name string
	Subs []ExprID
	Body BlockID
	Else ExprID
	Arms []MatchArm
	Mut  bool
}

// MatchArm is one `pattern [if guard] => body` arm.
type MatchArm struct {
	Span  source.Span
	Guard ExprID
	Body  ExprID
}

// Exprs owns every expression and block of one parse.
type Exprs struct {
	Arena  *Arena[Expr]
	Blocks *Arena[Block]
}

// NewExprs creates an expression store; capHint 0 picks a small default.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 5
	}
	return &Exprs{
		Arena:  NewArena[Expr](capHint),
		Blocks: NewArena[Block](capHint / 4),
	}
}

// New allocates an expression and returns its id.
func (e *Exprs) New(x Expr) ExprID {
	return ExprID(e.Arena.Allocate(x))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// Kind returns the kind of id, or ExprInvalid for NoExprID.
func (e *Exprs) Kind(id ExprID) ExprKind {
	if x := e.Get(id); x != nil {
		return x.Kind
	}
	return ExprInvalid
}

// Span returns the span of id.
func (e *Exprs) Span(id ExprID) source.Span {
	if x := e.Get(id); x != nil {
		return x.Span
	}
	return source.Span{}
}

// NewBlock allocates a block.
func (e *Exprs) NewBlock(b Block) BlockID {
	return BlockID(e.Blocks.Allocate(b))
}

// Block returns the block with the given ID.
func (e *Exprs) Block(id BlockID) *Block {
	return e.Blocks.Get(uint32(id))
}
