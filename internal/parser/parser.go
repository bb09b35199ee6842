package parser

import (
	"slices"

	"theoremc/internal/ast"
	"theoremc/internal/diag"
	"theoremc/internal/lexer"
	"theoremc/internal/source"
	"theoremc/internal/token"
)

type Options struct {
	Reporter diag.Reporter
}

type Result struct {
	Expr   ast.ExprID
	Exprs  *ast.Exprs
	Tokens []token.Token
	OK     bool
}

// Parser is the state for one embedded expression. It stops at the first
// error: the caller only needs a verdict and the first grammar problem.
type Parser struct {
	toks     []token.Token
	pos      int
	exprs    *ast.Exprs
	opts     Options
	failed   bool
	noStruct bool // struct literals are not allowed here (if/while/match heads)
	lastSpan source.Span
}

// ParseExpr lexes and parses the whole file as exactly one Rust expression.
func ParseExpr(file *source.File, opts Options) Result {
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	toks := lx.All()
	p := &Parser{
		toks:  toks,
		exprs: ast.NewExprs(uint(len(toks))),
		opts:  opts,
	}
	res := Result{Exprs: p.exprs, Tokens: toks}

	if bad := slices.IndexFunc(toks, func(t token.Token) bool { return t.Kind == token.Invalid }); bad >= 0 {
		// the lexer already reported why
		return res
	}

	id, ok := p.parseExpr()
	if ok && !p.at(token.EOF) {
		p.errAt(diag.SynTrailingInput, p.peek().Span, "unexpected token "+p.peek().Describe()+" after end of expression")
		ok = false
	}
	res.Expr = id
	res.OK = ok && !p.failed
	return res
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekN looks n tokens ahead; past the end it yields EOF.
func (p *Parser) peekN(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.toks[p.pos].Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.toks[p.pos].Kind)
}

// advance consumes the current token; EOF is never consumed.
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// eat consumes the current token when it has kind k.
func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of kind k or reports what was found instead.
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(diag.SynUnexpectedToken, "expected `"+k.String()+"`, found "+p.peek().Describe())
	return token.Token{Kind: token.Invalid, Span: p.peek().Span}, false
}

// eatGt consumes one '>' even when it is glued into >>, >=, >>=.
func (p *Parser) eatGt() bool {
	switch p.peek().Kind {
	case token.Gt:
	case token.Shr:
		p.splitGlued(token.Gt, token.Gt)
	case token.GtEq:
		p.splitGlued(token.Gt, token.Assign)
	case token.ShrAssign:
		p.splitGlued(token.Gt, token.GtEq)
	default:
		return false
	}
	p.advance()
	return true
}

// splitGlued breaks the current token after its first byte into first and
// rest, so that `>>` can close two generic lists and `&&` can be two borrows.
func (p *Parser) splitGlued(first, rest token.Kind) {
	tok := p.peek()
	sp := tok.Span
	head := token.Token{Kind: first, Span: source.Span{File: sp.File, Start: sp.Start, End: sp.Start + 1}, Text: tok.Text[:1], Leading: tok.Leading}
	tail := token.Token{Kind: rest, Span: source.Span{File: sp.File, Start: sp.Start + 1, End: sp.End}, Text: tok.Text[1:]}
	p.toks[p.pos] = head
	p.toks = slices.Insert(p.toks, p.pos+1, tail)
}

// spanFrom covers from start to the last consumed token.
func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}

// withStruct runs fn with struct literals allowed (inside delimiters).
func (p *Parser) withStruct(fn func() bool) bool {
	saved := p.noStruct
	p.noStruct = false
	ok := fn()
	p.noStruct = saved
	return ok
}

// withNoStruct runs fn with struct literals forbidden (condition heads).
func (p *Parser) withNoStruct(fn func() bool) bool {
	saved := p.noStruct
	p.noStruct = true
	ok := fn()
	p.noStruct = saved
	return ok
}
