package parser

import (
	"theoremc/internal/ast"
	"theoremc/internal/diag"
	"theoremc/internal/token"
)

// parseBlockExpr parses `{ stmts }` into an expression of the given kind.
func (p *Parser) parseBlockExpr(kind ast.ExprKind, label string) (ast.ExprID, bool) {
	start := p.peek().Span
	blk, ok := p.parseBlock(label)
	if !ok {
		return ast.NoExprID, false
	}
	return p.exprs.New(ast.Expr{Kind: kind, Span: p.spanFrom(start), Body: blk, Name: label}), true
}

func (p *Parser) parseBlock(label string) (ast.BlockID, bool) {
	if !p.at(token.LBrace) {
		p.err(diag.SynExpectBlock, "expected `{`, found "+p.peek().Describe())
		return ast.NoBlockID, false
	}
	open := p.advance()
	var stmts []ast.Stmt
	ok := p.withStruct(func() bool {
		for !p.at(token.RBrace) {
			if p.at(token.EOF) {
				break
			}
			st, ok := p.parseStmt()
			if !ok {
				return false
			}
			stmts = append(stmts, st)
		}
		return p.closeDelim(open)
	})
	if !ok {
		return ast.NoBlockID, false
	}
	return p.exprs.NewBlock(ast.Block{Span: p.spanFrom(open.Span), Label: label, Stmts: stmts}), true
}

// itemStart reports whether the current token begins an item declaration.
func (p *Parser) itemStart() bool {
	switch p.peek().Kind {
	case token.KwFn, token.KwStruct, token.KwEnum, token.KwImpl, token.KwTrait, token.KwMod,
		token.KwUse, token.KwPub, token.KwExtern, token.KwType, token.KwMacro:
		return true
	case token.KwStatic:
		next := p.peekN(1).Kind
		return next == token.Ident || next == token.KwMut
	case token.KwConst:
		next := p.peekN(1).Kind
		return next == token.Ident || next == token.Underscore || next == token.KwFn || next == token.KwUnsafe
	case token.KwUnsafe:
		next := p.peekN(1).Kind
		return next == token.KwFn || next == token.KwImpl || next == token.KwTrait || next == token.KwExtern
	case token.Ident:
		tok := p.peek()
		return tok.Text == "macro_rules" && p.peekN(1).Kind == token.Bang
	}
	return false
}

func (p *Parser) parseStmt() (ast.Stmt, bool) {
	if !p.skipOuterAttributes() {
		return ast.Stmt{}, false
	}
	start := p.peek().Span
	switch {
	case p.at(token.Semicolon):
		p.advance()
		return ast.Stmt{Kind: ast.StmtEmpty, Span: start}, true
	case p.at(token.KwLet):
		return p.parseLetStmt()
	case p.itemStart():
		p.err(diag.SynItemNotSupported, "item declarations are not supported inside expression blocks, found "+p.peek().Describe())
		return ast.Stmt{}, false
	}

	e, ok := p.parseStmtExpr()
	if !ok {
		return ast.Stmt{}, false
	}
	switch {
	case p.eat(token.Semicolon):
		return ast.Stmt{Kind: ast.StmtSemi, Span: p.spanFrom(start), Expr: e}, true
	case p.at(token.RBrace), p.isBlockLike(e):
		return ast.Stmt{Kind: ast.StmtExpr, Span: p.spanFrom(start), Expr: e}, true
	}
	p.err(diag.SynUnexpectedToken, "expected `;` or `}` after expression, found "+p.peek().Describe())
	return ast.Stmt{}, false
}

// parseStmtExpr parses an expression in statement position. A block-like
// expression ends the statement unless a method call or `?` follows it.
func (p *Parser) parseStmtExpr() (ast.ExprID, bool) {
	if !p.blockLikeStart() {
		return p.parseExpr()
	}
	e, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.atAny(token.Dot, token.Question) {
		return e, true
	}
	e, ok = p.parsePostfixOps(e)
	if !ok {
		return ast.NoExprID, false
	}
	e, ok = p.continueBinaryExpr(e, precLogicalOr)
	if !ok {
		return ast.NoExprID, false
	}
	if isAssignOp(p.peek().Kind) {
		op := p.advance()
		rhs, ok := p.parseAssignExpr()
		if !ok {
			return ast.NoExprID, false
		}
		kind := ast.ExprAssign
		if op.Kind != token.Assign {
			kind = ast.ExprCompoundAssign
		}
		e = p.exprs.New(ast.Expr{Kind: kind, Span: p.exprs.Span(e).Cover(p.exprs.Span(rhs)), Op: op.Kind, Subs: []ast.ExprID{e, rhs}})
	}
	return e, true
}

func (p *Parser) blockLikeStart() bool {
	switch p.peek().Kind {
	case token.LBrace, token.KwIf, token.KwMatch, token.KwLoop, token.KwWhile, token.KwFor, token.KwTry:
		return true
	case token.KwUnsafe, token.KwConst:
		return p.peekN(1).Kind == token.LBrace
	case token.KwAsync:
		next := p.peekN(1).Kind
		return next == token.LBrace || (next == token.KwMove && p.peekN(2).Kind == token.LBrace)
	case token.Lifetime:
		return p.peekN(1).Kind == token.Colon
	}
	return false
}

// parseLetStmt parses `let PAT [: TYPE] [= EXPR [else BLOCK]];`.
func (p *Parser) parseLetStmt() (ast.Stmt, bool) {
	start := p.advance().Span
	if _, ok := p.parsePatternText(true); !ok {
		return ast.Stmt{}, false
	}
	if p.eat(token.Colon) {
		if _, ok := p.parseTypeText(true); !ok {
			return ast.Stmt{}, false
		}
	}
	st := ast.Stmt{Kind: ast.StmtLet}
	if p.eat(token.Assign) {
		init, ok := p.parseExpr()
		if !ok {
			return ast.Stmt{}, false
		}
		st.Expr = init
		if p.at(token.KwElse) {
			p.advance()
			els, ok := p.parseBlockExpr(ast.ExprBlock, "")
			if !ok {
				return ast.Stmt{}, false
			}
			st.Else = els
		}
	}
	if _, ok := p.expect(token.Semicolon); !ok {
		return ast.Stmt{}, false
	}
	st.Span = p.spanFrom(start)
	return st, true
}

// parseCondition parses an if/while head where struct literals are not allowed.
func (p *Parser) parseCondition() (ast.ExprID, bool) {
	var cond ast.ExprID
	ok := p.withNoStruct(func() bool {
		var ok bool
		cond, ok = p.parseExpr()
		return ok
	})
	return cond, ok
}

func (p *Parser) parseIfExpr() (ast.ExprID, bool) {
	start := p.advance().Span
	if p.at(token.LBrace) {
		p.expectedExpression()
		return ast.NoExprID, false
	}
	cond, ok := p.parseCondition()
	if !ok {
		return ast.NoExprID, false
	}
	then, ok := p.parseBlock("")
	if !ok {
		return ast.NoExprID, false
	}
	els := ast.NoExprID
	if p.eat(token.KwElse) {
		if p.at(token.KwIf) {
			els, ok = p.parseIfExpr()
		} else {
			els, ok = p.parseBlockExpr(ast.ExprBlock, "")
		}
		if !ok {
			return ast.NoExprID, false
		}
	}
	return p.exprs.New(ast.Expr{
		Kind: ast.ExprIf,
		Span: p.spanFrom(start),
		Subs: []ast.ExprID{cond},
		Body: then,
		Else: els,
	}), true
}

func (p *Parser) parseMatchExpr() (ast.ExprID, bool) {
	start := p.advance().Span
	if p.at(token.LBrace) {
		p.expectedExpression()
		return ast.NoExprID, false
	}
	scrutinee, ok := p.parseCondition()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.LBrace) {
		p.err(diag.SynExpectBlock, "expected `{` after match scrutinee, found "+p.peek().Describe())
		return ast.NoExprID, false
	}
	open := p.advance()
	var arms []ast.MatchArm
	ok = p.withStruct(func() bool {
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			arm, ok := p.parseMatchArm()
			if !ok {
				return false
			}
			arms = append(arms, arm)
			if p.eat(token.Comma) || p.at(token.RBrace) || p.isBlockLike(arm.Body) {
				continue
			}
			p.err(diag.SynUnexpectedToken, "expected `,` following `match` arm, found "+p.peek().Describe())
			return false
		}
		return p.closeDelim(open)
	})
	if !ok {
		return ast.NoExprID, false
	}
	return p.exprs.New(ast.Expr{
		Kind: ast.ExprMatch,
		Span: p.spanFrom(start),
		Subs: []ast.ExprID{scrutinee},
		Arms: arms,
	}), true
}

func (p *Parser) parseMatchArm() (ast.MatchArm, bool) {
	if !p.skipOuterAttributes() {
		return ast.MatchArm{}, false
	}
	start := p.peek().Span
	if _, ok := p.parsePatternText(true); !ok {
		return ast.MatchArm{}, false
	}
	arm := ast.MatchArm{}
	if p.eat(token.KwIf) {
		guard, ok := p.parseExpr()
		if !ok {
			return ast.MatchArm{}, false
		}
		arm.Guard = guard
	}
	if _, ok := p.expect(token.FatArrow); !ok {
		return ast.MatchArm{}, false
	}
	body, ok := p.parseStmtExpr()
	if !ok {
		return ast.MatchArm{}, false
	}
	arm.Body = body
	arm.Span = p.spanFrom(start)
	return arm, true
}

// parseLabeledExpr parses `'label: loop|while|for|{ .. }`.
func (p *Parser) parseLabeledExpr() (ast.ExprID, bool) {
	label := p.advance()
	if _, ok := p.expect(token.Colon); !ok {
		return ast.NoExprID, false
	}
	var (
		id ast.ExprID
		ok bool
	)
	switch p.peek().Kind {
	case token.KwLoop:
		id, ok = p.parseLoopExpr(label.Text)
	case token.KwWhile:
		id, ok = p.parseWhileExpr(label.Text)
	case token.KwFor:
		id, ok = p.parseForExpr(label.Text)
	case token.LBrace:
		id, ok = p.parseBlockExpr(ast.ExprBlock, label.Text)
	default:
		p.err(diag.SynUnexpectedToken, "expected loop or block after label, found "+p.peek().Describe())
		return ast.NoExprID, false
	}
	if ok {
		p.exprs.Get(id).Span = p.spanFrom(label.Span)
	}
	return id, ok
}

func (p *Parser) parseLoopExpr(label string) (ast.ExprID, bool) {
	start := p.advance().Span
	body, ok := p.parseBlock(label)
	if !ok {
		return ast.NoExprID, false
	}
	return p.exprs.New(ast.Expr{Kind: ast.ExprLoop, Span: p.spanFrom(start), Name: label, Body: body}), true
}

func (p *Parser) parseWhileExpr(label string) (ast.ExprID, bool) {
	start := p.advance().Span
	cond, ok := p.parseCondition()
	if !ok {
		return ast.NoExprID, false
	}
	body, ok := p.parseBlock(label)
	if !ok {
		return ast.NoExprID, false
	}
	return p.exprs.New(ast.Expr{
		Kind: ast.ExprWhile,
		Span: p.spanFrom(start),
		Name: label,
		Subs: []ast.ExprID{cond},
		Body: body,
	}), true
}

// parseForExpr parses `for PAT in EXPR { .. }`.
func (p *Parser) parseForExpr(label string) (ast.ExprID, bool) {
	start := p.advance().Span
	if _, ok := p.parsePatternText(true); !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.KwIn); !ok {
		return ast.NoExprID, false
	}
	iter, ok := p.parseCondition()
	if !ok {
		return ast.NoExprID, false
	}
	body, ok := p.parseBlock(label)
	if !ok {
		return ast.NoExprID, false
	}
	return p.exprs.New(ast.Expr{
		Kind: ast.ExprForLoop,
		Span: p.spanFrom(start),
		Name: label,
		Subs: []ast.ExprID{iter},
		Body: body,
	}), true
}
