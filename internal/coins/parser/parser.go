// Package parser implements the Coins recursive-descent parser: a
// predictive, mostly one-token-lookahead descent over the token stream with
// a precedence-climbing expression sublanguage and panic-mode error
// recovery. It also pre-populates the symbol table's reporting entries for
// declared subroutines, mirroring the lexer's identifier pre-population.
package parser

import (
	"github.com/dekarrin/coins/internal/coins/coinserr"
	"github.com/dekarrin/coins/internal/coins/symtab"
	"github.com/dekarrin/coins/internal/coins/syntax"
	"github.com/dekarrin/coins/internal/coins/token"
)

// syncSet is the panic-mode synchronization token set from spec.md §4.2.
var syncSet = map[token.Kind]bool{
	token.Semicolon: true,
	token.LBrace:    true,
	token.RBrace:    true,
	token.Type:      true,
	token.Procedure: true,
	token.Function:  true,
	token.If:        true,
	token.While:     true,
	token.Return:    true,
	token.EOF:       true,
}

// Parser consumes a token stream produced by the lexer and builds an AST.
type Parser struct {
	toks []token.Token
	pos  int

	syms *symtab.Table
	errs []coinserr.Diagnostic
}

// New creates a Parser over toks (which must end in an EOF token, as
// produced by lexer.Lexer.Scan). syms receives placeholder entries for
// declared procedures and functions as they're parsed.
func New(toks []token.Token, syms *symtab.Table) *Parser {
	return &Parser{toks: toks, syms: syms}
}

// Parse runs the full parse and returns the Program root together with any
// syntax errors recorded along the way.
func (p *Parser) Parse() (syntax.Program, []coinserr.Diagnostic) {
	var body []syntax.Node
	for !p.check(token.EOF) {
		before := p.pos
		item := p.parseTopLevel()
		if item != nil {
			body = append(body, item)
		}
		if p.pos == before {
			// No production consumed a token; force progress per spec.md
			// §4.2's per-iteration guard.
			p.advance()
			p.syncTo(syncSet)
		}
	}
	return syntax.Program{Body: body}, p.errs
}

func (p *Parser) cur() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) check(k token.Kind) bool {
	return p.cur().Kind == k
}

func (p *Parser) checkAt(offset int, k token.Kind) bool {
	idx := p.pos + offset
	if idx >= len(p.toks) {
		idx = len(p.toks) - 1
	}
	return p.toks[idx].Kind == k
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if t.Kind != token.EOF {
		p.pos++
	}
	return t
}

// expect consumes the current token if it has kind k, else records a syntax
// error and enters panic-mode synchronization. It returns the consumed (or,
// on failure, the erroring) token.
func (p *Parser) expect(k token.Kind) token.Token {
	if p.check(k) {
		return p.advance()
	}
	found := p.cur()
	p.errs = append(p.errs, coinserr.SyntaxErrorf(found.Pos, "expected %s, found %s %q", k, found.Kind, found.Lexeme))
	p.syncTo(syncSet)
	return found
}

// syncTo advances until the current token's kind is in set (or EOF),
// consuming a trailing Semicolon if that's what synchronization landed on,
// per spec.md §4.2.
func (p *Parser) syncTo(set map[token.Kind]bool) {
	for !set[p.cur().Kind] {
		p.advance()
	}
	if p.check(token.Semicolon) {
		p.advance()
	}
}

// parseTopLevel dispatches on the current token per the §4.2 disambiguation
// table, shared between the program level and every block level (the
// grammar's top_level and statement productions collapse into one dispatch
// since a block may contain declarations and subroutine decls too).
func (p *Parser) parseTopLevel() syntax.Node {
	switch p.cur().Kind {
	case token.Type:
		return p.parseDeclaration()
	case token.Procedure, token.Function:
		return p.parseSubroutineDecl()
	case token.If:
		return p.parseIf()
	case token.While:
		return p.parseWhile()
	case token.Return:
		return p.parseReturn()
	case token.Comment:
		t := p.advance()
		return syntax.NewComment(t, t.Lexeme, t.Comment)
	case token.Ident:
		return p.parseIdentStatement()
	case token.RBrace, token.EOF:
		return nil
	default:
		found := p.cur()
		p.errs = append(p.errs, coinserr.SyntaxErrorf(found.Pos, "unexpected %s %q", found.Kind, found.Lexeme))
		p.syncTo(syncSet)
		return nil
	}
}

// parseBlock parses "{" { statement } "}", used by if/else/while/subroutine
// bodies. It assumes the opening LBrace has not yet been consumed.
func (p *Parser) parseBlock() []syntax.Node {
	p.expect(token.LBrace)
	var stmts []syntax.Node
	for !p.check(token.RBrace) && !p.check(token.EOF) {
		before := p.pos
		item := p.parseTopLevel()
		if item != nil {
			stmts = append(stmts, item)
		}
		if p.pos == before {
			p.advance()
			p.syncTo(syncSet)
		}
	}
	p.expect(token.RBrace)
	return stmts
}

func (p *Parser) parseDeclaration() syntax.Node {
	start := p.cur()
	typeTok := p.advance()
	names := []string{p.expect(token.Ident).Lexeme}
	for p.check(token.Comma) {
		p.advance()
		names = append(names, p.expect(token.Ident).Lexeme)
	}
	p.expect(token.Semicolon)
	for _, name := range names {
		p.syms.DeclareIfAbsent(name, typeTok.Lexeme)
	}
	return syntax.NewDeclaration(start, syntax.Type(typeTok.Lexeme), names)
}

// parseIdentStatement resolves the ID assignment vs ID call-statement
// ambiguity with the spec's one required 2-token lookahead.
func (p *Parser) parseIdentStatement() syntax.Node {
	if p.checkAt(1, token.Equals) {
		return p.parseAssignment()
	}
	if p.checkAt(1, token.LParen) {
		call := p.parseCall()
		p.expect(token.Semicolon)
		return call
	}
	found := p.cur()
	p.errs = append(p.errs, coinserr.SyntaxErrorf(found.Pos, "expected assignment or call after identifier %q", found.Lexeme))
	p.syncTo(syncSet)
	return nil
}

func (p *Parser) parseAssignment() syntax.Node {
	start := p.cur()
	name := p.advance().Lexeme
	p.expect(token.Equals)
	value := p.parseExpr()
	p.expect(token.Semicolon)
	return syntax.NewAssignment(start, name, value)
}

func (p *Parser) parseCall() syntax.Node {
	start := p.cur()
	callee := p.advance().Lexeme
	p.expect(token.LParen)
	args := parseList(p, token.RParen, p.parseExpr)
	p.expect(token.RParen)
	return syntax.NewSubroutineCall(start, callee, args)
}

func (p *Parser) parseIf() syntax.Node {
	start := p.advance() // IF
	p.expect(token.LParen)
	cond := p.parseExpr()
	p.expect(token.RParen)
	then := p.parseBlock()
	var els []syntax.Node
	if p.check(token.Else) {
		p.advance()
		els = p.parseBlock()
	}
	return syntax.NewConditional(start, cond, then, els)
}

func (p *Parser) parseWhile() syntax.Node {
	start := p.advance() // WHILE
	p.expect(token.LParen)
	cond := p.parseExpr()
	p.expect(token.RParen)
	body := p.parseBlock()
	return syntax.NewLoop(start, cond, body)
}

func (p *Parser) parseReturn() syntax.Node {
	start := p.advance() // RETURN
	var value syntax.Node
	if !p.check(token.Semicolon) {
		value = p.parseExpr()
	}
	p.expect(token.Semicolon)
	return syntax.NewReturn(start, value)
}

// parseList parses a comma-separated, possibly-empty list using elem to
// parse each item, stopping before end (which is not consumed). It unifies
// the grammar's params and call-argument productions, both of which are
// "comma-separated list, possibly empty" up to a terminator.
func parseList[T any](p *Parser, end token.Kind, elem func() T) []T {
	var items []T
	if p.check(end) {
		return items
	}
	items = append(items, elem())
	for p.check(token.Comma) {
		p.advance()
		items = append(items, elem())
	}
	return items
}

func (p *Parser) parseSubroutineDecl() syntax.Node {
	start := p.cur()
	kind := syntax.KindProcedure
	if p.check(token.Function) {
		kind = syntax.KindFunction
	}
	p.advance()
	name := p.expect(token.Ident).Lexeme

	p.expect(token.LParen)
	params := parseList(p, token.RParen, p.parseParam)
	p.expect(token.RParen)

	hasReturn := false
	var returnType syntax.Type
	if kind == syntax.KindFunction {
		if p.check(token.Return) {
			p.advance()
			returnType = syntax.Type(p.expect(token.Type).Lexeme)
			hasReturn = true
		} else {
			found := p.cur()
			p.errs = append(p.errs, coinserr.SyntaxErrorf(found.Pos, "function %q must declare a return type", name))
		}
	}

	body := p.parseBlock()

	paramInfos := make([]symtab.ParamInfo, len(params))
	for i, pr := range params {
		paramInfos[i] = symtab.ParamInfo{Name: pr.Name, Type: string(pr.Type)}
	}
	category := symtab.Procedure
	if kind == syntax.KindFunction {
		category = symtab.Function
	}
	p.syms.Declare(symtab.Symbol{
		Name: name, Category: category,
		DeclaredType: string(returnType), Params: paramInfos, ReturnType: string(returnType),
	})

	return syntax.NewSubroutineDecl(start, kind, name, params, hasReturn, returnType, body)
}

func (p *Parser) parseParam() syntax.Param {
	typeTok := p.expect(token.Type)
	nameTok := p.expect(token.Ident)
	return syntax.Param{Name: nameTok.Lexeme, Type: syntax.Type(typeTok.Lexeme)}
}

// --- expressions: precedence-climbing, low to high per spec.md §4.2. ---

func (p *Parser) parseExpr() syntax.Node {
	return p.parseOr()
}

func (p *Parser) parseOr() syntax.Node {
	left := p.parseAnd()
	for p.check(token.LogicOp) && p.cur().Lexeme == "||" {
		op := p.advance()
		right := p.parseAnd()
		left = syntax.NewBinaryExpr(op, op.Lexeme, left, right)
	}
	return left
}

func (p *Parser) parseAnd() syntax.Node {
	left := p.parseComparison()
	for p.check(token.LogicOp) && p.cur().Lexeme == "&&" {
		op := p.advance()
		right := p.parseComparison()
		left = syntax.NewBinaryExpr(op, op.Lexeme, left, right)
	}
	return left
}

func (p *Parser) parseComparison() syntax.Node {
	left := p.parseAdditive()
	for p.check(token.CompOp) {
		op := p.advance()
		right := p.parseAdditive()
		left = syntax.NewBinaryExpr(op, op.Lexeme, left, right)
	}
	return left
}

func (p *Parser) parseAdditive() syntax.Node {
	left := p.parseMultiplicative()
	for p.check(token.ArithOp) && (p.cur().Lexeme == "+" || p.cur().Lexeme == "-") {
		op := p.advance()
		right := p.parseMultiplicative()
		left = syntax.NewBinaryExpr(op, op.Lexeme, left, right)
	}
	return left
}

func (p *Parser) parseMultiplicative() syntax.Node {
	left := p.parseUnary()
	for p.check(token.ArithOp) && (p.cur().Lexeme == "*" || p.cur().Lexeme == "/" || p.cur().Lexeme == "%") {
		op := p.advance()
		right := p.parseUnary()
		left = syntax.NewBinaryExpr(op, op.Lexeme, left, right)
	}
	return left
}

func (p *Parser) parseUnary() syntax.Node {
	if p.check(token.LogicOp) && p.cur().Lexeme == "!" {
		op := p.advance()
		operand := p.parseUnary()
		return syntax.NewUnaryExpr(op, "!", operand)
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() syntax.Node {
	switch {
	case p.check(token.Number):
		t := p.advance()
		lit := syntax.Integer
		for _, r := range t.Lexeme {
			if r == '.' {
				lit = syntax.Real
				break
			}
		}
		return syntax.NewLiteral(t, t.Lexeme, lit)
	case p.check(token.String):
		t := p.advance()
		return syntax.NewLiteral(t, t.Lexeme, syntax.Text)
	case p.check(token.Ident):
		if p.checkAt(1, token.LParen) {
			return p.parseCall()
		}
		t := p.advance()
		return syntax.NewIdentifier(t, t.Lexeme)
	case p.check(token.LParen):
		p.advance()
		inner := p.parseExpr()
		p.expect(token.RParen)
		return inner
	default:
		found := p.cur()
		p.errs = append(p.errs, coinserr.SyntaxErrorf(found.Pos, "expected expression, found %s %q", found.Kind, found.Lexeme))
		p.syncTo(syncSet)
		// Return a placeholder literal so the caller's tree stays well
		// formed; the recorded error is what matters for driver policy.
		return syntax.NewLiteral(found, "", syntax.Unknown)
	}
}
