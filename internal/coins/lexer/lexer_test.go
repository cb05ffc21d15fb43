package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/coins/internal/coins/symtab"
	"github.com/dekarrin/coins/internal/coins/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func Test_Scan_kindSequence(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []token.Kind
	}{
		{name: "empty source", input: "", expect: []token.Kind{token.EOF}},
		{name: "declaration", input: "inteiro x;", expect: []token.Kind{
			token.Type, token.Ident, token.Semicolon, token.EOF,
		}},
		{name: "S1 assignment", input: "inteiro x; x = 3 + 4;", expect: []token.Kind{
			token.Type, token.Ident, token.Semicolon,
			token.Ident, token.Equals, token.Number, token.ArithOp, token.Number, token.Semicolon,
			token.EOF,
		}},
		{name: "keyword not captured as identifier", input: "se (x) { }", expect: []token.Kind{
			token.If, token.LParen, token.Ident, token.RParen, token.LBrace, token.RBrace, token.EOF,
		}},
		{name: "comparison operators", input: "a == b != c >= d <= e > f < g", expect: []token.Kind{
			token.Ident, token.CompOp, token.Ident, token.CompOp, token.Ident, token.CompOp, token.Ident,
			token.CompOp, token.Ident, token.CompOp, token.Ident, token.CompOp, token.Ident, token.EOF,
		}},
		{name: "logical operators", input: "a && b || !c", expect: []token.Kind{
			token.Ident, token.LogicOp, token.Ident, token.LogicOp, token.LogicOp, token.Ident, token.EOF,
		}},
		{name: "line comment preserved", input: "// hello\ninteiro x;", expect: []token.Kind{
			token.Comment, token.Type, token.Ident, token.Semicolon, token.EOF,
		}},
		{name: "block comment preserved", input: "/* hello\nworld */ inteiro x;", expect: []token.Kind{
			token.Comment, token.Type, token.Ident, token.Semicolon, token.EOF,
		}},
		{name: "comment-only source", input: "// just a comment", expect: []token.Kind{
			token.Comment, token.EOF,
		}},
		{name: "string literal", input: `texto s; s = "hello";`, expect: []token.Kind{
			token.Type, token.Ident, token.Semicolon,
			token.Ident, token.Equals, token.String, token.Semicolon,
			token.EOF,
		}},
		{name: "real number literal", input: "x = 1.5;", expect: []token.Kind{
			token.Ident, token.Equals, token.Number, token.Semicolon, token.EOF,
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			lx := New(tc.input, symtab.New())
			toks, errs := lx.Scan()

			assert.Empty(errs)
			assert.Equal(tc.expect, kinds(toks))
		})
	}
}

func Test_Scan_mismatchProducesErrorNotToken(t *testing.T) {
	assert := assert.New(t)

	lx := New("inteiro x; x = 1 @ 2;", symtab.New())
	toks, errs := lx.Scan()

	assert.NotEmpty(errs)
	for _, tok := range toks {
		assert.NotEqual(token.Mismatch, tok.Kind)
	}
}

func Test_Scan_prePopulatesSymbolTable(t *testing.T) {
	assert := assert.New(t)

	syms := symtab.New()
	lx := New("inteiro x; x = y;", syms)
	_, errs := lx.Scan()
	assert.Empty(errs)

	sym, ok := syms.Lookup("x")
	assert.True(ok)
	assert.Equal("undefined", sym.DeclaredType)

	sym, ok = syms.Lookup("y")
	assert.True(ok)
	assert.Equal("undefined", sym.DeclaredType)
}

func Test_Scan_unterminatedStringIsLexError(t *testing.T) {
	assert := assert.New(t)

	lx := New(`texto s; s = "unterminated;`, symtab.New())
	_, errs := lx.Scan()
	assert.NotEmpty(errs)
}

func Test_Scan_extendedLatinIdentifier(t *testing.T) {
	assert := assert.New(t)

	lx := New("inteiro ção;", symtab.New())
	toks, errs := lx.Scan()
	assert.Empty(errs)
	assert.Equal([]token.Kind{token.Type, token.Ident, token.Semicolon, token.EOF}, kinds(toks))
	assert.Equal("ção", toks[1].Lexeme)
}
