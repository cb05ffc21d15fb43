package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/coins/internal/coins/lexer"
	"github.com/dekarrin/coins/internal/coins/symtab"
	"github.com/dekarrin/coins/internal/coins/syntax"
)

func parse(src string) (syntax.Program, []string) {
	syms := symtab.New()
	toks, _ := lexer.New(src, syms).Scan()
	prog, errs := New(toks, syms).Parse()
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return prog, msgs
}

func Test_Parse_topLevelVariantCounts(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		wantTypes []syntax.NodeType
	}{
		{name: "empty source", input: "", wantTypes: nil},
		{name: "declaration only", input: "inteiro x;", wantTypes: []syntax.NodeType{syntax.NDeclaration}},
		{name: "S1 assignment", input: "inteiro x; x = 3 + 4;", wantTypes: []syntax.NodeType{
			syntax.NDeclaration, syntax.NAssignment,
		}},
		{name: "multi-name declaration", input: "inteiro x, y, z;", wantTypes: []syntax.NodeType{syntax.NDeclaration}},
		{name: "if/else", input: "se (1) { } senao { }", wantTypes: []syntax.NodeType{syntax.NConditional}},
		{name: "while", input: "enquanto (1) { }", wantTypes: []syntax.NodeType{syntax.NLoop}},
		{name: "procedure decl", input: "procedimento p() { }", wantTypes: []syntax.NodeType{syntax.NSubroutineDecl}},
		{name: "function decl", input: "funcao f() retorna inteiro { retorna 1; }", wantTypes: []syntax.NodeType{syntax.NSubroutineDecl}},
		{name: "call statement", input: "p();", wantTypes: []syntax.NodeType{syntax.NSubroutineCall}},
		{name: "comment only", input: "// just a comment", wantTypes: []syntax.NodeType{syntax.NComment}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			prog, errs := parse(tc.input)
			assert.Empty(errs)

			gotTypes := make([]syntax.NodeType, len(prog.Body))
			for i, n := range prog.Body {
				gotTypes[i] = n.Type()
			}
			assert.Equal(tc.wantTypes, gotTypes)
		})
	}
}

func Test_Parse_expressionPrecedence(t *testing.T) {
	assert := assert.New(t)

	// "1 + 2 * 3" must parse so the multiplicative binds tighter: the
	// outermost node is "+" with right operand "2 * 3".
	prog, errs := parse("x = 1 + 2 * 3;")
	assert.Empty(errs)

	asn := prog.Body[0].AsAssignment()
	top := asn.Value.AsBinaryExpr()
	assert.Equal("+", top.Operator)
	right := top.Right.AsBinaryExpr()
	assert.Equal("*", right.Operator)
}

func Test_Parse_callAsExpressionOperand(t *testing.T) {
	assert := assert.New(t)

	prog, errs := parse("x = f(1, 2) + 3;")
	assert.Empty(errs)

	asn := prog.Body[0].AsAssignment()
	top := asn.Value.AsBinaryExpr()
	call := top.Left.AsSubroutineCall()
	assert.Equal("f", call.Callee)
	assert.Len(call.Args, 2)
}

func Test_Parse_panicModeRecovery_S5(t *testing.T) {
	assert := assert.New(t)

	// Missing semicolon after "inteiro x" - spec.md S5.
	prog, errs := parse("inteiro x  x = 1; inteiro y; y = 2;")

	assert.Len(errs, 1)

	var gotY bool
	for _, n := range prog.Body {
		if n.Type() == syntax.NDeclaration {
			d := n.AsDeclaration()
			for _, name := range d.Names {
				if name == "y" {
					gotY = true
				}
			}
		}
	}
	assert.True(gotY, "declaration of y must survive recovery")
}

func Test_Parse_elseIsNilWhenAbsent(t *testing.T) {
	assert := assert.New(t)

	prog, errs := parse("se (1) { }")
	assert.Empty(errs)

	cond := prog.Body[0].AsConditional()
	assert.Nil(cond.Else)
}

func Test_Parse_multipleParameters(t *testing.T) {
	assert := assert.New(t)

	prog, errs := parse("procedimento p(inteiro a, real b) { }")
	assert.Empty(errs)

	decl := prog.Body[0].AsSubroutineDecl()
	assert.Equal([]syntax.Param{
		{Name: "a", Type: syntax.Integer},
		{Name: "b", Type: syntax.Real},
	}, decl.Params)
}
