package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/coins/internal/coins/lexer"
	"github.com/dekarrin/coins/internal/coins/parser"
	"github.com/dekarrin/coins/internal/coins/semantic"
	"github.com/dekarrin/coins/internal/coins/symtab"
)

func generate(t *testing.T, src string) string {
	t.Helper()
	syms := symtab.New()
	toks, lexErrs := lexer.New(src, syms).Scan()
	assert.Empty(t, lexErrs)
	prog, synErrs := parser.New(toks, syms).Parse()
	assert.Empty(t, synErrs)
	typed, semErrs, _ := semantic.New(syms).Analyze(prog)
	assert.Empty(t, semErrs)

	out, err := Generate(typed)
	assert.NoError(t, err)
	return out
}

func Test_Generate_declarationZeroValues(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "integer", input: "inteiro x;", expect: "x = 0"},
		{name: "real", input: "real x;", expect: "x = 0.0"},
		{name: "text", input: "texto x;", expect: `x = ""`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, generate(t, tc.input))
		})
	}
}

func Test_Generate_S1_assignment(t *testing.T) {
	assert.Equal(t, "x = 0\nx = (3 + 4)", generate(t, "inteiro x; x = 3 + 4;"))
}

func Test_Generate_operatorRemap(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "and", input: "procedimento p() { se ((1 == 1) && (0 == 0)) { } }", expect: "if ((1 == 1) and (0 == 0)):\n    pass"},
		{name: "or", input: "procedimento p() { se ((1 == 1) || (0 == 1)) { } }", expect: "if ((1 == 1) or (0 == 1)):\n    pass"},
		{name: "not", input: "procedimento p() { se (!(1 == 1)) { } }", expect: "if (not (1 == 1)):\n    pass"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := generate(t, tc.input)
			assert.Contains(t, out, tc.expect)
		})
	}
}

func Test_Generate_emptySubroutineBodyEmitsPass(t *testing.T) {
	out := generate(t, "procedimento p() { }")
	assert.Equal(t, "def p():\n    pass", out)
}

func Test_Generate_ifElse(t *testing.T) {
	out := generate(t, `
		procedimento p() {
			inteiro x;
			se (x == 0) {
				x = 1;
			} senao {
				x = 2;
			}
		}
	`)
	assert.Contains(t, out, "if (x == 0):")
	assert.Contains(t, out, "else:")
}

func Test_Generate_whileLoop(t *testing.T) {
	out := generate(t, `
		procedimento p() {
			inteiro x;
			enquanto (x < 10) {
				x = x + 1;
			}
		}
	`)
	assert.Contains(t, out, "while (x < 10):")
}

func Test_Generate_functionWithParamsAndReturn(t *testing.T) {
	out := generate(t, "funcao soma(inteiro a, inteiro b) retorna inteiro { retorna a + b; }")
	assert.Contains(t, out, "def soma(a, b):")
	assert.Contains(t, out, "return (a + b)")
}

func Test_Generate_callStatement(t *testing.T) {
	out := generate(t, "procedimento p() { } p();")
	assert.Contains(t, out, "p()")
}

func Test_Generate_lineCommentReemitted(t *testing.T) {
	out := generate(t, "// ola\ninteiro x;")
	assert.Contains(t, out, "# ola")
}

func Test_Generate_blockCommentSplitsLines(t *testing.T) {
	out := generate(t, "/* linha um\nlinha dois */\ninteiro x;")
	assert.Contains(t, out, "# linha um")
	assert.Contains(t, out, "# linha dois")
}

func Test_Generate_blankLineBetweenSubroutines(t *testing.T) {
	out := generate(t, "procedimento p() { } procedimento q() { }")
	assert.Contains(t, out, "def p():\n    pass\n\ndef q():\n    pass")
}
