package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/coins/internal/coins/lexer"
	"github.com/dekarrin/coins/internal/coins/parser"
	"github.com/dekarrin/coins/internal/coins/symtab"
	"github.com/dekarrin/coins/internal/coins/syntax"
)

func analyze(t *testing.T, src string) (syntax.Program, *symtab.Table, []string, []string) {
	t.Helper()
	syms := symtab.New()
	toks, lexErrs := lexer.New(src, syms).Scan()
	assert.Empty(t, lexErrs)
	prog, synErrs := parser.New(toks, syms).Parse()
	assert.Empty(t, synErrs)

	rewritten, errs, warns := New(syms).Analyze(prog)

	errMsgs := make([]string, len(errs))
	for i, e := range errs {
		errMsgs[i] = e.Error()
	}
	warnMsgs := make([]string, len(warns))
	for i, w := range warns {
		warnMsgs[i] = w.Error()
	}
	return rewritten, syms, errMsgs, warnMsgs
}

func Test_Analyze_S1_integerAssignment(t *testing.T) {
	assert := assert.New(t)

	prog, syms, errs, warns := analyze(t, "inteiro x; x = 3 + 4;")
	assert.Empty(errs)
	assert.Empty(warns)

	asn := prog.Body[1].AsAssignment()
	assert.Equal(syntax.Integer, asn.Value.(syntax.Expr).InferredType())

	sym, ok := syms.Lookup("x")
	assert.True(ok)
	assert.Equal("3 + 4", sym.CurrentValue)
}

func Test_Analyze_S2_typeNarrowingWarning(t *testing.T) {
	assert := assert.New(t)

	_, _, errs, warns := analyze(t, "inteiro x; x = 1.5;")
	assert.Empty(errs)
	assert.Len(warns, 1)
}

func Test_Analyze_S3_arithmeticOnText(t *testing.T) {
	assert := assert.New(t)

	_, _, errs, _ := analyze(t, "texto s; inteiro n; n = s + 1;")
	assert.NotEmpty(errs)
}

func Test_Analyze_S4_missingReturn(t *testing.T) {
	assert := assert.New(t)

	_, _, errs, _ := analyze(t, "funcao f() retorna inteiro { }")
	assert.Len(errs, 1)
	assert.Contains(errs[0], "f")
	assert.Contains(errs[0], "return")
}

func Test_Analyze_S6_callArity(t *testing.T) {
	assert := assert.New(t)

	_, _, errs, _ := analyze(t, "procedimento p(inteiro a) { } p(1, 2);")
	assert.Len(errs, 1)
	assert.Contains(errs[0], "p")
}

func Test_Analyze_shadowingAllowsDifferentType(t *testing.T) {
	assert := assert.New(t)

	_, _, errs, warns := analyze(t, `
		inteiro x;
		procedimento p(texto x) {
			x = "hello";
		}
	`)
	assert.Empty(errs)
	assert.Empty(warns)
}

func Test_Analyze_duplicateDeclarationSameScope(t *testing.T) {
	assert := assert.New(t)

	_, _, errs, _ := analyze(t, "inteiro x; inteiro x;")
	assert.Len(errs, 1)
}

func Test_Analyze_widingIsSilent(t *testing.T) {
	assert := assert.New(t)

	_, _, errs, warns := analyze(t, "real x; x = 3;")
	assert.Empty(errs)
	assert.Empty(warns)
}

func Test_Analyze_orderComparisonOnTextWarns(t *testing.T) {
	assert := assert.New(t)

	_, _, errs, warns := analyze(t, `
		texto a;
		texto b;
		procedimento p() {
			se (a < b) { }
		}
	`)
	assert.Empty(errs)
	assert.Len(warns, 1)
}

func Test_Analyze_procedureCannotBeUsedAsExpression(t *testing.T) {
	assert := assert.New(t)

	_, _, errs, _ := analyze(t, `
		procedimento p() { }
		inteiro x;
		x = p();
	`)
	assert.NotEmpty(errs)
}

func Test_Analyze_returnOutsideSubroutine(t *testing.T) {
	assert := assert.New(t)

	_, _, errs, _ := analyze(t, "retorna 1;")
	assert.Len(errs, 1)
}

func Test_Analyze_undeclaredIdentifier(t *testing.T) {
	assert := assert.New(t)

	_, _, errs, _ := analyze(t, "inteiro x; x = y;")
	assert.NotEmpty(errs)
}
