// Package coins contains the top-level driver for running the Coins
// compiler front-end against a source string: lexing, parsing, semantic
// analysis, and (if no errors occurred) code generation, in that order.
// Mirrors the shape of the teacher's engine.go: a single entry point that
// wires the phases together and is the thing cmd/coinsc and the compile-job
// HTTP service both call.
package coins

import (
	"github.com/dekarrin/coins/internal/coins/codegen"
	"github.com/dekarrin/coins/internal/coins/coinserr"
	"github.com/dekarrin/coins/internal/coins/lexer"
	"github.com/dekarrin/coins/internal/coins/parser"
	"github.com/dekarrin/coins/internal/coins/semantic"
	"github.com/dekarrin/coins/internal/coins/symtab"
	"github.com/dekarrin/coins/internal/coins/syntax"
)

// Result is the full output of a single Compile call: every diagnostic
// produced by every phase that ran, the final AST (typed if semantic
// analysis ran), the symbol table, and the generated target text (empty if
// codegen did not run).
type Result struct {
	AST    syntax.Program
	Syms   *symtab.Table
	Source string

	LexErrors      []coinserr.Diagnostic
	SyntaxErrors   []coinserr.Diagnostic
	SemanticErrors []coinserr.Diagnostic
	Warnings       []coinserr.Diagnostic

	// Generated is the target source text. CodegenRan is false (and
	// Generated is empty) whenever any of the three error lists above is
	// non-empty, per spec.md §6.1's gating policy.
	Generated  string
	CodegenRan bool
}

// Errored reports whether any phase recorded an error (warnings do not
// count).
func (r Result) Errored() bool {
	return len(r.LexErrors) > 0 || len(r.SyntaxErrors) > 0 || len(r.SemanticErrors) > 0
}

// Compile runs the full four-phase pipeline over src and returns every
// diagnostic and artifact produced. It never returns an error itself -
// compilation failure is represented in Result's diagnostic lists, per
// spec.md §7's "errors are collected, not thrown" propagation model.
func Compile(src string) Result {
	syms := symtab.New()

	toks, lexErrs := lexer.New(src, syms).Scan()

	prog, synErrs := parser.New(toks, syms).Parse()

	typed, semErrs, warns := semantic.New(syms).Analyze(prog)

	res := Result{
		AST:            typed,
		Syms:           syms,
		Source:         src,
		LexErrors:      lexErrs,
		SyntaxErrors:   synErrs,
		SemanticErrors: semErrs,
		Warnings:       warns,
	}

	if res.Errored() {
		return res
	}

	generated, err := codegen.Generate(typed)
	if err != nil {
		res.SemanticErrors = append(res.SemanticErrors, err.(coinserr.Diagnostic))
		return res
	}

	res.Generated = generated
	res.CodegenRan = true
	return res
}
