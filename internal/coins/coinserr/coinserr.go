// Package coinserr defines the diagnostic taxonomy shared by every compiler
// phase: LexError, SyntaxError, SemanticError, SemanticWarning, and
// InternalError. Diagnostics are collected by the phase that raises them,
// never thrown - each type carries both a human-readable message and the
// source Position it was raised against.
package coinserr

import (
	"fmt"

	"github.com/dekarrin/coins/internal/coins/token"
	"github.com/dekarrin/rosed"
)

// consoleWidth is the column width diagnostic messages are wrapped to
// before display, matching the teacher's consoleOutputWidth.
const consoleWidth = 80

// Category identifies which diagnostic taxonomy a Diagnostic belongs to, used
// by the driver to log under the right heading and to decide the §6.1
// codegen-gating policy (run codegen only if Lex/Syntax/Semantic error lists
// are all empty; warnings never gate).
type Category int

const (
	Lex Category = iota
	Syntax
	Semantic
	Warning
	Internal
)

func (c Category) String() string {
	switch c {
	case Lex:
		return "ERRO LEXICO"
	case Syntax:
		return "ERRO SINTATICO"
	case Semantic:
		return "ERRO SEMANTICO"
	case Warning:
		return "AVISO SEMANTICO"
	case Internal:
		return "ERRO INTERNO"
	default:
		return "ERRO"
	}
}

// Diagnostic is a single reported problem: its Category, a message, and the
// Position it applies to.
type Diagnostic struct {
	Cat Category
	Msg string
	Pos token.Position
}

func (d Diagnostic) Error() string {
	msg := rosed.Edit(d.Msg).Wrap(consoleWidth).String()
	return fmt.Sprintf("%s: %s (%s)", d.Cat, msg, d.Pos)
}

// New builds a Diagnostic of the given category at pos.
func New(cat Category, pos token.Position, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Cat: cat, Msg: fmt.Sprintf(format, args...), Pos: pos}
}

// LexErrorf builds a Category-Lex Diagnostic.
func LexErrorf(pos token.Position, format string, args ...interface{}) Diagnostic {
	return New(Lex, pos, format, args...)
}

// SyntaxErrorf builds a Category-Syntax Diagnostic.
func SyntaxErrorf(pos token.Position, format string, args ...interface{}) Diagnostic {
	return New(Syntax, pos, format, args...)
}

// SemanticErrorf builds a Category-Semantic Diagnostic.
func SemanticErrorf(pos token.Position, format string, args ...interface{}) Diagnostic {
	return New(Semantic, pos, format, args...)
}

// SemanticWarningf builds a Category-Warning Diagnostic.
func SemanticWarningf(pos token.Position, format string, args ...interface{}) Diagnostic {
	return New(Warning, pos, format, args...)
}

// InternalErrorf builds a Category-Internal Diagnostic. Raising one of these
// indicates a bug in the compiler itself (e.g. the code generator was
// handed an AST variant the semantic phase should have rejected), so callers
// typically panic with it rather than appending it to a diagnostics slice.
func InternalErrorf(pos token.Position, format string, args ...interface{}) Diagnostic {
	return New(Internal, pos, format, args...)
}
