// Package codegen implements the Coins code generator: a closed-set visitor
// over the semantically-validated AST that emits target source text in a
// Python-like dynamically-typed language, per spec.md §4.4's emission
// table. It is grounded directly on original_source/src/gerador_codigo.py's
// visit_* method shape, translated into an exhaustive switch over
// syntax.NodeType so that adding a new AST variant forces every visitor
// here to be revisited at compile time (spec.md §9's design note).
package codegen

import (
	"fmt"
	"strings"

	"github.com/dekarrin/coins/internal/coins/coinserr"
	"github.com/dekarrin/coins/internal/coins/syntax"
	"github.com/dekarrin/coins/internal/coins/token"
)

const indentWidth = 4

// binaryOpRemap and unaryOpRemap translate Coins operator spellings to the
// target language's, per spec.md §4.4.
var binaryOpRemap = map[string]string{"&&": "and", "||": "or"}
var unaryOpRemap = map[string]string{"!": "not"}

// Generator walks a validated syntax.Program and accumulates emitted target
// lines, tracking indentation as an integer level (4 spaces per level).
type Generator struct {
	lines []string
	level int
}

// New creates an empty Generator.
func New() *Generator {
	return &Generator{}
}

// Generate emits target source text for prog. It panics with a
// coinserr.Diagnostic of category Internal if prog contains a node variant
// the semantic phase should already have rejected - spec.md §4.4: "Unknown
// node variant encountered during codegen is a fatal internal error."
func Generate(prog syntax.Program) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			if diag, ok := r.(coinserr.Diagnostic); ok {
				err = diag
				return
			}
			panic(r)
		}
	}()

	g := New()
	g.visitProgram(prog)
	return strings.Join(g.lines, "\n"), nil
}

func (g *Generator) indent() string {
	return strings.Repeat(" ", indentWidth*g.level)
}

func (g *Generator) emit(line string) {
	g.lines = append(g.lines, g.indent()+line)
}

func (g *Generator) emitBlank() {
	g.lines = append(g.lines, "")
}

func (g *Generator) visitProgram(p syntax.Program) {
	for i, item := range p.Body {
		if i > 0 && item.Type() == syntax.NSubroutineDecl {
			g.emitBlank()
		}
		g.visitStmt(item)
	}
}

func (g *Generator) visitStmt(n syntax.Node) {
	switch n.Type() {
	case syntax.NDeclaration:
		g.visitDeclaration(n.AsDeclaration())
	case syntax.NAssignment:
		g.visitAssignment(n.AsAssignment())
	case syntax.NConditional:
		g.visitConditional(n.AsConditional())
	case syntax.NLoop:
		g.visitLoop(n.AsLoop())
	case syntax.NSubroutineDecl:
		g.visitSubroutineDecl(n.AsSubroutineDecl())
	case syntax.NSubroutineCall:
		g.visitCallStmt(n.AsSubroutineCall())
	case syntax.NReturn:
		g.visitReturn(n.AsReturn())
	case syntax.NComment:
		g.visitComment(n.AsComment())
	default:
		panic(coinserr.InternalErrorf(n.Source().Pos, "codegen: unhandled node variant %s", n.Type()))
	}
}

func (g *Generator) visitDeclaration(d syntax.Declaration) {
	zero := zeroValue(d.DeclaredType)
	for _, name := range d.Names {
		g.emit(fmt.Sprintf("%s = %s", name, zero))
	}
}

func zeroValue(t syntax.Type) string {
	switch t {
	case syntax.Integer:
		return "0"
	case syntax.Real:
		return "0.0"
	case syntax.Text:
		return `""`
	default:
		return "None"
	}
}

func (g *Generator) visitAssignment(a syntax.Assignment) {
	g.emit(fmt.Sprintf("%s = %s", a.Target, g.visitExpr(a.Value)))
}

func (g *Generator) visitConditional(c syntax.Conditional) {
	g.emit(fmt.Sprintf("if %s:", g.visitExpr(c.Condition)))
	g.level++
	g.visitBody(c.Then)
	g.level--
	if c.Else != nil {
		g.emit("else:")
		g.level++
		g.visitBody(c.Else)
		g.level--
	}
}

func (g *Generator) visitLoop(l syntax.Loop) {
	g.emit(fmt.Sprintf("while %s:", g.visitExpr(l.Condition)))
	g.level++
	g.visitBody(l.Body)
	g.level--
}

// visitBody visits a statement list already known to sit inside an
// indented block, emitting "pass" if it is empty so the target language
// (which uses indentation to delimit blocks) stays syntactically valid.
func (g *Generator) visitBody(stmts []syntax.Node) {
	if len(stmts) == 0 {
		g.emit("pass")
		return
	}
	for _, s := range stmts {
		g.visitStmt(s)
	}
}

func (g *Generator) visitSubroutineDecl(d syntax.SubroutineDecl) {
	names := make([]string, len(d.Params))
	for i, p := range d.Params {
		names[i] = p.Name
	}
	g.emit(fmt.Sprintf("def %s(%s):", d.Name, strings.Join(names, ", ")))
	g.level++
	g.visitBody(d.Body)
	g.level--
}

func (g *Generator) visitCallStmt(c syntax.SubroutineCall) {
	g.emit(g.renderCall(c))
}

func (g *Generator) visitReturn(r syntax.Return) {
	if !r.HasValue {
		g.emit("return")
		return
	}
	g.emit(fmt.Sprintf("return %s", g.visitExpr(r.Value)))
}

// visitComment re-emits a preserved comment as one or more target line
// comments; a block comment is split on newlines into one "# ..." line per
// source line, per spec.md §4.4.
func (g *Generator) visitComment(c syntax.Comment) {
	if c.Style == token.BlockComment {
		for _, line := range strings.Split(c.Text, "\n") {
			g.emit("# " + strings.TrimSpace(line))
		}
		return
	}
	g.emit("# " + strings.TrimSpace(c.Text))
}

// visitExpr renders an expression node to target text, used wherever an
// expression appears as an operand rather than its own statement line.
func (g *Generator) visitExpr(n syntax.Node) string {
	switch n.Type() {
	case syntax.NBinaryExpr:
		return g.renderBinary(n.AsBinaryExpr())
	case syntax.NUnaryExpr:
		return g.renderUnary(n.AsUnaryExpr())
	case syntax.NLiteral:
		return g.renderLiteral(n.AsLiteral())
	case syntax.NIdentifier:
		return n.AsIdentifier().Name
	case syntax.NSubroutineCall:
		return g.renderCall(n.AsSubroutineCall())
	default:
		panic(coinserr.InternalErrorf(n.Source().Pos, "codegen: unhandled expression variant %s", n.Type()))
	}
}

func (g *Generator) renderBinary(b syntax.BinaryExpr) string {
	op := b.Operator
	if remapped, ok := binaryOpRemap[op]; ok {
		op = remapped
	}
	return fmt.Sprintf("(%s %s %s)", g.visitExpr(b.Left), op, g.visitExpr(b.Right))
}

func (g *Generator) renderUnary(u syntax.UnaryExpr) string {
	op := u.Operator
	if remapped, ok := unaryOpRemap[op]; ok {
		op = remapped
	}
	return fmt.Sprintf("(%s %s)", op, g.visitExpr(u.Operand))
}

func (g *Generator) renderLiteral(l syntax.Literal) string {
	if l.Lit == syntax.Text {
		return `"` + strings.ReplaceAll(l.Lexeme, `"`, "") + `"`
	}
	return l.Lexeme
}

func (g *Generator) renderCall(c syntax.SubroutineCall) string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = g.visitExpr(a)
	}
	return fmt.Sprintf("%s(%s)", c.Callee, strings.Join(args, ", "))
}
