// Package semantic implements the Coins semantic analyzer: scope
// resolution, type inference and compatibility checking, subroutine
// signature validation, and return-flow validation. It walks the AST
// produced by the parser and returns a rewritten AST with every
// expression's inferred_type slot populated, since syntax.Node variants are
// immutable value types - "populating a slot" here means reconstructing the
// containing node with the slot filled in, the value-type equivalent of the
// in-place mutation spec.md describes (see DESIGN.md).
package semantic

import (
	"github.com/dekarrin/coins/internal/coins/coinserr"
	"github.com/dekarrin/coins/internal/coins/symtab"
	"github.com/dekarrin/coins/internal/coins/syntax"
	"github.com/dekarrin/coins/internal/coins/token"
)

// funcCtx tracks the "current function" context from spec.md §4.3 while the
// analyzer is inside a SubroutineDecl body.
type funcCtx struct {
	active      bool
	isFunction  bool
	name        string
	returnType  syntax.Type
	sawReturn   bool
}

// Analyzer walks a Program and validates it against the scope, type, and
// signature rules in spec.md §4.3, threading a single *symtab.Table that was
// already pre-populated by the lexer and parser.
type Analyzer struct {
	syms  *symtab.Table
	scope *symtab.ScopeStack
	fn    funcCtx

	errs  []coinserr.Diagnostic
	warns []coinserr.Diagnostic
}

// New creates an Analyzer over syms, the symbol table pre-populated by the
// lexer (placeholder identifiers) and parser (subroutine signatures).
func New(syms *symtab.Table) *Analyzer {
	return &Analyzer{syms: syms, scope: symtab.NewScopeStack()}
}

// Analyze walks prog and returns the rewritten, type-annotated program
// together with the errors and warnings recorded along the way.
func (a *Analyzer) Analyze(prog syntax.Program) (syntax.Program, []coinserr.Diagnostic, []coinserr.Diagnostic) {
	// First pass: register every top-level subroutine's signature in the
	// global scope frame before analyzing any body, so forward references
	// (a procedure calling one declared later in the file) resolve.
	for _, item := range prog.Body {
		if item.Type() == syntax.NSubroutineDecl {
			a.declareSubroutine(item.AsSubroutineDecl())
		}
	}

	body := a.analyzeStmts(prog.Body)
	return syntax.Program{Body: body}, a.errs, a.warns
}

func (a *Analyzer) declareSubroutine(decl syntax.SubroutineDecl) {
	params := make([]symtab.ParamInfo, len(decl.Params))
	for i, p := range decl.Params {
		params[i] = symtab.ParamInfo{Name: p.Name, Type: string(p.Type)}
	}
	cat := symtab.Procedure
	if decl.Kind == syntax.KindFunction {
		cat = symtab.Function
	}
	a.scope.DeclareLocal(decl.Name, symtab.ScopeEntry{
		Category: cat, Type: string(decl.ReturnType), Params: params, ReturnType: string(decl.ReturnType),
	})
}

func (a *Analyzer) errf(pos token.Position, format string, args ...interface{}) {
	a.errs = append(a.errs, coinserr.SemanticErrorf(pos, format, args...))
}

func (a *Analyzer) warnf(pos token.Position, format string, args ...interface{}) {
	a.warns = append(a.warns, coinserr.SemanticWarningf(pos, format, args...))
}

// analyzeStmts walks a statement list in order, returning the rewritten
// list (expression-bearing statements are replaced with their analyzed
// form; everything else is returned unchanged since it holds no inferred
// type slot of its own beyond what its children hold).
func (a *Analyzer) analyzeStmts(stmts []syntax.Node) []syntax.Node {
	out := make([]syntax.Node, len(stmts))
	for i, s := range stmts {
		out[i] = a.analyzeStmt(s)
	}
	return out
}

func (a *Analyzer) analyzeStmt(n syntax.Node) syntax.Node {
	switch n.Type() {
	case syntax.NDeclaration:
		return a.analyzeDeclaration(n.AsDeclaration())
	case syntax.NAssignment:
		return a.analyzeAssignment(n.AsAssignment())
	case syntax.NConditional:
		return a.analyzeConditional(n.AsConditional())
	case syntax.NLoop:
		return a.analyzeLoop(n.AsLoop())
	case syntax.NSubroutineDecl:
		return a.analyzeSubroutineDecl(n.AsSubroutineDecl())
	case syntax.NSubroutineCall:
		return a.analyzeCall(n.AsSubroutineCall(), false)
	case syntax.NReturn:
		return a.analyzeReturn(n.AsReturn())
	case syntax.NComment:
		return n
	default:
		return n
	}
}

func (a *Analyzer) analyzeDeclaration(d syntax.Declaration) syntax.Node {
	for _, name := range d.Names {
		if !a.scope.DeclareLocal(name, symtab.ScopeEntry{Category: symtab.Variable, Type: string(d.DeclaredType)}) {
			a.errf(d.Source().Pos, "%q is already declared in this scope", name)
			continue
		}
		a.syms.Declare(symtab.Symbol{Name: name, Category: symtab.Variable, DeclaredType: string(d.DeclaredType)})
	}
	return d
}

func (a *Analyzer) analyzeAssignment(asn syntax.Assignment) syntax.Node {
	value := a.analyzeExpr(asn.Value)

	entry, ok := a.scope.Resolve(asn.Target)
	if !ok {
		a.errf(asn.Source().Pos, "assignment to undeclared identifier %q", asn.Target)
		return syntax.NewAssignment(asn.Source(), asn.Target, value)
	}

	a.checkAssignable(asn.Source().Pos, asn.Target, syntax.Type(entry.Type), exprType(value))

	current := currentValueText(value)
	a.syms.SetCurrentValue(asn.Target, current)

	return syntax.NewAssignment(asn.Source(), asn.Target, value)
}

func (a *Analyzer) analyzeConditional(c syntax.Conditional) syntax.Node {
	cond := a.analyzeExpr(c.Condition)
	a.checkConditionType(cond)

	a.scope.Push()
	then := a.analyzeStmts(c.Then)
	a.scope.Pop()

	var els []syntax.Node
	if c.Else != nil {
		a.scope.Push()
		els = a.analyzeStmts(c.Else)
		a.scope.Pop()
	}
	return syntax.NewConditional(c.Source(), cond, then, els)
}

func (a *Analyzer) analyzeLoop(l syntax.Loop) syntax.Node {
	cond := a.analyzeExpr(l.Condition)
	a.checkConditionType(cond)

	a.scope.Push()
	body := a.analyzeStmts(l.Body)
	a.scope.Pop()
	return syntax.NewLoop(l.Source(), cond, body)
}

func (a *Analyzer) checkConditionType(cond syntax.Node) {
	t := exprType(cond)
	if t == syntax.Unknown {
		return
	}
	if t != syntax.Boolean && !t.IsNumeric() {
		a.errf(cond.Source().Pos, "condition must be boolean or numeric, found %s", t)
	}
}

func (a *Analyzer) analyzeSubroutineDecl(decl syntax.SubroutineDecl) syntax.Node {
	outer := a.fn
	a.fn = funcCtx{active: true, isFunction: decl.Kind == syntax.KindFunction, name: decl.Name, returnType: decl.ReturnType}

	a.scope.Push()
	for _, p := range decl.Params {
		a.scope.DeclareLocal(p.Name, symtab.ScopeEntry{Category: symtab.Parameter, Type: string(p.Type)})
		a.syms.Declare(symtab.Symbol{Name: p.Name, Category: symtab.Parameter, DeclaredType: string(p.Type)})
	}
	body := a.analyzeStmts(decl.Body)

	if decl.Kind == syntax.KindFunction && decl.HasReturn && !a.fn.sawReturn {
		a.errf(decl.Source().Pos, "function %q has no return statement", decl.Name)
	}

	a.scope.Pop()
	a.fn = outer

	return syntax.NewSubroutineDecl(decl.Source(), decl.Kind, decl.Name, decl.Params, decl.HasReturn, decl.ReturnType, body)
}

func (a *Analyzer) analyzeReturn(ret syntax.Return) syntax.Node {
	if !a.fn.active {
		a.errf(ret.Source().Pos, "return statement outside of any subroutine")
		return ret
	}
	a.fn.sawReturn = true

	if !a.fn.isFunction {
		if ret.HasValue {
			a.errf(ret.Source().Pos, "procedure %q cannot return a value", a.fn.name)
		}
		return ret
	}

	if !ret.HasValue {
		a.errf(ret.Source().Pos, "function %q must return a value of type %s", a.fn.name, a.fn.returnType)
		return ret
	}

	value := a.analyzeExpr(ret.Value)
	a.checkAssignable(ret.Source().Pos, "return value", a.fn.returnType, exprType(value))
	return syntax.NewReturn(ret.Source(), value)
}

// analyzeCall type-checks a SubroutineCall, used both for call statements
// (asStmt is irrelevant there) and for calls appearing as expression
// operands (asExpr, via analyzeExpr).
func (a *Analyzer) analyzeCall(call syntax.SubroutineCall, asExpr bool) syntax.Node {
	args := make([]syntax.Node, len(call.Args))
	for i, arg := range call.Args {
		args[i] = a.analyzeExpr(arg)
	}

	entry, ok := a.scope.Resolve(call.Callee)
	if !ok {
		a.errf(call.Source().Pos, "call to undeclared subroutine %q", call.Callee)
		return syntax.NewSubroutineCall(call.Source(), call.Callee, args)
	}

	if entry.Category != symtab.Procedure && entry.Category != symtab.Function {
		a.errf(call.Source().Pos, "%q is not a procedure or function", call.Callee)
		return syntax.NewSubroutineCall(call.Source(), call.Callee, args)
	}

	if asExpr && entry.Category == symtab.Procedure {
		a.errf(call.Source().Pos, "procedure %q cannot be used as an expression", call.Callee)
	}

	if len(args) != len(entry.Params) {
		a.errf(call.Source().Pos, "wrong number of arguments for %q, expected %d, found %d", call.Callee, len(entry.Params), len(args))
	} else {
		for i, param := range entry.Params {
			a.checkAssignable(call.Source().Pos, param.Name, syntax.Type(param.Type), exprType(args[i]))
		}
	}

	resultType := syntax.Type(entry.ReturnType)
	if entry.Category == symtab.Procedure {
		resultType = syntax.Unknown
	}
	result := syntax.NewSubroutineCall(call.Source(), call.Callee, args)
	return withCallType(result, resultType)
}

// withCallType rebuilds a SubroutineCall node carrying a resolved inferred
// type. SubroutineCall doesn't expose a setter (its fields are exported but
// Inferred is set at construction only), so this re-derives the same
// literal construction NewSubroutineCall performs and overwrites the
// Inferred field directly since the type is in the same package's reach via
// the exported struct literal.
func withCallType(c syntax.SubroutineCall, t syntax.Type) syntax.SubroutineCall {
	c.Inferred = t
	return c
}

func exprType(n syntax.Node) syntax.Type {
	if e, ok := n.(syntax.Expr); ok {
		return e.InferredType()
	}
	return syntax.Unknown
}

// checkAssignable applies spec.md §4.3's assignment compatibility table,
// reporting a warning for implicit narrowing and an error for anything else
// incompatible. unknown on either side suppresses further reporting since
// the underlying cause was already reported at its origin.
func (a *Analyzer) checkAssignable(pos token.Position, target string, declared, actual syntax.Type) {
	if declared == syntax.Unknown || actual == syntax.Unknown {
		return
	}
	if declared == actual {
		return
	}
	if declared == syntax.Real && actual == syntax.Integer {
		return
	}
	if declared == syntax.Integer && actual == syntax.Real {
		a.warnf(pos, "implicit narrowing assigning %s to %s %q, possible precision loss", actual, declared, target)
		return
	}
	a.errf(pos, "cannot assign %s to %s %q", actual, declared, target)
}

// analyzeExpr dispatches on the expression node variants, populating each
// one's inferred_type and returning the rewritten node.
func (a *Analyzer) analyzeExpr(n syntax.Node) syntax.Node {
	switch n.Type() {
	case syntax.NBinaryExpr:
		return a.analyzeBinary(n.AsBinaryExpr())
	case syntax.NUnaryExpr:
		return a.analyzeUnary(n.AsUnaryExpr())
	case syntax.NIdentifier:
		return a.analyzeIdentifier(n.AsIdentifier())
	case syntax.NLiteral:
		return n
	case syntax.NSubroutineCall:
		return a.analyzeCall(n.AsSubroutineCall(), true)
	default:
		return n
	}
}

func (a *Analyzer) analyzeIdentifier(id syntax.Identifier) syntax.Node {
	entry, ok := a.scope.Resolve(id.Name)
	if !ok {
		a.errf(id.Source().Pos, "undeclared identifier %q", id.Name)
		return syntax.NewIdentifier(id.Source(), id.Name)
	}
	resolved := syntax.NewIdentifier(id.Source(), id.Name)
	return withIdentifierType(resolved, syntax.Type(entry.Type))
}

func withIdentifierType(id syntax.Identifier, t syntax.Type) syntax.Identifier {
	id.Resolved = t
	return id
}

var arithOps = map[string]bool{"+": true, "-": true, "*": true, "/": true, "%": true}
var compOps = map[string]bool{"==": true, "!=": true, ">": true, "<": true, ">=": true, "<=": true}
var orderOps = map[string]bool{">": true, "<": true, ">=": true, "<=": true}
var logicOps = map[string]bool{"&&": true, "||": true}

func (a *Analyzer) analyzeBinary(b syntax.BinaryExpr) syntax.Node {
	left := a.analyzeExpr(b.Left)
	right := a.analyzeExpr(b.Right)
	lt, rt := exprType(left), exprType(right)

	result := syntax.NewBinaryExpr(b.Source(), b.Operator, left, right)

	if lt == syntax.Unknown || rt == syntax.Unknown {
		return withBinaryType(result, syntax.Unknown)
	}

	switch {
	case arithOps[b.Operator]:
		if lt.IsNumeric() && rt.IsNumeric() {
			if lt == syntax.Real || rt == syntax.Real {
				return withBinaryType(result, syntax.Real)
			}
			return withBinaryType(result, syntax.Integer)
		}
		a.errf(b.Source().Pos, "arithmetic operator %q requires numeric operands, found %s and %s", b.Operator, lt, rt)
		return withBinaryType(result, syntax.Unknown)

	case compOps[b.Operator]:
		if lt.IsNumeric() && rt.IsNumeric() {
			return withBinaryType(result, syntax.Boolean)
		}
		if lt == syntax.Text && rt == syntax.Text {
			if orderOps[b.Operator] {
				a.warnf(b.Source().Pos, "order comparison %q on texto operands", b.Operator)
			}
			return withBinaryType(result, syntax.Boolean)
		}
		a.errf(b.Source().Pos, "comparison operator %q requires matching numeric or texto operands, found %s and %s", b.Operator, lt, rt)
		return withBinaryType(result, syntax.Unknown)

	case logicOps[b.Operator]:
		if lt == syntax.Boolean && rt == syntax.Boolean {
			return withBinaryType(result, syntax.Boolean)
		}
		a.errf(b.Source().Pos, "logical operator %q requires boolean operands, found %s and %s", b.Operator, lt, rt)
		return withBinaryType(result, syntax.Unknown)

	default:
		a.errs = append(a.errs, coinserr.InternalErrorf(b.Source().Pos, "unrecognized binary operator %q", b.Operator))
		return withBinaryType(result, syntax.Unknown)
	}
}

func withBinaryType(b syntax.BinaryExpr, t syntax.Type) syntax.BinaryExpr {
	b.Inferred = t
	return b
}

func (a *Analyzer) analyzeUnary(u syntax.UnaryExpr) syntax.Node {
	operand := a.analyzeExpr(u.Operand)
	ot := exprType(operand)

	result := syntax.NewUnaryExpr(u.Source(), u.Operator, operand)

	if ot == syntax.Unknown {
		return withUnaryType(result, syntax.Unknown)
	}
	if u.Operator == "!" {
		if ot == syntax.Boolean {
			return withUnaryType(result, syntax.Boolean)
		}
		a.errf(u.Source().Pos, "logical negation requires a boolean operand, found %s", ot)
		return withUnaryType(result, syntax.Unknown)
	}
	a.errs = append(a.errs, coinserr.InternalErrorf(u.Source().Pos, "unrecognized unary operator %q", u.Operator))
	return withUnaryType(result, syntax.Unknown)
}

func withUnaryType(u syntax.UnaryExpr, t syntax.Type) syntax.UnaryExpr {
	u.Inferred = t
	return u
}

// currentValueText re-derives the textual form of an already-analyzed
// expression for the symbol table's reporting-only current_value field
// (spec.md §9 open question 4: this is not a partial-evaluation contract,
// it mirrors the source's str(value) rendering of the right-hand AST node
// as written, not an evaluated result).
func currentValueText(n syntax.Node) string {
	switch n.Type() {
	case syntax.NLiteral:
		return n.AsLiteral().Lexeme
	case syntax.NIdentifier:
		return n.AsIdentifier().Name
	case syntax.NBinaryExpr:
		b := n.AsBinaryExpr()
		return currentValueText(b.Left) + " " + b.Operator + " " + currentValueText(b.Right)
	case syntax.NUnaryExpr:
		u := n.AsUnaryExpr()
		return u.Operator + currentValueText(u.Operand)
	case syntax.NSubroutineCall:
		c := n.AsSubroutineCall()
		s := c.Callee + "("
		for i, arg := range c.Args {
			if i > 0 {
				s += ", "
			}
			s += currentValueText(arg)
		}
		return s + ")"
	default:
		return n.String()
	}
}
