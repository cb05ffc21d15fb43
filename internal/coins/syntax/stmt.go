package syntax

import (
	"fmt"
	"strings"

	"github.com/dekarrin/coins/internal/coins/token"
)

// Declaration declares one or more names of the same type, e.g.
// "inteiro x, y;".
type Declaration struct {
	DeclaredType Type
	Names        []string

	src token.Token
}

func NewDeclaration(src token.Token, declaredType Type, names []string) Declaration {
	return Declaration{DeclaredType: declaredType, Names: names, src: src}
}

func (n Declaration) Type() NodeType             { return NDeclaration }
func (n Declaration) AsProgram() Program          { panic(panics(NDeclaration, NProgram)) }
func (n Declaration) AsDeclaration() Declaration  { return n }
func (n Declaration) AsAssignment() Assignment    { panic(panics(NDeclaration, NAssignment)) }
func (n Declaration) AsConditional() Conditional  { panic(panics(NDeclaration, NConditional)) }
func (n Declaration) AsLoop() Loop                { panic(panics(NDeclaration, NLoop)) }
func (n Declaration) AsSubroutineDecl() SubroutineDecl {
	panic(panics(NDeclaration, NSubroutineDecl))
}
func (n Declaration) AsSubroutineCall() SubroutineCall {
	panic(panics(NDeclaration, NSubroutineCall))
}
func (n Declaration) AsReturn() Return       { panic(panics(NDeclaration, NReturn)) }
func (n Declaration) AsComment() Comment     { panic(panics(NDeclaration, NComment)) }
func (n Declaration) AsBinaryExpr() BinaryExpr { panic(panics(NDeclaration, NBinaryExpr)) }
func (n Declaration) AsUnaryExpr() UnaryExpr { panic(panics(NDeclaration, NUnaryExpr)) }
func (n Declaration) AsIdentifier() Identifier { panic(panics(NDeclaration, NIdentifier)) }
func (n Declaration) AsLiteral() Literal     { panic(panics(NDeclaration, NLiteral)) }
func (n Declaration) Source() token.Token    { return n.src }

func (n Declaration) String() string {
	return fmt.Sprintf("[DECLARATION %s %s]", n.DeclaredType, strings.Join(n.Names, ", "))
}

// Assignment stores the value of an expression into a previously declared
// name.
type Assignment struct {
	Target string
	Value  Node

	src token.Token
}

func NewAssignment(src token.Token, target string, value Node) Assignment {
	return Assignment{Target: target, Value: value, src: src}
}

func (n Assignment) Type() NodeType             { return NAssignment }
func (n Assignment) AsProgram() Program         { panic(panics(NAssignment, NProgram)) }
func (n Assignment) AsDeclaration() Declaration { panic(panics(NAssignment, NDeclaration)) }
func (n Assignment) AsAssignment() Assignment   { return n }
func (n Assignment) AsConditional() Conditional { panic(panics(NAssignment, NConditional)) }
func (n Assignment) AsLoop() Loop               { panic(panics(NAssignment, NLoop)) }
func (n Assignment) AsSubroutineDecl() SubroutineDecl {
	panic(panics(NAssignment, NSubroutineDecl))
}
func (n Assignment) AsSubroutineCall() SubroutineCall {
	panic(panics(NAssignment, NSubroutineCall))
}
func (n Assignment) AsReturn() Return       { panic(panics(NAssignment, NReturn)) }
func (n Assignment) AsComment() Comment     { panic(panics(NAssignment, NComment)) }
func (n Assignment) AsBinaryExpr() BinaryExpr { panic(panics(NAssignment, NBinaryExpr)) }
func (n Assignment) AsUnaryExpr() UnaryExpr { panic(panics(NAssignment, NUnaryExpr)) }
func (n Assignment) AsIdentifier() Identifier { panic(panics(NAssignment, NIdentifier)) }
func (n Assignment) AsLiteral() Literal     { panic(panics(NAssignment, NLiteral)) }
func (n Assignment) Source() token.Token    { return n.src }

func (n Assignment) String() string {
	const valueStart = " V: "
	valueStr := spaceIndentNewlines(n.Value.String(), len(valueStart))
	return fmt.Sprintf("[ASSIGN %s\n%s%s\n]", n.Target, valueStart, valueStr)
}

// Conditional is an "se (...) { ... } senao { ... }" statement. Else is nil
// when no senao branch was parsed.
type Conditional struct {
	Condition Node
	Then      []Node
	Else      []Node

	src token.Token
}

func NewConditional(src token.Token, cond Node, then, els []Node) Conditional {
	return Conditional{Condition: cond, Then: then, Else: els, src: src}
}

func (n Conditional) Type() NodeType             { return NConditional }
func (n Conditional) AsProgram() Program         { panic(panics(NConditional, NProgram)) }
func (n Conditional) AsDeclaration() Declaration { panic(panics(NConditional, NDeclaration)) }
func (n Conditional) AsAssignment() Assignment   { panic(panics(NConditional, NAssignment)) }
func (n Conditional) AsConditional() Conditional { return n }
func (n Conditional) AsLoop() Loop               { panic(panics(NConditional, NLoop)) }
func (n Conditional) AsSubroutineDecl() SubroutineDecl {
	panic(panics(NConditional, NSubroutineDecl))
}
func (n Conditional) AsSubroutineCall() SubroutineCall {
	panic(panics(NConditional, NSubroutineCall))
}
func (n Conditional) AsReturn() Return       { panic(panics(NConditional, NReturn)) }
func (n Conditional) AsComment() Comment     { panic(panics(NConditional, NComment)) }
func (n Conditional) AsBinaryExpr() BinaryExpr { panic(panics(NConditional, NBinaryExpr)) }
func (n Conditional) AsUnaryExpr() UnaryExpr { panic(panics(NConditional, NUnaryExpr)) }
func (n Conditional) AsIdentifier() Identifier { panic(panics(NConditional, NIdentifier)) }
func (n Conditional) AsLiteral() Literal     { panic(panics(NConditional, NLiteral)) }
func (n Conditional) Source() token.Token    { return n.src }

func (n Conditional) String() string {
	const condStart = " C: "
	const thenStart = " T: "
	const elseStart = " E: "
	var sb strings.Builder
	sb.WriteString("[CONDITIONAL\n")
	sb.WriteString(condStart + spaceIndentNewlines(n.Condition.String(), len(condStart)) + "\n")
	sb.WriteString(thenStart + spaceIndentNewlines(stmtsString(n.Then), len(thenStart)))
	if n.Else != nil {
		sb.WriteString("\n" + elseStart + spaceIndentNewlines(stmtsString(n.Else), len(elseStart)))
	}
	sb.WriteString("\n]")
	return sb.String()
}

// Loop is an "enquanto (...) { ... }" statement.
type Loop struct {
	Condition Node
	Body      []Node

	src token.Token
}

func NewLoop(src token.Token, cond Node, body []Node) Loop {
	return Loop{Condition: cond, Body: body, src: src}
}

func (n Loop) Type() NodeType             { return NLoop }
func (n Loop) AsProgram() Program         { panic(panics(NLoop, NProgram)) }
func (n Loop) AsDeclaration() Declaration { panic(panics(NLoop, NDeclaration)) }
func (n Loop) AsAssignment() Assignment   { panic(panics(NLoop, NAssignment)) }
func (n Loop) AsConditional() Conditional { panic(panics(NLoop, NConditional)) }
func (n Loop) AsLoop() Loop               { return n }
func (n Loop) AsSubroutineDecl() SubroutineDecl {
	panic(panics(NLoop, NSubroutineDecl))
}
func (n Loop) AsSubroutineCall() SubroutineCall {
	panic(panics(NLoop, NSubroutineCall))
}
func (n Loop) AsReturn() Return       { panic(panics(NLoop, NReturn)) }
func (n Loop) AsComment() Comment     { panic(panics(NLoop, NComment)) }
func (n Loop) AsBinaryExpr() BinaryExpr { panic(panics(NLoop, NBinaryExpr)) }
func (n Loop) AsUnaryExpr() UnaryExpr { panic(panics(NLoop, NUnaryExpr)) }
func (n Loop) AsIdentifier() Identifier { panic(panics(NLoop, NIdentifier)) }
func (n Loop) AsLiteral() Literal     { panic(panics(NLoop, NLiteral)) }
func (n Loop) Source() token.Token    { return n.src }

func (n Loop) String() string {
	const condStart = " C: "
	const bodyStart = " B: "
	var sb strings.Builder
	sb.WriteString("[LOOP\n")
	sb.WriteString(condStart + spaceIndentNewlines(n.Condition.String(), len(condStart)) + "\n")
	sb.WriteString(bodyStart + spaceIndentNewlines(stmtsString(n.Body), len(bodyStart)))
	sb.WriteString("\n]")
	return sb.String()
}

// SubroutineKind distinguishes a procedure (no return value) from a
// function (typed return value).
type SubroutineKind int

const (
	KindProcedure SubroutineKind = iota
	KindFunction
)

func (k SubroutineKind) String() string {
	if k == KindFunction {
		return "function"
	}
	return "procedure"
}

// Param is one typed parameter of a SubroutineDecl.
type Param struct {
	Name string
	Type Type
}

// SubroutineDecl declares a procedure or function.
type SubroutineDecl struct {
	Kind       SubroutineKind
	Name       string
	Params     []Param
	HasReturn  bool
	ReturnType Type
	Body       []Node

	src token.Token
}

func NewSubroutineDecl(src token.Token, kind SubroutineKind, name string, params []Param, hasReturn bool, returnType Type, body []Node) SubroutineDecl {
	return SubroutineDecl{
		Kind: kind, Name: name, Params: params,
		HasReturn: hasReturn, ReturnType: returnType, Body: body, src: src,
	}
}

func (n SubroutineDecl) Type() NodeType             { return NSubroutineDecl }
func (n SubroutineDecl) AsProgram() Program         { panic(panics(NSubroutineDecl, NProgram)) }
func (n SubroutineDecl) AsDeclaration() Declaration { panic(panics(NSubroutineDecl, NDeclaration)) }
func (n SubroutineDecl) AsAssignment() Assignment   { panic(panics(NSubroutineDecl, NAssignment)) }
func (n SubroutineDecl) AsConditional() Conditional { panic(panics(NSubroutineDecl, NConditional)) }
func (n SubroutineDecl) AsLoop() Loop               { panic(panics(NSubroutineDecl, NLoop)) }
func (n SubroutineDecl) AsSubroutineDecl() SubroutineDecl { return n }
func (n SubroutineDecl) AsSubroutineCall() SubroutineCall {
	panic(panics(NSubroutineDecl, NSubroutineCall))
}
func (n SubroutineDecl) AsReturn() Return       { panic(panics(NSubroutineDecl, NReturn)) }
func (n SubroutineDecl) AsComment() Comment     { panic(panics(NSubroutineDecl, NComment)) }
func (n SubroutineDecl) AsBinaryExpr() BinaryExpr { panic(panics(NSubroutineDecl, NBinaryExpr)) }
func (n SubroutineDecl) AsUnaryExpr() UnaryExpr { panic(panics(NSubroutineDecl, NUnaryExpr)) }
func (n SubroutineDecl) AsIdentifier() Identifier { panic(panics(NSubroutineDecl, NIdentifier)) }
func (n SubroutineDecl) AsLiteral() Literal     { panic(panics(NSubroutineDecl, NLiteral)) }
func (n SubroutineDecl) Source() token.Token    { return n.src }

func (n SubroutineDecl) String() string {
	var sb strings.Builder
	sig := fmt.Sprintf("[SUBROUTINE %s %s(", n.Kind, n.Name)
	for i, p := range n.Params {
		if i > 0 {
			sig += ", "
		}
		sig += fmt.Sprintf("%s %s", p.Type, p.Name)
	}
	sig += ")"
	if n.Kind == KindFunction {
		sig += fmt.Sprintf(" -> %s", n.ReturnType)
	}
	sb.WriteString(sig + "\n")
	const bodyStart = " B: "
	sb.WriteString(bodyStart + spaceIndentNewlines(stmtsString(n.Body), len(bodyStart)))
	sb.WriteString("\n]")
	return sb.String()
}

// SubroutineCall invokes a procedure or function by name. The same node
// variant is used whether it appears as a standalone statement or as an
// operand inside an expression; callers distinguish the two by where the
// node sits in the tree, not by any field on the node itself.
type SubroutineCall struct {
	Callee string
	Args   []Node
	Inferred Type

	src token.Token
}

func NewSubroutineCall(src token.Token, callee string, args []Node) SubroutineCall {
	return SubroutineCall{Callee: callee, Args: args, Inferred: Unknown, src: src}
}

func (n SubroutineCall) Type() NodeType             { return NSubroutineCall }
func (n SubroutineCall) AsProgram() Program         { panic(panics(NSubroutineCall, NProgram)) }
func (n SubroutineCall) AsDeclaration() Declaration { panic(panics(NSubroutineCall, NDeclaration)) }
func (n SubroutineCall) AsAssignment() Assignment   { panic(panics(NSubroutineCall, NAssignment)) }
func (n SubroutineCall) AsConditional() Conditional { panic(panics(NSubroutineCall, NConditional)) }
func (n SubroutineCall) AsLoop() Loop               { panic(panics(NSubroutineCall, NLoop)) }
func (n SubroutineCall) AsSubroutineDecl() SubroutineDecl {
	panic(panics(NSubroutineCall, NSubroutineDecl))
}
func (n SubroutineCall) AsSubroutineCall() SubroutineCall { return n }
func (n SubroutineCall) AsReturn() Return                 { panic(panics(NSubroutineCall, NReturn)) }
func (n SubroutineCall) AsComment() Comment               { panic(panics(NSubroutineCall, NComment)) }
func (n SubroutineCall) AsBinaryExpr() BinaryExpr         { panic(panics(NSubroutineCall, NBinaryExpr)) }
func (n SubroutineCall) AsUnaryExpr() UnaryExpr           { panic(panics(NSubroutineCall, NUnaryExpr)) }
func (n SubroutineCall) AsIdentifier() Identifier         { panic(panics(NSubroutineCall, NIdentifier)) }
func (n SubroutineCall) AsLiteral() Literal               { panic(panics(NSubroutineCall, NLiteral)) }
func (n SubroutineCall) Source() token.Token              { return n.src }
func (n SubroutineCall) InferredType() Type               { return n.Inferred }

func (n SubroutineCall) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[CALL %s type=%s", n.Callee, n.Inferred))
	const argStart = " A: "
	for _, a := range n.Args {
		sb.WriteString("\n" + argStart + spaceIndentNewlines(a.String(), len(argStart)))
	}
	sb.WriteString("]")
	return sb.String()
}

// Return is a "retorna [expr];" statement. HasValue distinguishes a bare
// return from a return with an empty-but-present value, which Coins'
// grammar does not otherwise allow but is kept explicit for clarity.
type Return struct {
	Value    Node
	HasValue bool

	src token.Token
}

func NewReturn(src token.Token, value Node) Return {
	return Return{Value: value, HasValue: value != nil, src: src}
}

func (n Return) Type() NodeType             { return NReturn }
func (n Return) AsProgram() Program         { panic(panics(NReturn, NProgram)) }
func (n Return) AsDeclaration() Declaration { panic(panics(NReturn, NDeclaration)) }
func (n Return) AsAssignment() Assignment   { panic(panics(NReturn, NAssignment)) }
func (n Return) AsConditional() Conditional { panic(panics(NReturn, NConditional)) }
func (n Return) AsLoop() Loop               { panic(panics(NReturn, NLoop)) }
func (n Return) AsSubroutineDecl() SubroutineDecl {
	panic(panics(NReturn, NSubroutineDecl))
}
func (n Return) AsSubroutineCall() SubroutineCall {
	panic(panics(NReturn, NSubroutineCall))
}
func (n Return) AsReturn() Return       { return n }
func (n Return) AsComment() Comment     { panic(panics(NReturn, NComment)) }
func (n Return) AsBinaryExpr() BinaryExpr { panic(panics(NReturn, NBinaryExpr)) }
func (n Return) AsUnaryExpr() UnaryExpr { panic(panics(NReturn, NUnaryExpr)) }
func (n Return) AsIdentifier() Identifier { panic(panics(NReturn, NIdentifier)) }
func (n Return) AsLiteral() Literal     { panic(panics(NReturn, NLiteral)) }
func (n Return) Source() token.Token    { return n.src }

func (n Return) String() string {
	if !n.HasValue {
		return "[RETURN]"
	}
	const valueStart = " V: "
	return fmt.Sprintf("[RETURN\n%s%s\n]", valueStart, spaceIndentNewlines(n.Value.String(), len(valueStart)))
}

// Comment is a preserved // or /* */ comment, kept in the AST purely so the
// code generator can re-emit it.
type Comment struct {
	Text  string
	Style token.CommentStyle

	src token.Token
}

func NewComment(src token.Token, text string, style token.CommentStyle) Comment {
	return Comment{Text: text, Style: style, src: src}
}

func (n Comment) Type() NodeType             { return NComment }
func (n Comment) AsProgram() Program         { panic(panics(NComment, NProgram)) }
func (n Comment) AsDeclaration() Declaration { panic(panics(NComment, NDeclaration)) }
func (n Comment) AsAssignment() Assignment   { panic(panics(NComment, NAssignment)) }
func (n Comment) AsConditional() Conditional { panic(panics(NComment, NConditional)) }
func (n Comment) AsLoop() Loop               { panic(panics(NComment, NLoop)) }
func (n Comment) AsSubroutineDecl() SubroutineDecl {
	panic(panics(NComment, NSubroutineDecl))
}
func (n Comment) AsSubroutineCall() SubroutineCall {
	panic(panics(NComment, NSubroutineCall))
}
func (n Comment) AsReturn() Return       { panic(panics(NComment, NReturn)) }
func (n Comment) AsComment() Comment     { return n }
func (n Comment) AsBinaryExpr() BinaryExpr { panic(panics(NComment, NBinaryExpr)) }
func (n Comment) AsUnaryExpr() UnaryExpr { panic(panics(NComment, NUnaryExpr)) }
func (n Comment) AsIdentifier() Identifier { panic(panics(NComment, NIdentifier)) }
func (n Comment) AsLiteral() Literal     { panic(panics(NComment, NLiteral)) }
func (n Comment) Source() token.Token    { return n.src }

func (n Comment) String() string {
	return fmt.Sprintf("[COMMENT %s %q]", n.Style, n.Text)
}

func stmtsString(stmts []Node) string {
	if len(stmts) == 0 {
		return "(empty)"
	}
	var sb strings.Builder
	for i, s := range stmts {
		sb.WriteString(s.String())
		if i+1 < len(stmts) {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}
