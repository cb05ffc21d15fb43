package syntax

import (
	"fmt"

	"github.com/dekarrin/coins/internal/coins/token"
	"github.com/dekarrin/rosed"
)

// BinaryExpr is a two-operand expression. InferredType is absent ("unknown")
// until semantic analysis populates it.
type BinaryExpr struct {
	Operator string
	Left     Node
	Right    Node
	Inferred Type

	src token.Token
}

// NewBinaryExpr constructs a BinaryExpr with an as-yet-unknown inferred type.
func NewBinaryExpr(src token.Token, op string, left, right Node) BinaryExpr {
	return BinaryExpr{Operator: op, Left: left, Right: right, Inferred: Unknown, src: src}
}

func (n BinaryExpr) Type() NodeType                  { return NBinaryExpr }
func (n BinaryExpr) AsProgram() Program              { panic(panics(NBinaryExpr, NProgram)) }
func (n BinaryExpr) AsDeclaration() Declaration      { panic(panics(NBinaryExpr, NDeclaration)) }
func (n BinaryExpr) AsAssignment() Assignment        { panic(panics(NBinaryExpr, NAssignment)) }
func (n BinaryExpr) AsConditional() Conditional      { panic(panics(NBinaryExpr, NConditional)) }
func (n BinaryExpr) AsLoop() Loop                    { panic(panics(NBinaryExpr, NLoop)) }
func (n BinaryExpr) AsSubroutineDecl() SubroutineDecl {
	panic(panics(NBinaryExpr, NSubroutineDecl))
}
func (n BinaryExpr) AsSubroutineCall() SubroutineCall {
	panic(panics(NBinaryExpr, NSubroutineCall))
}
func (n BinaryExpr) AsReturn() Return       { panic(panics(NBinaryExpr, NReturn)) }
func (n BinaryExpr) AsComment() Comment     { panic(panics(NBinaryExpr, NComment)) }
func (n BinaryExpr) AsBinaryExpr() BinaryExpr { return n }
func (n BinaryExpr) AsUnaryExpr() UnaryExpr { panic(panics(NBinaryExpr, NUnaryExpr)) }
func (n BinaryExpr) AsIdentifier() Identifier { panic(panics(NBinaryExpr, NIdentifier)) }
func (n BinaryExpr) AsLiteral() Literal     { panic(panics(NBinaryExpr, NLiteral)) }
func (n BinaryExpr) Source() token.Token    { return n.src }
func (n BinaryExpr) InferredType() Type     { return n.Inferred }

func (n BinaryExpr) String() string {
	const leftStart = " L: "
	const rightStart = " R: "
	leftStr := spaceIndentNewlines(n.Left.String(), len(leftStart))
	rightStr := spaceIndentNewlines(n.Right.String(), len(rightStart))
	return fmt.Sprintf("[BINARY %q type=%s\n%s%s\n%s%s\n]", n.Operator, n.Inferred, leftStart, leftStr, rightStart, rightStr)
}

// UnaryExpr is a single-operand prefix expression. Coins has exactly one
// unary operator, logical negation ("!").
type UnaryExpr struct {
	Operator string
	Operand  Node
	Inferred Type

	src token.Token
}

func NewUnaryExpr(src token.Token, op string, operand Node) UnaryExpr {
	return UnaryExpr{Operator: op, Operand: operand, Inferred: Unknown, src: src}
}

func (n UnaryExpr) Type() NodeType                  { return NUnaryExpr }
func (n UnaryExpr) AsProgram() Program              { panic(panics(NUnaryExpr, NProgram)) }
func (n UnaryExpr) AsDeclaration() Declaration      { panic(panics(NUnaryExpr, NDeclaration)) }
func (n UnaryExpr) AsAssignment() Assignment        { panic(panics(NUnaryExpr, NAssignment)) }
func (n UnaryExpr) AsConditional() Conditional      { panic(panics(NUnaryExpr, NConditional)) }
func (n UnaryExpr) AsLoop() Loop                    { panic(panics(NUnaryExpr, NLoop)) }
func (n UnaryExpr) AsSubroutineDecl() SubroutineDecl {
	panic(panics(NUnaryExpr, NSubroutineDecl))
}
func (n UnaryExpr) AsSubroutineCall() SubroutineCall {
	panic(panics(NUnaryExpr, NSubroutineCall))
}
func (n UnaryExpr) AsReturn() Return       { panic(panics(NUnaryExpr, NReturn)) }
func (n UnaryExpr) AsComment() Comment     { panic(panics(NUnaryExpr, NComment)) }
func (n UnaryExpr) AsBinaryExpr() BinaryExpr { panic(panics(NUnaryExpr, NBinaryExpr)) }
func (n UnaryExpr) AsUnaryExpr() UnaryExpr { return n }
func (n UnaryExpr) AsIdentifier() Identifier { panic(panics(NUnaryExpr, NIdentifier)) }
func (n UnaryExpr) AsLiteral() Literal     { panic(panics(NUnaryExpr, NLiteral)) }
func (n UnaryExpr) Source() token.Token    { return n.src }
func (n UnaryExpr) InferredType() Type     { return n.Inferred }

func (n UnaryExpr) String() string {
	const operandStart = " O: "
	operandStr := spaceIndentNewlines(n.Operand.String(), len(operandStart))
	return fmt.Sprintf("[UNARY %q type=%s\n%s%s\n]", n.Operator, n.Inferred, operandStart, operandStr)
}

// Identifier is a reference to a declared name. ResolvedType is populated by
// the semantic analyzer from the scope-stack lookup that resolved it.
type Identifier struct {
	Name     string
	Resolved Type

	src token.Token
}

func NewIdentifier(src token.Token, name string) Identifier {
	return Identifier{Name: name, Resolved: Unknown, src: src}
}

func (n Identifier) Type() NodeType                  { return NIdentifier }
func (n Identifier) AsProgram() Program              { panic(panics(NIdentifier, NProgram)) }
func (n Identifier) AsDeclaration() Declaration      { panic(panics(NIdentifier, NDeclaration)) }
func (n Identifier) AsAssignment() Assignment        { panic(panics(NIdentifier, NAssignment)) }
func (n Identifier) AsConditional() Conditional      { panic(panics(NIdentifier, NConditional)) }
func (n Identifier) AsLoop() Loop                    { panic(panics(NIdentifier, NLoop)) }
func (n Identifier) AsSubroutineDecl() SubroutineDecl {
	panic(panics(NIdentifier, NSubroutineDecl))
}
func (n Identifier) AsSubroutineCall() SubroutineCall {
	panic(panics(NIdentifier, NSubroutineCall))
}
func (n Identifier) AsReturn() Return       { panic(panics(NIdentifier, NReturn)) }
func (n Identifier) AsComment() Comment     { panic(panics(NIdentifier, NComment)) }
func (n Identifier) AsBinaryExpr() BinaryExpr { panic(panics(NIdentifier, NBinaryExpr)) }
func (n Identifier) AsUnaryExpr() UnaryExpr { panic(panics(NIdentifier, NUnaryExpr)) }
func (n Identifier) AsIdentifier() Identifier { return n }
func (n Identifier) AsLiteral() Literal     { panic(panics(NIdentifier, NLiteral)) }
func (n Identifier) Source() token.Token    { return n.src }
func (n Identifier) InferredType() Type     { return n.Resolved }

func (n Identifier) String() string {
	return fmt.Sprintf("[IDENTIFIER %s type=%s]", n.Name, n.Resolved)
}

// Literal is a number or string constant as written in source. LiteralType
// is determined lexically (a NUMBER containing "." is Real, otherwise
// Integer; a STRING is always Text) and does not change during analysis.
type Literal struct {
	Lexeme string
	Lit    Type

	src token.Token
}

func NewLiteral(src token.Token, lexeme string, lit Type) Literal {
	return Literal{Lexeme: lexeme, Lit: lit, src: src}
}

func (n Literal) Type() NodeType                  { return NLiteral }
func (n Literal) AsProgram() Program              { panic(panics(NLiteral, NProgram)) }
func (n Literal) AsDeclaration() Declaration      { panic(panics(NLiteral, NDeclaration)) }
func (n Literal) AsAssignment() Assignment        { panic(panics(NLiteral, NAssignment)) }
func (n Literal) AsConditional() Conditional      { panic(panics(NLiteral, NConditional)) }
func (n Literal) AsLoop() Loop                    { panic(panics(NLiteral, NLoop)) }
func (n Literal) AsSubroutineDecl() SubroutineDecl {
	panic(panics(NLiteral, NSubroutineDecl))
}
func (n Literal) AsSubroutineCall() SubroutineCall {
	panic(panics(NLiteral, NSubroutineCall))
}
func (n Literal) AsReturn() Return       { panic(panics(NLiteral, NReturn)) }
func (n Literal) AsComment() Comment     { panic(panics(NLiteral, NComment)) }
func (n Literal) AsBinaryExpr() BinaryExpr { panic(panics(NLiteral, NBinaryExpr)) }
func (n Literal) AsUnaryExpr() UnaryExpr { panic(panics(NLiteral, NUnaryExpr)) }
func (n Literal) AsIdentifier() Identifier { panic(panics(NLiteral, NIdentifier)) }
func (n Literal) AsLiteral() Literal     { return n }
func (n Literal) Source() token.Token    { return n.src }
func (n Literal) InferredType() Type     { return n.Lit }

func (n Literal) String() string {
	if n.Lit != Text {
		return fmt.Sprintf("[LITERAL %s %q]", n.Lit, n.Lexeme)
	}

	// text literals can run long; wrap them the way the teacher's
	// ExpTextNode.String() wraps Say-text before indenting it under the
	// label, so a single constant doesn't blow out the printed line width.
	wrapped := rosed.Edit(n.Lexeme).Wrap(60).String()

	lexemeStart := "[LITERAL texto "
	return lexemeStart + spaceIndentNewlines(wrapped, len(lexemeStart)) + "]"
}
