// Package syntax defines the closed set of AST node variants produced by
// the Coins parser and mutated in place (inferred_type slots only) by the
// semantic analyzer.
package syntax

import (
	"strings"

	"github.com/dekarrin/coins/internal/coins/token"
)

// NodeType identifies which of the fixed AST node variants a Node is. It
// determines which of the As*Node accessors on Node may be called without
// panicking.
type NodeType int

const (
	NProgram NodeType = iota
	NDeclaration
	NAssignment
	NConditional
	NLoop
	NSubroutineDecl
	NSubroutineCall
	NReturn
	NComment
	NBinaryExpr
	NUnaryExpr
	NIdentifier
	NLiteral
)

func (t NodeType) String() string {
	switch t {
	case NProgram:
		return "Program"
	case NDeclaration:
		return "Declaration"
	case NAssignment:
		return "Assignment"
	case NConditional:
		return "Conditional"
	case NLoop:
		return "Loop"
	case NSubroutineDecl:
		return "SubroutineDecl"
	case NSubroutineCall:
		return "SubroutineCall"
	case NReturn:
		return "Return"
	case NComment:
		return "Comment"
	case NBinaryExpr:
		return "BinaryExpr"
	case NUnaryExpr:
		return "UnaryExpr"
	case NIdentifier:
		return "Identifier"
	case NLiteral:
		return "Literal"
	default:
		return "Node(?)"
	}
}

// Node is implemented by every AST node variant. The set of implementers is
// closed: Program, Declaration, Assignment, Conditional, Loop,
// SubroutineDecl, SubroutineCall, Return, Comment, BinaryExpr, UnaryExpr,
// Identifier, Literal. Adding a new variant means adding a new As*Node
// method here, which in turn forces every switch over Type() to be
// revisited at compile time.
type Node interface {
	// Type returns which concrete node variant this is.
	Type() NodeType

	AsProgram() Program
	AsDeclaration() Declaration
	AsAssignment() Assignment
	AsConditional() Conditional
	AsLoop() Loop
	AsSubroutineDecl() SubroutineDecl
	AsSubroutineCall() SubroutineCall
	AsReturn() Return
	AsComment() Comment
	AsBinaryExpr() BinaryExpr
	AsUnaryExpr() UnaryExpr
	AsIdentifier() Identifier
	AsLiteral() Literal

	// Source is the token the node's construction began at, used to anchor
	// diagnostics raised against the node.
	Source() token.Token

	// String returns a prettified, line-oriented representation suitable
	// for structural comparison in tests.
	String() string
}

// Expr is the subset of Node that can appear in expression position: it
// carries an inferred type populated by semantic analysis.
type Expr interface {
	Node
	InferredType() Type
}

func panics(have NodeType, want NodeType) string {
	return "Type() is " + have.String() + ", not " + want.String()
}

// Program is the AST root: an ordered list of top-level items.
type Program struct {
	Body []Node
}

func (n Program) Type() NodeType                       { return NProgram }
func (n Program) AsProgram() Program                    { return n }
func (n Program) AsDeclaration() Declaration            { panic(panics(NProgram, NDeclaration)) }
func (n Program) AsAssignment() Assignment              { panic(panics(NProgram, NAssignment)) }
func (n Program) AsConditional() Conditional             { panic(panics(NProgram, NConditional)) }
func (n Program) AsLoop() Loop                          { panic(panics(NProgram, NLoop)) }
func (n Program) AsSubroutineDecl() SubroutineDecl      { panic(panics(NProgram, NSubroutineDecl)) }
func (n Program) AsSubroutineCall() SubroutineCall      { panic(panics(NProgram, NSubroutineCall)) }
func (n Program) AsReturn() Return                      { panic(panics(NProgram, NReturn)) }
func (n Program) AsComment() Comment                    { panic(panics(NProgram, NComment)) }
func (n Program) AsBinaryExpr() BinaryExpr              { panic(panics(NProgram, NBinaryExpr)) }
func (n Program) AsUnaryExpr() UnaryExpr                { panic(panics(NProgram, NUnaryExpr)) }
func (n Program) AsIdentifier() Identifier              { panic(panics(NProgram, NIdentifier)) }
func (n Program) AsLiteral() Literal                    { panic(panics(NProgram, NLiteral)) }
func (n Program) Source() token.Token {
	if len(n.Body) == 0 {
		return token.Token{}
	}
	return n.Body[0].Source()
}

func (n Program) String() string {
	var sb strings.Builder
	sb.WriteString("Program\n")
	const itemStart = " I: "
	for i, item := range n.Body {
		sb.WriteString(itemStart)
		sb.WriteString(spaceIndentNewlines(item.String(), len(itemStart)))
		if i+1 < len(n.Body) {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// spaceIndentNewlines indents every line after the first of s by n spaces,
// used so that nested node String() output stays aligned under its label.
func spaceIndentNewlines(s string, n int) string {
	if strings.Contains(s, "\n") {
		pad := strings.Repeat(" ", n)
		s = strings.ReplaceAll(s, "\n", "\n"+pad)
	}
	return s
}
