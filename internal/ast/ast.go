// Package ast defines the abstract syntax tree consumed by internal/sema.
// The tokenizer/parser that produces trees of these types is an external
// collaborator — this package only has to describe the node shapes and
// the writable annotation slots the analyzer fills in.
//
// Grounded on funvibe/funxy's internal/ast (Node/Statement/Expression
// interfaces, GetToken() for diagnostics) generalized to wisp's node set,
// which is smaller than funxy's (no trait/instance/record pattern nodes —
// wisp has no full static typing) but adds the annotation slots (SemaSymID,
// SemaVarID, SemaCanRequestIntegerOperands, SemaBlockID) that funxy's AST
// has no equivalent for. Traversal uses a
// Go type switch over these concrete node types (see internal/sema),
// following the resolver-over-AST style of the mna/nenuphar reference
// repo rather than funxy's own Accept/Visitor double dispatch — the
// simpler style fits a single traversal pass with no plugins.
package ast

import (
	"github.com/wisplang/wisp/internal/ids"
	"github.com/wisplang/wisp/internal/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
}

// Statement is a Node that appears in a statement position.
type Statement interface {
	Node
	statementNode()
	GetToken() token.Token
}

// Expression is a Node that appears in an expression position and can be
// assigned a coarse value type by the analyzer.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// Resolved is embedded by every node whose annotation slots the parser
// must zero to the sentinel "none" before handing the tree to the
// analyzer. Exactly one of SymID/VarID is ever set on a bound identifier.
type Resolved struct {
	SymID ids.SymID
	VarID ids.LocalVarID
}

// NewResolved returns a Resolved with both slots at the "none" sentinel,
// the value a conforming parser must produce.
func NewResolved() Resolved {
	return Resolved{SymID: ids.NoSym, VarID: ids.NoLocalVar}
}

// Program is the root node for one parsed chunk.
type Program struct {
	File       string
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// Identifier is every bare-name reference: a variable read/write, a
// function-value reference, a module alias use, or (as an expression
// statement of its own) the right-hand side of a type alias.
type Identifier struct {
	Resolved
	Token token.Token
	Name  string
}

func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }

// Param is a function/method/lambda parameter. TypeName is the optional
// declared type annotation: a recognized name in the builtin type-name
// table, or "" if unannotated.
type Param struct {
	Name     string
	TypeName string // "" if unannotated
	Token    token.Token
}
