package ast

import (
	"github.com/wisplang/wisp/internal/ids"
	"github.com/wisplang/wisp/internal/token"
)

// NumberLiteral is a numeric literal. Base 10 means a decimal/float
// literal; any other base (2, 8, 16) is an integer literal in that base
// the exactly-representable-as-i32 test differs by base.
type NumberLiteral struct {
	Token    token.Token
	Base     int
	IsFloat  bool    // only meaningful when Base == 10
	IntValue uint64  // parsed magnitude for integer-shaped literals
	FltValue float64 // parsed value for float literals
}

func (n *NumberLiteral) expressionNode()       {}
func (n *NumberLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *NumberLiteral) GetToken() token.Token { return n.Token }

type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (b *BoolLiteral) expressionNode()       {}
func (b *BoolLiteral) TokenLiteral() string  { return b.Token.Lexeme }
func (b *BoolLiteral) GetToken() token.Token { return b.Token }

// StringTemplate covers both a plain string literal (len(Parts) == 1, a
// single *StringLiteral) and an interpolated template with embedded
// expressions. String templates always yield string.
type StringTemplate struct {
	Token token.Token
	Parts []Expression
}

func (s *StringTemplate) expressionNode()       {}
func (s *StringTemplate) TokenLiteral() string  { return s.Token.Lexeme }
func (s *StringTemplate) GetToken() token.Token { return s.Token }

type StringLiteral struct {
	Token token.Token
	Value string
}

func (s *StringLiteral) expressionNode()       {}
func (s *StringLiteral) TokenLiteral() string  { return s.Token.Lexeme }
func (s *StringLiteral) GetToken() token.Token { return s.Token }

// TagInitExpr is `T#member`.
type TagInitExpr struct {
	Token  token.Token
	Type   *Identifier
	Member *Identifier
}

func (t *TagInitExpr) expressionNode()       {}
func (t *TagInitExpr) TokenLiteral() string  { return t.Token.Lexeme }
func (t *TagInitExpr) GetToken() token.Token { return t.Token }

// BinaryExpr covers arithmetic, bitwise, comparison, and logical binops
// binops. SemaCanRequestIntegerOperands is set by the analyzer on a
// `<` comparison whose operands are both integers or NumberOrRequestInteger.
type BinaryExpr struct {
	Token                        token.Token
	Op                           string
	Left, Right                  Expression
	SemaCanRequestIntegerOperands bool
}

func (b *BinaryExpr) expressionNode()       {}
func (b *BinaryExpr) TokenLiteral() string  { return b.Token.Lexeme }
func (b *BinaryExpr) GetToken() token.Token { return b.Token }

type UnaryExpr struct {
	Token   token.Token
	Op      string // "-", "~", "not"
	Operand Expression
}

func (u *UnaryExpr) expressionNode()       {}
func (u *UnaryExpr) TokenLiteral() string  { return u.Token.Lexeme }
func (u *UnaryExpr) GetToken() token.Token { return u.Token }

// NamedArg is a call-site `name: value` argument. Any call carrying
// named args is rejected outright as unsupported.
type NamedArg struct {
	Name  string
	Value Expression
}

// CallExpr is any `callee(args...)`. The analyzer distinguishes callee
// shapes (identifier / access / other) without a separate node type
// for each — Callee's dynamic type drives the dispatch.
type CallExpr struct {
	Token     token.Token
	Callee    Expression
	Args      []Expression
	NamedArgs []*NamedArg
}

func (c *CallExpr) expressionNode()       {}
func (c *CallExpr) TokenLiteral() string  { return c.Token.Lexeme }
func (c *CallExpr) GetToken() token.Token { return c.Token }

// AccessExpr is `left.name`. It carries its own Resolved slot: when Left
// resolves to a sym, the access itself is bound to a child sym.
type AccessExpr struct {
	Resolved
	Token token.Token
	Left  Expression
	Name  *Identifier
}

func (a *AccessExpr) expressionNode()       {}
func (a *AccessExpr) TokenLiteral() string  { return a.Token.Lexeme }
func (a *AccessExpr) GetToken() token.Token { return a.Token }

type IndexExpr struct {
	Token token.Token
	Left  Expression
	Index Expression
}

func (x *IndexExpr) expressionNode()       {}
func (x *IndexExpr) TokenLiteral() string  { return x.Token.Lexeme }
func (x *IndexExpr) GetToken() token.Token { return x.Token }

// LambdaExpr is `=> expr` / `(params) => expr`, analyzed by pushing and
// closing a function block exactly like FuncDeclStmt.
type LambdaExpr struct {
	Resolved
	Token        token.Token
	Params       []*Param
	Body         []Statement
	SemaBlockID  ids.BlockID
	RFuncSigID   ids.ResolvedFuncSigID
}

func (l *LambdaExpr) expressionNode()       {}
func (l *LambdaExpr) TokenLiteral() string  { return l.Token.Lexeme }
func (l *LambdaExpr) GetToken() token.Token { return l.Token }

// ObjectInitExpr is `T{...}`. Field values are positional/struct-literal
// style; the analyzer only needs to walk Values for nested expressions
// (field-name resolution against the object type is a codegen concern).
type ObjectInitExpr struct {
	Resolved
	Token  token.Token
	Type   *Identifier
	Values []Expression
}

func (o *ObjectInitExpr) expressionNode()       {}
func (o *ObjectInitExpr) TokenLiteral() string  { return o.Token.Lexeme }
func (o *ObjectInitExpr) GetToken() token.Token { return o.Token }

// MatchArm is shared between MatchStmt and MatchExpr.
type MatchArm struct {
	// Conds is empty for the `else` arm.
	Conds []Expression
	IsElse bool
	Body   []Statement
	// Value is set instead of Body when the arm is a single expression
	// (match-expr arm shorthand `cond -> expr`).
	Value Expression
}

// MatchExpr is a match used as a value; it always yields any.
type MatchExpr struct {
	Token      token.Token
	Scrutinee  Expression
	Arms       []*MatchArm
}

func (m *MatchExpr) expressionNode()       {}
func (m *MatchExpr) TokenLiteral() string  { return m.Token.Lexeme }
func (m *MatchExpr) GetToken() token.Token { return m.Token }

// OpaqueExpr covers the "unknown-but-valid" expression forms that need
// no further structure (coyield, coresume, try, compt, if-expr, arbitrary
// method/field results): they all just yield `any`.
// Sub-expressions (if any) are still walked for nested name resolution.
type OpaqueExpr struct {
	Token    token.Token
	Kind     string // "coyield" | "coresume" | "try" | "compt" | "if-expr" | ...
	Children []Expression
}

func (o *OpaqueExpr) expressionNode()       {}
func (o *OpaqueExpr) TokenLiteral() string  { return o.Token.Lexeme }
func (o *OpaqueExpr) GetToken() token.Token { return o.Token }
