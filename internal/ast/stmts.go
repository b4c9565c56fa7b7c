package ast

import (
	"github.com/wisplang/wisp/internal/ids"
	"github.com/wisplang/wisp/internal/token"
)

type PassStmt struct{ Token token.Token }

func (s *PassStmt) statementNode()        {}
func (s *PassStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *PassStmt) GetToken() token.Token { return s.Token }

type BreakStmt struct{ Token token.Token }

func (s *BreakStmt) statementNode()        {}
func (s *BreakStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *BreakStmt) GetToken() token.Token { return s.Token }

type ContinueStmt struct{ Token token.Token }

func (s *ContinueStmt) statementNode()        {}
func (s *ContinueStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *ContinueStmt) GetToken() token.Token { return s.Token }

// AtStmt is the `@` no-op compiler-directive marker statement; it has
// no semantic side-effect.
type AtStmt struct{ Token token.Token }

func (s *AtStmt) statementNode()        {}
func (s *AtStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *AtStmt) GetToken() token.Token { return s.Token }

type ReturnStmt struct {
	Token token.Token
	Expr  Expression // nil for a bare `return`
}

func (s *ReturnStmt) statementNode()        {}
func (s *ReturnStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *ReturnStmt) GetToken() token.Token { return s.Token }

type ExprStmt struct {
	Token token.Token
	Expr  Expression
}

func (s *ExprStmt) statementNode()        {}
func (s *ExprStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *ExprStmt) GetToken() token.Token { return s.Token }

// OpAssignStmt is `lhs OP= rhs`.
type OpAssignStmt struct {
	Token token.Token
	Op    string // "+", "-", "*", "/", "|", "&", ...
	LHS   Expression
	RHS   Expression
}

func (s *OpAssignStmt) statementNode()        {}
func (s *OpAssignStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *OpAssignStmt) GetToken() token.Token { return s.Token }

// AssignStmt is `lhs = rhs`.
type AssignStmt struct {
	Token token.Token
	LHS   Expression
	RHS   Expression
}

func (s *AssignStmt) statementNode()        {}
func (s *AssignStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *AssignStmt) GetToken() token.Token { return s.Token }

// VarDeclStmt is a top-level static-variable declaration: `var name: rhs`.
type VarDeclStmt struct {
	Resolved
	Token token.Token
	Name  *Identifier
	RHS   Expression
}

func (s *VarDeclStmt) statementNode()        {}
func (s *VarDeclStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *VarDeclStmt) GetToken() token.Token { return s.Token }

// CaptureDeclStmt is `capture name` / `capture name: rhs`.
type CaptureDeclStmt struct {
	Token token.Token
	Name  *Identifier
	RHS   Expression // nil if absent
}

func (s *CaptureDeclStmt) statementNode()        {}
func (s *CaptureDeclStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *CaptureDeclStmt) GetToken() token.Token { return s.Token }

// StaticDeclStmt is `static name` / `static name: rhs` inside a function.
type StaticDeclStmt struct {
	Token token.Token
	Name  *Identifier
	RHS   Expression // nil if absent
}

func (s *StaticDeclStmt) statementNode()        {}
func (s *StaticDeclStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *StaticDeclStmt) GetToken() token.Token { return s.Token }

// TypeAliasDeclStmt is `type Name = rhs` where rhs must be an identifier
// or access-expr.
type TypeAliasDeclStmt struct {
	Token token.Token
	Name  *Identifier
	RHS   Expression
}

func (s *TypeAliasDeclStmt) statementNode()        {}
func (s *TypeAliasDeclStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *TypeAliasDeclStmt) GetToken() token.Token { return s.Token }

// TagTypeDeclStmt is `tagtype Name: member1, member2, ...`.
type TagTypeDeclStmt struct {
	Resolved
	Token     token.Token
	Name      *Identifier
	Members   []*Identifier
	SemaTagID ids.TagTypeID
}

func (s *TagTypeDeclStmt) statementNode()        {}
func (s *TagTypeDeclStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *TagTypeDeclStmt) GetToken() token.Token { return s.Token }

// ObjectFuncDecl is a function member of an object decl: a method when
// Params[0].Name == "self", otherwise a static function.
type ObjectFuncDecl struct {
	Name       *Identifier
	Params     []*Param
	Body       []Statement
	RetType    string
	SemaBlockID ids.BlockID
}

// ObjectDeclStmt is `object Name: field1, field2 ... func ...`.
type ObjectDeclStmt struct {
	Resolved
	Token        token.Token
	Name         *Identifier
	Fields       []*Identifier
	Funcs        []*ObjectFuncDecl
	SemaObjectID ids.ObjectTypeID
}

func (s *ObjectDeclStmt) statementNode()        {}
func (s *ObjectDeclStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *ObjectDeclStmt) GetToken() token.Token { return s.Token }

// FuncDeclStmt is a top-level `func name(params): body`, optionally with
// a separately-declared initializer expression ("func decl with
// initializer") instead of Body.
type FuncDeclStmt struct {
	Resolved
	Token       token.Token
	Name        *Identifier
	Params      []*Param
	RetType     string // "" if unannotated
	Body        []Statement
	Initializer Expression // non-nil for "func decl-with-initializer"
	Exported    bool
	SemaBlockID ids.BlockID
}

func (s *FuncDeclStmt) statementNode()        {}
func (s *FuncDeclStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *FuncDeclStmt) GetToken() token.Token { return s.Token }

// ElseIf is one `else if cond: body` clause.
type ElseIf struct {
	Cond Expression
	Body []Statement
}

type IfStmt struct {
	Token   token.Token
	Cond    Expression
	Then    []Statement
	ElseIfs []*ElseIf
	Else    []Statement // nil if absent
}

func (s *IfStmt) statementNode()        {}
func (s *IfStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *IfStmt) GetToken() token.Token { return s.Token }

type WhileCondStmt struct {
	Token token.Token
	Cond  Expression
	Body  []Statement
}

func (s *WhileCondStmt) statementNode()        {}
func (s *WhileCondStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *WhileCondStmt) GetToken() token.Token { return s.Token }

type WhileInfStmt struct {
	Token token.Token
	Body  []Statement
}

func (s *WhileInfStmt) statementNode()        {}
func (s *WhileInfStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *WhileInfStmt) GetToken() token.Token { return s.Token }

// ForOptStmt is `for cond as x: body`: As is the optional unwrap-binding
// identifier, nil if absent.
type ForOptStmt struct {
	Token token.Token
	Cond  Expression
	As    *Identifier
	Body  []Statement
}

func (s *ForOptStmt) statementNode()        {}
func (s *ForOptStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *ForOptStmt) GetToken() token.Token { return s.Token }

// ForIterStmt is `for iterable -> value, key: body`; Key is nil when
// the optional key binding is omitted.
type ForIterStmt struct {
	Token    token.Token
	Iterable Expression
	Value    *Identifier
	Key      *Identifier
	Body     []Statement
}

func (s *ForIterStmt) statementNode()        {}
func (s *ForIterStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *ForIterStmt) GetToken() token.Token { return s.Token }

// ForRangeStmt is `for start..end -> each: body`.
type ForRangeStmt struct {
	Token      token.Token
	Start, End Expression
	Each       *Identifier
	Body       []Statement
}

func (s *ForRangeStmt) statementNode()        {}
func (s *ForRangeStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *ForRangeStmt) GetToken() token.Token { return s.Token }

// MatchStmt is a match used as a statement, optionally loop-like via
// `break`.
type MatchStmt struct {
	Token     token.Token
	Scrutinee Expression
	Arms      []*MatchArm
}

func (s *MatchStmt) statementNode()        {}
func (s *MatchStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *MatchStmt) GetToken() token.Token { return s.Token }

// ImportStmt is `import name 'spec'` or `import * 'spec'`. ImportAll
// selects the import-* form; Name is ignored then.
type ImportStmt struct {
	Token     token.Token
	Name      *Identifier
	Spec      string
	ImportAll bool
	SemaModID ids.ModuleID
}

func (s *ImportStmt) statementNode()        {}
func (s *ImportStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *ImportStmt) GetToken() token.Token { return s.Token }

// ExportStmt wraps a var-decl / func-decl / object-decl to mark it
// exported.
type ExportStmt struct {
	Token token.Token
	Inner Statement
}

func (s *ExportStmt) statementNode()        {}
func (s *ExportStmt) TokenLiteral() string  { return s.Token.Lexeme }
func (s *ExportStmt) GetToken() token.Token { return s.Token }
