// Package ids defines the integer identifier types shared by internal/ast
// and internal/sema. Splitting them out avoids an import cycle: the parser
// (external collaborator) hands internal/sema an *ast.Program whose nodes
// already carry writable annotation slots, but those slots name types
// sema itself defines (SymID, LocalVarID, ...). Every table in this
// module is an arena indexed by one of these ids rather than a graph of
// owning pointers, which keeps cyclic references (imports, recursive
// types, recursive calls) cheap to represent and cheap to walk.
package ids

type (
	NameID             int32
	SymID              int32
	ResolvedSymID      int32
	LocalVarID         int32
	FuncSigID          int32
	ResolvedFuncSigID  int32
	ResolvedFuncSymID  int32
	ModuleID           int32
	BlockID            int32
	SubBlockID         int32
	ObjectTypeID       int32
	FieldSymID         int32
	TagTypeID          int32
	NodeID             int32
)

// None-value sentinels. The parser must zero every annotation slot to
// these before handing the AST to the analyzer.
const (
	NoName             NameID            = -1
	NoSym              SymID             = -1
	NoResolvedSym      ResolvedSymID     = -1
	NoLocalVar         LocalVarID        = -1
	NoFuncSig          FuncSigID         = -1
	NoResolvedFuncSig  ResolvedFuncSigID = -1
	NoResolvedFuncSym  ResolvedFuncSymID = -1
	NoModule           ModuleID          = -1
	NoBlock            BlockID           = -1
	NoSubBlock         SubBlockID        = -1
	NoObjectType       ObjectTypeID      = -1
	NoFieldSym         FieldSymID        = -1
	NoTagType          TagTypeID         = -1
	NoNode             NodeID            = -1
)
