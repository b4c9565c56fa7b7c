package sema

import (
	"github.com/google/uuid"

	"github.com/wisplang/wisp/internal/ast"
	"github.com/wisplang/wisp/internal/ids"
	"github.com/wisplang/wisp/internal/vmhost"
)

// ModuleSymKind is the variant tag for a Module's sym map entries.
type ModuleSymKind uint8

const (
	ModSymVariable ModuleSymKind = iota
	ModSymNativeFunc1
	ModSymSymToOneFunc
	ModSymSymToManyFuncs
	ModSymUserVar
	ModSymUserFunc
	ModSymObject
	ModSymUserObject
)

// ModuleOverload is one entry in a ModSymSymToManyFuncs linked list of
// overload sigs.
type ModuleOverload struct {
	FuncSigID ids.ResolvedFuncSigID
	DeclNode  ids.NodeID
	ChunkID   int
	Next      *ModuleOverload
}

// ModuleSym is one entry in a Module's sym map.
type ModuleSym struct {
	Kind ModuleSymKind

	// ModSymSymToOneFunc / ModSymUserFunc / ModSymNativeFunc1
	FuncSigID ids.ResolvedFuncSigID
	DeclNode  ids.NodeID
	ChunkID   int // -1 for builtin/native

	// ModSymSymToManyFuncs
	Overloads *ModuleOverload

	Exported bool
}

type moduleSymKey struct {
	name ids.NameID
	sig  ids.ResolvedFuncSigID // NoResolvedFuncSig for non-func entries
}

// Module is one loaded chunk's (or builtin package's) published surface.
type Module struct {
	ID               ids.ModuleID
	CanonicalSpec    string
	ChunkID          int // -1 for builtin modules
	ResolvedRootSym  ids.ResolvedSymID
	Syms             map[moduleSymKey]*ModuleSym
	Placeholder      bool // true until the providing chunk finishes analysis
	DebugTraceID     uuid.UUID
}

func newModule(id ids.ModuleID, spec string) *Module {
	return &Module{
		ID: id, CanonicalSpec: spec, ChunkID: -1,
		ResolvedRootSym: ids.NoResolvedSym,
		Syms:            make(map[moduleSymKey]*ModuleSym),
		Placeholder:     true,
		DebugTraceID:    uuid.New(),
	}
}

// Publish installs (or extends, for overloads) a module sym entry. Used
// by export-stmt handling to publish a decl into the current chunk's
// module.
func (m *Module) Publish(name ids.NameID, sig ids.ResolvedFuncSigID, entry ModuleSym) {
	k := moduleSymKey{name, sig}
	if entry.Kind == ModSymUserFunc {
		if existing, ok := m.Syms[k]; ok && existing.Kind == ModSymUserFunc {
			// A second overload at the same sig is a collision the caller
			// (driver) should already have rejected; last-write-wins here
			// to stay total.
		}
	}
	m.Syms[k] = &entry
}

// Lookup finds a member by (name, sig). sig == NoResolvedFuncSig means
// "non-function reference".
func (m *Module) Lookup(name ids.NameID, sig ids.ResolvedFuncSigID) (*ModuleSym, bool) {
	ms, ok := m.Syms[moduleSymKey{name, sig}]
	return ms, ok
}

// ModuleRegistry interns Modules by canonical spec string.
type ModuleRegistry struct {
	byCanonical map[string]ids.ModuleID
	modules     []*Module
}

func NewModuleRegistry() *ModuleRegistry {
	return &ModuleRegistry{byCanonical: make(map[string]ids.ModuleID, 32)}
}

// GetOrCreate returns the existing module for spec, or creates an empty
// placeholder. The placeholder ensures cyclic imports terminate instead
// of recursing. The second return is true if a new placeholder was made.
func (r *ModuleRegistry) GetOrCreate(spec string) (ids.ModuleID, bool) {
	if id, ok := r.byCanonical[spec]; ok {
		return id, false
	}
	id := ids.ModuleID(len(r.modules))
	r.modules = append(r.modules, newModule(id, spec))
	r.byCanonical[spec] = id
	return id, true
}

func (r *ModuleRegistry) Get(id ids.ModuleID) *Module { return r.modules[id] }

func (r *ModuleRegistry) Lookup(spec string) (ids.ModuleID, bool) {
	id, ok := r.byCanonical[spec]
	return id, ok
}

// moduleSymToResolved converts one ModuleSym hit into a ResolvedSym under the
// querying chunk's parent. vm is the narrow VM collaborator used for
// native-func wiring.
func (rs *ResolvedSymTable) moduleSymToResolved(parent ids.ResolvedSymID, name ids.NameID, ms *ModuleSym, fsigs *ResolvedFuncSigTable, vm vmhost.Host) (ids.ResolvedSymID, error) {
	switch ms.Kind {
	case ModSymNativeFunc1:
		sig := ms.FuncSigID
		symID := rs.GetOrCreate(parent, name, VariantFunc, true)
		rtID := vm.EnsureFuncSym(parent, name, sig)
		_ = rtID
		rs.AddOverload(symID, sig, ResolvedFuncSym{ChunkID: -1, RFuncSigID: sig})
		return symID, nil
	case ModSymSymToOneFunc:
		symID := rs.GetOrCreate(parent, name, VariantFunc, ms.Exported)
		rs.AddOverload(symID, ms.FuncSigID, ResolvedFuncSym{ChunkID: ms.ChunkID, DeclNodeID: ms.DeclNode, RFuncSigID: ms.FuncSigID})
		return symID, nil
	case ModSymUserFunc:
		symID := rs.GetOrCreate(parent, name, VariantFunc, ms.Exported)
		rs.AddOverload(symID, ms.FuncSigID, ResolvedFuncSym{ChunkID: ms.ChunkID, DeclNodeID: ms.DeclNode, RFuncSigID: ms.FuncSigID})
		return symID, nil
	case ModSymSymToManyFuncs:
		return ids.NoResolvedSym, errAmbiguousModuleMember
	case ModSymVariable:
		return rs.GetOrCreate(parent, name, VariantVariable, true), nil
	case ModSymUserVar:
		return rs.GetOrCreate(parent, name, VariantVariable, ms.Exported), nil
	case ModSymObject:
		return rs.GetOrCreate(parent, name, VariantObject, true), nil
	case ModSymUserObject:
		return ids.NoResolvedSym, errUnsupportedModuleSymKind
	default:
		return ids.NoResolvedSym, errUnsupportedModuleSymKind
	}
}

// publishKindFor maps an ast.FuncDeclStmt / VarDeclStmt / ObjectDeclStmt
// to the ModuleSymKind it is published under; any other statement maps
// to ModSymUserVar. analyzeExportStmt passes its kinds directly and does
// not call it.
func publishKindFor(stmt ast.Statement) ModuleSymKind {
	switch stmt.(type) {
	case *ast.FuncDeclStmt:
		return ModSymUserFunc
	case *ast.VarDeclStmt:
		return ModSymUserVar
	case *ast.ObjectDeclStmt:
		return ModSymUserObject
	default:
		return ModSymUserVar
	}
}
