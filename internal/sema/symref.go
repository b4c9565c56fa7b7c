package sema

import "github.com/wisplang/wisp/internal/ids"

// SymRefKind discriminates SymRef's three variants.
type SymRefKind uint8

const (
	SymRefModule SymRefKind = iota
	SymRefModuleMember
	SymRefSym
)

// SymRef is a per-chunk name→redirect entry installed by import / import *
// / type-alias handling.
type SymRef struct {
	Kind SymRefKind

	// SymRefModule / SymRefModuleMember
	ModuleID ids.ModuleID

	// SymRefSym: alias to another local sym, installed by a type-alias decl.
	TargetSym ids.SymID
}

// SymRefTable is the per-chunk name→SymRef map.
type SymRefTable struct {
	byName map[ids.NameID]SymRef
}

func NewSymRefTable() *SymRefTable {
	return &SymRefTable{byName: make(map[ids.NameID]SymRef)}
}

func (t *SymRefTable) Set(name ids.NameID, ref SymRef) { t.byName[name] = ref }

func (t *SymRefTable) Get(name ids.NameID) (SymRef, bool) {
	r, ok := t.byName[name]
	return r, ok
}
