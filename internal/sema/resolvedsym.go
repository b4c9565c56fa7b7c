package sema

import (
	"github.com/google/uuid"

	"github.com/wisplang/wisp/internal/ids"
	"github.com/wisplang/wisp/internal/typetag"
)

// ResolvedSymVariant is the tagged-union discriminant for ResolvedSym.
// Overload sets are represented this way rather than by subclassing.
type ResolvedSymVariant uint8

const (
	VariantFunc ResolvedSymVariant = iota
	VariantVariable
	VariantObject
	VariantModule
	VariantBuiltinType
)

// overloadedSentinel marks ResolvedSym.RFuncSymID as "more than one
// overload exists; disambiguate via ResolvedFuncSymMap".
const overloadedSentinel ids.ResolvedFuncSymID = -2

// ResolvedSym is the global, canonicalized identity of a name.
type ResolvedSym struct {
	Parent   ids.ResolvedSymID // NoResolvedSym for a root sym
	Name     ids.NameID
	Variant  ResolvedSymVariant
	Exported bool

	// RFuncSymID is meaningful only when Variant == VariantFunc: the sole
	// overload's id, or overloadedSentinel when there is more than one.
	RFuncSymID ids.ResolvedFuncSymID

	// DebugTraceID correlates this sym across diagnostics for an import
	// graph; never read by resolution.
	DebugTraceID uuid.UUID
}

// ResolvedFuncSym is one overload.
type ResolvedFuncSym struct {
	ChunkID              int // -1 for native/builtin
	DeclNodeID           ids.NodeID
	RFuncSigID           ids.ResolvedFuncSigID
	RetType              typetag.Type
	HasStaticInitializer bool
	DebugTraceID         uuid.UUID
}

type resolvedSymKey struct {
	parent ids.ResolvedSymID
	name   ids.NameID
}

type resolvedFuncSymKey struct {
	sym ids.ResolvedSymID
	sig ids.ResolvedFuncSigID
}

// ResolvedSymTable is the process-wide symbol table.
type ResolvedSymTable struct {
	byKey map[resolvedSymKey]ids.ResolvedSymID
	syms  []ResolvedSym

	funcByKey map[resolvedFuncSymKey]ids.ResolvedFuncSymID
	funcSyms  []ResolvedFuncSym
}

func NewResolvedSymTable() *ResolvedSymTable {
	return &ResolvedSymTable{
		byKey:     make(map[resolvedSymKey]ids.ResolvedSymID, 256),
		funcByKey: make(map[resolvedFuncSymKey]ids.ResolvedFuncSymID, 256),
	}
}

// GetOrCreate returns the ResolvedSym keyed by (parent, name), creating a
// new one of the given variant if absent. Creating twice with a different
// variant is a caller bug (detected by the duplicate-declaration checks
// upstream in the driver, not here).
func (t *ResolvedSymTable) GetOrCreate(parent ids.ResolvedSymID, name ids.NameID, variant ResolvedSymVariant, exported bool) ids.ResolvedSymID {
	k := resolvedSymKey{parent, name}
	if id, ok := t.byKey[k]; ok {
		return id
	}
	id := ids.ResolvedSymID(len(t.syms))
	t.syms = append(t.syms, ResolvedSym{
		Parent: parent, Name: name, Variant: variant, Exported: exported,
		RFuncSymID:   ids.NoResolvedFuncSym,
		DebugTraceID: uuid.New(),
	})
	t.byKey[k] = id
	return id
}

func (t *ResolvedSymTable) Lookup(parent ids.ResolvedSymID, name ids.NameID) (ids.ResolvedSymID, bool) {
	id, ok := t.byKey[resolvedSymKey{parent, name}]
	return id, ok
}

func (t *ResolvedSymTable) Get(id ids.ResolvedSymID) *ResolvedSym { return &t.syms[id] }

// AddOverload registers (or extends) the overload set for a func
// ResolvedSym, enforcing the RFuncSymID rule: equals the sole overload's
// id iff there is exactly one, else overloadedSentinel. Returns an error
// if an identical (sym, sig) overload already exists.
func (t *ResolvedSymTable) AddOverload(symID ids.ResolvedSymID, sig ids.ResolvedFuncSigID, entry ResolvedFuncSym) (ids.ResolvedFuncSymID, bool) {
	fk := resolvedFuncSymKey{symID, sig}
	if existing, ok := t.funcByKey[fk]; ok {
		return existing, false
	}
	fid := ids.ResolvedFuncSymID(len(t.funcSyms))
	entry.RFuncSigID = sig
	if entry.DebugTraceID == uuid.Nil {
		entry.DebugTraceID = uuid.New()
	}
	t.funcSyms = append(t.funcSyms, entry)
	t.funcByKey[fk] = fid

	sym := &t.syms[symID]
	switch sym.RFuncSymID {
	case ids.NoResolvedFuncSym:
		sym.RFuncSymID = fid
	case overloadedSentinel:
		// already overloaded, stays overloaded
	default:
		sym.RFuncSymID = overloadedSentinel
	}
	return fid, true
}

// LookupOverload finds the exact (sym, sig) overload entry, requiring
// that exact entry to exist rather than falling back to a looser match.
func (t *ResolvedSymTable) LookupOverload(symID ids.ResolvedSymID, sig ids.ResolvedFuncSigID) (ids.ResolvedFuncSymID, bool) {
	id, ok := t.funcByKey[resolvedFuncSymKey{symID, sig}]
	return id, ok
}

func (t *ResolvedSymTable) GetFuncSym(id ids.ResolvedFuncSymID) *ResolvedFuncSym { return &t.funcSyms[id] }

// OverloadCount counts overloads registered against symID — used by
// tests validating that the overload map has exactly the expected
// number of entries.
func (t *ResolvedSymTable) OverloadCount(symID ids.ResolvedSymID) int {
	n := 0
	for k := range t.funcByKey {
		if k.sym == symID {
			n++
		}
	}
	return n
}

// IsOverloaded reports whether sym's RFuncSymID is the overloaded
// sentinel (more than one overload).
func IsOverloaded(sym *ResolvedSym) bool { return sym.RFuncSymID == overloadedSentinel }
