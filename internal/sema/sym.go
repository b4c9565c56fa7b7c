package sema

import "github.com/wisplang/wisp/internal/ids"

// Sym is a local, per-chunk symbol. FuncSigID == NoFuncSig marks a
// variable/module reference; otherwise the sym denotes a function with
// that local signature.
type Sym struct {
	Parent    ids.SymID // NoSym for a root sym
	Name      ids.NameID
	FuncSigID ids.FuncSigID // NoFuncSig for non-function syms

	RSymID ids.ResolvedSymID // NoResolvedSym until resolved
	Used   bool
}

type symKey struct {
	parent ids.SymID
	name   ids.NameID
	sig    ids.FuncSigID
}

// SymTable is the per-chunk local symbol table.
type SymTable struct {
	byKey map[symKey]ids.SymID
	syms  []Sym
}

func NewSymTable() *SymTable {
	return &SymTable{byKey: make(map[symKey]ids.SymID, 64)}
}

// GetOrCreate returns the sym keyed by (parent, name, sig), creating one
// with RSymID == NoResolvedSym if absent. Syms are created eagerly on
// reference, resolved lazily.
func (t *SymTable) GetOrCreate(parent ids.SymID, name ids.NameID, sig ids.FuncSigID) ids.SymID {
	k := symKey{parent, name, sig}
	if id, ok := t.byKey[k]; ok {
		return id
	}
	id := ids.SymID(len(t.syms))
	t.syms = append(t.syms, Sym{Parent: parent, Name: name, FuncSigID: sig, RSymID: ids.NoResolvedSym})
	t.byKey[k] = id
	return id
}

// Lookup finds an existing sym without creating one.
func (t *SymTable) Lookup(parent ids.SymID, name ids.NameID, sig ids.FuncSigID) (ids.SymID, bool) {
	id, ok := t.byKey[symKey{parent, name, sig}]
	return id, ok
}

func (t *SymTable) Get(id ids.SymID) *Sym { return &t.syms[id] }

// MarkUsed flags a sym as referenced by a reachable expression; only used
// syms are resolved.
func (t *SymTable) MarkUsed(id ids.SymID) { t.syms[id].Used = true }

// All returns every created sym id, in creation order — used by the
// driver's finalize pass to resolve every used sym. Resolution is
// requested lazily by the chunk rather than eagerly at creation.
func (t *SymTable) All() []ids.SymID {
	out := make([]ids.SymID, len(t.syms))
	for i := range t.syms {
		out[i] = ids.SymID(i)
	}
	return out
}
