package sema

import (
	"strings"

	"github.com/wisplang/wisp/internal/config"
	"github.com/wisplang/wisp/internal/ids"
)

// FuncSig is a local-chunk func signature: a tuple of local SymIds, the
// last of which is the return type.
type FuncSig struct {
	Elems    []ids.SymID
	Resolved ids.ResolvedFuncSigID // filled lazily, NoResolvedFuncSig until known
}

// Arity is the parameter count (Elems minus the trailing return slot).
func (f FuncSig) Arity() int { return len(f.Elems) - 1 }

// funcSigKey interns by structural equality of the element tuple.
type funcSigKey string

func keyOfSyms(elems []ids.SymID) funcSigKey {
	var b strings.Builder
	for _, e := range elems {
		b.WriteByte(',')
		// int32 fits in a handful of bytes; avoid importing strconv per elem.
		writeInt32(&b, int32(e))
	}
	return funcSigKey(b.String())
}

func writeInt32(b *strings.Builder, v int32) {
	if v < 0 {
		b.WriteByte('-')
		v = -v
	}
	if v == 0 {
		b.WriteByte('0')
		return
	}
	var buf [12]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	b.Write(buf[i:])
}

// FuncSigTable interns local FuncSigs for one chunk.
type FuncSigTable struct {
	byKey map[funcSigKey]ids.FuncSigID
	sigs  []FuncSig
}

func NewFuncSigTable() *FuncSigTable {
	return &FuncSigTable{byKey: make(map[funcSigKey]ids.FuncSigID)}
}

// Intern returns the stable id for a local func sig made of elems
// (params..., return), creating it on first sight. Each local sig stores
// a back-link to its resolved sig once known.
func (t *FuncSigTable) Intern(elems []ids.SymID) ids.FuncSigID {
	k := keyOfSyms(elems)
	if id, ok := t.byKey[k]; ok {
		return id
	}
	id := ids.FuncSigID(len(t.sigs))
	cp := append([]ids.SymID(nil), elems...)
	t.sigs = append(t.sigs, FuncSig{Elems: cp, Resolved: ids.NoResolvedFuncSig})
	t.byKey[k] = id
	return id
}

func (t *FuncSigTable) Get(id ids.FuncSigID) *FuncSig { return &t.sigs[id] }

// ResolvedFuncSig is the globally interned tuple of ResolvedSymIds.
// IsTyped is false iff every element is the builtin `any` type sym.
type ResolvedFuncSig struct {
	Elems   []ids.ResolvedSymID
	IsTyped bool
}

func (f ResolvedFuncSig) Arity() int { return len(f.Elems) - 1 }

// ResolvedFuncSigTable interns ResolvedFuncSigs process-wide. Untyped sigs
// of the same arity must collapse to the same id.
type ResolvedFuncSigTable struct {
	byKey         map[funcSigKey]ids.ResolvedFuncSigID
	sigs          []ResolvedFuncSig
	anyTypeSym    ids.ResolvedSymID
	untypedByAriy map[int]ids.ResolvedFuncSigID
}

func NewResolvedFuncSigTable(anyTypeSym ids.ResolvedSymID) *ResolvedFuncSigTable {
	return &ResolvedFuncSigTable{
		byKey:         make(map[funcSigKey]ids.ResolvedFuncSigID),
		anyTypeSym:    anyTypeSym,
		untypedByAriy: make(map[int]ids.ResolvedFuncSigID),
	}
}

// InternUntyped returns the (arity+1)-length untyped "(any, ..., any) ->
// any" sig, idempotent by arity. Used for call expressions and lambda
// sigs that carry no declared types.
func (t *ResolvedFuncSigTable) InternUntyped(arity int) ids.ResolvedFuncSigID {
	if id, ok := t.untypedByAriy[arity]; ok {
		return id
	}
	elems := make([]ids.ResolvedSymID, arity+1)
	for i := range elems {
		elems[i] = t.anyTypeSym
	}
	id := t.intern(elems, false)
	t.untypedByAriy[arity] = id
	return id
}

// Intern interns an explicit sig, computing IsTyped from whether any
// element differs from the builtin any-type sym.
func (t *ResolvedFuncSigTable) Intern(elems []ids.ResolvedSymID) ids.ResolvedFuncSigID {
	typed := false
	for _, e := range elems {
		if e != t.anyTypeSym {
			typed = true
			break
		}
	}
	return t.intern(elems, typed)
}

func (t *ResolvedFuncSigTable) intern(elems []ids.ResolvedSymID, typed bool) ids.ResolvedFuncSigID {
	k := keyOfResolvedSyms(elems)
	if id, ok := t.byKey[k]; ok {
		return id
	}
	id := ids.ResolvedFuncSigID(len(t.sigs))
	cp := append([]ids.ResolvedSymID(nil), elems...)
	t.sigs = append(t.sigs, ResolvedFuncSig{Elems: cp, IsTyped: typed})
	t.byKey[k] = id
	return id
}

func (t *ResolvedFuncSigTable) Get(id ids.ResolvedFuncSigID) *ResolvedFuncSig { return &t.sigs[id] }

func keyOfResolvedSyms(elems []ids.ResolvedSymID) funcSigKey {
	var b strings.Builder
	for _, e := range elems {
		b.WriteByte(',')
		writeInt32(&b, int32(e))
	}
	return funcSigKey(b.String())
}

// isRecognizedTypeName reports whether a declared-parameter type
// annotation is in config.BuiltinTypeNames.
func isRecognizedTypeName(name string) bool {
	return config.IsBuiltinTypeName(name)
}
