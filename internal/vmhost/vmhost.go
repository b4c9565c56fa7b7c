// Package vmhost defines the narrow VM-collaborator interface the
// analyzer needs: the runtime's object-type registry, field-sym table,
// and tag-literal table, accessed only through these methods. The
// VM/runtime itself is out of scope for this module — every
// internal/sema test drives the analyzer against NopHost instead of a
// real VM.
package vmhost

import "github.com/wisplang/wisp/internal/ids"

// Host is the VM collaborator interface the analyzer calls into to
// register object types, field syms, tag types, and func/var syms.
type Host interface {
	EnsureTagType(name ids.NameID) ids.TagTypeID
	EnsureTagLitSym(name ids.NameID) ids.SymID
	SetTagLitSym(tagTypeID ids.TagTypeID, litSymID ids.SymID, ordinal int)

	EnsureObjectType(parent ids.ResolvedSymID, name ids.NameID) ids.ObjectTypeID
	EnsureFieldSym(name ids.NameID) ids.FieldSymID
	AddFieldSym(objectTypeID ids.ObjectTypeID, fieldSymID ids.FieldSymID, index int)

	EnsureFuncSym(parent ids.ResolvedSymID, name ids.NameID, sig ids.ResolvedFuncSigID) ids.ResolvedFuncSymID
	EnsureVarSym(parent ids.ResolvedSymID, name ids.NameID) ids.ResolvedSymID

	SetFuncSym(rtID ids.ResolvedFuncSymID, entry any)
	SetVarSym(rtID ids.ResolvedSymID, entry any)

	Retain(value any)
}

// NopHost is a no-op Host used by tests and by any caller that only wants
// sema's tables/annotations, not a real runtime wired up.
type NopHost struct {
	nextTagType  ids.TagTypeID
	nextTagLit   ids.SymID
	nextObjType  ids.ObjectTypeID
	nextFieldSym ids.FieldSymID
	nextFuncSym  ids.ResolvedFuncSymID
	nextVarSym   ids.ResolvedSymID
}

func NewNopHost() *NopHost { return &NopHost{} }

func (h *NopHost) EnsureTagType(ids.NameID) ids.TagTypeID {
	id := h.nextTagType
	h.nextTagType++
	return id
}

func (h *NopHost) EnsureTagLitSym(ids.NameID) ids.SymID {
	id := h.nextTagLit
	h.nextTagLit++
	return id
}

func (h *NopHost) SetTagLitSym(ids.TagTypeID, ids.SymID, int) {}

func (h *NopHost) EnsureObjectType(ids.ResolvedSymID, ids.NameID) ids.ObjectTypeID {
	id := h.nextObjType
	h.nextObjType++
	return id
}

func (h *NopHost) EnsureFieldSym(ids.NameID) ids.FieldSymID {
	id := h.nextFieldSym
	h.nextFieldSym++
	return id
}

func (h *NopHost) AddFieldSym(ids.ObjectTypeID, ids.FieldSymID, int) {}

func (h *NopHost) EnsureFuncSym(ids.ResolvedSymID, ids.NameID, ids.ResolvedFuncSigID) ids.ResolvedFuncSymID {
	id := h.nextFuncSym
	h.nextFuncSym++
	return id
}

func (h *NopHost) EnsureVarSym(ids.ResolvedSymID, ids.NameID) ids.ResolvedSymID {
	id := h.nextVarSym
	h.nextVarSym++
	return id
}

func (h *NopHost) SetFuncSym(ids.ResolvedFuncSymID, any) {}
func (h *NopHost) SetVarSym(ids.ResolvedSymID, any)      {}
func (h *NopHost) Retain(any)                            {}
