// Package names implements a process-wide (per-compilation) interner of
// identifier strings, yielding the stable ids.NameID the rest of
// internal/sema keys its tables on. Grounded on funvibe/funxy's
// internal/symbols string-keyed maps, adapted into a dedicated interning
// table.
package names

import "github.com/wisplang/wisp/internal/ids"

// Interner interns identifier strings for one compilation. It owns the
// backing bytes of every name it interns; callers that hold a transient
// source span should copy it in before interning — this implementation
// always copies, trading a small allocation for never having to reason
// about source-buffer lifetime across chunks.
type Interner struct {
	byName map[string]ids.NameID
	names  []string
}

func New() *Interner {
	return &Interner{byName: make(map[string]ids.NameID, 256)}
}

// Intern returns the stable id for name, allocating one on first sight.
func (in *Interner) Intern(name string) ids.NameID {
	if id, ok := in.byName[name]; ok {
		return id
	}
	id := ids.NameID(len(in.names))
	owned := string(append([]byte(nil), name...))
	in.names = append(in.names, owned)
	in.byName[owned] = id
	return id
}

// Lookup returns the id for name without interning it.
func (in *Interner) Lookup(name string) (ids.NameID, bool) {
	id, ok := in.byName[name]
	return id, ok
}

// Name returns the interned string for id. Panics on an out-of-range id,
// which indicates a bug in the caller (ids are never fabricated).
func (in *Interner) Name(id ids.NameID) string {
	return in.names[id]
}

// Len returns the number of distinct interned names.
func (in *Interner) Len() int { return len(in.names) }
