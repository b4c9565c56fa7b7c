package sema

import "github.com/wisplang/wisp/internal/ids"

// InitializerTable records, for every Sym with a static initializer
// expression, which other Syms that expression reads — the dependency
// DAG the backend topo-sorts before emitting static-init code. Deps are
// packed into one flat buffer with a per-sym [start, end) slice instead
// of a map of slices, so the whole graph is one contiguous allocation.
type InitializerTable struct {
	deps    []ids.SymID
	ranges  map[ids.SymID][2]int
	pending []ids.SymID // deps collected for the sym currently being recorded
}

func newInitializerTable() *InitializerTable {
	return &InitializerTable{ranges: make(map[ids.SymID][2]int)}
}

// BeginRecording starts collecting dependency edges for sym's initializer
// expression. Must be paired with FinishRecording before another
// BeginRecording call for a different sym — initializers never nest,
// since a static-init expression body cannot itself declare a static.
func (t *InitializerTable) BeginRecording() {
	t.pending = t.pending[:0]
}

// RecordDep notes that the initializer currently being recorded reads
// dep. Duplicate deps within one initializer are collapsed.
func (t *InitializerTable) RecordDep(dep ids.SymID) {
	for _, d := range t.pending {
		if d == dep {
			return
		}
	}
	t.pending = append(t.pending, dep)
}

// FinishRecording commits the pending dependency list for sym into the
// flat buffer.
func (t *InitializerTable) FinishRecording(sym ids.SymID) {
	start := len(t.deps)
	t.deps = append(t.deps, t.pending...)
	t.ranges[sym] = [2]int{start, len(t.deps)}
	t.pending = t.pending[:0]
}

// Deps returns sym's recorded dependency syms, or nil if it has none
// recorded (including syms with no static initializer at all).
func (t *InitializerTable) Deps(sym ids.SymID) []ids.SymID {
	r, ok := t.ranges[sym]
	if !ok {
		return nil
	}
	return t.deps[r[0]:r[1]]
}

// TopoSort orders syms so that every dependency precedes its dependent.
// On a cycle it returns the entry of syms whose traversal reached the
// cycle, which is not necessarily itself part of the loop.
func (t *InitializerTable) TopoSort(syms []ids.SymID) (order []ids.SymID, cycleAt ids.SymID, hasCycle bool) {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[ids.SymID]int, len(syms))
	order = make([]ids.SymID, 0, len(syms))

	var visit func(s ids.SymID) bool
	visit = func(s ids.SymID) bool {
		switch color[s] {
		case black:
			return true
		case gray:
			return false
		}
		color[s] = gray
		for _, dep := range t.Deps(s) {
			if !visit(dep) {
				return false
			}
		}
		color[s] = black
		order = append(order, s)
		return true
	}

	for _, s := range syms {
		if !visit(s) {
			return nil, s, true
		}
	}
	return order, ids.NoSym, false
}
