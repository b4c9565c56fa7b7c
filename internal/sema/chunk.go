// Package sema implements semantic analysis for wisp source: symbol
// resolution, the local-variable/block type-merge algebra, overload
// disambiguation, and diagnostic reporting. It consumes an *ast.Program
// already produced by an external parser and annotates it in place,
// publishing a Module other chunks can import.
package sema

import (
	"github.com/wisplang/wisp/internal/diagnostics"
	"github.com/wisplang/wisp/internal/ids"
	"github.com/wisplang/wisp/internal/names"
	"github.com/wisplang/wisp/internal/token"
	"github.com/wisplang/wisp/internal/vmhost"
)

// Driver owns every process-wide table: the name interner, the global
// resolved-symbol table, the resolved-func-sig table, the module
// registry, and the VM collaborator. One Driver analyzes an entire
// import graph; each source file gets its own Chunk.
type Driver struct {
	Names            *names.Interner
	ResolvedSyms     *ResolvedSymTable
	ResolvedFuncSigs *ResolvedFuncSigTable
	Modules          *ModuleRegistry
	VM               vmhost.Host
	Sink             *diagnostics.Sink

	builtinTypeSyms map[string]ids.ResolvedSymID
	nextChunkID     int

	// moduleForRootSym maps a VariantModule ResolvedSym back to the Module
	// it denotes, so a.b lookups can find a's member table once a itself
	// has resolved.
	moduleForRootSym map[ids.ResolvedSymID]ids.ModuleID
}

// NewDriver wires up a fresh Driver, including the builtin root ResolvedSyms
// for any/boolean/number/int/list/map/fiber/string/staticString/box/tag/
// tagLiteral/undefined.
func NewDriver(vm vmhost.Host) *Driver {
	n := names.New()
	rs := NewResolvedSymTable()

	d := &Driver{
		Names:           n,
		ResolvedSyms:    rs,
		Modules:          NewModuleRegistry(),
		VM:               vm,
		Sink:             diagnostics.NewSink(),
		builtinTypeSyms:  make(map[string]ids.ResolvedSymID, 16),
		moduleForRootSym: make(map[ids.ResolvedSymID]ids.ModuleID, 16),
	}

	for _, tn := range builtinTypeNames {
		nameID := n.Intern(tn)
		symID := rs.GetOrCreate(ids.NoResolvedSym, nameID, VariantBuiltinType, true)
		d.builtinTypeSyms[tn] = symID
	}
	d.ResolvedFuncSigs = NewResolvedFuncSigTable(d.builtinTypeSyms["any"])
	return d
}

var builtinTypeNames = []string{
	"any", "boolean", "number", "int", "list", "map", "fiber",
	"string", "staticString", "box", "tag", "tagLiteral", "undefined",
}

// AnyTypeSym is the root ResolvedSym every untyped parameter/return slot
// binds to.
func (d *Driver) AnyTypeSym() ids.ResolvedSymID { return d.builtinTypeSyms["any"] }

// BuiltinTypeSym looks up the builtin ResolvedSym for a type name
// recognized in parameter/return position (ok is false for user types).
func (d *Driver) BuiltinTypeSym(name string) (ids.ResolvedSymID, bool) {
	id, ok := d.builtinTypeSyms[name]
	return id, ok
}

// BindModuleRootSym records that rootSym (a VariantModule ResolvedSym)
// denotes moduleID, so a later `a.b` access can find a's member table.
func (d *Driver) BindModuleRootSym(rootSym ids.ResolvedSymID, moduleID ids.ModuleID) {
	d.moduleForRootSym[rootSym] = moduleID
}

// NewChunk starts analysis state for one source file, to be published
// under moduleID once analysis completes.
func (d *Driver) NewChunk(file string, moduleID ids.ModuleID) *Chunk {
	id := d.nextChunkID
	d.nextChunkID++
	c := &Chunk{
		driver:   d,
		File:     file,
		ID:       id,
		ModuleID: moduleID,
		Syms:     NewSymTable(),
		SymRefs:  NewSymRefTable(),
		FuncSigs: NewFuncSigTable(),
		Init:     newInitializerTable(),
		blockStack: nil,
		CurInitializerSym: ids.NoSym,
	}
	c.blocks = nil
	c.subBlocks = nil
	return c
}

// Chunk is one source file's analysis state: its local symbol table, its
// block/local-var arenas, and a back-reference to the shared Driver.
type Chunk struct {
	driver *Driver

	File     string
	ID       int
	ModuleID ids.ModuleID

	Syms     *SymTable
	SymRefs  *SymRefTable
	FuncSigs *FuncSigTable
	Init     *InitializerTable

	blocks     []*Block
	subBlocks  []*SubBlock
	blockStack []ids.BlockID
	localVars  []*LocalVar
	assignedVars []ids.LocalVarID

	// CurInitializerSym is the Sym currently being initialized by a
	// static-var or static-func initializer expression, or NoSym outside
	// one. Reading a local while this is set raises canNotUseLocal.
	CurInitializerSym ids.SymID

	// WildcardModules holds every module this chunk `import *`-ed, tried
	// in declaration order by resolveRootSym once a name misses every
	// other lookup path.
	WildcardModules []ids.ModuleID
}

func (c *Chunk) LocalVar(id ids.LocalVarID) *LocalVar { return c.localVars[id] }

func (c *Chunk) Block(id ids.BlockID) *Block { return c.blocks[id] }

// report is a small convenience forwarding to the driver's sink.
func (c *Chunk) report(code diagnostics.Code, tok token.Token, format string, args ...any) {
	c.driver.Sink.Reportf(code, tok, format, args...)
}
