package sema

import (
	"github.com/wisplang/wisp/internal/ids"
	"github.com/wisplang/wisp/internal/typetag"
)

// LocalVar is one named slot in a chunk's local-variable arena: a
// parameter, a var-decl target, a captured upvalue, or a static alias.
type LocalVar struct {
	Name    ids.NameID
	BlockID ids.BlockID

	VType typetag.Type

	IsParam                    bool
	IsCaptured                 bool
	IsBoxed                    bool
	IsStaticAlias              bool
	HasCaptureOrStaticModifier bool
	LifetimeRCCandidate        bool

	// GenInitializer/GenIsDefined mirror the backend's two-phase var
	// lowering: a var-decl with no initializer expression still needs a
	// definite-assignment flag if it's read before any branch assigns it.
	GenInitializer bool
	GenIsDefined   bool

	// Local is the backend register/slot index, filled in once codegen
	// allocates one; -1 until then.
	Local int

	// AliasSym is set iff IsStaticAlias: the chunk-local Sym a `static`
	// declaration's storage actually lives under.
	AliasSym ids.SymID

	// ParentCaptureID links a captured upvalue back to the enclosing
	// block's LocalVar it closes over; NoLocalVar if IsCaptured is false.
	ParentCaptureID ids.LocalVarID
}

func newLocalVar(name ids.NameID, blockID ids.BlockID) *LocalVar {
	return &LocalVar{
		Name: name, BlockID: blockID,
		Local:           -1,
		AliasSym:        ids.NoSym,
		ParentCaptureID: ids.NoLocalVar,
	}
}

// declareParam adds a parameter to the current block, in declaration
// order, visible immediately in the block's name map.
func (c *Chunk) declareParam(name ids.NameID, vtype typetag.Type) ids.LocalVarID {
	blk := c.curBlock()
	v := newLocalVar(name, blk.ID)
	v.IsParam = true
	v.VType = vtype
	id := ids.LocalVarID(len(c.localVars))
	c.localVars = append(c.localVars, v)
	blk.Params = append(blk.Params, id)
	blk.NameToVar[name] = id
	return id
}

// declareLocal introduces a brand-new local (var-decl, loop induction
// var, match-arm binding) in the current block/sub-block.
func (c *Chunk) declareLocal(name ids.NameID, vtype typetag.Type) ids.LocalVarID {
	blk := c.curBlock()
	v := newLocalVar(name, blk.ID)
	v.VType = vtype
	if vtype.RCCandidate() {
		v.LifetimeRCCandidate = true
	}
	id := ids.LocalVarID(len(c.localVars))
	c.localVars = append(c.localVars, v)
	blk.Locals = append(blk.Locals, id)
	blk.NameToVar[name] = id
	c.declareLocalInSubBlock(id)
	return id
}

// declareCapture introduces a captured upvalue into the current (inner)
// block, copying the outer var's current type and boxing the outer var
// as a side effect — closures always observe the latest write.
func (c *Chunk) declareCapture(name ids.NameID, outer ids.LocalVarID) ids.LocalVarID {
	blk := c.curBlock()
	outerVar := c.localVars[outer]
	outerVar.IsCaptured = true
	outerVar.IsBoxed = true
	outerVar.HasCaptureOrStaticModifier = true

	v := newLocalVar(name, blk.ID)
	v.IsCaptured = true
	v.IsBoxed = true
	v.VType = outerVar.VType
	v.LifetimeRCCandidate = outerVar.LifetimeRCCandidate
	v.ParentCaptureID = outer

	id := ids.LocalVarID(len(c.localVars))
	c.localVars = append(c.localVars, v)
	blk.Params = append(blk.Params, id) // captures ride along with params in the callee frame
	blk.NameToVar[name] = id
	return id
}

// declareStaticAlias introduces a `static` local: its storage is really
// the process-wide Sym aliasSym names, not a per-call slot. explicit is
// true when an actual `static` keyword introduced it (setting
// HasCaptureOrStaticModifier, which a later bare assignment inside a
// nested function scope requires); an implicit alias created by a plain
// top-level assignment to an already-declared name carries no modifier,
// since outside the top-level block a bare assignment still needs one.
func (c *Chunk) declareStaticAlias(name ids.NameID, aliasSym ids.SymID, vtype typetag.Type, explicit bool) ids.LocalVarID {
	blk := c.curBlock()
	v := newLocalVar(name, blk.ID)
	v.IsStaticAlias = true
	v.HasCaptureOrStaticModifier = explicit
	v.AliasSym = aliasSym
	v.VType = vtype
	id := ids.LocalVarID(len(c.localVars))
	c.localVars = append(c.localVars, v)
	blk.Locals = append(blk.Locals, id)
	blk.NameToVar[name] = id
	return id
}
