package sema

import (
	"github.com/wisplang/wisp/internal/ids"
	"github.com/wisplang/wisp/internal/typetag"
)

// Block is a function scope, including the chunk's top-level main block.
type Block struct {
	ID     ids.BlockID
	Parent ids.BlockID // enclosing function block of a lambda; NoBlock for the chunk's main block and for func/object-func blocks

	Params    []ids.LocalVarID // params, then captured vars appended at the end
	Locals    []ids.LocalVarID // non-param vars in declaration order
	NameToVar map[ids.NameID]ids.LocalVarID

	FirstSubBlockID ids.SubBlockID
	SubBlockDepth   int
	CurSubBlockID   ids.SubBlockID

	FuncDeclID ids.NodeID // always NoNode: no caller passes a node id

	RetType      typetag.Type
	HasRetType   bool
	InferRetType bool

	IsStaticFuncBlock bool
}

// IterVarBegin records the pre-loop type the codegen must initialize a
// var touched inside a for/while body to.
type IterVarBegin struct {
	VarID ids.LocalVarID
	Type  typetag.Type
}

// SubBlock is a lexical sub-scope within a Block: an if/else arm, a loop
// body, a match arm. Assignments inside it are provisional until the
// sub-block closes, at which point its effect on enclosing var types is
// merged (widened to any on disagreement) into the parent scope.
type SubBlock struct {
	ID      ids.SubBlockID
	BlockID ids.BlockID

	AssignedVarStart int
	PrevVarTypes     map[ids.LocalVarID]typetag.Type
	declaredVars     map[ids.LocalVarID]bool // vars first declared inside this sub-block
	IterVarBeginTypes []IterVarBegin
	PrevSubBlockID    ids.SubBlockID
	IsIter            bool
}

// pushBlock allocates a new Block and its outermost sub-block. parent is
// NoBlock for the chunk's main block and for func/object-func blocks.
func (c *Chunk) pushBlock(parent ids.BlockID, funcDecl ids.NodeID, isStaticFuncBlock bool) ids.BlockID {
	id := ids.BlockID(len(c.blocks))
	b := &Block{
		ID: id, Parent: parent,
		NameToVar:         make(map[ids.NameID]ids.LocalVarID),
		FirstSubBlockID:   ids.SubBlockID(len(c.subBlocks)),
		FuncDeclID:        funcDecl,
		CurSubBlockID:     ids.NoSubBlock,
		IsStaticFuncBlock: isStaticFuncBlock,
	}
	c.blocks = append(c.blocks, b)
	c.blockStack = append(c.blockStack, id)
	c.pushSubBlock(false)
	return id
}

// recordReturnType folds one more `return expr` into the block's inferred
// return type: the first sets RetType/HasRetType; a later one whose type
// disagrees promotes RetType to any. A block with an explicit declared
// return type (InferRetType == false) ignores every return's runtime type.
func (c *Chunk) recordReturnType(rtype typetag.Type) {
	blk := c.curBlock()
	if !blk.InferRetType {
		return
	}
	local := typetag.ToLocalType(rtype)
	if !blk.HasRetType {
		blk.RetType = local
		blk.HasRetType = true
		return
	}
	if !typetag.Equal(blk.RetType, local) {
		blk.RetType = typetag.New(typetag.Any)
	}
}

// curBlock returns the innermost open function block.
func (c *Chunk) curBlock() *Block {
	return c.blocks[c.blockStack[len(c.blockStack)-1]]
}

// pushSubBlock opens a child of the current sub-block, snapshotting the
// assigned-var stack length so the merge on close knows what range of
// assignments happened inside it.
func (c *Chunk) pushSubBlock(isIter bool) ids.SubBlockID {
	blk := c.curBlock()
	id := ids.SubBlockID(len(c.subBlocks))
	sb := &SubBlock{
		ID: id, BlockID: blk.ID,
		PrevVarTypes:     make(map[ids.LocalVarID]typetag.Type),
		declaredVars:     make(map[ids.LocalVarID]bool),
		PrevSubBlockID:   blk.CurSubBlockID,
		AssignedVarStart: len(c.assignedVars),
		IsIter:           isIter,
	}
	c.subBlocks = append(c.subBlocks, sb)
	blk.CurSubBlockID = id
	blk.SubBlockDepth++
	return id
}

func (c *Chunk) curSubBlock() *SubBlock {
	blk := c.curBlock()
	return c.subBlocks[blk.CurSubBlockID]
}

// declareLocalInSubBlock marks varID as freshly introduced in the
// current sub-block, so assignLocal does not treat it as a pre-existing
// var whose prior type must be remembered for the merge.
func (c *Chunk) declareLocalInSubBlock(varID ids.LocalVarID) {
	c.curSubBlock().declaredVars[varID] = true
}

// assignLocal records a write to varID of the given runtime type,
// updates the var's tracked type and boxed/rc-candidate flags, and
// pushes the var onto the chunk-wide assigned-var stack so the
// enclosing sub-block merges can find it on close.
func (c *Chunk) assignLocal(varID ids.LocalVarID, rtype typetag.Type) {
	v := c.localVars[varID]
	sb := c.curSubBlock()

	if v.IsCaptured && !v.IsBoxed {
		v.IsBoxed = true
	}

	if !sb.declaredVars[varID] {
		if _, already := sb.PrevVarTypes[varID]; !already {
			sb.PrevVarTypes[varID] = v.VType
		}
	}

	v.VType = rtype
	if rtype.RCCandidate() {
		v.LifetimeRCCandidate = true
	}

	c.assignedVars = append(c.assignedVars, varID)
}

// endSubBlock closes the current sub-block and merges its effect on
// enclosing var types into the parent sub-block.
func (c *Chunk) endSubBlock() {
	blk := c.curBlock()
	sb := c.curSubBlock()
	c.closeSubBlockCommon(blk, sb)
}

// endIterSubBlock closes a loop-body sub-block: first it records, for
// every var assigned anywhere in the body, the type the var must be
// widened to on loop entry (any, if the loop body can change its type;
// otherwise unchanged) — codegen needs this to emit the right
// initializer before the backward jump. It then applies the normal
// close-and-merge.
func (c *Chunk) endIterSubBlock() {
	blk := c.curBlock()
	sb := c.curSubBlock()

	seen := make(map[ids.LocalVarID]bool)
	for _, varID := range c.assignedVars[sb.AssignedVarStart:] {
		if seen[varID] {
			continue
		}
		seen[varID] = true
		v := c.localVars[varID]
		begin := v.VType
		if prev, ok := sb.PrevVarTypes[varID]; ok && !typetag.Equal(prev, v.VType) {
			begin = typetag.New(typetag.Any)
		}
		sb.IterVarBeginTypes = append(sb.IterVarBeginTypes, IterVarBegin{VarID: varID, Type: begin})
	}

	c.closeSubBlockCommon(blk, sb)
}

// closeSubBlockCommon applies the end-of-sub-block merge: a var whose
// type at close disagrees with its type on sub-block entry is widened
// to any; the var then keeps propagating up the sub-block stack so
// sibling/ancestor sub-blocks see the widened type too, unless an
// ancestor has already captured its own snapshot of that var's prior
// type (in which case the propagation stops there).
func (c *Chunk) closeSubBlockCommon(blk *Block, sb *SubBlock) {
	assigned := append([]ids.LocalVarID(nil), c.assignedVars[sb.AssignedVarStart:]...)
	c.assignedVars = c.assignedVars[:sb.AssignedVarStart]

	if blk.SubBlockDepth > 1 {
		parent := c.subBlocks[sb.PrevSubBlockID]
		seen := make(map[ids.LocalVarID]bool, len(assigned))
		for _, varID := range assigned {
			if seen[varID] {
				continue
			}
			seen[varID] = true
			v := c.localVars[varID]
			prevType, hadPrev := sb.PrevVarTypes[varID]
			// hadPrev false means varID was declared fresh in this
			// sub-block, so there's no prior type to compare against and
			// no widening to do — but the var still must propagate up so
			// an enclosing iter sub-block sees it was touched here.
			if hadPrev && !typetag.Equal(prevType, v.VType) {
				v.VType = typetag.New(typetag.Any)
			}
			if _, parentHas := parent.PrevVarTypes[varID]; !parentHas {
				c.assignedVars = append(c.assignedVars, varID)
			}
		}
	}

	blk.CurSubBlockID = sb.PrevSubBlockID
	blk.SubBlockDepth--
}

// endBlock closes the outstanding top-level sub-block, releases the
// block's transient name map, and pops the block stack.
func (c *Chunk) endBlock() {
	c.endSubBlock()
	blk := c.curBlock()
	blk.NameToVar = nil
	c.blockStack = c.blockStack[:len(c.blockStack)-1]
}
