package sema

import (
	"github.com/wisplang/wisp/internal/diagnostics"
	"github.com/wisplang/wisp/internal/ids"
	"github.com/wisplang/wisp/internal/token"
	"github.com/wisplang/wisp/internal/typetag"
)

// lookupStrategy picks which of the four name-resolution rules
// getOrLookupVar applies, matching how the name was written at the use
// site: a bare reference/assignment, or one prefixed with the `capture`
// or `static` declaration modifier.
type lookupStrategy uint8

const (
	lookupRead lookupStrategy = iota
	lookupAssign
	lookupCaptureAssign
	lookupStaticAssign
)

// findInAncestorBlocks walks the stack of open function blocks,
// innermost first (not sub-blocks — a name declared anywhere in a
// function stays visible for the rest of it), looking for an existing
// local named name, stopping at the block actually holding it.
func (c *Chunk) findInAncestorBlocks(name ids.NameID) (ids.LocalVarID, ids.BlockID, bool) {
	for i := len(c.blockStack) - 1; i >= 0; i-- {
		blk := c.blocks[c.blockStack[i]]
		if id, ok := blk.NameToVar[name]; ok {
			return id, blk.ID, true
		}
	}
	return ids.NoLocalVar, ids.NoBlock, false
}

// getOrLookupVar resolves a bare name against the local-variable scope
// only; callers fall back to sym resolution when it returns ok == false
// with no diagnostic raised (meaning: not a local at all, try the sym
// table next).
func (c *Chunk) getOrLookupVar(name ids.NameID, strat lookupStrategy, tok token.Token) (ids.LocalVarID, bool) {
	cur := c.curBlock()

	switch strat {
	case lookupRead:
		if id, ok := cur.NameToVar[name]; ok {
			// A static alias read resolves through the Sym table, not the
			// local-var arena; signal "not a local" so the caller falls back
			// to the sym path, which finds the very same root Sym the alias
			// was created against.
			if c.localVars[id].IsStaticAlias {
				return ids.NoLocalVar, false
			}
			return id, true
		}
		outerID, _, found := c.findInAncestorBlocks(name)
		if !found {
			return ids.NoLocalVar, false
		}
		if cur.IsStaticFuncBlock {
			c.report(diagnostics.ErrS202CaptureInStaticFn, tok,
				"can not close over %q inside a static function", c.driver.Names.Name(name))
			return ids.NoLocalVar, false
		}
		return c.declareCapture(name, outerID), true

	case lookupAssign:
		if id, ok := cur.NameToVar[name]; ok {
			v := c.localVars[id]
			if v.IsStaticAlias && !v.HasCaptureOrStaticModifier && len(c.blockStack) > 1 {
				c.report(diagnostics.ErrS203AssignNeedsModExpr, tok,
					"%q must be declared with `static` before assigning", c.driver.Names.Name(name))
				return ids.NoLocalVar, false
			}
			if v.IsCaptured && !v.HasCaptureOrStaticModifier {
				c.report(diagnostics.ErrS203AssignNeedsModExpr, tok,
					"%q must be declared with `capture` before assigning", c.driver.Names.Name(name))
				return ids.NoLocalVar, false
			}
			return id, true
		}
		// Not found anywhere in this function's own scope: assignment to an
		// unknown name declares it, never auto-captures from an enclosing
		// function (that requires the explicit `capture` modifier).
		if len(c.blockStack) == 1 {
			if existingRoot, ok := c.Syms.Lookup(ids.NoSym, name, ids.NoFuncSig); ok {
				return c.declareStaticAlias(name, existingRoot, typetag.New(typetag.Any), false), true
			}
		}
		varID := c.declareLocal(name, typetag.New(typetag.Undefined))
		if cur.SubBlockDepth > 1 {
			c.localVars[varID].GenInitializer = true
		}
		return varID, true

	case lookupCaptureAssign:
		if _, ok := cur.NameToVar[name]; ok {
			c.report(diagnostics.ErrS203AssignNeedsModExpr, tok,
				"%q is already a local in this scope; capture can only introduce a new name", c.driver.Names.Name(name))
			return ids.NoLocalVar, false
		}
		outerID, _, found := c.findInAncestorBlocks(name)
		if !found {
			c.report(diagnostics.ErrS004MissingSymbol, tok,
				"capture %q: no enclosing local named %q", c.driver.Names.Name(name), c.driver.Names.Name(name))
			return ids.NoLocalVar, false
		}
		if cur.IsStaticFuncBlock {
			c.report(diagnostics.ErrS202CaptureInStaticFn, tok,
				"can not capture %q inside a static function", c.driver.Names.Name(name))
			return ids.NoLocalVar, false
		}
		return c.declareCapture(name, outerID), true

	case lookupStaticAssign:
		if _, ok := cur.NameToVar[name]; ok {
			c.report(diagnostics.ErrS203AssignNeedsModExpr, tok,
				"%q is already a local in this scope; static can only introduce a new name", c.driver.Names.Name(name))
			return ids.NoLocalVar, false
		}
		aliasSym := c.Syms.GetOrCreate(ids.NoSym, name, ids.NoFuncSig)
		return c.declareStaticAlias(name, aliasSym, typetag.New(typetag.Any), true), true
	}
	return ids.NoLocalVar, false
}

// assignToVar applies an assignment of rtype to an existing local,
// lowering rtype with typetag.ToLocalType first.
func (c *Chunk) assignToVar(varID ids.LocalVarID, rtype typetag.Type) {
	c.assignLocal(varID, typetag.ToLocalType(rtype))
}

// checkNotInInitializer raises canNotUseLocal if a local is referenced
// while CurInitializerSym is set (a static var/func initializer
// expression may not read any local — it runs once, outside any call
// frame).
func (c *Chunk) checkNotInInitializer(name ids.NameID) error {
	if c.CurInitializerSym == ids.NoSym {
		return nil
	}
	return &canNotUseLocal{LocalName: c.driver.Names.Name(name)}
}
