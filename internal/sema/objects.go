package sema

import (
	"github.com/wisplang/wisp/internal/ast"
	"github.com/wisplang/wisp/internal/ids"
	"github.com/wisplang/wisp/internal/typetag"
)

// analyzeTagTypeDecl handles `tagtype Name: member1, member2, ...`,
// wiring each member into the VM's tag-literal table in order.
func (c *Chunk) analyzeTagTypeDecl(s *ast.TagTypeDeclStmt) {
	name := c.internName(s.Name.Name)
	symID := c.Syms.GetOrCreate(ids.NoSym, name, ids.NoFuncSig)
	s.SymID = symID

	tagTypeID := c.driver.VM.EnsureTagType(name)
	s.SemaTagID = tagTypeID

	rSymID := c.driver.ResolvedSyms.GetOrCreate(ids.NoResolvedSym, name, VariantBuiltinType, true)
	c.Syms.Get(symID).RSymID = rSymID

	for i, member := range s.Members {
		memberName := c.internName(member.Name)
		litSymID := c.driver.VM.EnsureTagLitSym(memberName)
		c.driver.VM.SetTagLitSym(tagTypeID, litSymID, i)
		member.SymID = litSymID
	}
}

// analyzeObjectDecl handles `object Name: field1, field2 ... func ...`.
// The object's ResolvedSym acts as a parent namespace for its static
// functions, so `Name.staticFn(...)` resolves through the same module
// member machinery an import does.
func (c *Chunk) analyzeObjectDecl(s *ast.ObjectDeclStmt) {
	name := c.internName(s.Name.Name)
	symID := c.Syms.GetOrCreate(ids.NoSym, name, ids.NoFuncSig)
	s.SymID = symID

	rSymID := c.driver.ResolvedSyms.GetOrCreate(ids.NoResolvedSym, name, VariantObject, true)
	c.Syms.Get(symID).RSymID = rSymID

	objTypeID := c.driver.VM.EnsureObjectType(rSymID, name)
	s.SemaObjectID = objTypeID

	for i, field := range s.Fields {
		fieldName := c.internName(field.Name)
		fieldSymID := c.driver.VM.EnsureFieldSym(fieldName)
		c.driver.VM.AddFieldSym(objTypeID, fieldSymID, i)
		field.SymID = fieldSymID
	}

	objModuleID, isNew := c.driver.Modules.GetOrCreate("object:" + s.Name.Name)
	if isNew {
		mod := c.driver.Modules.Get(objModuleID)
		mod.ChunkID = c.ID
		mod.ResolvedRootSym = rSymID
		mod.Placeholder = false
	}
	c.driver.BindModuleRootSym(rSymID, objModuleID)

	for _, fn := range s.Funcs {
		c.analyzeObjectFunc(fn, objModuleID, objTypeID)
	}
}

func (c *Chunk) analyzeObjectFunc(fn *ast.ObjectFuncDecl, objModuleID ids.ModuleID, objTypeID ids.ObjectTypeID) {
	isMethod := len(fn.Params) > 0 && fn.Params[0].Name == "self"

	localElems := c.paramFuncSigElems(fn.Params, fn.RetType)
	sigID := c.FuncSigs.Intern(localElems)
	resolvedElems := c.resolvedElemsForSig(localElems)
	rSigID := c.driver.ResolvedFuncSigs.Intern(resolvedElems)
	c.FuncSigs.Get(sigID).Resolved = rSigID

	fnName := c.internName(fn.Name.Name)
	blockID := c.pushBlock(ids.NoBlock, ids.NoNode, false)
	fn.SemaBlockID = blockID
	blk := c.Block(blockID)
	if fn.RetType != "" {
		blk.RetType = c.typeTagFromName(fn.RetType)
		blk.HasRetType = true
	} else {
		blk.InferRetType = true
	}
	for _, p := range fn.Params {
		if p.Name == "self" {
			c.declareParam(c.internName(p.Name), typetag.New(typetag.Any))
			continue
		}
		c.declareParam(c.internName(p.Name), c.paramType(p))
	}
	for _, stmt := range fn.Body {
		c.analyzeStatement(stmt)
	}
	c.endBlock()

	if isMethod {
		rFuncSymID := c.driver.VM.EnsureFuncSym(ids.NoResolvedSym, fnName, rSigID)
		_ = rFuncSymID
		return
	}

	mod := c.driver.Modules.Get(objModuleID)
	mod.Publish(fnName, rSigID, ModuleSym{
		Kind: ModSymUserFunc, FuncSigID: rSigID, ChunkID: c.ID, Exported: true,
	})
}
