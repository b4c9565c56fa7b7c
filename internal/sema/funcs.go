package sema

import (
	"github.com/wisplang/wisp/internal/ast"
	"github.com/wisplang/wisp/internal/diagnostics"
	"github.com/wisplang/wisp/internal/ids"
	"github.com/wisplang/wisp/internal/typetag"
)

// runInitializer analyzes a static initializer expression under
// dependency-tracking, converting a can-not-use-local panic raised deep
// in analyzeExpression into a localized diagnostic at expr's token.
func (c *Chunk) runInitializer(sym ids.SymID, expr ast.Expression) (rtype typetag.Type) {
	prev := c.CurInitializerSym
	c.CurInitializerSym = sym
	c.Init.BeginRecording()
	defer func() {
		c.Init.FinishRecording(sym)
		c.CurInitializerSym = prev
		if r := recover(); r != nil {
			if cnl, ok := r.(*canNotUseLocal); ok {
				c.report(diagnostics.ErrS201CanNotUseLocal, expr.GetToken(),
					"initializer of %q can not use local %q", c.driver.Names.Name(c.Syms.Get(sym).Name), cnl.LocalName)
				rtype = typetag.New(typetag.Any)
				return
			}
			panic(r)
		}
	}()
	return c.analyzeExpression(expr)
}

// analyzeVarDecl handles a top-level `var name: rhs` static-variable
// declaration. exported is true when called from an export statement and
// marks the resolved sym as exported.
func (c *Chunk) analyzeVarDecl(s *ast.VarDeclStmt, exported bool) {
	name := c.internName(s.Name.Name)
	symID := c.Syms.GetOrCreate(ids.NoSym, name, ids.NoFuncSig)
	s.SymID = symID

	rSymID := c.driver.ResolvedSyms.GetOrCreate(ids.NoResolvedSym, name, VariantVariable, exported)
	c.Syms.Get(symID).RSymID = rSymID

	if s.RHS != nil {
		c.runInitializer(symID, s.RHS)
	}
}

func (c *Chunk) analyzeCaptureDecl(s *ast.CaptureDeclStmt) {
	name := c.internName(s.Name.Name)
	varID, ok := c.getOrLookupVar(name, lookupCaptureAssign, s.Token)
	if !ok {
		return
	}
	s.Name.VarID = varID
	if s.RHS != nil {
		rtype := c.analyzeExpression(s.RHS)
		c.assignToVar(varID, rtype)
	}
}

func (c *Chunk) analyzeStaticDecl(s *ast.StaticDeclStmt) {
	name := c.internName(s.Name.Name)
	varID, ok := c.getOrLookupVar(name, lookupStaticAssign, s.Token)
	if !ok {
		return
	}
	s.Name.VarID = varID
	aliasSym := c.LocalVar(varID).AliasSym
	rSymID := c.driver.ResolvedSyms.GetOrCreate(ids.NoResolvedSym, name, VariantVariable, false)
	c.Syms.Get(aliasSym).RSymID = rSymID

	if s.RHS != nil {
		rtype := c.runInitializer(aliasSym, s.RHS)
		c.LocalVar(varID).VType = typetag.ToLocalType(rtype)
	}
}

func (c *Chunk) analyzeTypeAliasDecl(s *ast.TypeAliasDeclStmt) {
	name := c.internName(s.Name.Name)
	// Touch the sym so later references to name key against the same
	// entry the SymRef redirect below installs.
	c.Syms.GetOrCreate(ids.NoSym, name, ids.NoFuncSig)

	switch rhs := s.RHS.(type) {
	case *ast.Identifier:
		targetName := c.internName(rhs.Name)
		targetSym := c.Syms.GetOrCreate(ids.NoSym, targetName, ids.NoFuncSig)
		c.SymRefs.Set(name, SymRef{Kind: SymRefSym, TargetSym: targetSym})
		rhs.SymID = targetSym
	case *ast.AccessExpr:
		c.analyzeExpression(rhs)
		if rhs.SymID != ids.NoSym {
			c.SymRefs.Set(name, SymRef{Kind: SymRefSym, TargetSym: rhs.SymID})
		}
	default:
		c.report(diagnostics.ErrS304BadAliasRHS, s.Token, "type alias right-hand side must be a name or access expression")
	}
}

// paramFuncSigElems builds the local-sym element tuple (params...,
// return) a func decl's signature interns to.
func (c *Chunk) paramFuncSigElems(params []*ast.Param, retType string) []ids.SymID {
	elems := make([]ids.SymID, len(params)+1)
	for i, p := range params {
		elems[i] = c.typeNameSym(p.TypeName)
	}
	elems[len(params)] = c.typeNameSym(retType)
	return elems
}

func (c *Chunk) typeNameSym(typeName string) ids.SymID {
	name := typeName
	if name == "" {
		name = "any"
	}
	nameID := c.internName(name)
	return c.Syms.GetOrCreate(ids.NoSym, nameID, ids.NoFuncSig)
}

// resolvedElemsForSig resolves each local sig element sym to its
// ResolvedSymID, falling back to the builtin any-type sym for anything
// that fails to resolve. No diagnostic is reported for a type name that
// does not resolve; the slot silently becomes any.
func (c *Chunk) resolvedElemsForSig(elems []ids.SymID) []ids.ResolvedSymID {
	out := make([]ids.ResolvedSymID, len(elems))
	for i, e := range elems {
		rid, err := c.resolveSym(e)
		if err != nil {
			rid = c.driver.AnyTypeSym()
		}
		out[i] = rid
	}
	return out
}

// analyzeFuncDecl handles a top-level `func name(params): body` or
// `func name(params): = initializerExpr` declaration.
func (c *Chunk) analyzeFuncDecl(s *ast.FuncDeclStmt, exported bool) {
	name := c.internName(s.Name.Name)
	localElems := c.paramFuncSigElems(s.Params, s.RetType)
	sigID := c.FuncSigs.Intern(localElems)
	symID := c.Syms.GetOrCreate(ids.NoSym, name, sigID)
	s.SymID = symID

	resolvedElems := c.resolvedElemsForSig(localElems)
	rSigID := c.driver.ResolvedFuncSigs.Intern(resolvedElems)
	c.FuncSigs.Get(sigID).Resolved = rSigID

	rSymID := c.driver.ResolvedSyms.GetOrCreate(ids.NoResolvedSym, name, VariantFunc, exported || s.Exported)

	if s.Initializer != nil {
		c.driver.ResolvedSyms.AddOverload(rSymID, rSigID, ResolvedFuncSym{
			ChunkID: c.ID, RFuncSigID: rSigID, HasStaticInitializer: true,
		})
		c.Syms.Get(symID).RSymID = rSymID
		c.runInitializer(symID, s.Initializer)
		return
	}

	c.driver.ResolvedSyms.AddOverload(rSymID, rSigID, ResolvedFuncSym{
		ChunkID: c.ID, RFuncSigID: rSigID,
	})
	c.Syms.Get(symID).RSymID = rSymID

	blockID := c.pushBlock(ids.NoBlock, ids.NoNode, false)
	s.SemaBlockID = blockID
	blk := c.Block(blockID)
	if s.RetType != "" {
		blk.RetType = c.typeTagFromName(s.RetType)
		blk.HasRetType = true
	} else {
		blk.InferRetType = true
	}
	for i, p := range s.Params {
		c.declareParam(c.internName(p.Name), c.paramType(p))
		_ = i
	}
	for _, stmt := range s.Body {
		c.analyzeStatement(stmt)
	}
	c.endBlock()
}

func (c *Chunk) analyzeExportStmt(s *ast.ExportStmt) {
	switch inner := s.Inner.(type) {
	case *ast.VarDeclStmt:
		c.analyzeVarDecl(inner, true)
		c.publish(c.internName(inner.Name.Name), ids.NoResolvedFuncSig, ModSymUserVar, inner.SymID)
	case *ast.FuncDeclStmt:
		inner.Exported = true
		c.analyzeFuncDecl(inner, true)
		c.publish(c.internName(inner.Name.Name), c.funcSigOf(inner), ModSymUserFunc, inner.SymID)
	case *ast.ObjectDeclStmt:
		c.analyzeObjectDecl(inner)
		c.publish(c.internName(inner.Name.Name), ids.NoResolvedFuncSig, ModSymUserObject, inner.SymID)
	default:
		c.report(diagnostics.ErrS302BadExportSubj, s.Token, "unsupported export subject")
	}
}

func (c *Chunk) funcSigOf(s *ast.FuncDeclStmt) ids.ResolvedFuncSigID {
	sym := c.Syms.Get(s.SymID)
	return c.FuncSigs.Get(sym.FuncSigID).Resolved
}

func (c *Chunk) publish(name ids.NameID, sig ids.ResolvedFuncSigID, kind ModuleSymKind, declSym ids.SymID) {
	mod := c.driver.Modules.Get(c.ModuleID)
	mod.Publish(name, sig, ModuleSym{
		Kind: kind, FuncSigID: sig, DeclNode: ids.NoNode, ChunkID: c.ID, Exported: true,
	})
	_ = declSym
}
