package sema

import (
	"github.com/wisplang/wisp/internal/ast"
	"github.com/wisplang/wisp/internal/diagnostics"
	"github.com/wisplang/wisp/internal/ids"
)

// importDiagCode picks the diagnostic code for a failed import; the
// loader's sentinel errors are unexported to sema, so this defaults to
// the generic "not found" code unless the loader error is more specific
// (see errNotInWasm in internal/loader).
func importDiagCode(err error) diagnostics.Code {
	if coder, ok := err.(interface{ DiagnosticCode() diagnostics.Code }); ok {
		return coder.DiagnosticCode()
	}
	return diagnostics.ErrS401ImportNotFound
}

// ImportResolver resolves an ImportStmt's Spec string to a loaded Module,
// implemented by internal/loader. Keeping it as a function type here
// (rather than importing internal/loader) avoids a sema<->loader cycle:
// the loader drives sema, not the other way around.
type ImportResolver func(spec string) (ids.ModuleID, error)

// Analyze runs the full single-pass analysis of prog: imports first (so
// every name they bring into scope is visible to the rest of the file),
// then every top-level statement, then resolution of every sym actually
// used.
func (c *Chunk) Analyze(prog *ast.Program, resolveImport ImportResolver) {
	blockID := c.pushBlock(ids.NoBlock, ids.NoNode, false)
	_ = blockID

	for _, stmt := range prog.Statements {
		imp, ok := stmt.(*ast.ImportStmt)
		if !ok {
			continue
		}
		c.processImport(imp, resolveImport)
	}

	for _, stmt := range prog.Statements {
		if _, ok := stmt.(*ast.ImportStmt); ok {
			continue
		}
		c.analyzeStatement(stmt)
	}

	c.endBlock()
	c.ResolveUsed()
}

func (c *Chunk) processImport(imp *ast.ImportStmt, resolveImport ImportResolver) {
	modID, err := resolveImport(imp.Spec)
	if err != nil {
		c.report(importDiagCode(err), imp.Token, "import %q: %v", imp.Spec, err)
		return
	}
	imp.SemaModID = modID

	if imp.ImportAll {
		c.WildcardModules = append(c.WildcardModules, modID)
		return
	}

	name := c.internName(imp.Name.Name)
	c.SymRefs.Set(name, SymRef{Kind: SymRefModule, ModuleID: modID})
	mod := c.driver.Modules.Get(modID)
	c.driver.BindModuleRootSym(mod.ResolvedRootSym, modID)
}
