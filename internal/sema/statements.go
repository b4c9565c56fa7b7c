package sema

import (
	"github.com/wisplang/wisp/internal/ast"
	"github.com/wisplang/wisp/internal/diagnostics"
	"github.com/wisplang/wisp/internal/ids"
	"github.com/wisplang/wisp/internal/typetag"
)

// analyzeStatement dispatches on stmt's concrete type, the single
// traversal entry point for every statement form.
func (c *Chunk) analyzeStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.PassStmt, *ast.BreakStmt, *ast.ContinueStmt, *ast.AtStmt:
		// no semantic effect

	case *ast.ReturnStmt:
		if s.Expr != nil {
			rtype := c.analyzeExpression(s.Expr)
			c.recordReturnType(rtype)
		}

	case *ast.ExprStmt:
		c.analyzeExpression(s.Expr)

	case *ast.OpAssignStmt:
		c.analyzeOpAssign(s)

	case *ast.AssignStmt:
		c.analyzeAssign(s)

	case *ast.VarDeclStmt:
		c.analyzeVarDecl(s, false)

	case *ast.CaptureDeclStmt:
		c.analyzeCaptureDecl(s)

	case *ast.StaticDeclStmt:
		c.analyzeStaticDecl(s)

	case *ast.TypeAliasDeclStmt:
		c.analyzeTypeAliasDecl(s)

	case *ast.TagTypeDeclStmt:
		c.analyzeTagTypeDecl(s)

	case *ast.ObjectDeclStmt:
		c.analyzeObjectDecl(s)

	case *ast.FuncDeclStmt:
		c.analyzeFuncDecl(s, false)

	case *ast.IfStmt:
		c.analyzeIf(s)

	case *ast.WhileCondStmt:
		c.analyzeExpression(s.Cond)
		c.analyzeLoopBody(s.Body)

	case *ast.WhileInfStmt:
		c.analyzeLoopBody(s.Body)

	case *ast.ForOptStmt:
		c.analyzeExpression(s.Cond)
		c.pushSubBlock(true)
		if s.As != nil {
			varID := c.declareLocal(c.internName(s.As.Name), typetag.New(typetag.Any))
			s.As.VarID = varID
		}
		for _, st := range s.Body {
			c.analyzeStatement(st)
		}
		c.endIterSubBlock()

	case *ast.ForIterStmt:
		c.analyzeExpression(s.Iterable)
		c.pushSubBlock(true)
		if s.Value != nil {
			s.Value.VarID = c.declareLocal(c.internName(s.Value.Name), typetag.New(typetag.Any))
			c.localVars[s.Value.VarID].GenInitializer = true
		}
		if s.Key != nil {
			s.Key.VarID = c.declareLocal(c.internName(s.Key.Name), typetag.New(typetag.Any))
			c.localVars[s.Key.VarID].GenInitializer = true
		}
		for _, st := range s.Body {
			c.analyzeStatement(st)
		}
		c.endIterSubBlock()

	case *ast.ForRangeStmt:
		c.analyzeExpression(s.Start)
		c.analyzeExpression(s.End)
		c.pushSubBlock(true)
		if s.Each != nil {
			s.Each.VarID = c.declareLocal(c.internName(s.Each.Name), typetag.NumberOrRequestInteger())
		}
		for _, st := range s.Body {
			c.analyzeStatement(st)
		}
		c.endIterSubBlock()

	case *ast.MatchStmt:
		c.analyzeExpression(s.Scrutinee)
		for _, arm := range s.Arms {
			for _, cond := range arm.Conds {
				c.analyzeExpression(cond)
			}
			c.analyzeLoopBody(arm.Body)
		}

	case *ast.ImportStmt:
		// Handled by Analyze's import pass (processImport) before the
		// chunk's other statements run; Analyze never passes imports here.

	case *ast.ExportStmt:
		c.analyzeExportStmt(s)
	}
}

func (c *Chunk) analyzeLoopBody(body []ast.Statement) {
	c.pushSubBlock(true)
	for _, st := range body {
		c.analyzeStatement(st)
	}
	c.endIterSubBlock()
}

func (c *Chunk) analyzeIf(s *ast.IfStmt) {
	c.analyzeExpression(s.Cond)
	c.pushSubBlock(false)
	for _, st := range s.Then {
		c.analyzeStatement(st)
	}
	c.endSubBlock()

	for _, ei := range s.ElseIfs {
		c.analyzeExpression(ei.Cond)
		c.pushSubBlock(false)
		for _, st := range ei.Body {
			c.analyzeStatement(st)
		}
		c.endSubBlock()
	}

	if s.Else != nil {
		c.pushSubBlock(false)
		for _, st := range s.Else {
			c.analyzeStatement(st)
		}
		c.endSubBlock()
	}
}

func (c *Chunk) analyzeAssign(s *ast.AssignStmt) {
	rtype := c.analyzeExpression(s.RHS)
	c.assignLHS(s.LHS, rtype)
}

func (c *Chunk) analyzeOpAssign(s *ast.OpAssignStmt) {
	c.analyzeExpression(s.LHS)
	c.analyzeExpression(s.RHS)
	c.assignLHS(s.LHS, typetag.New(typetag.Any))
}

func (c *Chunk) assignLHS(lhs ast.Expression, rtype typetag.Type) {
	switch l := lhs.(type) {
	case *ast.Identifier:
		name := c.internName(l.Name)
		if varID, ok := c.getOrLookupVar(name, lookupAssign, l.Token); ok {
			l.VarID = varID
			c.assignToVar(varID, rtype)
			return
		}
		symID := c.Syms.GetOrCreate(ids.NoSym, name, ids.NoFuncSig)
		c.Syms.MarkUsed(symID)
		l.SymID = symID

	case *ast.AccessExpr:
		c.analyzeExpression(l.Left)

	default:
		c.report(diagnostics.ErrS301BadAssignLHS, lhs.GetToken(), "unsupported assignment target")
	}
}
