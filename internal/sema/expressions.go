package sema

import (
	"math"

	"github.com/wisplang/wisp/internal/ast"
	"github.com/wisplang/wisp/internal/diagnostics"
	"github.com/wisplang/wisp/internal/ids"
	"github.com/wisplang/wisp/internal/typetag"
)

// analyzeExpression walks expr, resolving every identifier/access it
// touches and returning the coarse type the expression yields.
func (c *Chunk) analyzeExpression(expr ast.Expression) typetag.Type {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		if e.Base == 10 && e.IsFloat {
			if e.FltValue == math.Trunc(e.FltValue) && e.FltValue >= math.MinInt32 && e.FltValue <= math.MaxInt32 {
				return typetag.NumberOrRequestInteger()
			}
			return typetag.New(typetag.Number)
		}
		if e.IntValue <= math.MaxInt32 {
			return typetag.NumberOrRequestInteger()
		}
		return typetag.New(typetag.Number)

	case *ast.BoolLiteral:
		return typetag.New(typetag.Boolean)

	case *ast.StringLiteral:
		return typetag.New(typetag.String)

	case *ast.StringTemplate:
		for _, p := range e.Parts {
			c.analyzeExpression(p)
		}
		return typetag.New(typetag.String)

	case *ast.TagInitExpr:
		return c.analyzeTagInit(e)

	case *ast.BinaryExpr:
		return c.analyzeBinary(e)

	case *ast.UnaryExpr:
		return c.analyzeUnary(e)

	case *ast.Identifier:
		return c.analyzeIdentifierRead(e)

	case *ast.CallExpr:
		return c.analyzeCall(e)

	case *ast.AccessExpr:
		return c.analyzeAccess(e)

	case *ast.IndexExpr:
		c.analyzeExpression(e.Left)
		c.analyzeExpression(e.Index)
		return typetag.New(typetag.Any)

	case *ast.LambdaExpr:
		return c.analyzeLambda(e)

	case *ast.ObjectInitExpr:
		return c.analyzeObjectInit(e)

	case *ast.MatchExpr:
		c.analyzeExpression(e.Scrutinee)
		for _, arm := range e.Arms {
			for _, cond := range arm.Conds {
				c.analyzeExpression(cond)
			}
			if arm.Value != nil {
				c.analyzeExpression(arm.Value)
			}
			for _, stmt := range arm.Body {
				c.analyzeStatement(stmt)
			}
		}
		return typetag.New(typetag.Any)

	case *ast.OpaqueExpr:
		for _, ch := range e.Children {
			c.analyzeExpression(ch)
		}
		return typetag.New(typetag.Any)
	}
	return typetag.New(typetag.Any)
}

func (c *Chunk) analyzeTagInit(e *ast.TagInitExpr) typetag.Type {
	tagTypeID := c.driver.VM.EnsureTagType(c.internName(e.Type.Name))
	litSymID := c.driver.VM.EnsureTagLitSym(c.internName(e.Member.Name))
	c.driver.VM.SetTagLitSym(tagTypeID, litSymID, 0)
	return typetag.TagValue(byte(tagTypeID))
}

func (c *Chunk) internName(s string) ids.NameID { return c.driver.Names.Intern(s) }

// analyzeBinary implements operator typing: arithmetic ops on two
// integer-shaped operands propagate CanRequestInteger; comparisons
// yield boolean; `and`/`or` yield the common tag of both sides.
func (c *Chunk) analyzeBinary(e *ast.BinaryExpr) typetag.Type {
	lt := c.analyzeExpression(e.Left)
	rt := c.analyzeExpression(e.Right)

	switch e.Op {
	case "and", "or":
		return typetag.Common(lt, rt)
	case "==", "!=", "<", ">", "<=", ">=":
		if e.Op == "<" {
			e.SemaCanRequestIntegerOperands = lt.IsNumberOrRequestInteger() && rt.IsNumberOrRequestInteger()
		}
		return typetag.New(typetag.Boolean)
	default: // arithmetic / bitwise
		if lt.IsNumberOrRequestInteger() && rt.IsNumberOrRequestInteger() {
			return typetag.NumberOrRequestInteger()
		}
		return typetag.New(typetag.Number)
	}
}

func (c *Chunk) analyzeUnary(e *ast.UnaryExpr) typetag.Type {
	t := c.analyzeExpression(e.Operand)
	if e.Op == "not" {
		return typetag.New(typetag.Boolean)
	}
	return t
}

// analyzeIdentifierRead resolves a bare name read against locals first,
// then the sym table; it fills Identifier.Resolved so codegen knows
// which arena the reference lives in.
func (c *Chunk) analyzeIdentifierRead(id *ast.Identifier) typetag.Type {
	name := c.internName(id.Name)

	if c.CurInitializerSym != ids.NoSym {
		if _, _, found := c.findInAncestorBlocks(name); found {
			panic(&canNotUseLocal{LocalName: id.Name})
		}
	}

	if varID, ok := c.getOrLookupVar(name, lookupRead, id.Token); ok {
		id.VarID = varID
		return c.LocalVar(varID).VType
	}

	symID := c.Syms.GetOrCreate(ids.NoSym, name, ids.NoFuncSig)
	c.Syms.MarkUsed(symID)
	id.SymID = symID
	if c.CurInitializerSym != ids.NoSym {
		c.Init.RecordDep(symID)
	}

	// Every resolved variant yields `any` as a bare reference; callers
	// that need the func-sig return type consult ResolvedFuncSym directly
	// (see analyzeCalleeIdentifier).
	return typetag.New(typetag.Any)
}

func (c *Chunk) analyzeCall(e *ast.CallExpr) typetag.Type {
	if len(e.NamedArgs) > 0 {
		c.report(diagnostics.ErrS303NamedArgsUnsupp, e.Token, "named arguments are not supported in a call")
	}
	for _, a := range e.Args {
		c.analyzeExpression(a)
	}

	switch callee := e.Callee.(type) {
	case *ast.Identifier:
		return c.analyzeCalleeIdentifier(callee, len(e.Args))
	case *ast.AccessExpr:
		return c.analyzeCalleeAccess(callee, len(e.Args))
	default:
		c.analyzeExpression(e.Callee)
		return typetag.New(typetag.Any)
	}
}

// analyzeCalleeIdentifier resolves a call target by (name, arity): the
// local func sig picks out one overload rather than the bare-name sym
// getOrLookupVar/resolveSym would find.
func (c *Chunk) analyzeCalleeIdentifier(id *ast.Identifier, arity int) typetag.Type {
	name := c.internName(id.Name)
	if varID, ok := c.getOrLookupVar(name, lookupRead, id.Token); ok {
		id.VarID = varID
		return typetag.New(typetag.Any)
	}

	elems := make([]ids.SymID, arity+1)
	anySym := c.anySymLocal()
	for i := range elems {
		elems[i] = anySym
	}
	sigID := c.FuncSigs.Intern(elems)
	c.FuncSigs.Get(sigID).Resolved = c.driver.ResolvedFuncSigs.InternUntyped(arity)
	symID := c.Syms.GetOrCreate(ids.NoSym, name, sigID)
	c.Syms.MarkUsed(symID)
	id.SymID = symID
	if c.CurInitializerSym != ids.NoSym {
		c.Init.RecordDep(symID)
	}
	return typetag.New(typetag.Any)
}

// anySymLocal returns the local Sym naming the builtin "any" type, used
// to build untyped local func sigs for unannotated calls.
func (c *Chunk) anySymLocal() ids.SymID {
	name := c.internName("any")
	return c.Syms.GetOrCreate(ids.NoSym, name, ids.NoFuncSig)
}

// exprSymID returns the SymID an already-analyzed identifier/access
// expression bound itself to, or NoSym if it resolved to a local var (or
// isn't sym-shaped at all) — the signal callers use to decide whether a
// `.` chain can keep extending through the sym table.
func exprSymID(e ast.Expression) ids.SymID {
	switch v := e.(type) {
	case *ast.Identifier:
		return v.SymID
	case *ast.AccessExpr:
		return v.SymID
	default:
		return ids.NoSym
	}
}

// analyzeCalleeAccess resolves a `left.name(...)` call target: if left's
// chain ends at a sym (a module or object namespace, not a local var),
// the call interns an untyped func-sig of the call's arity and
// creates/touches the child sym (leftSym, name, sig) exactly like a
// bare-name call does against the root sym table. Otherwise this is an
// ordinary value call (a method value stored in a field, say) and the
// callee is just a value expression.
func (c *Chunk) analyzeCalleeAccess(callee *ast.AccessExpr, arity int) typetag.Type {
	c.analyzeExpression(callee.Left)
	leftSym := exprSymID(callee.Left)
	if leftSym == ids.NoSym {
		return typetag.New(typetag.Any)
	}

	name := c.internName(callee.Name.Name)
	elems := make([]ids.SymID, arity+1)
	anySym := c.anySymLocal()
	for i := range elems {
		elems[i] = anySym
	}
	sigID := c.FuncSigs.Intern(elems)
	c.FuncSigs.Get(sigID).Resolved = c.driver.ResolvedFuncSigs.InternUntyped(arity)
	symID := c.Syms.GetOrCreate(leftSym, name, sigID)
	c.Syms.MarkUsed(symID)
	callee.SymID = symID
	if c.CurInitializerSym != ids.NoSym {
		c.Init.RecordDep(symID)
	}
	return typetag.New(typetag.Any)
}

// analyzeAccess resolves a plain (non-call) member access `left.name`:
// same sym-chain rule as a call, but with no func-sig (a variable/module
// member reference rather than a function reference).
func (c *Chunk) analyzeAccess(e *ast.AccessExpr) typetag.Type {
	c.analyzeExpression(e.Left)
	leftSym := exprSymID(e.Left)
	if leftSym == ids.NoSym {
		return typetag.New(typetag.Any)
	}

	name := c.internName(e.Name.Name)
	symID := c.Syms.GetOrCreate(leftSym, name, ids.NoFuncSig)
	c.Syms.MarkUsed(symID)
	e.SymID = symID
	if c.CurInitializerSym != ids.NoSym {
		c.Init.RecordDep(symID)
	}
	return typetag.New(typetag.Any)
}

func (c *Chunk) analyzeLambda(e *ast.LambdaExpr) typetag.Type {
	parent := c.curBlock().ID
	blockID := c.pushBlock(parent, ids.NoNode, false)
	e.SemaBlockID = blockID
	c.Block(blockID).InferRetType = true

	for _, p := range e.Params {
		pt := c.paramType(p)
		c.declareParam(c.internName(p.Name), pt)
	}

	for _, stmt := range e.Body {
		c.analyzeStatement(stmt)
	}

	c.endBlock()
	e.RFuncSigID = c.driver.ResolvedFuncSigs.InternUntyped(len(e.Params))
	return typetag.New(typetag.Any)
}

func (c *Chunk) paramType(p *ast.Param) typetag.Type {
	return c.typeTagFromName(p.TypeName)
}

// typeTagFromName maps a declared type annotation string (param or
// return position) to the coarse Type it denotes, "" meaning unannotated.
func (c *Chunk) typeTagFromName(name string) typetag.Type {
	if name == "" {
		return typetag.New(typetag.Any)
	}
	if rid, ok := c.driver.BuiltinTypeSym(name); ok {
		return typetag.New(tagForBuiltinTypeSym(c.driver, rid, name))
	}
	return typetag.New(typetag.Any)
}

func tagForBuiltinTypeSym(d *Driver, sym ids.ResolvedSymID, name string) typetag.Tag {
	_ = d
	_ = sym
	switch name {
	case "boolean":
		return typetag.Boolean
	case "number":
		return typetag.Number
	case "int":
		return typetag.Int
	case "list":
		return typetag.List
	case "map":
		return typetag.Map
	case "fiber":
		return typetag.Fiber
	case "string":
		return typetag.String
	case "staticString":
		return typetag.StaticString
	case "box":
		return typetag.Box
	case "tag":
		return typetag.TagType
	case "tagLiteral":
		return typetag.TagLiteral
	case "undefined":
		return typetag.Undefined
	default:
		return typetag.Any
	}
}

func (c *Chunk) analyzeObjectInit(e *ast.ObjectInitExpr) typetag.Type {
	for _, v := range e.Values {
		c.analyzeExpression(v)
	}
	name := c.internName(e.Type.Name)
	symID := c.Syms.GetOrCreate(ids.NoSym, name, ids.NoFuncSig)
	c.Syms.MarkUsed(symID)
	e.SymID = symID
	return typetag.New(typetag.Any)
}
