// Package astjson decodes a tagged-union JSON encoding of an
// *ast.Program into real AST nodes. internal/sema treats parsing as an
// external collaborator's job (see internal/ast's package doc) rather
// than something this module builds a concrete-syntax grammar for, so
// cmd/wispsema feeds it programs through this wire format instead of
// real wisp source text. (internal/loader's tests use their own fake
// parser, not this package.)
//
// The format is plain: every node is a JSON object with a "kind"
// string naming the node kind in camelCase ("assign", "varDecl",
// "exprStmt", ...) and the node's own fields alongside it.
// Unknown or omitted fields default to the node's zero value.
package astjson

import (
	"encoding/json"
	"fmt"

	"github.com/wisplang/wisp/internal/ast"
	"github.com/wisplang/wisp/internal/token"
)

// Unmarshal decodes src (the JSON form described in the package doc)
// into a Program, suitable for use as a loader.ParseFunc: the file
// name is only used to stamp synthetic tokens' File field.
func Unmarshal(file string, src []byte) (*ast.Program, error) {
	var raw struct {
		Statements []json.RawMessage `json:"statements"`
	}
	if err := json.Unmarshal(src, &raw); err != nil {
		return nil, fmt.Errorf("astjson: %w", err)
	}
	prog := &ast.Program{File: file}
	for _, rs := range raw.Statements {
		stmt, err := decodeStmt(file, rs)
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog, nil
}

func tok(file string, line int) token.Token {
	return token.Token{File: file, Line: line, Column: 1, Lexeme: ""}
}

type envelope struct {
	Kind string `json:"kind"`
	Line int    `json:"line"`
}

func ident(file string, s string) *ast.Identifier {
	if s == "" {
		return nil
	}
	return &ast.Identifier{Resolved: ast.NewResolved(), Token: tok(file, 0), Name: s}
}

func decodeStmtList(file string, raws []json.RawMessage) ([]ast.Statement, error) {
	out := make([]ast.Statement, 0, len(raws))
	for _, r := range raws {
		s, err := decodeStmt(file, r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func decodeExprList(file string, raws []json.RawMessage) ([]ast.Expression, error) {
	out := make([]ast.Expression, 0, len(raws))
	for _, r := range raws {
		e, err := decodeExpr(file, r)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func decodeParams(params []struct {
	Name     string `json:"name"`
	TypeName string `json:"typeName"`
}, file string) []*ast.Param {
	out := make([]*ast.Param, len(params))
	for i, p := range params {
		out[i] = &ast.Param{Name: p.Name, TypeName: p.TypeName, Token: tok(file, 0)}
	}
	return out
}

func decodeArms(file string, raws []json.RawMessage) ([]*ast.MatchArm, error) {
	out := make([]*ast.MatchArm, 0, len(raws))
	for _, r := range raws {
		var a struct {
			Conds  []json.RawMessage `json:"conds"`
			IsElse bool              `json:"isElse"`
			Body   []json.RawMessage `json:"body"`
			Value  json.RawMessage   `json:"value"`
		}
		if err := json.Unmarshal(r, &a); err != nil {
			return nil, fmt.Errorf("astjson: match arm: %w", err)
		}
		conds, err := decodeExprList(file, a.Conds)
		if err != nil {
			return nil, err
		}
		body, err := decodeStmtList(file, a.Body)
		if err != nil {
			return nil, err
		}
		arm := &ast.MatchArm{Conds: conds, IsElse: a.IsElse, Body: body}
		if len(a.Value) > 0 {
			v, err := decodeExpr(file, a.Value)
			if err != nil {
				return nil, err
			}
			arm.Value = v
		}
		out = append(out, arm)
	}
	return out, nil
}

func decodeStmt(file string, raw json.RawMessage) (ast.Statement, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("astjson: statement: %w", err)
	}
	t := tok(file, env.Line)

	switch env.Kind {
	case "pass":
		return &ast.PassStmt{Token: t}, nil
	case "break":
		return &ast.BreakStmt{Token: t}, nil
	case "continue":
		return &ast.ContinueStmt{Token: t}, nil
	case "at":
		return &ast.AtStmt{Token: t}, nil

	case "return":
		var n struct {
			Expr json.RawMessage `json:"expr"`
		}
		_ = json.Unmarshal(raw, &n)
		s := &ast.ReturnStmt{Token: t}
		if len(n.Expr) > 0 {
			e, err := decodeExpr(file, n.Expr)
			if err != nil {
				return nil, err
			}
			s.Expr = e
		}
		return s, nil

	case "exprStmt":
		var n struct {
			Expr json.RawMessage `json:"expr"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		e, err := decodeExpr(file, n.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Token: t, Expr: e}, nil

	case "assign", "opAssign":
		var n struct {
			Op  string          `json:"op"`
			LHS json.RawMessage `json:"lhs"`
			RHS json.RawMessage `json:"rhs"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		lhs, err := decodeExpr(file, n.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := decodeExpr(file, n.RHS)
		if err != nil {
			return nil, err
		}
		if env.Kind == "opAssign" {
			return &ast.OpAssignStmt{Token: t, Op: n.Op, LHS: lhs, RHS: rhs}, nil
		}
		return &ast.AssignStmt{Token: t, LHS: lhs, RHS: rhs}, nil

	case "varDecl":
		var n struct {
			Name string          `json:"name"`
			RHS  json.RawMessage `json:"rhs"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		s := &ast.VarDeclStmt{Resolved: ast.NewResolved(), Token: t, Name: ident(file, n.Name)}
		if len(n.RHS) > 0 {
			rhs, err := decodeExpr(file, n.RHS)
			if err != nil {
				return nil, err
			}
			s.RHS = rhs
		}
		return s, nil

	case "captureDecl", "staticDecl":
		var n struct {
			Name string          `json:"name"`
			RHS  json.RawMessage `json:"rhs"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		var rhs ast.Expression
		if len(n.RHS) > 0 {
			var err error
			rhs, err = decodeExpr(file, n.RHS)
			if err != nil {
				return nil, err
			}
		}
		if env.Kind == "captureDecl" {
			return &ast.CaptureDeclStmt{Token: t, Name: ident(file, n.Name), RHS: rhs}, nil
		}
		return &ast.StaticDeclStmt{Token: t, Name: ident(file, n.Name), RHS: rhs}, nil

	case "typeAliasDecl":
		var n struct {
			Name string          `json:"name"`
			RHS  json.RawMessage `json:"rhs"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		rhs, err := decodeExpr(file, n.RHS)
		if err != nil {
			return nil, err
		}
		return &ast.TypeAliasDeclStmt{Token: t, Name: ident(file, n.Name), RHS: rhs}, nil

	case "tagTypeDecl":
		var n struct {
			Name    string   `json:"name"`
			Members []string `json:"members"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		members := make([]*ast.Identifier, len(n.Members))
		for i, m := range n.Members {
			members[i] = ident(file, m)
		}
		return &ast.TagTypeDeclStmt{Resolved: ast.NewResolved(), Token: t, Name: ident(file, n.Name), Members: members}, nil

	case "objectDecl":
		var n struct {
			Name   string   `json:"name"`
			Fields []string `json:"fields"`
			Funcs  []struct {
				Name    string `json:"name"`
				Params  []struct {
					Name     string `json:"name"`
					TypeName string `json:"typeName"`
				} `json:"params"`
				RetType string            `json:"retType"`
				Body    []json.RawMessage `json:"body"`
			} `json:"funcs"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		fields := make([]*ast.Identifier, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = ident(file, f)
		}
		funcs := make([]*ast.ObjectFuncDecl, len(n.Funcs))
		for i, fn := range n.Funcs {
			body, err := decodeStmtList(file, fn.Body)
			if err != nil {
				return nil, err
			}
			funcs[i] = &ast.ObjectFuncDecl{
				Name:    ident(file, fn.Name),
				Params:  decodeParams(fn.Params, file),
				RetType: fn.RetType,
				Body:    body,
			}
		}
		return &ast.ObjectDeclStmt{Resolved: ast.NewResolved(), Token: t, Name: ident(file, n.Name), Fields: fields, Funcs: funcs}, nil

	case "funcDecl":
		var n struct {
			Name   string `json:"name"`
			Params []struct {
				Name     string `json:"name"`
				TypeName string `json:"typeName"`
			} `json:"params"`
			RetType     string            `json:"retType"`
			Body        []json.RawMessage `json:"body"`
			Initializer json.RawMessage   `json:"initializer"`
			Exported    bool              `json:"exported"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		s := &ast.FuncDeclStmt{
			Resolved: ast.NewResolved(), Token: t, Name: ident(file, n.Name),
			Params: decodeParams(n.Params, file), RetType: n.RetType, Exported: n.Exported,
		}
		if len(n.Initializer) > 0 {
			init, err := decodeExpr(file, n.Initializer)
			if err != nil {
				return nil, err
			}
			s.Initializer = init
			return s, nil
		}
		body, err := decodeStmtList(file, n.Body)
		if err != nil {
			return nil, err
		}
		s.Body = body
		return s, nil

	case "if":
		var n struct {
			Cond    json.RawMessage   `json:"cond"`
			Then    []json.RawMessage `json:"then"`
			ElseIfs []struct {
				Cond json.RawMessage   `json:"cond"`
				Body []json.RawMessage `json:"body"`
			} `json:"elseIfs"`
			Else []json.RawMessage `json:"else"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		cond, err := decodeExpr(file, n.Cond)
		if err != nil {
			return nil, err
		}
		then, err := decodeStmtList(file, n.Then)
		if err != nil {
			return nil, err
		}
		s := &ast.IfStmt{Token: t, Cond: cond, Then: then}
		for _, ei := range n.ElseIfs {
			c, err := decodeExpr(file, ei.Cond)
			if err != nil {
				return nil, err
			}
			b, err := decodeStmtList(file, ei.Body)
			if err != nil {
				return nil, err
			}
			s.ElseIfs = append(s.ElseIfs, &ast.ElseIf{Cond: c, Body: b})
		}
		if n.Else != nil {
			elseBody, err := decodeStmtList(file, n.Else)
			if err != nil {
				return nil, err
			}
			s.Else = elseBody
		}
		return s, nil

	case "whileCond":
		var n struct {
			Cond json.RawMessage   `json:"cond"`
			Body []json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		cond, err := decodeExpr(file, n.Cond)
		if err != nil {
			return nil, err
		}
		body, err := decodeStmtList(file, n.Body)
		if err != nil {
			return nil, err
		}
		return &ast.WhileCondStmt{Token: t, Cond: cond, Body: body}, nil

	case "whileInf":
		var n struct {
			Body []json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		body, err := decodeStmtList(file, n.Body)
		if err != nil {
			return nil, err
		}
		return &ast.WhileInfStmt{Token: t, Body: body}, nil

	case "forOpt":
		var n struct {
			Cond json.RawMessage   `json:"cond"`
			As   string            `json:"as"`
			Body []json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		cond, err := decodeExpr(file, n.Cond)
		if err != nil {
			return nil, err
		}
		body, err := decodeStmtList(file, n.Body)
		if err != nil {
			return nil, err
		}
		return &ast.ForOptStmt{Token: t, Cond: cond, As: ident(file, n.As), Body: body}, nil

	case "forIter":
		var n struct {
			Iterable json.RawMessage   `json:"iterable"`
			Value    string            `json:"value"`
			Key      string            `json:"key"`
			Body     []json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		iterable, err := decodeExpr(file, n.Iterable)
		if err != nil {
			return nil, err
		}
		body, err := decodeStmtList(file, n.Body)
		if err != nil {
			return nil, err
		}
		return &ast.ForIterStmt{Token: t, Iterable: iterable, Value: ident(file, n.Value), Key: ident(file, n.Key), Body: body}, nil

	case "forRange":
		var n struct {
			Start json.RawMessage   `json:"start"`
			End   json.RawMessage   `json:"end"`
			Each  string            `json:"each"`
			Body  []json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		start, err := decodeExpr(file, n.Start)
		if err != nil {
			return nil, err
		}
		end, err := decodeExpr(file, n.End)
		if err != nil {
			return nil, err
		}
		body, err := decodeStmtList(file, n.Body)
		if err != nil {
			return nil, err
		}
		return &ast.ForRangeStmt{Token: t, Start: start, End: end, Each: ident(file, n.Each), Body: body}, nil

	case "match":
		var n struct {
			Scrutinee json.RawMessage   `json:"scrutinee"`
			Arms      []json.RawMessage `json:"arms"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		scrutinee, err := decodeExpr(file, n.Scrutinee)
		if err != nil {
			return nil, err
		}
		arms, err := decodeArms(file, n.Arms)
		if err != nil {
			return nil, err
		}
		return &ast.MatchStmt{Token: t, Scrutinee: scrutinee, Arms: arms}, nil

	case "import":
		var n struct {
			Name      string `json:"name"`
			Spec      string `json:"spec"`
			ImportAll bool   `json:"importAll"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		s := &ast.ImportStmt{Token: t, Spec: n.Spec, ImportAll: n.ImportAll}
		if !n.ImportAll {
			s.Name = ident(file, n.Name)
		}
		return s, nil

	case "export":
		var n struct {
			Inner json.RawMessage `json:"inner"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		inner, err := decodeStmt(file, n.Inner)
		if err != nil {
			return nil, err
		}
		return &ast.ExportStmt{Token: t, Inner: inner}, nil

	default:
		return nil, fmt.Errorf("astjson: unknown statement kind %q", env.Kind)
	}
}

func decodeExpr(file string, raw json.RawMessage) (ast.Expression, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("astjson: expression: %w", err)
	}
	t := tok(file, env.Line)

	switch env.Kind {
	case "ident":
		var n struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		return &ast.Identifier{Resolved: ast.NewResolved(), Token: t, Name: n.Name}, nil

	case "number":
		var n struct {
			Base     int     `json:"base"`
			IsFloat  bool    `json:"isFloat"`
			IntValue uint64  `json:"intValue"`
			FltValue float64 `json:"fltValue"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		base := n.Base
		if base == 0 {
			base = 10
		}
		return &ast.NumberLiteral{Token: t, Base: base, IsFloat: n.IsFloat, IntValue: n.IntValue, FltValue: n.FltValue}, nil

	case "bool":
		var n struct {
			Value bool `json:"value"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		return &ast.BoolLiteral{Token: t, Value: n.Value}, nil

	case "string":
		var n struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		return &ast.StringLiteral{Token: t, Value: n.Value}, nil

	case "stringTemplate":
		var n struct {
			Parts []json.RawMessage `json:"parts"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		parts, err := decodeExprList(file, n.Parts)
		if err != nil {
			return nil, err
		}
		return &ast.StringTemplate{Token: t, Parts: parts}, nil

	case "tagInit":
		var n struct {
			Type   string `json:"type"`
			Member string `json:"member"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		return &ast.TagInitExpr{Token: t, Type: ident(file, n.Type), Member: ident(file, n.Member)}, nil

	case "binary":
		var n struct {
			Op    string          `json:"op"`
			Left  json.RawMessage `json:"left"`
			Right json.RawMessage `json:"right"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		left, err := decodeExpr(file, n.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(file, n.Right)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Token: t, Op: n.Op, Left: left, Right: right}, nil

	case "unary":
		var n struct {
			Op      string          `json:"op"`
			Operand json.RawMessage `json:"operand"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		operand, err := decodeExpr(file, n.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Token: t, Op: n.Op, Operand: operand}, nil

	case "call":
		var n struct {
			Callee    json.RawMessage   `json:"callee"`
			Args      []json.RawMessage `json:"args"`
			NamedArgs []struct {
				Name  string          `json:"name"`
				Value json.RawMessage `json:"value"`
			} `json:"namedArgs"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		callee, err := decodeExpr(file, n.Callee)
		if err != nil {
			return nil, err
		}
		args, err := decodeExprList(file, n.Args)
		if err != nil {
			return nil, err
		}
		c := &ast.CallExpr{Token: t, Callee: callee, Args: args}
		for _, na := range n.NamedArgs {
			v, err := decodeExpr(file, na.Value)
			if err != nil {
				return nil, err
			}
			c.NamedArgs = append(c.NamedArgs, &ast.NamedArg{Name: na.Name, Value: v})
		}
		return c, nil

	case "access":
		var n struct {
			Left json.RawMessage `json:"left"`
			Name string          `json:"name"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		left, err := decodeExpr(file, n.Left)
		if err != nil {
			return nil, err
		}
		return &ast.AccessExpr{Resolved: ast.NewResolved(), Token: t, Left: left, Name: ident(file, n.Name)}, nil

	case "index":
		var n struct {
			Left  json.RawMessage `json:"left"`
			Index json.RawMessage `json:"index"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		left, err := decodeExpr(file, n.Left)
		if err != nil {
			return nil, err
		}
		index, err := decodeExpr(file, n.Index)
		if err != nil {
			return nil, err
		}
		return &ast.IndexExpr{Token: t, Left: left, Index: index}, nil

	case "lambda":
		var n struct {
			Params []struct {
				Name     string `json:"name"`
				TypeName string `json:"typeName"`
			} `json:"params"`
			Body []json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		body, err := decodeStmtList(file, n.Body)
		if err != nil {
			return nil, err
		}
		return &ast.LambdaExpr{Resolved: ast.NewResolved(), Token: t, Params: decodeParams(n.Params, file), Body: body}, nil

	case "objectInit":
		var n struct {
			Type   string            `json:"type"`
			Values []json.RawMessage `json:"values"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		values, err := decodeExprList(file, n.Values)
		if err != nil {
			return nil, err
		}
		return &ast.ObjectInitExpr{Resolved: ast.NewResolved(), Token: t, Type: ident(file, n.Type), Values: values}, nil

	case "matchExpr":
		var n struct {
			Scrutinee json.RawMessage   `json:"scrutinee"`
			Arms      []json.RawMessage `json:"arms"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		scrutinee, err := decodeExpr(file, n.Scrutinee)
		if err != nil {
			return nil, err
		}
		arms, err := decodeArms(file, n.Arms)
		if err != nil {
			return nil, err
		}
		return &ast.MatchExpr{Token: t, Scrutinee: scrutinee, Arms: arms}, nil

	case "opaque":
		var n struct {
			OpaqueKind string            `json:"opaqueKind"`
			Children   []json.RawMessage `json:"children"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		children, err := decodeExprList(file, n.Children)
		if err != nil {
			return nil, err
		}
		return &ast.OpaqueExpr{Token: t, Kind: n.OpaqueKind, Children: children}, nil

	default:
		return nil, fmt.Errorf("astjson: unknown expression kind %q", env.Kind)
	}
}
