package astjson

import (
	"testing"

	"github.com/wisplang/wisp/internal/ast"
)

func TestUnmarshalBasicDecl(t *testing.T) {
	src := `{
		"statements": [
			{"kind": "import", "name": "m", "spec": "https://github.com/u/r"},
			{"kind": "varDecl", "name": "x", "rhs": {"kind": "number", "intValue": 1, "isFloat": false}},
			{"kind": "funcDecl", "name": "add", "params": [
				{"name": "a"}, {"name": "b"}
			], "body": [
				{"kind": "return", "expr": {"kind": "binary", "op": "+",
					"left": {"kind": "ident", "name": "a"},
					"right": {"kind": "ident", "name": "b"}}}
			]}
		]
	}`

	prog, err := Unmarshal("t.json", []byte(src))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(prog.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(prog.Statements))
	}

	imp, ok := prog.Statements[0].(*ast.ImportStmt)
	if !ok || imp.Spec != "https://github.com/u/r" || imp.Name.Name != "m" {
		t.Fatalf("unexpected import stmt: %#v", prog.Statements[0])
	}

	v, ok := prog.Statements[1].(*ast.VarDeclStmt)
	if !ok || v.Name.Name != "x" {
		t.Fatalf("unexpected var decl: %#v", prog.Statements[1])
	}
	num, ok := v.RHS.(*ast.NumberLiteral)
	if !ok || num.IntValue != 1 {
		t.Fatalf("unexpected var decl rhs: %#v", v.RHS)
	}

	fn, ok := prog.Statements[2].(*ast.FuncDeclStmt)
	if !ok || fn.Name.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected func decl: %#v", prog.Statements[2])
	}
	ret, ok := fn.Body[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected return stmt, got %#v", fn.Body[0])
	}
	bin, ok := ret.Expr.(*ast.BinaryExpr)
	if !ok || bin.Op != "+" {
		t.Fatalf("unexpected return expr: %#v", ret.Expr)
	}
}

func TestUnmarshalUnknownKindErrors(t *testing.T) {
	_, err := Unmarshal("t.json", []byte(`{"statements": [{"kind": "nonsense"}]}`))
	if err == nil {
		t.Fatalf("expected an error for an unknown statement kind")
	}
}
