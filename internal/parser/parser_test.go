package parser_test

import (
	"testing"

	"github.com/monsieurbadia/zhoo/internal/ast"
	zerrors "github.com/monsieurbadia/zhoo/internal/errors"
	"github.com/monsieurbadia/zhoo/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOK(t *testing.T, src string) *ast.Program {
	t.Helper()
	r := zerrors.New(nopWriter{})
	r.AddSource("<test>", src)
	p := parser.New(src, 0, r)
	prog := p.ParseProgram()
	require.False(t, r.HasErrors())
	return prog
}

type nopWriter struct{}

func (nopWriter) Write(b []byte) (int, error) { return len(b), nil }

func TestParseEmptyMain(t *testing.T) {
	prog := parseOK(t, "fun main() {}")
	require.Len(t, prog.Stmts, 1)
	fn, ok := prog.Stmts[0].(*ast.FunStmt)
	require.True(t, ok)
	assert.Equal(t, "main", fn.Prototype.Name)
	assert.Empty(t, fn.Body.Exprs)
}

func TestParseMainWithTypedInput(t *testing.T) {
	prog := parseOK(t, "fun main(x: int) {}")
	fn := prog.Stmts[0].(*ast.FunStmt)
	require.Len(t, fn.Prototype.Inputs, 1)
	assert.Equal(t, "x", fn.Prototype.Inputs[0].Pattern)
	assert.Equal(t, ast.KInt, fn.Prototype.Inputs[0].Ty.Kind)
}

func TestParseDeclAssignForms(t *testing.T) {
	prog := parseOK(t, "fun main() { val X := 1; val mut i: int = 0; }")
	fn := prog.Stmts[0].(*ast.FunStmt)
	require.Len(t, fn.Body.Exprs, 2)

	first := fn.Body.Exprs[0].(*ast.DeclExpr)
	assert.Equal(t, "X", first.Decl.Pattern)
	assert.Equal(t, ast.MutImu, first.Decl.Mutability)

	second := fn.Body.Exprs[1].(*ast.DeclExpr)
	assert.Equal(t, "i", second.Decl.Pattern)
	assert.Equal(t, ast.MutMut, second.Decl.Mutability)
	require.NotNil(t, second.Decl.Ty)
	assert.Equal(t, ast.KInt, second.Decl.Ty.Kind)
}

func TestParseWhileLoopAndAssign(t *testing.T) {
	prog := parseOK(t, `fun main(): int {
		val mut i: int = 0;
		while i < 3 {
			printiln(i);
			i = i + 1;
		}
		return 0;
	}`)
	fn := prog.Stmts[0].(*ast.FunStmt)
	require.Len(t, fn.Body.Exprs, 3)
	while := fn.Body.Exprs[1].(*ast.WhileExpr)
	cond := while.Cond.(*ast.BinOpExpr)
	assert.Equal(t, ast.BinLt, cond.Op)
	require.Len(t, while.Body.Exprs, 2)
	assign := while.Body.Exprs[1].(*ast.AssignExpr)
	_, isIdent := assign.Target.(*ast.IdentExpr)
	assert.True(t, isIdent)
}

func TestParseIfElseAndCall(t *testing.T) {
	prog := parseOK(t, `fun main(): int {
		if 2 > 1 { println("y"); } else { println("n"); }
		return 0;
	}`)
	fn := prog.Stmts[0].(*ast.FunStmt)
	ifElse := fn.Body.Exprs[0].(*ast.IfElseExpr)
	require.NotNil(t, ifElse.Else)
	call := ifElse.Then.Exprs[0].(*ast.CallExpr)
	assert.Equal(t, "println", call.Callee)
	require.Len(t, call.Args, 1)
	lit := call.Args[0].(*ast.LitExpr)
	assert.Equal(t, ast.LitStr, lit.Kind)
	assert.Equal(t, "y", lit.Str)
}

func TestParseBinaryPrecedence(t *testing.T) {
	prog := parseOK(t, "fun main() { val mut r := 3 + 4 * 2; }")
	fn := prog.Stmts[0].(*ast.FunStmt)
	decl := fn.Body.Exprs[0].(*ast.DeclExpr)
	top := decl.Decl.Value.(*ast.BinOpExpr)
	assert.Equal(t, ast.BinAdd, top.Op)
	_, lhsIsLit := top.Lhs.(*ast.LitExpr)
	assert.True(t, lhsIsLit)
	rhs := top.Rhs.(*ast.BinOpExpr)
	assert.Equal(t, ast.BinMul, rhs.Op)
}

func TestParseArrayAndTuple(t *testing.T) {
	prog := parseOK(t, "fun main() { val a := [1, 2, 3]; val t := (1, true); val first := t.0; }")
	fn := prog.Stmts[0].(*ast.FunStmt)
	arr := fn.Body.Exprs[0].(*ast.DeclExpr).Decl.Value.(*ast.ArrayExpr)
	assert.Len(t, arr.Elems, 3)
	tup := fn.Body.Exprs[1].(*ast.DeclExpr).Decl.Value.(*ast.TupleExpr)
	assert.Len(t, tup.Elems, 2)
	access := fn.Body.Exprs[2].(*ast.DeclExpr).Decl.Value.(*ast.TupleAccessExpr)
	assert.Equal(t, 0, access.Index)
}

func TestParseWhenTernary(t *testing.T) {
	prog := parseOK(t, "fun main() { val v := when true ? 1 : 2; }")
	fn := prog.Stmts[0].(*ast.FunStmt)
	when := fn.Body.Exprs[0].(*ast.DeclExpr).Decl.Value.(*ast.WhenExpr)
	assert.NotNil(t, when.Cond)
	assert.NotNil(t, when.A)
	assert.NotNil(t, when.B)
}

func TestParseExtAndTyAlias(t *testing.T) {
	prog := parseOK(t, "ext foo(x: int): int; type MyInt = int;")
	require.Len(t, prog.Stmts, 2)
	_, isExt := prog.Stmts[0].(*ast.ExtStmt)
	assert.True(t, isExt)
	alias := prog.Stmts[1].(*ast.TyAliasStmt)
	assert.Equal(t, "MyInt", alias.Name)
	assert.Equal(t, ast.KInt, alias.Ty.Kind)
}
