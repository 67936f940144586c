package checker_test

import (
	"bytes"
	"testing"

	"github.com/monsieurbadia/zhoo/internal/ast"
	"github.com/monsieurbadia/zhoo/internal/checker"
	zerrors "github.com/monsieurbadia/zhoo/internal/errors"
	"github.com/monsieurbadia/zhoo/internal/span"
	"github.com/stretchr/testify/assert"
)

// countingReporter wraps a test Reporter (NewForTest, writing to a
// discarded buffer). Its reports field is not filled in; tests assert on
// the embedded Reporter's HasErrors.
type countingReporter struct {
	*zerrors.Reporter
	reports []zerrors.Report
}

func newCountingReporter() *countingReporter {
	return &countingReporter{Reporter: zerrors.NewForTest(&bytes.Buffer{})}
}

func sp(lo, hi uint32) span.Span { return span.New(lo, hi) }

func mainProto(inputs []*ast.Arg) *ast.Prototype {
	return &ast.Prototype{
		Name:     "main",
		NameSpan: sp(0, 4),
		Inputs:   inputs,
		Output:   ast.DefaultReturnTy{Span: sp(0, 0)},
		Span:     sp(0, 4),
	}
}

func block(exprs ...ast.Expr) *ast.Block {
	return &ast.Block{Exprs: exprs, Span: sp(0, 1)}
}

func program(stmts ...ast.Stmt) *ast.Program {
	return &ast.Program{Stmts: stmts, Span: sp(0, 100)}
}

func intLit(v int64, lo, hi uint32) *ast.LitExpr {
	return &ast.LitExpr{Kind: ast.LitInt, Int: v, Span: sp(lo, hi)}
}

func boolLit(v bool, lo, hi uint32) *ast.LitExpr {
	return &ast.LitExpr{Kind: ast.LitBool, Bool: v, Span: sp(lo, hi)}
}

// --- scenario 1 ---------------------------------------------------------

func TestScenario1EmptyMainCompilesClean(t *testing.T) {
	prog := program(&ast.FunStmt{Prototype: mainProto(nil), Body: block(), Span: sp(0, 10)})

	r := newCountingReporter()
	checker.Run(prog, "a.zh", r.Reporter)

	assert.False(t, r.HasErrors())
}

// --- scenario 2: main with inputs ---------------------------------------

func TestScenario2MainHasInputs(t *testing.T) {
	xArg := &ast.Arg{Pattern: "x", PatternSpan: sp(9, 10), Ty: ast.NewTy(ast.KInt, sp(12, 15)), Span: sp(9, 15)}
	prog := program(&ast.FunStmt{Prototype: mainProto([]*ast.Arg{xArg}), Body: block(), Span: sp(0, 20)})

	var buf bytes.Buffer
	r := zerrors.NewForTest(&buf)
	checker.CheckMain(prog, "a.zh", r)

	assert.True(t, r.HasErrors())
}

// --- scenario 3: no main -------------------------------------------------

func TestScenario3NoMain(t *testing.T) {
	prog := program(&ast.FunStmt{
		Prototype: &ast.Prototype{Name: "foo", NameSpan: sp(0, 3), Output: ast.DefaultReturnTy{}, Span: sp(0, 3)},
		Body:      block(),
		Span:      sp(0, 10),
	})

	var buf bytes.Buffer
	r := zerrors.NewForTest(&buf)
	checker.CheckMain(prog, "a.zh", r)

	assert.True(t, r.HasErrors())
}

// --- scenario 4: name clash ----------------------------------------------

func TestScenario4NameClash(t *testing.T) {
	declX1 := &ast.DeclExpr{Decl: &ast.Decl{Mutability: ast.MutVal, Pattern: "X", PatternSpan: sp(1, 2), Value: intLit(1, 3, 4), Span: sp(1, 4)}, Span: sp(1, 4)}
	declX2 := &ast.DeclExpr{Decl: &ast.Decl{Mutability: ast.MutVal, Pattern: "X", PatternSpan: sp(5, 6), Value: intLit(2, 7, 8), Span: sp(5, 8)}, Span: sp(5, 8)}
	prog := program(&ast.FunStmt{Prototype: mainProto(nil), Body: block(declX1, declX2), Span: sp(0, 20)})

	var buf bytes.Buffer
	r := zerrors.NewForTest(&buf)
	tc := checker.NewTypeChecker(r)
	tc.Check(prog)

	assert.True(t, r.HasErrors())
}

// --- scenario 5: if condition must be bool -------------------------------

func TestScenario5IfConditionTypeMismatch(t *testing.T) {
	ifExpr := &ast.IfElseExpr{Cond: intLit(1, 3, 4), Then: block(), Span: sp(0, 10)}
	prog := program(&ast.FunStmt{Prototype: mainProto(nil), Body: block(ifExpr), Span: sp(0, 20)})

	var buf bytes.Buffer
	r := zerrors.NewForTest(&buf)
	tc := checker.NewTypeChecker(r)
	tc.Check(prog)

	assert.True(t, r.HasErrors())
}

// --- scenario 6: break outside loop --------------------------------------

func TestScenario6BreakOutOfLoop(t *testing.T) {
	br := &ast.BreakExpr{Span: sp(0, 7)}
	prog := program(&ast.FunStmt{Prototype: mainProto(nil), Body: block(br), Span: sp(0, 20)})

	var buf bytes.Buffer
	r := zerrors.NewForTest(&buf)
	tc := checker.NewTypeChecker(r)
	tc.Check(prog)

	assert.True(t, r.HasErrors())
}

// --- scenario 7: declared int, initializer bool --------------------------

func TestScenario7DeclaredTypeMismatchesInitializer(t *testing.T) {
	d := &ast.Decl{
		Mutability: ast.MutImu,
		Pattern:    "a",
		PatternSpan: sp(1, 2),
		Ty:         ast.NewTy(ast.KInt, sp(4, 7)),
		Value:      boolLit(true, 9, 13),
		Span:       sp(1, 13),
	}
	declExpr := &ast.DeclExpr{Decl: d, Span: sp(1, 13)}
	prog := program(&ast.FunStmt{Prototype: mainProto(nil), Body: block(declExpr), Span: sp(0, 20)})

	var buf bytes.Buffer
	r := zerrors.NewForTest(&buf)
	tc := checker.NewTypeChecker(r)
	tc.Check(prog)

	assert.True(t, r.HasErrors())
}
