package checker_test

import (
	"bytes"
	"testing"

	"github.com/monsieurbadia/zhoo/internal/ast"
	"github.com/monsieurbadia/zhoo/internal/checker"
	zerrors "github.com/monsieurbadia/zhoo/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestNamingTopLevelValExpectsScreamingSnake(t *testing.T) {
	stmt := &ast.ValStmt{
		Decl: &ast.Decl{Mutability: ast.MutVal, Pattern: "foo", PatternSpan: sp(4, 7), Value: intLit(0, 11, 12), Span: sp(0, 12)},
		Span: sp(0, 12),
	}
	prog := program(stmt)

	var buf bytes.Buffer
	r := zerrors.NewForTest(&buf)
	checker.CheckNaming(prog, r)

	assert.Contains(t, buf.String(), "naming convention")
}

func TestNamingFunctionExpectsSnakeCase(t *testing.T) {
	stmt := &ast.FunStmt{
		Prototype: &ast.Prototype{Name: "FooBar", NameSpan: sp(4, 10), Output: ast.DefaultReturnTy{}, Span: sp(0, 10)},
		Body:      block(),
		Span:      sp(0, 12),
	}
	prog := program(stmt)

	var buf bytes.Buffer
	r := zerrors.NewForTest(&buf)
	checker.CheckNaming(prog, r)

	assert.Contains(t, buf.String(), "naming convention")
}

func TestNamingTypeAliasExpectsPascalCase(t *testing.T) {
	stmt := &ast.TyAliasStmt{Name: "foo", NameSpan: sp(5, 8), Ty: ast.NewTy(ast.KInt, sp(11, 14)), Span: sp(0, 14)}
	prog := program(stmt)

	var buf bytes.Buffer
	r := zerrors.NewForTest(&buf)
	checker.CheckNaming(prog, r)

	assert.Contains(t, buf.String(), "naming convention")
}

func TestNamingConventionConformantProducesNoWarnings(t *testing.T) {
	stmt := &ast.FunStmt{
		Prototype: &ast.Prototype{Name: "foo_bar", NameSpan: sp(4, 11), Output: ast.DefaultReturnTy{}, Span: sp(0, 11)},
		Body:      block(),
		Span:      sp(0, 13),
	}
	prog := program(stmt)

	var buf bytes.Buffer
	r := zerrors.NewForTest(&buf)
	checker.CheckNaming(prog, r)

	assert.Empty(t, buf.String())
}
