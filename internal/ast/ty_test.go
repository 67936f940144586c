package ast_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/monsieurbadia/zhoo/internal/ast"
	"github.com/monsieurbadia/zhoo/internal/span"
	"github.com/stretchr/testify/assert"
)

func ty(k ast.TyKind) *ast.Ty { return ast.NewTy(k, span.Zero) }

func TestScalarEquality(t *testing.T) {
	assert.True(t, ty(ast.KInt).Equal(ty(ast.KInt)))
	assert.False(t, ty(ast.KInt).Equal(ty(ast.KReal)))
}

func TestArrayEqualityIgnoresSize(t *testing.T) {
	three := 3
	a := ast.NewArrayTy(ty(ast.KInt), &three, span.Zero)
	b := ast.NewArrayTy(ty(ast.KInt), nil, span.Zero)
	assert.True(t, a.Equal(b))
}

func TestFnEqualityOnlyComparesReturnType(t *testing.T) {
	a := ast.NewFnTy([]*ast.Ty{ty(ast.KInt)}, ty(ast.KInt), span.Zero)
	b := ast.NewFnTy([]*ast.Ty{ty(ast.KReal)}, ty(ast.KInt), span.Zero)
	assert.True(t, a.Equal(b))

	c := ast.NewFnTy([]*ast.Ty{ty(ast.KInt)}, ty(ast.KBool), span.Zero)
	assert.False(t, a.Equal(c))
}

func TestTupleEqualityIsElementwise(t *testing.T) {
	a := ast.NewTupleTy([]*ast.Ty{ty(ast.KInt), ty(ast.KBool)}, span.Zero)
	b := ast.NewTupleTy([]*ast.Ty{ty(ast.KInt)}, span.Zero)
	assert.False(t, a.Equal(b))

	c := ast.NewTupleTy([]*ast.Ty{ty(ast.KInt), ty(ast.KBool)}, span.Zero)
	assert.True(t, a.Equal(c))
}

func TestInferIsAUnificationWildcard(t *testing.T) {
	assert.True(t, ty(ast.KInfer).Equal(ty(ast.KBool)))
	assert.True(t, ty(ast.KStr).Equal(ty(ast.KInfer)))
}

// TestStructuralDiff demonstrates the go-cmp usage SPEC_FULL.md's
// ambient test-tooling section calls for when asserting on whole Ty
// trees rather than just the Equal() truth table (cmp calls Ty's own
// Equal method when it compares two *Ty values, so the diff follows the
// same truth table).
func TestStructuralDiff(t *testing.T) {
	a := ast.NewArrayTy(ty(ast.KInt), nil, span.Zero)
	b := ast.NewArrayTy(ty(ast.KInt), nil, span.Zero)

	diff := cmp.Diff(a, b, cmpopts.IgnoreFields(ast.Ty{}, "Span"))
	assert.Empty(t, diff)
}
