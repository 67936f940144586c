package scope_test

import (
	"testing"

	"github.com/monsieurbadia/zhoo/internal/ast"
	"github.com/monsieurbadia/zhoo/internal/scope"
	"github.com/monsieurbadia/zhoo/internal/span"
	"github.com/stretchr/testify/assert"
)

func intTy() *ast.Ty { return ast.NewTy(ast.KInt, span.Zero) }

func TestDeclNotVisibleAfterScopeExits(t *testing.T) {
	m := scope.New()
	m.EnterScope()
	assert.True(t, m.SetDecl("n", intTy()))
	m.ExitScope()

	_, ok := m.Decl("n")
	assert.False(t, ok)
}

func TestSetDeclClashesInSameScope(t *testing.T) {
	m := scope.New()
	assert.True(t, m.SetDecl("n", intTy()))
	assert.False(t, m.SetDecl("n", intTy()))

	got, ok := m.Decl("n")
	assert.True(t, ok)
	assert.Equal(t, intTy(), got)
}

func TestShadowRemoveAndRestoreRoundTrip(t *testing.T) {
	m := scope.New()
	outer := intTy()
	m.SetDecl("n", outer)

	prior, ok := m.RemoveDecl("n")
	assert.True(t, ok)
	assert.Equal(t, outer, prior)

	_, ok = m.Decl("n")
	assert.False(t, ok)

	m.RestoreDecl("n", prior)
	got, ok := m.Decl("n")
	assert.True(t, ok)
	assert.Equal(t, outer, got)
}

func TestGlobalScopeNeverPops(t *testing.T) {
	m := scope.New()
	assert.Equal(t, 1, m.Depth())
	m.ExitScope()
	assert.Equal(t, 1, m.Depth())
}

func TestOuterScopeShadowedByInner(t *testing.T) {
	m := scope.New()
	m.SetDecl("n", ast.NewTy(ast.KInt, span.Zero))
	m.EnterScope()
	m.SetDecl("n", ast.NewTy(ast.KBool, span.Zero))

	got, ok := m.Decl("n")
	assert.True(t, ok)
	assert.Equal(t, ast.KBool, got.Kind)

	m.ExitScope()
	got, ok = m.Decl("n")
	assert.True(t, ok)
	assert.Equal(t, ast.KInt, got.Kind)
}
