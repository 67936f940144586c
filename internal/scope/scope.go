// Package scope implements the lexical scope stack the type checker
// pushes and pops while walking function bodies: two disjoint namespaces
// per frame (values and functions), with a pinned, never-popped global
// frame at the bottom.
//
// Grounded on original_source/compiler/zhoo-analyzer/src/scope.rs.
package scope

import "github.com/monsieurbadia/zhoo/internal/ast"

// FunSig is a function's signature as recorded in the function
// namespace: its parameter types and its return type.
type FunSig struct {
	Inputs []*ast.Ty
	Output *ast.Ty
}

type frame struct {
	decls map[string]*ast.Ty
	funs  map[string]FunSig
}

func newFrame() *frame {
	return &frame{decls: map[string]*ast.Ty{}, funs: map[string]FunSig{}}
}

// Map is a stack of frames; index 0 is the pinned global frame.
type Map struct {
	frames []*frame
}

// New returns a Map with one (global) frame already pushed.
func New() *Map {
	return &Map{frames: []*frame{newFrame()}}
}

// EnterScope pushes a fresh, empty frame.
func (m *Map) EnterScope() {
	m.frames = append(m.frames, newFrame())
}

// ExitScope pops the innermost frame, unless it is the pinned global
// frame (depth 1), in which case it is a no-op.
func (m *Map) ExitScope() {
	if len(m.frames) > 1 {
		m.frames = m.frames[:len(m.frames)-1]
	}
}

// Depth returns the current stack depth (always >= 1).
func (m *Map) Depth() int {
	return len(m.frames)
}

func (m *Map) top() *frame {
	return m.frames[len(m.frames)-1]
}

// Decl looks up name in the value namespace from innermost to outermost
// frame.
func (m *Map) Decl(name string) (*ast.Ty, bool) {
	for i := len(m.frames) - 1; i >= 0; i-- {
		if t, ok := m.frames[i].decls[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// Fun looks up name in the function namespace from innermost to
// outermost frame.
func (m *Map) Fun(name string) (FunSig, bool) {
	for i := len(m.frames) - 1; i >= 0; i-- {
		if s, ok := m.frames[i].funs[name]; ok {
			return s, true
		}
	}
	return FunSig{}, false
}

// SetDecl inserts name into the innermost frame's value namespace. It
// fails if name already exists in that same frame; shadowing a name
// bound in an outer frame is allowed.
func (m *Map) SetDecl(name string, t *ast.Ty) bool {
	f := m.top()
	if _, exists := f.decls[name]; exists {
		return false
	}
	f.decls[name] = t
	return true
}

// SetFun inserts name into the innermost frame's function namespace,
// subject to the same same-frame-only clash rule as SetDecl.
func (m *Map) SetFun(name string, sig FunSig) bool {
	f := m.top()
	if _, exists := f.funs[name]; exists {
		return false
	}
	f.funs[name] = sig
	return true
}

// RemoveDecl deletes name from the innermost frame that contains it and
// returns the prior binding, implementing the shadow/restore contract
// `let`-in-expression declarations rely on (spec.md §4.1).
func (m *Map) RemoveDecl(name string) (*ast.Ty, bool) {
	for i := len(m.frames) - 1; i >= 0; i-- {
		if t, ok := m.frames[i].decls[name]; ok {
			delete(m.frames[i].decls, name)
			return t, true
		}
	}
	return nil, false
}

// RestoreDecl reinserts a binding previously taken out by RemoveDecl,
// into the innermost frame, which is not necessarily the frame it was
// removed from.
func (m *Map) RestoreDecl(name string, t *ast.Ty) {
	m.top().decls[name] = t
}
