// Package builtins holds the fixed runtime ABI table the checker
// preloads into the function namespace and codegen declares with
// external linkage before walking user code.
//
// Grounded on original_source/compiler/zhoo-codegen-cranelift/src/codegen.rs
// (register_builtin/register_builtins/register_builtin_c) and the ABI
// table in spec.md §6.
package builtins

import (
	"github.com/monsieurbadia/zhoo/internal/ast"
	"github.com/monsieurbadia/zhoo/internal/span"
)

// Signature is a builtin's parameter and return types.
type Signature struct {
	Name   string
	Inputs []ast.TyKind
	Output ast.TyKind
}

// All is the runtime ABI table spec.md §6 defines: print/println take a
// str, printi/printiln an int, printr/printrln a real, exit an int, and
// malloc/free are C-runtime shims with pointer-as-integer signatures.
var All = []Signature{
	{Name: "print", Inputs: []ast.TyKind{ast.KStr}, Output: ast.KVoid},
	{Name: "println", Inputs: []ast.TyKind{ast.KStr}, Output: ast.KVoid},
	{Name: "printi", Inputs: []ast.TyKind{ast.KInt}, Output: ast.KVoid},
	{Name: "printiln", Inputs: []ast.TyKind{ast.KInt}, Output: ast.KVoid},
	{Name: "printr", Inputs: []ast.TyKind{ast.KReal}, Output: ast.KVoid},
	{Name: "printrln", Inputs: []ast.TyKind{ast.KReal}, Output: ast.KVoid},
	{Name: "exit", Inputs: []ast.TyKind{ast.KInt}, Output: ast.KVoid},
	{Name: "malloc", Inputs: []ast.TyKind{ast.KInt}, Output: ast.KInt},
	{Name: "free", Inputs: []ast.TyKind{ast.KInt}, Output: ast.KVoid},
}

// Lookup finds a builtin signature by name.
func Lookup(name string) (Signature, bool) {
	for _, s := range All {
		if s.Name == name {
			return s, true
		}
	}
	return Signature{}, false
}

// TyList materializes a signature's input kinds as zero-span Ty nodes,
// for registering into the scope map's function namespace.
func (s Signature) TyList() []*ast.Ty {
	tys := make([]*ast.Ty, len(s.Inputs))
	for i, k := range s.Inputs {
		tys[i] = ast.NewTy(k, span.Zero)
	}
	return tys
}

// ReturnTy materializes the output kind as a zero-span Ty node.
func (s Signature) ReturnTy() *ast.Ty {
	return ast.NewTy(s.Output, span.Zero)
}
