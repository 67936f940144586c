package checker

import (
	"github.com/monsieurbadia/zhoo/internal/builtins"
	"github.com/monsieurbadia/zhoo/internal/scope"
)

// registerBuiltinSignatures preloads the runtime ABI table (spec.md §6)
// into the function namespace so user code can call print/println/etc.
// without an explicit `ext` declaration.
func registerBuiltinSignatures(scopes *scope.Map) {
	for _, b := range builtins.All {
		scopes.SetFun(b.Name, scope.FunSig{Inputs: b.TyList(), Output: b.ReturnTy()})
	}
}
