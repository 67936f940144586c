// Package ir is a hand-written realization of the retargetable low-level
// IR spec.md §4.6 assumes as an external collaborator (basic blocks,
// typed SSA values, block parameters, module-level data symbols, and the
// named terminators/instructions spec.md enumerates). No package in
// the retrieved reference corpus wraps an equivalent native-codegen
// library (see DESIGN.md "Unwired/unbuildable contracts"), so this
// package implements exactly the subset of that contract
// internal/codegen exercises, shaped directly off the operations
// original_source/compiler/zhoo-codegen-cranelift/src/{codegen,translator}.rs
// call on the real `cranelift-frontend`/`cranelift-codegen` crates.
package ir

import "fmt"

// Ty is one of the four machine types spec.md §4.6 lists.
type Ty int

const (
	TyI64 Ty = iota
	TyB1
	TyF64
	TyPtr
)

func (t Ty) String() string {
	switch t {
	case TyI64:
		return "i64"
	case TyB1:
		return "b1"
	case TyF64:
		return "f64"
	case TyPtr:
		return "ptr"
	}
	return "?"
}

// Value is an opaque SSA value handle, numbered in allocation order
// across one Function's instruction results and block parameters.
type Value int

// Var is a local-variable handle a Function builder tracks def/use
// chains for (declare_var/def_var/use_var in the assumed contract).
type Var int

// BlockId identifies one basic block within a Function.
type BlockId int

// FuncId identifies a declared or defined function within a Module.
type FuncId int

// DataId identifies one module-level data symbol.
type DataId int

// Linkage mirrors the two linkages spec.md's codegen section actually
// uses: Export for user/runtime functions called across the module
// boundary, Local for interned string data.
type Linkage int

const (
	LinkageExport Linkage = iota
	LinkageLocal
)

// FuncSig is a function's parameter and return types, by machine Ty —
// already mapped from source Ty via the table in spec.md §4.6.
type FuncSig struct {
	Params []Ty
	Ret    Ty
}

func (s FuncSig) String() string {
	return fmt.Sprintf("(%v) -> %v", s.Params, s.Ret)
}
