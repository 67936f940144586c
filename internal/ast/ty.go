package ast

import (
	"fmt"
	"strings"

	"github.com/monsieurbadia/zhoo/internal/span"
)

// TyKind enumerates the primitive and compound type shapes Zhoo knows
// about. Grounded on original_source/compiler/zhoo-ast/src/ast.rs's
// TyKind enum.
type TyKind int

const (
	KVoid TyKind = iota
	KBool
	KInt
	KReal
	KStr
	KInfer
	KFn
	KArray
	KTuple
)

func (k TyKind) String() string {
	switch k {
	case KVoid:
		return "void"
	case KBool:
		return "bool"
	case KInt:
		return "int"
	case KReal:
		return "real"
	case KStr:
		return "str"
	case KInfer:
		return "infer"
	case KFn:
		return "fn"
	case KArray:
		return "array"
	case KTuple:
		return "tuple"
	}
	return "?"
}

// Ty is a resolved type. Fn carries its parameter and return types, Array
// carries its element type and an optional size, Tuple carries its
// element types.
type Ty struct {
	Kind   TyKind
	Span   span.Span
	Params []*Ty // Fn only
	Ret    *Ty   // Fn only
	Elem   *Ty   // Array only
	Size   *int  // Array only, optional
	Elems  []*Ty // Tuple only
}

func NewTy(kind TyKind, sp span.Span) *Ty {
	return &Ty{Kind: kind, Span: sp}
}

func NewFnTy(params []*Ty, ret *Ty, sp span.Span) *Ty {
	return &Ty{Kind: KFn, Span: sp, Params: params, Ret: ret}
}

func NewArrayTy(elem *Ty, size *int, sp span.Span) *Ty {
	return &Ty{Kind: KArray, Span: sp, Elem: elem, Size: size}
}

func NewTupleTy(elems []*Ty, sp span.Span) *Ty {
	return &Ty{Kind: KTuple, Span: sp, Elems: elems}
}

// Equal implements the TyKind equality spec.md documents, which differs
// from naive structural equality in two deliberate ways: Array equality
// ignores the element count, and Fn equality only compares the return
// type (parameter lists are not compared). This mirrors the exact truth
// table in spec.md §8 rather than a mechanically derived comparison.
func (t *Ty) Equal(other *Ty) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind == KInfer || other.Kind == KInfer {
		return true
	}
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KFn:
		return t.Ret.Equal(other.Ret)
	case KArray:
		return t.Elem.Equal(other.Elem)
	case KTuple:
		if len(t.Elems) != len(other.Elems) {
			return false
		}
		for i := range t.Elems {
			if !t.Elems[i].Equal(other.Elems[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func (t *Ty) String() string {
	if t == nil {
		return "?"
	}
	switch t.Kind {
	case KFn:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		return fmt.Sprintf("fn(%s): %s", strings.Join(parts, ", "), t.Ret.String())
	case KArray:
		if t.Size != nil {
			return fmt.Sprintf("[%s; %d]", t.Elem.String(), *t.Size)
		}
		return fmt.Sprintf("[%s]", t.Elem.String())
	case KTuple:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = e.String()
		}
		return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
	default:
		return t.Kind.String()
	}
}

// FormattedInputs renders a parameter type list the way diagnostics
// expect it, e.g. "int, bool".
func FormattedInputs(tys []*Ty) string {
	parts := make([]string, len(tys))
	for i, t := range tys {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}
