package errors

import (
	"fmt"

	"github.com/monsieurbadia/zhoo/internal/span"
)

// Generate reports are raised by the lowering/codegen pass. Reaching
// codegen implies the semantic passes already succeeded, so these are
// fatal (Raise, not AddReport) almost everywhere they are constructed,
// per spec.md §7.

type CallFunctionNotFound struct {
	Span span.Span
	Name string
}

func (e CallFunctionNotFound) Category() int { return CategoryGenerate }

func (e CallFunctionNotFound) Render() Rendered {
	return Rendered{
		Severity: SeverityError,
		Code:     Code(CategoryGenerate, 1),
		Title:    "call function not found",
		Labels:   []Label{{Span: e.Span, Message: fmt.Sprintf("no function `%s` to call", e.Name), Color: ColorError}},
	}
}

// GenIdentifierNotFound mirrors spec.md's Generate.IdentifierNotFound,
// which (per §4.5) carries only a name, not a span.
type GenIdentifierNotFound struct {
	Name string
}

func (e GenIdentifierNotFound) Category() int { return CategoryGenerate }

func (e GenIdentifierNotFound) Render() Rendered {
	return Rendered{
		Severity: SeverityError,
		Code:     Code(CategoryGenerate, 2),
		Title:    "identifier not found",
		Notes:    []string{fmt.Sprintf("no binding for `%s` survived to codegen", e.Name)},
	}
}

type InvalidBinOp struct {
	Span     span.Span
	Lhs, Rhs string
}

func (e InvalidBinOp) Category() int { return CategoryGenerate }

func (e InvalidBinOp) Render() Rendered {
	return Rendered{
		Severity: SeverityError,
		Code:     Code(CategoryGenerate, 3),
		Title:    "invalid binary operation",
		Labels:   []Label{{Span: e.Span, Message: fmt.Sprintf("cannot apply this operator to `%s` and `%s`", e.Lhs, e.Rhs), Color: ColorError}},
	}
}

// FunctionRedefinition mirrors codegen.rs's generate_prototype errors:
// a function already declared with a body, or re-declared with a
// different input count, is a fatal codegen-time inconsistency (the
// type checker does not itself track per-function definedness).
type FunctionRedefinition struct {
	Span span.Span
	Name string
}

func (e FunctionRedefinition) Category() int { return CategoryGenerate }

func (e FunctionRedefinition) Render() Rendered {
	return Rendered{
		Severity: SeverityError,
		Code:     Code(CategoryGenerate, 5),
		Title:    "function redefinition",
		Labels:   []Label{{Span: e.Span, Message: fmt.Sprintf("redefinition of function `%s`", e.Name), Color: ColorError}},
	}
}

// Unsupported is raised when lowering reaches an AST shape spec.md §9
// carries for the checker/pretty-printer but never asks codegen to lower
// (lambdas, tuples, array indexing, range expressions) on a tree that
// nonetheless passed type-checking.
type Unsupported struct {
	Span      span.Span
	Construct string
}

func (e Unsupported) Category() int { return CategoryGenerate }

func (e Unsupported) Render() Rendered {
	return Rendered{
		Severity: SeverityError,
		Code:     Code(CategoryGenerate, 6),
		Title:    "unsupported construct",
		Labels:   []Label{{Span: e.Span, Message: fmt.Sprintf("%s is not lowered by this backend", e.Construct), Color: ColorError}},
	}
}

// GenArgumentsMismatch mirrors spec.md's Generate.ArgumentsMismatch,
// which (per §4.5) carries only a span — a defensive codegen-time check
// that should be unreachable once the type checker has passed.
type GenArgumentsMismatch struct {
	Span span.Span
}

func (e GenArgumentsMismatch) Category() int { return CategoryGenerate }

func (e GenArgumentsMismatch) Render() Rendered {
	return Rendered{
		Severity: SeverityError,
		Code:     Code(CategoryGenerate, 4),
		Title:    "arguments mismatch",
		Labels:   []Label{{Span: e.Span, Message: "call arity disagrees with the declared prototype", Color: ColorError}},
		Notes:    []string{"this should have been caught by the type checker"},
	}
}
