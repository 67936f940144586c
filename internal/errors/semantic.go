package errors

import (
	"fmt"

	"github.com/monsieurbadia/zhoo/internal/span"
)

// pluralArgument returns "argument" or "arguments" depending on n,
// matching spec.md §4.5's pluralization rule.
func pluralArgument(n int) string {
	if n == 1 {
		return "argument"
	}
	return "arguments"
}

// ArgumentsMismatch: a call's argument count does not match the callee's
// prototype.
type ArgumentsMismatch struct {
	Span       span.Span
	Inputs     string // formatted parameter type list, e.g. "int, bool"
	ExpectedN  int
	ActualN    int
	ShouldBe   string // literal "should be" rendering, e.g. "f(int, bool)"
}

func (e ArgumentsMismatch) Category() int { return CategorySemantic }

func (e ArgumentsMismatch) Render() Rendered {
	return Rendered{
		Severity: SeverityError,
		Code:     Code(CategorySemantic, 1),
		Title:    "arguments mismatch",
		Labels: []Label{{
			Span:    e.Span,
			Message: fmt.Sprintf("expected %d %s, got %d", e.ExpectedN, pluralArgument(e.ExpectedN), e.ActualN),
			Color:   ColorError,
		}},
		Notes: []string{fmt.Sprintf("the call's inputs are `%s`", e.Inputs)},
		Hints: []string{fmt.Sprintf("call should be `%s`", e.ShouldBe)},
	}
}

// FunctionNotFound: a call site names a function with no binding.
type FunctionNotFound struct {
	Span span.Span
	Name string
}

func (e FunctionNotFound) Category() int { return CategorySemantic }

func (e FunctionNotFound) Render() Rendered {
	return Rendered{
		Severity: SeverityError,
		Code:     Code(CategorySemantic, 2),
		Title:    "function not found",
		Labels: []Label{{
			Span:    e.Span,
			Message: fmt.Sprintf("no function named `%s` is in scope", e.Name),
			Color:   ColorError,
		}},
	}
}

// IdentifierNotFound: a value name has no binding in scope.
type IdentifierNotFound struct {
	Span span.Span
	Name string
}

func (e IdentifierNotFound) Category() int { return CategorySemantic }

func (e IdentifierNotFound) Render() Rendered {
	return Rendered{
		Severity: SeverityError,
		Code:     Code(CategorySemantic, 3),
		Title:    "identifier not found",
		Labels: []Label{{
			Span:    e.Span,
			Message: fmt.Sprintf("`%s` is not defined", e.Name),
			Color:   ColorError,
		}},
	}
}

// InvalidIndex: an array index expression did not type to int.
type InvalidIndex struct {
	Span   span.Span
	TyName string
}

func (e InvalidIndex) Category() int { return CategorySemantic }

func (e InvalidIndex) Render() Rendered {
	return Rendered{
		Severity: SeverityError,
		Code:     Code(CategorySemantic, 4),
		Title:    "invalid index",
		Labels: []Label{{
			Span:    e.Span,
			Message: fmt.Sprintf("expected `int`, got `%s`", e.TyName),
			Color:   ColorError,
		}},
		Notes: []string{"array indices must be integers"},
	}
}

// MainNotFound: no `main` function was declared.
type MainNotFound struct {
	Span     span.Span
	FilePath string
}

func (e MainNotFound) Category() int { return CategorySemantic }

func (e MainNotFound) Render() Rendered {
	return Rendered{
		Severity: SeverityError,
		Code:     Code(CategorySemantic, 5),
		Title:    "main not found",
		Labels: []Label{{
			Span:    e.Span,
			Message: "expected a `main` function in this file",
			Color:   ColorError,
		}},
		Notes: []string{fmt.Sprintf("no `main` function was found in `%s`", e.FilePath)},
		Hints: []string{"add `fun main() { ... }`"},
	}
}

// MainHasInputs: `main` was declared with one or more parameters.
type MainHasInputs struct {
	Span   span.Span
	Inputs string // formatted input type list, e.g. "int"
}

func (e MainHasInputs) Category() int { return CategorySemantic }

func (e MainHasInputs) Render() Rendered {
	return Rendered{
		Severity: SeverityError,
		Code:     Code(CategorySemantic, 6),
		Title:    "main has inputs",
		Labels: []Label{{
			Span:    e.Span,
			Message: fmt.Sprintf("`main` must take no arguments, found `%s`", e.Inputs),
			Color:   ColorError,
		}},
		Hints: []string{"remove the input list from `main`"},
	}
}

// NameClash: a name was redeclared in the same namespace of the same
// scope.
type NameClash struct {
	Span span.Span
	Name string
}

func (e NameClash) Category() int { return CategorySemantic }

func (e NameClash) Render() Rendered {
	return Rendered{
		Severity: SeverityError,
		Code:     Code(CategorySemantic, 7),
		Title:    "name clash",
		Labels: []Label{{
			Span:    e.Span,
			Message: fmt.Sprintf("`%s` is already declared in this scope", e.Name),
			Color:   ColorError,
		}},
	}
}

// NamingConvention: a declaration's identifier does not follow the
// convention its kind requires. This is the one Semantic kind that is
// non-fatal (Warning) — it accumulates but never aborts the pass.
type NamingConvention struct {
	Span       span.Span
	Rewrite    string // canonical rendering in the expected convention
	Convention string // e.g. "snake case", "pascal case", "screaming snake case"
}

func (e NamingConvention) Category() int { return CategorySemantic }

func (e NamingConvention) Render() Rendered {
	return Rendered{
		Severity: SeverityWarning,
		Code:     Code(CategorySemantic, 8),
		Title:    "naming convention",
		Labels: []Label{{
			Span:    e.Span,
			Message: fmt.Sprintf("this name should follow %s", e.Convention),
			Color:   ColorWarning,
		}},
		Hints: []string{fmt.Sprintf("rename to `%s`", e.Rewrite)},
	}
}

// OutOfLoop: `break`/`continue` used outside any loop body.
type OutOfLoop struct {
	Span    span.Span
	Keyword string
}

func (e OutOfLoop) Category() int { return CategorySemantic }

func (e OutOfLoop) Render() Rendered {
	return Rendered{
		Severity: SeverityError,
		Code:     Code(CategorySemantic, 9),
		Title:    "out of loop",
		Labels: []Label{{
			Span:    e.Span,
			Message: fmt.Sprintf("`%s` used outside of a loop", e.Keyword),
			Color:   ColorError,
		}},
	}
}

// TypeMismatch: two types that were required to unify did not.
type TypeMismatch struct {
	Span     span.Span
	Expected string
	Actual   string
}

func (e TypeMismatch) Category() int { return CategorySemantic }

func (e TypeMismatch) Render() Rendered {
	return Rendered{
		Severity: SeverityError,
		Code:     Code(CategorySemantic, 10),
		Title:    "type mismatch",
		Labels: []Label{{
			Span:    e.Span,
			Message: fmt.Sprintf("expected `%s`, got `%s`", e.Expected, e.Actual),
			Color:   ColorError,
		}},
	}
}
