package errors

import (
	"fmt"

	"github.com/monsieurbadia/zhoo/internal/span"
)

// Syntax reports belong to the parser. internal/parser raises
// UnrecognizedEOF and UnrecognizedToken; the other kinds here are not
// produced by it.

type InvalidToken struct {
	Span span.Span
}

func (e InvalidToken) Category() int { return CategorySyntax }

func (e InvalidToken) Render() Rendered {
	return Rendered{
		Severity: SeverityError,
		Code:     Code(CategorySyntax, 1),
		Title:    "invalid token",
		Labels:   []Label{{Span: e.Span, Message: "this token is not valid here", Color: ColorError}},
	}
}

type UnrecognizedEOF struct {
	Span     span.Span
	Expected []string
}

func (e UnrecognizedEOF) Category() int { return CategorySyntax }

func (e UnrecognizedEOF) Render() Rendered {
	return Rendered{
		Severity: SeverityError,
		Code:     Code(CategorySyntax, 2),
		Title:    "unrecognized eof",
		Labels:   []Label{{Span: e.Span, Message: fmt.Sprintf("expected one of %v", e.Expected), Color: ColorError}},
	}
}

type UnrecognizedToken struct {
	Span     span.Span
	Expected []string
}

func (e UnrecognizedToken) Category() int { return CategorySyntax }

func (e UnrecognizedToken) Render() Rendered {
	return Rendered{
		Severity: SeverityError,
		Code:     Code(CategorySyntax, 3),
		Title:    "unrecognized token",
		Labels:   []Label{{Span: e.Span, Message: fmt.Sprintf("expected one of %v", e.Expected), Color: ColorError}},
	}
}

type ExtraToken struct {
	Span  span.Span
	Token string
}

func (e ExtraToken) Category() int { return CategorySyntax }

func (e ExtraToken) Render() Rendered {
	return Rendered{
		Severity: SeverityError,
		Code:     Code(CategorySyntax, 4),
		Title:    "extra token",
		Labels:   []Label{{Span: e.Span, Message: fmt.Sprintf("unexpected `%s`", e.Token), Color: ColorError}},
	}
}

type UserSyntax struct {
	Span    span.Span
	Message string
}

func (e UserSyntax) Category() int { return CategorySyntax }

func (e UserSyntax) Render() Rendered {
	return Rendered{
		Severity: SeverityError,
		Code:     Code(CategorySyntax, 5),
		Title:    "syntax error",
		Labels:   []Label{{Span: e.Span, Message: e.Message, Color: ColorError}},
	}
}
