// Package errors implements the diagnostic reporter: a structured,
// accumulate-then-render-or-abort diagnostic model with severities,
// spans, labels, notes, and hints.
//
// Grounded on original_source/compiler/zhoo-errors/src/report.rs (the
// Report/Reporter shape and abort policy), zhoo-util/src/color.rs (the
// fixed semantic palette), and zhoo-util/src/error/{semantic,generate}.rs
// plus zhoo/src/util/error/semantic.rs (the exact diagnostic catalogue
// and message text this package's Semantic/Generate/Syntax kinds render).
package errors

import "github.com/monsieurbadia/zhoo/internal/span"

// Severity is the diagnostic's rendered level.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Label is one inline annotation: a span, its message, and the semantic
// color it should render in.
type Label struct {
	Span    span.Span
	Message string
	Color   Color
}

// Rendered is the 5-tuple every Report reduces to: severity, title, the
// labels to underline, explanatory notes, and rewrite/fix hints.
type Rendered struct {
	Severity Severity
	Code     int
	Title    string
	Labels   []Label
	Notes    []string
	Hints    []string
}

// Report is anything the reporter can accumulate and render. Category
// groups reports by the §4.5 3-digit code family (Syntax=1, Semantic=2,
// Generate=3); IO reports (category 0) are always fatal and never
// accumulated, so they have no Report implementation — callers raise a
// plain Go error instead.
type Report interface {
	Render() Rendered
	Category() int
}

const (
	CategorySyntax   = 1
	CategorySemantic = 2
	CategoryGenerate = 3
)

// Code formats a report's stable 3-digit diagnostic id: the category
// digit followed by the report's own 2-digit ordinal within it.
func Code(category, ordinal int) int {
	return category*100 + ordinal
}
