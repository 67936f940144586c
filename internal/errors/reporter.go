package errors

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/monsieurbadia/zhoo/internal/source"
	"github.com/monsieurbadia/zhoo/internal/span"
)

// Reporter owns the source map, a single writer to stderr, and the
// monotonic has-errors flag. Grounded on
// original_source/compiler/zhoo-errors/src/report.rs's Reporter.
type Reporter struct {
	sources   *source.Map
	out       io.Writer
	hasErrors bool
	exit      func(code int)
}

// New builds a Reporter writing to w. Color is disabled automatically
// when w is not a terminal, detected with go-isatty the same way the
// teacher repo (funvibe-funxy) gates its own CLI color output.
func New(w io.Writer) *Reporter {
	if f, ok := w.(*os.File); ok && !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		noColor()
	}
	return &Reporter{sources: source.New(), out: w, exit: os.Exit}
}

// NewForTest builds a Reporter exactly like New, except AbortIfHasError
// and Raise do nothing where they would terminate the process. Unit tests exercise CheckMain/TypeChecker.Check — both of
// which call AbortIfHasError at their own pass boundary per spec.md
// §4.2/§4.4 — and need to keep running afterward to assert on
// HasErrors(); only the real CLI driver (internal/driver) should ever
// observe a process exit.
func NewForTest(w io.Writer) *Reporter {
	r := New(w)
	r.exit = func(int) {}
	return r
}

// AddSource registers path/text with the underlying source map and
// returns its id.
func (r *Reporter) AddSource(path, text string) source.Id {
	return r.sources.AddSource(path, text)
}

// Sources exposes the underlying map so callers can resolve spans back to
// source text.
func (r *Reporter) Sources() *source.Map {
	return r.sources
}

// HasErrors reports whether any error-severity report was ever added.
// Monotonic: once true, stays true (spec.md §3 invariant).
func (r *Reporter) HasErrors() bool {
	return r.hasErrors
}

// AddReport renders rep immediately to stderr and records whether it was
// an error.
func (r *Reporter) AddReport(rep Report) {
	rendered := rep.Render()
	r.render(rendered)
	if rendered.Severity == SeverityError {
		r.hasErrors = true
	}
}

// Raise adds rep like AddReport and then terminates the process with exit
// code 1. Used by the parser for the first syntax error and by codegen
// for lowering-time inconsistencies.
func (r *Reporter) Raise(rep Report) {
	r.AddReport(rep)
	r.exit(1)
}

// AbortIfHasError terminates the process with exit code 1 if any error
// was recorded, implementing the "collect then abort at pass boundary"
// policy spec.md §5/§7 describe.
func (r *Reporter) AbortIfHasError() {
	if r.hasErrors {
		r.exit(1)
	}
}

func (r *Reporter) render(rendered Rendered) {
	codeStr := fmt.Sprintf("%03d", rendered.Code)
	sev := ColorError
	if rendered.Severity == SeverityWarning {
		sev = ColorWarning
	}
	header := fmt.Sprintf("%s[%s]: %s", rendered.Severity.String(), codeStr, rendered.Title)
	fmt.Fprintln(r.out, sev.Sprint(header))

	for i, l := range rendered.Labels {
		r.renderLabel(i, l)
	}
	for _, n := range rendered.Notes {
		fmt.Fprintln(r.out, ColorNote.Sprint("  = note: ")+n)
	}
	for _, h := range rendered.Hints {
		fmt.Fprintln(r.out, ColorHint.Sprint("  = help: ")+h)
	}
}

// renderLabel prints the source snippet for one label's span, underlined
// with carets, preceded by its 1-based order index as spec.md §4.5
// requires ("ascending order indices matching their declaration order").
func (r *Reporter) renderLabel(order int, l Label) {
	snippet := r.sources.Snippet(l.Span)
	lo, hi := r.sources.LocalOffsets(l.Span)
	width := hi - lo
	if width < 1 {
		width = 1
	}
	fmt.Fprintf(r.out, "  [%d] %s\n", order+1, snippet)
	fmt.Fprintln(r.out, "      "+l.Color.Sprint(caretLine(width))+" "+l.Color.Sprint(l.Message))
}

func caretLine(width int) string {
	b := make([]byte, width)
	for i := range b {
		b[i] = '^'
	}
	return string(b)
}
