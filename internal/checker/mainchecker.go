// Package checker implements the three semantic analysis passes spec.md
// §2 lists: entry-point check, naming-convention check, and the scoped
// type checker.
package checker

import (
	"github.com/monsieurbadia/zhoo/internal/ast"
	zerrors "github.com/monsieurbadia/zhoo/internal/errors"
	"github.com/monsieurbadia/zhoo/internal/span"
)

// CheckMain verifies exactly one top-level function named "main" with no
// inputs exists. Grounded on
// original_source/compiler/zhoo-analyzer/src/checker/mainchecker.rs (and
// its zhoo/src/front/analyzer/checker/mainchecker.rs twin).
func CheckMain(prog *ast.Program, filePath string, r *zerrors.Reporter) {
	main := findMain(prog)
	if main == nil {
		r.AddReport(zerrors.MainNotFound{Span: prog.Span, FilePath: filePath})
		r.AbortIfHasError()
		return
	}
	if len(main.Prototype.Inputs) > 0 {
		first := main.Prototype.Inputs[0]
		merged := first.Span
		for _, in := range main.Prototype.Inputs[1:] {
			merged = span.Merge(merged, in.Span)
		}
		inputs := make([]*ast.Ty, len(main.Prototype.Inputs))
		for i, in := range main.Prototype.Inputs {
			inputs[i] = in.Ty
		}
		r.AddReport(zerrors.MainHasInputs{Span: merged, Inputs: ast.FormattedInputs(inputs)})
	}
	r.AbortIfHasError()
}

func findMain(prog *ast.Program) *ast.FunStmt {
	for _, s := range prog.Stmts {
		if f, ok := s.(*ast.FunStmt); ok && f.Prototype.Name == "main" {
			return f
		}
	}
	return nil
}
