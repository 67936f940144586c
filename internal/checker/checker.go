package checker

import (
	"github.com/monsieurbadia/zhoo/internal/ast"
	zerrors "github.com/monsieurbadia/zhoo/internal/errors"
)

// Run executes the three analyzer passes in the order spec.md §5 fixes:
// entry-point check, naming-convention check, type check. Each pass may
// add reports; CheckMain and TypeChecker.Check call AbortIfHasError at
// their own boundary. The returned *TypeChecker carries the per-node
// type table codegen consults during lowering.
func Run(prog *ast.Program, filePath string, r *zerrors.Reporter) *TypeChecker {
	CheckMain(prog, filePath, r)
	CheckNaming(prog, r)
	tc := NewTypeChecker(r)
	tc.Check(prog)
	return tc
}
