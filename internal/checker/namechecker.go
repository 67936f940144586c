package checker

import (
	"github.com/ettle/strcase"
	"github.com/monsieurbadia/zhoo/internal/ast"
	zerrors "github.com/monsieurbadia/zhoo/internal/errors"
	"github.com/monsieurbadia/zhoo/internal/span"
)

// CheckNaming emits non-fatal NamingConvention warnings for every
// declaration kind spec.md §4.3 and SPEC_FULL.md's supplemented coverage
// name: function names/arguments/locals/macros use snake_case, type
// aliases (and, were they modeled, structs/enums/traits) use PascalCase,
// top-level `val` declarations use SCREAMING_SNAKE_CASE. Never aborts.
//
// Grounded on original_source/compiler/zhoo-analyzer/src/checker/namechecker.rs;
// case conversion/rewrite suggestion via github.com/ettle/strcase instead
// of the original's `inflector`-crate-backed helper
// (zhoo-helper/src/strcase.rs).
func CheckNaming(prog *ast.Program, r *zerrors.Reporter) {
	for _, s := range prog.Stmts {
		checkStmtNaming(s, r)
	}
}

func checkStmtNaming(s ast.Stmt, r *zerrors.Reporter) {
	switch n := s.(type) {
	case *ast.FunStmt:
		checkSnake(n.Prototype.Name, n.Prototype.NameSpan, r)
		for _, arg := range n.Prototype.Inputs {
			checkSnake(arg.Pattern, arg.PatternSpan, r)
		}
		if n.Body != nil {
			checkBlockNaming(n.Body, r)
		}
	case *ast.ExtStmt:
		checkSnake(n.Prototype.Name, n.Prototype.NameSpan, r)
		for _, arg := range n.Prototype.Inputs {
			checkSnake(arg.Pattern, arg.PatternSpan, r)
		}
		if n.Body != nil {
			checkBlockNaming(n.Body, r)
		}
	case *ast.TyAliasStmt:
		checkPascal(n.Name, n.NameSpan, r)
	case *ast.ValStmt:
		checkScreamingSnake(n.Decl.Pattern, n.Decl.PatternSpan, r)
		checkExprNaming(n.Decl.Value, r)
	case *ast.UnitStmt:
		for _, b := range n.Binds {
			checkStmtNaming(b, r)
		}
		for _, m := range n.Mocks {
			checkStmtNaming(m, r)
		}
		for _, tt := range n.Tests {
			checkStmtNaming(tt, r)
		}
	}
}

func checkBlockNaming(b *ast.Block, r *zerrors.Reporter) {
	for _, e := range b.Exprs {
		checkExprNaming(e, r)
	}
}

// checkExprNaming recurses into every sub-expression looking for local
// `let`/`let mut` declarations, which follow the snake_case convention
// like any other local variable.
func checkExprNaming(e ast.Expr, r *zerrors.Reporter) {
	switch n := e.(type) {
	case nil:
		return
	case *ast.DeclExpr:
		if n.Decl.Mutability != ast.MutVal {
			checkSnake(n.Decl.Pattern, n.Decl.PatternSpan, r)
		} else {
			checkScreamingSnake(n.Decl.Pattern, n.Decl.PatternSpan, r)
		}
		checkExprNaming(n.Decl.Value, r)
	case *ast.UnOpExpr:
		checkExprNaming(n.Operand, r)
	case *ast.BinOpExpr:
		checkExprNaming(n.Lhs, r)
		checkExprNaming(n.Rhs, r)
	case *ast.CallExpr:
		for _, a := range n.Args {
			checkExprNaming(a, r)
		}
	case *ast.AssignExpr:
		checkExprNaming(n.Target, r)
		checkExprNaming(n.Value, r)
	case *ast.AssignOpExpr:
		checkExprNaming(n.Target, r)
		checkExprNaming(n.Value, r)
	case *ast.BlockExpr:
		checkBlockNaming(n.Block, r)
	case *ast.LoopExpr:
		checkBlockNaming(n.Body, r)
	case *ast.WhileExpr:
		checkExprNaming(n.Cond, r)
		checkBlockNaming(n.Body, r)
	case *ast.UntilExpr:
		checkExprNaming(n.Cond, r)
		checkBlockNaming(n.Body, r)
	case *ast.ReturnExpr:
		checkExprNaming(n.Value, r)
	case *ast.BreakExpr:
		checkExprNaming(n.Value, r)
	case *ast.WhenExpr:
		checkExprNaming(n.Cond, r)
		checkExprNaming(n.A, r)
		checkExprNaming(n.B, r)
	case *ast.IfElseExpr:
		checkExprNaming(n.Cond, r)
		checkBlockNaming(n.Then, r)
		if n.Else != nil {
			checkBlockNaming(n.Else, r)
		}
	case *ast.LambdaExpr:
		for _, arg := range n.Prototype.Inputs {
			checkSnake(arg.Pattern, arg.PatternSpan, r)
		}
		checkBlockNaming(n.Body, r)
	case *ast.ArrayExpr:
		for _, el := range n.Elems {
			checkExprNaming(el, r)
		}
	case *ast.ArrayAccessExpr:
		checkExprNaming(n.Array, r)
		checkExprNaming(n.Index, r)
	case *ast.TupleExpr:
		for _, el := range n.Elems {
			checkExprNaming(el, r)
		}
	case *ast.TupleAccessExpr:
		checkExprNaming(n.Tuple, r)
	case *ast.StmtExpr:
		checkStmtNaming(n.Stmt, r)
	}
}

func checkSnake(name string, sp span.Span, r *zerrors.Reporter) {
	if rewrite := strcase.ToSnake(name); rewrite != name {
		r.AddReport(zerrors.NamingConvention{Span: sp, Rewrite: rewrite, Convention: "snake case"})
	}
}

func checkPascal(name string, sp span.Span, r *zerrors.Reporter) {
	if rewrite := strcase.ToPascal(name); rewrite != name {
		r.AddReport(zerrors.NamingConvention{Span: sp, Rewrite: rewrite, Convention: "pascal case"})
	}
}

func checkScreamingSnake(name string, sp span.Span, r *zerrors.Reporter) {
	if rewrite := strcase.ToScreamingSnake(name); rewrite != name {
		r.AddReport(zerrors.NamingConvention{Span: sp, Rewrite: rewrite, Convention: "screaming snake case"})
	}
}
