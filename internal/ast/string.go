package ast

import (
	"fmt"
	"strings"
)

// String renders a program back to Zhoo-ish source text. This is the
// pretty-printer spec.md §1 names as an external collaborator whose
// contract is "stringify AST nodes for diagnostic messages" and whose
// output the CLI's --ast flag surfaces; here every node simply implements
// String() directly rather than routing through a separate package, per
// SPEC_FULL.md SUPPLEMENTED FEATURES #4.
func (p *Program) String() string {
	parts := make([]string, len(p.Stmts))
	for i, s := range p.Stmts {
		parts[i] = stmtString(s)
	}
	return strings.Join(parts, "\n")
}

func stmtString(s Stmt) string {
	switch n := s.(type) {
	case *ExtStmt:
		if n.Body != nil {
			return fmt.Sprintf("ext fun %s %s", prototypeString(n.Prototype), blockString(n.Body))
		}
		return fmt.Sprintf("ext fun %s;", prototypeString(n.Prototype))
	case *TyAliasStmt:
		return fmt.Sprintf("type %s = %s;", n.Name, n.Ty.String())
	case *ValStmt:
		return declString(n.Decl) + ";"
	case *FunStmt:
		return fmt.Sprintf("fun %s %s", prototypeString(n.Prototype), blockString(n.Body))
	case *UnitStmt:
		return "unit { ... }"
	default:
		return "?stmt"
	}
}

func prototypeString(p *Prototype) string {
	args := make([]string, len(p.Inputs))
	for i, a := range p.Inputs {
		args[i] = fmt.Sprintf("%s: %s", a.Pattern, a.Ty.String())
	}
	out := p.Output.AsTy().String()
	return fmt.Sprintf("%s(%s): %s", p.Name, strings.Join(args, ", "), out)
}

func declString(d *Decl) string {
	kw := "val"
	switch d.Mutability {
	case MutImu:
		kw = "let"
	case MutMut:
		kw = "let mut"
	}
	if d.Ty != nil {
		return fmt.Sprintf("%s %s: %s := %s", kw, d.Pattern, d.Ty.String(), exprString(d.Value))
	}
	return fmt.Sprintf("%s %s := %s", kw, d.Pattern, exprString(d.Value))
}

func blockString(b *Block) string {
	parts := make([]string, len(b.Exprs))
	for i, e := range b.Exprs {
		parts[i] = exprString(e)
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

func exprString(e Expr) string {
	switch n := e.(type) {
	case nil:
		return ""
	case *LitExpr:
		switch n.Kind {
		case LitBool:
			return fmt.Sprintf("%t", n.Bool)
		case LitInt:
			return fmt.Sprintf("%d", n.Int)
		case LitReal:
			return fmt.Sprintf("%g", n.Real)
		case LitStr:
			return fmt.Sprintf("%q", n.Str)
		}
	case *IdentExpr:
		return n.Name
	case *UnOpExpr:
		op := "!"
		if n.Op == UnNeg {
			op = "-"
		}
		return op + exprString(n.Operand)
	case *BinOpExpr:
		return fmt.Sprintf("(%s %s %s)", exprString(n.Lhs), n.Op.String(), exprString(n.Rhs))
	case *CallExpr:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = exprString(a)
		}
		return fmt.Sprintf("%s(%s)", n.Callee, strings.Join(args, ", "))
	case *DeclExpr:
		return declString(n.Decl)
	case *AssignExpr:
		return fmt.Sprintf("%s = %s", exprString(n.Target), exprString(n.Value))
	case *AssignOpExpr:
		return fmt.Sprintf("%s %s= %s", exprString(n.Target), n.Op.String(), exprString(n.Value))
	case *BlockExpr:
		return blockString(n.Block)
	case *LoopExpr:
		return "loop " + blockString(n.Body)
	case *WhileExpr:
		return fmt.Sprintf("while %s %s", exprString(n.Cond), blockString(n.Body))
	case *UntilExpr:
		return fmt.Sprintf("until %s %s", exprString(n.Cond), blockString(n.Body))
	case *ReturnExpr:
		if n.Value == nil {
			return "return;"
		}
		return "return " + exprString(n.Value) + ";"
	case *BreakExpr:
		if n.Value == nil {
			return "break;"
		}
		return "break " + exprString(n.Value) + ";"
	case *ContinueExpr:
		return "continue;"
	case *WhenExpr:
		return fmt.Sprintf("when %s ? %s : %s", exprString(n.Cond), exprString(n.A), exprString(n.B))
	case *IfElseExpr:
		if n.Else != nil {
			return fmt.Sprintf("if %s %s else %s", exprString(n.Cond), blockString(n.Then), blockString(n.Else))
		}
		return fmt.Sprintf("if %s %s", exprString(n.Cond), blockString(n.Then))
	case *LambdaExpr:
		return "lambda " + prototypeString(n.Prototype) + " " + blockString(n.Body)
	case *ArrayExpr:
		parts := make([]string, len(n.Elems))
		for i, el := range n.Elems {
			parts[i] = exprString(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ArrayAccessExpr:
		return fmt.Sprintf("%s[%s]", exprString(n.Array), exprString(n.Index))
	case *TupleExpr:
		parts := make([]string, len(n.Elems))
		for i, el := range n.Elems {
			parts[i] = exprString(el)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *TupleAccessExpr:
		return fmt.Sprintf("%s.%d", exprString(n.Tuple), n.Index)
	case *StmtExpr:
		return stmtString(n.Stmt)
	}
	return "?expr"
}
