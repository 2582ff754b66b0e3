package constraint

import "github.com/oocheck/oocheck/internal/ast"

// astShapeEqual reports whether two expression ASTs have the same node
// kind and shape-equal children; literal values are irrelevant (spec.md
// §4.3: "two Int literals are structurally interchangeable").
func astShapeEqual(a, b ast.Expression) bool {
	switch l := a.(type) {
	case *ast.IntLit:
		_, ok := b.(*ast.IntLit)
		return ok
	case *ast.RealLit:
		_, ok := b.(*ast.RealLit)
		return ok
	case *ast.StrLit:
		_, ok := b.(*ast.StrLit)
		return ok
	case *ast.BoolLit:
		_, ok := b.(*ast.BoolLit)
		return ok
	case *ast.NoneLit:
		_, ok := b.(*ast.NoneLit)
		return ok
	case *ast.Id:
		r, ok := b.(*ast.Id)
		return ok && l.Name == r.Name
	case *ast.FStringLit:
		r, ok := b.(*ast.FStringLit)
		return ok && exprSliceShapeEqual(l.Parts, r.Parts)
	case *ast.ListLit:
		r, ok := b.(*ast.ListLit)
		return ok && exprSliceShapeEqual(l.Elements, r.Elements)
	case *ast.SetLit:
		r, ok := b.(*ast.SetLit)
		return ok && exprSliceShapeEqual(l.Elements, r.Elements)
	case *ast.TupleLit:
		r, ok := b.(*ast.TupleLit)
		return ok && exprSliceShapeEqual(l.Elements, r.Elements)
	case *ast.BinOp:
		r, ok := b.(*ast.BinOp)
		return ok && l.Op == r.Op && astShapeEqual(l.Left, r.Left) && astShapeEqual(l.Right, r.Right)
	case *ast.UnOp:
		r, ok := b.(*ast.UnOp)
		return ok && l.Op == r.Op && astShapeEqual(l.Operand, r.Operand)
	case *ast.FunctionCall:
		r, ok := b.(*ast.FunctionCall)
		return ok && l.Name == r.Name && exprSliceShapeEqual(l.Args, r.Args)
	case *ast.PropertyCall:
		r, ok := b.(*ast.PropertyCall)
		return ok && astShapeEqual(l.Instance, r.Instance) && astShapeEqual(l.Property, r.Property)
	case *ast.Reassign:
		r, ok := b.(*ast.Reassign)
		return ok && astShapeEqual(l.Left, r.Left) && astShapeEqual(l.Right, r.Right)
	case *ast.AnonFun:
		r, ok := b.(*ast.AnonFun)
		return ok && len(l.Args) == len(r.Args) && statementShapeEqual(l.Body, r.Body)
	case *ast.Block:
		r, ok := b.(*ast.Block)
		return ok && statementShapeEqual(l, r)
	case *ast.File:
		r, ok := b.(*ast.File)
		return ok && statementShapeEqual(l, r)
	default:
		return false
	}
}

func exprSliceShapeEqual(a, b []ast.Expression) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !astShapeEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// statementShapeEqual covers the Statement-only node kinds (If, Match,
// For, While, etc.) plus Block/File, which are both Expression and
// Statement.
func statementShapeEqual(a, b ast.Statement) bool {
	switch l := a.(type) {
	case *ast.Block:
		r, ok := b.(*ast.Block)
		return ok && stmtSliceShapeEqual(l.Statements, r.Statements)
	case *ast.File:
		r, ok := b.(*ast.File)
		return ok && stmtSliceShapeEqual(l.Statements, r.Statements)
	case *ast.VariableDef:
		r, ok := b.(*ast.VariableDef)
		return ok && astShapeEqual(l.Left, r.Left)
	case *ast.FunDef:
		r, ok := b.(*ast.FunDef)
		return ok && l.Name == r.Name && len(l.Args) == len(r.Args)
	case *ast.ClassDef:
		r, ok := b.(*ast.ClassDef)
		return ok && l.Name == r.Name
	case *ast.TypeAlias:
		r, ok := b.(*ast.TypeAlias)
		return ok && l.Name == r.Name
	case *ast.If:
		r, ok := b.(*ast.If)
		return ok && astShapeEqual(l.Cond, r.Cond) && statementShapeEqual(l.Then, r.Then)
	case *ast.Match:
		r, ok := b.(*ast.Match)
		return ok && astShapeEqual(l.Scrutinee, r.Scrutinee) && len(l.Cases) == len(r.Cases)
	case *ast.For:
		r, ok := b.(*ast.For)
		return ok && astShapeEqual(l.Collection, r.Collection)
	case *ast.While:
		r, ok := b.(*ast.While)
		return ok && astShapeEqual(l.Cond, r.Cond)
	case *ast.Break:
		_, ok := b.(*ast.Break)
		return ok
	case *ast.Continue:
		_, ok := b.(*ast.Continue)
		return ok
	case *ast.With:
		r, ok := b.(*ast.With)
		return ok && astShapeEqual(l.Resource, r.Resource)
	case *ast.Raise:
		r, ok := b.(*ast.Raise)
		return ok && astShapeEqual(l.Exception, r.Exception)
	default:
		if expr, ok := a.(ast.Expression); ok {
			if otherExpr, ok := b.(ast.Expression); ok {
				return astShapeEqual(expr, otherExpr)
			}
		}
		return false
	}
}

func stmtSliceShapeEqual(a, b []ast.Statement) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !statementShapeEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
