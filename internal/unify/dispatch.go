package unify

import (
	"github.com/oocheck/oocheck/internal/ast"
	"github.com/oocheck/oocheck/internal/checkerr"
	"github.com/oocheck/oocheck/internal/constraint"
	"github.com/oocheck/oocheck/internal/names"
	"github.com/oocheck/oocheck/internal/srcpos"
)

// tryOrder attempts every rule of spec.md §4.7's dispatch table for the
// ordered pair (left, right); left and right are one reading of a
// Constraint's two sides (the caller also tries the swap). It returns
// matched=true once a rule fires, whether or not that rule produced an
// error.
func (u *unifier) tryOrder(left, right constraint.Expected, orig constraint.Constraint) (bool, error) {
	// Trivially equal sides: no-op.
	if left.StructurallyEqual(right) {
		return true, nil
	}

	if lt, ok := left.Expect.(constraint.Expression); ok {
		return true, u.dispatchExpression(lt, left, right, orig)
	}

	if lf, ok := left.Expect.(constraint.Function); ok {
		if rt, ok := right.Expect.(constraint.Type); ok {
			return true, u.dispatchFunctionType(lf, left, rt, right)
		}
	}

	if la, ok := left.Expect.(constraint.Access); ok {
		return true, u.dispatchAccess(la, left, right, orig)
	}

	if lt, ok := left.Expect.(constraint.Type); ok {
		switch rt := right.Expect.(type) {
		case constraint.Type:
			return true, u.dispatchTypeType(lt, left, rt, right)
		case constraint.Truthy:
			return true, u.requireDunder(lt.Name, "__bool__", right.Pos)
		case constraint.Stringy:
			return true, u.requireDunder(lt.Name, "__str__", right.Pos)
		case constraint.Nullable:
			if !lt.Name.IsNullable() {
				return true, newUnifyErr(checkerr.TypeMismatch, right.Pos, lt.Name.String()+" is not nullable")
			}
			return true, nil
		case constraint.Raises:
			ok, err := rt.Names.IsSuperSet(lt.Name, u.ctx, right.Pos)
			if err != nil {
				return true, err
			}
			if !ok {
				return true, newUnifyErr(checkerr.UncoveredRaises, right.Pos, "raises "+lt.Name.String()+" is not covered by "+rt.Names.String())
			}
			return true, nil
		case constraint.Collection:
			elem, ok, err := lt.Name.ColType(u.ctx, right.Pos)
			if err != nil {
				return true, err
			}
			if !ok {
				return true, newUnifyErr(checkerr.TypeMismatch, right.Pos, lt.Name.String()+" is not iterable")
			}
			u.push(rt.Ty, constraint.New(right.Pos, constraint.Type{Name: elem}))
			return true, nil
		}
	}

	if lc, ok := left.Expect.(constraint.Collection); ok {
		if rc, ok := right.Expect.(constraint.Collection); ok {
			u.push(lc.Ty, rc.Ty)
			return true, nil
		}
	}

	if lt, ok := left.Expect.(constraint.Tuple); ok {
		if rt, ok := right.Expect.(constraint.Tuple); ok {
			if len(lt.Elements) != len(rt.Elements) {
				return true, newUnifyErr(checkerr.ArityMismatch, right.Pos, "tuple arity mismatch")
			}
			for i := range lt.Elements {
				u.push(lt.Elements[i], rt.Elements[i])
			}
			return true, nil
		}
	}

	if isLooseShape(left) && isLooseShape(right) {
		return true, nil
	}

	return false, nil
}

func isLooseShape(e constraint.Expected) bool {
	switch e.Expect.(type) {
	case constraint.Truthy, constraint.Stringy, constraint.Nullable, constraint.ExpressionAny:
		return true
	default:
		return false
	}
}

// dispatchExpression handles every rule whose left side is Expression{ast}
// (spec.md §4.7's first four table rows).
func (u *unifier) dispatchExpression(lt constraint.Expression, left, right constraint.Expected, orig constraint.Constraint) error {
	switch rt := right.Expect.(type) {
	case constraint.ExpressionAny:
		if isCallForm(lt.AST) {
			return u.reinsertOrFail(orig)
		}
		u.substitute(left, right)
		return nil

	case constraint.Collection:
		if elements, ok := collectionLiteralElements(lt.AST); ok {
			for _, elem := range elements {
				u.push(rt.Ty, constraint.From(elem))
			}
		}
		u.substitute(left, right)
		return nil

	case constraint.Expression:
		le, lok := collectionLiteralElements(lt.AST)
		re, rok := collectionLiteralElements(rt.AST)
		if lok && rok && len(le) == len(re) {
			for i := range le {
				u.push(constraint.From(le[i]), constraint.From(re[i]))
			}
		}
		u.substitute(left, right)
		return nil

	default:
		u.substitute(left, right)
		return nil
	}
}

func isCallForm(e ast.Expression) bool {
	switch e.(type) {
	case *ast.FunctionCall, *ast.PropertyCall:
		return true
	default:
		return false
	}
}

func collectionLiteralElements(e ast.Expression) ([]ast.Expression, bool) {
	switch lit := e.(type) {
	case *ast.ListLit:
		return lit.Elements, true
	case *ast.SetLit:
		return lit.Elements, true
	case *ast.TupleLit:
		return lit.Elements, true
	default:
		return nil, false
	}
}

// dispatchFunctionType handles Function/Type: spec.md §4.7 requires the
// Type's variant to itself be Function/Callable-shaped.
func (u *unifier) dispatchFunctionType(lf constraint.Function, left constraint.Expected, rt constraint.Type, right constraint.Expected) error {
	for _, t := range rt.Name.TrueNames() {
		fn, ok := t.Variant.(names.Function)
		if !ok || len(fn.Args) != len(lf.Args) {
			continue
		}
		for i, arg := range lf.Args {
			u.push(arg, constraint.New(right.Pos, constraint.Type{Name: fn.Args[i]}))
		}
		u.finished.Push(right.Pos, rt.Name)
		return nil
	}
	return newUnifyErr(checkerr.TypeMismatch, right.Pos, rt.Name.String()+" is not callable with "+left.String())
}

// dispatchAccess resolves Access{entity, Field|Function} once entity has
// settled to a concrete Type; otherwise it reinserts once, expecting a
// later substitution to resolve entity (spec.md §4.7).
func (u *unifier) dispatchAccess(la constraint.Access, left, right constraint.Expected, orig constraint.Constraint) error {
	entityType, ok := la.Entity.Expect.(constraint.Type)
	if !ok {
		return u.reinsertOrFail(orig)
	}

	switch fm := la.FieldOrMethod.Expect.(type) {
	case constraint.Field:
		types, err := u.resolveField(entityType.Name, fm.Name, la.FieldOrMethod.Pos)
		if err != nil {
			return err
		}
		return u.bindOverloads(right, types)
	case constraint.Function:
		rets, err := u.resolveMethod(entityType.Name, fm, la.FieldOrMethod.Pos)
		if err != nil {
			return err
		}
		return u.bindOverloads(right, rets)
	default:
		return newUnifyErr(checkerr.Undefined, left.Pos, "access target is neither a field nor a method")
	}
}

func (u *unifier) bindOverloads(right constraint.Expected, types []names.Name) error {
	if len(types) == 0 {
		return newUnifyErr(checkerr.Undefined, right.Pos, "no matching overload")
	}
	union := names.Empty
	for _, t := range types {
		u.push(right, constraint.New(right.Pos, constraint.Type{Name: t}))
		union = union.Union(t)
	}
	u.finished.Push(right.Pos, union)
	return nil
}

// dispatchTypeType implements Type{L}/Type{R}: derive a temp mapping when
// either side mentions a temporary, otherwise require L ⊇ R.
func (u *unifier) dispatchTypeType(lt constraint.Type, left constraint.Expected, rt constraint.Type, right constraint.Expected) error {
	if lt.Name.ContainsTemp() || rt.Name.ContainsTemp() {
		m, err := lt.Name.TempMap(rt.Name)
		if err != nil {
			m, err = rt.Name.TempMap(lt.Name)
			if err != nil {
				return newUnifyErr(checkerr.TypeMismatch, right.Pos, "cannot unify "+lt.Name.String()+" with "+rt.Name.String())
			}
		}
		u.substituteType(m)
		u.finished.Push(right.Pos, rt.Name.Substitute(m))
		u.finished.Push(left.Pos, lt.Name.Substitute(m))
		return nil
	}

	ok, err := lt.Name.IsSuperSet(rt.Name, u.ctx, right.Pos)
	if err != nil {
		return err
	}
	if !ok {
		return newUnifyErr(checkerr.TypeMismatch, right.Pos, "expected "+lt.Name.String()+", got "+rt.Name.String())
	}
	u.finished.Push(right.Pos, rt.Name)
	u.finished.Push(left.Pos, lt.Name)
	return nil
}

func (u *unifier) requireDunder(n names.Name, dunder string, pos srcpos.Position) error {
	for _, t := range n.TrueNames() {
		single, ok := t.Variant.(names.Single)
		if !ok {
			continue
		}
		class, err := u.ctx.Class(names.NewSingle(single.Name), pos)
		if err != nil {
			return newUnifyErr(checkerr.Undefined, pos, err.Error())
		}
		if _, ferr := class.Fun(dunder, pos); ferr == nil {
			return nil
		}
	}
	return newUnifyErr(checkerr.TypeMismatch, pos, n.String()+" does not define "+dunder)
}
