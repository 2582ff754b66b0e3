package unify

import (
	"github.com/oocheck/oocheck/internal/ast"
	"github.com/oocheck/oocheck/internal/constraint"
	"github.com/oocheck/oocheck/internal/names"
)

// substitute rewrites every occurrence of old in the remaining queue with
// replacement, descending into Access, Function, Tuple, and Collection
// shapes (spec.md §4.7 "Substitution (Expression)"). Within a constraint
// whose Idents lists an identifier, Expression{Id} occurrences of that
// identifier are left as they are, so a rebinding's own constraints are
// not rewritten with an earlier binding's resolution. A rewritten
// constraint keeps its Msg, IsFlag, IsSub and Idents.
func (u *unifier) substitute(old, replacement constraint.Expected) {
	for i, c := range u.queue {
		c.Parent = substituteExpected(c.Parent, old, replacement, c.Idents)
		c.Child = substituteExpected(c.Child, old, replacement, c.Idents)
		u.queue[i] = c
	}
}

func substituteExpected(e, old, replacement constraint.Expected, stop []string) constraint.Expected {
	if stopped(e, stop) {
		return e
	}
	if e.StructurallyEqual(old) {
		return replacement
	}
	switch shape := e.Expect.(type) {
	case constraint.Access:
		return constraint.New(e.Pos, constraint.Access{
			Entity:        substituteExpected(shape.Entity, old, replacement, stop),
			FieldOrMethod: substituteExpected(shape.FieldOrMethod, old, replacement, stop),
		})
	case constraint.Function:
		args := make([]constraint.Expected, len(shape.Args))
		for i, a := range shape.Args {
			args[i] = substituteExpected(a, old, replacement, stop)
		}
		return constraint.New(e.Pos, constraint.Function{Name: shape.Name, Args: args})
	case constraint.Tuple:
		elements := make([]constraint.Expected, len(shape.Elements))
		for i, el := range shape.Elements {
			elements[i] = substituteExpected(el, old, replacement, stop)
		}
		return constraint.New(e.Pos, constraint.Tuple{Elements: elements})
	case constraint.Collection:
		return constraint.New(e.Pos, constraint.Collection{Ty: substituteExpected(shape.Ty, old, replacement, stop)})
	default:
		return e
	}
}

func stopped(e constraint.Expected, stop []string) bool {
	if len(stop) == 0 {
		return false
	}
	id, ok := e.Expect.(constraint.Expression)
	if !ok {
		return false
	}
	asID, ok := id.AST.(*ast.Id)
	if !ok {
		return false
	}
	for _, s := range stop {
		if s == asID.Name {
			return true
		}
	}
	return false
}

// substituteType rewrites every Type shape in the remaining queue with m
// applied to its Name (spec.md §4.7 "Substitution (Type)").
func (u *unifier) substituteType(m map[string]names.Name) {
	for i, c := range u.queue {
		c.Parent = substituteTypeExpected(c.Parent, m)
		c.Child = substituteTypeExpected(c.Child, m)
		u.queue[i] = c
	}
}

func substituteTypeExpected(e constraint.Expected, m map[string]names.Name) constraint.Expected {
	switch shape := e.Expect.(type) {
	case constraint.Type:
		return constraint.New(e.Pos, constraint.Type{Name: shape.Name.Substitute(m)})
	case constraint.Access:
		return constraint.New(e.Pos, constraint.Access{
			Entity:        substituteTypeExpected(shape.Entity, m),
			FieldOrMethod: substituteTypeExpected(shape.FieldOrMethod, m),
		})
	case constraint.Function:
		args := make([]constraint.Expected, len(shape.Args))
		for i, a := range shape.Args {
			args[i] = substituteTypeExpected(a, m)
		}
		return constraint.New(e.Pos, constraint.Function{Name: shape.Name, Args: args})
	case constraint.Tuple:
		elements := make([]constraint.Expected, len(shape.Elements))
		for i, el := range shape.Elements {
			elements[i] = substituteTypeExpected(el, m)
		}
		return constraint.New(e.Pos, constraint.Tuple{Elements: elements})
	case constraint.Collection:
		return constraint.New(e.Pos, constraint.Collection{Ty: substituteTypeExpected(shape.Ty, m)})
	default:
		return e
	}
}
