package generate

import (
	"github.com/oocheck/oocheck/internal/ast"
	"github.com/oocheck/oocheck/internal/builder"
	"github.com/oocheck/oocheck/internal/checkerr"
	"github.com/oocheck/oocheck/internal/constraint"
	"github.com/oocheck/oocheck/internal/env"
	"github.com/oocheck/oocheck/internal/names"
)

// genFunctionCall generates each argument, then resolves name first as a
// user-defined local value (a prior FunDef/AnonFun bound in the
// Environment) and otherwise through the Class Context's top-level
// functions, unifying the whole call with the declared return type. For a
// Class Context function called below the top level, the callee's declared
// raises replace the Environment's raises (InsertRaises); no constraint
// compares them with the raises the enclosing function declares, so a call
// site never yields an UncoveredRaises error (spec.md §4.6 "FunctionCall").
func (g *Generator) genFunctionCall(n *ast.FunctionCall, e env.Environment, b *builder.Builder) (env.Environment, checkerr.List) {
	self := constraint.From(n)
	var errs checkerr.List

	argExpects := make([]constraint.Expected, len(n.Args))
	for i, a := range n.Args {
		argExpects[i] = constraint.From(a)
		var sub checkerr.List
		e, sub = g.gen(a, e, b)
		errs = append(errs, sub...)
	}
	callShape := constraint.New(n.Pos(), constraint.Function{Name: n.Name, Args: argExpects})

	if bindings, ok := e.Lookup(n.Name); ok {
		for _, bind := range bindings {
			b.Add(callShape, bind.Expect, "")
		}
		b.Add(self, callShape, "")
		return e, errs
	}

	fn, err := g.Ctx.Function(n.Name, n.Pos())
	if err != nil {
		return e, append(errs, checkerr.New(checkerr.Undefined, n.Pos(), err.Error()))
	}
	if len(fn.Args) != len(n.Args) {
		return e, append(errs, checkerr.New(checkerr.ArityMismatch, n.Pos(), "wrong number of arguments to "+n.Name))
	}
	for i, param := range fn.Args {
		if param.HasType {
			b.Add(argExpects[i], constraint.New(n.Pos(), constraint.Type{Name: param.Type}), "")
		}
	}
	b.Add(self, constraint.New(n.Pos(), constraint.Type{Name: fn.Ret}), "")

	if len(fn.Raises) > 0 && !b.IsTopLevel() {
		raisesName := names.Empty
		for _, r := range fn.Raises {
			raisesName = raisesName.Union(names.NewSingle(r))
		}
		e = e.InsertRaises(raisesName, n.Pos())
	}
	return e, errs
}

// genPropertyCall generates Instance, then reduces Property: an Id becomes
// Access{inst, Field{id}}; a FunctionCall becomes Access{inst,
// Function{name, self::args}} with the instance prepended as the implicit
// receiver argument. Chains like a.b.c are already left-associative in the
// AST (Instance nests the inner PropertyCall), so no separate case is
// needed here (spec.md §4.6 "PropertyCall").
func (g *Generator) genPropertyCall(n *ast.PropertyCall, e env.Environment, b *builder.Builder) (env.Environment, checkerr.List) {
	self := constraint.From(n)
	e, errs := g.gen(n.Instance, e, b)
	instExpect := constraint.From(n.Instance)

	switch prop := n.Property.(type) {
	case *ast.Id:
		b.Add(self, constraint.New(n.Pos(), constraint.Access{
			Entity:        instExpect,
			FieldOrMethod: constraint.New(prop.Pos(), constraint.Field{Name: prop.Name}),
		}), "")
	case *ast.FunctionCall:
		args := make([]constraint.Expected, 0, len(prop.Args)+1)
		args = append(args, instExpect)
		for _, a := range prop.Args {
			args = append(args, constraint.From(a))
			var sub checkerr.List
			e, sub = g.gen(a, e, b)
			errs = append(errs, sub...)
		}
		b.Add(self, constraint.New(n.Pos(), constraint.Access{
			Entity:        instExpect,
			FieldOrMethod: constraint.New(prop.Pos(), constraint.Function{Name: prop.Name, Args: args}),
		}), "")
	default:
		var sub checkerr.List
		e, sub = g.gen(n.Property, e, b)
		errs = append(errs, sub...)
	}
	return e, errs
}

// genReassign validates that Left is a legal assignment target (an
// identifier or a property chain ending in one), generates both sides,
// and unifies them (spec.md §4.6 "Reassign").
func (g *Generator) genReassign(n *ast.Reassign, e env.Environment, b *builder.Builder) (env.Environment, checkerr.List) {
	var errs checkerr.List
	if !isAssignableChain(n.Left) {
		errs = append(errs, checkerr.New(checkerr.IllegalControl, n.Pos(), "left-hand side of assignment is not an identifier or property chain"))
	}
	e, subLeft := g.gen(n.Left, e, b)
	errs = append(errs, subLeft...)
	e, subRight := g.gen(n.Right, e, b)
	errs = append(errs, subRight...)
	b.Add(constraint.From(n.Left), constraint.From(n.Right), "")
	return e, errs
}

func isAssignableChain(expr ast.Expression) bool {
	switch v := expr.(type) {
	case *ast.Id:
		return true
	case *ast.PropertyCall:
		return isAssignableChain(v.Instance)
	default:
		return false
	}
}
