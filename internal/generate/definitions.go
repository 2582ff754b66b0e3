package generate

import (
	"github.com/oocheck/oocheck/internal/ast"
	"github.com/oocheck/oocheck/internal/builder"
	"github.com/oocheck/oocheck/internal/checkerr"
	"github.com/oocheck/oocheck/internal/constraint"
	"github.com/oocheck/oocheck/internal/env"
	"github.com/oocheck/oocheck/internal/names"
)

// genVariableDef binds Left (possibly a tuple pattern) in define mode,
// then constrains it against a declared Type and/or an Init expression
// (spec.md §4.6 "VariableDef"). When bindPattern reports that a name was
// shadow-renamed rather than freshly bound, every constraint built here
// is marked WithIdents so the unifier's substitution won't let the prior
// binding of that name leak into this one (spec.md §4.7 "Substitution
// (Expression)").
func (g *Generator) genVariableDef(n *ast.VariableDef, e env.Environment, b *builder.Builder) (env.Environment, checkerr.List) {
	var self constraint.Expected
	var rebound []string
	e, self, rebound = g.bindPattern(n.Left, e)
	var errs checkerr.List

	if n.Type != nil {
		g.addBound(b, self, constraint.New(n.Pos(), constraint.Type{Name: toName(n.Type)}), rebound)
	}
	if n.Init != nil {
		var sub checkerr.List
		e, sub = g.gen(n.Init, e, b)
		errs = append(errs, sub...)
		g.addBound(b, self, constraint.From(n.Init), rebound)
	}
	return e, errs
}

// addBound is b.Add, except that when idents is non-empty the registered
// Constraint carries WithIdents(idents), so substitute stops at it rather
// than rewriting a rebound name's own constraint using an earlier,
// unrelated declaration's resolution.
func (g *Generator) addBound(b *builder.Builder, parent, child constraint.Expected, idents []string) {
	c := constraint.NewConstraint(parent, child, "")
	if len(idents) > 0 {
		c = c.WithIdents(idents)
	}
	b.AddConstraint(c)
}

// bindPattern recurses through a VariableDef's Left pattern, binding every
// Id it finds (spec.md §4.6's tuple-pattern destructuring supplement) and
// returning the Expected identity for the whole pattern plus the names,
// if any, that InsertVar shadow-renamed because they were already bound
// in e. A plain Id's identity is its own Expression{ast}; a tuple
// pattern's identity is a Tuple{Elements: ...} built from each
// sub-pattern's identity, so constraining it against an Init of differing
// arity flows through the Tuple/Tuple dispatch rule and raises
// ArityMismatch instead of silently falling through the
// Expression/Expression branch's length check. Every name bound here is
// inserted as mutable.
func (g *Generator) bindPattern(left ast.Expression, e env.Environment) (env.Environment, constraint.Expected, []string) {
	switch v := left.(type) {
	case *ast.Id:
		self := constraint.From(v)
		var rebound []string
		if v.Name != env.Self {
			if _, bound := e.Lookup(v.Name); bound {
				rebound = []string{v.Name}
			}
		}
		return e.InsertVar(true, v.Name, self), self, rebound
	case *ast.TupleLit:
		elements := make([]constraint.Expected, len(v.Elements))
		var rebound []string
		for i, elem := range v.Elements {
			var el constraint.Expected
			var sub []string
			e, el, sub = g.bindPattern(elem, e)
			elements[i] = el
			rebound = append(rebound, sub...)
		}
		return e, constraint.New(v.Pos(), constraint.Tuple{Elements: elements}), rebound
	default:
		return e, constraint.From(left), nil
	}
}

// genFunDef opens a fresh constraint set for the function's own body,
// binds each argument (including unifying declared types and default
// expressions), threads the declared return type and raises set into the
// body's Environment, then registers the function's call shape in the
// enclosing Environment so sibling code can resolve it by name (spec.md
// §4.6 "FunDef").
func (g *Generator) genFunDef(n *ast.FunDef, e env.Environment, b *builder.Builder) (env.Environment, checkerr.List) {
	b.NewSet(false)
	var errs checkerr.List

	fnEnv := e
	argExpects := make([]constraint.Expected, len(n.Args))
	for i, a := range n.Args {
		argExpect := constraint.New(a.Pos(), constraint.Field{Name: a.Name})
		argExpects[i] = argExpect
		fnEnv = fnEnv.InsertVar(a.Mutable, a.Name, argExpect)
		if a.Type != nil {
			b.Add(argExpect, constraint.New(a.Pos(), constraint.Type{Name: toName(a.Type)}), "")
		}
		if a.HasDefault {
			var sub checkerr.List
			fnEnv, sub = g.gen(a.Default, fnEnv, b)
			errs = append(errs, sub...)
			b.Add(argExpect, constraint.From(a.Default), "")
		}
	}

	if n.Ret != nil {
		fnEnv = fnEnv.WithReturnType(constraint.New(n.Pos(), constraint.Type{Name: toName(n.Ret)}))
	}
	raisesName := names.Empty
	for _, r := range n.Raises {
		raisesName = raisesName.Union(names.NewSingle(r))
	}
	fnEnv = fnEnv.InsertRaises(raisesName, n.Pos())

	fnEnv, sub := g.gen(n.Body, fnEnv, b)
	errs = append(errs, sub...)

	if ret, ok := fnEnv.ReturnType(); ok {
		b.Add(ret, constraint.FromStatement(n.Body), "")
	}

	if err := b.ExitSet(n.Pos()); err != nil {
		errs = append(errs, checkerr.New(checkerr.IllegalControl, n.Pos(), err.Error()))
	}

	funExpect := constraint.New(n.Pos(), constraint.Function{Name: n.Name, Args: argExpects})
	e = e.InsertVar(false, n.Name, funExpect)
	return e, errs
}

// genAnonFun mirrors genFunDef without a declared name or return type: its
// own Expected is the Function shape built from its argument list, left
// for the call site to unify against (spec.md §4.6 "AnonFun").
func (g *Generator) genAnonFun(n *ast.AnonFun, e env.Environment, b *builder.Builder) (env.Environment, checkerr.List) {
	b.NewSet(false)
	var errs checkerr.List

	fnEnv := e
	argExpects := make([]constraint.Expected, len(n.Args))
	for i, a := range n.Args {
		argExpect := constraint.New(a.Pos(), constraint.Field{Name: a.Name})
		argExpects[i] = argExpect
		fnEnv = fnEnv.InsertVar(a.Mutable, a.Name, argExpect)
		if a.Type != nil {
			b.Add(argExpect, constraint.New(a.Pos(), constraint.Type{Name: toName(a.Type)}), "")
		}
		if a.HasDefault {
			var sub checkerr.List
			fnEnv, sub = g.gen(a.Default, fnEnv, b)
			errs = append(errs, sub...)
			b.Add(argExpect, constraint.From(a.Default), "")
		}
	}

	_, sub := g.gen(n.Body, fnEnv, b)
	errs = append(errs, sub...)

	if err := b.ExitSet(n.Pos()); err != nil {
		errs = append(errs, checkerr.New(checkerr.IllegalControl, n.Pos(), err.Error()))
	}

	b.Add(constraint.From(n), constraint.New(n.Pos(), constraint.Function{Name: "", Args: argExpects}), "")
	return e, errs
}

// genTypeAlias has no independent constraint content of its own beyond
// making the alias resolvable: it is recorded directly as a class-context
// concern (spec.md §4.1), so generation is a no-op placeholder here.
func (g *Generator) genTypeAlias(n *ast.TypeAlias, e env.Environment, b *builder.Builder) (env.Environment, checkerr.List) {
	return e, nil
}
