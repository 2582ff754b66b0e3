package generate

import (
	"github.com/oocheck/oocheck/internal/ast"
	"github.com/oocheck/oocheck/internal/builder"
	"github.com/oocheck/oocheck/internal/checkerr"
	"github.com/oocheck/oocheck/internal/constraint"
	"github.com/oocheck/oocheck/internal/env"
	"github.com/oocheck/oocheck/internal/names"
)

// genIf constrains Cond as Truthy, generates each branch under its own
// constraint set, unifies the If's own Expected with both branches as
// alternatives, and joins the branch environments: the result is the
// condition's environment unioned with the intersection of the two
// branches (or just the then-branch when there is no else), per spec.md
// §4.6 "If".
func (g *Generator) genIf(n *ast.If, e env.Environment, b *builder.Builder) (env.Environment, checkerr.List) {
	self := constraint.From(n)
	e, errs := g.gen(n.Cond, e, b)
	b.Add(constraint.From(n.Cond), constraint.New(n.Cond.Pos(), constraint.Truthy{}), "")
	condEnv := e

	b.NewSet(true)
	thenEnv, subThen := g.gen(n.Then, condEnv, b)
	errs = append(errs, subThen...)
	b.Add(self, constraint.FromStatement(n.Then), "")
	if err := b.ExitSet(n.Pos()); err != nil {
		errs = append(errs, checkerr.New(checkerr.IllegalControl, n.Pos(), err.Error()))
	}

	resultEnv := thenEnv
	if n.Else != nil {
		b.NewSet(true)
		elseEnv, subElse := g.gen(n.Else, condEnv, b)
		errs = append(errs, subElse...)
		b.Add(self, constraint.FromStatement(n.Else), "")
		if err := b.ExitSet(n.Pos()); err != nil {
			errs = append(errs, checkerr.New(checkerr.IllegalControl, n.Pos(), err.Error()))
		}
		resultEnv = thenEnv.Intersect(elseEnv)
	}
	return condEnv.Union(resultEnv), errs
}

// genMatch unifies every case's condition with the scrutinee and every
// case's body with the match expression's own Expected (spec.md §4.6
// "Match").
func (g *Generator) genMatch(n *ast.Match, e env.Environment, b *builder.Builder) (env.Environment, checkerr.List) {
	self := constraint.From(n)
	e, errs := g.gen(n.Scrutinee, e, b)
	scrutExpect := constraint.From(n.Scrutinee)

	for _, c := range n.Cases {
		b.NewSet(true)
		var subCond checkerr.List
		e, subCond = g.gen(c.Cond, e, b)
		errs = append(errs, subCond...)
		b.Add(constraint.From(c.Cond), scrutExpect, "")

		var subBody checkerr.List
		e, subBody = g.gen(c.Body, e, b)
		errs = append(errs, subBody...)
		b.Add(self, constraint.FromStatement(c.Body), "")

		if err := b.ExitSet(c.Pos()); err != nil {
			errs = append(errs, checkerr.New(checkerr.IllegalControl, c.Pos(), err.Error()))
		}
	}
	return e, errs
}

// genFor binds Var in define mode against the Collection's element shape,
// then generates Body inside a loop scope. The returned environment keeps
// the caller's own loop/define-mode flags (env.Union clones the receiver)
// while folding in whatever the loop body bound (spec.md §4.6 "For").
func (g *Generator) genFor(n *ast.For, e env.Environment, b *builder.Builder) (env.Environment, checkerr.List) {
	e, errs := g.gen(n.Collection, e, b)

	wasDefine := e.IsDefineMode()
	e = e.DefineMode(true)
	var subVar checkerr.List
	e, subVar = g.gen(n.Var, e, b)
	errs = append(errs, subVar...)
	e = e.DefineMode(wasDefine)

	b.Add(constraint.New(n.Pos(), constraint.Collection{Ty: constraint.From(n.Var)}), constraint.From(n.Collection), "")

	loopEnv := e.InLoopScope()
	loopEnv, subBody := g.gen(n.Body, loopEnv, b)
	errs = append(errs, subBody...)
	return e.Union(loopEnv), errs
}

// genWhile constrains Cond as Truthy and generates Body inside a loop
// scope (spec.md §4.6 "While").
func (g *Generator) genWhile(n *ast.While, e env.Environment, b *builder.Builder) (env.Environment, checkerr.List) {
	e, errs := g.gen(n.Cond, e, b)
	b.Add(constraint.From(n.Cond), constraint.New(n.Cond.Pos(), constraint.Truthy{}), "")

	loopEnv := e.InLoopScope()
	loopEnv, subBody := g.gen(n.Body, loopEnv, b)
	errs = append(errs, subBody...)
	return e.Union(loopEnv), errs
}

func (g *Generator) genBreak(n *ast.Break, e env.Environment, b *builder.Builder) (env.Environment, checkerr.List) {
	if !e.InLoop() {
		return e, checkerr.List{checkerr.New(checkerr.IllegalControl, n.Pos(), "break outside of a loop")}
	}
	return e, nil
}

func (g *Generator) genContinue(n *ast.Continue, e env.Environment, b *builder.Builder) (env.Environment, checkerr.List) {
	if !e.InLoop() {
		return e, checkerr.List{checkerr.New(checkerr.IllegalControl, n.Pos(), "continue outside of a loop")}
	}
	return e, nil
}

// genWith opens a constraint set for the resource expression and ascribes
// it to the declared type if present. With an `as var` alias it then opens
// a nested set, removes from it every inherited constraint that mentions
// the resource's Expected (spec.md §4.4 "remove_expected"), binds the alias
// in define mode and constrains the alias against the resource (spec.md
// §4.6 "With").
func (g *Generator) genWith(n *ast.With, e env.Environment, b *builder.Builder) (env.Environment, checkerr.List) {
	b.NewSet(true)
	e, errs := g.gen(n.Resource, e, b)
	resourceExpect := constraint.From(n.Resource)

	if n.Ascribed != nil {
		b.Add(resourceExpect, constraint.New(n.Pos(), constraint.Type{Name: toName(n.Ascribed)}), "")
	}

	bodyEnv := e
	if n.Var != nil {
		b.NewSet(true)
		b.RemoveExpected(resourceExpect)
		bodyEnv = bodyEnv.DefineMode(true)
		var subVar checkerr.List
		bodyEnv, subVar = g.gen(n.Var, bodyEnv, b)
		errs = append(errs, subVar...)
		bodyEnv = bodyEnv.DefineMode(false)
		b.Add(constraint.From(n.Var), resourceExpect, "")
	}

	bodyEnv, subBody := g.gen(n.Body, bodyEnv, b)
	errs = append(errs, subBody...)

	if n.Var != nil {
		if err := b.ExitSet(n.Pos()); err != nil {
			errs = append(errs, checkerr.New(checkerr.IllegalControl, n.Pos(), err.Error()))
		}
	}
	if err := b.ExitSet(n.Pos()); err != nil {
		errs = append(errs, checkerr.New(checkerr.IllegalControl, n.Pos(), err.Error()))
	}
	return e.Union(bodyEnv), errs
}

// genRaise constrains Exception as an Exception-or-subclass Type and, when
// the exception is an Id or a call, records that name as the Environment's
// raises; InsertRaises replaces any earlier entry (spec.md §4.6 "Raise").
func (g *Generator) genRaise(n *ast.Raise, e env.Environment, b *builder.Builder) (env.Environment, checkerr.List) {
	e, errs := g.gen(n.Exception, e, b)
	excExpect := constraint.From(n.Exception)
	b.Add(excExpect, constraint.New(n.Pos(), constraint.Type{Name: names.NewSingle("Exception")}), "")

	switch exc := n.Exception.(type) {
	case *ast.FunctionCall:
		e = e.InsertRaises(names.NewSingle(exc.Name), n.Pos())
	case *ast.Id:
		e = e.InsertRaises(names.NewSingle(exc.Name), n.Pos())
	}
	return e, errs
}
