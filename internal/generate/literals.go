package generate

import (
	"github.com/oocheck/oocheck/internal/ast"
	"github.com/oocheck/oocheck/internal/builder"
	"github.com/oocheck/oocheck/internal/checkerr"
	"github.com/oocheck/oocheck/internal/constraint"
	"github.com/oocheck/oocheck/internal/env"
	"github.com/oocheck/oocheck/internal/names"
	"github.com/oocheck/oocheck/internal/srcpos"
)

// genLiteral constrains a literal expression to its primitive Type
// (spec.md §4.6): Int/Real/Str/Bool each unify to their Type Name, None
// to the Nullable shape, and every sub-expression of an f-string is constrained Stringy.
func (g *Generator) genLiteral(n ast.Expression, e env.Environment, b *builder.Builder) (env.Environment, checkerr.List) {
	self := constraint.From(n)
	switch lit := n.(type) {
	case *ast.IntLit:
		b.Add(self, constraint.New(n.Pos(), constraint.Type{Name: names.NewSingle("Int")}), "")
	case *ast.RealLit:
		b.Add(self, constraint.New(n.Pos(), constraint.Type{Name: names.NewSingle("Float")}), "")
	case *ast.StrLit:
		b.Add(self, constraint.New(n.Pos(), constraint.Type{Name: names.NewSingle("String")}), "")
	case *ast.BoolLit:
		b.Add(self, constraint.New(n.Pos(), constraint.Type{Name: names.NewSingle("Bool")}), "")
	case *ast.NoneLit:
		b.Add(self, constraint.New(n.Pos(), constraint.Nullable{}), "")
	case *ast.FStringLit:
		b.Add(self, constraint.New(n.Pos(), constraint.Type{Name: names.NewSingle("String")}), "")
		var errs checkerr.List
		for _, part := range lit.Parts {
			b.Add(constraint.From(part), constraint.New(part.Pos(), constraint.Stringy{}), "")
			var sub checkerr.List
			e, sub = g.gen(part, e, b)
			errs = append(errs, sub...)
		}
		return e, errs
	}
	return e, nil
}

// genCollectionLit constrains List/Set/Tuple literals (spec.md §4.6). A
// List or Set is a Collection of a single shared element Expected unified
// against every element; a Tuple carries one Expected per element,
// positionally.
func (g *Generator) genCollectionLit(n ast.Expression, e env.Environment, b *builder.Builder) (env.Environment, checkerr.List) {
	self := constraint.From(n)
	var errs checkerr.List

	switch lit := n.(type) {
	case *ast.ListLit:
		elemExpect, ee, sub := g.genHomogeneousElements(lit.Elements, e, b)
		e = ee
		errs = append(errs, sub...)
		b.Add(self, constraint.New(n.Pos(), constraint.Collection{Ty: elemExpect}), "")
	case *ast.SetLit:
		elemExpect, ee, sub := g.genHomogeneousElements(lit.Elements, e, b)
		e = ee
		errs = append(errs, sub...)
		b.Add(self, constraint.New(n.Pos(), constraint.Collection{Ty: elemExpect}), "")
	case *ast.TupleLit:
		elements := make([]constraint.Expected, len(lit.Elements))
		for i, elem := range lit.Elements {
			elements[i] = constraint.From(elem)
			var sub checkerr.List
			e, sub = g.gen(elem, e, b)
			errs = append(errs, sub...)
		}
		b.Add(self, constraint.New(n.Pos(), constraint.Tuple{Elements: elements}), "")
	}
	return e, errs
}

// genHomogeneousElements unifies every element of a List/Set literal
// against a single shared Expected (the first element's), generating each
// element in turn, and returns that shared Expected for the Collection
// constraint together with the elements' generation errors.
func (g *Generator) genHomogeneousElements(elements []ast.Expression, e env.Environment, b *builder.Builder) (constraint.Expected, env.Environment, checkerr.List) {
	if len(elements) == 0 {
		return constraint.New(srcpos.Position{}, constraint.ExpressionAny{}), e, nil
	}
	shared := constraint.From(elements[0])
	var errs checkerr.List
	for _, elem := range elements {
		b.Add(shared, constraint.From(elem), "")
		var sub checkerr.List
		e, sub = g.gen(elem, e, b)
		errs = append(errs, sub...)
	}
	return shared, e, errs
}
