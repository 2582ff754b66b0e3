package generate

import (
	"github.com/oocheck/oocheck/internal/ast"
	"github.com/oocheck/oocheck/internal/builder"
	"github.com/oocheck/oocheck/internal/checkerr"
	"github.com/oocheck/oocheck/internal/constraint"
	"github.com/oocheck/oocheck/internal/env"
	"github.com/oocheck/oocheck/internal/names"
)

// genClassDef opens a class-tagged constraint set (spec.md §4.4
// "new_set_in_class"), binds `self` to the class's own Name, pre-declares
// every field as a bound identifier so method bodies can reference them
// unqualified, and generates the class body under that Environment.
func (g *Generator) genClassDef(n *ast.ClassDef, e env.Environment, b *builder.Builder) (env.Environment, checkerr.List) {
	b.NewSetInClass(false, n.Name)

	classType := constraint.New(n.Pos(), constraint.Type{Name: names.NewSingle(n.Name)})
	classEnv := e.InClass(classType)

	for _, f := range n.Fields {
		fieldExpect := constraint.New(f.Pos(), constraint.Field{Name: f.Name})
		classEnv = classEnv.InsertVar(true, f.Name, fieldExpect)
		if f.Type != nil {
			b.Add(fieldExpect, constraint.New(f.Pos(), constraint.Type{Name: toName(f.Type)}), "")
		}
	}

	_, errs := g.genVec(n.Body, classEnv, b)

	if err := b.ExitSet(n.Pos()); err != nil {
		errs = append(errs, checkerr.New(checkerr.IllegalControl, n.Pos(), err.Error()))
	}
	return e, errs
}
