package generate

import (
	"github.com/oocheck/oocheck/internal/ast"
	"github.com/oocheck/oocheck/internal/builder"
	"github.com/oocheck/oocheck/internal/checkerr"
	"github.com/oocheck/oocheck/internal/constraint"
	"github.com/oocheck/oocheck/internal/env"
)

// genBinOp reduces an arithmetic/comparison operator to
// Access{lhs, Function{__op__, [rhs]}} unified with the operator's own
// result (spec.md §4.6/§6). And/Or are structural instead: both operands
// and the result are Truthy.
func (g *Generator) genBinOp(n *ast.BinOp, e env.Environment, b *builder.Builder) (env.Environment, checkerr.List) {
	self := constraint.From(n)
	var errs checkerr.List

	e, subLeft := g.gen(n.Left, e, b)
	errs = append(errs, subLeft...)
	e, subRight := g.gen(n.Right, e, b)
	errs = append(errs, subRight...)

	if n.Op == ast.OpAnd || n.Op == ast.OpOr {
		b.Add(constraint.From(n.Left), constraint.New(n.Left.Pos(), constraint.Truthy{}), "")
		b.Add(constraint.From(n.Right), constraint.New(n.Right.Pos(), constraint.Truthy{}), "")
		b.Add(self, constraint.New(n.Pos(), constraint.Truthy{}), "")
		return e, errs
	}

	dunder, ok := n.Op.Dunder()
	if !ok {
		return e, append(errs, checkerr.New(checkerr.Undefined, n.Pos(), "operator "+string(n.Op)+" has no dunder reduction"))
	}
	call := constraint.Access{
		Entity:        constraint.From(n.Left),
		FieldOrMethod: constraint.New(n.Pos(), constraint.Function{Name: dunder, Args: []constraint.Expected{constraint.From(n.Right)}}),
	}
	b.Add(self, constraint.New(n.Pos(), call), "")
	return e, errs
}

// genUnOp reduces Not structurally (operand and result both Truthy) and
// every other unary operator (currently only unary minus, sharing OpSub's
// dunder) to a zero-argument Access{operand, Function{__op__, []}}.
func (g *Generator) genUnOp(n *ast.UnOp, e env.Environment, b *builder.Builder) (env.Environment, checkerr.List) {
	self := constraint.From(n)
	e, errs := g.gen(n.Operand, e, b)

	if n.Op == ast.OpNot {
		b.Add(constraint.From(n.Operand), constraint.New(n.Operand.Pos(), constraint.Truthy{}), "")
		b.Add(self, constraint.New(n.Pos(), constraint.Truthy{}), "")
		return e, errs
	}

	dunder, ok := n.Op.Dunder()
	if !ok {
		return e, append(errs, checkerr.New(checkerr.Undefined, n.Pos(), "operator "+string(n.Op)+" has no dunder reduction"))
	}
	call := constraint.Access{
		Entity:        constraint.From(n.Operand),
		FieldOrMethod: constraint.New(n.Pos(), constraint.Function{Name: dunder, Args: nil}),
	}
	b.Add(self, constraint.New(n.Pos(), call), "")
	return e, errs
}
