package ast

import "github.com/oocheck/oocheck/internal/srcpos"

// FunctionCall is a direct call by Name with ordered Args (spec.md §4.6
// "FunctionCall(name, args)").
type FunctionCall struct {
	base
	Name string
	Args []Expression
}

func NewFunctionCall(pos srcpos.Position, name string, args []Expression) *FunctionCall {
	return &FunctionCall{base: base{pos}, Name: name, Args: args}
}

func (f *FunctionCall) expressionNode() {}
func (f *FunctionCall) String() string  { return f.Name }

// PropertyCall is a member projection `Instance.Property`. Property is
// either an *Id (field access), a *FunctionCall (method call — `self`
// prepended to its Args by the Generator), or a nested *PropertyCall for
// chained access `a.b.c` (spec.md §4.6 "PropertyCall").
type PropertyCall struct {
	base
	Instance Expression
	Property Expression
}

func NewPropertyCall(pos srcpos.Position, instance, property Expression) *PropertyCall {
	return &PropertyCall{base: base{pos}, Instance: instance, Property: property}
}

func (p *PropertyCall) expressionNode() {}
func (p *PropertyCall) String() string  { return "<property-call>" }

// Reassign is `left := right`, where left is an identifier, a chain ending
// in one, or a PropertyCall (spec.md §4.6 "Reassign").
type Reassign struct {
	base
	Left, Right Expression
}

func NewReassign(pos srcpos.Position, left, right Expression) *Reassign {
	return &Reassign{base: base{pos}, Left: left, Right: right}
}

func (r *Reassign) statementNode()  {}
func (r *Reassign) expressionNode() {}
func (r *Reassign) String() string  { return "<reassign>" }
