package ast

import "github.com/oocheck/oocheck/internal/srcpos"

// TypeExpr is a type annotation as written in source: a generic single
// name, a tuple of TypeExprs, or a function TypeExpr, optionally suffixed
// nullable. It is the thing a `Type{declared}` constraint (spec.md §4.6)
// is built from — distinct from names.Name, which is the *solved*
// representation.
type TypeExpr struct {
	base
	// Name and Generics are set for a single (possibly generic) type name.
	Name     string
	Generics []*TypeExpr
	// Elements is set for a tuple type.
	Elements []*TypeExpr
	// Args/Ret are set for a function type.
	Args []*TypeExpr
	Ret  *TypeExpr
	// Nullable marks a trailing `?`.
	Nullable bool
}

func NewSingleTypeExpr(pos srcpos.Position, name string, generics []*TypeExpr, nullable bool) *TypeExpr {
	return &TypeExpr{base: base{pos}, Name: name, Generics: generics, Nullable: nullable}
}

func NewTupleTypeExpr(pos srcpos.Position, elements []*TypeExpr, nullable bool) *TypeExpr {
	return &TypeExpr{base: base{pos}, Elements: elements, Nullable: nullable}
}

func NewFunctionTypeExpr(pos srcpos.Position, args []*TypeExpr, ret *TypeExpr, nullable bool) *TypeExpr {
	return &TypeExpr{base: base{pos}, Args: args, Ret: ret, Nullable: nullable}
}

func (t *TypeExpr) expressionNode() {}
func (t *TypeExpr) String() string  { return t.Name }

// IsTuple reports whether t describes a tuple type.
func (t *TypeExpr) IsTuple() bool { return t.Elements != nil }

// IsFunction reports whether t describes a function type.
func (t *TypeExpr) IsFunction() bool { return t.Ret != nil || t.Args != nil }
