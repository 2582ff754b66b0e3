// Package classctx defines the Class Context contract (spec.md §4.1): a
// read-only registry of classes, functions, and fields that the
// generator and unifier consult but never mutate. Its *construction* is
// an external collaborator (a prior pass, out of scope per spec.md §1);
// this package only defines the interface the core depends on, plus a
// small in-memory implementation used by tests and the CLI fixture
// loader.
package classctx

import (
	"fmt"

	"github.com/oocheck/oocheck/internal/names"
	"github.com/oocheck/oocheck/internal/srcpos"
)

// FieldRecord is one declared field of a class: (name, type, private).
type FieldRecord struct {
	Name    string
	Type    names.Name
	Private bool
}

// FunctionRecord is one function signature, at class or top level:
// {name, arguments, ret_ty, raises, private}.
type FunctionRecord struct {
	Name    string
	Args    []ArgRecord
	Ret     names.Name
	Raises  []string
	Private bool
}

// ArgRecord is one function argument: {name, type (optional), has_default,
// vararg, mutable}.
type ArgRecord struct {
	Name       string
	Type       names.Name // Empty when the argument carries no declared type
	HasType    bool
	HasDefault bool
	Vararg     bool
	Mutable    bool
}

// Class is the handle returned by Context.Class: fields, field/fun
// lookup, parent queries, constructors, and the class's own Name
// (spec.md §4.1).
type Class interface {
	// Fields returns every declared field, in declaration order.
	Fields() []FieldRecord
	// Field looks up a single field by name.
	Field(name string, pos srcpos.Position) (FieldRecord, error)
	// Fun returns the set of function records matching name (more than
	// one only when overloaded).
	Fun(name string, pos srcpos.Position) ([]FunctionRecord, error)
	// HasParent reports whether candidate names this class or one of its
	// ancestors.
	HasParent(candidate string, pos srcpos.Position) (bool, error)
	// Constructor returns the set of constructor argument lists (plural:
	// a class may declare overloaded constructors, spec.md's
	// supplemented "constructor argument lists as a set" behaviour).
	Constructor() [][]ArgRecord
	// Name returns this class's own Name.
	Name() names.Name
}

// Context is the read-only registry the core consults (spec.md §4.1).
type Context interface {
	// Class resolves a class by Name at position p.
	Class(n names.Name, p srcpos.Position) (Class, error)
	// Function resolves a top-level function by name at position p.
	Function(name string, p srcpos.Position) (FunctionRecord, error)
	// HasParent answers the name-algebra-level ancestry query without
	// requiring a full Class handle; names.ParentChecker is satisfied
	// structurally by any Context.
	HasParent(candidate, ancestor string, p srcpos.Position) (bool, error)
}

// FailureKind distinguishes the three lookup failure shapes named in
// spec.md §4.1.
type FailureKind int

const (
	UnknownType FailureKind = iota
	UnknownFunction
	UnknownField
)

func (k FailureKind) String() string {
	switch k {
	case UnknownType:
		return "UnknownType"
	case UnknownFunction:
		return "UnknownFunction"
	case UnknownField:
		return "UnknownField"
	default:
		return "UnknownFailure"
	}
}

// LookupError reports a failed class/function/field/fun lookup, carrying
// the position at which the lookup was attempted (spec.md §4.1).
type LookupError struct {
	Kind FailureKind
	Name string
	Pos  srcpos.Position
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: %q at %s", e.Kind, e.Name, e.Pos)
}

func newLookupError(kind FailureKind, name string, pos srcpos.Position) error {
	return &LookupError{Kind: kind, Name: name, Pos: pos}
}
