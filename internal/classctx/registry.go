package classctx

import (
	"github.com/oocheck/oocheck/internal/names"
	"github.com/oocheck/oocheck/internal/srcpos"
)

// classDef is the in-memory storage shape backing a registered class; it
// satisfies Class.
type classDef struct {
	name        names.Name
	parent      string // empty for no parent
	fields      []FieldRecord
	funs        map[string][]FunctionRecord
	constructor [][]ArgRecord
	registry    *Registry
}

func (c *classDef) Fields() []FieldRecord { return c.fields }

func (c *classDef) Field(name string, pos srcpos.Position) (FieldRecord, error) {
	for _, f := range c.fields {
		if f.Name == name {
			return f, nil
		}
	}
	return FieldRecord{}, newLookupError(UnknownField, name, pos)
}

func (c *classDef) Fun(name string, pos srcpos.Position) ([]FunctionRecord, error) {
	fs, ok := c.funs[name]
	if !ok {
		return nil, newLookupError(UnknownFunction, name, pos)
	}
	return fs, nil
}

func (c *classDef) HasParent(candidate string, pos srcpos.Position) (bool, error) {
	return c.registry.HasParent(c.name.String(), candidate, pos)
}

func (c *classDef) Constructor() [][]ArgRecord { return c.constructor }

func (c *classDef) Name() names.Name { return c.name }

// Registry is a minimal, in-memory Context: a flat map of class name ->
// definition plus top-level functions. It is grounded in the teacher's
// SymbolTable (internal/semantic/symbol_table.go) — a plain map with no
// scoping, since the Class Context has a single flat namespace rather
// than the lexically-nested scopes Environment manages. It exists for
// tests and the CLI's fixture loader; a real deployment's class-context
// construction pass (out of scope per spec.md §1) would likely replace
// it entirely.
type Registry struct {
	classes   map[string]*classDef
	functions map[string]FunctionRecord
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		classes:   map[string]*classDef{},
		functions: map[string]FunctionRecord{},
	}
}

// DefineClass registers a class by its simple name, optional parent name
// (empty for none), field list, function table, and constructor
// argument-list set.
func (r *Registry) DefineClass(name, parent string, fields []FieldRecord, funs map[string][]FunctionRecord, ctors [][]ArgRecord) {
	if funs == nil {
		funs = map[string][]FunctionRecord{}
	}
	r.classes[name] = &classDef{
		name:        names.NewSingle(name),
		parent:      parent,
		fields:      fields,
		funs:        funs,
		constructor: ctors,
		registry:    r,
	}
}

// DefineFunction registers a top-level function.
func (r *Registry) DefineFunction(f FunctionRecord) {
	r.functions[f.Name] = f
}

// Class resolves a class by Name; only Single-variant class Names are
// resolvable (a Tuple or Function Name has no class-context entry).
func (r *Registry) Class(n names.Name, p srcpos.Position) (Class, error) {
	className, ok := singleClassName(n)
	if !ok {
		return nil, newLookupError(UnknownType, n.String(), p)
	}
	c, ok := r.classes[className]
	if !ok {
		return nil, newLookupError(UnknownType, className, p)
	}
	return c, nil
}

func singleClassName(n names.Name) (string, bool) {
	ts := n.TrueNames()
	if len(ts) != 1 {
		return "", false
	}
	single, ok := ts[0].Variant.(names.Single)
	if !ok {
		return "", false
	}
	return single.Name, true
}

// Function resolves a top-level function.
func (r *Registry) Function(name string, p srcpos.Position) (FunctionRecord, error) {
	f, ok := r.functions[name]
	if !ok {
		return FunctionRecord{}, newLookupError(UnknownFunction, name, p)
	}
	return f, nil
}

// HasParent reports whether ancestor is candidate itself or one of
// candidate's ancestors, walking candidate's parent chain. Unknown classes are never parents
// of anything (they fail closed rather than raising a lookup error,
// matching how names.IsSuperSet treats HasParent as a boolean oracle).
func (r *Registry) HasParent(candidate, ancestor string, p srcpos.Position) (bool, error) {
	if candidate == ancestor {
		return true, nil
	}
	c, ok := r.classes[candidate]
	if !ok || c.parent == "" {
		return false, nil
	}
	return r.HasParent(c.parent, ancestor, p)
}
