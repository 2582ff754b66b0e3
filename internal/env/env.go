// Package env implements the Environment (spec.md §4.5): the lexical
// scope the Generator threads alongside the Builder, carrying variable
// bindings, shadow-rename bookkeeping, loop/class/define-mode flags, the
// declared return type and raises set, and the temp-name counter.
//
// Environment is an immutable value type: every mutator returns a new
// Environment rather than mutating the receiver, mirroring the teacher's
// functional-update style for its own scope objects.
package env

import (
	"fmt"

	"github.com/oocheck/oocheck/internal/constraint"
	"github.com/oocheck/oocheck/internal/names"
	"github.com/oocheck/oocheck/internal/srcpos"
)

// Self is the reserved identifier bound to the instance inside a class
// body; it is never shadow-renamed (spec.md §4.5).
const Self = "self"

// TempPrefix is the prefix minted by TempVar (spec.md §6).
const TempPrefix = "$t"

// Binding is one (mutable, Expected) pair a variable may carry. A
// variable's value is a *set* of Bindings because union/intersect across
// branches can legitimately yield more than one (spec.md §4.5).
type Binding struct {
	Mutable bool
	Expect  constraint.Expected
}

// Environment is the lexical scope the generator threads through the AST
// walk.
type Environment struct {
	inLoop             bool
	lastStmtInFunction bool
	isDefineMode       bool
	returnType         *constraint.Expected
	raises             *constraint.Expected
	classType          constraint.Shape

	vars         map[string][]Binding
	varMappings  map[string]string
	unassigned   map[string]struct{}
	tempCounter  int
}

// New returns an empty top-level Environment.
func New() Environment {
	return Environment{
		vars:        map[string][]Binding{},
		varMappings: map[string]string{},
		unassigned:  map[string]struct{}{},
	}
}

func (e Environment) clone() Environment {
	vars := make(map[string][]Binding, len(e.vars))
	for k, v := range e.vars {
		vars[k] = append([]Binding(nil), v...)
	}
	mappings := make(map[string]string, len(e.varMappings))
	for k, v := range e.varMappings {
		mappings[k] = v
	}
	unassigned := make(map[string]struct{}, len(e.unassigned))
	for k := range e.unassigned {
		unassigned[k] = struct{}{}
	}
	e.vars = vars
	e.varMappings = mappings
	e.unassigned = unassigned
	return e
}

// InLoop reports whether the environment is nested inside a loop body.
func (e Environment) InLoop() bool { return e.inLoop }

// LastStmtInFunction reports whether the current statement is the final
// one of an enclosing function body (so its value is the return value).
func (e Environment) LastStmtInFunction() bool { return e.lastStmtInFunction }

// IsDefineMode reports whether identifiers encountered now should be
// treated as bindings rather than lookups (spec.md §4.5).
func (e Environment) IsDefineMode() bool { return e.isDefineMode }

// ReturnType returns the declared/expected return type, if any.
func (e Environment) ReturnType() (constraint.Expected, bool) {
	if e.returnType == nil {
		return constraint.Expected{}, false
	}
	return *e.returnType, true
}

// Raises returns the accumulated Raises Expected, if any.
func (e Environment) Raises() (constraint.Expected, bool) {
	if e.raises == nil {
		return constraint.Expected{}, false
	}
	return *e.raises, true
}

// ClassType returns the enclosing class's Shape, if the environment is
// inside a class body.
func (e Environment) ClassType() (constraint.Shape, bool) {
	return e.classType, e.classType != nil
}

// Unassigned returns the set of identifiers still required to be assigned
// before the end of scope.
func (e Environment) Unassigned() map[string]struct{} {
	out := make(map[string]struct{}, len(e.unassigned))
	for k := range e.unassigned {
		out[k] = struct{}{}
	}
	return out
}

// DefineMode returns a copy with IsDefineMode set.
func (e Environment) DefineMode(on bool) Environment {
	e = e.clone()
	e.isDefineMode = on
	return e
}

// InLoopScope returns a copy with InLoop set (spec.md §4.5 "in_loop()").
func (e Environment) InLoopScope() Environment {
	e = e.clone()
	e.inLoop = true
	return e
}

// WithReturnType records the expected return type and marks the next
// statement threaded through as the function's last (spec.md §4.5
// "return_type(e)").
func (e Environment) WithReturnType(expect constraint.Expected) Environment {
	e = e.clone()
	e.returnType = &expect
	e.lastStmtInFunction = true
	return e
}

// NotLastStmt clears the last-statement-in-function flag; gen_vec uses
// this for every statement but the final one of a sequence (spec.md
// §4.6 "gen_vec").
func (e Environment) NotLastStmt() Environment {
	e = e.clone()
	e.lastStmtInFunction = false
	return e
}

// InsertRaises stores Raises{name} at pos iff name is non-empty (spec.md
// §4.5 "insert_raises").
func (e Environment) InsertRaises(raisesName names.Name, pos srcpos.Position) Environment {
	if raisesName.IsEmpty() {
		return e
	}
	e = e.clone()
	expect := constraint.New(pos, constraint.Raises{Names: raisesName})
	e.raises = &expect
	return e
}

// InClass inserts self bound to class's Expected (never shadowed) and
// records class_type (spec.md §4.5 "in_class(expected)").
func (e Environment) InClass(class constraint.Expected) Environment {
	e = e.insertVar(false, Self, class)
	e.classType = class.Expect
	return e
}

// InsertVar binds var to expect with the given mutability, applying the
// shadow-rename rule: `self` is never shadowed; any other already-bound
// name is renamed to the smallest-k `var@k` not yet bound, and the
// rename is recorded in var_mappings (spec.md §4.5).
func (e Environment) InsertVar(mutable bool, v string, expect constraint.Expected) Environment {
	return e.insertVar(mutable, v, expect)
}

func (e Environment) insertVar(mutable bool, v string, expect constraint.Expected) Environment {
	e = e.clone()
	target := v
	if v != Self {
		if _, bound := e.vars[v]; bound {
			offset := 0
			candidate := fmt.Sprintf("%s@%d", v, offset)
			for {
				if _, taken := e.vars[candidate]; !taken {
					break
				}
				offset++
				candidate = fmt.Sprintf("%s@%d", v, offset)
			}
			e.varMappings[v] = candidate
			target = candidate
		}
	}
	e.vars[target] = []Binding{{Mutable: mutable, Expect: expect}}
	return e
}

// Lookup resolves var: if var_mappings redirects it, Lookup recurses on
// the target; otherwise it reads vars directly (spec.md §4.5).
func (e Environment) Lookup(v string) ([]Binding, bool) {
	if target, redirected := e.varMappings[v]; redirected {
		return e.Lookup(target)
	}
	bindings, ok := e.vars[v]
	return bindings, ok
}

// Union combines two environments' variable bindings per key
// (per-key union of the (mutable, Expected) sets), with var_mappings
// merged favouring e's own entries on conflict (spec.md §4.5).
func (e Environment) Union(o Environment) Environment {
	e = e.clone()
	for k, otherSet := range o.vars {
		e.vars[k] = unionBindings(e.vars[k], otherSet)
	}
	for k, v := range o.varMappings {
		if _, exists := e.varMappings[k]; !exists {
			e.varMappings[k] = v
		}
	}
	return e
}

func unionBindings(a, b []Binding) []Binding {
	out := append([]Binding(nil), a...)
	for _, bind := range b {
		if !containsBinding(out, bind) {
			out = append(out, bind)
		}
	}
	return out
}

func containsBinding(set []Binding, b Binding) bool {
	for _, existing := range set {
		if existing.Mutable == b.Mutable && existing.Expect.StructurallyEqual(b.Expect) {
			return true
		}
	}
	return false
}

// Intersect keeps only keys present in both environments, unioning their
// value sets; var_mappings keeps only keys present in both (spec.md
// §4.5).
func (e Environment) Intersect(o Environment) Environment {
	out := e.clone()
	vars := map[string][]Binding{}
	for k, leftSet := range e.vars {
		if rightSet, ok := o.vars[k]; ok {
			vars[k] = unionBindings(leftSet, rightSet)
		}
	}
	out.vars = vars

	mappings := map[string]string{}
	for k, v := range e.varMappings {
		if _, ok := o.varMappings[k]; ok {
			mappings[k] = v
		}
	}
	out.varMappings = mappings
	return out
}

// TempVar mints a fresh temp-name string and returns the environment with
// the counter advanced (spec.md §4.5 "temp_var()").
func (e Environment) TempVar() (string, Environment) {
	e = e.clone()
	name := fmt.Sprintf("%s%d", TempPrefix, e.tempCounter)
	e.tempCounter++
	return name, e
}

// WithUnassigned records identifiers that must be assigned before
// end-of-scope (spec.md §4.5 "with_unassigned(set)").
func (e Environment) WithUnassigned(vars []string) Environment {
	e = e.clone()
	set := make(map[string]struct{}, len(vars))
	for _, v := range vars {
		set[v] = struct{}{}
	}
	e.unassigned = set
	return e
}

// AssignedTo removes var from the unassigned set; a no-op if absent
// (spec.md §4.5 "assigned_to(var)").
func (e Environment) AssignedTo(v string) Environment {
	e = e.clone()
	delete(e.unassigned, v)
	return e
}
