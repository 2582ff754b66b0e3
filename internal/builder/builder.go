// Package builder implements the Constraint Builder (spec.md §4.4): a
// stack of independent constraint sets, each tagged with the class stack
// active when it was opened, so unrelated function/class bodies produce
// independent, separately-solvable sub-problems.
package builder

import (
	"fmt"

	"github.com/oocheck/oocheck/internal/constraint"
	"github.com/oocheck/oocheck/internal/srcpos"
)

type frame struct {
	classStack  []string
	constraints []constraint.Constraint
}

func cloneFrame(f frame) frame {
	return frame{
		classStack:  append([]string(nil), f.classStack...),
		constraints: append([]constraint.Constraint(nil), f.constraints...),
	}
}

// Builder is the Constraint Builder. The zero value is not usable; use
// New.
type Builder struct {
	level    int
	frames   []frame // frames[level] is the live, top-of-stack set
	finished []frame
}

// New returns a Builder at level 0 with one empty live set.
func New() *Builder {
	return &Builder{frames: []frame{{}}}
}

// Level reports the current stack depth; 0 is the top-level script.
func (b *Builder) Level() int { return b.level }

// IsTopLevel reports whether the builder is at level 0.
func (b *Builder) IsTopLevel() bool { return b.level == 0 }

// NewSet pushes a fresh constraint set. When inherit is true, the new set
// starts as a copy of the current top set's class stack and constraints
// (spec.md §4.4).
func (b *Builder) NewSet(inherit bool) {
	top := b.frames[b.level]
	if inherit {
		b.frames = append(b.frames, cloneFrame(top))
	} else {
		b.frames = append(b.frames, frame{})
	}
	b.level++
}

// NewSetInClass pushes a fresh set exactly like NewSet, then appends class
// to its class stack (spec.md §4.4).
func (b *Builder) NewSetInClass(inherit bool, class string) {
	b.NewSet(inherit)
	top := &b.frames[b.level]
	top.classStack = append(top.classStack, class)
}

// ExitSet moves the current top set to the finished list and pops the
// stack. It fails if the stack is already at level 0 (spec.md §4.4).
func (b *Builder) ExitSet(pos srcpos.Position) error {
	if b.level == 0 {
		return fmt.Errorf("cannot exit top-level set at %s", pos)
	}
	b.finished = append(b.finished, b.frames[b.level])
	b.frames = b.frames[:b.level]
	b.level--
	return nil
}

// Add appends a new Constraint to the top set.
func (b *Builder) Add(parent, child constraint.Expected, msg string) {
	top := &b.frames[b.level]
	top.constraints = append(top.constraints, constraint.NewConstraint(parent, child, msg))
}

// AddConstraint appends an already-built Constraint (used when the caller
// needs Flag/WithIdents applied before insertion).
func (b *Builder) AddConstraint(c constraint.Constraint) {
	top := &b.frames[b.level]
	top.constraints = append(top.constraints, c)
}

// RemoveExpected drops every top-set constraint whose parent or child is
// structurally equal to e (spec.md §4.4, used when a `with`-bound alias
// exits scope).
func (b *Builder) RemoveExpected(e constraint.Expected) {
	top := &b.frames[b.level]
	kept := top.constraints[:0]
	for _, c := range top.constraints {
		if c.Parent.StructurallyEqual(e) || c.Child.StructurallyEqual(e) {
			continue
		}
		kept = append(kept, c)
	}
	top.constraints = kept
}

// ClassStack returns the current top set's class stack, most-recently
// entered last. Callers must not mutate the returned slice.
func (b *Builder) ClassStack() []string {
	return b.frames[b.level].classStack
}

// Set is one constraint set paired with the class stack active when it
// was produced, the unit ConstraintSet the Unifier consumes (spec.md
// §4.4/§4.7).
type Set struct {
	ClassStack  []string
	Constraints []constraint.Constraint
}

// AllConstr concatenates the finished sets and the remaining live sets,
// in the order finished-first (spec.md §4.4), and consumes the builder.
func (b *Builder) AllConstr() []Set {
	out := make([]Set, 0, len(b.finished)+len(b.frames))
	for _, f := range b.finished {
		out = append(out, Set{ClassStack: f.classStack, Constraints: f.constraints})
	}
	for _, f := range b.frames {
		out = append(out, Set{ClassStack: f.classStack, Constraints: f.constraints})
	}
	return out
}
