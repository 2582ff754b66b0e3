// Package unify implements the Unifier (spec.md §4.7): given the
// Constraint Builder's finished constraint sets, it repeatedly pops a
// constraint, dispatches on the shape pair of its two sides, and either
// resolves it (possibly pushing new constraints or recording a finished
// Name), substitutes it away, or reinserts it once before failing with an
// Ambiguous error. Sets are independent: a failure in one does not stop
// the others from draining (spec.md §5, §7).
package unify

import (
	"github.com/oocheck/oocheck/internal/builder"
	"github.com/oocheck/oocheck/internal/checkerr"
	"github.com/oocheck/oocheck/internal/classctx"
	"github.com/oocheck/oocheck/internal/constraint"
	"github.com/oocheck/oocheck/internal/srcpos"
	"github.com/oocheck/oocheck/internal/typedast"
)

// unifier holds the mutable state of one constraint set's solve: its FIFO
// queue and the shared finished map it contributes to.
type unifier struct {
	ctx        classctx.Context
	classStack []string
	queue      []constraint.Constraint
	finished   typedast.Finished
}

// Run drains every constraint set the Builder produced, in finished-then-
// live order (spec.md §4.4/§5), and returns the accumulated finished map
// plus every error encountered across all sets.
func Run(sets []builder.Set, ctx classctx.Context) (typedast.Finished, checkerr.List) {
	finished := typedast.NewFinished()
	var errs checkerr.List
	for _, set := range sets {
		u := &unifier{
			ctx:        ctx,
			classStack: set.ClassStack,
			queue:      append([]constraint.Constraint(nil), set.Constraints...),
			finished:   finished,
		}
		errs = append(errs, u.drain()...)
	}
	return finished, errs
}

// drain runs the main loop for one constraint set (spec.md §4.7).
func (u *unifier) drain() checkerr.List {
	var errs checkerr.List
	for len(u.queue) > 0 {
		c := u.queue[0]
		u.queue = u.queue[1:]

		matched, err := u.tryOrder(c.Parent, c.Child, c)
		if !matched {
			matched, err = u.tryOrder(c.Child, c.Parent, c)
		}
		if err != nil {
			errs = append(errs, toCheckErr(err, c))
			continue
		}
		if !matched {
			if rerr := u.reinsertOrFail(c); rerr != nil {
				errs = append(errs, toCheckErr(rerr, c))
			}
		}
	}
	return errs
}

// push appends a freshly derived constraint to the tail of the queue.
func (u *unifier) push(parent, child constraint.Expected) {
	u.queue = append(u.queue, constraint.NewConstraint(parent, child, ""))
}

// reinsertOrFail implements the flag-bit reinsertion discipline (spec.md
// §4.7 "Reinsertion discipline"): a constraint may be requeued once; a
// second attempt is Ambiguous.
func (u *unifier) reinsertOrFail(c constraint.Constraint) error {
	if c.IsFlag {
		return ambiguousErr{c}
	}
	u.queue = append(u.queue, c.Flag())
	return nil
}

func toCheckErr(err error, c constraint.Constraint) *checkerr.Error {
	if ce, ok := err.(unifyErr); ok {
		return checkerr.New(ce.kind, ce.pos, ce.msg)
	}
	if ae, ok := err.(ambiguousErr); ok {
		return checkerr.New(checkerr.Ambiguous, ae.c.Parent.Pos, ae.Error())
	}
	return checkerr.New(checkerr.TypeMismatch, c.Parent.Pos, err.Error())
}

// unifyErr carries a checkerr.Kind alongside the plain error message, so
// rule functions can report the right taxonomy entry without importing
// checkerr themselves into every branch.
type unifyErr struct {
	kind checkerr.Kind
	pos  srcpos.Position
	msg  string
}

func (e unifyErr) Error() string { return e.msg }

func newUnifyErr(kind checkerr.Kind, pos srcpos.Position, msg string) error {
	return unifyErr{kind: kind, pos: pos, msg: msg}
}

type ambiguousErr struct{ c constraint.Constraint }

func (e ambiguousErr) Error() string {
	return "ambiguous type: constraint could not be resolved after reinsertion at " + e.c.Parent.Pos.String()
}
