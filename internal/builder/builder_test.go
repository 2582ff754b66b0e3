package builder

import (
	"testing"

	"github.com/oocheck/oocheck/internal/constraint"
	"github.com/oocheck/oocheck/internal/srcpos"
)

func truthyExpected(line int) constraint.Expected {
	return constraint.New(srcpos.New(line, 1, line, 2), constraint.Truthy{})
}

func TestExitTopLevelSetFails(t *testing.T) {
	b := New()
	if err := b.ExitSet(srcpos.New(1, 1, 1, 1)); err == nil {
		t.Fatalf("expected an error exiting the top-level set")
	}
}

func TestNewSetInheritsClassStackAndConstraints(t *testing.T) {
	b := New()
	b.Add(truthyExpected(1), truthyExpected(1), "seed")
	b.NewSet(true)

	if len(b.frames[b.level].constraints) != 1 {
		t.Fatalf("expected the inherited set to carry the parent's constraint")
	}

	b.NewSet(false)
	if len(b.frames[b.level].constraints) != 0 {
		t.Fatalf("expected a non-inheriting set to start empty")
	}
}

func TestNewSetInClassAppendsToClassStack(t *testing.T) {
	b := New()
	b.NewSetInClass(false, "Animal")
	b.NewSetInClass(true, "Dog")

	stack := b.ClassStack()
	if len(stack) != 2 || stack[0] != "Animal" || stack[1] != "Dog" {
		t.Fatalf("unexpected class stack: %v", stack)
	}
}

func TestExitSetMovesToFinishedAndAllConstrPreservesOrder(t *testing.T) {
	b := New()
	b.Add(truthyExpected(1), truthyExpected(1), "top-level")

	b.NewSet(false)
	b.Add(truthyExpected(2), truthyExpected(2), "nested")
	if err := b.ExitSet(srcpos.New(2, 1, 2, 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sets := b.AllConstr()
	if len(sets) != 2 {
		t.Fatalf("expected 2 sets (1 finished + 1 live), got %d", len(sets))
	}
	if sets[0].Constraints[0].Msg != "nested" {
		t.Fatalf("expected finished sets first, got %q", sets[0].Constraints[0].Msg)
	}
	if sets[1].Constraints[0].Msg != "top-level" {
		t.Fatalf("expected the live top-level set last, got %q", sets[1].Constraints[0].Msg)
	}
}

func TestRemoveExpectedDropsMatchingConstraints(t *testing.T) {
	b := New()
	resource := truthyExpected(5)
	other := constraint.New(srcpos.New(6, 1, 6, 2), constraint.Stringy{})

	b.Add(resource, other, "with-binding")
	b.Add(other, other, "unrelated")
	b.RemoveExpected(resource)

	live := b.frames[b.level].constraints
	if len(live) != 1 || live[0].Msg != "unrelated" {
		t.Fatalf("expected only the unrelated constraint to survive, got %+v", live)
	}
}

func TestAddConstraintPreservesFlagAndIdents(t *testing.T) {
	b := New()
	c := constraint.NewConstraint(truthyExpected(1), truthyExpected(1), "flagged").Flag().WithIdents([]string{"x"})
	b.AddConstraint(c)

	live := b.frames[b.level].constraints
	if len(live) != 1 || !live[0].IsFlag || len(live[0].Idents) != 1 || live[0].Idents[0] != "x" {
		t.Fatalf("unexpected constraint state: %+v", live)
	}
}

func TestNewSetDoesNotLeakIntoSibling(t *testing.T) {
	b := New()
	b.NewSet(false)
	b.Add(truthyExpected(1), truthyExpected(1), "sibling-a")
	if err := b.ExitSet(srcpos.New(1, 1, 1, 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b.NewSet(false)
	if len(b.frames[b.level].constraints) != 0 {
		t.Fatalf("a fresh non-inheriting sibling set should not see the previous sibling's constraints")
	}
}
