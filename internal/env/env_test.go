package env

import (
	"testing"

	"github.com/oocheck/oocheck/internal/constraint"
	"github.com/oocheck/oocheck/internal/names"
	"github.com/oocheck/oocheck/internal/srcpos"
)

func intExpected(line int) constraint.Expected {
	return constraint.New(srcpos.New(line, 1, line, 1), constraint.Type{Name: names.NewSingle("Int")})
}

func strExpected(line int) constraint.Expected {
	return constraint.New(srcpos.New(line, 1, line, 1), constraint.Type{Name: names.NewSingle("String")})
}

func TestInsertAndLookupVar(t *testing.T) {
	e := New()
	e = e.InsertVar(false, "x", intExpected(1))

	bindings, ok := e.Lookup("x")
	if !ok || len(bindings) != 1 || !bindings[0].Expect.StructurallyEqual(intExpected(1)) {
		t.Fatalf("unexpected lookup result: %+v", bindings)
	}
}

func TestInsertVarShadowsWithSmallestFreeSuffix(t *testing.T) {
	e := New()
	e = e.InsertVar(false, "x", intExpected(1))
	e = e.InsertVar(false, "x", strExpected(2))

	if _, ok := e.Lookup("x@0"); !ok {
		t.Fatalf("expected the second binding to shadow as x@0")
	}
	bindings, ok := e.Lookup("x")
	if !ok || !bindings[0].Expect.StructurallyEqual(strExpected(2)) {
		t.Fatalf("lookup of x should redirect through var_mappings to the shadowed binding")
	}
}

func TestInsertVarNeverShadowsSelf(t *testing.T) {
	e := New()
	classExpect := constraint.New(srcpos.New(1, 1, 1, 1), constraint.Type{Name: names.NewSingle("Animal")})
	e = e.InClass(classExpect)
	e = e.InsertVar(false, Self, intExpected(2))

	bindings, ok := e.Lookup(Self)
	if !ok || len(bindings) != 1 {
		t.Fatalf("self should be overwritten in place, never shadow-renamed")
	}
	if _, shadowed := e.Lookup("self@0"); shadowed {
		t.Fatalf("self must never be shadow-renamed")
	}
}

func TestInClassSetsClassTypeAndSelf(t *testing.T) {
	e := New()
	classExpect := constraint.New(srcpos.New(1, 1, 1, 1), constraint.Type{Name: names.NewSingle("Animal")})
	e = e.InClass(classExpect)

	ct, ok := e.ClassType()
	if !ok || !ct.(constraint.Type).Name.Equal(names.NewSingle("Animal")) {
		t.Fatalf("expected class_type to be set to Animal")
	}
	if _, ok := e.Lookup(Self); !ok {
		t.Fatalf("expected self to be bound")
	}
}

func TestUnionCombinesPerKeyBindingSets(t *testing.T) {
	a := New().InsertVar(false, "x", intExpected(1))
	b := New().InsertVar(false, "x", strExpected(2))

	u := a.Union(b)
	bindings, ok := u.Lookup("x")
	if !ok || len(bindings) != 2 {
		t.Fatalf("expected union to keep both bindings for x, got %+v", bindings)
	}
}

func TestIntersectKeepsOnlySharedKeys(t *testing.T) {
	a := New().InsertVar(false, "x", intExpected(1))
	a = a.InsertVar(false, "y", intExpected(1))
	b := New().InsertVar(false, "x", strExpected(2))

	i := a.Intersect(b)
	if _, ok := i.Lookup("y"); ok {
		t.Fatalf("y is only in one branch and should be discarded by intersect")
	}
	bindings, ok := i.Lookup("x")
	if !ok || len(bindings) != 2 {
		t.Fatalf("expected x's bindings unioned across both branches, got %+v", bindings)
	}
}

func TestTempVarIncrementsCounter(t *testing.T) {
	e := New()
	first, e := e.TempVar()
	second, _ := e.TempVar()

	if first == second {
		t.Fatalf("expected distinct temp names, got %q twice", first)
	}
	if first != "$t0" || second != "$t1" {
		t.Fatalf("unexpected temp names: %q, %q", first, second)
	}
}

func TestWithUnassignedAndAssignedTo(t *testing.T) {
	e := New().WithUnassigned([]string{"a", "b"})
	unassigned := e.Unassigned()
	if len(unassigned) != 2 {
		t.Fatalf("expected 2 unassigned vars, got %d", len(unassigned))
	}

	e = e.AssignedTo("a")
	unassigned = e.Unassigned()
	if _, still := unassigned["a"]; still {
		t.Fatalf("a should have been removed from the unassigned set")
	}
	if _, still := unassigned["b"]; !still {
		t.Fatalf("b should still be unassigned")
	}
}

func TestAssignedToMissingVarIsNoop(t *testing.T) {
	e := New().WithUnassigned([]string{"a"})
	e = e.AssignedTo("nonexistent")
	if len(e.Unassigned()) != 1 {
		t.Fatalf("assigning a var not in the set should be a no-op")
	}
}

func TestInsertRaisesIgnoresEmptyName(t *testing.T) {
	e := New()
	e = e.InsertRaises(names.Empty, srcpos.New(1, 1, 1, 1))
	if _, ok := e.Raises(); ok {
		t.Fatalf("an empty raises name should not populate the raises Expected")
	}

	e = e.InsertRaises(names.NewSingle("ValueError"), srcpos.New(1, 1, 1, 1))
	r, ok := e.Raises()
	if !ok || !r.Expect.(constraint.Raises).Names.Equal(names.NewSingle("ValueError")) {
		t.Fatalf("expected raises to be recorded")
	}
}

func TestReturnTypeSetsLastStmtInFunction(t *testing.T) {
	e := New()
	if e.LastStmtInFunction() {
		t.Fatalf("fresh environment should not start as last-stmt-in-function")
	}
	e = e.WithReturnType(intExpected(1))
	if !e.LastStmtInFunction() {
		t.Fatalf("WithReturnType should set last_stmt_in_function")
	}
	e = e.NotLastStmt()
	if e.LastStmtInFunction() {
		t.Fatalf("NotLastStmt should clear the flag")
	}
}

func TestCloneIsolatesMutation(t *testing.T) {
	a := New().InsertVar(false, "x", intExpected(1))
	b := a.InsertVar(false, "y", intExpected(2))

	if _, ok := b.Lookup("y"); !ok {
		t.Fatalf("the derived environment should see its own insertion")
	}
	if _, ok := a.Lookup("y"); ok {
		t.Fatalf("mutating a derived environment must not affect the original")
	}
}
