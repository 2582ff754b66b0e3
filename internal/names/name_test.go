package names

import (
	"testing"

	"github.com/oocheck/oocheck/internal/srcpos"
)

// fakeCtx is a minimal ParentChecker for algebra tests; it does not model
// a real Class Context (internal/classctx does that) — it only answers
// the ancestry questions these tests need.
type fakeCtx struct {
	parents map[string][]string // class -> direct parents
}

func (c fakeCtx) HasParent(candidate, ancestor string, _ srcpos.Position) (bool, error) {
	if candidate == ancestor {
		return true, nil
	}
	for _, p := range c.parents[candidate] {
		ok, err := c.HasParent(p, ancestor, srcpos.Position{})
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

func TestIsSuperSetReflexiveTransitive(t *testing.T) {
	ctx := fakeCtx{parents: map[string][]string{
		"Dog":    {"Animal"},
		"Animal": {"Object"},
	}}
	dog := NewSingle("Dog")
	animal := NewSingle("Animal")
	object := NewSingle("Object")

	for _, n := range []Name{dog, animal, object} {
		ok, err := n.IsSuperSet(n, ctx, srcpos.Position{})
		if err != nil || !ok {
			t.Fatalf("%s should be a super-set of itself", n)
		}
	}

	ok, err := animal.IsSuperSet(dog, ctx, srcpos.Position{})
	if err != nil || !ok {
		t.Fatalf("Animal should be a super-set of Dog")
	}
	ok, err = object.IsSuperSet(dog, ctx, srcpos.Position{})
	if err != nil || !ok {
		t.Fatalf("transitivity: Object should be a super-set of Dog")
	}
	ok, err = dog.IsSuperSet(animal, ctx, srcpos.Position{})
	if err != nil || ok {
		t.Fatalf("Dog should not be a super-set of Animal")
	}
}

func TestAnyIsBidirectionalEscapeHatch(t *testing.T) {
	ctx := fakeCtx{}
	any := NewSingle(Any)
	str := NewSingle("String")

	ok, err := any.IsSuperSet(str, ctx, srcpos.Position{})
	if err != nil || !ok {
		t.Fatalf("any should be a super-set of String")
	}
	// Documented open question (spec.md §9): any is also covered by
	// everything, not just by itself.
	ok, err = str.IsSuperSet(any, ctx, srcpos.Position{})
	if err != nil || !ok {
		t.Fatalf("String should be treated as a super-set of any (escape hatch)")
	}
}

func TestNullableLaw(t *testing.T) {
	ctx := fakeCtx{}
	integer := NewSingle("Int")
	nullableInt := integer.AsNullable()

	if !nullableInt.IsNullable() {
		t.Fatalf("AsNullable result must report nullable")
	}

	none := fromTrueName(TrueName{Nullable: true, Variant: Single{Name: NoneClass}})
	ok, err := nullableInt.IsSuperSet(none, ctx, srcpos.Position{})
	if err != nil || !ok {
		t.Fatalf("N? should be a super-set of None")
	}
	ok, err = nullableInt.IsSuperSet(integer, ctx, srcpos.Position{})
	if err != nil || !ok {
		t.Fatalf("N? should be a super-set of N")
	}
}

func TestTupleAndCallableIsomorphism(t *testing.T) {
	ctx := fakeCtx{}
	tupleSingle := NewSingle(tupleClass, NewSingle("Int"), NewSingle("String"))
	structuralTuple := NewTuple(NewSingle("Int"), NewSingle("String"))

	ok, err := tupleSingle.IsSuperSet(structuralTuple, ctx, srcpos.Position{})
	if err != nil || !ok {
		t.Fatalf("Tuple[..] single name should cover its structural counterpart")
	}

	callableSingle := NewSingle(callableClass)
	fn := NewFunction([]Name{NewSingle("Int")}, NewSingle("Bool"))
	ok, err = callableSingle.IsSuperSet(fn, ctx, srcpos.Position{})
	if err != nil || !ok {
		t.Fatalf("Callable[..] single name should cover its structural counterpart")
	}
}

func TestUnionDeduplicates(t *testing.T) {
	a := NewSingle("Int")
	b := NewSingle("Int")
	c := NewSingle("String")

	u := a.Union(b).Union(c)
	if len(u.TrueNames()) != 2 {
		t.Fatalf("expected 2 distinct TrueNames, got %d: %s", len(u.TrueNames()), u)
	}
}

func TestMutableDistinctFromImmutable(t *testing.T) {
	immutable := NewSingle("Int")
	mutable := NewMutableSingle("Int")
	if immutable.Equal(mutable) {
		t.Fatalf("mutable and immutable TrueNames of the same variant must differ")
	}
	u := immutable.Union(mutable)
	if len(u.TrueNames()) != 2 {
		t.Fatalf("union of mutable+immutable variants should keep both distinct")
	}
}

func TestSubstituteReplacesTemp(t *testing.T) {
	temp := NewTemp(0)
	if !temp.ContainsTemp() {
		t.Fatalf("NewTemp result should contain a temp")
	}

	m := map[string]Name{"$t0": NewSingle("Int")}
	resolved := temp.Substitute(m)
	if resolved.ContainsTemp() {
		t.Fatalf("substitution should eliminate the temp: got %s", resolved)
	}
	if !resolved.Equal(NewSingle("Int")) {
		t.Fatalf("expected Int, got %s", resolved)
	}
}

func TestSubstituteNestedInGenericsTupleAndFunction(t *testing.T) {
	m := map[string]Name{"$t0": NewSingle("Int")}

	generic := NewSingle("List", NewTemp(0))
	if !generic.Substitute(m).Equal(NewSingle("List", NewSingle("Int"))) {
		t.Fatalf("temp inside generics should be substituted")
	}

	tuple := NewTuple(NewTemp(0), NewSingle("String"))
	if !tuple.Substitute(m).Equal(NewTuple(NewSingle("Int"), NewSingle("String"))) {
		t.Fatalf("temp inside tuple should be substituted")
	}

	fn := NewFunction([]Name{NewTemp(0)}, NewTemp(0))
	want := NewFunction([]Name{NewSingle("Int")}, NewSingle("Int"))
	if !fn.Substitute(m).Equal(want) {
		t.Fatalf("temp inside function args/ret should be substituted")
	}
}

func TestTempMapDerivesMappingFromMatchingShape(t *testing.T) {
	lhs := NewTuple(NewTemp(0), NewTemp(1))
	rhs := NewTuple(NewSingle("Int"), NewSingle("String"))

	m, err := lhs.TempMap(rhs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m["$t0"].Equal(NewSingle("Int")) || !m["$t1"].Equal(NewSingle("String")) {
		t.Fatalf("unexpected mapping: %v", m)
	}
}

func TestTempMapFailsOnShapeMismatch(t *testing.T) {
	lhs := NewTuple(NewTemp(0), NewTemp(1))
	rhs := NewSingle("Int")

	if _, err := lhs.TempMap(rhs); err == nil {
		t.Fatalf("expected an error for mismatched shapes")
	}
}

func TestColTypeFindsListAncestor(t *testing.T) {
	ctx := fakeCtx{parents: map[string][]string{"IntArray": {"List"}}}
	arr := NewSingle("IntArray", NewSingle("Int"))

	elem, ok, err := arr.ColType(ctx, srcpos.Position{})
	if err != nil || !ok {
		t.Fatalf("expected a List-like ancestor to be found")
	}
	if !elem.Equal(NewSingle("Int")) {
		t.Fatalf("expected element type Int, got %s", elem)
	}

	_, ok, err = NewSingle("String").ColType(ctx, srcpos.Position{})
	if err != nil || ok {
		t.Fatalf("String should not resolve a col type")
	}
}
