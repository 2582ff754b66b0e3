package unify

import (
	"testing"

	"github.com/oocheck/oocheck/internal/ast"
	"github.com/oocheck/oocheck/internal/builder"
	"github.com/oocheck/oocheck/internal/checkerr"
	"github.com/oocheck/oocheck/internal/classctx"
	"github.com/oocheck/oocheck/internal/constraint"
	"github.com/oocheck/oocheck/internal/names"
	"github.com/oocheck/oocheck/internal/srcpos"
)

func pos(line int) srcpos.Position { return srcpos.New(line, 1, line, 2) }

func typeExp(line int, n names.Name) constraint.Expected {
	return constraint.New(pos(line), constraint.Type{Name: n})
}

func oneSet(cs ...constraint.Constraint) []builder.Set {
	return []builder.Set{{Constraints: cs}}
}

func TestTypeTypeSuperSetSucceeds(t *testing.T) {
	ctx := classctx.NewRegistry()
	sets := oneSet(constraint.NewConstraint(typeExp(1, names.NewSingle("Int")), typeExp(1, names.NewSingle("Int")), ""))
	_, errs := Run(sets, ctx)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestTypeTypeMismatchFails(t *testing.T) {
	ctx := classctx.NewRegistry()
	sets := oneSet(constraint.NewConstraint(typeExp(1, names.NewSingle("Int")), typeExp(1, names.NewSingle("String")), ""))
	_, errs := Run(sets, ctx)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %d", len(errs))
	}
	if errs[0].Kind != checkerr.TypeMismatch {
		t.Fatalf("expected TypeMismatch, got %s", errs[0].Kind)
	}
}

func TestTypeTypeTempSubstitution(t *testing.T) {
	ctx := classctx.NewRegistry()
	temp := names.NewTemp(0)
	sets := oneSet(
		constraint.NewConstraint(typeExp(1, temp), typeExp(1, names.NewSingle("Int")), ""),
	)
	finished, errs := Run(sets, ctx)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if finished[pos(1)].String() != "Int" {
		t.Fatalf("expected temp to resolve to Int, got %s", finished[pos(1)].String())
	}
}

func TestCollectionCollectionUnifiesElementTypes(t *testing.T) {
	ctx := classctx.NewRegistry()
	temp := names.NewTemp(0)
	left := constraint.New(pos(1), constraint.Collection{Ty: typeExp(1, temp)})
	right := constraint.New(pos(1), constraint.Collection{Ty: typeExp(1, names.NewSingle("Int"))})
	sets := oneSet(constraint.NewConstraint(left, right, ""))
	_, errs := Run(sets, ctx)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestTupleTupleArityMismatchFails(t *testing.T) {
	ctx := classctx.NewRegistry()
	left := constraint.New(pos(1), constraint.Tuple{Elements: []constraint.Expected{typeExp(1, names.NewSingle("Int"))}})
	right := constraint.New(pos(1), constraint.Tuple{Elements: []constraint.Expected{
		typeExp(1, names.NewSingle("Int")), typeExp(1, names.NewSingle("String")),
	}})
	sets := oneSet(constraint.NewConstraint(left, right, ""))
	_, errs := Run(sets, ctx)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %d", len(errs))
	}
	if errs[0].Kind != checkerr.ArityMismatch {
		t.Fatalf("expected ArityMismatch, got %s", errs[0].Kind)
	}
}

func TestAccessFieldResolvesPublicField(t *testing.T) {
	ctx := classctx.NewRegistry()
	ctx.DefineClass("Account", "", []classctx.FieldRecord{
		{Name: "balance", Type: names.NewSingle("Int")},
	}, nil, nil)

	entity := typeExp(1, names.NewSingle("Account"))
	access := constraint.New(pos(1), constraint.Access{
		Entity:        entity,
		FieldOrMethod: constraint.New(pos(1), constraint.Field{Name: "balance"}),
	})
	target := typeExp(1, names.NewSingle("Int"))
	sets := oneSet(constraint.NewConstraint(access, target, ""))
	_, errs := Run(sets, ctx)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestAccessFieldUndefinedFails(t *testing.T) {
	ctx := classctx.NewRegistry()
	ctx.DefineClass("Account", "", nil, nil, nil)

	entity := typeExp(1, names.NewSingle("Account"))
	access := constraint.New(pos(1), constraint.Access{
		Entity:        entity,
		FieldOrMethod: constraint.New(pos(1), constraint.Field{Name: "missing"}),
	})
	target := typeExp(1, names.NewSingle("Int"))
	sets := oneSet(constraint.NewConstraint(access, target, ""))
	_, errs := Run(sets, ctx)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %d", len(errs))
	}
	if errs[0].Kind != checkerr.Undefined {
		t.Fatalf("expected Undefined, got %s", errs[0].Kind)
	}
}

func TestAccessPrivateFieldOutsideClassIsVisibilityError(t *testing.T) {
	ctx := classctx.NewRegistry()
	ctx.DefineClass("Account", "", []classctx.FieldRecord{
		{Name: "secret", Type: names.NewSingle("Int"), Private: true},
	}, nil, nil)

	entity := typeExp(1, names.NewSingle("Account"))
	access := constraint.New(pos(1), constraint.Access{
		Entity:        entity,
		FieldOrMethod: constraint.New(pos(1), constraint.Field{Name: "secret"}),
	})
	target := typeExp(1, names.NewSingle("Int"))
	sets := []builder.Set{{
		ClassStack:  nil,
		Constraints: []constraint.Constraint{constraint.NewConstraint(access, target, "")},
	}}
	_, errs := Run(sets, ctx)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %d", len(errs))
	}
	if errs[0].Kind != checkerr.Visibility {
		t.Fatalf("expected Visibility, got %s", errs[0].Kind)
	}
}

func TestAccessPrivateFieldInsideClassSucceeds(t *testing.T) {
	ctx := classctx.NewRegistry()
	ctx.DefineClass("Account", "", []classctx.FieldRecord{
		{Name: "secret", Type: names.NewSingle("Int"), Private: true},
	}, nil, nil)

	entity := typeExp(1, names.NewSingle("Account"))
	access := constraint.New(pos(1), constraint.Access{
		Entity:        entity,
		FieldOrMethod: constraint.New(pos(1), constraint.Field{Name: "secret"}),
	})
	target := typeExp(1, names.NewSingle("Int"))
	sets := []builder.Set{{
		ClassStack:  []string{"Account"},
		Constraints: []constraint.Constraint{constraint.NewConstraint(access, target, "")},
	}}
	_, errs := Run(sets, ctx)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestAccessMethodArityMismatchSkipsOverload(t *testing.T) {
	ctx := classctx.NewRegistry()
	ctx.DefineClass("Account", "", nil, map[string][]classctx.FunctionRecord{
		"withdraw": {{Name: "withdraw", Args: []classctx.ArgRecord{{Name: "n", Type: names.NewSingle("Int"), HasType: true}}, Ret: names.NewSingle("Bool")}},
	}, nil)

	entity := typeExp(1, names.NewSingle("Account"))
	call := constraint.New(pos(1), constraint.Function{Name: "withdraw", Args: []constraint.Expected{
		typeExp(1, names.NewSingle("Int")), typeExp(1, names.NewSingle("Int")),
	}})
	access := constraint.New(pos(1), constraint.Access{Entity: entity, FieldOrMethod: call})
	target := typeExp(1, names.NewSingle("Bool"))
	sets := oneSet(constraint.NewConstraint(access, target, ""))
	_, errs := Run(sets, ctx)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error for the arity mismatch, got %d", len(errs))
	}
	if errs[0].Kind != checkerr.Undefined {
		t.Fatalf("expected Undefined (no matching overload), got %s", errs[0].Kind)
	}
}

func TestReinsertionThenAmbiguous(t *testing.T) {
	ctx := classctx.NewRegistry()
	left := constraint.New(pos(1), constraint.Access{
		Entity:        constraint.From(ast.NewId(pos(1), "obj")),
		FieldOrMethod: constraint.New(pos(1), constraint.Field{Name: "x"}),
	})
	// Entity is Expression-shaped and nothing else in this set ever
	// resolves it to a Type, so dispatchAccess keeps reinserting until the
	// flag-bit discipline turns it Ambiguous.
	right := typeExp(1, names.NewSingle("Int"))
	sets := oneSet(constraint.NewConstraint(left, right, ""))
	_, errs := Run(sets, ctx)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %d", len(errs))
	}
	if errs[0].Kind != checkerr.Ambiguous {
		t.Fatalf("expected Ambiguous, got %s", errs[0].Kind)
	}
}

func TestExpressionSubstitutionRespectsIdentsStopSet(t *testing.T) {
	ctx := classctx.NewRegistry()
	id := ast.NewId(pos(1), "x")
	exprExpect := constraint.From(id)
	resolved := typeExp(1, names.NewSingle("Int"))

	// A later constraint mentions x but is stopped from seeing this
	// substitution because it carries "x" in its Idents (e.g. it belongs
	// to an inner scope that shadows x).
	shadowed := constraint.NewConstraint(exprExpect, typeExp(2, names.NewSingle("String")), "").WithIdents([]string{"x"})

	sets := oneSet(
		constraint.NewConstraint(exprExpect, resolved, ""),
		shadowed,
	)
	_, errs := Run(sets, ctx)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestFinishedMapUnionsOnCollision(t *testing.T) {
	ctx := classctx.NewRegistry()
	ctx.DefineClass("Animal", "", nil, nil, nil)
	ctx.DefineClass("Dog", "Animal", nil, nil, nil)
	ctx.DefineClass("Cat", "Animal", nil, nil, nil)

	// Two independent constraints whose right-hand side shares a position
	// (e.g. two branches of a join both settling the same program point)
	// each push a different resolved Name there.
	sets := oneSet(
		constraint.NewConstraint(typeExp(2, names.NewSingle("Animal")), typeExp(1, names.NewSingle("Dog")), ""),
		constraint.NewConstraint(typeExp(3, names.NewSingle("Animal")), typeExp(1, names.NewSingle("Cat")), ""),
	)
	finished, errs := Run(sets, ctx)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	got := finished[pos(1)].String()
	if got != "Dog | Cat" && got != "Cat | Dog" {
		t.Fatalf("expected the two resolutions to union, got %s", got)
	}
}
