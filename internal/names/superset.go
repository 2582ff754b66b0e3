package names

import "github.com/oocheck/oocheck/internal/srcpos"

// ParentChecker is the narrow slice of the Class Context (spec.md §4.1)
// the name algebra needs: whether one class name has another as an
// ancestor. internal/classctx.Context satisfies this structurally; the
// algebra never imports classctx, which keeps the dependency one-way.
type ParentChecker interface {
	HasParent(candidate, ancestor string, pos srcpos.Position) (bool, error)
}

const (
	tupleClass    = "Tuple"
	callableClass = "Callable"
	listClass     = "List"
)

// IsSuperSet reports whether n is a super-set of other: for every TrueName
// in other, some TrueName in n covers it (spec.md §4.2). `any` covers
// everything and, per spec.md §9's documented open question, is also
// covered by everything (a deliberate bidirectional escape hatch for
// partial code).
func (n Name) IsSuperSet(other Name, ctx ParentChecker, pos srcpos.Position) (bool, error) {
	for _, o := range other.trueNames {
		covered, err := n.coversOne(o, ctx, pos)
		if err != nil {
			return false, err
		}
		if !covered {
			return false, nil
		}
	}
	return true, nil
}

func (n Name) coversOne(o TrueName, ctx ParentChecker, pos srcpos.Position) (bool, error) {
	if isAnyTrueName(o) {
		return true, nil
	}
	for _, t := range n.trueNames {
		if isAnyTrueName(t) {
			return true, nil
		}
		ok, err := trueNameCovers(t, o, ctx, pos)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func isAnyTrueName(t TrueName) bool {
	single, ok := t.Variant.(Single)
	return ok && single.Name == Any && len(single.Generics) == 0
}

// trueNameCovers implements the per-TrueName coverage rule of spec.md
// §4.2: nullability(lhs) >= nullability(rhs), and the variants are
// structurally compatible.
func trueNameCovers(lhs, rhs TrueName, ctx ParentChecker, pos srcpos.Position) (bool, error) {
	if isNoneTrueName(rhs) {
		return lhs.Nullable, nil
	}
	if !lhs.Nullable && rhs.Nullable {
		return false, nil
	}
	return variantCovers(lhs.Variant, rhs.Variant, ctx, pos)
}

func variantCovers(lhs, rhs Variant, ctx ParentChecker, pos srcpos.Position) (bool, error) {
	switch l := lhs.(type) {
	case Single:
		switch r := rhs.(type) {
		case Single:
			if l.Name == Any || r.Name == Any {
				return true, nil
			}
			ok, err := ctx.HasParent(r.Name, l.Name, pos)
			if err != nil || !ok {
				return ok, err
			}
			if len(l.Generics) != len(r.Generics) {
				return len(l.Generics) == 0, nil
			}
			for i := range l.Generics {
				sub, err := l.Generics[i].IsSuperSet(r.Generics[i], ctx, pos)
				if err != nil || !sub {
					return sub, err
				}
			}
			return true, nil
		case Tuple:
			return l.Name == tupleClass, nil
		case Function:
			return l.Name == callableClass, nil
		}
	case Tuple:
		r, ok := rhs.(Tuple)
		if !ok || len(l.Elements) != len(r.Elements) {
			return false, nil
		}
		for i := range l.Elements {
			ok, err := l.Elements[i].IsSuperSet(r.Elements[i], ctx, pos)
			if err != nil || !ok {
				return ok, err
			}
		}
		return true, nil
	case Function:
		r, ok := rhs.(Function)
		if !ok || len(l.Args) != len(r.Args) {
			return false, nil
		}
		retOK, err := l.Ret.IsSuperSet(r.Ret, ctx, pos)
		if err != nil || !retOK {
			return retOK, err
		}
		for i := range l.Args {
			// Arguments are contravariant-free here: spec.md §4.2 compares
			// pointwise without flipping direction.
			ok, err := l.Args[i].IsSuperSet(r.Args[i], ctx, pos)
			if err != nil || !ok {
				return ok, err
			}
		}
		return true, nil
	}
	return false, nil
}

// ColType returns the element Name of n when n is a List-like class (a
// class whose ancestry includes List) per spec.md §4.2.
func (n Name) ColType(ctx ParentChecker, pos srcpos.Position) (Name, bool, error) {
	for _, t := range n.trueNames {
		single, ok := t.Variant.(Single)
		if !ok {
			continue
		}
		if single.Name == listClass && len(single.Generics) == 1 {
			return single.Generics[0], true, nil
		}
		isList, err := ctx.HasParent(single.Name, listClass, pos)
		if err != nil {
			return Empty, false, err
		}
		if isList && len(single.Generics) >= 1 {
			return single.Generics[0], true, nil
		}
	}
	return Empty, false, nil
}
