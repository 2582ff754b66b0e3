// Package names implements the structured type representation — the
// "name algebra" of spec.md §3/§4.2 — on which both the generator and the
// unifier operate: TrueName, NameVariant, and Name (a set of TrueNames,
// read as a union).
package names

import (
	"sort"
	"strings"
)

// TempPrefix is the reserved prefix for placeholder names minted while a
// position's type is not yet known (spec.md §6 "Temporary names").
const TempPrefix = "$t"

// Any is the distinguished single name that is a super-set of every name
// (spec.md §3 invariants).
const Any = "any"

// NoneClass is the null inhabitant's class name (spec.md §6).
const NoneClass = "None"

// TrueName is one concrete inhabitant of a Name: nullability, mutability,
// and a structural Variant (spec.md §3). Two TrueNames with the same
// variant but different mutability are distinct values.
type TrueName struct {
	Nullable bool
	Mutable  bool
	Variant  Variant
}

// Equal reports structural equality, including mutability and nullability.
func (t TrueName) Equal(o TrueName) bool {
	return t.Nullable == o.Nullable && t.Mutable == o.Mutable && t.Variant.variantEqual(o.Variant)
}

func (t TrueName) String() string {
	s := t.Variant.String()
	if t.Mutable {
		s = "mut " + s
	}
	if t.Nullable {
		s += "?"
	}
	return s
}

func (t TrueName) isTemp() bool {
	single, ok := t.Variant.(Single)
	return ok && IsTemp(single.Name)
}

// IsTemp reports whether a class name is a reserved temporary-name
// placeholder (spec.md §6: prefix "$t" followed by a decimal integer).
func IsTemp(className string) bool {
	if !strings.HasPrefix(className, TempPrefix) {
		return false
	}
	rest := className[len(TempPrefix):]
	if rest == "" {
		return false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Name is a set of TrueNames, semantically their union (spec.md §3). The
// empty Name is the bottom/unknown type. Name is an immutable value type;
// every operation returns a fresh Name.
type Name struct {
	trueNames []TrueName
}

// Empty is the bottom/unknown Name.
var Empty = Name{}

// IsEmpty reports whether n carries no inhabitants.
func (n Name) IsEmpty() bool { return len(n.trueNames) == 0 }

// TrueNames returns the set of inhabitants, in a stable (sorted) order.
func (n Name) TrueNames() []TrueName {
	out := make([]TrueName, len(n.trueNames))
	copy(out, n.trueNames)
	return out
}

// NewSingle builds a Name with one non-nullable, immutable Single TrueName.
func NewSingle(className string, generics ...Name) Name {
	return fromTrueName(TrueName{Variant: Single{Name: className, Generics: generics}})
}

// NewMutableSingle builds a Name with one non-nullable, mutable Single
// TrueName.
func NewMutableSingle(className string, generics ...Name) Name {
	return fromTrueName(TrueName{Mutable: true, Variant: Single{Name: className, Generics: generics}})
}

// NewTuple builds a Name with one Tuple TrueName.
func NewTuple(elements ...Name) Name {
	return fromTrueName(TrueName{Variant: Tuple{Elements: elements}})
}

// NewFunction builds a Name with one Function TrueName.
func NewFunction(args []Name, ret Name) Name {
	return fromTrueName(TrueName{Variant: Function{Args: args, Ret: ret}})
}

// NewTemp mints a fresh temporary placeholder Name from a counter value,
// e.g. NewTemp(3) -> "$t3" (spec.md §6).
func NewTemp(counter int) Name {
	return NewSingle(TempPrefix + itoa(counter))
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

func fromTrueName(t TrueName) Name {
	return Name{trueNames: []TrueName{t}}
}

// FromTrueNames builds a Name from an already-deduplicated slice.
func FromTrueNames(ts []TrueName) Name {
	return dedup(ts)
}

func dedup(ts []TrueName) Name {
	out := make([]TrueName, 0, len(ts))
	for _, t := range ts {
		found := false
		for _, existing := range out {
			if existing.Equal(t) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return Name{trueNames: out}
}

// Equal reports whether n and o denote the same set of TrueNames.
func (n Name) Equal(o Name) bool {
	if len(n.trueNames) != len(o.trueNames) {
		return false
	}
	for _, t := range n.trueNames {
		if !o.contains(t) {
			return false
		}
	}
	return true
}

func (n Name) contains(t TrueName) bool {
	for _, existing := range n.trueNames {
		if existing.Equal(t) {
			return true
		}
	}
	return false
}

// Union returns the set union of n and o's TrueNames (spec.md §4.2).
func (n Name) Union(o Name) Name {
	all := make([]TrueName, 0, len(n.trueNames)+len(o.trueNames))
	all = append(all, n.trueNames...)
	all = append(all, o.trueNames...)
	return dedup(all)
}

// AsNullable returns n with every TrueName marked nullable (spec.md §4.2).
// Per spec.md §3, nullability distributes over union: N? ≡ N ∪ None.
func (n Name) AsNullable() Name {
	out := make([]TrueName, len(n.trueNames))
	for i, t := range n.trueNames {
		t.Nullable = true
		out[i] = t
	}
	if n.IsEmpty() {
		return out0None()
	}
	return dedup(out).Union(out0None())
}

func out0None() Name {
	return fromTrueName(TrueName{Nullable: true, Variant: Single{Name: NoneClass}})
}

// IsNullable reports whether any inhabitant of n is nullable.
func (n Name) IsNullable() bool {
	for _, t := range n.trueNames {
		if t.Nullable {
			return true
		}
	}
	return false
}

// IsNull reports whether n is exactly the None singleton.
func (n Name) IsNull() bool {
	return len(n.trueNames) == 1 && isNoneTrueName(n.trueNames[0])
}

func isNoneTrueName(t TrueName) bool {
	single, ok := t.Variant.(Single)
	return ok && single.Name == NoneClass && len(single.Generics) == 0
}

// ContainsTemp reports whether any inhabitant of n mentions a temp name,
// at any depth (spec.md §4.2).
func (n Name) ContainsTemp() bool {
	for _, t := range n.trueNames {
		if t.isTemp() || t.Variant.containsTemp() {
			return true
		}
	}
	return false
}

// String renders n as a union expression, or "Nothing" when empty.
func (n Name) String() string {
	if n.IsEmpty() {
		return "Nothing"
	}
	parts := make([]string, len(n.trueNames))
	for i, t := range n.trueNames {
		parts[i] = t.String()
	}
	return strings.Join(parts, " | ")
}

// Substitute recursively rewrites occurrences of temp names mapped in m
// (spec.md §4.2). The map is keyed by the temp's class name; a matched
// TrueName is replaced wholesale by the mapped Name's TrueNames, with the
// original occurrence's own nullability/mutability folded in.
func (n Name) Substitute(m map[string]Name) Name {
	if len(m) == 0 || n.IsEmpty() {
		return n
	}
	out := make([]TrueName, 0, len(n.trueNames))
	for _, t := range n.trueNames {
		if single, ok := t.Variant.(Single); ok {
			if repl, found := m[single.Name]; found && len(single.Generics) == 0 {
				for _, r := range repl.trueNames {
					r.Nullable = r.Nullable || t.Nullable
					r.Mutable = r.Mutable || t.Mutable
					out = append(out, r)
				}
				continue
			}
		}
		out = append(out, TrueName{
			Nullable: t.Nullable,
			Mutable:  t.Mutable,
			Variant:  substituteVariant(t.Variant, m),
		})
	}
	return dedup(out)
}

func substituteVariant(v Variant, m map[string]Name) Variant {
	switch vv := v.(type) {
	case Single:
		generics := make([]Name, len(vv.Generics))
		for i, g := range vv.Generics {
			generics[i] = g.Substitute(m)
		}
		return Single{Name: vv.Name, Generics: generics}
	case Tuple:
		elements := make([]Name, len(vv.Elements))
		for i, e := range vv.Elements {
			elements[i] = e.Substitute(m)
		}
		return Tuple{Elements: elements}
	case Function:
		args := make([]Name, len(vv.Args))
		for i, a := range vv.Args {
			args[i] = a.Substitute(m)
		}
		return Function{Args: args, Ret: vv.Ret.Substitute(m)}
	default:
		return v
	}
}
