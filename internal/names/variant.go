package names

import "strings"

// Variant is one of the three NameVariant shapes a TrueName can take
// (spec.md §3): Single, Tuple, or Function.
type Variant interface {
	String() string
	variantEqual(Variant) bool
	containsTemp() bool
	fmt() string
}

// Single is a string class name plus an ordered list of generic
// arguments.
type Single struct {
	Name     string
	Generics []Name
}

func (s Single) String() string {
	if len(s.Generics) == 0 {
		return s.Name
	}
	parts := make([]string, len(s.Generics))
	for i, g := range s.Generics {
		parts[i] = g.String()
	}
	return s.Name + "[" + strings.Join(parts, ", ") + "]"
}

func (s Single) fmt() string { return s.String() }

func (s Single) variantEqual(o Variant) bool {
	other, ok := o.(Single)
	if !ok || other.Name != s.Name || len(other.Generics) != len(s.Generics) {
		return false
	}
	for i := range s.Generics {
		if !s.Generics[i].Equal(other.Generics[i]) {
			return false
		}
	}
	return true
}

func (s Single) containsTemp() bool {
	if IsTemp(s.Name) {
		return true
	}
	for _, g := range s.Generics {
		if g.ContainsTemp() {
			return true
		}
	}
	return false
}

// Tuple is an ordered list of element Names.
type Tuple struct {
	Elements []Name
}

func (t Tuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t Tuple) fmt() string { return t.String() }

func (t Tuple) variantEqual(o Variant) bool {
	other, ok := o.(Tuple)
	if !ok || len(other.Elements) != len(t.Elements) {
		return false
	}
	for i := range t.Elements {
		if !t.Elements[i].Equal(other.Elements[i]) {
			return false
		}
	}
	return true
}

func (t Tuple) containsTemp() bool {
	for _, e := range t.Elements {
		if e.ContainsTemp() {
			return true
		}
	}
	return false
}

// Function is an ordered list of argument Names plus a return Name.
type Function struct {
	Args []Name
	Ret  Name
}

func (f Function) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return "(" + strings.Join(parts, ", ") + ") -> " + f.Ret.String()
}

func (f Function) fmt() string { return f.String() }

func (f Function) variantEqual(o Variant) bool {
	other, ok := o.(Function)
	if !ok || len(other.Args) != len(f.Args) || !f.Ret.Equal(other.Ret) {
		return false
	}
	for i := range f.Args {
		if !f.Args[i].Equal(other.Args[i]) {
			return false
		}
	}
	return true
}

func (f Function) containsTemp() bool {
	if f.Ret.ContainsTemp() {
		return true
	}
	for _, a := range f.Args {
		if a.ContainsTemp() {
			return true
		}
	}
	return false
}
