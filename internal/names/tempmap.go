package names

import "fmt"

// TempMap walks n and other in parallel; wherever n is a temp, it records
// temp -> corresponding slot of other. It fails if the two names'
// structural shapes disagree (spec.md §4.2).
func (n Name) TempMap(other Name) (map[string]Name, error) {
	if len(n.trueNames) != len(other.trueNames) {
		return nil, fmt.Errorf("cannot derive temp mapping: %s and %s have different arity", n, other)
	}
	out := map[string]Name{}
	for i := range n.trueNames {
		if err := tempMapTrueName(n.trueNames[i], other.trueNames[i], out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func tempMapTrueName(lhs, rhs TrueName, out map[string]Name) error {
	single, ok := lhs.Variant.(Single)
	if ok && IsTemp(single.Name) && len(single.Generics) == 0 {
		out[single.Name] = fromTrueName(TrueName{Variant: rhs.Variant})
		return nil
	}
	switch l := lhs.Variant.(type) {
	case Single:
		r, ok := rhs.Variant.(Single)
		if !ok || len(l.Generics) != len(r.Generics) {
			return fmt.Errorf("cannot derive temp mapping: shape mismatch between %s and %s", lhs, rhs)
		}
		for i := range l.Generics {
			m, err := l.Generics[i].TempMap(r.Generics[i])
			if err != nil {
				return err
			}
			mergeInto(out, m)
		}
		return nil
	case Tuple:
		r, ok := rhs.Variant.(Tuple)
		if !ok || len(l.Elements) != len(r.Elements) {
			return fmt.Errorf("cannot derive temp mapping: shape mismatch between %s and %s", lhs, rhs)
		}
		for i := range l.Elements {
			m, err := l.Elements[i].TempMap(r.Elements[i])
			if err != nil {
				return err
			}
			mergeInto(out, m)
		}
		return nil
	case Function:
		r, ok := rhs.Variant.(Function)
		if !ok || len(l.Args) != len(r.Args) {
			return fmt.Errorf("cannot derive temp mapping: shape mismatch between %s and %s", lhs, rhs)
		}
		for i := range l.Args {
			m, err := l.Args[i].TempMap(r.Args[i])
			if err != nil {
				return err
			}
			mergeInto(out, m)
		}
		m, err := l.Ret.TempMap(r.Ret)
		if err != nil {
			return err
		}
		mergeInto(out, m)
		return nil
	}
	return nil
}

func mergeInto(dst, src map[string]Name) {
	for k, v := range src {
		dst[k] = v
	}
}
