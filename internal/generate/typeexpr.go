package generate

import (
	"github.com/oocheck/oocheck/internal/ast"
	"github.com/oocheck/oocheck/internal/names"
)

// toName converts a declared TypeExpr (as written in source) into the
// solved names.Name representation a Type{declared} constraint carries.
// A nil TypeExpr converts to the empty Name.
func toName(t *ast.TypeExpr) names.Name {
	if t == nil {
		return names.Empty
	}
	var n names.Name
	switch {
	case t.IsTuple():
		elements := make([]names.Name, len(t.Elements))
		for i, e := range t.Elements {
			elements[i] = toName(e)
		}
		n = names.NewTuple(elements...)
	case t.IsFunction():
		args := make([]names.Name, len(t.Args))
		for i, a := range t.Args {
			args[i] = toName(a)
		}
		n = names.NewFunction(args, toName(t.Ret))
	default:
		generics := make([]names.Name, len(t.Generics))
		for i, g := range t.Generics {
			generics[i] = toName(g)
		}
		n = names.NewSingle(t.Name, generics...)
	}
	if t.Nullable {
		n = n.AsNullable()
	}
	return n
}
