// Package typedast implements the Finished-map-to-TypedAST walk of
// spec.md §4.8: after unification, `finished : Position -> Name` is
// combined with the input AST to yield a tree where every node whose
// position appears in finished carries its inferred Name.
package typedast

import (
	"github.com/oocheck/oocheck/internal/ast"
	"github.com/oocheck/oocheck/internal/names"
	"github.com/oocheck/oocheck/internal/srcpos"
)

// Finished is the position -> Name map the Unifier produces (spec.md
// §4.7/§4.8). Inserts are idempotent up to union: a second insert at an
// already-present position unions the two Names rather than overwriting.
type Finished map[srcpos.Position]names.Name

// NewFinished returns an empty Finished map.
func NewFinished() Finished { return Finished{} }

// Push records name at pos, unioning with any existing entry (spec.md
// §4.7 "if a prior entry exists at that position, union with it").
func (f Finished) Push(pos srcpos.Position, name names.Name) {
	if existing, ok := f[pos]; ok {
		f[pos] = existing.Union(name)
		return
	}
	f[pos] = name
}

// Node is one TypedAST node: the original AST node plus its inferred
// Name, present only when Node.Pos() was a key of the Finished map that
// built this tree.
type Node struct {
	AST       ast.Node
	Name      names.Name
	HasName   bool
	Children  []Node
}

// Walk recursively builds a TypedAST Node from root, looking up each
// visited node's position in finished.
func Walk(root ast.Node, finished Finished) Node {
	name, ok := finished[root.Pos()]
	node := Node{AST: root, Name: name, HasName: ok}
	node.Children = childrenOf(root, finished)
	return node
}

// childrenOf enumerates a node's AST children for recursive walking. Node
// kinds not listed here, such as literals, Id, Break, Continue and
// TypeAlias, produce no children.
func childrenOf(n ast.Node, finished Finished) []Node {
	var kids []ast.Node
	switch v := n.(type) {
	case *ast.File:
		kids = statementsToNodes(v.Statements)
	case *ast.Block:
		kids = statementsToNodes(v.Statements)
	case *ast.FStringLit:
		kids = exprsToNodes(v.Parts)
	case *ast.ListLit:
		kids = exprsToNodes(v.Elements)
	case *ast.SetLit:
		kids = exprsToNodes(v.Elements)
	case *ast.TupleLit:
		kids = exprsToNodes(v.Elements)
	case *ast.BinOp:
		kids = []ast.Node{v.Left, v.Right}
	case *ast.UnOp:
		kids = []ast.Node{v.Operand}
	case *ast.VariableDef:
		kids = append(kids, v.Left)
		if v.Init != nil {
			kids = append(kids, v.Init)
		}
	case *ast.FunDef:
		kids = append(kids, v.Body)
	case *ast.AnonFun:
		kids = append(kids, v.Body)
	case *ast.FunctionCall:
		kids = exprsToNodes(v.Args)
	case *ast.PropertyCall:
		kids = []ast.Node{v.Instance, v.Property}
	case *ast.Reassign:
		kids = []ast.Node{v.Left, v.Right}
	case *ast.ClassDef:
		kids = statementsToNodes(v.Body)
	case *ast.If:
		kids = append(kids, v.Cond, v.Then)
		if v.Else != nil {
			kids = append(kids, v.Else)
		}
	case *ast.Match:
		kids = append(kids, v.Scrutinee)
		for _, c := range v.Cases {
			kids = append(kids, c.Cond, c.Body)
		}
	case *ast.For:
		kids = []ast.Node{v.Var, v.Collection, v.Body}
	case *ast.While:
		kids = []ast.Node{v.Cond, v.Body}
	case *ast.With:
		kids = append(kids, v.Resource)
		if v.Var != nil {
			kids = append(kids, v.Var)
		}
		kids = append(kids, v.Body)
	case *ast.Raise:
		kids = []ast.Node{v.Exception}
	}
	out := make([]Node, len(kids))
	for i, k := range kids {
		out[i] = Walk(k, finished)
	}
	return out
}

func statementsToNodes(stmts []ast.Statement) []ast.Node {
	out := make([]ast.Node, len(stmts))
	for i, s := range stmts {
		out[i] = s
	}
	return out
}

func exprsToNodes(exprs []ast.Expression) []ast.Node {
	out := make([]ast.Node, len(exprs))
	for i, e := range exprs {
		out[i] = e
	}
	return out
}
