// Package generate implements the Generator (spec.md §4.6): a dispatcher
// over AST node kinds, each producing constraints via a threaded
// (ConstraintBuilder, Environment) pair. Generation never aborts on a
// single failing sub-rule (spec.md §7): each gen* function returns a
// checkerr.List of independent errors, and genVec concatenates them.
package generate

import (
	"github.com/oocheck/oocheck/internal/ast"
	"github.com/oocheck/oocheck/internal/builder"
	"github.com/oocheck/oocheck/internal/checkerr"
	"github.com/oocheck/oocheck/internal/classctx"
	"github.com/oocheck/oocheck/internal/constraint"
	"github.com/oocheck/oocheck/internal/env"
)

// Generator holds the read-only Class Context consulted while walking an
// AST (spec.md §4.1).
type Generator struct {
	Ctx classctx.Context
}

// New returns a Generator bound to ctx.
func New(ctx classctx.Context) *Generator {
	return &Generator{Ctx: ctx}
}

// GenFile runs generation over an entire File, returning the populated
// Builder (ready for AllConstr) and any errors collected along the way.
func (g *Generator) GenFile(f *ast.File) (*builder.Builder, checkerr.List) {
	b := builder.New()
	e := env.New()
	_, errs := g.genVec(f.Statements, e, b)
	return b, errs
}

// gen dispatches on node's concrete type (spec.md §4.6).
func (g *Generator) gen(node ast.Node, e env.Environment, b *builder.Builder) (env.Environment, checkerr.List) {
	switch n := node.(type) {
	case *ast.File:
		return g.genVec(n.Statements, e, b)
	case *ast.Block:
		return g.genVec(n.Statements, e, b)

	case *ast.IntLit, *ast.RealLit, *ast.StrLit, *ast.BoolLit, *ast.NoneLit, *ast.FStringLit:
		return g.genLiteral(node.(ast.Expression), e, b)

	case *ast.Id:
		return g.genId(n, e, b)

	case *ast.ListLit, *ast.SetLit, *ast.TupleLit:
		return g.genCollectionLit(node.(ast.Expression), e, b)

	case *ast.BinOp:
		return g.genBinOp(n, e, b)
	case *ast.UnOp:
		return g.genUnOp(n, e, b)

	case *ast.VariableDef:
		return g.genVariableDef(n, e, b)
	case *ast.FunDef:
		return g.genFunDef(n, e, b)
	case *ast.AnonFun:
		return g.genAnonFun(n, e, b)

	case *ast.FunctionCall:
		return g.genFunctionCall(n, e, b)
	case *ast.PropertyCall:
		return g.genPropertyCall(n, e, b)
	case *ast.Reassign:
		return g.genReassign(n, e, b)

	case *ast.ClassDef:
		return g.genClassDef(n, e, b)
	case *ast.TypeAlias:
		return g.genTypeAlias(n, e, b)

	case *ast.If:
		return g.genIf(n, e, b)
	case *ast.Match:
		return g.genMatch(n, e, b)
	case *ast.For:
		return g.genFor(n, e, b)
	case *ast.While:
		return g.genWhile(n, e, b)
	case *ast.Break:
		return g.genBreak(n, e, b)
	case *ast.Continue:
		return g.genContinue(n, e, b)
	case *ast.With:
		return g.genWith(n, e, b)
	case *ast.Raise:
		return g.genRaise(n, e, b)

	default:
		return e, nil
	}
}

// genVec threads (b, e) through a sequence of statements. Every statement
// but the last has last_stmt_in_function cleared (spec.md §4.6 "gen_vec").
func (g *Generator) genVec(stmts []ast.Statement, e env.Environment, b *builder.Builder) (env.Environment, checkerr.List) {
	var errs checkerr.List
	for i, s := range stmts {
		cur := e
		if i < len(stmts)-1 {
			cur = cur.NotLastStmt()
		}
		var sub checkerr.List
		e, sub = g.gen(s, cur, b)
		errs = append(errs, sub...)
	}
	return e, errs
}

// genId implements the identifier-resolution rule of spec.md §4.6: in
// define mode (set by a caller such as a For loop or a with alias) the Id
// binds itself here as an immutable variable; outside define mode, an
// unbound Id is a hard error.
func (g *Generator) genId(n *ast.Id, e env.Environment, b *builder.Builder) (env.Environment, checkerr.List) {
	if e.IsDefineMode() {
		e = e.InsertVar(false, n.Name, constraint.From(n))
		return e, nil
	}
	if _, ok := e.Lookup(n.Name); !ok {
		return e, checkerr.List{checkerr.New(checkerr.Undefined, n.Pos(), "undefined identifier "+n.Name)}
	}
	return e, nil
}
