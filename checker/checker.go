// Package checker wires the core's three subsystems into the single
// public entry point the CLI and library callers use (SPEC_FULL.md §2,
// "top-level orchestration"): Generation (internal/generate) builds the
// constraint sets, Unification (internal/unify) solves them, and the
// result is walked into a Typed AST (internal/typedast). The package
// itself contains no algorithm of its own — it is pure plumbing, the way
// the teacher's cmd/dwscript/cmd.runCheck stitches lexer/parser/semantic
// together without implementing any of those passes itself.
package checker

import (
	"github.com/google/uuid"

	"github.com/oocheck/oocheck/internal/ast"
	"github.com/oocheck/oocheck/internal/checkerr"
	"github.com/oocheck/oocheck/internal/classctx"
	"github.com/oocheck/oocheck/internal/generate"
	"github.com/oocheck/oocheck/internal/typedast"
	"github.com/oocheck/oocheck/internal/unify"
)

// Result is the outcome of one Check invocation: the Typed AST rooted at
// the input file, plus every error collected across generation and
// unification (errs may be non-empty even when Tree is usable — the
// Typed AST simply carries no Name at the positions that failed to
// resolve).
type Result struct {
	Tree typedast.Node
	Errs checkerr.List
}

// Check runs Generation then Unification over f against ctx and returns
// the Typed AST plus every collected error, each stamped with a shared
// run ID so a caller processing many files in one batch (the CLI's glob
// mode) can group errors back to the invocation that produced them
// (SPEC_FULL.md DOMAIN STACK, google/uuid).
func Check(f *ast.File, ctx classctx.Context) Result {
	runID := uuid.NewString()

	g := generate.New(ctx)
	b, genErrs := g.GenFile(f)

	finished, unifyErrs := unify.Run(b.AllConstr(), ctx)

	errs := make(checkerr.List, 0, len(genErrs)+len(unifyErrs))
	errs = append(errs, genErrs...)
	errs = append(errs, unifyErrs...)
	errs.StampRunID(runID)

	return Result{
		Tree: typedast.Walk(f, finished),
		Errs: errs,
	}
}
