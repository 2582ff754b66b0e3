package checker

import (
	"testing"

	"github.com/oocheck/oocheck/internal/ast"
	"github.com/oocheck/oocheck/internal/checkerr"
	"github.com/oocheck/oocheck/internal/classctx"
	"github.com/oocheck/oocheck/internal/srcpos"
)

func pos(line int) srcpos.Position { return srcpos.New(line, 1, line, 2) }

func TestCheckWellTypedFileHasNoErrors(t *testing.T) {
	left := ast.NewId(pos(1), "x")
	file := ast.NewFile(pos(0), []ast.Statement{
		ast.NewVariableDef(pos(1), left, nil, ast.NewIntLit(pos(1), 5)),
	})

	result := Check(file, classctx.NewRegistry())
	if len(result.Errs) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errs)
	}
}

func TestCheckStampsASharedRunIDAcrossErrors(t *testing.T) {
	file := ast.NewFile(pos(0), []ast.Statement{
		ast.NewRaise(pos(1), ast.NewId(pos(1), "mystery")),
		ast.NewRaise(pos(2), ast.NewId(pos(2), "ghost")),
	})

	result := Check(file, classctx.NewRegistry())
	if len(result.Errs) != 2 {
		t.Fatalf("expected two Undefined errors, got %d: %v", len(result.Errs), result.Errs)
	}
	if result.Errs[0].RunID == "" {
		t.Fatalf("expected a non-empty run ID")
	}
	if result.Errs[0].RunID != result.Errs[1].RunID {
		t.Fatalf("expected both errors to share one run ID")
	}
	for _, e := range result.Errs {
		if e.Kind != checkerr.Undefined {
			t.Fatalf("expected Undefined, got %s", e.Kind)
		}
	}
}

func TestCheckTupleDestructuringArityMismatchIsAnError(t *testing.T) {
	left := ast.NewTupleLit(pos(1), []ast.Expression{
		ast.NewId(pos(1), "a"),
		ast.NewId(pos(1), "b"),
	})
	init := ast.NewTupleLit(pos(1), []ast.Expression{
		ast.NewIntLit(pos(1), 1),
		ast.NewIntLit(pos(1), 2),
		ast.NewIntLit(pos(1), 3),
	})
	file := ast.NewFile(pos(0), []ast.Statement{
		ast.NewVariableDef(pos(1), left, nil, init),
	})

	result := Check(file, classctx.NewRegistry())
	if len(result.Errs) != 1 {
		t.Fatalf("expected exactly one error, got %d: %v", len(result.Errs), result.Errs)
	}
	if result.Errs[0].Kind != checkerr.ArityMismatch {
		t.Fatalf("expected ArityMismatch, got %s", result.Errs[0].Kind)
	}
}

func TestCheckTupleDestructuringMatchingArityBindsEachElement(t *testing.T) {
	left := ast.NewTupleLit(pos(1), []ast.Expression{
		ast.NewId(pos(1), "a"),
		ast.NewId(pos(1), "b"),
	})
	init := ast.NewTupleLit(pos(1), []ast.Expression{
		ast.NewIntLit(pos(1), 1),
		ast.NewStrLit(pos(1), "s"),
	})
	file := ast.NewFile(pos(0), []ast.Statement{
		ast.NewVariableDef(pos(1), left, nil, init),
	})

	result := Check(file, classctx.NewRegistry())
	if len(result.Errs) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errs)
	}
}

func TestCheckSameScopeRebindingDoesNotCorruptTheSecondDeclaration(t *testing.T) {
	x := ast.NewId(pos(1), "x")
	xAgain := ast.NewId(pos(2), "x")
	stringType := ast.NewSingleTypeExpr(pos(2), "String", nil, false)
	file := ast.NewFile(pos(0), []ast.Statement{
		ast.NewVariableDef(pos(1), x, nil, ast.NewIntLit(pos(1), 1)),
		ast.NewVariableDef(pos(2), xAgain, stringType, ast.NewStrLit(pos(2), "hello")),
	})

	result := Check(file, classctx.NewRegistry())
	if len(result.Errs) != 0 {
		t.Fatalf("expected the rebound x to keep its own String type, got: %v", result.Errs)
	}
}

func TestCheckProducesATypedASTRoot(t *testing.T) {
	file := ast.NewFile(pos(0), []ast.Statement{
		ast.NewRaise(pos(1), ast.NewIntLit(pos(1), 1)),
	})
	result := Check(file, classctx.NewRegistry())
	if result.Tree.AST != file {
		t.Fatalf("expected the typed tree root to wrap the input file")
	}
}
