package constraint

import (
	"testing"

	"github.com/oocheck/oocheck/internal/ast"
	"github.com/oocheck/oocheck/internal/names"
	"github.com/oocheck/oocheck/internal/srcpos"
)

func pos(line int) srcpos.Position { return srcpos.New(line, 1, line, 2) }

func TestFromPeersIntoBlockLastStatement(t *testing.T) {
	last := ast.NewVariableDef(pos(3), ast.NewId(pos(3), "y"), nil, ast.NewIntLit(pos(3), 10))
	block := ast.NewBlock(pos(1), []ast.Statement{
		ast.NewVariableDef(pos(2), ast.NewId(pos(2), "x"), nil, ast.NewIntLit(pos(2), 1)),
		last,
	})

	e := From(block)
	if e.Pos != pos(3) {
		t.Fatalf("expected to peer into last statement's position, got %s", e.Pos)
	}
	expr, ok := e.Expect.(Expression)
	if !ok || expr.AST != ast.Expression(last) {
		t.Fatalf("expected Expression wrapping the last statement")
	}
}

func TestFromEmptyBlockFallsBackToItself(t *testing.T) {
	block := ast.NewBlock(pos(1), nil)
	e := From(block)
	if e.Pos != pos(1) {
		t.Fatalf("expected fallback to the block's own position")
	}
}

func TestStructurallyEqualLiteralInterchangeability(t *testing.T) {
	a := New(pos(1), Expression{AST: ast.NewIntLit(pos(1), 1)})
	b := New(pos(2), Expression{AST: ast.NewIntLit(pos(2), 999)})
	if !a.StructurallyEqual(b) {
		t.Fatalf("two Int literals should be structurally interchangeable regardless of value")
	}

	c := New(pos(3), Expression{AST: ast.NewStrLit(pos(3), "x")})
	if a.StructurallyEqual(c) {
		t.Fatalf("Int and String literal shapes should not be structurally equal")
	}
}

func TestTruthyMatchesBooleanShapes(t *testing.T) {
	truthy := New(pos(1), Truthy{})

	boolLit := New(pos(1), Expression{AST: ast.NewBoolLit(pos(1), true)})
	and := New(pos(1), Expression{AST: &ast.BinOp{Op: ast.OpAnd,
		Left:  ast.NewBoolLit(pos(1), true),
		Right: ast.NewBoolLit(pos(1), false)}})
	not := New(pos(1), Expression{AST: &ast.UnOp{Op: ast.OpNot, Operand: ast.NewBoolLit(pos(1), true)}})
	intLit := New(pos(1), Expression{AST: ast.NewIntLit(pos(1), 1)})

	if !truthy.StructurallyEqual(boolLit) {
		t.Fatalf("Truthy should match a Bool literal")
	}
	if !truthy.StructurallyEqual(and) {
		t.Fatalf("Truthy should match an And expression")
	}
	if !truthy.StructurallyEqual(not) {
		t.Fatalf("Truthy should match a Not expression")
	}
	if truthy.StructurallyEqual(intLit) {
		t.Fatalf("Truthy should not match a non-boolean expression")
	}
}

func TestTypeMatchesLiteralExpressionShape(t *testing.T) {
	stringType := New(pos(1), Type{Name: names.NewSingle("String")})
	strLit := New(pos(1), Expression{AST: ast.NewStrLit(pos(1), "hi")})
	intLit := New(pos(1), Expression{AST: ast.NewIntLit(pos(1), 1)})

	if !stringType.StructurallyEqual(strLit) {
		t.Fatalf("Type{String} should match a string literal expression")
	}
	if stringType.StructurallyEqual(intLit) {
		t.Fatalf("Type{String} should not match an int literal expression")
	}
}

func TestFunctionShapeEqualRequiresSameNameAndArgShapes(t *testing.T) {
	a := Function{Name: "max", Args: []Expected{
		New(pos(1), Expression{AST: ast.NewIntLit(pos(1), 1)}),
	}}
	b := Function{Name: "max", Args: []Expected{
		New(pos(2), Expression{AST: ast.NewIntLit(pos(2), 2)}),
	}}
	c := Function{Name: "min", Args: b.Args}

	if !New(pos(1), a).StructurallyEqual(New(pos(1), b)) {
		t.Fatalf("same-name, shape-equal-arg Function Expecteds should be structurally equal")
	}
	if New(pos(1), a).StructurallyEqual(New(pos(1), c)) {
		t.Fatalf("different function names should not be structurally equal")
	}
}

func TestConstraintFlagCopiesWithoutMutatingOriginal(t *testing.T) {
	base := NewConstraint(New(pos(1), Truthy{}), New(pos(1), Truthy{}), "cond is truthy")
	flagged := base.Flag()

	if base.IsFlag {
		t.Fatalf("Flag should not mutate the receiver")
	}
	if !flagged.IsFlag {
		t.Fatalf("Flag result should have IsFlag set")
	}
}
