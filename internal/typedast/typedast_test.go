package typedast

import (
	"testing"

	"github.com/oocheck/oocheck/internal/ast"
	"github.com/oocheck/oocheck/internal/names"
	"github.com/oocheck/oocheck/internal/srcpos"
)

func pos(line int) srcpos.Position { return srcpos.New(line, 1, line, 2) }

func TestFinishedPushUnionsOnCollision(t *testing.T) {
	f := NewFinished()
	p := pos(1)
	f.Push(p, names.NewSingle("Int"))
	f.Push(p, names.NewSingle("String"))

	if len(f[p].TrueNames()) != 2 {
		t.Fatalf("expected the second push to union, got %s", f[p])
	}
}

func TestFinishedPushFirstInsertIsExact(t *testing.T) {
	f := NewFinished()
	p := pos(1)
	f.Push(p, names.NewSingle("Int"))
	if !f[p].Equal(names.NewSingle("Int")) {
		t.Fatalf("expected exactly Int, got %s", f[p])
	}
}

func TestWalkAssignsNameOnlyWhenPositionIsFinished(t *testing.T) {
	lit := ast.NewIntLit(pos(1), 42)
	finished := NewFinished()
	finished.Push(pos(1), names.NewSingle("Int"))

	node := Walk(lit, finished)
	if !node.HasName || !node.Name.Equal(names.NewSingle("Int")) {
		t.Fatalf("expected node to carry the finished Name")
	}
}

func TestWalkLeavesUnfinishedNodesEmpty(t *testing.T) {
	lit := ast.NewIntLit(pos(2), 7)
	node := Walk(lit, NewFinished())
	if node.HasName {
		t.Fatalf("a position absent from finished should produce an unset Name")
	}
}

func TestWalkRecursesIntoBinOpChildren(t *testing.T) {
	left := ast.NewIntLit(pos(1), 1)
	right := ast.NewIntLit(pos(2), 2)
	bin := ast.NewBinOp(pos(3), ast.OpAdd, left, right)

	finished := NewFinished()
	finished.Push(pos(1), names.NewSingle("Int"))
	finished.Push(pos(2), names.NewSingle("Int"))
	finished.Push(pos(3), names.NewSingle("Int"))

	node := Walk(bin, finished)
	if len(node.Children) != 2 {
		t.Fatalf("expected 2 children for a BinOp, got %d", len(node.Children))
	}
	for _, child := range node.Children {
		if !child.HasName {
			t.Fatalf("expected both operands to carry a Name")
		}
	}
}

func TestWalkRecursesIntoBlockStatements(t *testing.T) {
	s1 := ast.NewRaise(pos(1), ast.NewIntLit(pos(1), 1))
	s2 := ast.NewRaise(pos(2), ast.NewStrLit(pos(2), "x"))
	block := ast.NewBlock(pos(0), []ast.Statement{s1, s2})

	node := Walk(block, NewFinished())
	if len(node.Children) != 2 {
		t.Fatalf("expected block to walk into both statements, got %d children", len(node.Children))
	}
}
