// Package constraint implements Expected and Constraint (spec.md §4.3):
// the shape descriptors unified against each other, and the edges of the
// constraint graph the Builder assembles and the Unifier solves.
package constraint

import (
	"fmt"
	"strings"

	"github.com/oocheck/oocheck/internal/ast"
	"github.com/oocheck/oocheck/internal/names"
	"github.com/oocheck/oocheck/internal/srcpos"
)

// Shape is the closed set of Expected variants (spec.md §3/§4.3).
type Shape interface {
	String() string
	shapeEqual(Shape) bool
}

// Expected pairs a position with a Shape (spec.md §4.3).
type Expected struct {
	Pos    srcpos.Position
	Expect Shape
}

// New builds an Expected directly from a position and shape.
func New(pos srcpos.Position, shape Shape) Expected {
	return Expected{Pos: pos, Expect: shape}
}

// From constructs an Expression{ast} Expected but peers into a Block or
// File node, using its last statement as the representative AST (spec.md
// §4.3). A Block/File with no statements falls back to itself.
func From(node ast.Expression) Expected {
	rep := representative(node)
	return Expected{Pos: rep.Pos(), Expect: Expression{AST: rep}}
}

// FromStatement is the Statement-typed counterpart of From, used where
// the generator holds a Statement rather than an Expression (e.g. the
// last statement of a Block used in expression position).
func FromStatement(node ast.Statement) Expected {
	rep := representativeStatement(node)
	return Expected{Pos: rep.Pos(), Expect: ExpressionStmt{AST: rep}}
}

func representative(node ast.Expression) ast.Expression {
	switch n := node.(type) {
	case *ast.Block:
		if last := n.LastStatement(); last != nil {
			if expr, ok := last.(ast.Expression); ok {
				return expr
			}
		}
	case *ast.File:
		if len(n.Statements) > 0 {
			if expr, ok := n.Statements[len(n.Statements)-1].(ast.Expression); ok {
				return expr
			}
		}
	}
	return node
}

func representativeStatement(node ast.Statement) ast.Statement {
	if block, ok := node.(*ast.Block); ok {
		if last := block.LastStatement(); last != nil {
			return last
		}
	}
	if file, ok := node.(*ast.File); ok {
		if len(file.Statements) > 0 {
			return file.Statements[len(file.Statements)-1]
		}
	}
	return node
}

func (e Expected) String() string { return e.Expect.String() }

// IsExpr reports whether e is an Expression-shaped Expected.
func (e Expected) IsExpr() bool {
	switch e.Expect.(type) {
	case Expression, ExpressionStmt:
		return true
	default:
		return false
	}
}

// IsType reports whether e is a Type-shaped Expected.
func (e Expected) IsType() bool {
	_, ok := e.Expect.(Type)
	return ok
}

// StructurallyEqual reports whether e and o denote the same shape, per
// spec.md §4.3's structural-equality rules plus the supplemented
// literal-interchangeability and Truthy rules from original_source.
func (e Expected) StructurallyEqual(o Expected) bool {
	return e.Expect.shapeEqual(o.Expect)
}

// --- Shape variants (spec.md §3/§4.3) ---

// Nullable matches the None literal shape.
type Nullable struct{}

func (Nullable) String() string           { return "None" }
func (Nullable) shapeEqual(o Shape) bool  { _, ok := o.(Nullable); return ok }

// ExpressionAny matches any expression regardless of shape.
type ExpressionAny struct{}

func (ExpressionAny) String() string          { return "Any" }
func (ExpressionAny) shapeEqual(o Shape) bool { _, ok := o.(ExpressionAny); return ok }

// Expression wraps a concrete expression AST node; two Expressions are
// shape-equal when their ASTs are shape-equal (same node kind, shape-equal
// children; literal *values* are irrelevant, per spec.md §4.3).
type Expression struct {
	AST ast.Expression
}

func (e Expression) String() string { return fmt.Sprintf("%v", e.AST) }

func (e Expression) shapeEqual(o Shape) bool {
	switch other := o.(type) {
	case Expression:
		return astShapeEqual(e.AST, other.AST)
	case Truthy:
		return isBooleanShape(e.AST)
	case Type:
		return typeMatchesLiteral(other, e.AST)
	default:
		return false
	}
}

// ExpressionStmt is Expression's Statement-input twin, used when the
// representative node came from FromStatement.
type ExpressionStmt struct {
	AST ast.Statement
}

func (e ExpressionStmt) String() string { return fmt.Sprintf("%v", e.AST) }

func (e ExpressionStmt) shapeEqual(o Shape) bool {
	other, ok := o.(ExpressionStmt)
	if !ok {
		return false
	}
	return statementShapeEqual(e.AST, other.AST)
}

// Collection matches a homogeneous collection of element shape Ty.
type Collection struct {
	Ty Expected
}

func (c Collection) String() string { return "Collection[" + c.Ty.String() + "]" }

func (c Collection) shapeEqual(o Shape) bool {
	other, ok := o.(Collection)
	return ok && c.Ty.StructurallyEqual(other.Ty)
}

// Truthy matches any boolean expression shape: Bool literal, And, Or, Not
// (spec.md §4.3).
type Truthy struct{}

func (Truthy) String() string { return "Truthy" }

func (t Truthy) shapeEqual(o Shape) bool {
	switch other := o.(type) {
	case Truthy:
		return true
	case Expression:
		return isBooleanShape(other.AST)
	default:
		return false
	}
}

// Stringy matches any Name convertible to a string (spec.md §4.3).
type Stringy struct{}

func (Stringy) String() string          { return "Stringy" }
func (Stringy) shapeEqual(o Shape) bool { _, ok := o.(Stringy); return ok }

// Raises matches a set of exception class names a call or body may raise.
type Raises struct {
	Names names.Name
}

func (r Raises) String() string { return "Raises[" + r.Names.String() + "]" }

func (r Raises) shapeEqual(o Shape) bool {
	other, ok := o.(Raises)
	return ok && r.Names.Equal(other.Names)
}

// Function matches a call site: a callee name plus argument Expecteds
// (distinct from names.Function, which is a Name variant).
type Function struct {
	Name string
	Args []Expected
}

func (f Function) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return f.Name + "(" + strings.Join(parts, ", ") + ")"
}

func (f Function) shapeEqual(o Shape) bool {
	other, ok := o.(Function)
	if !ok || f.Name != other.Name || len(f.Args) != len(other.Args) {
		return false
	}
	for i := range f.Args {
		if !f.Args[i].StructurallyEqual(other.Args[i]) {
			return false
		}
	}
	return true
}

// Field matches a single named field access target.
type Field struct {
	Name string
}

func (f Field) String() string          { return f.Name }
func (f Field) shapeEqual(o Shape) bool { other, ok := o.(Field); return ok && f.Name == other.Name }

// Access matches entity.name (a property read or a method/field lookup).
type Access struct {
	Entity        Expected
	FieldOrMethod Expected
}

func (a Access) String() string { return a.Entity.String() + "." + a.FieldOrMethod.String() }

func (a Access) shapeEqual(o Shape) bool {
	other, ok := o.(Access)
	return ok && a.Entity.StructurallyEqual(other.Entity) && a.FieldOrMethod.StructurallyEqual(other.FieldOrMethod)
}

// Type matches a declared or inferred Name.
type Type struct {
	Name names.Name
}

func (t Type) String() string { return t.Name.String() }

func (t Type) shapeEqual(o Shape) bool {
	switch other := o.(type) {
	case Type:
		return t.Name.Equal(other.Name)
	case Expression:
		return typeMatchesLiteral(t, other.AST)
	default:
		return false
	}
}

// Tuple matches a fixed-arity ordered group of element Expecteds.
type Tuple struct {
	Elements []Expected
}

func (t Tuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t Tuple) shapeEqual(o Shape) bool {
	other, ok := o.(Tuple)
	if !ok || len(t.Elements) != len(other.Elements) {
		return false
	}
	for i := range t.Elements {
		if !t.Elements[i].StructurallyEqual(other.Elements[i]) {
			return false
		}
	}
	return true
}

func isBooleanShape(node ast.Expression) bool {
	switch n := node.(type) {
	case *ast.BoolLit:
		return true
	case *ast.BinOp:
		return n.Op == ast.OpAnd || n.Op == ast.OpOr
	case *ast.UnOp:
		return n.Op == ast.OpNot
	default:
		return false
	}
}

// typeMatchesLiteral implements the supplemented literal-shape rules
// (SPEC_FULL "Structural interchangeability of literal shapes"): a
// Type{STRING}/Type{INT}/Type{FLOAT} matches a string/int/float literal
// expression regardless of the literal's own value.
func typeMatchesLiteral(t Type, node ast.Expression) bool {
	single, ok := onlySingle(t.Name)
	if !ok {
		return false
	}
	switch single {
	case "String":
		_, ok := node.(*ast.StrLit)
		return ok
	case "Int":
		_, ok := node.(*ast.IntLit)
		return ok
	case "Float":
		_, ok := node.(*ast.RealLit)
		return ok
	default:
		return false
	}
}

func onlySingle(n names.Name) (string, bool) {
	ts := n.TrueNames()
	if len(ts) != 1 {
		return "", false
	}
	single, ok := ts[0].Variant.(names.Single)
	if !ok || len(single.Generics) != 0 {
		return "", false
	}
	return single.Name, true
}
