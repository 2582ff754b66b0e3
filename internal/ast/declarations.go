package ast

import "github.com/oocheck/oocheck/internal/srcpos"

// VariableDef binds Left (an Id or a TupleLit of Ids for pattern
// destructuring) to an optional declared Type and/or Init expression
// (spec.md §4.6 "VariableDef").
type VariableDef struct {
	base
	Left Expression // *Id or *TupleLit of *Id
	Type *TypeExpr  // optional declared type
	Init Expression // optional initialiser
}

func NewVariableDef(pos srcpos.Position, left Expression, typ *TypeExpr, init Expression) *VariableDef {
	return &VariableDef{base: base{pos}, Left: left, Type: typ, Init: init}
}

func (v *VariableDef) statementNode()  {}
func (v *VariableDef) expressionNode() {}
func (v *VariableDef) String() string  { return "<var-def>" }

// Arg is one function/lambda parameter.
type Arg struct {
	base
	Name       string
	Type       *TypeExpr // optional
	Default    Expression
	HasDefault bool
	Vararg     bool
	Mutable    bool
}

func NewArg(pos srcpos.Position, name string, typ *TypeExpr, def Expression, vararg, mutable bool) *Arg {
	return &Arg{
		base: base{pos}, Name: name, Type: typ, Default: def,
		HasDefault: def != nil, Vararg: vararg, Mutable: mutable,
	}
}

func (a *Arg) Pos() srcpos.Position { return a.base.Pos() }
func (a *Arg) String() string       { return a.Name }

// FunDef is a named function/method declaration with an optional declared
// return type and raises list (spec.md §4.6 "FunDef").
type FunDef struct {
	base
	Name      string
	Args      []*Arg
	Ret       *TypeExpr // optional declared return type
	Raises    []string  // declared raiseable exception names
	Body      *Block
	IsPrivate bool
}

func NewFunDef(pos srcpos.Position, name string, args []*Arg, ret *TypeExpr, raises []string, body *Block) *FunDef {
	return &FunDef{base: base{pos}, Name: name, Args: args, Ret: ret, Raises: raises, Body: body}
}

func (f *FunDef) statementNode()  {}
func (f *FunDef) expressionNode() {}
func (f *FunDef) String() string  { return f.Name }

// AnonFun is an anonymous function literal: like FunDef but with no
// declared return type and no name (spec.md §4.6 "AnonFun").
type AnonFun struct {
	base
	Args []*Arg
	Body *Block
}

func NewAnonFun(pos srcpos.Position, args []*Arg, body *Block) *AnonFun {
	return &AnonFun{base: base{pos}, Args: args, Body: body}
}

func (a *AnonFun) expressionNode() {}
func (a *AnonFun) String() string  { return "<anon-fun>" }

// Field is a declared class field.
type Field struct {
	base
	Name      string
	Type      *TypeExpr
	IsPrivate bool
}

func NewField(pos srcpos.Position, name string, typ *TypeExpr, private bool) *Field {
	return &Field{base: base{pos}, Name: name, Type: typ, IsPrivate: private}
}

// ClassDef declares a class: an optional Parent, a list of Fields, and a
// Body of member declarations (FunDef, nested ClassDef, ...) — spec.md
// §4.6 "Class / TypeDef with body".
type ClassDef struct {
	base
	Name   string
	Parent string // empty if none
	Fields []*Field
	Body   []Statement
}

func NewClassDef(pos srcpos.Position, name, parent string, fields []*Field, body []Statement) *ClassDef {
	return &ClassDef{base: base{pos}, Name: name, Parent: parent, Fields: fields, Body: body}
}

func (c *ClassDef) statementNode() {}
func (c *ClassDef) String() string { return c.Name }

// TypeAlias binds Name to an aliased Type expression.
type TypeAlias struct {
	base
	Name string
	Type *TypeExpr
}

func NewTypeAlias(pos srcpos.Position, name string, typ *TypeExpr) *TypeAlias {
	return &TypeAlias{base: base{pos}, Name: name, Type: typ}
}

func (t *TypeAlias) statementNode() {}
func (t *TypeAlias) String() string { return t.Name }
