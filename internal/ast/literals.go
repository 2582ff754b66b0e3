package ast

import "github.com/oocheck/oocheck/internal/srcpos"

// Id is an identifier reference. Whether it binds or looks up depends on
// the Environment's define mode at the point the Generator visits it
// (spec.md §4.6 "Identifier resolution rules").
type Id struct {
	base
	Name string
}

func NewId(pos srcpos.Position, name string) *Id { return &Id{base: base{pos}, Name: name} }

func (i *Id) expressionNode() {}
func (i *Id) String() string  { return i.Name }

// IntLit is an integer literal.
type IntLit struct {
	base
	Value int64
}

func NewIntLit(pos srcpos.Position, v int64) *IntLit { return &IntLit{base{pos}, v} }
func (l *IntLit) expressionNode()                    {}
func (l *IntLit) String() string                     { return "<int>" }

// RealLit is a floating-point literal.
type RealLit struct {
	base
	Value float64
}

func NewRealLit(pos srcpos.Position, v float64) *RealLit { return &RealLit{base{pos}, v} }
func (l *RealLit) expressionNode()                       {}
func (l *RealLit) String() string                        { return "<real>" }

// StrLit is a plain string literal.
type StrLit struct {
	base
	Value string
}

func NewStrLit(pos srcpos.Position, v string) *StrLit { return &StrLit{base{pos}, v} }
func (l *StrLit) expressionNode()                     {}
func (l *StrLit) String() string                      { return "<str>" }

// FStringLit is a string with interpolated sub-expressions; each Parts
// entry that is an Expression is constrained Stringy (spec.md §4.6).
type FStringLit struct {
	base
	Parts []Expression // StrLit segments interleaved with interpolated expressions
}

func NewFStringLit(pos srcpos.Position, parts []Expression) *FStringLit {
	return &FStringLit{base{pos}, parts}
}

func (l *FStringLit) expressionNode() {}
func (l *FStringLit) String() string  { return "<fstring>" }

// BoolLit is a boolean literal (True/False).
type BoolLit struct {
	base
	Value bool
}

func NewBoolLit(pos srcpos.Position, v bool) *BoolLit { return &BoolLit{base{pos}, v} }
func (l *BoolLit) expressionNode()                    {}
func (l *BoolLit) String() string                     { return "<bool>" }

// NoneLit is the null literal.
type NoneLit struct{ base }

func NewNoneLit(pos srcpos.Position) *NoneLit { return &NoneLit{base{pos}} }
func (l *NoneLit) expressionNode()            {}
func (l *NoneLit) String() string             { return "None" }

// ListLit, SetLit and TupleLit are ordered-element collection literals.
type ListLit struct {
	base
	Elements []Expression
}

func NewListLit(pos srcpos.Position, els []Expression) *ListLit { return &ListLit{base{pos}, els} }
func (l *ListLit) expressionNode()                              {}
func (l *ListLit) String() string                               { return "<list>" }

type SetLit struct {
	base
	Elements []Expression
}

func NewSetLit(pos srcpos.Position, els []Expression) *SetLit { return &SetLit{base{pos}, els} }
func (l *SetLit) expressionNode()                              {}
func (l *SetLit) String() string                               { return "<set>" }

type TupleLit struct {
	base
	Elements []Expression
}

func NewTupleLit(pos srcpos.Position, els []Expression) *TupleLit {
	return &TupleLit{base{pos}, els}
}

func (l *TupleLit) expressionNode() {}
func (l *TupleLit) String() string  { return "<tuple>" }
