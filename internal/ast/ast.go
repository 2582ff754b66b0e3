// Package ast defines the abstract syntax tree node shapes the Generator
// (internal/generate) walks. The lexer and parser that would produce this
// tree are out of the checker core's scope (spec.md §1); this package only
// fixes the contract between "whatever produced the tree" and the
// constraint engine.
package ast

import "github.com/oocheck/oocheck/internal/srcpos"

// Node is the base interface every AST node implements.
type Node interface {
	Pos() srcpos.Position
	String() string
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action without itself being a
// value-producing expression. In this language most statements are also
// legal in expression position (the language is expression-based per
// spec.md §1); Statement exists to mark the top level of a Block.
type Statement interface {
	Node
	statementNode()
}

// base embeds the position every concrete node needs; it is never used on
// its own.
type base struct {
	position srcpos.Position
}

func (b base) Pos() srcpos.Position { return b.position }

// File is the root node: a sequence of top-level statements.
type File struct {
	base
	Statements []Statement
}

func NewFile(pos srcpos.Position, stmts []Statement) *File {
	return &File{base: base{pos}, Statements: stmts}
}

func (f *File) statementNode() {}
func (f *File) expressionNode() {}
func (f *File) String() string { return "<file>" }

// Block is a brace-delimited sequence of statements; per spec.md §4.6 its
// Expected aliases its last statement's Expected when used in expression
// position.
type Block struct {
	base
	Statements []Statement
}

func NewBlock(pos srcpos.Position, stmts []Statement) *Block {
	return &Block{base: base{pos}, Statements: stmts}
}

func (b *Block) statementNode()  {}
func (b *Block) expressionNode() {}
func (b *Block) String() string  { return "<block>" }

// LastStatement returns the representative statement Expected::from peers
// into (spec.md §4.3), or nil for an empty block.
func (b *Block) LastStatement() Statement {
	if len(b.Statements) == 0 {
		return nil
	}
	return b.Statements[len(b.Statements)-1]
}
