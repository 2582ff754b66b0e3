package main

import (
	"encoding/json"
	"fmt"

	"github.com/oocheck/oocheck/internal/ast"
	"github.com/oocheck/oocheck/internal/classctx"
	"github.com/oocheck/oocheck/internal/names"
	"github.com/oocheck/oocheck/internal/srcpos"
)

// fixture is the top-level JSON document `oocheck check` reads: a
// serialized AST plus the class-context fixture it type-checks against.
// Lexing/parsing are external collaborators (spec.md §1), so this is the
// CLI's own stand-in for "whatever produced the tree" — a plain JSON
// encoding of the node shapes internal/ast defines, not a real language
// syntax.
type fixture struct {
	File    json.RawMessage  `json:"file"`
	Classes []classFixture   `json:"classes"`
	Funcs   []funcFixture    `json:"functions"`
}

type classFixture struct {
	Name        string          `json:"name"`
	Parent      string          `json:"parent"`
	Fields      []fieldFixture  `json:"fields"`
	Functions   []funcFixture   `json:"functions"`
	Constructor [][]argFixture  `json:"constructors"`
}

type fieldFixture struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Private bool   `json:"private"`
}

type funcFixture struct {
	Name    string        `json:"name"`
	Args    []argFixture  `json:"args"`
	Ret     string        `json:"ret"`
	Raises  []string      `json:"raises"`
	Private bool          `json:"private"`
}

type argFixture struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	HasType    bool   `json:"hasType"`
	HasDefault bool   `json:"hasDefault"`
	Vararg     bool   `json:"vararg"`
	Mutable    bool   `json:"mutable"`
}

// buildContext turns the fixture's class/function declarations into a
// classctx.Registry (spec.md §4.1's contract, the in-memory
// implementation internal/classctx.Registry provides).
func (fx fixture) buildContext() *classctx.Registry {
	reg := classctx.NewRegistry()
	for _, c := range fx.Classes {
		fields := make([]classctx.FieldRecord, len(c.Fields))
		for i, f := range c.Fields {
			fields[i] = classctx.FieldRecord{Name: f.Name, Type: names.NewSingle(f.Type), Private: f.Private}
		}
		funs := map[string][]classctx.FunctionRecord{}
		for _, f := range c.Functions {
			funs[f.Name] = append(funs[f.Name], toFunctionRecord(f))
		}
		ctors := make([][]classctx.ArgRecord, len(c.Constructor))
		for i, ctor := range c.Constructor {
			ctors[i] = toArgRecords(ctor)
		}
		reg.DefineClass(c.Name, c.Parent, fields, funs, ctors)
	}
	for _, f := range fx.Funcs {
		reg.DefineFunction(toFunctionRecord(f))
	}
	return reg
}

func toFunctionRecord(f funcFixture) classctx.FunctionRecord {
	return classctx.FunctionRecord{
		Name:    f.Name,
		Args:    toArgRecords(f.Args),
		Ret:     names.NewSingle(f.Ret),
		Raises:  f.Raises,
		Private: f.Private,
	}
}

func toArgRecords(args []argFixture) []classctx.ArgRecord {
	out := make([]classctx.ArgRecord, len(args))
	for i, a := range args {
		rec := classctx.ArgRecord{
			Name: a.Name, HasType: a.HasType, HasDefault: a.HasDefault,
			Vararg: a.Vararg, Mutable: a.Mutable,
		}
		if a.HasType {
			rec.Type = names.NewSingle(a.Type)
		}
		out[i] = rec
	}
	return out
}

type posFixture struct {
	StartLine, StartCol, EndLine, EndCol int
}

func (p posFixture) toPos() srcpos.Position {
	return srcpos.New(p.StartLine, p.StartCol, p.EndLine, p.EndCol)
}

// decodeFile decodes the top-level "file" node into an *ast.File.
func decodeFile(raw json.RawMessage) (*ast.File, error) {
	n, err := decodeStatement(raw)
	if err != nil {
		return nil, err
	}
	file, ok := n.(*ast.File)
	if !ok {
		return nil, fmt.Errorf("fixture: top-level node must be kind \"file\", got %T", n)
	}
	return file, nil
}

type rawNode struct {
	Kind string     `json:"kind"`
	Pos  posFixture `json:"pos"`

	Name      string          `json:"name,omitempty"`
	Value     json.RawMessage `json:"value,omitempty"`
	Op        string          `json:"op,omitempty"`
	Left      json.RawMessage `json:"left,omitempty"`
	Right     json.RawMessage `json:"right,omitempty"`
	Operand   json.RawMessage `json:"operand,omitempty"`
	Elements  []json.RawMessage `json:"elements,omitempty"`
	Parts     []json.RawMessage `json:"parts,omitempty"`
	Args      []json.RawMessage `json:"args,omitempty"`
	Statements []json.RawMessage `json:"statements,omitempty"`
	Type      *typeExprFixture  `json:"type,omitempty"`
	Init      json.RawMessage   `json:"init,omitempty"`
	Params    []paramFixture    `json:"params,omitempty"`
	Ret       *typeExprFixture  `json:"ret,omitempty"`
	Raises    []string          `json:"raises,omitempty"`
	Body      json.RawMessage   `json:"body,omitempty"`
	Instance  json.RawMessage   `json:"instance,omitempty"`
	Property  json.RawMessage   `json:"property,omitempty"`
	Parent    string            `json:"parent,omitempty"`
	Fields    []fieldDeclFixture `json:"fields,omitempty"`
	Cond      json.RawMessage   `json:"cond,omitempty"`
	Then      json.RawMessage   `json:"then,omitempty"`
	Else      json.RawMessage   `json:"else,omitempty"`
	Scrutinee json.RawMessage   `json:"scrutinee,omitempty"`
	Cases     []caseFixture     `json:"cases,omitempty"`
	Collection json.RawMessage  `json:"collection,omitempty"`
	Var       json.RawMessage   `json:"var,omitempty"`
	Ascribed  *typeExprFixture  `json:"ascribed,omitempty"`
	Resource  json.RawMessage   `json:"resource,omitempty"`
	Exception json.RawMessage   `json:"exception,omitempty"`
}

type typeExprFixture struct {
	Name     string            `json:"name,omitempty"`
	Generics []typeExprFixture `json:"generics,omitempty"`
	Elements []typeExprFixture `json:"elements,omitempty"`
	Args     []typeExprFixture `json:"args,omitempty"`
	Ret      *typeExprFixture  `json:"ret,omitempty"`
	Nullable bool              `json:"nullable,omitempty"`
}

func (t *typeExprFixture) toTypeExpr(pos srcpos.Position) *ast.TypeExpr {
	if t == nil {
		return nil
	}
	if len(t.Elements) > 0 {
		els := make([]*ast.TypeExpr, len(t.Elements))
		for i := range t.Elements {
			els[i] = t.Elements[i].toTypeExpr(pos)
		}
		return ast.NewTupleTypeExpr(pos, els, t.Nullable)
	}
	if t.Ret != nil || len(t.Args) > 0 {
		args := make([]*ast.TypeExpr, len(t.Args))
		for i := range t.Args {
			args[i] = t.Args[i].toTypeExpr(pos)
		}
		return ast.NewFunctionTypeExpr(pos, args, t.Ret.toTypeExpr(pos), t.Nullable)
	}
	generics := make([]*ast.TypeExpr, len(t.Generics))
	for i := range t.Generics {
		generics[i] = t.Generics[i].toTypeExpr(pos)
	}
	return ast.NewSingleTypeExpr(pos, t.Name, generics, t.Nullable)
}

type paramFixture struct {
	Name       string           `json:"name"`
	Type       *typeExprFixture `json:"type,omitempty"`
	Default    json.RawMessage  `json:"default,omitempty"`
	Vararg     bool             `json:"vararg,omitempty"`
	Mutable    bool             `json:"mutable,omitempty"`
}

type fieldDeclFixture struct {
	Name    string           `json:"name"`
	Type    *typeExprFixture `json:"type,omitempty"`
	Private bool             `json:"private,omitempty"`
}

type caseFixture struct {
	Cond json.RawMessage `json:"cond"`
	Body json.RawMessage `json:"body"`
}

func decodeExpr(raw json.RawMessage) (ast.Expression, error) {
	n, err := decodeStatement(raw)
	if err != nil {
		return nil, err
	}
	expr, ok := n.(ast.Expression)
	if !ok {
		return nil, fmt.Errorf("fixture: expected an expression node, got %T", n)
	}
	return expr, nil
}

func decodeExprs(raws []json.RawMessage) ([]ast.Expression, error) {
	out := make([]ast.Expression, len(raws))
	for i, r := range raws {
		e, err := decodeExpr(r)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func decodeBlock(raw json.RawMessage) (*ast.Block, error) {
	if raw == nil {
		return nil, nil
	}
	n, err := decodeStatement(raw)
	if err != nil {
		return nil, err
	}
	block, ok := n.(*ast.Block)
	if !ok {
		return nil, fmt.Errorf("fixture: expected a block node, got %T", n)
	}
	return block, nil
}

func decodeId(raw json.RawMessage) (*ast.Id, error) {
	if raw == nil {
		return nil, nil
	}
	n, err := decodeStatement(raw)
	if err != nil {
		return nil, err
	}
	id, ok := n.(*ast.Id)
	if !ok {
		return nil, fmt.Errorf("fixture: expected an identifier node, got %T", n)
	}
	return id, nil
}

// decodeStatement decodes any node fixture, statement or expression, via
// its "kind" discriminator.
func decodeStatement(raw json.RawMessage) (ast.Node, error) {
	var rn rawNode
	if err := json.Unmarshal(raw, &rn); err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	pos := rn.Pos.toPos()

	switch rn.Kind {
	case "file":
		stmts, err := decodeStatements(rn.Statements)
		if err != nil {
			return nil, err
		}
		return ast.NewFile(pos, stmts), nil
	case "block":
		stmts, err := decodeStatements(rn.Statements)
		if err != nil {
			return nil, err
		}
		return ast.NewBlock(pos, stmts), nil
	case "id":
		return ast.NewId(pos, rn.Name), nil
	case "int":
		var v int64
		if err := json.Unmarshal(rn.Value, &v); err != nil {
			return nil, fmt.Errorf("fixture: int literal: %w", err)
		}
		return ast.NewIntLit(pos, v), nil
	case "real":
		var v float64
		if err := json.Unmarshal(rn.Value, &v); err != nil {
			return nil, fmt.Errorf("fixture: real literal: %w", err)
		}
		return ast.NewRealLit(pos, v), nil
	case "str":
		var v string
		if err := json.Unmarshal(rn.Value, &v); err != nil {
			return nil, fmt.Errorf("fixture: str literal: %w", err)
		}
		return ast.NewStrLit(pos, v), nil
	case "bool":
		var v bool
		if err := json.Unmarshal(rn.Value, &v); err != nil {
			return nil, fmt.Errorf("fixture: bool literal: %w", err)
		}
		return ast.NewBoolLit(pos, v), nil
	case "none":
		return ast.NewNoneLit(pos), nil
	case "fstring":
		parts, err := decodeExprs(rn.Parts)
		if err != nil {
			return nil, err
		}
		return ast.NewFStringLit(pos, parts), nil
	case "list":
		els, err := decodeExprs(rn.Elements)
		if err != nil {
			return nil, err
		}
		return ast.NewListLit(pos, els), nil
	case "set":
		els, err := decodeExprs(rn.Elements)
		if err != nil {
			return nil, err
		}
		return ast.NewSetLit(pos, els), nil
	case "tuple":
		els, err := decodeExprs(rn.Elements)
		if err != nil {
			return nil, err
		}
		return ast.NewTupleLit(pos, els), nil
	case "binop":
		left, err := decodeExpr(rn.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(rn.Right)
		if err != nil {
			return nil, err
		}
		return ast.NewBinOp(pos, ast.Operator(rn.Op), left, right), nil
	case "unop":
		operand, err := decodeExpr(rn.Operand)
		if err != nil {
			return nil, err
		}
		return ast.NewUnOp(pos, ast.Operator(rn.Op), operand), nil
	case "vardef":
		left, err := decodeExpr(rn.Left)
		if err != nil {
			return nil, err
		}
		var init ast.Expression
		if rn.Init != nil {
			init, err = decodeExpr(rn.Init)
			if err != nil {
				return nil, err
			}
		}
		return ast.NewVariableDef(pos, left, rn.Type.toTypeExpr(pos), init), nil
	case "fundef":
		args, err := decodeArgs(rn.Params, pos)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(rn.Body)
		if err != nil {
			return nil, err
		}
		return ast.NewFunDef(pos, rn.Name, args, rn.Ret.toTypeExpr(pos), rn.Raises, body), nil
	case "anonfun":
		args, err := decodeArgs(rn.Params, pos)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(rn.Body)
		if err != nil {
			return nil, err
		}
		return ast.NewAnonFun(pos, args, body), nil
	case "call":
		args, err := decodeExprs(rn.Args)
		if err != nil {
			return nil, err
		}
		return ast.NewFunctionCall(pos, rn.Name, args), nil
	case "propertycall":
		instance, err := decodeExpr(rn.Instance)
		if err != nil {
			return nil, err
		}
		property, err := decodeExpr(rn.Property)
		if err != nil {
			return nil, err
		}
		return ast.NewPropertyCall(pos, instance, property), nil
	case "reassign":
		left, err := decodeExpr(rn.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(rn.Right)
		if err != nil {
			return nil, err
		}
		return ast.NewReassign(pos, left, right), nil
	case "classdef":
		fields := make([]*ast.Field, len(rn.Fields))
		for i, f := range rn.Fields {
			fields[i] = ast.NewField(pos, f.Name, f.Type.toTypeExpr(pos), f.Private)
		}
		body, err := decodeStatements(rn.Statements)
		if err != nil {
			return nil, err
		}
		return ast.NewClassDef(pos, rn.Name, rn.Parent, fields, body), nil
	case "typealias":
		return ast.NewTypeAlias(pos, rn.Name, rn.Type.toTypeExpr(pos)), nil
	case "if":
		cond, err := decodeExpr(rn.Cond)
		if err != nil {
			return nil, err
		}
		then, err := decodeBlock(rn.Then)
		if err != nil {
			return nil, err
		}
		els, err := decodeBlock(rn.Else)
		if err != nil {
			return nil, err
		}
		return ast.NewIf(pos, cond, then, els), nil
	case "match":
		scrutinee, err := decodeExpr(rn.Scrutinee)
		if err != nil {
			return nil, err
		}
		cases := make([]*ast.Case, len(rn.Cases))
		for i, c := range rn.Cases {
			cc, err := decodeExpr(c.Cond)
			if err != nil {
				return nil, err
			}
			cb, err := decodeBlock(c.Body)
			if err != nil {
				return nil, err
			}
			cases[i] = ast.NewCase(pos, cc, cb)
		}
		return ast.NewMatch(pos, scrutinee, cases), nil
	case "for":
		v, err := decodeId(rn.Var)
		if err != nil {
			return nil, err
		}
		coll, err := decodeExpr(rn.Collection)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(rn.Body)
		if err != nil {
			return nil, err
		}
		return ast.NewFor(pos, v, coll, body), nil
	case "while":
		cond, err := decodeExpr(rn.Cond)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(rn.Body)
		if err != nil {
			return nil, err
		}
		return ast.NewWhile(pos, cond, body), nil
	case "break":
		return ast.NewBreak(pos), nil
	case "continue":
		return ast.NewContinue(pos), nil
	case "with":
		resource, err := decodeExpr(rn.Resource)
		if err != nil {
			return nil, err
		}
		v, err := decodeId(rn.Var)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(rn.Body)
		if err != nil {
			return nil, err
		}
		return ast.NewWith(pos, resource, v, rn.Ascribed.toTypeExpr(pos), body), nil
	case "raise":
		exc, err := decodeExpr(rn.Exception)
		if err != nil {
			return nil, err
		}
		return ast.NewRaise(pos, exc), nil
	default:
		return nil, fmt.Errorf("fixture: unknown node kind %q", rn.Kind)
	}
}

func decodeStatements(raws []json.RawMessage) ([]ast.Statement, error) {
	out := make([]ast.Statement, len(raws))
	for i, r := range raws {
		n, err := decodeStatement(r)
		if err != nil {
			return nil, err
		}
		stmt, ok := n.(ast.Statement)
		if !ok {
			return nil, fmt.Errorf("fixture: expected a statement node, got %T", n)
		}
		out[i] = stmt
	}
	return out, nil
}

func decodeArgs(params []paramFixture, pos srcpos.Position) ([]*ast.Arg, error) {
	out := make([]*ast.Arg, len(params))
	for i, p := range params {
		var def ast.Expression
		if p.Default != nil {
			d, err := decodeExpr(p.Default)
			if err != nil {
				return nil, err
			}
			def = d
		}
		out[i] = ast.NewArg(pos, p.Name, p.Type.toTypeExpr(pos), def, p.Vararg, p.Mutable)
	}
	return out, nil
}
