package ast

import "go/token"

// Node is the base interface for all AST nodes.
type Node interface {
	Positioner
}

// Expr is the interface for all expression nodes in the AST.
type Expr interface {
	Node
	exprNode()
}

// Stmt is the interface for all statement nodes in the AST.
type Stmt interface {
	Node
	stmtNode()
}

// TypeExpr is a type as written in the source, before it is resolved
// by the checker into a types.Type
type TypeExpr interface {
	Node
	typeNode()
}

// File represents a parsed source file.
type File struct {
	Range
	Name  string
	Stmts []Stmt

	// TokFile maps the token.Pos in this File's nodes back to lines and columns
	TokFile *token.File
	// Source is the text the File was parsed from
	Source string
}

// Position resolves p within f
func (f *File) Position(p Positioner) token.Position {
	return Locate(f.TokFile, p)
}

// Param is a function parameter. Type may be nil when it is not annotated.
type Param struct {
	Range
	Name string
	Type TypeExpr
}

// Field is a property in an object type, an object literal, or a class body.
// For object literals, Value is set and Type is nil.
type Field struct {
	Range
	Name  string
	Type  TypeExpr
	Value Expr
}
