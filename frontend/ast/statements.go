package ast

// TypeAlias is `type Name = Type;`
type TypeAlias struct {
	Range
	Name string
	Type TypeExpr
}

type DeclKind string

const (
	DeclLet   DeclKind = "let"
	DeclConst DeclKind = "const"
	DeclVar   DeclKind = "var"
)

// VarDecl is a single variable declaration. Type and Init are optional.
//
// Declare is set for `declare var`, which never has an initializer
// but is always considered assigned.
type VarDecl struct {
	Range
	Kind    DeclKind
	Declare bool
	Name    string
	Type    TypeExpr
	Init    Expr
}

type FuncDecl struct {
	Range
	Name   string
	Params []Param
	Ret    TypeExpr
	Body   *Block
}

// ClassDecl only carries field declarations, which is all the checker needs
// to build a nominal instance type
type ClassDecl struct {
	Range
	Name   string
	Fields []Field
}

type If struct {
	Range
	Cond Expr
	Then *Block
	Else *Block // may be nil
}

type Return struct {
	Range
	Value Expr // may be nil
}

type ExprStmt struct {
	Range
	X Expr
}

type Block struct {
	Range
	Stmts []Stmt
}

func (*TypeAlias) stmtNode() {}
func (*VarDecl) stmtNode()   {}
func (*FuncDecl) stmtNode()  {}
func (*ClassDecl) stmtNode() {}
func (*If) stmtNode()        {}
func (*Return) stmtNode()    {}
func (*ExprStmt) stmtNode()  {}
func (*Block) stmtNode()     {}
