package ast

// TypeName is a reference to a type by name.
// Keywords like `number` or `inferred` are TypeNames too, and are told
// apart from aliases and classes by the checker.
type TypeName struct {
	Range
	Name string
}

type ArrayTypeExpr struct {
	Range
	Elem TypeExpr
}

// ObjectTypeExpr is an object shape `{ a: T; b: U }`. `{}` has no Fields.
type ObjectTypeExpr struct {
	Range
	Fields []Field
}

// FuncTypeExpr is a function signature `(a: T) => R`
type FuncTypeExpr struct {
	Range
	Params []Param
	Ret    TypeExpr
}

// UnionTypeExpr holds at least two members, in source order
type UnionTypeExpr struct {
	Range
	Members []TypeExpr
}

// IntersectionTypeExpr holds at least two members, in source order
type IntersectionTypeExpr struct {
	Range
	Members []TypeExpr
}

func (*TypeName) typeNode()             {}
func (*ArrayTypeExpr) typeNode()        {}
func (*ObjectTypeExpr) typeNode()       {}
func (*FuncTypeExpr) typeNode()         {}
func (*UnionTypeExpr) typeNode()        {}
func (*IntersectionTypeExpr) typeNode() {}
