package ast

type Ident struct {
	Range
	Name string
}

// NumberLit keeps the number as written so that literal types print back the same
type NumberLit struct {
	Range
	Text string
}

type StringLit struct {
	Range
	Value string
}

type BoolLit struct {
	Range
	Value bool
}

type NullLit struct {
	Range
}

type ArrayLit struct {
	Range
	Elems []Expr
}

type ObjectLit struct {
	Range
	Fields []Field
}

// Member is a property access `X.Name`
type Member struct {
	Range
	X    Expr
	Name string
}

// Index is an indexed access `X[Index]`
type Index struct {
	Range
	X     Expr
	Index Expr
}

// Call is `Fn(Args)` or, when TypeArgs is not nil, `Fn<TypeArgs>(Args)`
type Call struct {
	Range
	Fn       Expr
	TypeArgs []TypeExpr
	Args     []Expr
}

func (c *Call) HasTypeArgs() bool { return c.TypeArgs != nil }

// New is `new Ctor(Args)` or, when TypeArgs is not nil, `new Ctor<TypeArgs>(Args)`
type New struct {
	Range
	Ctor     Expr
	TypeArgs []TypeExpr
	Args     []Expr
}

func (n *New) HasTypeArgs() bool { return n.TypeArgs != nil }

// TaggedTemplate is Tag followed by a template literal, like x`hello`
type TaggedTemplate struct {
	Range
	Tag  Expr
	Text string
}

// Unary is a prefix operator application: + - ! ++ --
type Unary struct {
	Range
	Op string
	X  Expr
}

// Postfix is x++ or x--
type Postfix struct {
	Range
	Op string
	X  Expr
}

// Binary includes the logical operators and instanceof
type Binary struct {
	Range
	Op   string
	X, Y Expr
}

// Assign is `Target Op Value` where Op is "=" or a compound assignment like "+="
type Assign struct {
	Range
	Op     string
	Target Expr
	Value  Expr
}

// Paren keeps track of parenthesised expressions so they print back faithfully
type Paren struct {
	Range
	X Expr
}

func (*Ident) exprNode()          {}
func (*NumberLit) exprNode()      {}
func (*StringLit) exprNode()      {}
func (*BoolLit) exprNode()        {}
func (*NullLit) exprNode()        {}
func (*ArrayLit) exprNode()       {}
func (*ObjectLit) exprNode()      {}
func (*Member) exprNode()         {}
func (*Index) exprNode()          {}
func (*Call) exprNode()           {}
func (*New) exprNode()            {}
func (*TaggedTemplate) exprNode() {}
func (*Unary) exprNode()          {}
func (*Postfix) exprNode()        {}
func (*Binary) exprNode()         {}
func (*Assign) exprNode()         {}
func (*Paren) exprNode()          {}
