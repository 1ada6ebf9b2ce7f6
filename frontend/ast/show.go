package ast

import (
	"strconv"
	"strings"
)

// ExprString prints expr back in source syntax, normalising whitespace
func ExprString(expr Expr) string {
	ctx := &showContext{Builder: &strings.Builder{}}
	ctx.showExpr(expr)
	return ctx.String()
}

// TypeExprString prints t back in source syntax, normalising whitespace
func TypeExprString(t TypeExpr) string {
	ctx := &showContext{Builder: &strings.Builder{}}
	ctx.showType(t)
	return ctx.String()
}

type showContext struct {
	*strings.Builder
}

func (ctx *showContext) showExprs(exprs []Expr) {
	for i, e := range exprs {
		if i > 0 {
			ctx.WriteString(", ")
		}
		ctx.showExpr(e)
	}
}

func (ctx *showContext) showTypeArgs(args []TypeExpr) {
	if args == nil {
		return
	}
	ctx.WriteString("<")
	for i, arg := range args {
		if i > 0 {
			ctx.WriteString(", ")
		}
		ctx.showType(arg)
	}
	ctx.WriteString(">")
}

func (ctx *showContext) showExpr(expr Expr) {
	switch e := expr.(type) {
	case nil:
		ctx.WriteString("nil")
	case *Ident:
		ctx.WriteString(e.Name)
	case *NumberLit:
		ctx.WriteString(e.Text)
	case *StringLit:
		ctx.WriteString(strconv.Quote(e.Value))
	case *BoolLit:
		ctx.WriteString(strconv.FormatBool(e.Value))
	case *NullLit:
		ctx.WriteString("null")
	case *ArrayLit:
		ctx.WriteString("[")
		ctx.showExprs(e.Elems)
		ctx.WriteString("]")
	case *ObjectLit:
		ctx.WriteString("{")
		for i, f := range e.Fields {
			if i > 0 {
				ctx.WriteString(",")
			}
			ctx.WriteString(" " + f.Name + ": ")
			ctx.showExpr(f.Value)
		}
		if len(e.Fields) > 0 {
			ctx.WriteString(" ")
		}
		ctx.WriteString("}")
	case *Member:
		ctx.showExpr(e.X)
		ctx.WriteString("." + e.Name)
	case *Index:
		ctx.showExpr(e.X)
		ctx.WriteString("[")
		ctx.showExpr(e.Index)
		ctx.WriteString("]")
	case *Call:
		ctx.showExpr(e.Fn)
		ctx.showTypeArgs(e.TypeArgs)
		ctx.WriteString("(")
		ctx.showExprs(e.Args)
		ctx.WriteString(")")
	case *New:
		ctx.WriteString("new ")
		ctx.showExpr(e.Ctor)
		ctx.showTypeArgs(e.TypeArgs)
		ctx.WriteString("(")
		ctx.showExprs(e.Args)
		ctx.WriteString(")")
	case *TaggedTemplate:
		ctx.showExpr(e.Tag)
		ctx.WriteString("`" + e.Text + "`")
	case *Unary:
		ctx.WriteString(e.Op)
		ctx.showExpr(e.X)
	case *Postfix:
		ctx.showExpr(e.X)
		ctx.WriteString(e.Op)
	case *Binary:
		ctx.showExpr(e.X)
		ctx.WriteString(" " + e.Op + " ")
		ctx.showExpr(e.Y)
	case *Assign:
		ctx.showExpr(e.Target)
		ctx.WriteString(" " + e.Op + " ")
		ctx.showExpr(e.Value)
	case *Paren:
		ctx.WriteString("(")
		ctx.showExpr(e.X)
		ctx.WriteString(")")
	default:
		ctx.WriteString("<?>")
	}
}

func (ctx *showContext) showParams(params []Param) {
	ctx.WriteString("(")
	for i, p := range params {
		if i > 0 {
			ctx.WriteString(", ")
		}
		ctx.WriteString(p.Name)
		if p.Type != nil {
			ctx.WriteString(": ")
			ctx.showType(p.Type)
		}
	}
	ctx.WriteString(")")
}

func (ctx *showContext) showType(t TypeExpr) {
	switch t := t.(type) {
	case nil:
		ctx.WriteString("nil")
	case *TypeName:
		ctx.WriteString(t.Name)
	case *ArrayTypeExpr:
		_, needsParens := t.Elem.(*FuncTypeExpr)
		if !needsParens {
			switch t.Elem.(type) {
			case *UnionTypeExpr, *IntersectionTypeExpr:
				needsParens = true
			}
		}
		if needsParens {
			ctx.WriteString("(")
		}
		ctx.showType(t.Elem)
		if needsParens {
			ctx.WriteString(")")
		}
		ctx.WriteString("[]")
	case *ObjectTypeExpr:
		if len(t.Fields) == 0 {
			ctx.WriteString("{}")
			return
		}
		ctx.WriteString("{ ")
		for _, f := range t.Fields {
			ctx.WriteString(f.Name + ": ")
			ctx.showType(f.Type)
			ctx.WriteString("; ")
		}
		ctx.WriteString("}")
	case *FuncTypeExpr:
		ctx.showParams(t.Params)
		ctx.WriteString(" => ")
		ctx.showType(t.Ret)
	case *UnionTypeExpr:
		ctx.showJunction(t.Members, " | ")
	case *IntersectionTypeExpr:
		ctx.showJunction(t.Members, " & ")
	default:
		ctx.WriteString("<?>")
	}
}

func (ctx *showContext) showJunction(members []TypeExpr, sep string) {
	for i, m := range members {
		if i > 0 {
			ctx.WriteString(sep)
		}
		needsParens := false
		switch m.(type) {
		case *FuncTypeExpr, *UnionTypeExpr, *IntersectionTypeExpr:
			needsParens = true
		}
		if needsParens {
			ctx.WriteString("(")
		}
		ctx.showType(m)
		if needsParens {
			ctx.WriteString(")")
		}
	}
}
