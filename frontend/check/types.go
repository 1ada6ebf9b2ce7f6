package check

import (
	"github.com/cottand/inferred/frontend/ast"
	"github.com/cottand/inferred/frontend/ilerr"
	"github.com/cottand/inferred/frontend/types"
)

// resolveType turns a type as written into a types.Type.
// Unions and intersections are folded left to right through the Resolver,
// so `inferred & null & undefined` is `(inferred & null) & undefined`.
func (c *fileChecker) resolveType(e env, te ast.TypeExpr) types.Type {
	switch te := te.(type) {
	case *ast.TypeName:
		if te.Name == "inferred" {
			return types.InferredAt(te)
		}
		if t, ok := types.Keywords[te.Name]; ok {
			return t
		}
		if t, ok := e.types.Get(te.Name); ok {
			return t
		}
		c.report(ilerr.New(ilerr.NewUndefinedType{Positioner: te.Range, Name: te.Name}))
		return types.Any
	case *ast.ArrayTypeExpr:
		return types.ArrayType{Elem: c.resolveType(e, te.Elem)}
	case *ast.ObjectTypeExpr:
		if len(te.Fields) == 0 {
			return types.EmptyObject
		}
		fields := make([]types.Field, 0, len(te.Fields))
		for _, f := range te.Fields {
			fields = append(fields, types.Field{Name: f.Name, Type: c.resolveType(e, f.Type)})
		}
		return types.ObjectType{Fields: fields}
	case *ast.FuncTypeExpr:
		return types.FuncType{Params: c.resolveParams(e, te.Params), Ret: c.resolveType(e, te.Ret)}
	case *ast.UnionTypeExpr:
		members := make([]types.Type, 0, len(te.Members))
		for _, m := range te.Members {
			members = append(members, c.resolveType(e, m))
		}
		return c.resolver.UnionAll(members...)
	case *ast.IntersectionTypeExpr:
		members := make([]types.Type, 0, len(te.Members))
		for _, m := range te.Members {
			members = append(members, c.resolveType(e, m))
		}
		return c.resolver.IntersectAll(members...)
	}
	return types.Any
}

// resolveParams treats unannotated parameters as any
func (c *fileChecker) resolveParams(e env, params []ast.Param) []types.Param {
	resolved := make([]types.Param, 0, len(params))
	for _, p := range params {
		var t types.Type = types.Any
		if p.Type != nil {
			t = c.resolveType(e, p.Type)
		}
		resolved = append(resolved, types.Param{Name: p.Name, Type: t})
	}
	return resolved
}

// widen forgets literal types, as `let x = 1` declares a number
func widen(t types.Type) types.Type {
	if lit, ok := t.(types.LiteralType); ok {
		return lit.Widened()
	}
	return t
}
