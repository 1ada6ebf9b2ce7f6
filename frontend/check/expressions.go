package check

import (
	"github.com/cottand/inferred/frontend/ast"
	"github.com/cottand/inferred/frontend/ilerr"
	"github.com/cottand/inferred/frontend/types"
	"strings"
)

func (c *fileChecker) exprType(e env, expr ast.Expr) types.Type {
	switch x := expr.(type) {
	case *ast.Ident:
		return c.readIdent(e, x)
	case *ast.NumberLit:
		return types.NumberLiteral(x.Text)
	case *ast.StringLit:
		return types.StringLiteral(x.Value)
	case *ast.BoolLit:
		return types.BooleanLiteral(x.Value)
	case *ast.NullLit:
		return types.Null
	case *ast.ArrayLit:
		elems := make([]types.Type, 0, len(x.Elems))
		for _, elem := range x.Elems {
			elems = append(elems, widen(c.exprType(e, elem)))
		}
		return types.ArrayType{Elem: c.resolver.UnionAll(elems...)}
	case *ast.ObjectLit:
		if len(x.Fields) == 0 {
			return types.EmptyObject
		}
		fields := make([]types.Field, 0, len(x.Fields))
		for _, f := range x.Fields {
			fields = append(fields, types.Field{Name: f.Name, Type: widen(c.exprType(e, f.Value))})
		}
		return types.ObjectType{Fields: fields}
	case *ast.Paren:
		return c.exprType(e, x.X)
	case *ast.Member:
		return c.memberType(e, x)
	case *ast.Index:
		return c.indexType(e, x)
	case *ast.Call:
		return c.callType(e, x)
	case *ast.New:
		return c.newType(e, x)
	case *ast.TaggedTemplate:
		tag := c.exprType(e, x.Tag)
		return c.invoke(tag, types.OpTaggedTemplate, x, nil)
	case *ast.Unary:
		return c.unaryType(e, x)
	case *ast.Postfix:
		return c.incrementType(e, x.X, x)
	case *ast.Binary:
		return c.binaryType(e, x)
	case *ast.Assign:
		return c.assignType(e, x)
	}
	return types.Any
}

func (c *fileChecker) lookup(e env, ident *ast.Ident) (*binding, bool) {
	b, ok := e.values.Get(ident.Name)
	if !ok {
		c.report(ilerr.New(ilerr.NewUndefinedVariable{Positioner: ident.Range, Name: ident.Name}))
	}
	return b, ok
}

// readIdent reports reads of variables that may still be unassigned.
// Variables declared in enclosing functions are not tracked, as the
// function may run after they are assigned.
func (c *fileChecker) readIdent(e env, ident *ast.Ident) types.Type {
	b, ok := c.lookup(e, ident)
	if !ok {
		return types.Any
	}
	if b.depth == c.depth() && !c.isAssigned(b) && types.RequiresDefiniteAssignment(b.t) {
		c.report(ilerr.New(ilerr.NewUseBeforeAssigned{Positioner: ident.Range, Name: ident.Name}))
	}
	return b.t
}

// checkOperator reports whether op applies to t, reporting it if not
func (c *fileChecker) checkOperator(t types.Type, op types.OperatorKind, at ast.Positioner) bool {
	err := c.resolver.CheckOperator(t, op, at)
	c.report(err)
	return err == nil
}

func isUntyped(t types.Type) bool {
	return t.Kind() == types.KindAny || t.Kind() == types.KindInferred
}

func (c *fileChecker) memberType(e env, m *ast.Member) types.Type {
	t := c.exprType(e, m.X)
	if !c.checkOperator(t, types.OpPropertyAccess, m) {
		return types.Any
	}
	if isUntyped(t) {
		return c.resolver.OperatorResult(types.OpPropertyAccess, ".", t)
	}
	if field, ok := types.Property(t, m.Name); ok {
		return field
	}
	c.report(ilerr.New(ilerr.NewPropertyNotFound{Positioner: m.Range, Property: m.Name, On: t}))
	return types.Any
}

func (c *fileChecker) indexType(e env, idx *ast.Index) types.Type {
	t := c.exprType(e, idx.X)
	c.exprType(e, idx.Index)
	if !c.checkOperator(t, types.OpIndexedAccess, idx) {
		return types.Any
	}
	if isUntyped(t) {
		return c.resolver.OperatorResult(types.OpIndexedAccess, "[]", t)
	}
	if key, ok := idx.Index.(*ast.StringLit); ok {
		if field, ok := types.Property(t, key.Value); ok {
			return field
		}
		c.report(ilerr.New(ilerr.NewPropertyNotFound{Positioner: idx.Range, Property: key.Value, On: t}))
		return types.Any
	}
	if elem, ok := types.Element(t); ok {
		return elem
	}
	return types.Any
}

func (c *fileChecker) argTypes(e env, args []ast.Expr) []types.Type {
	ts := make([]types.Type, 0, len(args))
	for _, arg := range args {
		ts = append(ts, c.exprType(e, arg))
	}
	return ts
}

func (c *fileChecker) resolveTypeArgs(e env, typeArgs []ast.TypeExpr) {
	for _, arg := range typeArgs {
		c.resolveType(e, arg)
	}
}

func (c *fileChecker) callType(e env, call *ast.Call) types.Type {
	fn := c.exprType(e, call.Fn)
	c.resolveTypeArgs(e, call.TypeArgs)
	args := c.argTypes(e, call.Args)
	op := types.OpCall
	if call.HasTypeArgs() {
		op = types.OpCallWithTypeArgs
	}
	return c.invoke(fn, op, call, args)
}

func (c *fileChecker) newType(e env, n *ast.New) types.Type {
	c.resolveTypeArgs(e, n.TypeArgs)
	if ident, ok := n.Ctor.(*ast.Ident); ok {
		if b, ok := e.values.Get(ident.Name); ok && b.class != nil {
			c.argTypes(e, n.Args)
			return b.class
		}
	}
	ctor := c.exprType(e, n.Ctor)
	args := c.argTypes(e, n.Args)
	op := types.OpConstruct
	if n.HasTypeArgs() {
		op = types.OpConstructWithTypeArgs
	}
	return c.invoke(ctor, op, n, args)
}

// invoke is the result of calling, constructing, or tagging a template
// with fn. Arguments are checked against the parameters of function types.
func (c *fileChecker) invoke(fn types.Type, op types.OperatorKind, at ast.Node, args []types.Type) types.Type {
	if !c.checkOperator(fn, op, at) {
		return types.Any
	}
	if isUntyped(fn) {
		return c.resolver.OperatorResult(op, "()", fn)
	}
	sig, ok := fn.(types.FuncType)
	if !ok {
		return types.Any
	}
	for i, arg := range args {
		if i >= len(sig.Params) {
			break
		}
		c.report(c.resolver.CheckAssignable(arg, sig.Params[i].Type, at))
	}
	return sig.Ret
}

func (c *fileChecker) unaryType(e env, u *ast.Unary) types.Type {
	switch u.Op {
	case "!":
		c.exprType(e, u.X)
		return types.Boolean
	case "++", "--":
		return c.incrementType(e, u.X, u)
	case "~":
		t := c.exprType(e, u.X)
		c.checkOperator(t, types.OpBitwise, u)
		return c.resolver.OperatorResult(types.OpBitwise, u.Op, t)
	}
	t := c.exprType(e, u.X)
	c.checkOperator(t, types.OpUnaryPlusMinus, u)
	return c.resolver.OperatorResult(types.OpUnaryPlusMinus, u.Op, t)
}

// incrementType is `++x`, `x++`, `--x` or `x--`, which read and then assign x
func (c *fileChecker) incrementType(e env, target ast.Expr, at ast.Node) types.Type {
	t := c.exprType(e, target)
	c.checkOperator(t, types.OpIncrementDecrement, at)
	c.markIdentAssigned(e, target)
	return c.resolver.OperatorResult(types.OpIncrementDecrement, "++", t)
}

// operatorKinds groups the binary operators by the operation they apply to their operands
var operatorKinds = map[string]types.OperatorKind{
	"==":  types.OpEquality,
	"!=":  types.OpEquality,
	"===": types.OpEquality,
	"!==": types.OpEquality,
	"<":   types.OpRelational,
	">":   types.OpRelational,
	"<=":  types.OpRelational,
	">=":  types.OpRelational,
	"+":   types.OpArithmetic,
	"-":   types.OpArithmetic,
	"*":   types.OpArithmetic,
	"/":   types.OpArithmetic,
	"%":   types.OpArithmetic,
	"**":  types.OpArithmetic,
	"&":   types.OpBitwise,
	"|":   types.OpBitwise,
	"^":   types.OpBitwise,
	"<<":  types.OpBitwise,
	">>":  types.OpBitwise,
	">>>": types.OpBitwise,
}

func (c *fileChecker) binaryType(e env, b *ast.Binary) types.Type {
	x := c.exprType(e, b.X)
	y := c.exprType(e, b.Y)
	return c.applyBinary(b.Op, x, y, b.X, b.Y)
}

// applyBinary is the type of `lhs op rhs` where x and y are the types of lhs and rhs
func (c *fileChecker) applyBinary(op string, x, y types.Type, lhs, rhs ast.Expr) types.Type {
	switch op {
	case "&&", "||":
		return c.resolver.Union(widen(x), widen(y))
	case "instanceof":
		return types.Boolean
	}
	kind, ok := operatorKinds[op]
	if !ok {
		return types.Any
	}
	// a failing left operand is enough to report the expression
	if c.checkOperator(x, kind, lhs) {
		c.checkOperator(y, kind, rhs)
	}
	return c.resolver.OperatorResult(kind, op, x, y)
}

// assignType checks `target = value`, and compound assignments like
// `target += value`, which read target before assigning it
func (c *fileChecker) assignType(e env, a *ast.Assign) types.Type {
	if a.Op == "=" {
		value := c.exprType(e, a.Value)
		if target := c.assignTo(e, a.Target); target != nil {
			c.report(c.resolver.CheckAssignable(value, target, a))
		}
		return value
	}
	target := c.exprType(e, a.Target)
	value := c.exprType(e, a.Value)
	result := c.applyBinary(strings.TrimSuffix(a.Op, "="), target, value, a.Target, a.Value)
	c.markIdentAssigned(e, a.Target)
	if b, ok := identBinding(e, a.Target); ok {
		target = b.declared
	}
	c.report(c.resolver.CheckAssignable(result, target, a))
	return result
}

// identBinding is the binding target names, if target is a possibly
// parenthesised identifier
func identBinding(e env, target ast.Expr) (*binding, bool) {
	for {
		paren, ok := target.(*ast.Paren)
		if !ok {
			break
		}
		target = paren.X
	}
	ident, ok := target.(*ast.Ident)
	if !ok {
		return nil, false
	}
	return e.values.Get(ident.Name)
}

func (c *fileChecker) markIdentAssigned(e env, target ast.Expr) {
	if b, ok := identBinding(e, target); ok {
		c.markAssigned(b)
	}
}

// assignTo marks target as assigned and returns the type it accepts,
// or nil when there is nothing to check against. Variables accept their
// declared type even where a guard narrowed them.
func (c *fileChecker) assignTo(e env, target ast.Expr) types.Type {
	switch t := target.(type) {
	case *ast.Ident:
		b, ok := c.lookup(e, t)
		if !ok {
			return nil
		}
		c.markAssigned(b)
		return b.declared
	case *ast.Paren:
		return c.assignTo(e, t.X)
	case *ast.Member:
		return c.memberType(e, t)
	case *ast.Index:
		return c.indexType(e, t)
	}
	return nil
}
