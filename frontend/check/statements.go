package check

import (
	"github.com/cottand/inferred/frontend/ast"
	"github.com/cottand/inferred/frontend/types"
)

// checkStmts checks stmts in order, returning e extended with their declarations
func (c *fileChecker) checkStmts(e env, stmts []ast.Stmt) env {
	for _, stmt := range stmts {
		e = c.checkStmt(e, stmt)
	}
	return e
}

func (c *fileChecker) checkStmt(e env, stmt ast.Stmt) env {
	switch s := stmt.(type) {
	case *ast.TypeAlias:
		t := c.resolveType(e, s.Type)
		c.record(s.Name, t)
		return e.withType(s.Name, t)
	case *ast.VarDecl:
		return c.checkVarDecl(e, s)
	case *ast.FuncDecl:
		return c.checkFuncDecl(e, s)
	case *ast.ClassDecl:
		class := &types.ClassType{Name: s.Name, Parent: types.ObjectClass}
		// declared before resolving fields so that fields may refer to the class
		e = c.declareClass(e, class)
		for _, f := range s.Fields {
			class.Fields = append(class.Fields, types.Field{Name: f.Name, Type: c.resolveType(e, f.Type)})
		}
		return e
	case *ast.If:
		c.checkIf(e, s)
	case *ast.Return:
		c.checkReturn(e, s)
	case *ast.ExprStmt:
		c.record(ast.ExprString(s.X), c.exprType(e, s.X))
	case *ast.Block:
		c.checkStmts(e, s.Stmts)
	}
	return e
}

// checkVarDecl declares the variable.
//
// Without an initializer, `let` and `const` start unassigned, and so does
// `var` inside functions. Top-level `var` and `declare var` are assigned.
func (c *fileChecker) checkVarDecl(e env, decl *ast.VarDecl) env {
	var declared, initType types.Type
	if decl.Type != nil {
		declared = c.resolveType(e, decl.Type)
	}
	if decl.Init != nil {
		initType = c.exprType(e, decl.Init)
	}

	switch {
	case declared != nil && initType != nil:
		c.report(c.resolver.CheckAssignable(initType, declared, decl.Init))
	case declared == nil && initType != nil && decl.Kind == ast.DeclConst:
		declared = initType
	case declared == nil && initType != nil:
		declared = widen(initType)
	case declared == nil:
		declared = types.Any
	}

	b := c.newBinding(decl.Name, declared)
	if decl.Init != nil || decl.Declare || (decl.Kind == ast.DeclVar && c.fn == nil) {
		c.markAssigned(b)
	}
	c.record(decl.Name, declared)
	return e.withValue(b)
}

func (c *fileChecker) checkFuncDecl(e env, decl *ast.FuncDecl) env {
	params := c.resolveParams(e, decl.Params)
	var ret types.Type = types.Any
	if decl.Ret != nil {
		ret = c.resolveType(e, decl.Ret)
	}
	fnType := types.FuncType{Params: params, Ret: ret}
	self := c.newBinding(decl.Name, fnType)
	c.markAssigned(self)
	e = e.withValue(self)
	c.record(decl.Name, fnType)

	enclosing := c.fn
	c.fn = &function{parent: enclosing}
	if decl.Ret != nil {
		c.fn.ret = ret
	}
	assignedBefore := c.assigned
	body := e
	for _, p := range params {
		b := c.newBinding(p.Name, p.Type)
		c.markAssigned(b)
		body = body.withValue(b)
	}
	c.checkStmts(body, decl.Body.Stmts)
	c.fn = enclosing
	c.assigned = assignedBefore
	return e
}

// checkIf narrows `x instanceof C` in the then branch. A variable is
// assigned after the if only when both branches assign it.
func (c *fileChecker) checkIf(e env, s *ast.If) {
	c.exprType(e, s.Cond)
	before := c.assigned

	c.checkStmts(c.narrowed(e, s.Cond), s.Then.Stmts)
	afterThen := c.assigned

	c.assigned = before
	if s.Else != nil {
		c.checkStmts(e, s.Else.Stmts)
	}
	c.assigned = intersectAssigned(afterThen, c.assigned)
}

// narrowed refines the bindings that cond guards, when cond is true
func (c *fileChecker) narrowed(e env, cond ast.Expr) env {
	for {
		paren, ok := cond.(*ast.Paren)
		if !ok {
			break
		}
		cond = paren.X
	}
	bin, ok := cond.(*ast.Binary)
	if !ok || bin.Op != "instanceof" {
		return e
	}
	subject, ok := bin.X.(*ast.Ident)
	if !ok {
		return e
	}
	ctorIdent, ok := bin.Y.(*ast.Ident)
	if !ok {
		return e
	}
	b, ok := e.values.Get(subject.Name)
	if !ok {
		return e
	}
	ctor, ok := e.values.Get(ctorIdent.Name)
	if !ok || ctor.class == nil {
		return e
	}
	narrowedType := c.resolver.Narrow(b.t, types.InstanceOfGuard{Constructor: ctor.class})
	logger.Debug("narrowed by instanceof", "guard", cond, "from", b.t, "to", narrowedType)

	refined := *b
	refined.t = narrowedType
	return e.withValue(&refined)
}

func (c *fileChecker) checkReturn(e env, s *ast.Return) {
	if s.Value == nil {
		return
	}
	t := c.exprType(e, s.Value)
	if c.fn != nil && c.fn.ret != nil {
		c.report(c.resolver.CheckAssignable(t, c.fn.ret, s.Value))
	}
}
