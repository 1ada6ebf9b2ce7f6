package parser

import (
	"github.com/cottand/inferred/frontend/ast"
)

// parseStmtList parses statements up to the end of the file or,
// inBlock, up to the closing brace, which is left unconsumed
func (p *parser) parseStmtList(inBlock bool) []ast.Stmt {
	var stmts []ast.Stmt
	for !p.at(EOF) && !(inBlock && p.is("}")) {
		if stmt := p.parseStmtRecovering(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

func (p *parser) parseStmtRecovering() (stmt ast.Stmt) {
	start := p.cur
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			p.sync(start)
			stmt = nil
		}
	}()
	return p.parseStmt()
}

// sync skips to the end of the current statement, always making progress
func (p *parser) sync(start int) {
	if p.cur == start {
		p.advance()
	}
	for !p.at(EOF) && !p.is(";") && !p.is("}") {
		p.advance()
	}
	p.accept(";")
}

func (p *parser) parseStmt() ast.Stmt {
	tok := p.peek()
	switch {
	case p.is(";"):
		p.advance()
		return nil
	case p.is("{"):
		return p.parseBlock()
	case p.is("let"), p.is("const"), p.is("var"):
		return p.parseVarDecl(false)
	case p.is("declare"):
		p.advance()
		if !p.is("let") && !p.is("const") && !p.is("var") {
			p.errorf(p.peek(), "expected variable declaration after 'declare', found %v", p.peek())
		}
		decl := p.parseVarDecl(true)
		decl.Range = p.rangeFrom(tok)
		return decl
	case p.is("type") && p.peekAt(1).Type == IDENT && isLexeme(p.peekAt(2), "="):
		return p.parseTypeAlias()
	case p.is("function"):
		return p.parseFuncDecl()
	case p.is("class"):
		return p.parseClassDecl()
	case p.is("if"):
		return p.parseIf()
	case p.is("return"):
		p.advance()
		ret := &ast.Return{}
		if !p.is(";") && !p.is("}") && !p.at(EOF) {
			ret.Value = p.parseExpr()
		}
		p.accept(";")
		ret.Range = p.rangeFrom(tok)
		return ret
	}
	x := p.parseExpr()
	p.accept(";")
	return &ast.ExprStmt{Range: p.rangeFrom(tok), X: x}
}

func (p *parser) parseBlock() *ast.Block {
	open := p.expect("{")
	stmts := p.parseStmtList(true)
	p.expect("}")
	return &ast.Block{Range: p.rangeFrom(open), Stmts: stmts}
}

// parseBody parses a block, or wraps a single statement in one
func (p *parser) parseBody() *ast.Block {
	if p.is("{") {
		return p.parseBlock()
	}
	start := p.peek()
	stmt := p.parseStmt()
	block := &ast.Block{Range: p.rangeFrom(start)}
	if stmt != nil {
		block.Stmts = []ast.Stmt{stmt}
	}
	return block
}

func (p *parser) parseVarDecl(declare bool) *ast.VarDecl {
	kw := p.advance()
	name := p.expectIdent()
	decl := &ast.VarDecl{
		Kind:    ast.DeclKind(kw.Lexeme),
		Declare: declare,
		Name:    name.Lexeme,
	}
	if p.accept(":") {
		decl.Type = p.parseType()
	}
	if p.is("=") {
		eq := p.advance()
		if declare {
			p.errorf(eq, "initializers are not allowed in ambient declarations")
		}
		decl.Init = p.parseExpr()
	}
	p.accept(";")
	decl.Range = p.rangeFrom(kw)
	return decl
}

func (p *parser) parseTypeAlias() *ast.TypeAlias {
	kw := p.advance()
	name := p.expectIdent()
	p.expect("=")
	t := p.parseType()
	p.accept(";")
	return &ast.TypeAlias{Range: p.rangeFrom(kw), Name: name.Lexeme, Type: t}
}

func (p *parser) parseFuncDecl() *ast.FuncDecl {
	kw := p.advance()
	name := p.expectIdent()
	params := p.parseParams()
	decl := &ast.FuncDecl{Name: name.Lexeme, Params: params}
	if p.accept(":") {
		decl.Ret = p.parseType()
	}
	decl.Body = p.parseBlock()
	decl.Range = p.rangeFrom(kw)
	return decl
}

// parseParams parses `(a: T, b)`
func (p *parser) parseParams() []ast.Param {
	p.expect("(")
	var params []ast.Param
	for !p.is(")") {
		name := p.expectIdent()
		param := ast.Param{Name: name.Lexeme}
		p.accept("?")
		if p.accept(":") {
			param.Type = p.parseType()
		}
		param.Range = p.rangeFrom(name)
		params = append(params, param)
		if !p.accept(",") {
			break
		}
	}
	p.expect(")")
	return params
}

func (p *parser) parseClassDecl() *ast.ClassDecl {
	kw := p.advance()
	name := p.expectIdent()
	p.expect("{")
	decl := &ast.ClassDecl{Name: name.Lexeme}
	for !p.is("}") {
		fieldName := p.expectIdent()
		field := ast.Field{Name: fieldName.Lexeme}
		p.accept("?")
		p.expect(":")
		field.Type = p.parseType()
		field.Range = p.rangeFrom(fieldName)
		decl.Fields = append(decl.Fields, field)
		if !p.accept(";") && !p.accept(",") {
			break
		}
	}
	p.expect("}")
	decl.Range = p.rangeFrom(kw)
	return decl
}

func (p *parser) parseIf() *ast.If {
	kw := p.advance()
	p.expect("(")
	cond := p.parseExpr()
	p.expect(")")
	stmt := &ast.If{Cond: cond, Then: p.parseBody()}
	if p.accept("else") {
		stmt.Else = p.parseBody()
	}
	stmt.Range = p.rangeFrom(kw)
	return stmt
}
