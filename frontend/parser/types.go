package parser

import (
	"github.com/cottand/inferred/frontend/ast"
)

// parseType parses a type, where `&` binds tighter than `|`
func (p *parser) parseType() ast.TypeExpr {
	start := p.peek()
	p.accept("|")
	first := p.parseIntersectionType()
	if !p.is("|") {
		return first
	}
	members := []ast.TypeExpr{first}
	for p.accept("|") {
		members = append(members, p.parseIntersectionType())
	}
	return &ast.UnionTypeExpr{Range: p.rangeFrom(start), Members: members}
}

func (p *parser) parseIntersectionType() ast.TypeExpr {
	start := p.peek()
	p.accept("&")
	first := p.parseArrayType()
	if !p.is("&") {
		return first
	}
	members := []ast.TypeExpr{first}
	for p.accept("&") {
		members = append(members, p.parseArrayType())
	}
	return &ast.IntersectionTypeExpr{Range: p.rangeFrom(start), Members: members}
}

func (p *parser) parseArrayType() ast.TypeExpr {
	start := p.peek()
	t := p.parsePrimaryType()
	for p.is("[") && isLexeme(p.peekAt(1), "]") {
		p.advance()
		p.advance()
		t = &ast.ArrayTypeExpr{Range: p.rangeFrom(start), Elem: t}
	}
	return t
}

func (p *parser) parsePrimaryType() ast.TypeExpr {
	tok := p.peek()
	switch {
	case tok.Type == IDENT:
		p.advance()
		return &ast.TypeName{Range: tok.Range, Name: tok.Lexeme}
	case p.is("{"):
		return p.parseObjectType()
	case p.is("(") && p.startsFuncType():
		return p.parseFuncType()
	case p.is("("):
		p.advance()
		t := p.parseType()
		p.expect(")")
		return t
	}
	p.errorf(tok, "expected type, found %v", tok)
	return nil
}

// startsFuncType looks past the current '(' to tell a function type
// like `(a: T) => R` from a parenthesised type like `(A | B)`
func (p *parser) startsFuncType() bool {
	next := p.peekAt(1)
	if isLexeme(next, ")") {
		return true
	}
	if next.Type != IDENT {
		return false
	}
	after := p.peekAt(2)
	if isLexeme(after, ":") || isLexeme(after, ",") || isLexeme(after, "?") {
		return true
	}
	return isLexeme(after, ")") && isLexeme(p.peekAt(3), "=>")
}

func (p *parser) parseFuncType() ast.TypeExpr {
	start := p.peek()
	params := p.parseParams()
	p.expect("=>")
	ret := p.parseType()
	return &ast.FuncTypeExpr{Range: p.rangeFrom(start), Params: params, Ret: ret}
}

func (p *parser) parseObjectType() ast.TypeExpr {
	open := p.expect("{")
	var fields []ast.Field
	for !p.is("}") {
		name := p.advance()
		if name.Type != IDENT && name.Type != STRING {
			p.errorf(name, "expected property name, found %v", name)
		}
		field := ast.Field{Name: name.Lexeme}
		if name.Type == STRING {
			field.Name = name.Value
		}
		p.accept("?")
		p.expect(":")
		field.Type = p.parseType()
		field.Range = p.rangeFrom(name)
		fields = append(fields, field)
		if !p.accept(";") && !p.accept(",") {
			break
		}
	}
	p.expect("}")
	return &ast.ObjectTypeExpr{Range: p.rangeFrom(open), Fields: fields}
}

// parseTypeArgs parses `<A, B>`. The result is never nil, so that
// `f<>()` is told apart from `f()`.
func (p *parser) parseTypeArgs() []ast.TypeExpr {
	p.expect("<")
	args := make([]ast.TypeExpr, 0, 1)
	for !p.is(">") {
		args = append(args, p.parseType())
		if !p.accept(",") {
			break
		}
	}
	p.expect(">")
	return args
}
