package parser

import (
	"github.com/cottand/inferred/frontend/ast"
)

// binaryPrecedence maps binary operators to their binding power.
// Higher binds tighter.
var binaryPrecedence = map[string]int{
	"||":         4,
	"&&":         5,
	"|":          6,
	"^":          7,
	"&":          8,
	"==":         9,
	"!=":         9,
	"===":        9,
	"!==":        9,
	"<":          10,
	">":          10,
	"<=":         10,
	">=":         10,
	"instanceof": 10,
	"<<":         11,
	">>":         11,
	">>>":        11,
	"+":          12,
	"-":          12,
	"*":          13,
	"/":          13,
	"%":          13,
	"**":         14,
}

var assignmentOperators = map[string]bool{
	"=":    true,
	"+=":   true,
	"-=":   true,
	"*=":   true,
	"/=":   true,
	"%=":   true,
	"**=":  true,
	"<<=":  true,
	">>=":  true,
	">>>=": true,
	"&=":   true,
	"|=":   true,
	"^=":   true,
}

var prefixOperators = map[string]bool{
	"+":  true,
	"-":  true,
	"!":  true,
	"~":  true,
	"++": true,
	"--": true,
}

func (p *parser) parseExpr() ast.Expr {
	return p.parseAssign()
}

// parseAssign is right-associative: `a = b = c` is `a = (b = c)`
func (p *parser) parseAssign() ast.Expr {
	target := p.parseBinary(1)
	tok := p.peek()
	if tok.Type != PUNCT || !assignmentOperators[tok.Lexeme] {
		return target
	}
	p.advance()
	value := p.parseAssign()
	return &ast.Assign{
		Range:  ast.RangeBetween(target, value),
		Op:     tok.Lexeme,
		Target: target,
		Value:  value,
	}
}

func precedenceOf(tok Token) (int, bool) {
	if tok.Type != PUNCT && !(tok.Type == IDENT && tok.Lexeme == "instanceof") {
		return 0, false
	}
	prec, ok := binaryPrecedence[tok.Lexeme]
	return prec, ok
}

func (p *parser) parseBinary(minPrec int) ast.Expr {
	x := p.parseUnary()
	for {
		op := p.peek()
		prec, ok := precedenceOf(op)
		if !ok || prec < minPrec {
			return x
		}
		p.advance()
		next := prec + 1
		if op.Lexeme == "**" {
			next = prec
		}
		y := p.parseBinary(next)
		x = &ast.Binary{Range: ast.RangeBetween(x, y), Op: op.Lexeme, X: x, Y: y}
	}
}

func (p *parser) parseUnary() ast.Expr {
	tok := p.peek()
	if tok.Type == PUNCT && prefixOperators[tok.Lexeme] {
		p.advance()
		x := p.parseUnary()
		return &ast.Unary{Range: ast.RangeBetween(tok, x), Op: tok.Lexeme, X: x}
	}
	x := p.parseCallOrMember(p.parsePrimary())
	if op := p.peek(); op.Type == PUNCT && (op.Lexeme == "++" || op.Lexeme == "--") {
		p.advance()
		return &ast.Postfix{Range: ast.RangeBetween(x, op), Op: op.Lexeme, X: x}
	}
	return x
}

func (p *parser) parsePrimary() ast.Expr {
	tok := p.peek()
	switch tok.Type {
	case NUMBER:
		p.advance()
		return &ast.NumberLit{Range: tok.Range, Text: tok.Lexeme}
	case STRING, TEMPLATE:
		p.advance()
		return &ast.StringLit{Range: tok.Range, Value: tok.Value}
	case IDENT:
		switch tok.Lexeme {
		case "true", "false":
			p.advance()
			return &ast.BoolLit{Range: tok.Range, Value: tok.Lexeme == "true"}
		case "null":
			p.advance()
			return &ast.NullLit{Range: tok.Range}
		case "new":
			return p.parseNew()
		}
		if keywords[tok.Lexeme] {
			break
		}
		p.advance()
		return &ast.Ident{Range: tok.Range, Name: tok.Lexeme}
	case PUNCT:
		switch tok.Lexeme {
		case "(":
			p.advance()
			x := p.parseExpr()
			p.expect(")")
			return &ast.Paren{Range: p.rangeFrom(tok), X: x}
		case "[":
			return p.parseArrayLit()
		case "{":
			return p.parseObjectLit()
		}
	}
	p.errorf(tok, "expected expression, found %v", tok)
	return nil
}

// parseCallOrMember parses the call-level suffixes following x
func (p *parser) parseCallOrMember(x ast.Expr) ast.Expr {
	for {
		tok := p.peek()
		switch {
		case p.is("."):
			p.advance()
			name := p.advance()
			if name.Type != IDENT {
				p.errorf(name, "expected property name, found %v", name)
			}
			x = &ast.Member{Range: ast.RangeBetween(x, name), X: x, Name: name.Lexeme}
		case p.is("["):
			p.advance()
			index := p.parseExpr()
			p.expect("]")
			x = &ast.Index{Range: ast.Range{PosStart: x.Pos(), PosEnd: p.prevEnd()}, X: x, Index: index}
		case p.is("("):
			args := p.parseArgs()
			x = &ast.Call{Range: ast.Range{PosStart: x.Pos(), PosEnd: p.prevEnd()}, Fn: x, Args: args}
		case p.is("<"):
			var typeArgs []ast.TypeExpr
			// `a < b` is a comparison unless it parses as type arguments of a call
			isCall := p.try(func() {
				typeArgs = p.parseTypeArgs()
				if !p.is("(") {
					p.errorf(p.peek(), "expected call after type arguments")
				}
			})
			if !isCall {
				return x
			}
			args := p.parseArgs()
			x = &ast.Call{Range: ast.Range{PosStart: x.Pos(), PosEnd: p.prevEnd()}, Fn: x, TypeArgs: typeArgs, Args: args}
		case tok.Type == TEMPLATE:
			p.advance()
			x = &ast.TaggedTemplate{Range: ast.RangeBetween(x, tok), Tag: x, Text: tok.Value}
		default:
			return x
		}
	}
}

// parseNew parses `new Ctor<TypeArgs>(Args)`, where both
// type arguments and arguments are optional
func (p *parser) parseNew() ast.Expr {
	kw := p.expect("new")
	var ctor ast.Expr
	if p.is("new") {
		ctor = p.parseNew()
	} else {
		ctor = p.parsePrimary()
	}
	for p.is(".") || p.is("[") {
		if p.accept(".") {
			name := p.expectIdent()
			ctor = &ast.Member{Range: ast.RangeBetween(ctor, name), X: ctor, Name: name.Lexeme}
			continue
		}
		p.advance()
		index := p.parseExpr()
		p.expect("]")
		ctor = &ast.Index{Range: ast.Range{PosStart: ctor.Pos(), PosEnd: p.prevEnd()}, X: ctor, Index: index}
	}
	expr := &ast.New{Ctor: ctor}
	if p.is("<") {
		expr.TypeArgs = p.parseTypeArgs()
	}
	if p.is("(") {
		expr.Args = p.parseArgs()
	}
	expr.Range = p.rangeFrom(kw)
	return expr
}

func (p *parser) parseArgs() []ast.Expr {
	p.expect("(")
	var args []ast.Expr
	for !p.is(")") {
		args = append(args, p.parseExpr())
		if !p.accept(",") {
			break
		}
	}
	p.expect(")")
	return args
}

func (p *parser) parseArrayLit() ast.Expr {
	open := p.expect("[")
	var elems []ast.Expr
	for !p.is("]") {
		elems = append(elems, p.parseExpr())
		if !p.accept(",") {
			break
		}
	}
	p.expect("]")
	return &ast.ArrayLit{Range: p.rangeFrom(open), Elems: elems}
}

// parseObjectLit parses `{ a: e, "b": e, c }`
func (p *parser) parseObjectLit() ast.Expr {
	open := p.expect("{")
	var fields []ast.Field
	for !p.is("}") {
		name := p.advance()
		field := ast.Field{Name: name.Lexeme}
		switch name.Type {
		case IDENT:
		case STRING:
			field.Name = name.Value
		default:
			p.errorf(name, "expected property name, found %v", name)
		}
		if p.accept(":") {
			field.Value = p.parseExpr()
		} else if name.Type == IDENT {
			field.Value = &ast.Ident{Range: name.Range, Name: name.Lexeme}
		} else {
			p.errorf(p.peek(), "expected ':', found %v", p.peek())
		}
		field.Range = p.rangeFrom(name)
		fields = append(fields, field)
		if !p.accept(",") {
			break
		}
	}
	p.expect("}")
	return &ast.ObjectLit{Range: p.rangeFrom(open), Fields: fields}
}
