package parser

import (
	"fmt"
	"github.com/cottand/inferred/frontend/ast"
	"github.com/cottand/inferred/frontend/ilerr"
	"github.com/cottand/inferred/internal/log"
	"go/token"
)

var logger = ast.ExprLogger(log.DefaultLogger).With("section", "parser")

// Parse parses src into a File.
// Syntax errors are collected, and parsing resumes from the next statement,
// so the returned File is never nil.
func Parse(name, src string) (*ast.File, *ilerr.Errors) {
	tokFile := newTokFile(name, src)
	toks, errs := lex(src, tokFile)
	p := &parser{toks: toks, errs: errs}

	stmts := p.parseStmtList(false)
	file := &ast.File{
		Range: ast.Range{
			PosStart: token.Pos(tokFile.Base()),
			PosEnd:   token.Pos(tokFile.Base() + len(src)),
		},
		Name:    name,
		Stmts:   stmts,
		TokFile: tokFile,
		Source:  src,
	}
	logger.Debug("parsed file", "name", name, "statements", len(stmts), "errors", p.errs)
	return file, p.errs
}

// ParseExpr parses a single expression
func ParseExpr(src string) (expr ast.Expr, errs *ilerr.Errors) {
	toks, errs := lex(src, newTokFile("", src))
	p := &parser{toks: toks, errs: errs}
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			expr, errs = nil, p.errs
		}
	}()
	expr = p.parseExpr()
	if !p.at(EOF) {
		p.errorf(p.peek(), "unexpected %v after expression", p.peek())
	}
	logger.Debug("parsed expression", "expr", expr)
	return expr, p.errs
}

func newTokFile(name, src string) *token.File {
	fset := token.NewFileSet()
	tokFile := fset.AddFile(name, -1, len(src))
	tokFile.SetLinesForContent([]byte(src))
	return tokFile
}

// bailout is raised with panic on a syntax error, and recovered at the
// statement level, like go/parser does
type bailout struct{}

type parser struct {
	toks []Token
	cur  int
	errs *ilerr.Errors

	// speculating is non-zero while trying out an ambiguous production,
	// when errors must not be reported
	speculating int
}

func (p *parser) peek() Token {
	return p.toks[p.cur]
}

func (p *parser) peekAt(n int) Token {
	if p.cur+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.cur+n]
}

func (p *parser) advance() Token {
	tok := p.toks[p.cur]
	if tok.Type != EOF {
		p.cur++
	}
	return tok
}

func (p *parser) at(t TokenType) bool {
	return p.peek().Type == t
}

// is reports whether the current token is the punctuation or keyword lexeme
func (p *parser) is(lexeme string) bool {
	return isLexeme(p.peek(), lexeme)
}

func isLexeme(tok Token, lexeme string) bool {
	return (tok.Type == PUNCT || tok.Type == IDENT) && tok.Lexeme == lexeme
}

func (p *parser) accept(lexeme string) bool {
	if p.is(lexeme) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expect(lexeme string) Token {
	if !p.is(lexeme) {
		p.errorf(p.peek(), "expected '%s', found %v", lexeme, p.peek())
	}
	return p.advance()
}

func (p *parser) expectIdent() Token {
	if !p.at(IDENT) || keywords[p.peek().Lexeme] {
		p.errorf(p.peek(), "expected identifier, found %v", p.peek())
	}
	return p.advance()
}

func (p *parser) errorf(at ast.Positioner, format string, args ...any) {
	if p.speculating == 0 {
		p.errs = p.errs.With(ilerr.New(ilerr.NewSyntax{
			Positioner:    ast.RangeOf(at),
			ParserMessage: fmt.Sprintf(format, args...),
		}))
	}
	panic(bailout{})
}

// try runs production and reports whether it succeeded.
// On failure, the parser is rewound to where it was before.
func (p *parser) try(production func()) (ok bool) {
	start := p.cur
	p.speculating++
	defer func() {
		p.speculating--
		if r := recover(); r != nil {
			if _, isBailout := r.(bailout); !isBailout {
				panic(r)
			}
			p.cur = start
			ok = false
		}
	}()
	production()
	return true
}

// prevEnd is the end of the last consumed token
func (p *parser) prevEnd() token.Pos {
	if p.cur == 0 {
		return p.toks[0].Pos()
	}
	return p.toks[p.cur-1].End()
}

func (p *parser) rangeFrom(start ast.Positioner) ast.Range {
	return ast.Range{PosStart: start.Pos(), PosEnd: p.prevEnd()}
}

var keywords = map[string]bool{
	"let":        true,
	"const":      true,
	"var":        true,
	"declare":    true,
	"function":   true,
	"class":      true,
	"if":         true,
	"else":       true,
	"return":     true,
	"new":        true,
	"true":       true,
	"false":      true,
	"null":       true,
	"instanceof": true,
}
