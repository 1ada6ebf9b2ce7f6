package parser

import (
	"fmt"
	"github.com/cottand/inferred/frontend/ast"
	"github.com/cottand/inferred/frontend/ilerr"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

type TokenType int

const (
	EOF TokenType = iota
	IDENT
	NUMBER
	STRING
	TEMPLATE
	// PUNCT covers every operator and delimiter; Token.Lexeme tells them apart
	PUNCT
)

func (t TokenType) String() string {
	switch t {
	case EOF:
		return "end of file"
	case IDENT:
		return "identifier"
	case NUMBER:
		return "number"
	case STRING:
		return "string"
	case TEMPLATE:
		return "template"
	case PUNCT:
		return "punctuation"
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

type Token struct {
	Type   TokenType
	Lexeme string
	// Value is the unescaped content of STRING and TEMPLATE tokens
	Value string
	ast.Range
}

func (t Token) String() string {
	if t.Type == EOF {
		return t.Type.String()
	}
	return fmt.Sprintf("'%s'", t.Lexeme)
}

// puncts is ordered so that longer operators are matched first
var puncts = []string{
	">>>=",
	"===", "!==", "**=", "<<=", ">>=", ">>>",
	"=>", "==", "!=", "<=", ">=", "&&", "||", "++", "--", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "**", "<<", ">>",
	"(", ")", "{", "}", "[", "]", ";", ":", ",", ".", "<", ">", "+", "-", "*", "/", "%", "=", "!", "&", "|", "^", "?", "~",
}

type lexer struct {
	src    string
	file   *token.File
	offset int
	toks   []Token
	errs   *ilerr.Errors
}

// lex splits src into tokens. The returned slice always ends with an EOF token.
func lex(src string, file *token.File) ([]Token, *ilerr.Errors) {
	l := &lexer{src: src, file: file}
	for {
		l.skipSpaceAndComments()
		if l.offset >= len(l.src) {
			break
		}
		l.next()
	}
	end := l.pos(len(l.src))
	l.toks = append(l.toks, Token{Type: EOF, Range: ast.Range{PosStart: end, PosEnd: end}})
	return l.toks, l.errs
}

func (l *lexer) pos(offset int) token.Pos {
	return token.Pos(l.file.Base() + offset)
}

func (l *lexer) rangeFrom(start int) ast.Range {
	return ast.Range{PosStart: l.pos(start), PosEnd: l.pos(l.offset)}
}

func (l *lexer) errorf(start int, format string, args ...any) {
	l.errs = l.errs.With(ilerr.New(ilerr.NewSyntax{
		Positioner:    l.rangeFrom(start),
		ParserMessage: fmt.Sprintf(format, args...),
	}))
}

func (l *lexer) peekRune() (rune, int) {
	return utf8.DecodeRuneInString(l.src[l.offset:])
}

func (l *lexer) skipSpaceAndComments() {
	for l.offset < len(l.src) {
		rest := l.src[l.offset:]
		switch {
		case strings.HasPrefix(rest, "//"):
			end := strings.IndexByte(rest, '\n')
			if end < 0 {
				end = len(rest)
			}
			l.offset += end
		case strings.HasPrefix(rest, "/*"):
			start := l.offset
			end := strings.Index(rest[2:], "*/")
			if end < 0 {
				l.offset = len(l.src)
				l.errorf(start, "unterminated block comment")
				return
			}
			l.offset += end + 4
		default:
			r, size := l.peekRune()
			if !unicode.IsSpace(r) {
				return
			}
			l.offset += size
		}
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func (l *lexer) next() {
	start := l.offset
	r, _ := l.peekRune()
	switch {
	case isIdentStart(r):
		l.lexIdent()
	case unicode.IsDigit(r) || r == '.' && l.offset+1 < len(l.src) && isDigit(l.src[l.offset+1]):
		l.lexNumber()
	case r == '"' || r == '\'':
		l.lexString(byte(r))
	case r == '`':
		l.lexTemplate()
	default:
		for _, p := range puncts {
			if strings.HasPrefix(l.src[l.offset:], p) {
				l.offset += len(p)
				l.toks = append(l.toks, Token{Type: PUNCT, Lexeme: p, Range: l.rangeFrom(start)})
				return
			}
		}
		_, size := l.peekRune()
		l.offset += size
		l.errorf(start, "unexpected character %q", r)
	}
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

func (l *lexer) lexIdent() {
	start := l.offset
	for l.offset < len(l.src) {
		r, size := l.peekRune()
		if !isIdentPart(r) {
			break
		}
		l.offset += size
	}
	l.toks = append(l.toks, Token{Type: IDENT, Lexeme: l.src[start:l.offset], Range: l.rangeFrom(start)})
}

func (l *lexer) lexNumber() {
	start := l.offset
	seenDot, seenExp := false, false
	for l.offset < len(l.src) {
		c := l.src[l.offset]
		switch {
		case isDigit(c) || c == '_':
		case c == '.' && !seenDot && !seenExp:
			seenDot = true
		case (c == 'e' || c == 'E') && !seenExp:
			seenExp = true
			if l.offset+1 < len(l.src) && (l.src[l.offset+1] == '+' || l.src[l.offset+1] == '-') {
				l.offset++
			}
		default:
			l.toks = append(l.toks, Token{Type: NUMBER, Lexeme: l.src[start:l.offset], Range: l.rangeFrom(start)})
			return
		}
		l.offset++
	}
	l.toks = append(l.toks, Token{Type: NUMBER, Lexeme: l.src[start:l.offset], Range: l.rangeFrom(start)})
}

var escapes = map[byte]byte{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'0':  0,
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'`':  '`',
}

// lexQuoted reads up to the closing quote, unescaping as it goes.
// It reports whether the closing quote was found.
func (l *lexer) lexQuoted(quote byte, allowNewlines bool) (string, bool) {
	sb := &strings.Builder{}
	l.offset++ // opening quote
	for l.offset < len(l.src) {
		c := l.src[l.offset]
		switch {
		case c == quote:
			l.offset++
			return sb.String(), true
		case c == '\n' && !allowNewlines:
			return sb.String(), false
		case c == '\\' && l.offset+1 < len(l.src):
			if unescaped, ok := escapes[l.src[l.offset+1]]; ok {
				sb.WriteByte(unescaped)
			} else {
				sb.WriteByte(l.src[l.offset+1])
			}
			l.offset += 2
			continue
		default:
			sb.WriteByte(c)
		}
		l.offset++
	}
	return sb.String(), false
}

func (l *lexer) lexString(quote byte) {
	start := l.offset
	value, closed := l.lexQuoted(quote, false)
	if !closed {
		l.errorf(start, "unterminated string literal")
	}
	l.toks = append(l.toks, Token{Type: STRING, Lexeme: l.src[start:l.offset], Value: value, Range: l.rangeFrom(start)})
}

func (l *lexer) lexTemplate() {
	start := l.offset
	value, closed := l.lexQuoted('`', true)
	if !closed {
		l.errorf(start, "unterminated template literal")
	}
	l.toks = append(l.toks, Token{Type: TEMPLATE, Lexeme: l.src[start:l.offset], Value: value, Range: l.rangeFrom(start)})
}
