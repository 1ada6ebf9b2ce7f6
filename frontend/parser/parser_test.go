package parser_test

import (
	"github.com/cottand/inferred/frontend/ast"
	"github.com/cottand/inferred/frontend/ilerr"
	"github.com/cottand/inferred/frontend/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func testParse(t *testing.T, input string) *ast.File {
	t.Helper()
	f, errs := parser.Parse("test.ts", input)
	require.False(t, errs.HasError(), "unexpected errors: %v", errs.Errors())
	return f
}

func TestNoPanics(t *testing.T) {
	files := map[string]string{
		"empty program":           ``,
		"only let":                `let`,
		"unclosed block":          `function f() {`,
		"unclosed paren":          `f(1, 2`,
		"stray closing brace":     `}`,
		"unterminated string":     `let s = "abc`,
		"unterminated template":   "x`abc",
		"unterminated comment":    `/* nothing`,
		"type args without call":  `x<number>`,
		"illegal character":       `let # = 1`,
		"declare with init":       `declare var x: inferred = 1;`,
		"dangling binary":         `1 +`,
		"class without fields":    `class C {}`,
		"type alias without type": `type T =`,
	}

	for name, file := range files {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				f, _ := parser.Parse("test.ts", file)
				assert.NotNil(t, f)
			})
		})
	}
}

func TestTypeAliases(t *testing.T) {
	cases := map[string]string{
		`type T02 = inferred & null & undefined;`: "inferred & null & undefined",
		`type T04 = inferred & string[];`:         "inferred & string[]",
		`type T18 = inferred | (() => void);`:     "inferred | (() => void)",
		`type T = A & B | C`:                      "(A & B) | C",
		`type T = A & (B | C)`:                    "A & (B | C)",
		`type T = (string | number)[]`:            "(string | number)[]",
		`type T = {} | null | undefined`:          "{} | null | undefined",
		`type T = { foo: inferred; bar: number }`: "{ foo: inferred; bar: number; }",
		`type T = (x: inferred, y) => number`:     "(x: inferred, y) => number",
		`type T = | string | number`:              "string | number",
		`type T = (string)`:                       "string",
	}

	for src, expected := range cases {
		t.Run(src, func(t *testing.T) {
			f := testParse(t, src)
			require.Len(t, f.Stmts, 1)
			alias, ok := f.Stmts[0].(*ast.TypeAlias)
			require.True(t, ok, "expected type alias, got %T", f.Stmts[0])
			assert.Equal(t, expected, ast.TypeExprString(alias.Type))
		})
	}
}

func TestIntersectionBindsTighter(t *testing.T) {
	f := testParse(t, `type T = A | B & C`)
	union, ok := f.Stmts[0].(*ast.TypeAlias).Type.(*ast.UnionTypeExpr)
	require.True(t, ok)
	require.Len(t, union.Members, 2)
	assert.IsType(t, &ast.TypeName{}, union.Members[0])
	assert.IsType(t, &ast.IntersectionTypeExpr{}, union.Members[1])
}

func TestExpressions(t *testing.T) {
	cases := map[string]string{
		`x`:                  "x",
		`x.foo`:              "x.foo",
		`x[10]`:              "x[10]",
		`x()`:                "x()",
		`x(1, 2, 3)`:         "x(1, 2, 3)",
		`x<number>()`:        "x<number>()",
		`x<string>('hello')`: `x<string>("hello")`,
		`new x`:              "new x()",
		`new x('hello')`:     `new x("hello")`,
		`new x<inferred>(x)`: "new x<inferred>(x)",
		"x``":                "x``",
		"x`abc`":             "x`abc`",
		`-x`:                 "-x",
		`+x`:                 "+x",
		`++x`:                "++x",
		`x--`:                "x--",
		`x **= 2`:            "x **= 2",
		`x >>>= 1`:           "x >>>= 1",
		`x !== 10`:           "x !== 10",
		`x >= ''`:            `x >= ""`,
		`(x *= 2)`:           "(x *= 2)",
		`x instanceof Error`: "x instanceof Error",
		`[1, 2, 3]`:          "[1, 2, 3]",
		`[]`:                 "[]",
		`{ a: 1, "b": null }`: `{ a: 1, b: null }`,
		`x.getDate()`:        "x.getDate()",
		`a < b`:              "a < b",
		`true`:               "true",
		`1.5e3`:              "1.5e3",
	}

	for src, expected := range cases {
		t.Run(src, func(t *testing.T) {
			expr, errs := parser.ParseExpr(src)
			require.False(t, errs.HasError(), "unexpected errors: %v", errs.Errors())
			assert.Equal(t, expected, ast.ExprString(expr))
		})
	}
}

func TestTypeArgumentsAreRecorded(t *testing.T) {
	withArgs, _ := parser.ParseExpr(`x<C>(x)`)
	call, ok := withArgs.(*ast.Call)
	require.True(t, ok)
	assert.True(t, call.HasTypeArgs())
	assert.Len(t, call.TypeArgs, 1)

	withoutArgs, _ := parser.ParseExpr(`x(x)`)
	assert.False(t, withoutArgs.(*ast.Call).HasTypeArgs())

	ctor, _ := parser.ParseExpr(`new x<inferred>(x)`)
	assert.True(t, ctor.(*ast.New).HasTypeArgs())

	comparison, _ := parser.ParseExpr(`a < b`)
	assert.IsType(t, &ast.Binary{}, comparison)
}

func TestPrecedence(t *testing.T) {
	t.Run("multiplication binds tighter than addition", func(t *testing.T) {
		expr, _ := parser.ParseExpr(`1 + 2 * 3`)
		bin := expr.(*ast.Binary)
		assert.Equal(t, "+", bin.Op)
		assert.Equal(t, "*", bin.Y.(*ast.Binary).Op)
	})
	t.Run("exponent is right associative", func(t *testing.T) {
		expr, _ := parser.ParseExpr(`2 ** 3 ** 2`)
		bin := expr.(*ast.Binary)
		assert.IsType(t, &ast.NumberLit{}, bin.X)
		assert.Equal(t, "**", bin.Y.(*ast.Binary).Op)
	})
	t.Run("subtraction is left associative", func(t *testing.T) {
		expr, _ := parser.ParseExpr(`3 - 2 - 1`)
		bin := expr.(*ast.Binary)
		assert.IsType(t, &ast.Binary{}, bin.X)
		assert.IsType(t, &ast.NumberLit{}, bin.Y)
	})
	t.Run("assignment is right associative", func(t *testing.T) {
		expr, _ := parser.ParseExpr(`a = b = c`)
		assign := expr.(*ast.Assign)
		assert.Equal(t, "a", assign.Target.(*ast.Ident).Name)
		assert.IsType(t, &ast.Assign{}, assign.Value)
	})
	t.Run("assignment binds looser than comparison", func(t *testing.T) {
		expr, _ := parser.ParseExpr(`y = x == 5`)
		assign := expr.(*ast.Assign)
		assert.Equal(t, "==", assign.Value.(*ast.Binary).Op)
	})
	t.Run("bitwise or binds looser than equality", func(t *testing.T) {
		expr, _ := parser.ParseExpr(`a | b == c`)
		assert.Equal(t, "|", expr.(*ast.Binary).Op)
	})
	t.Run("unary binds tighter than binary", func(t *testing.T) {
		expr, _ := parser.ParseExpr(`-x * 2`)
		bin := expr.(*ast.Binary)
		assert.IsType(t, &ast.Unary{}, bin.X)
	})
}

func TestStatements(t *testing.T) {
	src := `
// Any json type is assignable to inferred
function f21(pAny: any, pNever: never) {
  let x: inferred;
  x = 123;
  x = [1, 2, 3];
  return x;
}

declare var d: inferred;
var a = new d();

class C { foo: string; }

if (d instanceof Error) {
  d.message;
} else {
  d;
}
`
	f := testParse(t, src)
	require.Len(t, f.Stmts, 5)

	fn, ok := f.Stmts[0].(*ast.FuncDecl)
	require.True(t, ok)
	assert.Equal(t, "f21", fn.Name)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "pNever", fn.Params[1].Name)
	require.Len(t, fn.Body.Stmts, 4)
	decl := fn.Body.Stmts[0].(*ast.VarDecl)
	assert.Equal(t, ast.DeclLet, decl.Kind)
	assert.Nil(t, decl.Init)
	assert.IsType(t, &ast.Return{}, fn.Body.Stmts[3])

	declared := f.Stmts[1].(*ast.VarDecl)
	assert.True(t, declared.Declare)
	assert.Equal(t, ast.DeclVar, declared.Kind)

	class := f.Stmts[3].(*ast.ClassDecl)
	require.Len(t, class.Fields, 1)
	assert.Equal(t, "foo", class.Fields[0].Name)

	ifStmt := f.Stmts[4].(*ast.If)
	assert.Equal(t, "d instanceof Error", ast.ExprString(ifStmt.Cond))
	assert.Len(t, ifStmt.Then.Stmts, 1)
	assert.NotNil(t, ifStmt.Else)
}

func TestOptionalSemicolons(t *testing.T) {
	f := testParse(t, "let a = 1\nlet b = a\nb")
	assert.Len(t, f.Stmts, 3)
}

func TestErrorRecovery(t *testing.T) {
	f, errs := parser.Parse("test.ts", `
let = 1;
let y = 2;
`)
	require.Len(t, errs.Errors(), 1)
	assert.Equal(t, ilerr.Syntax, errs.Errors()[0].Code())
	require.Len(t, f.Stmts, 1)
	assert.Equal(t, "y", f.Stmts[0].(*ast.VarDecl).Name)
}

func TestErrorRecoveryInsideBlocks(t *testing.T) {
	f, errs := parser.Parse("test.ts", `
function f() {
  let = 1;
  let ok = 2;
}
let after = 3;
`)
	require.Len(t, errs.Errors(), 1)
	require.Len(t, f.Stmts, 2)
	assert.Len(t, f.Stmts[0].(*ast.FuncDecl).Body.Stmts, 1)
}

func TestPositions(t *testing.T) {
	f := testParse(t, "\n  let x = 1;\nx;")
	require.Len(t, f.Stmts, 2)

	pos := f.Position(f.Stmts[0])
	assert.Equal(t, "test.ts", pos.Filename)
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 3, pos.Column)

	pos = f.Position(f.Stmts[1])
	assert.Equal(t, 3, pos.Line)
	assert.Equal(t, 1, pos.Column)
}

func TestSyntaxErrorPosition(t *testing.T) {
	f, errs := parser.Parse("test.ts", "let a = 1;\nlet = 2;")
	require.Len(t, errs.Errors(), 1)
	assert.Equal(t, "test.ts:2:5: (E001) expected identifier, found '='", ilerr.FormatWithPosition(errs.Errors()[0], f))
}
