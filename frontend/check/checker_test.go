package check_test

import (
	"context"
	"fmt"
	"github.com/cottand/inferred/frontend/check"
	"github.com/cottand/inferred/frontend/ilerr"
	"github.com/cottand/inferred/frontend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"
	"strings"
	"testing"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func checkSource(t *testing.T, src string) check.Report {
	t.Helper()
	return check.NewChecker(types.Options{}).CheckSource("test.ts", src)
}

func assertType(t *testing.T, report check.Report, name, expected string) {
	t.Helper()
	typ, ok := report.Lookup(name)
	if assert.True(t, ok, "no result for %s", name) {
		assert.Equal(t, expected, typ.String(), "type of %s", name)
	}
}

func assertCodes(t *testing.T, report check.Report, expected ...ilerr.ErrCode) {
	t.Helper()
	messages := make([]string, 0, len(report.Errors.Errors()))
	for _, err := range report.Errors.Errors() {
		messages = append(messages, ilerr.FormatWithPosition(err, report.File))
	}
	if len(expected) == 0 {
		assert.Empty(t, messages)
		return
	}
	assert.Equal(t, expected, report.Errors.Codes(), "errors:\n%s", strings.Join(messages, "\n"))
}

func TestInferredInIntersections(t *testing.T) {
	report := checkSource(t, `
type T00 = inferred & null;
type T01 = inferred & undefined;
type T02 = inferred & null & undefined;
type T03 = inferred & string;
type T04 = inferred & string[];
type T05 = inferred & unknown;
type T06 = inferred & any;
type test = string & boolean & inferred;
type T07 = inferred & inferred;
`)
	assertCodes(t, report)

	expected := map[string]string{
		"T00":  "null",
		"T01":  "undefined",
		"T02":  "never",
		"T03":  "string",
		"T04":  "string[]",
		"T05":  "unknown",
		"T06":  "any",
		"test": "never",
		"T07":  "inferred",
	}
	for name, typ := range expected {
		assertType(t, report, name, typ)
	}
}

func TestInferredInUnions(t *testing.T) {
	src := `
type T10 = inferred | null;
type T11 = inferred | undefined;
type T12 = inferred | null | undefined;
type T13 = inferred | string;
type T14 = inferred | string[];
type T15 = inferred | unknown;
type T16 = inferred | any;
type T17 = inferred | inferred;
type T18 = inferred | (() => void);
`
	report := checkSource(t, src)
	assertCodes(t, report)

	expected := map[string]string{
		"T10": "inferred",
		"T11": "inferred | undefined",
		"T12": "inferred | undefined",
		"T13": "inferred",
		"T14": "inferred",
		"T15": "unknown",
		"T16": "any",
		"T17": "inferred | inferred",
		"T18": "inferred | (() => void)",
	}
	for name, typ := range expected {
		assertType(t, report, name, typ)
	}

	t.Run("collapsing inferred unions", func(t *testing.T) {
		collapsed := check.NewChecker(types.Options{CollapseInferredUnions: true}).CheckSource("test.ts", src)
		assertType(t, collapsed, "T17", "inferred")
		assertType(t, collapsed, "T11", "inferred | undefined")
	})
}

func TestAliasesReferToEachOther(t *testing.T) {
	report := checkSource(t, `
type Json = inferred;
type Maybe = Json | undefined;
type Strict = Maybe & string;
`)
	assertCodes(t, report)
	assertType(t, report, "Maybe", "inferred | undefined")
	assertType(t, report, "Strict", "string")
}

func TestJSONIsAssignableToInferred(t *testing.T) {
	report := checkSource(t, `
function f21(pAny: any, pNever: never) {
  let x: inferred;
  x = 123;
  x = 'hello';
  x = [1, 2, 3];
  x = x;
  x = null;
  x = pAny;
  x = pNever;
  x = { a: 1, b: [true] };
}
`)
	assertCodes(t, report)
}

func TestNonJSONIsNotAssignableToInferred(t *testing.T) {
	report := checkSource(t, `
function g(u: undefined, fn: () => void) {
  let x: inferred = u;
  let y: inferred = fn;
  let z: inferred = new Date();
}
`)
	assertCodes(t, report, ilerr.TypeMismatch, ilerr.TypeMismatch, ilerr.TypeMismatch)
}

func TestInferredIsAssignableToJSONTypes(t *testing.T) {
	report := checkSource(t, `
function f22(x: inferred) {
  let v1: any = x;
  let v2: unknown = x;
  let v3: inferred = x;

  let v4: string = x;
  let v5: number = x;
  let v6: boolean = x;
  let v7: null = x;
  let v8: string[] = x;
  let v9: object = x;
  let v10: {} = x;
  let v11: {} | null | undefined = x;

  let v12: undefined = x; // Error
  let v13: Function = x; // Error
  let v14: () => void = x; // Error
}
`)
	assertCodes(t, report, ilerr.TypeMismatch, ilerr.TypeMismatch, ilerr.TypeMismatch)

	errs := report.Errors.Errors()
	assert.Equal(t, 16, report.File.Position(errs[0]).Line)
	assert.Contains(t, errs[0].Error(), "'undefined'")
	assert.Contains(t, errs[1].Error(), "'Function'")
	assert.Contains(t, errs[2].Error(), "'() => void'")
}

func TestInferredLocalsAreNotInitialised(t *testing.T) {
	report := checkSource(t, `
function f25() {
  let x: inferred;
  let y = x;
}
`)
	assertCodes(t, report, ilerr.UseBeforeAssigned)
	assert.Equal(t,
		"test.ts:4:11: (E005) variable 'x' is used before being assigned",
		ilerr.FormatWithPosition(report.Errors.Errors()[0], report.File),
	)
	assertType(t, report, "y", "inferred")
}

func TestDefiniteAssignment(t *testing.T) {
	cases := map[string]struct {
		src      string
		expected []ilerr.ErrCode
	}{
		"both branches assign": {
			src: `
function h(c: boolean) {
  let x: number;
  if (c) { x = 1; } else { x = 2; }
  x;
}`,
		},
		"only one branch assigns": {
			src: `
function h(c: boolean) {
  let x: number;
  if (c) { x = 1; }
  x;
}`,
			expected: []ilerr.ErrCode{ilerr.UseBeforeAssigned},
		},
		"types admitting undefined need no assignment": {
			src: `
function h() {
  let x: inferred | undefined;
  let y: any;
  let z;
  x; y; z;
}`,
		},
		"top-level var": {
			src: `
var x: inferred;
x;`,
		},
		"function-local var": {
			src: `
function h() {
  var x: inferred;
  x;
}`,
			expected: []ilerr.ErrCode{ilerr.UseBeforeAssigned},
		},
		"declare var": {
			src: `
declare var x: inferred;
x;`,
		},
		"outer variables are not tracked inside functions": {
			src: `
let x: inferred;
function h() {
  return x;
}`,
		},
		"assignment inside a function does not assign outside": {
			src: `
let x: inferred;
function h() {
  x = 1;
}
x;`,
			expected: []ilerr.ErrCode{ilerr.UseBeforeAssigned},
		},
		"compound assignment reads": {
			src: `
function h() {
  let x: inferred;
  x += 1;
}`,
			expected: []ilerr.ErrCode{ilerr.UseBeforeAssigned},
		},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			assertCodes(t, checkSource(t, c.src), c.expected...)
		})
	}
}

func TestOperatorsOnInferred(t *testing.T) {
	report := checkSource(t, `
function ops(x: inferred) {
  x == 5;
  x !== 10;
  x >= '';
  x <= 0;
  x.foo;
  x[10];
  x + 1;
  -x;
  +x;
  ++x;
  x--;
  x * 2;
  x ** 2;
  (x *= 2);
  (x **= 2);
  x / 1;
  x % 1;
  x - 1;
  x << 1;
  x >>> 1;
  (x >>= 1);
  x | 1;
  x ^ 1;
  (x &= 1);
}
`)
	assertCodes(t, report)

	expected := map[string]string{
		"x == 5":    "boolean",
		"x !== 10":  "boolean",
		`x >= ""`:   "boolean",
		"x <= 0":    "boolean",
		"x.foo":     "inferred",
		"x[10]":     "inferred",
		"x + 1":     "string | number",
		"-x":        "number",
		"+x":        "number",
		"++x":       "number",
		"x--":       "number",
		"x * 2":     "number",
		"x ** 2":    "number",
		"(x *= 2)":  "number",
		"(x **= 2)": "number",
		"x / 1":     "number",
		"x % 1":     "number",
		"x - 1":     "number",
		"x << 1":    "number",
		"x >>> 1":   "number",
		"(x >>= 1)": "number",
		"x | 1":     "number",
		"x ^ 1":     "number",
		"(x &= 1)":  "number",
	}
	for expr, typ := range expected {
		assertType(t, report, expr, typ)
	}
}

func TestCallingInferred(t *testing.T) {
	report := checkSource(t, `
function g(x: inferred) {
  x();
  x(1, 2, 3);
  new x();
  new x('hello');
  x<number>();
  new x<inferred>(x);
  x`+"``"+`;
}
`)
	assertCodes(t, report,
		ilerr.DisallowedTypeArguments,
		ilerr.DisallowedTypeArguments,
		ilerr.NotCallable,
	)
	assertType(t, report, "x()", "inferred")
	assertType(t, report, "new x()", "inferred")
}

func TestInferredAsConstructor(t *testing.T) {
	report := checkSource(t, `
var x: inferred;
var a = new x();
var b = new x('hello');
var c = new x(x);

var d = new x<inferred>(x);
`)
	assertCodes(t, report, ilerr.DisallowedTypeArguments)
	assertType(t, report, "a", "inferred")
	assertType(t, report, "d", "any")
}

func TestInferredAsGenericFunctionCall(t *testing.T) {
	report := checkSource(t, `
var x: inferred;
var a = x<number>();
var b = x<string>('hello');

class C { foo: string; }
var c = x<C>(x);
var d = x<inferred>(x);
`)
	assertCodes(t, report,
		ilerr.DisallowedTypeArguments,
		ilerr.DisallowedTypeArguments,
		ilerr.DisallowedTypeArguments,
		ilerr.DisallowedTypeArguments,
	)
}

func TestNarrowingInferredWithInstanceof(t *testing.T) {
	report := checkSource(t, `
declare var x: inferred;

if (x instanceof Function) {
    x();
    x(1, 2, 3);
    x("hello!");
    x.prop;
}

if (x instanceof Object) {
    x.method();
    x();
}

if (x instanceof Error) {
    x.message;
    x.mesage;
}

if (x instanceof Date) {
    x.getDate();
    x.getHuors();
}

x;
`)
	assertCodes(t, report, ilerr.PropertyNotFound, ilerr.PropertyNotFound)
	errs := report.Errors.Errors()
	assert.Contains(t, errs[0].Error(), "'mesage'")
	assert.Contains(t, errs[0].Error(), "'Error'")
	assert.Contains(t, errs[1].Error(), "'getHuors'")

	assertType(t, report, "x.prop", "inferred")
	assertType(t, report, "x.method()", "inferred")
	assertType(t, report, "x.message", "string")
	assertType(t, report, "x.getDate()", "number")
	assertType(t, report, "x", "inferred")
}

func TestAssignmentsInNarrowedBranches(t *testing.T) {
	cases := map[string]struct {
		src      string
		expected []ilerr.ErrCode
	}{
		"JSON values are assignable to the declared type": {
			src: `
declare var x: inferred;
if (x instanceof Error) {
  x = 1;
  x = { a: [true], b: 'c' };
  x.message;
}`,
		},
		"non-JSON values are still rejected": {
			src: `
declare var x: inferred;
if (x instanceof Date) {
  x = undefined;
}`,
			expected: []ilerr.ErrCode{ilerr.TypeMismatch},
		},
		"user classes": {
			src: `
class Point { x: number; }
declare var p: inferred;
if (p instanceof Point) {
  p = [1, 2];
  p.x;
}`,
		},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			report := checkSource(t, c.src)
			assertCodes(t, report, c.expected...)
		})
	}

	report := checkSource(t, `
declare var x: inferred;
if (x instanceof Error) {
  x = 1;
  x.message;
}
`)
	assertType(t, report, "x = 1", "1")
	assertType(t, report, "x.message", "string")
}

func TestNarrowingToUserClasses(t *testing.T) {
	report := checkSource(t, `
class Point { x: number; y: number; }
declare var p: inferred;
if (p instanceof Point) {
  p.x;
} else {
  p.x;
}
`)
	assertCodes(t, report)
	results := report.Results
	var memberTypes []string
	for _, r := range results {
		if r.Name == "p.x" {
			memberTypes = append(memberTypes, r.Type.String())
		}
	}
	assert.Equal(t, []string{"number", "inferred"}, memberTypes)
}

func TestUndefinedNames(t *testing.T) {
	report := checkSource(t, `
let a: Foo = b;
`)
	assertCodes(t, report, ilerr.UndefinedType, ilerr.UndefinedVariable)
}

func TestClassMembers(t *testing.T) {
	report := checkSource(t, `
class C { foo: string; self: C; }
let c = new C();
c.foo;
c.self.foo;
c.bar;
`)
	assertCodes(t, report, ilerr.PropertyNotFound)
	assertType(t, report, "c", "C")
	assertType(t, report, "c.foo", "string")
	assertType(t, report, "c.self.foo", "string")
}

func TestFunctionCalls(t *testing.T) {
	report := checkSource(t, `
function id(x: inferred): inferred {
  return x;
}
function bad(): number {
  return 'nope';
}
id(1);
id(undefined);
`)
	assertCodes(t, report, ilerr.TypeMismatch, ilerr.TypeMismatch)
	assertType(t, report, "id(1)", "inferred")
}

func TestLiteralWidening(t *testing.T) {
	report := checkSource(t, `
let a = 1;
const b = 1;
let c = [1, 2];
let d = 'x' + 1;
`)
	assertCodes(t, report)
	assertType(t, report, "a", "number")
	assertType(t, report, "b", "1")
	assertType(t, report, "c", "number[]")
	assertType(t, report, "d", "string")
}

func TestSyntaxErrorsAreReported(t *testing.T) {
	report := checkSource(t, `
let = 1;
let y: inferred = 2;
`)
	assertCodes(t, report, ilerr.Syntax)
	assertType(t, report, "y", "inferred")
}

func TestCheckerIsSafeForConcurrentUse(t *testing.T) {
	checker := check.NewChecker(types.Options{})
	results := make([]string, 16)
	g, _ := errgroup.WithContext(context.Background())
	for i := range results {
		g.Go(func() error {
			src := fmt.Sprintf("type T%d = inferred | null | undefined;", i)
			report := checker.CheckSource(fmt.Sprintf("file%d.ts", i), src)
			typ, ok := report.Lookup(fmt.Sprintf("T%d", i))
			if !ok {
				return fmt.Errorf("no result in file %d", i)
			}
			results[i] = typ.String()
			return nil
		})
	}
	require.NoError(t, g.Wait())
	for _, res := range results {
		assert.Equal(t, "inferred | undefined", res)
	}
}
