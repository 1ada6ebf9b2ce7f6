// Package check type-checks parsed files, delegating every decision that
// involves inferred to types.Resolver.
package check

import (
	"github.com/benbjohnson/immutable"
	"github.com/cottand/inferred/frontend/ast"
	"github.com/cottand/inferred/frontend/ilerr"
	"github.com/cottand/inferred/frontend/parser"
	"github.com/cottand/inferred/frontend/types"
	"github.com/cottand/inferred/internal/log"
)

var logger = ast.ExprLogger(log.DefaultLogger).With("section", "check")

// Result is the type computed for a named declaration, or for an
// expression statement, in which case Name is the expression as written
type Result struct {
	Name string
	Type types.Type
}

type Report struct {
	File    *ast.File
	Results []Result
	Errors  *ilerr.Errors
}

// Lookup returns the type of the last result called name
func (r Report) Lookup(name string) (types.Type, bool) {
	for i := len(r.Results) - 1; i >= 0; i-- {
		if r.Results[i].Name == name {
			return r.Results[i].Type, true
		}
	}
	return nil, false
}

// Checker holds no per-file state, so a single Checker may check
// several files concurrently
type Checker struct {
	resolver types.Resolver
}

func NewChecker(opts types.Options) *Checker {
	return &Checker{resolver: types.NewResolver(opts)}
}

// CheckSource parses and checks src. Syntax errors are reported
// alongside type errors, and checking proceeds with whatever parsed.
func (c *Checker) CheckSource(name, src string) Report {
	file, syntaxErrs := parser.Parse(name, src)
	report := c.Check(file)
	report.Errors = syntaxErrs.Merge(report.Errors)
	return report
}

func (c *Checker) Check(file *ast.File) Report {
	fc := &fileChecker{
		resolver: c.resolver,
		assigned: immutable.NewMap[int, struct{}](immutable.NewHasher(0)),
	}
	fc.checkStmts(fc.builtinEnv(), file.Stmts)
	logger.Debug("checked file", "name", file.Name, "results", len(fc.results), "errors", fc.errs)
	return Report{File: file, Results: fc.results, Errors: fc.errs}
}

// fileChecker is the state of checking a single file
type fileChecker struct {
	resolver types.Resolver
	results  []Result
	errs     *ilerr.Errors

	nextID int
	// assigned holds the ids of the bindings that are definitely assigned
	// at the current point of the file
	assigned *immutable.Map[int, struct{}]
	// fn is the function whose body is being checked, nil at the top level
	fn *function
}

type function struct {
	// ret is nil when the return type is not annotated
	ret    types.Type
	parent *function
}

func (c *fileChecker) depth() int {
	d := 0
	for f := c.fn; f != nil; f = f.parent {
		d++
	}
	return d
}

func (c *fileChecker) report(err ilerr.IleError) {
	if err != nil {
		c.errs = c.errs.With(err)
	}
}

func (c *fileChecker) record(name string, t types.Type) {
	c.results = append(c.results, Result{Name: name, Type: t})
}
