package conformance

import (
	"context"
	"fmt"
	"github.com/cottand/inferred/frontend/check"
	"github.com/cottand/inferred/frontend/types"
	"github.com/cottand/inferred/internal/log"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/sync/errgroup"
	"runtime"
)

var logger = log.DefaultLogger.With("section", "conformance")

type Options struct {
	// Parallelism bounds how many cases are checked at once.
	// Zero means runtime.GOMAXPROCS.
	Parallelism int
}

// Outcome is the result of running a single Case
type Outcome struct {
	Suite  string
	Case   string
	Passed bool
	// Diff is empty when the case passed, and otherwise shows
	// expected (-) and actual (+) results
	Diff string
}

func (o Outcome) String() string {
	if o.Passed {
		return fmt.Sprintf("PASS %s/%s", o.Suite, o.Case)
	}
	return fmt.Sprintf("FAIL %s/%s\n%s", o.Suite, o.Case, o.Diff)
}

// observed is what a case expects, or what the checker reported for it
type observed struct {
	Types  map[string]string
	Errors []string
}

// Run checks every case of every suite concurrently.
// Outcomes are returned in suite and case order.
// An error is returned only if ctx is cancelled.
func Run(ctx context.Context, suites []Suite, opts Options) ([]Outcome, error) {
	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	total := 0
	for _, s := range suites {
		total += len(s.Cases)
	}
	outcomes := make([]Outcome, total)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	i := 0
	for _, suite := range suites {
		checker := check.NewChecker(types.Options{
			CollapseInferredUnions: suite.Options.CollapseInferredUnions,
		})
		for _, c := range suite.Cases {
			at := i
			i++
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				outcomes[at] = runCase(checker, suite, c)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func runCase(checker *check.Checker, suite Suite, c Case) Outcome {
	report := checker.CheckSource(suite.Name+"/"+c.Name, c.Source)

	expected := observed{Types: c.Types, Errors: c.Errors}
	actual := observed{Types: make(map[string]string, len(c.Types))}
	for name := range c.Types {
		if t, ok := report.Lookup(name); ok {
			actual.Types[name] = t.String()
		} else {
			actual.Types[name] = "<no result>"
		}
	}
	for _, code := range report.Errors.Codes() {
		actual.Errors = append(actual.Errors, code.String())
	}

	diff := cmp.Diff(expected, actual, cmpopts.EquateEmpty())
	outcome := Outcome{Suite: suite.Name, Case: c.Name, Passed: diff == "", Diff: diff}
	if !outcome.Passed {
		logger.Debug("case failed", "suite", suite.Name, "case", c.Name, "errors", report.Errors)
	}
	return outcome
}

// Failed returns the outcomes that did not pass
func Failed(outcomes []Outcome) []Outcome {
	var failed []Outcome
	for _, o := range outcomes {
		if !o.Passed {
			failed = append(failed, o)
		}
	}
	return failed
}
