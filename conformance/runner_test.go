package conformance

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"testing"
	"testing/fstest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestBuiltinSuitesPass(t *testing.T) {
	suites, err := LoadDir(Builtin, BuiltinDir)
	require.NoError(t, err)
	require.NotEmpty(t, suites)

	outcomes, err := Run(context.Background(), suites, Options{Parallelism: 4})
	require.NoError(t, err)

	for _, o := range outcomes {
		t.Run(o.Suite+"/"+o.Case, func(t *testing.T) {
			assert.True(t, o.Passed, "%s", o.Diff)
		})
	}
}

const passing = `
name: passing
cases:
  - name: intersection
    source: type T = inferred & string;
    types: { T: string }
`

const failing = `
name: failing
cases:
  - name: wrong type
    source: type T = inferred | undefined;
    types: { T: inferred }
  - name: missing error
    source: |
      function f() {
        let x: inferred;
        x;
      }
    errors: []
  - name: unknown result
    source: type T = string;
    types: { U: string }
`

func TestRunReportsDiffs(t *testing.T) {
	fsys := fstest.MapFS{
		"suites/a.yaml": {Data: []byte(passing)},
		"suites/b.yaml": {Data: []byte(failing)},
	}
	suites, err := LoadDir(fsys, "suites")
	require.NoError(t, err)
	require.Len(t, suites, 2)
	assert.Equal(t, "suites/a.yaml", suites[0].Path)

	outcomes, err := Run(context.Background(), suites, Options{})
	require.NoError(t, err)
	require.Len(t, outcomes, 4)

	assert.True(t, outcomes[0].Passed)
	assert.Equal(t, "PASS passing/intersection", outcomes[0].String())

	failed := Failed(outcomes)
	require.Len(t, failed, 3)
	assert.Equal(t, "wrong type", failed[0].Case)
	assert.Contains(t, failed[0].Diff, "inferred | undefined")
	assert.Contains(t, failed[1].Diff, "UseBeforeAssigned")
	assert.Contains(t, failed[2].Diff, "<no result>")
}

func TestRunStopsWhenCancelled(t *testing.T) {
	suites, err := LoadDir(Builtin, BuiltinDir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, suites, Options{Parallelism: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadSuiteValidates(t *testing.T) {
	cases := map[string]struct {
		yaml    string
		message string
	}{
		"unknown error kind": {
			yaml: `
name: s
cases:
  - name: c
    source: x;
    errors: [NoSuchError]
`,
			message: "NoSuchError",
		},
		"duplicate case": {
			yaml: `
name: s
cases:
  - name: c
    source: x;
  - name: c
    source: y;
`,
			message: "more than once",
		},
		"unknown field": {
			yaml: `
name: s
cases:
  - name: c
    sources: x;
`,
			message: "sources",
		},
		"no name": {
			yaml:    `cases: []`,
			message: "no name",
		},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			fsys := fstest.MapFS{"suite.yaml": {Data: []byte(c.yaml)}}
			_, err := LoadSuite(fsys, "suite.yaml")
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.message)
			assert.Contains(t, err.Error(), "suite.yaml")
		})
	}
}

func TestLoadSuiteMissingFile(t *testing.T) {
	_, err := LoadSuite(fstest.MapFS{}, "nope.yaml")
	assert.ErrorContains(t, err, "could not read suite nope.yaml")
}
