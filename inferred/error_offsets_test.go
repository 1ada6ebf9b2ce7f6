package inferred

import (
	"context"
	"github.com/cottand/inferred/frontend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func testError(t *testing.T, prog string, shouldContain ...string) {
	t.Helper()
	file, err := NewFileFromBytes([]byte(prog), "test.ts", types.Options{})
	require.NoError(t, err)

	errMsg := file.DisplayErrors()
	for _, s := range shouldContain {
		assert.Contains(t, errMsg, s)
	}
	t.Log("error message:\n" + errMsg)
}

func TestErrorOffsetEOF(t *testing.T) {
	prog := `

// asd
let a = 1 + 2 +`
	testError(t, prog, "test.ts:4:16:", "(E001)")
}

func TestErrorOffsetStartOfLine(t *testing.T) {
	prog := `
let a = 1;


function main() {
  let b: inferred;
  b + 1;
}`
	testError(t, prog, "test.ts:7:3:", "(E005)", "\n      b + 1;\n      ^")
}

func TestErrorOffsetLongFile(t *testing.T) {
	prog := strings.Repeat("\n", 18) + `type T = inferred;
let v: T = undefined;
// other comment
`
	testError(t, prog, "test.ts:20:12:", "(E002)")
}

func TestErrorCaretWithTabs(t *testing.T) {
	prog := "function f(x: inferred) {\n\tlet v: () => void = x;\n}"
	caret := "\n    \t" + strings.Repeat(" ", len("let v: () => void = ")) + "^"
	testError(t, prog, "test.ts:2:22:", "\n    \tlet v: () => void = x;"+caret)
}

func TestDisplayTypes(t *testing.T) {
	file, err := NewFileFromBytes([]byte(`
type T00 = inferred & null;
type T17 = inferred | inferred;
let a = 1;
`), "test.ts", types.Options{})
	require.NoError(t, err)
	assert.False(t, file.Errors().HasError())
	assert.Equal(t, "T00: null\nT17: inferred | inferred\na: number\n", file.DisplayTypes())
}

func TestCheckFilesKeepsOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"a.ts": {Data: []byte("type A = inferred & string;")},
		"b.ts": {Data: []byte("type B = inferred | undefined;")},
		"c.ts": {Data: []byte("let c: inferred;\nfunction f() { let d: inferred; d; }")},
	}
	files, err := CheckFiles(context.Background(), fsys, []string{"c.ts", "a.ts", "b.ts"}, LoadSettings{Parallelism: 2})
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "c.ts", files[0].Path)
	assert.True(t, files[0].Errors().HasError())
	assert.Equal(t, "A: string\n", files[1].DisplayTypes())
	assert.Equal(t, "B: inferred | undefined\n", files[2].DisplayTypes())
}

func TestCheckFilesMissingFile(t *testing.T) {
	_, err := CheckFiles(context.Background(), fstest.MapFS{}, []string{"nope.ts"}, LoadSettings{})
	assert.ErrorContains(t, err, "could not read nope.ts")
}

func TestCheckPathsReadsAbsolutePaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abs.ts")
	require.NoError(t, os.WriteFile(path, []byte("type A = inferred | null;"), 0o644))

	files, err := CheckPaths(context.Background(), []string{path}, LoadSettings{})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, path, files[0].Path)
	assert.Equal(t, "A: inferred\n", files[0].DisplayTypes())
}
