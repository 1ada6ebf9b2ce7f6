package inferred

import (
	"context"
	"fmt"
	"github.com/cottand/inferred/frontend/check"
	"github.com/cottand/inferred/frontend/ilerr"
	"github.com/cottand/inferred/frontend/types"
	"github.com/cottand/inferred/internal/log"
	"golang.org/x/sync/errgroup"
	"io/fs"
	"os"
	"runtime"
	"strings"
	"testing/fstest"
)

var fileLogger = log.DefaultLogger.With("section", "check.file")

// File is a checked source file
type File struct {
	Path   string
	Report check.Report
}

type LoadSettings struct {
	Options types.Options
	// Parallelism bounds how many files are checked at once.
	// Zero means runtime.GOMAXPROCS.
	Parallelism int
}

// CheckFiles reads and checks each of paths in fsys concurrently.
// Files are returned in the order of paths. The error is only for files
// that cannot be read: type errors are in each File's Report.
func CheckFiles(ctx context.Context, fsys fs.FS, paths []string, settings LoadSettings) ([]File, error) {
	return checkAll(ctx, paths, settings, func(p string) ([]byte, error) {
		return fs.ReadFile(fsys, p)
	})
}

// CheckPaths is CheckFiles for paths of the operating system, which may be
// absolute or point outside the working directory
func CheckPaths(ctx context.Context, paths []string, settings LoadSettings) ([]File, error) {
	return checkAll(ctx, paths, settings, os.ReadFile)
}

func checkAll(ctx context.Context, paths []string, settings LoadSettings, read func(string) ([]byte, error)) ([]File, error) {
	parallelism := settings.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}
	checker := check.NewChecker(settings.Options)
	files := make([]File, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := read(p)
			if err != nil {
				return fmt.Errorf("could not read %s: %w", p, err)
			}
			files[i] = File{Path: p, Report: checker.CheckSource(p, string(data))}
			fileLogger.Debug("checked", "path", p, "errors", files[i].Report.Errors)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// NewFileFromBytes checks a single file held in memory, meant for testing
// and for the browser playground
func NewFileFromBytes(data []byte, name string, opts types.Options) (File, error) {
	filesystem := fstest.MapFS{
		name: &fstest.MapFile{Data: data},
	}
	files, err := CheckFiles(context.Background(), filesystem, []string{name}, LoadSettings{Options: opts, Parallelism: 1})
	if err != nil {
		return File{}, err
	}
	return files[0], nil
}

func (f File) Errors() *ilerr.Errors {
	return f.Report.Errors
}

// DisplayTypes shows one `name: type` line per result, in source order
func (f File) DisplayTypes() string {
	sb := strings.Builder{}
	for _, r := range f.Report.Results {
		sb.WriteString(r.Name)
		sb.WriteString(": ")
		sb.WriteString(r.Type.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// DisplayErrors shows every error with its position and source line, sorted by position
func (f File) DisplayErrors() string {
	sb := strings.Builder{}
	for _, err := range f.Report.Errors.Sorted() {
		sb.WriteString(ilerr.FormatWithCodeAndSource(err, f.Report.File))
		sb.WriteByte('\n')
	}
	return sb.String()
}
