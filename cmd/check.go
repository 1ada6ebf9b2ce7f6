package cmd

import (
	"context"
	"errors"
	"fmt"
	"github.com/cottand/inferred/frontend/types"
	"github.com/cottand/inferred/inferred"
	"github.com/cottand/inferred/internal/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"io"
	"path/filepath"
	"slices"
)

var logger = log.DefaultLogger.With("section", "cmd")

var CheckCmd = &cobra.Command{
	Use:          "check FILE...",
	Short:        "Type-check files and print the type of every declaration",
	RunE:         runCheck,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

var (
	watch                  *bool
	collapseInferredUnions *bool
)

// errDiagnostics is returned when the checked files have type or syntax errors
var errDiagnostics = errors.New("errors found during checking")

func init() {
	watch = CheckCmd.Flags().BoolP("watch", "w", false, "re-check whenever one of the files changes")
	collapseInferredUnions = CheckCmd.Flags().Bool("collapse-inferred-unions", false, "reduce `inferred | inferred` to `inferred`")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	paths := make([]string, 0, len(args))
	for _, arg := range args {
		paths = append(paths, filepath.Clean(arg))
	}
	settings := inferred.LoadSettings{
		Options: types.Options{
			CollapseInferredUnions: cfg.CollapseInferredUnions || *collapseInferredUnions,
		},
		Parallelism: cfg.Parallelism,
	}

	if !*watch {
		return checkOnce(cmd.Context(), cmd.OutOrStdout(), paths, settings)
	}
	return watchAndCheck(cmd.Context(), cmd.OutOrStdout(), paths, settings)
}

// checkOnce prints the types and errors of every file in paths.
// It returns errDiagnostics if any file had errors.
func checkOnce(ctx context.Context, out io.Writer, paths []string, settings inferred.LoadSettings) error {
	files, err := inferred.CheckPaths(ctx, paths, settings)
	if err != nil {
		return fmt.Errorf("could not check files (this is a bug or an I/O failure, not a type error): %w", err)
	}
	errCount := 0
	for _, file := range files {
		if len(files) > 1 {
			_, _ = fmt.Fprintf(out, "== %s\n", file.Path)
		}
		_, _ = io.WriteString(out, file.DisplayTypes())
		if file.Errors().HasError() {
			errCount += len(file.Errors().Errors())
			_, _ = io.WriteString(out, file.DisplayErrors())
		}
	}
	if errCount > 0 {
		return fmt.Errorf("%w: %d errors", errDiagnostics, errCount)
	}
	return nil
}

// watchAndCheck re-runs checkOnce whenever one of paths is written or
// re-created, until ctx is done. Directories are watched rather than
// files so that editors which save by renaming are noticed.
func watchAndCheck(ctx context.Context, out io.Writer, paths []string, settings inferred.LoadSettings) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not start file watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	var dirs, watched []string
	for _, p := range paths {
		watched = append(watched, p)
		dir := filepath.Dir(p)
		if slices.Contains(dirs, dir) {
			continue
		}
		dirs = append(dirs, dir)
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("could not watch %s: %w", dir, err)
		}
	}

	recheck := func() error {
		err := checkOnce(ctx, out, paths, settings)
		if errors.Is(err, errDiagnostics) {
			_, _ = fmt.Fprintln(out, err)
			return nil
		}
		return err
	}
	if err := recheck(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !slices.Contains(watched, filepath.Clean(event.Name)) {
				continue
			}
			logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
			if err := recheck(); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("file watcher failed: %w", err)
		}
	}
}
