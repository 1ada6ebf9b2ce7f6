package cmd

import (
	"fmt"
	"github.com/cottand/inferred/conformance"
	"github.com/spf13/cobra"
	"io/fs"
	"os"
)

var ConformanceCmd = &cobra.Command{
	Use:          "conformance [DIR]",
	Short:        "Run the YAML conformance suites in DIR, or the built-in ones",
	RunE:         runConformance,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
}

var verbose *bool

func init() {
	verbose = ConformanceCmd.Flags().BoolP("verbose", "v", false, "also print passing cases")
}

func runConformance(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var fsys fs.FS = conformance.Builtin
	dir := conformance.BuiltinDir
	if len(args) == 1 {
		fsys = os.DirFS(args[0])
		dir = "."
	}
	suites, err := conformance.LoadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("could not load suites: %w", err)
	}

	outcomes, err := conformance.Run(cmd.Context(), suites, conformance.Options{Parallelism: cfg.Parallelism})
	if err != nil {
		return fmt.Errorf("conformance run interrupted: %w", err)
	}
	out := cmd.OutOrStdout()
	for _, o := range outcomes {
		if !o.Passed || *verbose {
			_, _ = fmt.Fprintln(out, o)
		}
	}
	failed := conformance.Failed(outcomes)
	_, _ = fmt.Fprintf(out, "%d/%d cases passed in %d suites\n", len(outcomes)-len(failed), len(outcomes), len(suites))
	if len(failed) > 0 {
		return fmt.Errorf("%d conformance cases failed", len(failed))
	}
	return nil
}
