//go:build !( js || wasm)

package main

import (
	"context"
	"github.com/cottand/inferred/cmd"
	"github.com/spf13/cobra"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "inferred [subcommand]",
	Short: "inferred\n checks programs that use the `inferred` JSON-like type",
	Args:  cobra.MinimumNArgs(1),
	//SilenceErrors: true,
	SilenceUsage: true,
}

func init() {
	cmd.AddGlobalFlags(rootCmd)
	rootCmd.AddCommand(cmd.CheckCmd)
	rootCmd.AddCommand(cmd.ConformanceCmd)
}
