// Command corvus is the CLI entry point: a cobra root command wiring the
// `uci`, `perft` and `search` subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "corvus",
		Short:         "corvus is a UCI chess engine",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML engine-options file")

	root.AddCommand(newUCICmd(&configPath))
	root.AddCommand(newPerftCmd())
	root.AddCommand(newSearchCmd(&configPath))
	return root
}
