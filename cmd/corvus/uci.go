package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kestrelchess/corvus/config"
	"github.com/kestrelchess/corvus/uci"
)

func newUCICmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "uci",
		Short: "run the UCI protocol loop over stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := config.Default()
			if *configPath != "" {
				loaded, err := config.Load(*configPath)
				if err != nil {
					return err
				}
				opts = loaded
			}
			return uci.Run(os.Stdin, os.Stdout, opts)
		},
	}
}
