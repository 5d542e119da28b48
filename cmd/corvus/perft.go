package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kestrelchess/corvus/engine"
	"github.com/kestrelchess/corvus/perft"
)

func newPerftCmd() *cobra.Command {
	var fen string
	var depth int
	var divide bool

	cmd := &cobra.Command{
		Use:   "perft",
		Short: "count leaf nodes of the legal move tree at a fixed depth",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fen == "" {
				fen = engine.StartFEN
			}
			pos, err := engine.ParseFEN(fen)
			if err != nil {
				return err
			}

			if divide {
				div := perft.Divide(pos, depth)
				var total uint64
				for move, n := range div {
					fmt.Printf("%s: %d\n", move, n)
					total += n
				}
				fmt.Printf("total: %d\n", total)
				return nil
			}

			counters := perft.Perft(pos, depth)
			fmt.Printf("nodes: %d captures: %d enpassant: %d castles: %d promotions: %d\n",
				counters.Nodes, counters.Captures, counters.EnPassant, counters.Castles, counters.Promotions)
			return nil
		},
	}

	cmd.Flags().StringVar(&fen, "fen", "", "FEN to search from (default: standard starting position)")
	cmd.Flags().IntVar(&depth, "depth", 5, "perft depth in plies")
	cmd.Flags().BoolVar(&divide, "divide", false, "print per-root-move node counts instead of totals")
	return cmd
}
