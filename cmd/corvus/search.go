package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kestrelchess/corvus/config"
	"github.com/kestrelchess/corvus/engine"
	"github.com/kestrelchess/corvus/notation"
)

func newSearchCmd(configPath *string) *cobra.Command {
	var epdPath string
	var depth int32
	var moveTime time.Duration

	cmd := &cobra.Command{
		Use:   "search",
		Short: "run the engine against an EPD test suite",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := config.Default()
			if *configPath != "" {
				loaded, err := config.Load(*configPath)
				if err != nil {
					return err
				}
				opts = loaded
			}

			f, err := os.Open(epdPath)
			if err != nil {
				return fmt.Errorf("corvus search: %w", err)
			}
			defer f.Close()

			hashMB := opts.HashSizeMB
			if hashMB <= 0 {
				hashMB = engine.DefaultHashTableSizeMB
			}
			engine.Contempt = opts.Contempt

			passed, total := 0, 0
			scanner := bufio.NewScanner(f)
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" || strings.HasPrefix(line, "#") {
					continue
				}
				epd, err := notation.ParseEPD(line)
				if err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "skip: %v\n", err)
					continue
				}
				total++

				tt := engine.NewHashTable(hashMB)
				s := engine.NewSearch(epd.Position, tt, nil)
				var deadline *engine.Deadline
				if moveTime > 0 {
					deadline = engine.NewDeadline(moveTime, 0)
				} else {
					deadline = engine.NewUnboundedDeadline()
				}
				best := s.IterativeDeepening(depth, deadline)

				ok := epdMatches(epd, best)
				if ok {
					passed++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: got %s (%s)\n", displayID(epd), best.UCI(), pass(ok))
			}
			if err := scanner.Err(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d/%d passed\n", passed, total)
			return nil
		},
	}

	cmd.Flags().StringVar(&epdPath, "epd", "", "path to an EPD test-suite file")
	cmd.Flags().Int32Var(&depth, "depth", 8, "search depth per position")
	cmd.Flags().DurationVar(&moveTime, "movetime", 0, "clock time per position; the search budget is computed from it as for a UCI wtime/btime (0 = depth-only)")
	cmd.MarkFlagRequired("epd")
	return cmd
}

// epdMatches reports whether best satisfies epd's bm/am opcodes: present in
// BestMove if any are given, and absent from AvoidMove.
func epdMatches(epd *notation.EPD, best engine.Move) bool {
	for _, m := range epd.AvoidMove {
		if m == best {
			return false
		}
	}
	if len(epd.BestMove) == 0 {
		return true
	}
	for _, m := range epd.BestMove {
		if m == best {
			return true
		}
	}
	return false
}

func displayID(epd *notation.EPD) string {
	if epd.ID != "" {
		return epd.ID
	}
	return epd.Position.FEN()
}

func pass(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}
