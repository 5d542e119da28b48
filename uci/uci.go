// Package uci implements the UCI text protocol front end, dispatching
// `position`/`go` and the rest of the command set to the engine package.
// Searches run synchronously on the command loop; there is no pondering.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kestrelchess/corvus/config"
	"github.com/kestrelchess/corvus/engine"
)

const engineName = "corvus"
const engineAuthor = "corvus contributors"

// Engine holds the UCI session's mutable state: the current position, the
// shared transposition table (cleared on `ucinewgame`), and the config-file
// values supplied at startup. `setoption` commands are not handled.
type Engine struct {
	pos     *engine.Position
	tt      *engine.HashTable
	search  *engine.Search
	debug   bool
	zap     *zap.Logger
	opts    config.Options
	out     io.Writer
	running *engine.Deadline // set while a `go` search is in flight
}

// New builds a UCI session with opts applied and output written to out.
func New(out io.Writer, opts config.Options) *Engine {
	pos, _ := engine.ParseFEN(engine.StartFEN)
	hashMB := opts.HashSizeMB
	if hashMB <= 0 {
		hashMB = engine.DefaultHashTableSizeMB
	}
	tt := engine.NewHashTable(hashMB)
	engine.Contempt = opts.Contempt

	zapCfg := zap.NewProductionConfig()
	zapCfg.OutputPaths = []string{"stderr"}
	zapLog, _ := zapCfg.Build()

	return &Engine{
		pos:  pos,
		tt:   tt,
		opts: opts,
		out:  out,
		zap:  zapLog,
	}
}

// Run reads UCI commands line by line from r until `quit` or r is
// exhausted, writing replies to the Engine's configured out.
func Run(r io.Reader, out io.Writer, opts config.Options) error {
	e := New(out, opts)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		quit, err := e.Execute(scanner.Text())
		if err != nil {
			fmt.Fprintf(e.out, "info string error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

// Execute handles a single UCI command line. Parse errors are reported to
// the caller and otherwise leave engine state unchanged; an unrecognized or
// illegal move inside `position ... moves ...` is simply ignored rather
// than applied.
func (e *Engine) Execute(line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	fields := strings.Fields(line)
	switch fields[0] {
	case "uci":
		e.cmdUCI()
	case "isready":
		fmt.Fprintln(e.out, "readyok")
	case "ucinewgame":
		e.tt.Clear()
		e.pos, _ = engine.ParseFEN(engine.StartFEN)
	case "position":
		err = e.cmdPosition(fields[1:])
	case "go":
		e.cmdGo(fields[1:])
	case "stop":
		if e.running != nil {
			e.running.Stop()
		}
	case "debug":
		e.debug = len(fields) > 1 && fields[1] == "on"
	case "quit":
		quit = true
	default:
		// Unknown commands are ignored, per the UCI protocol's forward
		// compatibility convention.
	}
	return quit, err
}

func (e *Engine) cmdUCI() {
	fmt.Fprintf(e.out, "id name %s\n", engineName)
	fmt.Fprintf(e.out, "id author %s\n", engineAuthor)
	fmt.Fprintf(e.out, "option name Hash type spin default %d min 1 max 65536\n", engine.DefaultHashTableSizeMB)
	fmt.Fprintln(e.out, "uciok")
}

// cmdPosition handles `position startpos [moves ...]` and
// `position fen <FEN> [moves ...]`.
func (e *Engine) cmdPosition(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("uci: position: missing argument")
	}

	var pos *engine.Position
	var err error
	i := 0
	switch args[0] {
	case "startpos":
		pos, err = engine.ParseFEN(engine.StartFEN)
		i = 1
	case "fen":
		j := 1
		for j < len(args) && args[j] != "moves" {
			j++
		}
		pos, err = engine.ParseFEN(strings.Join(args[1:j], " "))
		i = j
	default:
		return fmt.Errorf("uci: position: unknown subcommand %q", args[0])
	}
	if err != nil {
		return err
	}

	if i < len(args) {
		if args[i] != "moves" {
			return fmt.Errorf("uci: position: expected 'moves', got %q", args[i])
		}
		for _, s := range args[i+1:] {
			m, err := engine.ParseUCIMove(pos, s)
			if err != nil {
				// An illegal or unparseable move in the list is ignored
				// rather than applied or treated as fatal.
				continue
			}
			pos.MakeMove(m)
		}
	}

	e.pos = pos
	return nil
}

// cmdGo parses `go [depth D] [wtime W] [btime B] [winc I] [binc I]
// [infinite]` and runs the search synchronously, printing `bestmove` on
// completion.
func (e *Engine) cmdGo(args []string) {
	var depth int32 = 64
	var wtime, btime, winc, binc time.Duration
	infinite := false
	explicitDepth := false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			i++
			if i < len(args) {
				if d, err := strconv.Atoi(args[i]); err == nil {
					depth = int32(d)
					explicitDepth = true
				}
			}
		case "wtime":
			i++
			if i < len(args) {
				if t, err := strconv.Atoi(args[i]); err == nil {
					wtime = time.Duration(t) * time.Millisecond
				}
			}
		case "btime":
			i++
			if i < len(args) {
				if t, err := strconv.Atoi(args[i]); err == nil {
					btime = time.Duration(t) * time.Millisecond
				}
			}
		case "winc":
			i++
			if i < len(args) {
				if t, err := strconv.Atoi(args[i]); err == nil {
					winc = time.Duration(t) * time.Millisecond
				}
			}
		case "binc":
			i++
			if i < len(args) {
				if t, err := strconv.Atoi(args[i]); err == nil {
					binc = time.Duration(t) * time.Millisecond
				}
			}
		case "infinite":
			infinite = true
		}
	}

	overhead := time.Duration(e.opts.MoveOverheadMS) * time.Millisecond
	if wtime > 0 {
		wtime -= overhead
	}
	if btime > 0 {
		btime -= overhead
	}

	var deadline *engine.Deadline
	switch {
	case infinite:
		deadline = engine.NewUnboundedDeadline()
	case explicitDepth && wtime == 0 && btime == 0:
		deadline = engine.NewUnboundedDeadline()
	case e.pos.Us() == engine.White:
		deadline = engine.NewDeadline(wtime, winc)
	default:
		deadline = engine.NewDeadline(btime, binc)
	}

	var logger engine.Logger
	if e.debug && e.zap != nil {
		logger = engine.NewZapLogger(e.zap)
	}
	e.search = engine.NewSearch(e.pos, e.tt, logger)
	e.running = deadline

	best := e.search.IterativeDeepening(depth, deadline)
	e.running = nil
	if best == engine.NullMove {
		fmt.Fprintln(e.out, "bestmove 0000")
		return
	}
	fmt.Fprintf(e.out, "bestmove %s\n", best.UCI())
}
