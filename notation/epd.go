// Package notation parses Extended Position Description (EPD) records,
// used by the `search` CLI subcommand to drive the engine against a suite
// of tactical positions. An EPD line is four FEN-style position fields
// followed by semicolon-terminated "opcode arg..." operations; no formal
// grammar is needed, a direct field/opcode scan covers the dialect.
package notation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kestrelchess/corvus/engine"
)

// EPD is one parsed Extended Position Description record.
type EPD struct {
	Position  *engine.Position
	ID        string
	BestMove  []engine.Move
	AvoidMove []engine.Move
	Comment   map[string]string
}

// ParseEPD parses one EPD line: four position fields (placement, side,
// castling, en-passant) followed by semicolon-separated "opcode arg…"
// operations. Recognized opcodes are id, bm, am, fmvn, hmvc and c0-c9;
// unrecognized opcodes are accepted and ignored, per EPD's
// forward-compatibility convention.
func ParseEPD(line string) (*EPD, error) {
	line = strings.TrimSpace(line)
	fields := strings.SplitN(line, " ", 5)
	if len(fields) < 5 {
		return nil, fmt.Errorf("notation: EPD %q: expected 4 position fields plus operations", line)
	}

	fen := strings.Join(fields[:4], " ")
	pos, err := engine.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("notation: EPD %q: %w", line, err)
	}

	epd := &EPD{Position: pos, Comment: make(map[string]string)}
	for _, op := range splitOperations(fields[4]) {
		if err := applyOperation(epd, op); err != nil {
			return nil, fmt.Errorf("notation: EPD %q: %w", line, err)
		}
	}
	return epd, nil
}

// splitOperations splits the part of an EPD line after the four position
// fields into individual ";"-terminated operations, respecting quoted
// strings (which may themselves contain ";").
func splitOperations(s string) []string {
	var ops []string
	var cur strings.Builder
	inQuotes := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			cur.WriteByte(c)
		case c == ';' && !inQuotes:
			ops = append(ops, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if strings.TrimSpace(cur.String()) != "" {
		ops = append(ops, strings.TrimSpace(cur.String()))
	}
	return ops
}

// splitArgs splits an operation's argument list on whitespace, keeping
// double-quoted arguments (which may contain spaces) intact.
func splitArgs(s string) []string {
	var args []string
	var cur strings.Builder
	inQuotes := false
	flush := func() {
		if cur.Len() > 0 {
			args = append(args, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			cur.WriteByte(c)
		case c == ' ' && !inQuotes:
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return args
}

func trimQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func applyOperation(epd *EPD, op string) error {
	op = strings.TrimSpace(op)
	if op == "" {
		return nil
	}
	i := strings.IndexByte(op, ' ')
	var opcode string
	var rest string
	if i < 0 {
		opcode, rest = op, ""
	} else {
		opcode, rest = op[:i], op[i+1:]
	}
	args := splitArgs(rest)

	switch {
	case opcode == "id":
		if len(args) != 1 {
			return fmt.Errorf("id expects exactly one argument")
		}
		epd.ID = trimQuotes(args[0])
	case opcode == "bm":
		for _, a := range args {
			m, err := engine.ParseSAN(epd.Position, a)
			if err != nil {
				return fmt.Errorf("bm: %w", err)
			}
			epd.BestMove = append(epd.BestMove, m)
		}
	case opcode == "am":
		for _, a := range args {
			m, err := engine.ParseSAN(epd.Position, a)
			if err != nil {
				return fmt.Errorf("am: %w", err)
			}
			epd.AvoidMove = append(epd.AvoidMove, m)
		}
	case opcode == "fmvn":
		if len(args) != 1 {
			return fmt.Errorf("fmvn expects exactly one argument")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("fmvn: %w", err)
		}
		epd.Position.FullMoveNumber = n
	case opcode == "hmvc":
		if len(args) != 1 {
			return fmt.Errorf("hmvc expects exactly one argument")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("hmvc: %w", err)
		}
		epd.Position.HalfMoveClock = n
	case len(opcode) == 2 && opcode[0] == 'c' && opcode[1] >= '0' && opcode[1] <= '9':
		if len(args) != 1 {
			return fmt.Errorf("%s expects exactly one argument", opcode)
		}
		epd.Comment[opcode] = trimQuotes(args[0])
	default:
		// Unrecognized opcode: ignored.
	}
	return nil
}

// String renders epd back into EPD text, inverse of ParseEPD for the
// subset of opcodes this package understands.
func (epd *EPD) String() string {
	var sb strings.Builder
	fen := epd.Position.FEN()
	// EPD omits the halfmove clock and fullmove number from the FEN; those
	// are carried instead as hmvc/fmvn operations.
	fields := strings.Fields(fen)
	sb.WriteString(strings.Join(fields[:4], " "))

	for _, m := range epd.BestMove {
		sb.WriteString(" bm ")
		sb.WriteString(m.UCI())
		sb.WriteByte(';')
	}
	for _, m := range epd.AvoidMove {
		sb.WriteString(" am ")
		sb.WriteString(m.UCI())
		sb.WriteByte(';')
	}
	if epd.ID != "" {
		fmt.Fprintf(&sb, " id %q;", epd.ID)
	}
	return sb.String()
}
