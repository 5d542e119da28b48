// fen.go parses and formats Forsyth-Edwards Notation.
package engine

import (
	"fmt"
	"strconv"
	"strings"
)

var pieceToSymbol = [32]string{
	NoPiece: ".",
}

func init() {
	for col := ColorMinValue; col <= ColorMaxValue; col++ {
		for fig := FigureMinValue; fig <= FigureMaxValue; fig++ {
			pieceToSymbol[ColorFigure(col, fig)] = ColorFigure(col, fig).String()
		}
	}
}

var symbolToPiece = map[rune]Piece{
	'p': ColorFigure(Black, Pawn), 'n': ColorFigure(Black, Knight),
	'b': ColorFigure(Black, Bishop), 'r': ColorFigure(Black, Rook),
	'q': ColorFigure(Black, Queen), 'k': ColorFigure(Black, King),
	'P': ColorFigure(White, Pawn), 'N': ColorFigure(White, Knight),
	'B': ColorFigure(White, Bishop), 'R': ColorFigure(White, Rook),
	'Q': ColorFigure(White, Queen), 'K': ColorFigure(White, King),
}

type castleInfo struct {
	castle Castle
	piece  [2]Piece
	square [2]Square
}

var symbolToCastleInfo = map[rune]castleInfo{
	'K': {WhiteOO, [2]Piece{ColorFigure(White, King), ColorFigure(White, Rook)}, [2]Square{RankFile(0, 4), RankFile(0, 7)}},
	'Q': {WhiteOOO, [2]Piece{ColorFigure(White, King), ColorFigure(White, Rook)}, [2]Square{RankFile(0, 4), RankFile(0, 0)}},
	'k': {BlackOO, [2]Piece{ColorFigure(Black, King), ColorFigure(Black, Rook)}, [2]Square{RankFile(7, 4), RankFile(7, 7)}},
	'q': {BlackOOO, [2]Piece{ColorFigure(Black, King), ColorFigure(Black, Rook)}, [2]Square{RankFile(7, 4), RankFile(7, 0)}},
}

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string. At least the first 4 fields must be
// present; halfmove clock and fullmove number default to 0/1 if omitted.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("engine: FEN %q: expected at least 4 fields, got %d", fen, len(fields))
	}
	pos := NewPosition()
	if err := parsePiecePlacement(fields[0], pos); err != nil {
		return nil, fmt.Errorf("engine: FEN %q: %w", fen, err)
	}
	if err := parseSideToMove(fields[1], pos); err != nil {
		return nil, fmt.Errorf("engine: FEN %q: %w", fen, err)
	}
	if err := parseCastlingAbility(fields[2], pos); err != nil {
		return nil, fmt.Errorf("engine: FEN %q: %w", fen, err)
	}
	if err := parseEnpassantSquare(fields[3], pos); err != nil {
		return nil, fmt.Errorf("engine: FEN %q: %w", fen, err)
	}
	if len(fields) >= 5 {
		n, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, fmt.Errorf("engine: FEN %q: invalid halfmove clock: %w", fen, err)
		}
		pos.HalfMoveClock = n
	}
	if len(fields) >= 6 {
		n, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, fmt.Errorf("engine: FEN %q: invalid fullmove number: %w", fen, err)
		}
		pos.FullMoveNumber = n
	}
	pos.zobrist = computeZobrist(pos)
	pos.keyHistory = pos.keyHistory[:0]
	pos.keyHistory = append(pos.keyHistory, pos.zobrist)
	return pos, nil
}

func parsePiecePlacement(s string, pos *Position) error {
	ranks := strings.Split(s, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("expected 8 ranks, got %d", len(ranks))
	}
	for r, rankStr := range ranks {
		f := 0
		for _, ch := range rankStr {
			if '1' <= ch && ch <= '8' {
				f += int(ch - '0')
				continue
			}
			pi, ok := symbolToPiece[ch]
			if !ok {
				return fmt.Errorf("invalid piece symbol %q", ch)
			}
			if f >= 8 {
				return fmt.Errorf("rank %d too long", 8-r)
			}
			pos.put(RankFile(7-r, f), pi)
			f++
		}
		if f != 8 {
			return fmt.Errorf("rank %d has %d squares, want 8", 8-r, f)
		}
	}
	return nil
}

func parseSideToMove(s string, pos *Position) error {
	switch s {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return fmt.Errorf("invalid side to move %q", s)
	}
	return nil
}

func parseCastlingAbility(s string, pos *Position) error {
	if s == "-" {
		pos.castle = NoCastle
		return nil
	}
	var ability Castle
	for _, ch := range s {
		info, ok := symbolToCastleInfo[ch]
		if !ok {
			return fmt.Errorf("invalid castling ability %q", s)
		}
		ability |= info.castle
	}
	pos.castle = ability
	return nil
}

func parseEnpassantSquare(s string, pos *Position) error {
	if s == "-" {
		pos.epSquare = noEnpassant
		return nil
	}
	sq, err := SquareFromString(s)
	if err != nil {
		return err
	}
	pos.epSquare = sq
	return nil
}

// FEN renders pos in Forsyth-Edwards Notation.
func (pos *Position) FEN() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			pi := pos.Get(RankFile(r, f))
			if pi == NoPiece {
				empty++
				continue
			}
			if empty != 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(pieceToSymbol[pi])
		}
		if empty != 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r != 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')
	if pos.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	sb.WriteString(pos.castle.String())
	sb.WriteByte(' ')
	if ep, ok := pos.EnpassantSquare(); ok {
		sb.WriteString(ep.String())
	} else {
		sb.WriteByte('-')
	}
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(pos.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(pos.FullMoveNumber))
	return sb.String()
}

// ParseUCIMove finds and returns the legal move in pos matching the UCI long
// algebraic string s (e.g. "e2e4", "e7e8q"). An unrecognized or illegal
// move string is reported only to the caller; it never panics.
func ParseUCIMove(pos *Position, s string) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return 0, fmt.Errorf("engine: invalid UCI move %q", s)
	}
	from, err := SquareFromString(s[0:2])
	if err != nil {
		return 0, fmt.Errorf("engine: invalid UCI move %q: %w", s, err)
	}
	to, err := SquareFromString(s[2:4])
	if err != nil {
		return 0, fmt.Errorf("engine: invalid UCI move %q: %w", s, err)
	}
	var promo Figure = NoFigure
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			promo = Queen
		case 'r':
			promo = Rook
		case 'b':
			promo = Bishop
		case 'n':
			promo = Knight
		default:
			return 0, fmt.Errorf("engine: invalid promotion symbol %q", s[4])
		}
	}

	candidates := LegalMoves(pos, nil)
	for _, m := range candidates {
		if m.From() != from || m.To() != to {
			continue
		}
		if m.IsPromotion() != (promo != NoFigure) {
			continue
		}
		if m.IsPromotion() && m.PromotionFigure() != promo {
			continue
		}
		return m, nil
	}
	return 0, fmt.Errorf("engine: %q is not a legal move in this position", s)
}
