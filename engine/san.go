// san.go parses Standard Algebraic Notation moves, needed by the EPD
// test-suite support (EPD "bm"/"am" opcodes are written in SAN, not UCI
// long algebraic). Rather than deriving moves from the notation directly,
// candidate moves come from LegalMoves and the SAN string selects among
// them, so anything this parser accepts is legal by construction.
package engine

import (
	"fmt"
	"strings"
)

var sanFigureLetter = map[byte]Figure{'N': Knight, 'B': Bishop, 'R': Rook, 'Q': Queen, 'K': King}

// ParseSAN finds the legal move in pos matching SAN string s, e.g. "Nf3",
// "exd5", "O-O", "e8=Q+". Disambiguation (file, rank or both) and trailing
// check/mate/annotation marks are handled; an unparseable or ambiguous
// string is reported to the caller rather than panicking.
func ParseSAN(pos *Position, s string) (Move, error) {
	orig := s
	s = strings.TrimRight(s, "+#!?")
	if s == "" {
		return 0, fmt.Errorf("engine: empty SAN move")
	}

	legal := LegalMoves(pos, nil)

	if s == "O-O" || s == "0-0" {
		return findCastle(legal, false, orig)
	}
	if s == "O-O-O" || s == "0-0-0" {
		return findCastle(legal, true, orig)
	}

	var promo Figure = NoFigure
	if i := strings.IndexByte(s, '='); i >= 0 {
		if i+1 >= len(s) {
			return 0, fmt.Errorf("engine: SAN %q: missing promotion figure", orig)
		}
		fig, ok := sanFigureLetter[s[i+1]]
		if !ok {
			return 0, fmt.Errorf("engine: SAN %q: invalid promotion figure", orig)
		}
		promo = fig
		s = s[:i]
	}
	if s == "" {
		return 0, fmt.Errorf("engine: SAN %q: missing destination square", orig)
	}

	fig := Pawn
	if f, ok := sanFigureLetter[s[0]]; ok {
		fig = f
		s = s[1:]
	}

	s = strings.ReplaceAll(s, "x", "")
	if len(s) < 2 {
		return 0, fmt.Errorf("engine: SAN %q: too short", orig)
	}
	to, err := SquareFromString(s[len(s)-2:])
	if err != nil {
		return 0, fmt.Errorf("engine: SAN %q: %w", orig, err)
	}
	disambig := s[:len(s)-2]

	var candidates []Move
	for _, m := range legal {
		if m.To() != to || m.PieceFigure() != fig {
			continue
		}
		if promo != NoFigure && (!m.IsPromotion() || m.PromotionFigure() != promo) {
			continue
		}
		if promo == NoFigure && m.IsPromotion() {
			continue
		}
		if disambig != "" {
			matches := true
			for _, ch := range disambig {
				switch {
				case ch >= 'a' && ch <= 'h':
					if m.From().File() != int(ch-'a') {
						matches = false
					}
				case ch >= '1' && ch <= '8':
					if m.From().Rank() != int(ch-'1') {
						matches = false
					}
				}
			}
			if !matches {
				continue
			}
		}
		candidates = append(candidates, m)
	}

	switch len(candidates) {
	case 0:
		return 0, fmt.Errorf("engine: SAN %q: no matching legal move", orig)
	case 1:
		return candidates[0], nil
	default:
		return 0, fmt.Errorf("engine: SAN %q: ambiguous among %d legal moves", orig, len(candidates))
	}
}

func findCastle(legal []Move, queenSide bool, orig string) (Move, error) {
	for _, m := range legal {
		if m.Flag() != Castling {
			continue
		}
		isQueenSide := m.To().File() == 2
		if isQueenSide == queenSide {
			return m, nil
		}
	}
	return 0, fmt.Errorf("engine: SAN %q: no legal castle of that side", orig)
}
