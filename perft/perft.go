// Package perft implements the perft (performance test) self-test harness:
// leaf-counting the move tree at a fixed depth, a regression benchmark for
// move generator correctness. It is deliberately simple and obviously
// correct rather than fast.
package perft

import "github.com/kestrelchess/corvus/engine"

// Counters tallies leaf-node categories at a fixed depth.
type Counters struct {
	Nodes      uint64
	Captures   uint64
	EnPassant  uint64
	Castles    uint64
	Promotions uint64
}

func (c *Counters) add(o Counters) {
	c.Nodes += o.Nodes
	c.Captures += o.Captures
	c.EnPassant += o.EnPassant
	c.Castles += o.Castles
	c.Promotions += o.Promotions
}

// Perft counts the leaves of the legal move tree rooted at pos, to depth
// plies, classifying leaf moves into Counters' categories.
func Perft(pos *engine.Position, depth int) Counters {
	if depth == 0 {
		return Counters{Nodes: 1}
	}

	var r Counters
	us := pos.Us()
	moves := engine.GenerateMoves(pos, nil)
	for _, m := range moves {
		undo := pos.MakeMove(m)
		if pos.IsChecked(us) {
			pos.UnmakeMove(m, undo)
			continue
		}

		if depth == 1 {
			switch {
			case m.Flag() == engine.Enpassant:
				r.EnPassant++
				r.Captures++
			case m.Flag() == engine.Castling:
				r.Castles++
			case m.Flag() == engine.Capture:
				r.Captures++
			}
			if m.IsPromotion() {
				r.Promotions++
			}
		}

		r.add(Perft(pos, depth-1))
		pos.UnmakeMove(m, undo)
	}
	return r
}

// Divide counts nodes per root move at depth, for diffing generator
// discrepancies against a known-good engine move by move.
func Divide(pos *engine.Position, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	us := pos.Us()
	moves := engine.GenerateMoves(pos, nil)
	for _, m := range moves {
		undo := pos.MakeMove(m)
		if !pos.IsChecked(us) {
			out[m.UCI()] = Perft(pos, depth-1).Nodes
		}
		pos.UnmakeMove(m, undo)
	}
	return out
}

// KnownResults are the standard perft node counts from the initial
// position, indexed by depth (index 0 is the trivial depth-0 count).
var KnownResults = []uint64{1, 20, 400, 8902, 197281, 4865609, 119060324}
