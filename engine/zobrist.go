// zobrist.go holds the random constants used for incremental Zobrist
// hashing. Populated once at package init and never mutated afterwards, so
// the tables can be shared freely across searches.
package engine

import "math/rand"

var (
	// ZobristPiece[piece][square] is XORed in/out whenever piece occupies
	// square.
	ZobristPiece [12][64]uint64
	// ZobristEnpassant[square] is XORed in/out for the en-passant target
	// square.
	ZobristEnpassant [64]uint64
	// ZobristCastle[mask] is XORed in/out for the castling-rights mask.
	ZobristCastle [CastleArraySize]uint64
	// ZobristColor is XORed whenever side to move changes.
	ZobristColor uint64
)

func rand64(r *rand.Rand) uint64 {
	return uint64(r.Int63())<<32 ^ uint64(r.Int63())
}

func init() {
	r := rand.New(rand.NewSource(1))
	for pi := 0; pi < 12; pi++ {
		for sq := 0; sq < 64; sq++ {
			ZobristPiece[pi][sq] = rand64(r)
		}
	}
	for sq := 0; sq < 64; sq++ {
		ZobristEnpassant[sq] = rand64(r)
	}
	for c := 0; c < CastleArraySize; c++ {
		ZobristCastle[c] = rand64(r)
	}
	ZobristColor = rand64(r)
}

// pieceIndex maps a Piece to a dense [0,12) index for the Zobrist tables.
func pieceIndex(pi Piece) int {
	return int(pi.Figure()-FigureMinValue)*2 + int(pi.Color()-ColorMinValue)
}

// computeZobrist recomputes a position's Zobrist key from scratch, the
// correctness-first fallback to the incremental updates in MakeMove. Used
// by Position.Verify to cross-check them.
func computeZobrist(pos *Position) uint64 {
	var key uint64
	for sq := Square(0); sq < 64; sq++ {
		if pi := pos.Get(sq); pi != NoPiece {
			key ^= ZobristPiece[pieceIndex(pi)][sq]
		}
	}
	if pos.epSquare != noEnpassant {
		key ^= ZobristEnpassant[pos.epSquare]
	}
	key ^= ZobristCastle[pos.castle]
	if pos.SideToMove == Black {
		key ^= ZobristColor
	}
	return key
}
