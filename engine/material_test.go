package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateStartPositionIsBalanced(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	require.NoError(t, err)
	require.Equal(t, int32(0), Evaluate(pos), "a symmetric position evaluates to zero")
}

func TestEvaluateSideToMovePerspective(t *testing.T) {
	// White is up a queen: positive for white to move, negative for black.
	whiteToMove, err := ParseFEN("rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	require.NoError(t, err)
	blackToMove, err := ParseFEN("rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1")
	require.NoError(t, err)

	w := Evaluate(whiteToMove)
	b := Evaluate(blackToMove)
	require.Positive(t, w)
	require.Negative(t, b)
	require.Equal(t, w, -b, "flipping only the side to move negates the score")
}

func TestEvaluateMaterialDominates(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	require.NoError(t, err)
	require.Greater(t, Evaluate(pos), int32(700), "an extra queen is worth most of 900")
}

func TestEvaluateBishopPair(t *testing.T) {
	pair, err := ParseFEN("4k3/8/8/8/8/8/8/2B1KB2 w - - 0 1")
	require.NoError(t, err)
	knights, err := ParseFEN("4k3/8/8/8/8/8/8/1N2K1N1 w - - 0 1")
	require.NoError(t, err)
	require.Greater(t, Evaluate(pair), Evaluate(knights),
		"two bishops outweigh two knights via the pair bonus")
}

func TestPawnStructurePenalties(t *testing.T) {
	// Doubled and isolated d-pawns: -15 for the extra pawn on the file plus
	// -15 for having no neighbors.
	crippled, err := ParseFEN("4k3/8/8/8/3P4/3P4/8/4K3 w - - 0 1")
	require.NoError(t, err)
	require.Equal(t, Score{M: -30, E: -30}, pawnStructure(crippled, White))
	require.Equal(t, Score{}, pawnStructure(crippled, Black))

	healthy, err := ParseFEN("4k3/8/8/8/8/4P3/3P4/4K3 w - - 0 1")
	require.NoError(t, err)
	require.Equal(t, Score{}, pawnStructure(healthy, White))
}

func TestMobilityWeightsReachableSquares(t *testing.T) {
	// A centralized knight reaches 8 squares, a cornered one 2.
	centered, err := ParseFEN("4k3/8/8/8/3N4/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	require.Equal(t, Score{M: 8 * 4}, mobility(centered, White))
	require.Equal(t, Score{}, mobility(centered, Black))

	cornered, err := ParseFEN("4k3/8/8/8/8/8/8/N3K3 w - - 0 1")
	require.NoError(t, err)
	require.Equal(t, Score{M: 2 * 4}, mobility(cornered, White))
}

func TestMobilityExcludesFriendlyBlockers(t *testing.T) {
	// The b1 knight's a3/c3/d2 squares are its full reach; with own pawns on
	// a3 and c3 only d2 is left.
	pos, err := ParseFEN("4k3/8/8/8/8/P1P5/8/1N2K3 w - - 0 1")
	require.NoError(t, err)
	require.Equal(t, Score{M: 1 * 4}, mobility(pos, White))
}

func TestRookActivityFiles(t *testing.T) {
	open, err := ParseFEN("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)
	require.Equal(t, Score{M: 40, E: 40}, rookActivity(open, White))

	halfOpen, err := ParseFEN("4k3/p7/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)
	require.Equal(t, Score{M: 25, E: 25}, rookActivity(halfOpen, White))

	closed, err := ParseFEN("4k3/8/8/8/8/8/P7/R3K3 w - - 0 1")
	require.NoError(t, err)
	require.Equal(t, Score{}, rookActivity(closed, White))
}

func TestRookActivitySeventhRankAndConnection(t *testing.T) {
	// Both rooks sit on the seventh rank, connected along it, on open files:
	// 40 + 30 + 15 apiece.
	pos, err := ParseFEN("4k3/R6R/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	require.Equal(t, Score{M: 170, E: 170}, rookActivity(pos, White))

	// Black's seventh is rank 2.
	pos, err = ParseFEN("4k3/8/8/8/8/8/r6r/4K3 b - - 0 1")
	require.NoError(t, err)
	require.Equal(t, Score{M: 170, E: 170}, rookActivity(pos, Black))
}

func TestPhaseBounds(t *testing.T) {
	start, err := ParseFEN(StartFEN)
	require.NoError(t, err)
	require.Equal(t, 0.0, Phase(start), "full material is the opening phase")

	bare, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	require.Equal(t, 1.0, Phase(bare), "kings only is the pure endgame")
}

func TestEndgameAggressionPrefersEdgedKing(t *testing.T) {
	// King-and-rook endings: driving the defending king to the edge scores
	// higher than letting it sit in the center.
	centered, err := ParseFEN("8/8/8/3k4/8/3K4/8/6R1 w - - 0 1")
	require.NoError(t, err)
	edged, err := ParseFEN("3k4/8/8/8/8/3K4/8/6R1 w - - 0 1")
	require.NoError(t, err)
	require.Greater(t, Evaluate(edged), Evaluate(centered))
}
