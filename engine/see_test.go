package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSEEPawnTakesUndefendedQueen(t *testing.T) {
	pos, err := ParseFEN("3k4/8/8/3q4/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	m := findMove(t, GenerateMoves(pos, nil), "e4d5")
	require.Equal(t, seeValue[Queen], SEE(pos, m))
	require.False(t, SEESign(pos, m))
}

func TestSEEQueenTakesDefendedPawnLoses(t *testing.T) {
	// Qxd5 wins a pawn but loses the queen to exd5.
	pos, err := ParseFEN("3k4/8/4p3/3p4/8/8/8/3QK3 w - - 0 1")
	require.NoError(t, err)

	m := findMove(t, GenerateMoves(pos, nil), "d1d5")
	require.Equal(t, seeValue[Pawn]-seeValue[Queen], SEE(pos, m))
	require.True(t, SEESign(pos, m))
}

func TestSEEEqualTradeNotPruned(t *testing.T) {
	// Rook takes rook, recaptured by a rook: dead even, not a losing capture.
	pos, err := ParseFEN("3r3k/3r4/8/8/8/8/3R4/7K w - - 0 1")
	require.NoError(t, err)

	m := findMove(t, GenerateMoves(pos, nil), "d2d7")
	require.Equal(t, int32(0), SEE(pos, m))
	require.False(t, SEESign(pos, m))
}

func TestSEEBatteryRecapture(t *testing.T) {
	// Rook takes pawn; the pawn is defended by a rook, but white's rook is
	// backed by its own rook battery on the file: RxP, rxR, RxR nets a pawn.
	pos, err := ParseFEN("3r3k/8/3p4/8/8/8/3R4/3R3K w - - 0 1")
	require.NoError(t, err)

	m := findMove(t, GenerateMoves(pos, nil), "d2d6")
	require.Equal(t, seeValue[Pawn], SEE(pos, m))
	require.False(t, SEESign(pos, m))
}

func TestSEESignSkipsExpensiveScanForWinningShapes(t *testing.T) {
	// Equal-or-up captures (victim value >= attacker value) are never
	// losing, so SEESign short-circuits to false.
	pos, err := ParseFEN("3k4/8/8/3q4/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	m := findMove(t, GenerateMoves(pos, nil), "e4d5")
	require.False(t, SEESign(pos, m))
}
