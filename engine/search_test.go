package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func searchFEN(t *testing.T, fen string, depth int32) (Move, *Search) {
	t.Helper()
	pos, err := ParseFEN(fen)
	require.NoError(t, err)
	s := NewSearch(pos, NewHashTable(16), nil)
	best := s.IterativeDeepening(depth, nil)
	return best, s
}

func TestSearchFindsMateInOne(t *testing.T) {
	best, _ := searchFEN(t, "6k1/5ppp/8/8/8/8/5PPP/3R2K1 w - - 0 1", 3)
	require.Equal(t, "d1d8", best.UCI(), "back-rank mate")
}

func TestSearchFindsMateInTwo(t *testing.T) {
	// Two-rook ladder: one rook seals the seventh rank, the other mates on
	// the eighth. Either rook may take the seventh first.
	best, _ := searchFEN(t, "6k1/8/8/8/8/8/R7/1R4K1 w - - 0 1", 4)
	require.Contains(t, []string{"a2a7", "b1b7"}, best.UCI())
}

func TestSearchOpeningMovePlausible(t *testing.T) {
	best, _ := searchFEN(t, StartFEN, 4)
	require.Contains(t, []string{"e2e4", "d2d4", "g1f3", "c2c4", "b1c3"}, best.UCI(),
		"depth-4 choice from the initial position should develop or take the center")
}

func TestSearchCheckmatedReturnsNoMove(t *testing.T) {
	// Back-rank mate already delivered; black has zero legal moves.
	best, _ := searchFEN(t, "3R2k1/5ppp/8/8/8/8/5PPP/6K1 b - - 0 1", 3)
	require.Equal(t, NullMove, best)
}

func TestSearchStalematedReturnsNoMove(t *testing.T) {
	// Classic queen stalemate: the black king has no squares but is not in
	// check.
	pos, err := ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)
	require.False(t, pos.IsChecked(Black))
	require.Empty(t, LegalMoves(pos, nil))

	s := NewSearch(pos, NewHashTable(16), nil)
	require.Equal(t, NullMove, s.IterativeDeepening(3, nil))
}

func TestNegamaxMateAndStalemateScores(t *testing.T) {
	mated, err := ParseFEN("3R2k1/5ppp/8/8/8/8/5PPP/6K1 b - - 0 1")
	require.NoError(t, err)
	s := NewSearch(mated, NewHashTable(16), nil)
	require.Equal(t, int32(MatedScore), s.negamax(-InfinityScore, InfinityScore, 1))

	stale, err := ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)
	s = NewSearch(stale, NewHashTable(16), nil)
	require.Equal(t, int32(0), s.negamax(-InfinityScore, InfinityScore, 1))
}

func TestRepetitionScoresContempt(t *testing.T) {
	// Shuffle knights until the start position has occurred three times; the
	// next node on that key must return the contempt score, not a static
	// evaluation.
	pos, err := ParseFEN(StartFEN)
	require.NoError(t, err)
	for rep := 0; rep < 2; rep++ {
		for _, uciMove := range []string{"g1f3", "g8f6", "f3g1", "f6g8"} {
			m, err := ParseUCIMove(pos, uciMove)
			require.NoError(t, err)
			pos.MakeMove(m)
		}
	}
	require.Equal(t, 3, pos.ThreeFoldRepetitionCount())

	s := NewSearch(pos, NewHashTable(16), nil)
	s.rootPly = pos.Ply
	require.Equal(t, Contempt, s.negamax(-InfinityScore, InfinityScore, 4))
}

func TestSearchAvoidsHangingCapture(t *testing.T) {
	// The d5 pawn is defended by the e6 pawn; quiescence must see the
	// recapture, so white should not play Qxd5 at any reasonable depth.
	best, _ := searchFEN(t, "rnb1kbnr/ppp2ppp/4p3/3p4/8/3Q4/PPPPPPPP/RNB1KBNR w KQkq - 0 1", 4)
	require.NotEqual(t, "d3d5", best.UCI())
}

func TestSearchRespectsDeadline(t *testing.T) {
	pos, err := ParseFEN(kiwipete)
	require.NoError(t, err)
	s := NewSearch(pos, NewHashTable(16), nil)

	deadline := NewDeadline(400*time.Millisecond, 0)
	start := time.Now()
	best := s.IterativeDeepening(64, deadline)
	elapsed := time.Since(start)

	require.NotEqual(t, NullMove, best, "a completed iteration's move must survive the timeout")
	require.Less(t, elapsed, 2*time.Second)
}

func TestSearchStoppedImmediatelyStillReturnsLegalMove(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	require.NoError(t, err)
	s := NewSearch(pos, NewHashTable(16), nil)

	deadline := NewUnboundedDeadline()
	deadline.Stop()
	best := s.IterativeDeepening(64, deadline)

	legal := uciSet(LegalMoves(pos, nil))
	require.Contains(t, legal, best.UCI())
}

func TestSearchUsesTTMoveAcrossIterations(t *testing.T) {
	pos, err := ParseFEN("6k1/5ppp/8/8/8/8/5PPP/3R2K1 w - - 0 1")
	require.NoError(t, err)
	tt := NewHashTable(16)

	s := NewSearch(pos, tt, nil)
	best := s.IterativeDeepening(4, nil)
	require.Equal(t, "d1d8", best.UCI())

	entry, ok := tt.Probe(pos.Zobrist())
	require.True(t, ok, "root position must be stored after the search")
	require.NotEqual(t, NullMove, entry.Move)
}

func TestQuiescenceStandPatBounds(t *testing.T) {
	// A quiet position with no captures should return the static evaluation
	// when it lies inside the window.
	pos, err := ParseFEN("4k3/pppp4/8/8/8/8/PPPP4/4K3 w - - 0 1")
	require.NoError(t, err)
	s := NewSearch(pos, NewHashTable(16), nil)

	want := Evaluate(pos)
	require.Equal(t, want, s.quiescence(-InfinityScore, InfinityScore, 0))
}
